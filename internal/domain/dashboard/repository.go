package dashboard

import "context"

// Repository expone las dos colas. Ambas devuelven filas activas, en orden
// descendente por (Clave, ID), estrictamente después de despues.
type Repository interface {
	Pendientes(ctx context.Context, despues *Cursor, limite int) ([]Resumen, error)
	PorAprobar(ctx context.Context, despues *Cursor, limite int) ([]Resumen, error)
}
