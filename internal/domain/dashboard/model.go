package dashboard

import (
	"time"

	"lab-semillas/internal/domain/analisis"
)

// separador entre la clave de negocio y el tipo: ordena antes que cualquier caracter imprimible.
const separador = "\x1f"

// formatoEntrega es de ancho fijo para que el orden de strings coincida con el cronológico.
const formatoEntrega = "2006-01-02T15:04:05.000000000Z"

// Resumen es una fila de las colas del dashboard.
type Resumen struct {
	Tipo         analisis.Tipo
	ID           int64
	LoteID       int64
	Ficha        string
	Especie      string
	Estado       analisis.Estado
	FechaInicio  *time.Time
	FechaEntrega *time.Time

	Clave string
}

func (r Resumen) Posicion() Cursor { return Cursor{Clave: r.Clave, ID: r.ID} }

// ClavePendiente ordena la cola de pendientes por ficha. El tipo evita empates
// entre análisis de distintas tablas con el mismo ID.
func ClavePendiente(ficha string, tipo analisis.Tipo) string {
	return ficha + separador + string(tipo)
}

// ClavePorAprobar ordena por fecha de entrega; sin fecha queda al final.
func ClavePorAprobar(entrega *time.Time, tipo analisis.Tipo) string {
	if entrega == nil {
		return separador + string(tipo)
	}
	return entrega.UTC().Format(formatoEntrega) + separador + string(tipo)
}

func EsPendiente(e analisis.Estado) bool {
	return e == analisis.EstadoRegistrado || e == analisis.EstadoEnProceso
}
