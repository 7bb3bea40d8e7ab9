package historial

import (
	"context"
	"time"

	"lab-semillas/internal/domain/analisis"
)

type Accion string

const (
	AccionCreacion     Accion = "CREACION"
	AccionModificacion Accion = "MODIFICACION"
)

// Entrada es inmutable una vez creada.
type Entrada struct {
	ID        string
	Analisis  analisis.Ref
	UsuarioID *int64
	Username  string
	Accion    Accion
	FechaHora time.Time

	// Estado es el estado del análisis después del cambio.
	Estado analisis.Estado
}

// Repository: los List devuelven en orden de inserción, el más viejo primero.
type Repository interface {
	Create(ctx context.Context, e Entrada) error
	ListByAnalisis(ctx context.Context, ref analisis.Ref) ([]Entrada, error)
	ListByUsuario(ctx context.Context, usuarioID int64) ([]Entrada, error)
}
