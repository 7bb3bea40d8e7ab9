package usuarios

import (
	"context"
	"errors"

	"lab-semillas/internal/ports/auth"
)

var ErrNotFound = errors.New("user not found")

// Usuario es solo lookup: el alta de usuarios vive en el proveedor de identidad.
type Usuario struct {
	ID       int64
	Username string
	Nombre   string
	Rol      auth.Rol
	Activo   bool
}

type Repository interface {
	// GetByUsername devuelve ErrNotFound si el username no existe.
	GetByUsername(ctx context.Context, username string) (Usuario, error)
}
