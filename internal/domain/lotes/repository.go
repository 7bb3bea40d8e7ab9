package lotes

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("lote not found")

type Repository interface {
	// Create asigna el ID.
	Create(ctx context.Context, l Lote) (Lote, error)
	GetByID(ctx context.Context, id int64) (Lote, error)
}
