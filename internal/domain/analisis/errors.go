package analisis

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidState = errors.New("invalid state")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("validation failed")
)

// InvalidStateError describe la precondición incumplida de una transición.
// errors.Is(err, ErrInvalidState) es true.
type InvalidStateError struct {
	Operacion  string
	Requeridos []Estado
	Actual     Estado

	// Motivo se usa cuando la precondición incumplida es sobre Activo.
	Motivo string
}

func (e *InvalidStateError) Error() string {
	req := make([]string, 0, len(e.Requeridos))
	for _, s := range e.Requeridos {
		req = append(req, string(s))
	}
	switch {
	case e.Motivo != "" && len(req) > 0:
		return fmt.Sprintf("invalid state: %s %s in state %s (current %s)",
			e.Operacion, e.Motivo, strings.Join(req, " or "), e.Actual)
	case e.Motivo != "":
		return fmt.Sprintf("invalid state: %s %s", e.Operacion, e.Motivo)
	}
	return fmt.Sprintf("invalid state: %s requires state %s (current %s)",
		e.Operacion, strings.Join(req, " or "), e.Actual)
}

func (e *InvalidStateError) Is(target error) bool { return target == ErrInvalidState }

func notFound(id int64) error {
	return fmt.Errorf("%w: analysis %d", ErrNotFound, id)
}

// validationError normaliza lo que devuelve un validador de subtipo.
func validationError(err error) error {
	if err == nil || errors.Is(err, ErrValidation) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrValidation, err)
}
