package tetrazolio

import (
	"errors"

	"lab-semillas/internal/domain/analisis"
)

// Tetrazolio estima viabilidad por tinción.
type Tetrazolio struct {
	analisis.Analisis

	SemillasEvaluadas int
	Viables           *int
}

func Clonar(t *Tetrazolio) *Tetrazolio {
	if t == nil {
		return nil
	}
	cp := *t
	cp.Analisis = analisis.CopiarCabecera(t.Analisis)
	if t.Viables != nil {
		v := *t.Viables
		cp.Viables = &v
	}
	return &cp
}

var ErrSinViables = errors.New("viable seed count not recorded")

func ValidarAlta(t *Tetrazolio) error {
	if t.SemillasEvaluadas <= 0 {
		return errors.New("semillas_evaluadas must be positive")
	}
	if t.Viables != nil && (*t.Viables < 0 || *t.Viables > t.SemillasEvaluadas) {
		return errors.New("viables must be between 0 and semillas_evaluadas")
	}
	return nil
}

func ValidarFinalizacion(t *Tetrazolio) error {
	if err := ValidarAlta(t); err != nil {
		return err
	}
	if t.Viables == nil {
		return ErrSinViables
	}
	return nil
}

func (t *Tetrazolio) PorcentajeViabilidad() *float64 {
	if t.Viables == nil || t.SemillasEvaluadas <= 0 {
		return nil
	}
	v := float64(*t.Viables) / float64(t.SemillasEvaluadas) * 100
	return &v
}
