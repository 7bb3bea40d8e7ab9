package tetrazolio

import (
	"errors"
	"testing"
)

func n(v int) *int { return &v }

func TestValidadores(t *testing.T) {
	if err := ValidarAlta(&Tetrazolio{SemillasEvaluadas: 100}); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if err := ValidarAlta(&Tetrazolio{SemillasEvaluadas: 100, Viables: n(101)}); err == nil {
		t.Fatalf("expected error when viables exceed evaluated")
	}
	if err := ValidarFinalizacion(&Tetrazolio{SemillasEvaluadas: 100}); !errors.Is(err, ErrSinViables) {
		t.Fatalf("expected ErrSinViables, got %v", err)
	}
	if err := ValidarFinalizacion(&Tetrazolio{SemillasEvaluadas: 100, Viables: n(87)}); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestPorcentajeViabilidad(t *testing.T) {
	tz := &Tetrazolio{SemillasEvaluadas: 200, Viables: n(150)}
	if p := tz.PorcentajeViabilidad(); p == nil || *p != 75 {
		t.Fatalf("expected 75%%, got %v", p)
	}
	if (&Tetrazolio{SemillasEvaluadas: 200}).PorcentajeViabilidad() != nil {
		t.Fatalf("expected nil without viable count")
	}
}
