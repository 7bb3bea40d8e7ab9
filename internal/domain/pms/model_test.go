package pms

import (
	"errors"
	"math"
	"testing"
)

func TestEstadisticas(t *testing.T) {
	p := &PesoMilSemillas{Repeticiones: []float64{4, 4, 4, 4, 4, 4, 4, 4}}
	prom, desvio, cv := p.Estadisticas()
	if prom != 4 || desvio != 0 || cv != 0 {
		t.Fatalf("unexpected stats %v %v %v", prom, desvio, cv)
	}

	p = &PesoMilSemillas{Repeticiones: []float64{2, 4}}
	prom, desvio, cv = p.Estadisticas()
	if prom != 3 || math.Abs(desvio-math.Sqrt2) > 1e-9 || math.Abs(cv-math.Sqrt2/3*100) > 1e-9 {
		t.Fatalf("unexpected stats %v %v %v", prom, desvio, cv)
	}
}

func TestValidarFinalizacion(t *testing.T) {
	ok := &PesoMilSemillas{Repeticiones: []float64{4.01, 3.98, 4.02, 4.00, 3.99, 4.03, 4.00, 3.97}}
	if err := ValidarFinalizacion(ok); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
	if ok.CoeficienteVariacionMax != 0 {
		t.Fatalf("validator must not modify the entity, got CV max %v", ok.CoeficienteVariacionMax)
	}

	pocas := &PesoMilSemillas{Repeticiones: []float64{4, 4, 4}}
	if err := ValidarFinalizacion(pocas); !errors.Is(err, ErrRepeticionesInsuficientes) {
		t.Fatalf("expected ErrRepeticionesInsuficientes, got %v", err)
	}

	dispersas := &PesoMilSemillas{Repeticiones: []float64{2, 6, 2, 6, 2, 6, 2, 6}, CoeficienteVariacionMax: 4}
	if err := ValidarFinalizacion(dispersas); !errors.Is(err, ErrCoeficienteVariacion) {
		t.Fatalf("expected ErrCoeficienteVariacion, got %v", err)
	}

	if err := ValidarAlta(&PesoMilSemillas{Repeticiones: []float64{4, -1}}); err == nil {
		t.Fatalf("expected error for negative repetition")
	}
}

func TestToResponse_PesoMil(t *testing.T) {
	out := ToResponse(&PesoMilSemillas{Repeticiones: []float64{4, 4}})
	if out.PesoMilSemillas != 40 {
		t.Fatalf("expected 40 g, got %v", out.PesoMilSemillas)
	}
	if ToResponse(&PesoMilSemillas{}).Repeticiones == nil {
		t.Fatalf("repetitions must serialize as an empty list")
	}
}

func TestNuevo_DefaultsCVMax(t *testing.T) {
	if p := Nuevo(3, "obs", 0); p.CoeficienteVariacionMax != CVMaxDefault || p.LoteID != 3 || p.Comentarios != "obs" {
		t.Fatalf("unexpected new PMS: %+v", p)
	}
	if p := Nuevo(3, "", 6); p.CoeficienteVariacionMax != 6 {
		t.Fatalf("expected explicit CV max kept, got %v", p.CoeficienteVariacionMax)
	}
}
