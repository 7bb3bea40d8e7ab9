package pms

import (
	"errors"
	"fmt"
	"math"

	"lab-semillas/internal/domain/analisis"
)

const (
	// MinRepeticiones de 100 semillas para calcular el peso de mil semillas.
	MinRepeticiones = 8
	// CVMaxDefault aplica a semillas no pajosas.
	CVMaxDefault = 4.0
)

// PesoMilSemillas guarda el peso (g) de cada repetición de 100 semillas.
type PesoMilSemillas struct {
	analisis.Analisis

	Repeticiones            []float64
	CoeficienteVariacionMax float64
}

// Nuevo arma un PMS para alta; un máximo de CV en 0 toma CVMaxDefault.
func Nuevo(loteID int64, comentarios string, cvMax float64) *PesoMilSemillas {
	if cvMax == 0 {
		cvMax = CVMaxDefault
	}
	return &PesoMilSemillas{
		Analisis:                analisis.Analisis{LoteID: loteID, Comentarios: comentarios},
		CoeficienteVariacionMax: cvMax,
	}
}

func Clonar(p *PesoMilSemillas) *PesoMilSemillas {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Analisis = analisis.CopiarCabecera(p.Analisis)
	if p.Repeticiones != nil {
		cp.Repeticiones = append([]float64(nil), p.Repeticiones...)
	}
	return &cp
}

var (
	ErrRepeticionesInsuficientes = errors.New("not enough repetitions")
	ErrCoeficienteVariacion      = errors.New("coefficient of variation above maximum")
)

// Estadisticas devuelve promedio, desvío estándar muestral y CV (%) de las repeticiones.
func (p *PesoMilSemillas) Estadisticas() (promedio, desvio, cv float64) {
	n := len(p.Repeticiones)
	if n == 0 {
		return 0, 0, 0
	}
	for _, r := range p.Repeticiones {
		promedio += r
	}
	promedio /= float64(n)
	if n < 2 {
		return promedio, 0, 0
	}

	var ss float64
	for _, r := range p.Repeticiones {
		ss += (r - promedio) * (r - promedio)
	}
	desvio = math.Sqrt(ss / float64(n-1))
	if promedio > 0 {
		cv = desvio / promedio * 100
	}
	return promedio, desvio, cv
}

// cvMax es el máximo efectivo; filas viejas pueden tener 0.
func (p *PesoMilSemillas) cvMax() float64 {
	if p.CoeficienteVariacionMax == 0 {
		return CVMaxDefault
	}
	return p.CoeficienteVariacionMax
}

// ValidarAlta no modifica p.
func ValidarAlta(p *PesoMilSemillas) error {
	if p.CoeficienteVariacionMax < 0 {
		return errors.New("coeficiente_variacion_max cannot be negative")
	}
	for i, r := range p.Repeticiones {
		if r <= 0 {
			return fmt.Errorf("repetition %d must be positive", i+1)
		}
	}
	return nil
}

func ValidarFinalizacion(p *PesoMilSemillas) error {
	if err := ValidarAlta(p); err != nil {
		return err
	}
	if len(p.Repeticiones) < MinRepeticiones {
		return fmt.Errorf("%w: %d of %d", ErrRepeticionesInsuficientes, len(p.Repeticiones), MinRepeticiones)
	}
	if _, _, cv := p.Estadisticas(); cv > p.cvMax() {
		return fmt.Errorf("%w: %.2f > %.2f", ErrCoeficienteVariacion, cv, p.cvMax())
	}
	return nil
}
