package germinacion

import (
	"errors"

	"lab-semillas/internal/domain/analisis"
)

// Germinacion registra un ensayo de germinación estándar.
type Germinacion struct {
	analisis.Analisis

	NumeroDias            int
	SemillasPorRepeticion int
	Repeticiones          int

	// PorcentajeNormales es el resultado; nil hasta el conteo final.
	PorcentajeNormales *float64
}

func Clonar(g *Germinacion) *Germinacion {
	if g == nil {
		return nil
	}
	cp := *g
	cp.Analisis = analisis.CopiarCabecera(g.Analisis)
	if g.PorcentajeNormales != nil {
		v := *g.PorcentajeNormales
		cp.PorcentajeNormales = &v
	}
	return &cp
}

var ErrSinResultado = errors.New("normal seedling percentage not recorded")

// ValidarAlta corre al crear y en cada edición.
func ValidarAlta(g *Germinacion) error {
	if g.NumeroDias <= 0 {
		return errors.New("numero_dias must be positive")
	}
	if g.SemillasPorRepeticion <= 0 || g.Repeticiones <= 0 {
		return errors.New("semillas_por_repeticion and repeticiones must be positive")
	}
	if p := g.PorcentajeNormales; p != nil && (*p < 0 || *p > 100) {
		return errors.New("porcentaje_normales must be between 0 and 100")
	}
	return nil
}

// ValidarFinalizacion exige el resultado cargado.
func ValidarFinalizacion(g *Germinacion) error {
	if err := ValidarAlta(g); err != nil {
		return err
	}
	if g.PorcentajeNormales == nil {
		return ErrSinResultado
	}
	return nil
}
