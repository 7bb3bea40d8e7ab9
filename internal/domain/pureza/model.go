package pureza

import (
	"errors"

	"lab-semillas/internal/domain/analisis"
)

// Pureza separa la muestra de trabajo en fracciones, en gramos.
type Pureza struct {
	analisis.Analisis

	PesoInicialGramos float64

	SemillaPuraGramos   *float64
	MateriaInerteGramos *float64
	OtrasSemillasGramos *float64
}

func Clonar(p *Pureza) *Pureza {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Analisis = analisis.CopiarCabecera(p.Analisis)
	cp.SemillaPuraGramos = copiar(p.SemillaPuraGramos)
	cp.MateriaInerteGramos = copiar(p.MateriaInerteGramos)
	cp.OtrasSemillasGramos = copiar(p.OtrasSemillasGramos)
	return &cp
}

func copiar(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

var (
	ErrFraccionFaltante = errors.New("all fractions must be recorded")
	ErrExcedePeso       = errors.New("fractions exceed initial weight")
)

func (p *Pureza) fracciones() []*float64 {
	return []*float64{p.SemillaPuraGramos, p.MateriaInerteGramos, p.OtrasSemillasGramos}
}

func ValidarAlta(p *Pureza) error {
	if p.PesoInicialGramos <= 0 {
		return errors.New("peso_inicial_gramos must be positive")
	}
	var suma float64
	for _, f := range p.fracciones() {
		if f == nil {
			continue
		}
		if *f < 0 {
			return errors.New("fractions cannot be negative")
		}
		suma += *f
	}
	if suma > p.PesoInicialGramos {
		return ErrExcedePeso
	}
	return nil
}

func ValidarFinalizacion(p *Pureza) error {
	if err := ValidarAlta(p); err != nil {
		return err
	}
	for _, f := range p.fracciones() {
		if f == nil {
			return ErrFraccionFaltante
		}
	}
	return nil
}

// Porcentaje expresa una fracción sobre el peso inicial; nil si no está cargada.
func (p *Pureza) Porcentaje(f *float64) *float64 {
	if f == nil || p.PesoInicialGramos <= 0 {
		return nil
	}
	v := *f / p.PesoInicialGramos * 100
	return &v
}
