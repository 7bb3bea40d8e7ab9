package pureza

import "lab-semillas/internal/domain/analisis"

type Response struct {
	analisis.CabeceraResponse

	PesoInicialGramos   float64  `json:"peso_inicial_gramos"`
	SemillaPuraGramos   *float64 `json:"semilla_pura_gramos,omitempty"`
	MateriaInerteGramos *float64 `json:"materia_inerte_gramos,omitempty"`
	OtrasSemillasGramos *float64 `json:"otras_semillas_gramos,omitempty"`
	PorcentajePura      *float64 `json:"porcentaje_pura,omitempty"`
	PorcentajeInerte    *float64 `json:"porcentaje_inerte,omitempty"`
	PorcentajeOtras     *float64 `json:"porcentaje_otras,omitempty"`
}

func ToResponse(p *Pureza) Response {
	return Response{
		CabeceraResponse:    analisis.NewCabeceraResponse(&p.Analisis),
		PesoInicialGramos:   p.PesoInicialGramos,
		SemillaPuraGramos:   p.SemillaPuraGramos,
		MateriaInerteGramos: p.MateriaInerteGramos,
		OtrasSemillasGramos: p.OtrasSemillasGramos,
		PorcentajePura:      p.Porcentaje(p.SemillaPuraGramos),
		PorcentajeInerte:    p.Porcentaje(p.MateriaInerteGramos),
		PorcentajeOtras:     p.Porcentaje(p.OtrasSemillasGramos),
	}
}

type Service = analisis.Service[*Pureza, Response]

func NewService(eng *analisis.Engine, lotes analisis.LoteChecker, repo analisis.Repository[*Pureza]) *Service {
	return analisis.NewService(eng, lotes, analisis.Config[*Pureza, Response]{
		Tipo:                analisis.TipoPureza,
		Repo:                repo,
		Mapper:              ToResponse,
		ValidarAlta:         ValidarAlta,
		ValidarFinalizacion: ValidarFinalizacion,
	})
}
