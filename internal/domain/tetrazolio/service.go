package tetrazolio

import "lab-semillas/internal/domain/analisis"

type Response struct {
	analisis.CabeceraResponse

	SemillasEvaluadas    int      `json:"semillas_evaluadas"`
	Viables              *int     `json:"viables,omitempty"`
	PorcentajeViabilidad *float64 `json:"porcentaje_viabilidad,omitempty"`
}

func ToResponse(t *Tetrazolio) Response {
	return Response{
		CabeceraResponse:     analisis.NewCabeceraResponse(&t.Analisis),
		SemillasEvaluadas:    t.SemillasEvaluadas,
		Viables:              t.Viables,
		PorcentajeViabilidad: t.PorcentajeViabilidad(),
	}
}

type Service = analisis.Service[*Tetrazolio, Response]

func NewService(eng *analisis.Engine, lotes analisis.LoteChecker, repo analisis.Repository[*Tetrazolio]) *Service {
	return analisis.NewService(eng, lotes, analisis.Config[*Tetrazolio, Response]{
		Tipo:                analisis.TipoTetrazolio,
		Repo:                repo,
		Mapper:              ToResponse,
		ValidarAlta:         ValidarAlta,
		ValidarFinalizacion: ValidarFinalizacion,
	})
}
