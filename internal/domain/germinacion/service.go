package germinacion

import "lab-semillas/internal/domain/analisis"

type Response struct {
	analisis.CabeceraResponse

	NumeroDias            int      `json:"numero_dias"`
	SemillasPorRepeticion int      `json:"semillas_por_repeticion"`
	Repeticiones          int      `json:"repeticiones"`
	TotalSemillas         int      `json:"total_semillas"`
	PorcentajeNormales    *float64 `json:"porcentaje_normales,omitempty"`
}

func ToResponse(g *Germinacion) Response {
	return Response{
		CabeceraResponse:      analisis.NewCabeceraResponse(&g.Analisis),
		NumeroDias:            g.NumeroDias,
		SemillasPorRepeticion: g.SemillasPorRepeticion,
		Repeticiones:          g.Repeticiones,
		TotalSemillas:         g.SemillasPorRepeticion * g.Repeticiones,
		PorcentajeNormales:    g.PorcentajeNormales,
	}
}

type Service = analisis.Service[*Germinacion, Response]

func NewService(eng *analisis.Engine, lotes analisis.LoteChecker, repo analisis.Repository[*Germinacion]) *Service {
	return analisis.NewService(eng, lotes, analisis.Config[*Germinacion, Response]{
		Tipo:                analisis.TipoGerminacion,
		Repo:                repo,
		Mapper:              ToResponse,
		ValidarAlta:         ValidarAlta,
		ValidarFinalizacion: ValidarFinalizacion,
	})
}
