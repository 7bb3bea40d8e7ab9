package pms

import "lab-semillas/internal/domain/analisis"

type Response struct {
	analisis.CabeceraResponse

	Repeticiones            []float64 `json:"repeticiones"`
	CoeficienteVariacionMax float64   `json:"coeficiente_variacion_max"`
	Promedio                float64   `json:"promedio"`
	DesvioEstandar          float64   `json:"desvio_estandar"`
	CoeficienteVariacion    float64   `json:"coeficiente_variacion"`
	PesoMilSemillas         float64   `json:"peso_mil_semillas"`
}

func ToResponse(p *PesoMilSemillas) Response {
	prom, desvio, cv := p.Estadisticas()
	reps := p.Repeticiones
	if reps == nil {
		reps = []float64{}
	}
	return Response{
		CabeceraResponse:        analisis.NewCabeceraResponse(&p.Analisis),
		Repeticiones:            reps,
		CoeficienteVariacionMax: p.CoeficienteVariacionMax,
		Promedio:                prom,
		DesvioEstandar:          desvio,
		CoeficienteVariacion:    cv,
		PesoMilSemillas:         prom * 10,
	}
}

type Service = analisis.Service[*PesoMilSemillas, Response]

func NewService(eng *analisis.Engine, lotes analisis.LoteChecker, repo analisis.Repository[*PesoMilSemillas]) *Service {
	return analisis.NewService(eng, lotes, analisis.Config[*PesoMilSemillas, Response]{
		Tipo:                analisis.TipoPesoMilSemillas,
		Repo:                repo,
		Mapper:              ToResponse,
		ValidarAlta:         ValidarAlta,
		ValidarFinalizacion: ValidarFinalizacion,
	})
}
