package postgres

import (
	"database/sql"

	"lab-semillas/internal/domain/analisis"
	"lab-semillas/internal/domain/germinacion"
	"lab-semillas/internal/domain/pms"
	"lab-semillas/internal/domain/pureza"
	"lab-semillas/internal/domain/tetrazolio"

	"github.com/jackc/pgx/v5/pgtype"
)

// typeMap resuelve el Scan de arrays (double precision[]) vía database/sql.
var typeMap = pgtype.NewMap()

func NewGerminacionRepo(db *sql.DB) *AnalisisRepo[*germinacion.Germinacion] {
	return NewAnalisisRepo(db, analisis.TipoGerminacion, Tabla[*germinacion.Germinacion]{
		Nombre:   "germinaciones",
		Columnas: []string{"numero_dias", "semillas_por_repeticion", "repeticiones", "porcentaje_normales"},
		Nuevo:    func() *germinacion.Germinacion { return &germinacion.Germinacion{} },
		Destinos: func(g *germinacion.Germinacion) []any {
			return []any{&g.NumeroDias, &g.SemillasPorRepeticion, &g.Repeticiones, &g.PorcentajeNormales}
		},
		Valores: func(g *germinacion.Germinacion) []any {
			return []any{g.NumeroDias, g.SemillasPorRepeticion, g.Repeticiones, g.PorcentajeNormales}
		},
	})
}

func NewPurezaRepo(db *sql.DB) *AnalisisRepo[*pureza.Pureza] {
	return NewAnalisisRepo(db, analisis.TipoPureza, Tabla[*pureza.Pureza]{
		Nombre:   "purezas",
		Columnas: []string{"peso_inicial_gramos", "semilla_pura_gramos", "materia_inerte_gramos", "otras_semillas_gramos"},
		Nuevo:    func() *pureza.Pureza { return &pureza.Pureza{} },
		Destinos: func(p *pureza.Pureza) []any {
			return []any{&p.PesoInicialGramos, &p.SemillaPuraGramos, &p.MateriaInerteGramos, &p.OtrasSemillasGramos}
		},
		Valores: func(p *pureza.Pureza) []any {
			return []any{p.PesoInicialGramos, p.SemillaPuraGramos, p.MateriaInerteGramos, p.OtrasSemillasGramos}
		},
	})
}

func NewPMSRepo(db *sql.DB) *AnalisisRepo[*pms.PesoMilSemillas] {
	return NewAnalisisRepo(db, analisis.TipoPesoMilSemillas, Tabla[*pms.PesoMilSemillas]{
		Nombre:   "pms",
		Columnas: []string{"repeticiones", "coeficiente_variacion_max"},
		Nuevo:    func() *pms.PesoMilSemillas { return &pms.PesoMilSemillas{} },
		Destinos: func(p *pms.PesoMilSemillas) []any {
			return []any{typeMap.SQLScanner(&p.Repeticiones), &p.CoeficienteVariacionMax}
		},
		Valores: func(p *pms.PesoMilSemillas) []any {
			reps := p.Repeticiones
			if reps == nil {
				reps = []float64{}
			}
			return []any{reps, p.CoeficienteVariacionMax}
		},
	})
}

func NewTetrazolioRepo(db *sql.DB) *AnalisisRepo[*tetrazolio.Tetrazolio] {
	return NewAnalisisRepo(db, analisis.TipoTetrazolio, Tabla[*tetrazolio.Tetrazolio]{
		Nombre:   "tetrazolios",
		Columnas: []string{"semillas_evaluadas", "viables"},
		Nuevo:    func() *tetrazolio.Tetrazolio { return &tetrazolio.Tetrazolio{} },
		Destinos: func(t *tetrazolio.Tetrazolio) []any {
			return []any{&t.SemillasEvaluadas, &t.Viables}
		},
		Valores: func(t *tetrazolio.Tetrazolio) []any {
			return []any{t.SemillasEvaluadas, t.Viables}
		},
	})
}
