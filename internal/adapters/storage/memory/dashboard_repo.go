package memory

import (
	"context"
	"errors"
	"sort"

	"lab-semillas/internal/domain/analisis"
	"lab-semillas/internal/domain/dashboard"
	"lab-semillas/internal/domain/lotes"
)

// FuenteCabeceras es cualquier repo de subtipo que expone sus cabeceras.
type FuenteCabeceras interface {
	Cabeceras() []analisis.Analisis
}

type dashboardRepo struct {
	lotes   lotes.Repository
	fuentes []FuenteCabeceras
}

func NewDashboardRepo(l lotes.Repository, fuentes ...FuenteCabeceras) dashboard.Repository {
	return &dashboardRepo{lotes: l, fuentes: fuentes}
}

func (r *dashboardRepo) Pendientes(ctx context.Context, despues *dashboard.Cursor, limite int) ([]dashboard.Resumen, error) {
	return r.cola(ctx, despues, limite,
		dashboard.EsPendiente,
		func(l lotes.Lote, t analisis.Tipo) string { return dashboard.ClavePendiente(l.Ficha, t) },
	)
}

func (r *dashboardRepo) PorAprobar(ctx context.Context, despues *dashboard.Cursor, limite int) ([]dashboard.Resumen, error) {
	return r.cola(ctx, despues, limite,
		func(e analisis.Estado) bool { return e == analisis.EstadoPendienteAprobacion },
		func(l lotes.Lote, t analisis.Tipo) string { return dashboard.ClavePorAprobar(l.FechaEntrega, t) },
	)
}

func (r *dashboardRepo) cola(
	ctx context.Context,
	despues *dashboard.Cursor,
	limite int,
	incluir func(analisis.Estado) bool,
	clave func(lotes.Lote, analisis.Tipo) string,
) ([]dashboard.Resumen, error) {
	out := make([]dashboard.Resumen, 0)
	cache := map[int64]lotes.Lote{}

	for _, f := range r.fuentes {
		for _, a := range f.Cabeceras() {
			if !a.Activo || !incluir(a.Estado) {
				continue
			}

			l, ok := cache[a.LoteID]
			if !ok {
				var err error
				l, err = r.lotes.GetByID(ctx, a.LoteID)
				if errors.Is(err, lotes.ErrNotFound) {
					continue
				}
				if err != nil {
					return nil, err
				}
				cache[a.LoteID] = l
			}

			res := dashboard.Resumen{
				Tipo:         a.Tipo,
				ID:           a.ID,
				LoteID:       a.LoteID,
				Ficha:        l.Ficha,
				Especie:      l.Especie,
				Estado:       a.Estado,
				FechaInicio:  a.FechaInicio,
				FechaEntrega: l.FechaEntrega,
				Clave:        clave(l, a.Tipo),
			}
			if despues != nil && !dashboard.Antes(*despues, res.Posicion()) {
				continue
			}
			out = append(out, res)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return dashboard.Antes(out[i].Posicion(), out[j].Posicion())
	})
	if limite > 0 && len(out) > limite {
		out = out[:limite]
	}
	return out, nil
}
