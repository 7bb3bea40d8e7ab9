package memory

import (
	"context"
	"testing"
	"time"

	"lab-semillas/internal/domain/analisis"
	"lab-semillas/internal/domain/dashboard"
	"lab-semillas/internal/domain/germinacion"
	"lab-semillas/internal/domain/lotes"
	"lab-semillas/internal/domain/tetrazolio"
	"lab-semillas/internal/ports/auth"
)

func adminActor() auth.Actor { return auth.Actor{Username: "jefe", Rol: auth.RolAdmin} }

func TestDashboardRepo_PendientesAcrossSubtypes(t *testing.T) {
	ctx := context.Background()
	lr := NewLoteRepo()
	l1, _ := lr.Create(ctx, lotes.Lote{Ficha: "F-001", Especie: "Trigo", Activo: true})
	l2, _ := lr.Create(ctx, lotes.Lote{Ficha: "F-002", Especie: "Soja", Activo: true})

	germ := NewAnalisisRepo(germinacion.Clonar)
	tz := NewAnalisisRepo(tetrazolio.Clonar)

	// Mismo ID (1) en dos tablas distintas sobre el mismo lote.
	mustSave(t, germ, nuevaGerminacion(l1.ID))
	mustSaveTz(t, tz, l1.ID, analisis.EstadoEnProceso)
	mustSave(t, germ, nuevaGerminacion(l2.ID))
	mustSaveTz(t, tz, l2.ID, analisis.EstadoAprobado) // no pendiente

	inactivo := nuevaGerminacion(l2.ID)
	inactivo.Activo = false
	mustSave(t, germ, inactivo)

	repo := NewDashboardRepo(lr, germ, tz)

	var (
		vistos []dashboard.Resumen
		cursor string
	)
	for {
		p, err := dashboard.Paginar[dashboard.Resumen](ctx, cursor, 1, repo.Pendientes)
		if err != nil {
			t.Fatalf("paginar: %v", err)
		}
		vistos = append(vistos, p.Items...)
		if p.SiguienteCursor == "" {
			break
		}
		cursor = p.SiguienteCursor
	}

	if len(vistos) != 3 {
		t.Fatalf("expected 3 pending analyses, got %d: %#v", len(vistos), vistos)
	}
	// Orden descendente: F-002 primero, luego F-001 TETRAZOLIO, luego F-001 GERMINACION.
	if vistos[0].Ficha != "F-002" ||
		vistos[1].Tipo != analisis.TipoTetrazolio ||
		vistos[2].Tipo != analisis.TipoGerminacion {
		t.Fatalf("unexpected order %#v", vistos)
	}
}

func TestDashboardRepo_PorAprobarByDueDate(t *testing.T) {
	ctx := context.Background()
	lr := NewLoteRepo()
	pronto := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	tarde := pronto.AddDate(0, 1, 0)
	la, _ := lr.Create(ctx, lotes.Lote{Ficha: "A", FechaEntrega: &pronto, Activo: true})
	lb, _ := lr.Create(ctx, lotes.Lote{Ficha: "B", FechaEntrega: &tarde, Activo: true})
	lc, _ := lr.Create(ctx, lotes.Lote{Ficha: "C", Activo: true})

	tz := NewAnalisisRepo(tetrazolio.Clonar)
	for _, id := range []int64{la.ID, lb.ID, lc.ID} {
		mustSaveTz(t, tz, id, analisis.EstadoPendienteAprobacion)
	}
	mustSaveTz(t, tz, la.ID, analisis.EstadoEnProceso)

	repo := NewDashboardRepo(lr, tz)
	out, err := repo.PorAprobar(ctx, nil, 10)
	if err != nil {
		t.Fatalf("por aprobar: %v", err)
	}
	if len(out) != 3 || out[0].LoteID != lb.ID || out[1].LoteID != la.ID || out[2].LoteID != lc.ID {
		t.Fatalf("unexpected order %#v", out)
	}
}

func mustSave(t *testing.T, repo *AnalisisRepo[*germinacion.Germinacion], g *germinacion.Germinacion) {
	t.Helper()
	if _, err := repo.Save(context.Background(), g); err != nil {
		t.Fatalf("save: %v", err)
	}
}

func mustSaveTz(t *testing.T, repo *AnalisisRepo[*tetrazolio.Tetrazolio], loteID int64, estado analisis.Estado) {
	t.Helper()
	tz := &tetrazolio.Tetrazolio{
		Analisis:          analisis.Analisis{Tipo: analisis.TipoTetrazolio, LoteID: loteID, Estado: estado, Activo: true},
		SemillasEvaluadas: 100,
	}
	if _, err := repo.Save(context.Background(), tz); err != nil {
		t.Fatalf("save: %v", err)
	}
}
