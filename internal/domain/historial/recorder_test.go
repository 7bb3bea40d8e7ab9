package historial

import (
	"context"
	"errors"
	"testing"
	"time"

	"lab-semillas/internal/domain/analisis"
	"lab-semillas/internal/domain/usuarios"
	"lab-semillas/internal/ports/auth"
)

// -------------------------
// Fakes
// -------------------------

type testRepo struct {
	entradas []Entrada
	err      error
	panicar  bool
}

func (r *testRepo) Create(_ context.Context, e Entrada) error {
	if r.panicar {
		panic("disk on fire")
	}
	if r.err != nil {
		return r.err
	}
	r.entradas = append(r.entradas, e)
	return nil
}

func (r *testRepo) ListByAnalisis(_ context.Context, ref analisis.Ref) ([]Entrada, error) {
	out := make([]Entrada, 0)
	for _, e := range r.entradas {
		if e.Analisis == ref {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *testRepo) ListByUsuario(_ context.Context, usuarioID int64) ([]Entrada, error) {
	out := make([]Entrada, 0)
	for _, e := range r.entradas {
		if e.UsuarioID != nil && *e.UsuarioID == usuarioID {
			out = append(out, e)
		}
	}
	return out, nil
}

type testUsuarios struct {
	byUsername map[string]usuarios.Usuario
	err        error
}

func (u testUsuarios) GetByUsername(_ context.Context, username string) (usuarios.Usuario, error) {
	if u.err != nil {
		return usuarios.Usuario{}, u.err
	}
	usr, ok := u.byUsername[username]
	if !ok {
		return usuarios.Usuario{}, usuarios.ErrNotFound
	}
	return usr, nil
}

type testMetricas map[string]int

func (m testMetricas) AuditoriaOmitida(motivo string) { m[motivo]++ }

func newTestRecorder(repo *testRepo, usrs testUsuarios) (*Recorder, testMetricas) {
	met := testMetricas{}
	rec := NewRecorder(repo, usrs, Options{Metricas: met})

	// Reloj determinístico: cada llamada avanza un minuto.
	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	n := 0
	rec.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Minute)
	}
	return rec, met
}

var (
	usrs = testUsuarios{byUsername: map[string]usuarios.Usuario{
		"ana": {ID: 1, Username: "ana", Rol: auth.RolAnalista, Activo: true},
	}}
	ana = auth.Actor{Username: "ana", Rol: auth.RolAnalista}
)

func germinacion(id int64, estado analisis.Estado) *analisis.Analisis {
	return &analisis.Analisis{ID: id, Tipo: analisis.TipoGerminacion, LoteID: 1, Estado: estado, Activo: true}
}

func TestRecorder_RecordsCreationAndModification(t *testing.T) {
	repo := &testRepo{}
	rec, _ := newTestRecorder(repo, usrs)
	ctx := context.Background()

	rec.RegistrarCreacion(ctx, ana, germinacion(5, analisis.EstadoRegistrado))
	rec.RegistrarModificacion(ctx, ana, germinacion(5, analisis.EstadoEnProceso))

	if len(repo.entradas) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(repo.entradas))
	}
	first := repo.entradas[0]
	if first.ID == "" || first.Accion != AccionCreacion || first.UsuarioID == nil || *first.UsuarioID != 1 {
		t.Fatalf("unexpected creation entry %#v", first)
	}
	if repo.entradas[1].Accion != AccionModificacion || repo.entradas[1].Estado != analisis.EstadoEnProceso {
		t.Fatalf("unexpected modification entry %#v", repo.entradas[1])
	}
	if first.ID == repo.entradas[1].ID {
		t.Fatalf("entry ids must be unique")
	}
}

func TestRecorder_SkipsWithoutFailing(t *testing.T) {
	cases := []struct {
		name   string
		actor  auth.ActorContext
		usrs   testUsuarios
		repo   *testRepo
		motivo string
	}{
		{"sin actor", nil, usrs, &testRepo{}, MotivoSinSesion},
		{"username vacío", auth.Actor{Rol: auth.RolAdmin}, usrs, &testRepo{}, MotivoSinSesion},
		{"usuario desconocido", auth.Actor{Username: "ghost"}, usrs, &testRepo{}, MotivoUsuarioDesconocido},
		{"lookup falla", ana, testUsuarios{err: errors.New("db down")}, &testRepo{}, MotivoErrorUsuario},
		{"repo falla", ana, usrs, &testRepo{err: errors.New("insert failed")}, MotivoErrorRepositorio},
		{"repo panic", ana, usrs, &testRepo{panicar: true}, MotivoErrorRepositorio},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, met := newTestRecorder(tc.repo, tc.usrs)

			rec.RegistrarModificacion(context.Background(), tc.actor, germinacion(1, analisis.EstadoEnProceso))

			if len(tc.repo.entradas) != 0 {
				t.Fatalf("expected no entries, got %d", len(tc.repo.entradas))
			}
			if met[tc.motivo] != 1 {
				t.Fatalf("expected skip reason %q counted, got %#v", tc.motivo, met)
			}
		})
	}
}

func TestRecorder_IgnoresUnsavedAnalysis(t *testing.T) {
	repo := &testRepo{}
	rec, met := newTestRecorder(repo, usrs)

	rec.RegistrarCreacion(context.Background(), ana, nil)
	rec.RegistrarCreacion(context.Background(), ana, &analisis.Analisis{Tipo: analisis.TipoPureza})

	if len(repo.entradas) != 0 || len(met) != 0 {
		t.Fatalf("expected nothing recorded for nil/unsaved analysis")
	}
}

func TestObtenerHistorial_MostRecentFirst(t *testing.T) {
	repo := &testRepo{}
	rec, _ := newTestRecorder(repo, usrs)
	ctx := context.Background()

	rec.RegistrarCreacion(ctx, ana, germinacion(9, analisis.EstadoRegistrado))
	rec.RegistrarModificacion(ctx, ana, germinacion(9, analisis.EstadoEnProceso))
	rec.RegistrarModificacion(ctx, ana, germinacion(9, analisis.EstadoPendienteAprobacion))
	// Mismo id, otro subtipo: no debe mezclarse.
	rec.RegistrarCreacion(ctx, ana, &analisis.Analisis{ID: 9, Tipo: analisis.TipoTetrazolio, LoteID: 1, Activo: true})

	out, err := rec.ObtenerHistorialAnalisis(ctx, analisis.Ref{Tipo: analisis.TipoGerminacion, ID: 9})
	if err != nil {
		t.Fatalf("historial: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(out))
	}
	for i := 1; i < len(out); i++ {
		if out[i].FechaHora.After(out[i-1].FechaHora) {
			t.Fatalf("entries not ordered most recent first: %v", out)
		}
	}
	if out[0].Estado != analisis.EstadoPendienteAprobacion || out[2].Accion != AccionCreacion {
		t.Fatalf("unexpected order %#v", out)
	}

	porUsuario, err := rec.ObtenerHistorialUsuario(ctx, 1)
	if err != nil || len(porUsuario) != 4 {
		t.Fatalf("expected 4 entries for user 1, got %d (%v)", len(porUsuario), err)
	}
}

func TestObtenerHistorial_SameTimestampNewestFirst(t *testing.T) {
	repo := &testRepo{}
	rec, _ := newTestRecorder(repo, usrs)
	ctx := context.Background()

	fijo := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	rec.now = func() time.Time { return fijo }

	rec.RegistrarCreacion(ctx, ana, germinacion(4, analisis.EstadoRegistrado))
	rec.RegistrarModificacion(ctx, ana, germinacion(4, analisis.EstadoEnProceso))
	rec.RegistrarModificacion(ctx, ana, germinacion(4, analisis.EstadoPendienteAprobacion))

	out, err := rec.ObtenerHistorialAnalisis(ctx, analisis.Ref{Tipo: analisis.TipoGerminacion, ID: 4})
	if err != nil {
		t.Fatalf("historial: %v", err)
	}
	want := []analisis.Estado{analisis.EstadoPendienteAprobacion, analisis.EstadoEnProceso, analisis.EstadoRegistrado}
	if len(out) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(out))
	}
	for i, e := range out {
		if e.Estado != want[i] {
			t.Fatalf("pos %d: expected %s, got %s", i, want[i], e.Estado)
		}
	}
	if out[2].Accion != AccionCreacion {
		t.Fatalf("expected creation last, got %s", out[2].Accion)
	}
}

func TestObtenerHistorial_EmptyInput(t *testing.T) {
	rec, _ := newTestRecorder(&testRepo{}, usrs)

	out, err := rec.ObtenerHistorialAnalisis(context.Background(), analisis.Ref{})
	if err != nil || out == nil || len(out) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v (%v)", out, err)
	}
	out, err = rec.ObtenerHistorialUsuario(context.Background(), 0)
	if err != nil || out == nil || len(out) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v (%v)", out, err)
	}
}
