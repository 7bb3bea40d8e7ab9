package analisis

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"lab-semillas/internal/ports/auth"
)

// -------------------------
// Fakes
// -------------------------

var (
	analista   = auth.Actor{Username: "ana", Rol: auth.RolAnalista}
	admin      = auth.Actor{Username: "jefe", Rol: auth.RolAdmin}
	fechaFija  = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	errRepoOff = errors.New("repo: offline")
)

// muestra es un subtipo mínimo para ejercitar las variantes genéricas.
type muestra struct {
	Analisis
	Dato int
}

type auditoria struct {
	accion string
	ref    Ref
	estado Estado
}

type fakeAuditor struct {
	mu        sync.Mutex
	registros []auditoria
}

func (f *fakeAuditor) RegistrarCreacion(_ context.Context, _ auth.ActorContext, a *Analisis) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registros = append(f.registros, auditoria{accion: "CREACION", ref: a.Ref(), estado: a.Estado})
}

func (f *fakeAuditor) RegistrarModificacion(_ context.Context, _ auth.ActorContext, a *Analisis) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registros = append(f.registros, auditoria{accion: "MODIFICACION", ref: a.Ref(), estado: a.Estado})
}

func (f *fakeAuditor) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.registros)
}

type fakeNotificador struct {
	err     error
	panicar bool
	eventos []Evento
}

func (f *fakeNotificador) Notificar(_ context.Context, ev Evento) error {
	if f.panicar {
		panic("smtp exploded")
	}
	f.eventos = append(f.eventos, ev)
	return f.err
}

type fakeMetricas struct {
	transiciones  map[string]int
	notifFallidas int
}

func newFakeMetricas() *fakeMetricas {
	return &fakeMetricas{transiciones: map[string]int{}}
}

func (m *fakeMetricas) Transicion(_ Tipo, operacion string, err error) {
	key := operacion + ":ok"
	if err != nil {
		key = operacion + ":error"
	}
	m.transiciones[key]++
}

func (m *fakeMetricas) NotificacionFallida(EventoTipo) { m.notifFallidas++ }

// testRepo guarda copias; Save compara Version como lo hacen los adapters reales.
type testRepo struct {
	mu     sync.Mutex
	seq    int64
	byID   map[int64]muestra
	saves  int
	failOn bool
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[int64]muestra{}}
}

func (r *testRepo) FindByID(_ context.Context, id int64) (*muestra, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failOn {
		return nil, false, errRepoOff
	}
	m, ok := r.byID[id]
	if !ok {
		return nil, false, nil
	}
	return &m, true, nil
}

func (r *testRepo) Save(_ context.Context, e *muestra) (*muestra, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failOn {
		return nil, errRepoOff
	}
	r.saves++

	cp := *e
	if cp.ID == 0 {
		r.seq++
		cp.ID = r.seq
		cp.Version = 1
	} else {
		actual, ok := r.byID[cp.ID]
		if !ok {
			return nil, notFound(cp.ID)
		}
		if actual.Version != cp.Version {
			return nil, ErrConflict
		}
		cp.Version++
	}
	r.byID[cp.ID] = cp
	out := cp
	return &out, nil
}

func (r *testRepo) ListByLote(_ context.Context, loteID int64) ([]*muestra, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*muestra, 0)
	for _, m := range r.byID {
		if m.LoteID == loteID {
			cp := m
			out = append(out, &cp)
		}
	}
	return out, nil
}

// put siembra un análisis en un estado dado, salteando el workflow.
func (r *testRepo) put(t *testing.T, loteID int64, estado Estado, activo bool) int64 {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	r.byID[r.seq] = muestra{Analisis: Analisis{
		ID: r.seq, Tipo: TipoGerminacion, LoteID: loteID,
		Estado: estado, Activo: activo, Version: 1,
	}}
	return r.seq
}

func (r *testRepo) get(t *testing.T, id int64) muestra {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.byID[id]
	if !ok {
		t.Fatalf("analysis %d not stored", id)
	}
	return m
}

// lockedRepo agrega la capacidad Transaccional.
type lockedRepo struct {
	*testRepo
	enLote int
	lock   sync.Mutex
}

func (r *lockedRepo) EnLote(ctx context.Context, _ int64, fn func(ctx context.Context) error) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.enLote++
	return fn(ctx)
}

func newTestEngine() (*Engine, *fakeAuditor, *fakeNotificador, *fakeMetricas) {
	aud := &fakeAuditor{}
	notif := &fakeNotificador{}
	met := newFakeMetricas()
	eng := NewEngine(Options{Auditor: aud, Notificador: notif, Metricas: met})
	eng.now = func() time.Time { return fechaFija }
	return eng, aud, notif, met
}

func mapMuestra(m *muestra) muestra { return *m }
