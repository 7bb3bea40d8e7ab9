package memory

import (
	"context"
	"sort"
	"sync"

	"lab-semillas/internal/domain/analisis"
)

// AnalisisRepo guarda un subtipo de análisis. Guarda y devuelve copias para que
// nadie mute el estado del repo por fuera de Save.
type AnalisisRepo[T analisis.Entidad] struct {
	mu     sync.RWMutex
	seq    int64
	byID   map[int64]T
	clonar func(T) T

	lotesMu sync.Mutex
	locks   map[int64]*loteLock
}

func NewAnalisisRepo[T analisis.Entidad](clonar func(T) T) *AnalisisRepo[T] {
	return &AnalisisRepo[T]{
		byID:   make(map[int64]T),
		clonar: clonar,
		locks:  make(map[int64]*loteLock),
	}
}

var _ analisis.Transaccional = (*AnalisisRepo[*analisis.Analisis])(nil)

func (r *AnalisisRepo[T]) FindByID(ctx context.Context, id int64) (T, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		var zero T
		return zero, false, nil
	}
	return r.clonar(e), true, nil
}

func (r *AnalisisRepo[T]) Save(ctx context.Context, e T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero T
	cp := r.clonar(e)
	a := cp.Cabecera()

	if a.ID == 0 {
		r.seq++
		a.ID = r.seq
		a.Version = 1
	} else {
		actual, ok := r.byID[a.ID]
		if !ok {
			return zero, analisis.ErrNotFound
		}
		if actual.Cabecera().Version != a.Version {
			return zero, analisis.ErrConflict
		}
		a.Version++
	}

	r.byID[a.ID] = cp
	return r.clonar(cp), nil
}

func (r *AnalisisRepo[T]) ListByLote(ctx context.Context, loteID int64) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]T, 0)
	for _, e := range r.byID {
		if e.Cabecera().LoteID == loteID {
			out = append(out, r.clonar(e))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Cabecera().ID < out[j].Cabecera().ID
	})
	return out, nil
}

// Cabeceras alimenta el dashboard en memoria.
func (r *AnalisisRepo[T]) Cabeceras() []analisis.Analisis {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]analisis.Analisis, 0, len(r.byID))
	for _, e := range r.byID {
		out = append(out, analisis.CopiarCabecera(*e.Cabecera()))
	}
	return out
}

// loteLock cuenta quién espera o tiene el lock; en 0 sale del mapa.
type loteLock struct {
	mu   sync.Mutex
	refs int
}

// EnLote serializa las operaciones sobre un mismo lote.
func (r *AnalisisRepo[T]) EnLote(ctx context.Context, loteID int64, fn func(ctx context.Context) error) error {
	r.lotesMu.Lock()
	l, ok := r.locks[loteID]
	if !ok {
		l = &loteLock{}
		r.locks[loteID] = l
	}
	l.refs++
	r.lotesMu.Unlock()

	l.mu.Lock()
	defer func() {
		l.mu.Unlock()
		r.lotesMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(r.locks, loteID)
		}
		r.lotesMu.Unlock()
	}()
	return fn(ctx)
}
