package memory

import (
	"context"
	"sync"

	"lab-semillas/internal/domain/lotes"
)

type LoteRepo struct {
	mu   sync.RWMutex
	seq  int64
	byID map[int64]lotes.Lote
}

func NewLoteRepo() *LoteRepo {
	return &LoteRepo{
		byID: make(map[int64]lotes.Lote),
	}
}

func (r *LoteRepo) Create(ctx context.Context, l lotes.Lote) (lotes.Lote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	l.ID = r.seq
	r.byID[l.ID] = l
	return l, nil
}

func (r *LoteRepo) GetByID(ctx context.Context, id int64) (lotes.Lote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.byID[id]
	if !ok {
		return lotes.Lote{}, lotes.ErrNotFound
	}
	return l, nil
}
