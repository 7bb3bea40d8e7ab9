package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"lab-semillas/internal/domain/analisis"
	"lab-semillas/internal/domain/historial"
)

type historialRepo struct {
	mu       sync.RWMutex
	entradas []historial.Entrada
	ids      map[string]struct{}
}

func NewHistorialRepo() historial.Repository {
	return &historialRepo{ids: make(map[string]struct{})}
}

func (r *historialRepo) Create(ctx context.Context, e historial.Entrada) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" {
		return errors.New("history entry id required")
	}
	if _, exists := r.ids[e.ID]; exists {
		return errors.New("history entry already exists")
	}
	r.ids[e.ID] = struct{}{}
	r.entradas = append(r.entradas, e)
	return nil
}

func (r *historialRepo) ListByAnalisis(ctx context.Context, ref analisis.Ref) ([]historial.Entrada, error) {
	return r.filtrar(func(e historial.Entrada) bool { return e.Analisis == ref }), nil
}

func (r *historialRepo) ListByUsuario(ctx context.Context, usuarioID int64) ([]historial.Entrada, error) {
	return r.filtrar(func(e historial.Entrada) bool {
		return e.UsuarioID != nil && *e.UsuarioID == usuarioID
	}), nil
}

func (r *historialRepo) filtrar(keep func(historial.Entrada) bool) []historial.Entrada {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]historial.Entrada, 0)
	for _, e := range r.entradas {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
