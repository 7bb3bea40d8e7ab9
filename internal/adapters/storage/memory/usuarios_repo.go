package memory

import (
	"context"
	"strings"
	"sync"

	"lab-semillas/internal/domain/usuarios"
)

type usuarioRepo struct {
	mu         sync.RWMutex
	byUsername map[string]usuarios.Usuario
}

// NewUsuarioRepo arranca con los usuarios dados (modo dev: DEV_USERS).
func NewUsuarioRepo(seed []usuarios.Usuario) usuarios.Repository {
	r := &usuarioRepo{byUsername: make(map[string]usuarios.Usuario, len(seed))}
	for _, u := range seed {
		r.byUsername[strings.ToLower(u.Username)] = u
	}
	return r
}

func (r *usuarioRepo) GetByUsername(ctx context.Context, username string) (usuarios.Usuario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byUsername[strings.ToLower(strings.TrimSpace(username))]
	if !ok || !u.Activo {
		return usuarios.Usuario{}, usuarios.ErrNotFound
	}
	return u, nil
}
