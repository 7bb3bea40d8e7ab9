package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"lab-semillas/internal/domain/usuarios"
	"lab-semillas/internal/ports/auth"
)

type UsuariosRepo struct {
	db *sql.DB
}

func NewUsuariosRepo(db *sql.DB) *UsuariosRepo {
	return &UsuariosRepo{db: db}
}

func (r *UsuariosRepo) GetByUsername(ctx context.Context, username string) (usuarios.Usuario, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return usuarios.Usuario{}, usuarios.ErrNotFound
	}

	var (
		u   usuarios.Usuario
		rol string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, nombre, rol, activo
		FROM usuarios
		WHERE lower(username) = lower($1) AND activo
	`, username).Scan(&u.ID, &u.Username, &u.Nombre, &rol, &u.Activo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return usuarios.Usuario{}, usuarios.ErrNotFound
		}
		return usuarios.Usuario{}, err
	}
	u.Rol = auth.ParseRol(rol)
	return u, nil
}

// Upsert da de alta (o actualiza) usuarios conocidos; lo usa el seed de DEV_USERS.
func (r *UsuariosRepo) Upsert(ctx context.Context, u usuarios.Usuario) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO usuarios (username, nombre, rol, activo)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (username) DO UPDATE
		SET nombre = EXCLUDED.nombre, rol = EXCLUDED.rol, activo = EXCLUDED.activo
	`, u.Username, u.Nombre, string(u.Rol), u.Activo)
	return err
}
