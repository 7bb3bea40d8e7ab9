package postgres

import (
	"context"
	"database/sql"

	"lab-semillas/internal/domain/analisis"
	"lab-semillas/internal/domain/historial"

	"github.com/google/uuid"
)

type HistorialRepo struct {
	db *sql.DB
}

func NewHistorialRepo(db *sql.DB) *HistorialRepo {
	return &HistorialRepo{db: db}
}

func (r *HistorialRepo) Create(ctx context.Context, e historial.Entrada) error {
	id, err := uuid.Parse(e.ID)
	if err != nil {
		return err
	}

	var uid sql.NullInt64
	if e.UsuarioID != nil {
		uid = sql.NullInt64{Int64: *e.UsuarioID, Valid: true}
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO historial (id, tipo, analisis_id, usuario_id, username, accion, estado, fecha_hora)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		id,
		string(e.Analisis.Tipo),
		e.Analisis.ID,
		uid,
		e.Username,
		string(e.Accion),
		string(e.Estado),
		e.FechaHora.UTC(),
	)
	return err
}

func (r *HistorialRepo) ListByAnalisis(ctx context.Context, ref analisis.Ref) ([]historial.Entrada, error) {
	return r.list(ctx, `WHERE tipo = $1 AND analisis_id = $2`, string(ref.Tipo), ref.ID)
}

func (r *HistorialRepo) ListByUsuario(ctx context.Context, usuarioID int64) ([]historial.Entrada, error) {
	return r.list(ctx, `WHERE usuario_id = $1`, usuarioID)
}

func (r *HistorialRepo) list(ctx context.Context, where string, args ...any) ([]historial.Entrada, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id::text, tipo, analisis_id, usuario_id, username, accion, estado, fecha_hora
		FROM historial
		`+where+`
		ORDER BY fecha_hora, seq
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]historial.Entrada, 0)
	for rows.Next() {
		var (
			e                    historial.Entrada
			tipo, accion, estado string
			uid                  sql.NullInt64
		)
		if err := rows.Scan(&e.ID, &tipo, &e.Analisis.ID, &uid, &e.Username, &accion, &estado, &e.FechaHora); err != nil {
			return nil, err
		}
		e.Analisis.Tipo = analisis.Tipo(tipo)
		e.Accion = historial.Accion(accion)
		e.Estado = analisis.Estado(estado)
		e.FechaHora = e.FechaHora.UTC()
		if uid.Valid {
			v := uid.Int64
			e.UsuarioID = &v
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
