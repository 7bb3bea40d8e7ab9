package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"lab-semillas/internal/domain/analisis"
	"lab-semillas/internal/domain/historial"

	_ "modernc.org/sqlite" // driver sqlite en Go puro
)

// HistorialRepo guarda la auditoría en un archivo SQLite local, para
// instalaciones de un solo nodo sin Postgres.
type HistorialRepo struct {
	db *sql.DB
}

func OpenHistorial(path string) (*HistorialRepo, error) {
	if path == "" {
		path = "historial.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Un solo writer: SQLite serializa igual y así evitamos SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS historial (
		id          TEXT PRIMARY KEY,
		tipo        TEXT NOT NULL,
		analisis_id INTEGER NOT NULL,
		usuario_id  INTEGER,
		username    TEXT NOT NULL DEFAULT '',
		accion      TEXT NOT NULL,
		estado      TEXT NOT NULL,
		fecha_ns    INTEGER NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create historial table: %w", err)
	}
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS historial_analisis_idx ON historial (tipo, analisis_id)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create historial index: %w", err)
	}
	return &HistorialRepo{db: db}, nil
}

func (r *HistorialRepo) Close() error { return r.db.Close() }

func (r *HistorialRepo) Create(ctx context.Context, e historial.Entrada) error {
	var uid sql.NullInt64
	if e.UsuarioID != nil {
		uid = sql.NullInt64{Int64: *e.UsuarioID, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO historial (id, tipo, analisis_id, usuario_id, username, accion, estado, fecha_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, string(e.Analisis.Tipo), e.Analisis.ID, uid, e.Username,
		string(e.Accion), string(e.Estado), e.FechaHora.UnixNano(),
	)
	return err
}

func (r *HistorialRepo) ListByAnalisis(ctx context.Context, ref analisis.Ref) ([]historial.Entrada, error) {
	return r.list(ctx, `WHERE tipo = ? AND analisis_id = ?`, string(ref.Tipo), ref.ID)
}

func (r *HistorialRepo) ListByUsuario(ctx context.Context, usuarioID int64) ([]historial.Entrada, error) {
	return r.list(ctx, `WHERE usuario_id = ?`, usuarioID)
}

func (r *HistorialRepo) list(ctx context.Context, where string, args ...any) ([]historial.Entrada, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tipo, analisis_id, usuario_id, username, accion, estado, fecha_ns
		FROM historial `+where+`
		ORDER BY fecha_ns, rowid`, args...)
	if err != nil {
		return nil, fmt.Errorf("select historial: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]historial.Entrada, 0)
	for rows.Next() {
		var (
			e                    historial.Entrada
			tipo, accion, estado string
			uid                  sql.NullInt64
			ns                   int64
		)
		if err := rows.Scan(&e.ID, &tipo, &e.Analisis.ID, &uid, &e.Username, &accion, &estado, &ns); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		e.Analisis.Tipo = analisis.Tipo(tipo)
		e.Accion = historial.Accion(accion)
		e.Estado = analisis.Estado(estado)
		e.FechaHora = time.Unix(0, ns).UTC()
		if uid.Valid {
			v := uid.Int64
			e.UsuarioID = &v
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
