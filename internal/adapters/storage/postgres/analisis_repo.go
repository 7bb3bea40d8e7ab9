package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"lab-semillas/internal/domain/analisis"
)

// Tabla describe cómo mapear un subtipo a su tabla. Las columnas comunes
// (id, lote_id, estado, activo, fechas, comentarios, version) las maneja AnalisisRepo.
type Tabla[T analisis.Entidad] struct {
	Nombre   string
	Columnas []string
	Nuevo    func() T
	// Destinos devuelve los punteros de Scan para Columnas, en orden.
	Destinos func(T) []any
	// Valores devuelve los argumentos de INSERT/UPDATE para Columnas, en orden.
	Valores func(T) []any
}

const columnasComunes = "id, lote_id, estado, activo, fecha_inicio, fecha_fin, comentarios, version"

type AnalisisRepo[T analisis.Entidad] struct {
	db   *sql.DB
	tipo analisis.Tipo
	t    Tabla[T]

	selectSQL string
	insertSQL string
	updateSQL string
}

func NewAnalisisRepo[T analisis.Entidad](db *sql.DB, tipo analisis.Tipo, t Tabla[T]) *AnalisisRepo[T] {
	r := &AnalisisRepo[T]{db: db, tipo: tipo, t: t}

	propias := strings.Join(t.Columnas, ", ")
	r.selectSQL = fmt.Sprintf("SELECT %s, %s FROM %s", columnasComunes, propias, t.Nombre)

	// $1..$6 son comunes; las propias siguen a partir de $7.
	ph := make([]string, len(t.Columnas))
	sets := make([]string, len(t.Columnas))
	for i, c := range t.Columnas {
		ph[i] = "$" + strconv.Itoa(i+7)
		sets[i] = c + " = " + ph[i]
	}
	r.insertSQL = fmt.Sprintf(`
		INSERT INTO %s (lote_id, estado, activo, fecha_inicio, fecha_fin, comentarios, %s)
		VALUES ($1,$2,$3,$4,$5,$6,%s)
		RETURNING id, version`, t.Nombre, propias, strings.Join(ph, ","))

	versionPH := "$" + strconv.Itoa(len(t.Columnas)+7)
	idPH := "$" + strconv.Itoa(len(t.Columnas)+8)
	r.updateSQL = fmt.Sprintf(`
		UPDATE %s
		SET lote_id = $1, estado = $2, activo = $3, fecha_inicio = $4, fecha_fin = $5, comentarios = $6,
			%s, version = version + 1
		WHERE id = %s AND version = %s
		RETURNING version`, t.Nombre, strings.Join(sets, ", "), idPH, versionPH)

	return r
}

var _ analisis.Transaccional = (*AnalisisRepo[*analisis.Analisis])(nil)

func (r *AnalisisRepo[T]) scan(row interface{ Scan(dest ...any) error }) (T, error) {
	e := r.t.Nuevo()
	a := e.Cabecera()

	var (
		estado      string
		inicio, fin sql.NullTime
	)
	dest := []any{&a.ID, &a.LoteID, &estado, &a.Activo, &inicio, &fin, &a.Comentarios, &a.Version}
	dest = append(dest, r.t.Destinos(e)...)
	if err := row.Scan(dest...); err != nil {
		var zero T
		return zero, err
	}

	a.Tipo = r.tipo
	a.Estado = analisis.Estado(estado)
	a.FechaInicio = fromNullTime(inicio)
	a.FechaFin = fromNullTime(fin)
	return e, nil
}

func (r *AnalisisRepo[T]) FindByID(ctx context.Context, id int64) (T, bool, error) {
	e, err := r.scan(conn(ctx, r.db).QueryRowContext(ctx, r.selectSQL+" WHERE id = $1", id))
	if err != nil {
		var zero T
		if errors.Is(err, sql.ErrNoRows) {
			return zero, false, nil
		}
		return zero, false, err
	}
	return e, true, nil
}

func (r *AnalisisRepo[T]) Save(ctx context.Context, e T) (T, error) {
	var zero T
	a := e.Cabecera()
	q := conn(ctx, r.db)

	args := []any{a.LoteID, string(a.Estado), a.Activo, toNullTime(a.FechaInicio), toNullTime(a.FechaFin), a.Comentarios}
	args = append(args, r.t.Valores(e)...)

	if a.ID == 0 {
		if err := q.QueryRowContext(ctx, r.insertSQL, args...).Scan(&a.ID, &a.Version); err != nil {
			return zero, err
		}
		a.Tipo = r.tipo
		return e, nil
	}

	args = append(args, a.Version, a.ID)
	var version int64
	err := q.QueryRowContext(ctx, r.updateSQL, args...).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		// Sin filas: o no existe o la versión cambió.
		var existe bool
		if err := q.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM "+r.t.Nombre+" WHERE id = $1)", a.ID).Scan(&existe); err != nil {
			return zero, err
		}
		if !existe {
			return zero, fmt.Errorf("%w: analysis %d", analisis.ErrNotFound, a.ID)
		}
		return zero, fmt.Errorf("%w: analysis %d was modified concurrently", analisis.ErrConflict, a.ID)
	}
	if err != nil {
		return zero, err
	}
	a.Version = version
	return e, nil
}

func (r *AnalisisRepo[T]) ListByLote(ctx context.Context, loteID int64) ([]T, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, r.selectSQL+" WHERE lote_id = $1 ORDER BY id", loteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		e, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// EnLote corre fn en una transacción con un advisory lock por (tabla, lote).
// Todas las queries de fn que usen el ctx recibido van por esa transacción.
func (r *AnalisisRepo[T]) EnLote(ctx context.Context, loteID int64, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	clave := r.t.Nombre + ":" + strconv.FormatInt(loteID, 10)
	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtextextended($1, 0))", clave); err != nil {
		return err
	}

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}
	return tx.Commit()
}
