package postgres

import (
	"context"
	"database/sql"
	"errors"

	"lab-semillas/internal/domain/lotes"
)

type LotesRepo struct {
	db *sql.DB
}

func NewLotesRepo(db *sql.DB) *LotesRepo {
	return &LotesRepo{db: db}
}

func (r *LotesRepo) Create(ctx context.Context, l lotes.Lote) (lotes.Lote, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO lotes (ficha, especie, fecha_recibo, fecha_entrega, activo)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id
	`,
		l.Ficha,
		l.Especie,
		l.FechaRecibo.UTC(),
		toNullTime(l.FechaEntrega),
		l.Activo,
	).Scan(&l.ID)
	if err != nil {
		return lotes.Lote{}, err
	}
	return l, nil
}

func (r *LotesRepo) GetByID(ctx context.Context, id int64) (lotes.Lote, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, ficha, especie, fecha_recibo, fecha_entrega, activo
		FROM lotes
		WHERE id = $1
	`, id)

	var (
		l       lotes.Lote
		entrega sql.NullTime
	)
	if err := row.Scan(&l.ID, &l.Ficha, &l.Especie, &l.FechaRecibo, &entrega, &l.Activo); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return lotes.Lote{}, lotes.ErrNotFound
		}
		return lotes.Lote{}, err
	}
	l.FechaRecibo = l.FechaRecibo.UTC()
	l.FechaEntrega = fromNullTime(entrega)
	return l, nil
}
