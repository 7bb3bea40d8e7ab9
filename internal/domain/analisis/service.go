package analisis

import (
	"context"
	"fmt"

	"lab-semillas/internal/ports/auth"
)

// Repository es el accessor de un subtipo más la consulta de hermanos por lote.
type Repository[T Entidad] interface {
	Accessor[T]
	ListByLote(ctx context.Context, loteID int64) ([]T, error)
}

// LoteChecker evita crear análisis sobre lotes inexistentes o inactivos.
type LoteChecker interface {
	Existe(ctx context.Context, loteID int64) (bool, error)
}

// Config es lo que cada subtipo enchufa al workflow.
type Config[T Entidad, R any] struct {
	Tipo   Tipo
	Repo   Repository[T]
	Mapper Mapper[T, R]

	// ValidarAlta corre al crear y al editar.
	ValidarAlta Validador[T]
	// ValidarFinalizacion corre antes de finalizar y de aprobar.
	ValidarFinalizacion Validador[T]
}

// Service expone las operaciones del workflow para un subtipo concreto.
type Service[T Entidad, R any] struct {
	eng   *Engine
	lotes LoteChecker
	cfg   Config[T, R]
}

func NewService[T Entidad, R any](eng *Engine, lotes LoteChecker, cfg Config[T, R]) *Service[T, R] {
	return &Service[T, R]{eng: eng, lotes: lotes, cfg: cfg}
}

func (s *Service[T, R]) Tipo() Tipo { return s.cfg.Tipo }

func (s *Service[T, R]) Crear(ctx context.Context, actor auth.ActorContext, nuevo T) (R, error) {
	var out R
	a := nuevo.Cabecera()
	a.Tipo = s.cfg.Tipo
	if s.lotes != nil && a.LoteID > 0 {
		ok, err := s.lotes.Existe(ctx, a.LoteID)
		if err != nil {
			return out, err
		}
		if !ok {
			return out, fmt.Errorf("%w: lote %d", ErrNotFound, a.LoteID)
		}
	}
	return CrearGenerico[T, R](ctx, s.eng, actor, nuevo, s.cfg.Repo, s.cfg.ValidarAlta, s.cfg.Mapper)
}

func (s *Service[T, R]) Obtener(ctx context.Context, id int64) (R, error) {
	return ObtenerGenerico[T, R](ctx, s.cfg.Repo, id, s.cfg.Mapper)
}

func (s *Service[T, R]) Actualizar(ctx context.Context, actor auth.ActorContext, id int64, editar func(T) error) (R, error) {
	return ActualizarGenerico[T, R](ctx, s.eng, actor, id, s.cfg.Repo, editar, s.cfg.ValidarAlta, s.cfg.Mapper)
}

func (s *Service[T, R]) Finalizar(ctx context.Context, actor auth.ActorContext, id int64) (R, error) {
	return FinalizarGenerico[T, R](ctx, s.eng, actor, id, s.cfg.Repo, s.cfg.ValidarFinalizacion, s.cfg.Mapper)
}

func (s *Service[T, R]) Aprobar(ctx context.Context, actor auth.ActorContext, id int64) (R, error) {
	return AprobarGenerico[T, R](ctx, s.eng, actor, id, s.cfg.Repo, s.cfg.Repo.ListByLote, s.cfg.ValidarFinalizacion, s.cfg.Mapper)
}

func (s *Service[T, R]) MarcarParaRepetir(ctx context.Context, actor auth.ActorContext, id int64) (R, error) {
	return MarcarParaRepetirGenerico[T, R](ctx, s.eng, actor, id, s.cfg.Repo, nil, s.cfg.Mapper)
}

func (s *Service[T, R]) Desactivar(ctx context.Context, actor auth.ActorContext, id int64) error {
	return Desactivar[T](ctx, s.eng, actor, id, s.cfg.Repo)
}

func (s *Service[T, R]) Reactivar(ctx context.Context, actor auth.ActorContext, id int64) (R, error) {
	return Reactivar[T, R](ctx, s.eng, actor, id, s.cfg.Repo, s.cfg.Mapper)
}
