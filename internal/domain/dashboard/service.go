package dashboard

import "context"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Pendientes: análisis REGISTRADO o EN_PROCESO de todos los subtipos.
func (s *Service) Pendientes(ctx context.Context, cursor string, limite int) (Pagina[Resumen], error) {
	return Paginar[Resumen](ctx, cursor, limite, s.repo.Pendientes)
}

// PorAprobar: análisis PENDIENTE_APROBACION, por fecha de entrega del lote.
func (s *Service) PorAprobar(ctx context.Context, cursor string, limite int) (Pagina[Resumen], error) {
	return Paginar[Resumen](ctx, cursor, limite, s.repo.PorAprobar)
}
