package lotes

import (
	"context"
	"errors"
	"strings"
	"time"
)

var ErrInvalidInput = errors.New("invalid input")

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Ficha        string
	Especie      string
	FechaRecibo  *time.Time
	FechaEntrega *time.Time
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Lote, error) {
	if strings.TrimSpace(in.Ficha) == "" || strings.TrimSpace(in.Especie) == "" {
		return Lote{}, ErrInvalidInput
	}

	recibo := s.now().UTC()
	if in.FechaRecibo != nil {
		recibo = in.FechaRecibo.UTC()
	}
	if in.FechaEntrega != nil && in.FechaEntrega.Before(recibo) {
		return Lote{}, ErrInvalidInput
	}

	return s.repo.Create(ctx, Lote{
		Ficha:        strings.TrimSpace(in.Ficha),
		Especie:      strings.TrimSpace(in.Especie),
		FechaRecibo:  recibo,
		FechaEntrega: in.FechaEntrega,
		Activo:       true,
	})
}

func (s *Service) GetByID(ctx context.Context, id int64) (Lote, error) {
	return s.repo.GetByID(ctx, id)
}

// Existe implementa analisis.LoteChecker: solo lotes activos admiten análisis nuevos.
func (s *Service) Existe(ctx context.Context, id int64) (bool, error) {
	l, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return l.Activo, nil
}
