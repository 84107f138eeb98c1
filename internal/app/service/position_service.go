package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"gestion-bot/internal/domain"
)

// PositionService is the positions resource. Ids are assigned by the API,
// so the key field is never part of the form.
type PositionService struct {
	Repo  domain.PositionRepo
	Async *AsyncService
	Log   logrus.FieldLogger
}

func NewPositionService(repo domain.PositionRepo, async *AsyncService, log logrus.FieldLogger) *PositionService {
	return &PositionService{Repo: repo, Async: async, Log: log}
}

func (s *PositionService) KeyOf(p domain.Position) int64 { return p.ID }

func (s *PositionService) KeyField() string { return "id" }

func (s *PositionService) Blank() domain.PositionForm { return domain.PositionForm{} }

func (s *PositionService) FormOf(p domain.Position) domain.PositionForm {
	return domain.PositionFormOf(p)
}

func (s *PositionService) SetField(f *domain.PositionForm, field, value string) error {
	return f.Set(field, value)
}

func (s *PositionService) input(f domain.PositionForm) (domain.PositionInput, error) {
	in, err := f.Input()
	if err != nil {
		return in, err
	}
	return in, checkStruct("validar cargo", in)
}

func (s *PositionService) List(ctx context.Context) ([]domain.Position, error) {
	return runAsync(ctx, s.Async, s.Repo.GetAllPositions)
}

func (s *PositionService) Create(ctx context.Context, f domain.PositionForm) (domain.Position, error) {
	in, err := s.input(f)
	if err != nil {
		return domain.Position{}, err
	}
	p, err := runAsync(ctx, s.Async, func(ctx context.Context) (domain.Position, error) {
		return s.Repo.AddPosition(ctx, in)
	})
	if err != nil {
		return p, err
	}
	s.Log.WithFields(logrus.Fields{"entity": "cargos", "key": p.ID}).Info("[positions] created")
	return p, nil
}

func (s *PositionService) Update(ctx context.Context, id int64, f domain.PositionForm) (domain.Position, error) {
	in, err := s.input(f)
	if err != nil {
		return domain.Position{}, err
	}
	p, err := runAsync(ctx, s.Async, func(ctx context.Context) (domain.Position, error) {
		return s.Repo.UpdatePosition(ctx, id, in)
	})
	if err != nil {
		return p, err
	}
	s.Log.WithFields(logrus.Fields{"entity": "cargos", "key": id}).Info("[positions] updated")
	return p, nil
}

func (s *PositionService) Delete(ctx context.Context, id int64) error {
	_, err := runAsync(ctx, s.Async, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.Repo.DeletePosition(ctx, id)
	})
	if err != nil {
		return err
	}
	s.Log.WithFields(logrus.Fields{"entity": "cargos", "key": id}).Info("[positions] deleted")
	return nil
}
