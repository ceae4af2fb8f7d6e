package feedback

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Service struct {
	repo     Repository
	location *time.Location
}

func NewService(repo Repository, location *time.Location) *Service {
	return &Service{
		repo:     repo,
		location: location,
	}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (Feedback, error) {
	fb := Feedback{
		ID:                primitive.NewObjectID().Hex(),
		Name:              strings.TrimSpace(req.Name),
		Email:             strings.TrimSpace(req.Email),
		Phone:             strings.TrimSpace(req.Phone),
		AppointmentNumber: strings.TrimSpace(req.AppointmentNumber),
		Rating:            req.Rating,
		Message:           strings.TrimSpace(req.Message),
		CreatedAt:         time.Now().In(s.location),
	}

	if err := s.repo.Create(ctx, fb); err != nil {
		return Feedback{}, err
	}
	return fb, nil
}

func (s *Service) ListAdmin(ctx context.Context, limit, offset int64) ([]Feedback, int64, error) {
	items, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
