package templates

import (
	"context"
	"errors"
	"strings"
)

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Template, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("templates service not configured")
	}
	return s.Repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (Template, error) {
	if s == nil || s.Repo == nil {
		return Template{}, errors.New("templates service not configured")
	}
	if strings.TrimSpace(id) == "" {
		return Template{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, id)
}
