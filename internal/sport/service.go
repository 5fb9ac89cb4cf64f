package sport

import (
	"context"
	"strings"
)

type CreateRequest struct {
	Name        string
	Description string
	Icon        string
}

type UpdateRequest struct {
	Name        *string
	Description *string
	Icon        *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Sport, error)
	GetByID(ctx context.Context, id int) (*Sport, error)
	List(ctx context.Context) ([]*Sport, error)
	Update(ctx context.Context, id int, req UpdateRequest) (*Sport, error)
	Delete(ctx context.Context, id int) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Sport, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}

	sp := &Sport{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Icon:        req.Icon,
	}

	if err := s.repo.Create(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

func (s *service) GetByID(ctx context.Context, id int) (*Sport, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*Sport, error) {
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, id int, req UpdateRequest) (*Sport, error) {
	sp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		sp.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		sp.Description = *req.Description
	}
	if req.Icon != nil {
		sp.Icon = *req.Icon
	}

	if err := s.repo.Update(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

func (s *service) Delete(ctx context.Context, id int) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
