package court

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sportspot/booking-backend/internal/auth"
	"github.com/sportspot/booking-backend/internal/sport"
)

type CreateRequest struct {
	OwnerID     string
	SportID     int
	Name        string
	Address     string
	Description string
	OpenTime    string // "HH:MM:SS"
	CloseTime   string // "HH:MM:SS"
}

type UpdateRequest struct {
	SportID     *int
	Name        *string
	Address     *string
	Description *string
	OpenTime    *string
	CloseTime   *string
}

type CreateSubCourtRequest struct {
	Name        string
	BaseRate    int64
	Description string
}

type UpdateSubCourtRequest struct {
	Name        *string
	BaseRate    *int64
	Description *string
	Status      *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Court, error)
	GetByID(ctx context.Context, id int) (*Court, error)
	List(ctx context.Context, filter Filter) ([]*Court, int, error)
	Update(ctx context.Context, id int, req UpdateRequest, actorID string, actorRole auth.Role) (*Court, error)
	Delete(ctx context.Context, id int, actorID string, actorRole auth.Role) error
	SetImage(ctx context.Context, id int, fileID string, actorID string, actorRole auth.Role) error

	CreateSubCourt(ctx context.Context, courtID int, req CreateSubCourtRequest, actorID string, actorRole auth.Role) (*SubCourt, error)
	GetSubCourtByID(ctx context.Context, id int) (*SubCourt, error)
	ListSubCourts(ctx context.Context, courtID int) ([]*SubCourt, error)
	UpdateSubCourt(ctx context.Context, id int, req UpdateSubCourtRequest, actorID string, actorRole auth.Role) (*SubCourt, error)
	DeleteSubCourt(ctx context.Context, id int, actorID string, actorRole auth.Role) error

	// IsOwner reports whether userID owns the court the sub-court belongs to.
	IsOwner(ctx context.Context, subCourtID int, userID string) (bool, error)
}

type service struct {
	repo         Repository
	sportService sport.Service
}

func NewService(repo Repository, sportService sport.Service) Service {
	return &service{
		repo:         repo,
		sportService: sportService,
	}
}

// validTimeOfDay reports whether s parses as a zero-padded HH:MM:SS clock time.
func validTimeOfDay(s string) bool {
	_, err := time.Parse("15:04:05", s)
	return err == nil
}

// canManage allows the court's owner and admins through.
func canManage(c *Court, actorID string, actorRole auth.Role) bool {
	return actorRole == auth.RoleAdmin || c.OwnerID == actorID
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Court, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if !validTimeOfDay(req.OpenTime) || !validTimeOfDay(req.CloseTime) || req.OpenTime >= req.CloseTime {
		return nil, ErrInvalidHours
	}

	// Validate the sport exists before inserting.
	sp, err := s.sportService.GetByID(ctx, req.SportID)
	if err != nil {
		if errors.Is(err, sport.ErrNotFound) {
			return nil, ErrInvalidSport
		}
		return nil, err
	}

	c := &Court{
		OwnerID:     req.OwnerID,
		SportID:     req.SportID,
		SportName:   sp.Name,
		Name:        strings.TrimSpace(req.Name),
		Address:     req.Address,
		Description: req.Description,
		OpenTime:    req.OpenTime,
		CloseTime:   req.CloseTime,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetByID(ctx context.Context, id int) (*Court, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Court, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id int, req UpdateRequest, actorID string, actorRole auth.Role) (*Court, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !canManage(c, actorID, actorRole) {
		return nil, ErrPermissionDenied
	}

	if req.SportID != nil {
		sp, err := s.sportService.GetByID(ctx, *req.SportID)
		if err != nil {
			return nil, ErrInvalidSport
		}
		c.SportID = sp.ID
		c.SportName = sp.Name
	}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.OpenTime != nil {
		c.OpenTime = *req.OpenTime
	}
	if req.CloseTime != nil {
		c.CloseTime = *req.CloseTime
	}
	if !validTimeOfDay(c.OpenTime) || !validTimeOfDay(c.CloseTime) || c.OpenTime >= c.CloseTime {
		return nil, ErrInvalidHours
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Delete(ctx context.Context, id int, actorID string, actorRole auth.Role) error {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !canManage(c, actorID, actorRole) {
		return ErrPermissionDenied
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) SetImage(ctx context.Context, id int, fileID string, actorID string, actorRole auth.Role) error {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !canManage(c, actorID, actorRole) {
		return ErrPermissionDenied
	}
	c.ImageFileID = &fileID
	return s.repo.Update(ctx, c)
}

func (s *service) CreateSubCourt(ctx context.Context, courtID int, req CreateSubCourtRequest, actorID string, actorRole auth.Role) (*SubCourt, error) {
	c, err := s.repo.GetByID(ctx, courtID)
	if err != nil {
		return nil, err
	}
	if !canManage(c, actorID, actorRole) {
		return nil, ErrPermissionDenied
	}

	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if req.BaseRate < 0 {
		return nil, ErrInvalidRate
	}

	sc := &SubCourt{
		CourtID:     courtID,
		Name:        strings.TrimSpace(req.Name),
		BaseRate:    req.BaseRate,
		Description: req.Description,
		Status:      SubCourtActive,
	}

	if err := s.repo.CreateSubCourt(ctx, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

func (s *service) GetSubCourtByID(ctx context.Context, id int) (*SubCourt, error) {
	return s.repo.GetSubCourtByID(ctx, id)
}

func (s *service) ListSubCourts(ctx context.Context, courtID int) ([]*SubCourt, error) {
	if _, err := s.repo.GetByID(ctx, courtID); err != nil {
		return nil, err
	}
	return s.repo.ListSubCourts(ctx, courtID)
}

func (s *service) UpdateSubCourt(ctx context.Context, id int, req UpdateSubCourtRequest, actorID string, actorRole auth.Role) (*SubCourt, error) {
	sc, err := s.repo.GetSubCourtByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c, err := s.repo.GetByID(ctx, sc.CourtID)
	if err != nil {
		return nil, err
	}
	if !canManage(c, actorID, actorRole) {
		return nil, ErrPermissionDenied
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		sc.Name = strings.TrimSpace(*req.Name)
	}
	if req.BaseRate != nil {
		if *req.BaseRate < 0 {
			return nil, ErrInvalidRate
		}
		sc.BaseRate = *req.BaseRate
	}
	if req.Description != nil {
		sc.Description = *req.Description
	}
	if req.Status != nil {
		sc.Status = SubCourtStatus(*req.Status)
	}

	if err := s.repo.UpdateSubCourt(ctx, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

func (s *service) DeleteSubCourt(ctx context.Context, id int, actorID string, actorRole auth.Role) error {
	sc, err := s.repo.GetSubCourtByID(ctx, id)
	if err != nil {
		return err
	}

	c, err := s.repo.GetByID(ctx, sc.CourtID)
	if err != nil {
		return err
	}
	if !canManage(c, actorID, actorRole) {
		return ErrPermissionDenied
	}

	return s.repo.DeleteSubCourt(ctx, id)
}

func (s *service) IsOwner(ctx context.Context, subCourtID int, userID string) (bool, error) {
	sc, err := s.repo.GetSubCourtByID(ctx, subCourtID)
	if err != nil {
		return false, err
	}
	c, err := s.repo.GetByID(ctx, sc.CourtID)
	if err != nil {
		return false, err
	}
	return c.OwnerID == userID, nil
}
