package http

import (
	"github.com/sportspot/booking-backend/internal/sport"
)

// SportTag is the minimal sport reference embedded in court responses.
type SportTag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type SportResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

func NewSportResponse(s *sport.Sport) SportResponse {
	return SportResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Icon:        s.Icon,
	}
}

type CreateSportRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
	Icon        string `json:"icon" binding:"omitempty,max=255"`
}

type UpdateSportRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	Icon        *string `json:"icon" binding:"omitempty,max=255"`
}
