package http

import (
	"time"

	"github.com/sportspot/booking-backend/internal/court"
	"github.com/sportspot/booking-backend/internal/file"
	"github.com/sportspot/booking-backend/internal/pkg/request"
	sportHttp "github.com/sportspot/booking-backend/internal/sport/http"
)

// ListCourtsRequest defines query parameters for browsing/searching courts.
type ListCourtsRequest struct {
	request.ListParams
	SportID int    `form:"sport_id" binding:"omitempty,min=1"`
	Q       string `form:"q" binding:"omitempty,max=100"`
	Address string `form:"address" binding:"omitempty,max=255"`
}

type SubCourtResponse struct {
	ID          int    `json:"id"`
	CourtID     int    `json:"court_id"`
	Name        string `json:"name"`
	BaseRate    int64  `json:"base_rate"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func NewSubCourtResponse(sc *court.SubCourt) SubCourtResponse {
	return SubCourtResponse{
		ID:          sc.ID,
		CourtID:     sc.CourtID,
		Name:        sc.Name,
		BaseRate:    sc.BaseRate,
		Description: sc.Description,
		Status:      string(sc.Status),
	}
}

type CourtResponse struct {
	ID          int                `json:"id"`
	Sport       sportHttp.SportTag `json:"sport"`
	Name        string             `json:"name"`
	Address     string             `json:"address"`
	Description string             `json:"description"`
	OpenTime    string             `json:"open_time"`
	CloseTime   string             `json:"close_time"`
	ImageURL    *string            `json:"image_url"`
	CreatedAt   time.Time          `json:"created_at"`
	SubCourts   []SubCourtResponse `json:"sub_courts,omitempty"`
}

func NewCourtResponse(c *court.Court) CourtResponse {
	var imageURL *string
	if c.ImageFileID != nil {
		url := file.URL(*c.ImageFileID)
		imageURL = &url
	}

	resp := CourtResponse{
		ID:          c.ID,
		Sport:       sportHttp.SportTag{ID: c.SportID, Name: c.SportName},
		Name:        c.Name,
		Address:     c.Address,
		Description: c.Description,
		OpenTime:    c.OpenTime,
		CloseTime:   c.CloseTime,
		ImageURL:    imageURL,
		CreatedAt:   c.CreatedAt,
	}

	for _, sc := range c.SubCourts {
		resp.SubCourts = append(resp.SubCourts, NewSubCourtResponse(sc))
	}

	return resp
}

type CreateCourtRequest struct {
	SportID     int    `json:"sport_id" binding:"required,min=1"`
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Address     string `json:"address" binding:"required,max=255"`
	Description string `json:"description" binding:"omitempty,max=2000"`
	OpenTime    string `json:"open_time" binding:"required"`
	CloseTime   string `json:"close_time" binding:"required"`
}

type UpdateCourtRequest struct {
	SportID     *int    `json:"sport_id" binding:"omitempty,min=1"`
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Address     *string `json:"address" binding:"omitempty,max=255"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	OpenTime    *string `json:"open_time"`
	CloseTime   *string `json:"close_time"`
}

type CreateSubCourtRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	BaseRate    int64  `json:"base_rate" binding:"required,min=0"`
	Description string `json:"description" binding:"omitempty,max=2000"`
}

type UpdateSubCourtRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	BaseRate    *int64  `json:"base_rate" binding:"omitempty,min=0"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Status      *string `json:"status" binding:"omitempty,oneof=active maintenance"`
}
