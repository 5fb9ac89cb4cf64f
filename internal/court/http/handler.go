package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sportspot/booking-backend/internal/auth"
	"github.com/sportspot/booking-backend/internal/court"
	"github.com/sportspot/booking-backend/internal/file"
	"github.com/sportspot/booking-backend/internal/pkg/request"
	"github.com/sportspot/booking-backend/internal/pkg/response"
)

type Handler struct {
	service     court.Service
	fileService file.Service
}

func NewHandler(service court.Service, fileService file.Service) *Handler {
	return &Handler{
		service:     service,
		fileService: fileService,
	}
}

func (h *Handler) list(c *gin.Context, filter court.Filter) {
	var req ListCourtsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	if filter.SportID == 0 {
		filter.SportID = req.SportID
	}
	filter.Query = req.Q
	filter.Address = req.Address
	filter.Page = req.Page
	filter.PageSize = req.PageSize

	courts, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]CourtResponse, len(courts))
	for i, ct := range courts {
		items[i] = NewCourtResponse(ct)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// List handles both GET /courts and GET /courts/search; the latter only
// differs by which query parameters the client sends.
func (h *Handler) List(c *gin.Context) {
	h.list(c, court.Filter{})
}

func (h *Handler) ListBySport(c *gin.Context) {
	sportID, err := strconv.Atoi(c.Param("sportID"))
	if err != nil || sportID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sport ID"})
		return
	}
	h.list(c, court.Filter{SportID: sportID})
}

// ListMine lists the authenticated owner's courts.
func (h *Handler) ListMine(c *gin.Context) {
	h.list(c, court.Filter{OwnerID: auth.GetUserID(c)})
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	ct, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewCourtResponse(ct))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateCourtRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	ct, err := h.service.Create(c.Request.Context(), court.CreateRequest{
		OwnerID:     auth.GetUserID(c),
		SportID:     body.SportID,
		Name:        body.Name,
		Address:     body.Address,
		Description: body.Description,
		OpenTime:    body.OpenTime,
		CloseTime:   body.CloseTime,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewCourtResponse(ct))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateCourtRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	ct, err := h.service.Update(c.Request.Context(), uri.ID, court.UpdateRequest{
		SportID:     body.SportID,
		Name:        body.Name,
		Address:     body.Address,
		Description: body.Description,
		OpenTime:    body.OpenTime,
		CloseTime:   body.CloseTime,
	}, auth.GetUserID(c), auth.GetUserRole(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewCourtResponse(ct))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID, auth.GetUserID(c), auth.GetUserRole(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadImage stores a court photo and attaches it to the court.
func (h *Handler) UploadImage(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	userID := auth.GetUserID(c)

	f, err := h.fileService.Upload(c.Request.Context(), fileHeader, userID, file.KindCourtPhoto)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.SetImage(c.Request.Context(), uri.ID, f.ID, userID, auth.GetUserRole(c)); err != nil {
		_ = h.fileService.Delete(c.Request.Context(), f.ID)
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": file.URL(f.ID)})
}

func (h *Handler) ListSubCourts(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	subCourts, err := h.service.ListSubCourts(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]SubCourtResponse, len(subCourts))
	for i, sc := range subCourts {
		items[i] = NewSubCourtResponse(sc)
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (h *Handler) CreateSubCourt(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body CreateSubCourtRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	sc, err := h.service.CreateSubCourt(c.Request.Context(), uri.ID, court.CreateSubCourtRequest{
		Name:        body.Name,
		BaseRate:    body.BaseRate,
		Description: body.Description,
	}, auth.GetUserID(c), auth.GetUserRole(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewSubCourtResponse(sc))
}

func (h *Handler) UpdateSubCourt(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateSubCourtRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	sc, err := h.service.UpdateSubCourt(c.Request.Context(), uri.ID, court.UpdateSubCourtRequest{
		Name:        body.Name,
		BaseRate:    body.BaseRate,
		Description: body.Description,
		Status:      body.Status,
	}, auth.GetUserID(c), auth.GetUserRole(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewSubCourtResponse(sc))
}

func (h *Handler) DeleteSubCourt(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.service.DeleteSubCourt(c.Request.Context(), uri.ID, auth.GetUserID(c), auth.GetUserRole(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
