package branch

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pharmacy-backend/internal/shared/response"
)

type Handler struct {
	service Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{service: svc}
}

// Create - POST /branch
func (h *Handler) Create(c *gin.Context) {
	var req CreateBranchRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.AppError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// GetByID - GET /branch/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, ErrInvalidID.Error())
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.AppError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// List - GET /branch?page&limit&cityId
func (h *Handler) List(c *gin.Context) {
	page, limit := response.ParsePagination(c)

	var cityID *uuid.UUID
	if raw := c.Query("cityId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "invalid cityId filter")
			return
		}
		cityID = &id
	}

	results, count, err := h.service.List(c.Request.Context(), cityID, page, limit)
	if err != nil {
		response.AppError(c, err)
		return
	}

	response.Paginated(c, results, count, page, limit)
}

// Update - PATCH /branch/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, ErrInvalidID.Error())
		return
	}

	var req UpdateBranchRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.AppError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Delete - DELETE /branch/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, ErrInvalidID.Error())
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.AppError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
