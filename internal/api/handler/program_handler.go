package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/webadmin/cms-api/internal/core/domain"
	"github.com/webadmin/cms-api/internal/core/ports"
)

// ProgramHandler handles HTTP requests for listed programs.
type ProgramHandler struct {
	service ports.ProgramService
}

func NewProgramHandler(service ports.ProgramService) *ProgramHandler {
	return &ProgramHandler{service: service}
}

type createProgramRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category"    validate:"required"`
	Order       int    `json:"order"`
	Active      *bool  `json:"active"`
}

type updateProgramRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Order       *int    `json:"order"`
	Active      *bool   `json:"active"`
}

// Create handles POST /api/ongoing_programs.
func (h *ProgramHandler) Create(c echo.Context) error {
	var req createProgramRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	program, err := h.service.Create(c.Request().Context(), ports.CreateProgramInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Order:       req.Order,
		Active:      active,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, program)
}

// List handles GET /api/ongoing_programs. Supports ?search= (matches title,
// description and category) and ?ordering= (order, created_at or title;
// anything else falls back to order).
func (h *ProgramHandler) List(c echo.Context) error {
	programs, err := h.service.List(c.Request().Context(), ports.ProgramQuery{
		Search:  c.QueryParam("search"),
		OrderBy: c.QueryParam("ordering"),
	})
	if err != nil {
		return err
	}
	if programs == nil {
		programs = []domain.Program{}
	}
	return c.JSON(http.StatusOK, programs)
}

// Get handles GET /api/ongoing_programs/:id.
func (h *ProgramHandler) Get(c echo.Context) error {
	program, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, program)
}

// Update handles PATCH /api/ongoing_programs/:id with an allow-listed patch.
func (h *ProgramHandler) Update(c echo.Context) error {
	var req updateProgramRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	program, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.ProgramPatch{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Order:       req.Order,
		Active:      req.Active,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, program)
}

// Delete handles DELETE /api/ongoing_programs/:id.
func (h *ProgramHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
