package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/webadmin/cms-api/internal/core/domain"
	"github.com/webadmin/cms-api/internal/core/ports"
)

// TeamHandler handles HTTP requests for team members.
type TeamHandler struct {
	service ports.TeamService
}

func NewTeamHandler(service ports.TeamService) *TeamHandler {
	return &TeamHandler{service: service}
}

type createTeamMemberRequest struct {
	Name     string `json:"name"     validate:"required"`
	Role     string `json:"role"     validate:"required"`
	Photo    string `json:"photo"`
	Email    string `json:"email"    validate:"omitempty,email"`
	Phone    string `json:"phone"`
	Facebook string `json:"facebook" validate:"omitempty,url"`
	Twitter  string `json:"twitter"  validate:"omitempty,url"`
	LinkedIn string `json:"linkedin" validate:"omitempty,url"`
	Order    int    `json:"order"`
	Active   *bool  `json:"active"`
}

type updateTeamMemberRequest struct {
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	Photo    *string `json:"photo"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Phone    *string `json:"phone"`
	Facebook *string `json:"facebook" validate:"omitempty,url"`
	Twitter  *string `json:"twitter"  validate:"omitempty,url"`
	LinkedIn *string `json:"linkedin" validate:"omitempty,url"`
	Order    *int    `json:"order"`
	Active   *bool   `json:"active"`
}

// Create handles POST /api/team-members. New members are active unless the
// payload says otherwise.
func (h *TeamHandler) Create(c echo.Context) error {
	var req createTeamMemberRequest
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

	member, err := h.service.Create(c.Request().Context(), ports.CreateTeamMemberInput{
		Name:     req.Name,
		Role:     req.Role,
		Photo:    req.Photo,
		Email:    req.Email,
		Phone:    req.Phone,
		Facebook: req.Facebook,
		Twitter:  req.Twitter,
		LinkedIn: req.LinkedIn,
		Order:    req.Order,
		Active:   active,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, member)
}

// List handles GET /api/team-members, sorted by display order.
func (h *TeamHandler) List(c echo.Context) error {
	members, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if members == nil {
		members = []domain.TeamMember{}
	}
	return c.JSON(http.StatusOK, members)
}

// Get handles GET /api/team-members/:id.
func (h *TeamHandler) Get(c echo.Context) error {
	member, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, member)
}

// Update handles PATCH /api/team-members/:id with an allow-listed patch.
func (h *TeamHandler) Update(c echo.Context) error {
	var req updateTeamMemberRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	member, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.TeamMemberPatch{
		Name:     req.Name,
		Role:     req.Role,
		Photo:    req.Photo,
		Email:    req.Email,
		Phone:    req.Phone,
		Facebook: req.Facebook,
		Twitter:  req.Twitter,
		LinkedIn: req.LinkedIn,
		Order:    req.Order,
		Active:   req.Active,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, member)
}

// Delete handles DELETE /api/team-members/:id.
func (h *TeamHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
