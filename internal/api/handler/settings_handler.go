package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/webadmin/cms-api/internal/core/domain"
	"github.com/webadmin/cms-api/internal/core/ports"
)

// SettingsHandler handles HTTP requests for header settings.
type SettingsHandler struct {
	service ports.SettingsService
}

func NewSettingsHandler(service ports.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

type createSettingsRequest struct {
	SiteTitle             string `json:"site_title"              validate:"required"`
	SiteSubtitle          string `json:"site_subtitle"`
	HeaderLogoURL         string `json:"header_logo_url"         validate:"omitempty,url"`
	HeaderBackgroundColor string `json:"header_background_color" validate:"omitempty,hexcolor"`
	HeaderTextColor       string `json:"header_text_color"       validate:"omitempty,hexcolor"`
	ShowHeader            *bool  `json:"show_header"`
}

type updateSettingsRequest struct {
	SiteTitle             *string `json:"site_title"`
	SiteSubtitle          *string `json:"site_subtitle"`
	HeaderLogoURL         *string `json:"header_logo_url"         validate:"omitempty,url"`
	HeaderBackgroundColor *string `json:"header_background_color" validate:"omitempty,hexcolor"`
	HeaderTextColor       *string `json:"header_text_color"       validate:"omitempty,hexcolor"`
	ShowHeader            *bool   `json:"show_header"`
}

// GetActive handles GET /api/header-settings/active: the single document the
// site renders, created with defaults on first access.
func (h *SettingsHandler) GetActive(c echo.Context) error {
	settings, err := h.service.GetActive(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settings)
}

// List handles GET /api/header-settings.
func (h *SettingsHandler) List(c echo.Context) error {
	all, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if all == nil {
		all = []domain.HeaderSettings{}
	}
	return c.JSON(http.StatusOK, all)
}

// Get handles GET /api/header-settings/:id.
func (h *SettingsHandler) Get(c echo.Context) error {
	settings, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settings)
}

// Create handles POST /api/header-settings. Omitted colors and visibility
// fall back to the site defaults.
func (h *SettingsHandler) Create(c echo.Context) error {
	var req createSettingsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	settings := &domain.HeaderSettings{
		SiteTitle:             req.SiteTitle,
		SiteSubtitle:          req.SiteSubtitle,
		HeaderLogoURL:         req.HeaderLogoURL,
		HeaderBackgroundColor: req.HeaderBackgroundColor,
		HeaderTextColor:       req.HeaderTextColor,
		ShowHeader:            true,
	}
	if settings.HeaderBackgroundColor == "" {
		settings.HeaderBackgroundColor = "#ffffff"
	}
	if settings.HeaderTextColor == "" {
		settings.HeaderTextColor = "#000000"
	}
	if req.ShowHeader != nil {
		settings.ShowHeader = *req.ShowHeader
	}

	created, err := h.service.Create(c.Request().Context(), settings)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// Update handles PATCH /api/header-settings/:id with an allow-listed patch.
func (h *SettingsHandler) Update(c echo.Context) error {
	var req updateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	settings, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.HeaderSettingsPatch{
		SiteTitle:             req.SiteTitle,
		SiteSubtitle:          req.SiteSubtitle,
		HeaderLogoURL:         req.HeaderLogoURL,
		HeaderBackgroundColor: req.HeaderBackgroundColor,
		HeaderTextColor:       req.HeaderTextColor,
		ShowHeader:            req.ShowHeader,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settings)
}

// Delete handles DELETE /api/header-settings/:id.
func (h *SettingsHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
