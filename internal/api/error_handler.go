package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/webadmin/cms-api/internal/core/domain"
	"github.com/webadmin/cms-api/pkg/logger"
)

type errorBody struct {
	Error string `json:"error"`
}

// HTTPErrorHandler maps domain errors to statuses and keeps every error
// response on the {"error": msg} envelope.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	msg := "internal server error"

	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		status = httpErr.Code
		if m, ok := httpErr.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(status)
		}
	case errors.Is(err, domain.ErrMissingCredentials),
		errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrSlugTaken):
		status = http.StatusBadRequest
		msg = err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidToken):
		status = http.StatusUnauthorized
		msg = err.Error()
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
		msg = err.Error()
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrRoleNotFound),
		errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrArticleNotFound),
		errors.Is(err, domain.ErrMemberNotFound),
		errors.Is(err, domain.ErrProgramNotFound),
		errors.Is(err, domain.ErrSettingsNotFound):
		status = http.StatusNotFound
		msg = err.Error()
	case errors.Is(err, domain.ErrProvisioning):
		status = http.StatusInternalServerError
		msg = err.Error()
	}

	log := logger.Get()

	if status >= http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Request().URL.Path).
			Msg("request failed")
	}

	if c.Request().Method == http.MethodHead {
		if err := c.NoContent(status); err != nil {
			log.Error().Err(err).Msg("writing error response")
		}
		return
	}

	if err := c.JSON(status, errorBody{Error: msg}); err != nil {
		log.Error().Err(err).Msg("writing error response")
	}
}
