package presenter

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/yomogi/ghostboard/internal/domain"
)

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// OK wraps a successful response.
func OK(c echo.Context, payload any) error {
	return c.JSON(http.StatusOK, payload)
}

func BadRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func BadRequestMessage(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
}

func NotFound(c echo.Context, msg string) error {
	return c.JSON(http.StatusNotFound, errorResponse{Error: msg})
}

// Error maps a domain error to its HTTP shape. Unexpected errors become a
// generic 500 with a non-sensitive message.
func Error(c echo.Context, err error) error {
	var validation domain.ValidationError
	if errors.As(err, &validation) {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: validation.Error()})
	}

	var moderation domain.ModerationError
	if errors.As(err, &moderation) {
		return c.JSON(http.StatusBadRequest, errorResponse{
			Error:   "text rejected by moderation",
			Details: strings.Join(moderation.Matches, ", "),
		})
	}

	var disabled domain.CommentsDisabledError
	if errors.As(err, &disabled) {
		return c.JSON(http.StatusForbidden, errorResponse{Error: disabled.Error()})
	}

	var unauthorized domain.UnauthorizedError
	if errors.As(err, &unauthorized) {
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: unauthorized.Error()})
	}

	var notFound domain.NotFoundError
	if errors.As(err, &notFound) {
		return c.JSON(http.StatusNotFound, errorResponse{Error: notFound.Error()})
	}

	var remote domain.RemoteUnavailableError
	if errors.As(err, &remote) {
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Error:   "remote feed service unavailable",
			Details: remote.Detail,
		})
	}

	var store domain.StoreError
	if errors.As(err, &store) {
		slog.Error(
			"engagement store failure",
			slog.String("error", store.Error()),
			slog.String("module", "rest"),
		)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "engagement store failure"})
	}

	slog.Error(
		"unexpected error",
		slog.String("error", err.Error()),
		slog.String("module", "rest"),
	)
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}
