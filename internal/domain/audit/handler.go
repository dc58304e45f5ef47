package audit

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/intake/intake/pkg/apiresponse"
)

type Handler struct {
	logger *Logger
}

func NewHandler(logger *Logger) *Handler {
	return &Handler{logger: logger}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/intakes/:id/audit", h.Trail)
}

func (h *Handler) Trail(c echo.Context) error {
	intakeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apiresponse.Fail(c, http.StatusBadRequest, "invalid intake id")
	}

	entries, err := h.logger.Trail(c.Request().Context(), intakeID)
	if err != nil {
		return apiresponse.Fail(c, http.StatusInternalServerError, "failed to load audit trail")
	}
	if entries == nil {
		entries = []*Entry{}
	}
	return apiresponse.OK(c, http.StatusOK, entries)
}
