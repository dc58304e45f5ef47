package intake

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/intake/intake/internal/platform/auth"
	"github.com/intake/intake/pkg/apiresponse"
	"github.com/intake/intake/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/intakes", h.Submit)
	api.GET("/intakes", h.List)
	api.GET("/intakes/:id", h.Get)
}

func (h *Handler) Submit(c echo.Context) error {
	var p PatientIntake
	if err := c.Bind(&p); err != nil {
		return apiresponse.Fail(c, http.StatusBadRequest, "invalid request body")
	}
	p.UserID = auth.UserIDFromContext(c.Request().Context())

	if err := h.svc.Submit(c.Request().Context(), &p); err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			return c.JSON(http.StatusBadRequest, map[string]interface{}{
				"success": false,
				"error":   "validation failed",
				"fields":  vErr.Fields,
			})
		}
		return apiresponse.Fail(c, http.StatusInternalServerError, "failed to save intake")
	}
	return apiresponse.OK(c, http.StatusCreated, p)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apiresponse.Fail(c, http.StatusBadRequest, "invalid intake id")
	}

	p, err := h.svc.Get(c.Request().Context(), id, auth.UserIDFromContext(c.Request().Context()))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return apiresponse.Fail(c, http.StatusNotFound, "intake not found")
		}
		return apiresponse.Fail(c, http.StatusInternalServerError, "failed to load intake")
	}
	return apiresponse.OK(c, http.StatusOK, p)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	userID := auth.UserIDFromContext(c.Request().Context())

	items, total, err := h.svc.List(c.Request().Context(), userID, pg.Limit, pg.Offset)
	if err != nil {
		return apiresponse.Fail(c, http.StatusInternalServerError, "failed to list intakes")
	}
	return apiresponse.OK(c, http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}
