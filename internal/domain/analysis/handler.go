package analysis

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/intake/intake/internal/domain/intake"
	"github.com/intake/intake/internal/platform/ai"
	"github.com/intake/intake/pkg/apiresponse"
)

type Handler struct {
	svc *Service
	log zerolog.Logger
}

func NewHandler(svc *Service, log zerolog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/analyze", h.Analyze)
	api.GET("/analysis/:id", h.Get)
	api.PUT("/analysis/:id", h.Review)
}

type analyzeRequest struct {
	IntakeID string `json:"intakeId"`
}

func (h *Handler) Analyze(c echo.Context) error {
	var req analyzeRequest
	if err := c.Bind(&req); err != nil {
		return apiresponse.Fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.IntakeID == "" {
		return apiresponse.Fail(c, http.StatusBadRequest, "intakeId is required")
	}
	intakeID, err := uuid.Parse(req.IntakeID)
	if err != nil {
		return apiresponse.Fail(c, http.StatusBadRequest, "invalid intakeId")
	}

	result, err := h.svc.Analyze(c.Request().Context(), intakeID)
	if err != nil {
		if errors.Is(err, intake.ErrNotFound) {
			return apiresponse.Fail(c, http.StatusNotFound, "intake not found")
		}

		// Upstream, schema, and persistence failures are logged in full
		// server-side and surfaced only as a generic message.
		var upstream *ai.UpstreamError
		var schemaErr *SchemaViolationError
		switch {
		case errors.As(err, &upstream):
			h.log.Error().Err(err).Str("intake_id", intakeID.String()).Msg("inference call failed")
		case errors.As(err, &schemaErr):
			h.log.Error().Err(err).Str("intake_id", intakeID.String()).Msg("inference response violated output schema")
		default:
			h.log.Error().Err(err).Str("intake_id", intakeID.String()).Msg("analysis failed")
		}
		return apiresponse.Fail(c, http.StatusInternalServerError, "analysis failed")
	}
	return apiresponse.OK(c, http.StatusCreated, result)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apiresponse.Fail(c, http.StatusBadRequest, "invalid analysis id")
	}

	a, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return apiresponse.Fail(c, http.StatusNotFound, "analysis not found")
		}
		return apiresponse.Fail(c, http.StatusInternalServerError, "failed to load analysis")
	}
	return apiresponse.OK(c, http.StatusOK, a)
}

type reviewRequest struct {
	Action          string              `json:"action"`
	ReviewerName    string              `json:"reviewer_name"`
	ReviewerNotes   *string             `json:"reviewer_notes"`
	RejectionReason string              `json:"rejection_reason"`
	TreatmentPlan   *TreatmentPlanPatch `json:"treatment_plan"`
}

func (h *Handler) Review(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apiresponse.Fail(c, http.StatusBadRequest, "invalid analysis id")
	}

	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return apiresponse.Fail(c, http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()
	var a *AIAnalysisResult
	switch req.Action {
	case "approve":
		a, err = h.svc.Approve(ctx, id, ApproveCommand{
			ReviewerName:  req.ReviewerName,
			ReviewerNotes: req.ReviewerNotes,
		})
	case "reject":
		a, err = h.svc.Reject(ctx, id, RejectCommand{
			ReviewerName:    req.ReviewerName,
			RejectionReason: req.RejectionReason,
		})
	case "edit":
		cmd := EditCommand{ReviewerName: req.ReviewerName}
		if req.TreatmentPlan != nil {
			cmd.Plan = *req.TreatmentPlan
		}
		a, err = h.svc.Edit(ctx, id, cmd)
	default:
		return apiresponse.Fail(c, http.StatusBadRequest, "action must be one of approve, reject, edit")
	}

	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return apiresponse.Fail(c, http.StatusNotFound, "analysis not found")
		case errors.Is(err, ErrReviewFinalized):
			return apiresponse.Fail(c, http.StatusConflict, "analysis review is finalized")
		case errors.Is(err, ErrReviewerRequired), errors.Is(err, ErrRejectionReasonRequired):
			return apiresponse.Fail(c, http.StatusBadRequest, err.Error())
		default:
			h.log.Error().Err(err).Str("analysis_id", id.String()).Msg("review action failed")
			return apiresponse.Fail(c, http.StatusInternalServerError, "review action failed")
		}
	}
	return apiresponse.OK(c, http.StatusOK, a)
}
