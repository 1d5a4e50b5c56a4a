package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/candipilot/candipilot-api/internal/api/metrics"
	"github.com/candipilot/candipilot-api/internal/core/domain"
	"github.com/candipilot/candipilot-api/internal/core/ports"
)

// FollowupHandler handles AI follow-up email generation.
type FollowupHandler struct {
	service ports.FollowupService
}

func NewFollowupHandler(service ports.FollowupService) *FollowupHandler {
	return &FollowupHandler{service: service}
}

type followupRequest struct {
	Company   string     `json:"company" validate:"required,max=200"`
	Role      string     `json:"role" validate:"required,max=200"`
	AppliedAt *time.Time `json:"applied_at"`
	Tone      string     `json:"tone" validate:"omitempty,oneof=formal neutral short"`
}

type followupResponse struct {
	Email     string `json:"email"`
	Remaining int    `json:"remaining"`
	Limit     int    `json:"limit"`
	IsPro     bool   `json:"isPro"`
}

// Generate handles POST /v1/ai/followup.
//
// @Summary      Generate a follow-up email
// @Tags         ai
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      followupRequest  true  "Application context and tone"
// @Success      200   {object}  followupResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]interface{}
// @Failure      502   {object}  map[string]string
// @Router       /v1/ai/followup [post]
func (h *FollowupHandler) Generate(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req followupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	result, err := h.service.Generate(c.Request().Context(), ports.GenerateFollowupInput{
		UserID:    userID,
		Company:   req.Company,
		Role:      req.Role,
		AppliedAt: req.AppliedAt,
		Tone:      ports.FollowupTone(req.Tone),
	})
	if err != nil {
		if errors.Is(err, domain.ErrFollowupQuotaExceeded) {
			metrics.QuotaRejectionsTotal.WithLabelValues("followups").Inc()
			return c.JSON(http.StatusForbidden, map[string]any{
				"error":     "AI_LIMIT_REACHED",
				"message":   "Limite mensuelle de relances IA atteinte.",
				"remaining": 0,
				"limit":     domain.MaxFreeFollowups,
				"isPro":     false,
			})
		}
		return err
	}

	tier := "free"
	if result.IsPro {
		tier = "pro"
	}
	metrics.FollowupsGeneratedTotal.WithLabelValues(tier).Inc()

	return c.JSON(http.StatusOK, followupResponse{
		Email:     result.Email,
		Remaining: result.Remaining,
		Limit:     result.Limit,
		IsPro:     result.IsPro,
	})
}
