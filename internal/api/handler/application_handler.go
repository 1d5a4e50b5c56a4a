package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/candipilot/candipilot-api/internal/api/metrics"
	"github.com/candipilot/candipilot-api/internal/core/domain"
	"github.com/candipilot/candipilot-api/internal/core/ports"
)

// ApplicationHandler handles HTTP requests for application CRUD, quota, and
// stats.
type ApplicationHandler struct {
	service ports.ApplicationService
}

func NewApplicationHandler(service ports.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

// List handles GET /v1/applications.
//
// @Summary      List the user's applications, newest first
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   applicationResponse
// @Failure      401  {object}  map[string]string
// @Router       /v1/applications [get]
func (h *ApplicationHandler) List(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	apps, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toApplicationList(apps))
}

// Get handles GET /v1/applications/:id.
//
// @Summary      Get one application
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Application id"
// @Success      200  {object}  applicationResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/applications/{id} [get]
func (h *ApplicationHandler) Get(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	app, err := h.service.Get(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toApplicationResponse(app))
}

// Create handles POST /v1/applications.
//
// @Summary      Create an application
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createApplicationRequest  true  "Application details"
// @Success      201   {object}  applicationResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]interface{}
// @Router       /v1/applications [post]
func (h *ApplicationHandler) Create(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createApplicationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	app, err := h.service.Create(c.Request().Context(), ports.CreateApplicationInput{
		UserID:  userID,
		Company: req.Company,
		Role:    req.Role,
		URL:     req.URL,
		Notes:   req.Notes,
		Status:  domain.ApplicationStatus(req.Status),
	})
	if err != nil {
		if errors.Is(err, domain.ErrQuotaExceeded) {
			metrics.QuotaRejectionsTotal.WithLabelValues("applications").Inc()
			return c.JSON(http.StatusForbidden, map[string]any{
				"error": "LIMIT_REACHED",
				"limit": domain.MaxFreeApplications,
				"isPro": false,
			})
		}
		return err
	}

	metrics.ApplicationsCreatedTotal.WithLabelValues(string(app.Status)).Inc()
	return c.JSON(http.StatusCreated, toApplicationResponse(app))
}

// Update handles PATCH /v1/applications/:id.
//
// @Summary      Update an application
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Application id"
// @Param        body  body      updateApplicationRequest  true  "Fields to update"
// @Success      200   {object}  applicationResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/applications/{id} [patch]
func (h *ApplicationHandler) Update(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateApplicationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	input := ports.UpdateApplicationInput{
		Company:       req.Company,
		Role:          req.Role,
		URL:           req.URL,
		Notes:         req.Notes,
		LastContactAt: req.LastContactAt,
	}
	if req.Status != nil {
		status := domain.ApplicationStatus(*req.Status)
		input.Status = &status
	}

	app, err := h.service.Update(c.Request().Context(), userID, c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toApplicationResponse(app))
}

// Delete handles DELETE /v1/applications/:id.
//
// @Summary      Delete an application
// @Tags         applications
// @Security     BearerAuth
// @Param        id  path  string  true  "Application id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/applications/{id} [delete]
func (h *ApplicationHandler) Delete(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Quota handles GET /v1/applications/quota.
//
// @Summary      Current application quota
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  quotaResponse
// @Router       /v1/applications/quota [get]
func (h *ApplicationHandler) Quota(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	q, err := h.service.Quota(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, quotaResponse{
		Count:     q.Count,
		Limit:     q.Limit,
		CanCreate: q.CanCreate,
		IsPro:     q.IsPro,
	})
}

// Stats handles GET /v1/stats/overview.
//
// @Summary      Dashboard counters
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  statsResponse
// @Router       /v1/stats/overview [get]
func (h *ApplicationHandler) Stats(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	stats, err := h.service.Stats(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toStatsResponse(stats))
}
