package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/candipilot/candipilot-api/internal/api/metrics"
	"github.com/candipilot/candipilot-api/internal/core/domain"
	"github.com/candipilot/candipilot-api/internal/core/ports"
)

// ExportHandler serves the CSV export (pro accounts only).
type ExportHandler struct {
	service ports.ExportService
}

func NewExportHandler(service ports.ExportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// CSV handles GET /v1/export/csv.
//
// @Summary      Export applications as CSV
// @Tags         export
// @Produce      text/csv
// @Security     BearerAuth
// @Success      200  {string}  string  "CSV file"
// @Failure      403  {object}  map[string]interface{}
// @Router       /v1/export/csv [get]
func (h *ExportHandler) CSV(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	data, err := h.service.ExportCSV(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrProRequired) {
			metrics.QuotaRejectionsTotal.WithLabelValues("export").Inc()
			return c.JSON(http.StatusForbidden, map[string]any{
				"error":   "PRO_REQUIRED",
				"message": "L'export CSV est réservé aux comptes Pro.",
			})
		}
		return err
	}

	metrics.ExportsTotal.Inc()

	filename := fmt.Sprintf("candipilot_export_%s.csv", time.Now().UTC().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", data)
}
