package handler

import (
	"time"

	"github.com/candipilot/candipilot-api/internal/core/domain"
	"github.com/candipilot/candipilot-api/internal/core/ports"
)

// --- Request types ---

type createApplicationRequest struct {
	Company string `json:"company" validate:"required,max=200"`
	Role    string `json:"role" validate:"required,max=200"`
	URL     string `json:"url" validate:"omitempty,url"`
	Notes   string `json:"notes" validate:"omitempty,max=5000"`
	Status  string `json:"status" validate:"omitempty,oneof=todo applied followup interview offer rejected"`
}

type updateApplicationRequest struct {
	Company       *string    `json:"company" validate:"omitempty,max=200"`
	Role          *string    `json:"role" validate:"omitempty,max=200"`
	URL           *string    `json:"url" validate:"omitempty,url"`
	Notes         *string    `json:"notes" validate:"omitempty,max=5000"`
	Status        *string    `json:"status" validate:"omitempty,oneof=todo applied followup interview offer rejected"`
	LastContactAt *time.Time `json:"last_contact_at"`
}

// --- Response types ---

type applicationResponse struct {
	ID            string     `json:"id"`
	Company       string     `json:"company"`
	Role          string     `json:"role"`
	URL           string     `json:"url,omitempty"`
	Status        string     `json:"status"`
	AppliedAt     *time.Time `json:"applied_at,omitempty"`
	LastContactAt *time.Time `json:"last_contact_at,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type quotaResponse struct {
	Count     int  `json:"count"`
	Limit     int  `json:"limit"`
	CanCreate bool `json:"canCreate"`
	IsPro     bool `json:"isPro"`
}

type columnCountResponse struct {
	Status string `json:"status"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
}

type statsResponse struct {
	Total       int                   `json:"total"`
	Applied     int                   `json:"applied"`
	Interviews  int                   `json:"interviews"`
	Offers      int                   `json:"offers"`
	SuccessRate int                   `json:"successRate"`
	Columns     []columnCountResponse `json:"columns"`
}

// --- Mapping ---

func toApplicationResponse(app *domain.Application) *applicationResponse {
	return &applicationResponse{
		ID:            app.ID,
		Company:       app.Company,
		Role:          app.Role,
		URL:           app.URL,
		Status:        string(app.Status),
		AppliedAt:     app.AppliedAt,
		LastContactAt: app.LastContactAt,
		Notes:         app.Notes,
		CreatedAt:     app.CreatedAt,
		UpdatedAt:     app.UpdatedAt,
	}
}

func toApplicationList(apps []*domain.Application) []*applicationResponse {
	out := make([]*applicationResponse, 0, len(apps))
	for _, app := range apps {
		out = append(out, toApplicationResponse(app))
	}
	return out
}

func toStatsResponse(stats *ports.StatsOverview) *statsResponse {
	columns := make([]columnCountResponse, 0, len(stats.Columns))
	for _, col := range stats.Columns {
		columns = append(columns, columnCountResponse{
			Status: string(col.Status),
			Label:  col.Status.Label(),
			Count:  col.Count,
		})
	}
	return &statsResponse{
		Total:       stats.Total,
		Applied:     stats.Applied,
		Interviews:  stats.Interviews,
		Offers:      stats.Offers,
		SuccessRate: stats.SuccessRate,
		Columns:     columns,
	}
}
