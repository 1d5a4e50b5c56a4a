package ports

import (
	"context"
	"time"

	"github.com/candipilot/candipilot-api/internal/core/domain"
)

// CreateApplicationInput carries the data needed to create an application.
type CreateApplicationInput struct {
	UserID  string
	Company string
	Role    string
	URL     string
	Notes   string
	// Status defaults to todo when empty.
	Status domain.ApplicationStatus
}

// UpdateApplicationInput is a partial update; nil fields are not modified.
type UpdateApplicationInput struct {
	Company       *string
	Role          *string
	URL           *string
	Notes         *string
	Status        *domain.ApplicationStatus
	LastContactAt *time.Time
}

// QuotaStatus is the boundary view of the application quota, evaluated
// immediately before each creation attempt and never cached.
type QuotaStatus struct {
	Count     int
	Limit     int
	CanCreate bool
	IsPro     bool
}

// ColumnCount is the number of applications in one board column.
type ColumnCount struct {
	Status domain.ApplicationStatus
	Count  int
}

// StatsOverview aggregates the dashboard counters.
type StatsOverview struct {
	Total      int
	Applied    int // everything that left todo
	Interviews int
	Offers     int
	// SuccessRate is offers over sent applications, as a rounded percentage.
	SuccessRate int
	Columns     []ColumnCount
}

// ApplicationService defines the use-case operations on applications.
type ApplicationService interface {
	List(ctx context.Context, userID string) ([]*domain.Application, error)
	Get(ctx context.Context, userID, id string) (*domain.Application, error)
	Create(ctx context.Context, input CreateApplicationInput) (*domain.Application, error)
	Update(ctx context.Context, userID, id string, input UpdateApplicationInput) (*domain.Application, error)
	Delete(ctx context.Context, userID, id string) error
	Quota(ctx context.Context, userID string) (*QuotaStatus, error)
	Stats(ctx context.Context, userID string) (*StatsOverview, error)
}
