package ports

import (
	"context"
	"time"

	"github.com/candipilot/candipilot-api/internal/core/domain"
)

// ApplicationPatch carries the fields of a partial update. Nil pointers are
// left untouched by the store. AppliedAt is only ever written as part of a
// status change computed by the transition policy; it is never cleared.
type ApplicationPatch struct {
	Company       *string
	Role          *string
	URL           *string
	Notes         *string
	Status        *domain.ApplicationStatus
	AppliedAt     *time.Time
	LastContactAt *time.Time
}

// Empty reports whether the patch writes nothing.
func (p ApplicationPatch) Empty() bool {
	return p.Company == nil && p.Role == nil && p.URL == nil && p.Notes == nil &&
		p.Status == nil && p.AppliedAt == nil && p.LastContactAt == nil
}

// ApplicationRepository defines persistence for application records. Every
// operation is scoped to the owning user; a mismatched owner behaves exactly
// like a missing record.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	FindByID(ctx context.Context, id, userID string) (*domain.Application, error)
	// List returns the user's applications, newest-created first.
	List(ctx context.Context, userID string) ([]*domain.Application, error)
	Count(ctx context.Context, userID string) (int, error)
	Update(ctx context.Context, id, userID string, patch ApplicationPatch) error
	Delete(ctx context.Context, id, userID string) error
}
