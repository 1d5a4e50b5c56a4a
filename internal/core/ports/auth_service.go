package ports

import (
	"context"

	"github.com/candipilot/candipilot-api/internal/core/domain"
)

// AuthService registers users and issues session tokens. Registration is the
// "first authentication": it creates the profile with tier free and zeroed
// usage counters.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*domain.Profile, error)
	Login(ctx context.Context, email, password string) (string, *domain.Profile, error)
}
