// Package kanban implements the drag-and-drop board protocol used by clients:
// an optimistic working set backed by a fixed snapshot, with a full-snapshot
// rollback when persistence fails.
package kanban

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/candipilot/candipilot-api/internal/core/domain"
)

// Persister saves a single status change. Implementations must persist only
// the status and applied_at fields of the card.
type Persister interface {
	UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus, appliedAt *time.Time) error
}

// Loader fetches the full board contents, newest-created first.
type Loader interface {
	Applications(ctx context.Context) ([]*domain.Application, error)
}

// Board holds the working set shown to the user and the snapshot it reverts
// to. The snapshot only advances on Reload: a successful drag mutates the
// working set and persists, but the revert point stays where the last load
// left it.
type Board struct {
	mu       sync.Mutex
	working  []*domain.Application
	snapshot []*domain.Application

	loader    Loader
	persister Persister
	logger    zerolog.Logger

	now func() time.Time
}

func NewBoard(loader Loader, persister Persister, logger zerolog.Logger) *Board {
	return &Board{
		loader:    loader,
		persister: persister,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Reload replaces both the working set and the snapshot with fresh data.
func (b *Board) Reload(ctx context.Context) error {
	apps, err := b.loader.Applications(ctx)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.working = apps
	b.snapshot = cloneAll(apps)
	return nil
}

// Cards returns a copy of the working set.
func (b *Board) Cards() []*domain.Application {
	b.mu.Lock()
	defer b.mu.Unlock()
	return cloneAll(b.working)
}

// Column returns the working-set cards currently in the given status.
func (b *Board) Column(status domain.ApplicationStatus) []*domain.Application {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []*domain.Application
	for _, app := range b.working {
		if app.Status == status {
			clone := *app
			out = append(out, &clone)
		}
	}
	return out
}

// DragEnd resolves a finished drag gesture. target is either a column id
// (a status name) or the id of the card the drag was dropped onto, in which
// case that card's current status is the destination. An empty target, an
// unknown target, or a drop onto the card's own column aborts the gesture
// without any store call.
//
// The move is applied optimistically: the working set changes first, then the
// change is persisted. If persistence fails the whole working set is restored
// from the snapshot, discarding any other optimistic edits made since the
// last Reload.
func (b *Board) DragEnd(ctx context.Context, cardID, target string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if target == "" {
		return nil
	}

	card := b.find(cardID)
	if card == nil {
		return domain.ErrApplicationNotFound
	}

	next, ok := b.resolveTarget(target)
	if !ok {
		return nil
	}

	change, changed := domain.PlanStatusChange(card, next, b.now())
	if !changed {
		return nil
	}

	// Optimistic apply.
	card.Status = change.Status
	if change.AppliedAt != nil {
		card.AppliedAt = change.AppliedAt
	}

	if err := b.persister.UpdateStatus(ctx, card.ID, change.Status, change.AppliedAt); err != nil {
		b.logger.Error().Err(err).Str("card_id", card.ID).Msg("status update failed, reverting board")
		b.working = cloneAll(b.snapshot)
		return err
	}
	return nil
}

// resolveTarget maps a drop target to a destination status.
func (b *Board) resolveTarget(target string) (domain.ApplicationStatus, bool) {
	if status := domain.ApplicationStatus(target); status.Valid() {
		return status, true
	}
	if over := b.find(target); over != nil {
		return over.Status, true
	}
	return "", false
}

func (b *Board) find(id string) *domain.Application {
	for _, app := range b.working {
		if app.ID == id {
			return app
		}
	}
	return nil
}

func cloneAll(apps []*domain.Application) []*domain.Application {
	out := make([]*domain.Application, len(apps))
	for i, app := range apps {
		clone := *app
		out[i] = &clone
	}
	return out
}
