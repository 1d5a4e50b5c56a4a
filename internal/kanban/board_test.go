package kanban

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/candipilot/candipilot-api/internal/core/domain"
)

type fakeStore struct {
	apps    []*domain.Application
	loadErr error

	saveErr error
	saves   []savedChange
}

type savedChange struct {
	id        string
	status    domain.ApplicationStatus
	appliedAt *time.Time
}

func (s *fakeStore) Applications(_ context.Context) ([]*domain.Application, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	out := make([]*domain.Application, len(s.apps))
	for i, app := range s.apps {
		clone := *app
		out[i] = &clone
	}
	return out, nil
}

func (s *fakeStore) UpdateStatus(_ context.Context, id string, status domain.ApplicationStatus, appliedAt *time.Time) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves = append(s.saves, savedChange{id: id, status: status, appliedAt: appliedAt})
	return nil
}

func newTestBoard(t *testing.T, store *fakeStore) *Board {
	t.Helper()
	b := NewBoard(store, store, zerolog.Nop())
	if err := b.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	return b
}

func card(id string, status domain.ApplicationStatus) *domain.Application {
	return &domain.Application{ID: id, UserID: "u1", Company: "Acme", Role: "Dev", Status: status}
}

func TestBoard_DragToColumn(t *testing.T) {
	store := &fakeStore{apps: []*domain.Application{card("a1", domain.StatusTodo)}}
	b := newTestBoard(t, store)

	if err := b.DragEnd(context.Background(), "a1", "applied"); err != nil {
		t.Fatalf("drag: %v", err)
	}

	cards := b.Cards()
	if cards[0].Status != domain.StatusApplied {
		t.Errorf("expected card moved to applied, got %s", cards[0].Status)
	}
	if cards[0].AppliedAt == nil {
		t.Error("first leave of todo must stamp applied_at")
	}
	if len(store.saves) != 1 {
		t.Fatalf("expected one persisted change, got %d", len(store.saves))
	}
	if store.saves[0].status != domain.StatusApplied || store.saves[0].appliedAt == nil {
		t.Errorf("unexpected persisted change: %+v", store.saves[0])
	}
}

func TestBoard_DragOntoCardUsesItsColumn(t *testing.T) {
	store := &fakeStore{apps: []*domain.Application{
		card("a1", domain.StatusTodo),
		card("a2", domain.StatusInterview),
	}}
	b := newTestBoard(t, store)

	if err := b.DragEnd(context.Background(), "a1", "a2"); err != nil {
		t.Fatalf("drag: %v", err)
	}
	if got := b.Cards()[0].Status; got != domain.StatusInterview {
		t.Errorf("expected drop onto a2 to target interview, got %s", got)
	}
}

func TestBoard_AbortedGestures(t *testing.T) {
	cases := []struct {
		name   string
		target string
	}{
		{"no destination", ""},
		{"unknown target", "nonsense"},
		{"same column", "todo"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeStore{apps: []*domain.Application{card("a1", domain.StatusTodo)}}
			b := newTestBoard(t, store)

			if err := b.DragEnd(context.Background(), "a1", tc.target); err != nil {
				t.Fatalf("aborted gesture must not fail: %v", err)
			}
			if len(store.saves) != 0 {
				t.Fatalf("aborted gesture must not persist, got %d saves", len(store.saves))
			}
			if got := b.Cards()[0].Status; got != domain.StatusTodo {
				t.Errorf("card must not move, got %s", got)
			}
		})
	}
}

func TestBoard_DropOntoCardInSameColumnAborts(t *testing.T) {
	store := &fakeStore{apps: []*domain.Application{
		card("a1", domain.StatusApplied),
		card("a2", domain.StatusApplied),
	}}
	b := newTestBoard(t, store)

	if err := b.DragEnd(context.Background(), "a1", "a2"); err != nil {
		t.Fatalf("reorder within a column must be a no-op: %v", err)
	}
	if len(store.saves) != 0 {
		t.Fatal("reorder within a column must not persist")
	}
}

func TestBoard_PersistFailureRevertsToSnapshot(t *testing.T) {
	store := &fakeStore{apps: []*domain.Application{
		card("a1", domain.StatusTodo),
		card("a2", domain.StatusApplied),
	}}
	b := newTestBoard(t, store)

	// First move succeeds but does not advance the snapshot.
	if err := b.DragEnd(context.Background(), "a2", "interview"); err != nil {
		t.Fatalf("first drag: %v", err)
	}

	store.saveErr = errors.New("store down")
	if err := b.DragEnd(context.Background(), "a1", "applied"); err == nil {
		t.Fatal("expected persistence error")
	}

	// The rollback restores the last Reload state, losing the earlier
	// optimistic move as well.
	cards := b.Cards()
	if cards[0].Status != domain.StatusTodo {
		t.Errorf("a1 must revert to todo, got %s", cards[0].Status)
	}
	if cards[1].Status != domain.StatusApplied {
		t.Errorf("a2 must revert to applied, got %s", cards[1].Status)
	}
}

func TestBoard_ReloadAdvancesSnapshot(t *testing.T) {
	store := &fakeStore{apps: []*domain.Application{card("a1", domain.StatusTodo)}}
	b := newTestBoard(t, store)

	if err := b.DragEnd(context.Background(), "a1", "applied"); err != nil {
		t.Fatalf("drag: %v", err)
	}

	// Simulate the store reflecting the persisted change, then reload.
	store.apps[0].Status = domain.StatusApplied
	if err := b.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}

	store.saveErr = errors.New("store down")
	_ = b.DragEnd(context.Background(), "a1", "offer")

	if got := b.Cards()[0].Status; got != domain.StatusApplied {
		t.Errorf("revert must land on the reloaded snapshot, got %s", got)
	}
}

func TestBoard_UnknownCard(t *testing.T) {
	store := &fakeStore{apps: []*domain.Application{card("a1", domain.StatusTodo)}}
	b := newTestBoard(t, store)

	err := b.DragEnd(context.Background(), "ghost", "applied")
	if !errors.Is(err, domain.ErrApplicationNotFound) {
		t.Fatalf("expected ErrApplicationNotFound, got %v", err)
	}
}

func TestBoard_Column(t *testing.T) {
	store := &fakeStore{apps: []*domain.Application{
		card("a1", domain.StatusTodo),
		card("a2", domain.StatusApplied),
		card("a3", domain.StatusTodo),
	}}
	b := newTestBoard(t, store)

	col := b.Column(domain.StatusTodo)
	if len(col) != 2 {
		t.Fatalf("expected 2 todo cards, got %d", len(col))
	}
}
