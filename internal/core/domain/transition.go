package domain

import "time"

// StatusChange is the persistable effect of a status transition: the new
// status and the applied_at value that must accompany it.
type StatusChange struct {
	Status    ApplicationStatus
	AppliedAt *time.Time
}

// PlanStatusChange applies the shared transition rule used by every path
// that changes an application's status (manual update, board drag).
//
// The first transition away from todo stamps applied_at once. Once set it is
// never overwritten and never cleared, even when the application moves back
// to todo. A transition to the current status is a no-op: the second return
// value is false and no persistence call must be made.
func PlanStatusChange(app *Application, next ApplicationStatus, now time.Time) (StatusChange, bool) {
	if next == app.Status {
		return StatusChange{}, false
	}

	change := StatusChange{Status: next, AppliedAt: app.AppliedAt}
	if next != StatusTodo && app.AppliedAt == nil {
		t := now.UTC()
		change.AppliedAt = &t
	}
	return change, true
}
