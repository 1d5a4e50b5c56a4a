package domain

import (
	"errors"
	"time"
)

// ApplicationStatus represents the lifecycle stage of a job application.
// It is also the identifier of the Kanban column the application sits in.
type ApplicationStatus string

const (
	StatusTodo      ApplicationStatus = "todo"
	StatusApplied   ApplicationStatus = "applied"
	StatusFollowup  ApplicationStatus = "followup"
	StatusInterview ApplicationStatus = "interview"
	StatusOffer     ApplicationStatus = "offer"
	StatusRejected  ApplicationStatus = "rejected"
)

// KanbanColumns lists the six fixed board columns in display order.
var KanbanColumns = []ApplicationStatus{
	StatusTodo,
	StatusApplied,
	StatusFollowup,
	StatusInterview,
	StatusOffer,
	StatusRejected,
}

// StatusLabels maps each status to the French label used in exports.
var StatusLabels = map[ApplicationStatus]string{
	StatusTodo:      "À postuler",
	StatusApplied:   "Candidature envoyée",
	StatusFollowup:  "Relance envoyée",
	StatusInterview: "Entretien",
	StatusOffer:     "Offre reçue",
	StatusRejected:  "Refusé",
}

// Valid reports whether s is one of the six fixed statuses.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusApplied, StatusFollowup, StatusInterview, StatusOffer, StatusRejected:
		return true
	}
	return false
}

// Label returns the French label for s, falling back to the raw value.
func (s ApplicationStatus) Label() string {
	if l, ok := StatusLabels[s]; ok {
		return l
	}
	return string(s)
}

var (
	ErrApplicationNotFound   = errors.New("application not found")
	ErrInvalidStatus         = errors.New("invalid application status")
	ErrQuotaExceeded         = errors.New("application limit reached")
	ErrFollowupQuotaExceeded = errors.New("monthly follow-up limit reached")
	ErrProRequired           = errors.New("pro subscription required")
	ErrNotConfigured         = errors.New("external service not configured")
	ErrUpstream              = errors.New("upstream service failure")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrValidation            = errors.New("missing required fields")
)

// Application is a single tracked job application, always owned by one user.
type Application struct {
	ID            string            `json:"id"`
	UserID        string            `json:"user_id"`
	Company       string            `json:"company"`
	Role          string            `json:"role"`
	URL           string            `json:"url,omitempty"`
	Status        ApplicationStatus `json:"status"`
	AppliedAt     *time.Time        `json:"applied_at,omitempty"`
	LastContactAt *time.Time        `json:"last_contact_at,omitempty"`
	Notes         string            `json:"notes,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}
