package ports

import "context"

// ExportService produces the CSV export of a user's applications.
// Available to pro accounts only.
type ExportService interface {
	ExportCSV(ctx context.Context, userID string) ([]byte, error)
}
