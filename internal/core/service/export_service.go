package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/candipilot/candipilot-api/internal/core/domain"
	"github.com/candipilot/candipilot-api/internal/core/ports"
)

// csvHeader is the fixed French header row of the export.
const csvHeader = "Entreprise;Poste;Statut;Date candidature;URL;Notes;Créé le"

// utf8BOM makes Excel open the file as UTF-8.
const utf8BOM = "\uFEFF"

// ExportService builds the semicolon-delimited CSV export. Pro accounts only.
type ExportService struct {
	apps     ports.ApplicationRepository
	profiles ports.ProfileRepository
	logger   zerolog.Logger
}

func NewExportService(apps ports.ApplicationRepository, profiles ports.ProfileRepository, logger zerolog.Logger) *ExportService {
	return &ExportService{apps: apps, profiles: profiles, logger: logger}
}

func (s *ExportService) ExportCSV(ctx context.Context, userID string) ([]byte, error) {
	profile, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !profile.IsPro() {
		return nil, domain.ErrProRequired
	}

	apps, err := s.apps.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", userID).Int("rows", len(apps)).Msg("CSV export generated")
	return buildCSV(apps), nil
}

// buildCSV renders the rows newest-created first (the repository order).
// Free-text fields are quoted with embedded quotes doubled; newlines in
// notes are flattened to spaces so every record stays on one line.
func buildCSV(apps []*domain.Application) []byte {
	var b strings.Builder
	b.WriteString(utf8BOM)
	b.WriteString(csvHeader)

	for _, app := range apps {
		appliedAt := ""
		if app.AppliedAt != nil {
			appliedAt = frDate(*app.AppliedAt)
		}
		fields := []string{
			quoteField(app.Company),
			quoteField(app.Role),
			quoteField(app.Status.Label()),
			appliedAt,
			quoteField(app.URL),
			quoteField(strings.ReplaceAll(app.Notes, "\n", " ")),
			frDate(app.CreatedAt),
		}
		b.WriteString("\n")
		b.WriteString(strings.Join(fields, ";"))
	}

	return []byte(b.String())
}

// quoteField wraps s in double quotes, doubling embedded quote characters.
func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
