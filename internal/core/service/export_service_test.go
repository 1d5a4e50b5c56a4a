package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/candipilot/candipilot-api/internal/core/domain"
)

func TestExportService_FreeTierRejected(t *testing.T) {
	apps := &stubApplicationRepo{}
	profiles := newStubProfileRepo(freeProfile("u1"))
	svc := NewExportService(apps, profiles, discardLogger)

	_, err := svc.ExportCSV(context.Background(), "u1")
	if !errors.Is(err, domain.ErrProRequired) {
		t.Fatalf("expected ErrProRequired, got %v", err)
	}
}

func TestExportService_CSVFormat(t *testing.T) {
	apps := &stubApplicationRepo{}
	profiles := newStubProfileRepo(proProfile("u1"))
	svc := NewExportService(apps, profiles, discardLogger)

	applied := time.Date(2025, time.March, 5, 10, 0, 0, 0, time.UTC)
	apps.apps = append(apps.apps, &domain.Application{
		ID:        "a1",
		UserID:    "u1",
		Company:   `He said "Hi"`,
		Role:      "Stagiaire data",
		Status:    domain.StatusApplied,
		AppliedAt: &applied,
		Notes:     "Premier contact\npar téléphone",
		CreatedAt: time.Date(2025, time.March, 1, 8, 0, 0, 0, time.UTC),
	})

	out, err := svc.ExportCSV(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := string(out)

	if !strings.HasPrefix(content, "\ufeff") {
		t.Error("export must start with a UTF-8 BOM")
	}

	lines := strings.Split(strings.TrimPrefix(content, "\ufeff"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if lines[0] != "Entreprise;Poste;Statut;Date candidature;URL;Notes;Créé le" {
		t.Errorf("unexpected header: %q", lines[0])
	}

	row := lines[1]
	if !strings.Contains(row, `"He said ""Hi"""`) {
		t.Errorf("embedded quotes must be doubled, row: %q", row)
	}
	if strings.Contains(row, "\n") {
		t.Error("notes newlines must be flattened to spaces")
	}
	if !strings.Contains(row, `"Premier contact par téléphone"`) {
		t.Errorf("expected flattened notes, row: %q", row)
	}
	if !strings.Contains(row, `"Candidature envoyée"`) {
		t.Errorf("expected French status label, row: %q", row)
	}
	if !strings.Contains(row, "05/03/2025") {
		t.Errorf("expected French applied date, row: %q", row)
	}
	if !strings.HasSuffix(row, "01/03/2025") {
		t.Errorf("expected French creation date at the end, row: %q", row)
	}
}

func TestExportService_NewestFirstAndEmptyAppliedAt(t *testing.T) {
	apps := &stubApplicationRepo{}
	profiles := newStubProfileRepo(proProfile("u1"))
	svc := NewExportService(apps, profiles, discardLogger)

	// The stub list preserves order; newest first like the real repository.
	apps.apps = append(apps.apps,
		&domain.Application{ID: "new", UserID: "u1", Company: "Newest", Status: domain.StatusTodo, CreatedAt: time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)},
		&domain.Application{ID: "old", UserID: "u1", Company: "Oldest", Status: domain.StatusTodo, CreatedAt: time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)},
	)

	out, err := svc.ExportCSV(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimPrefix(string(out), "\ufeff"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[1], `"Newest"`) {
		t.Errorf("expected newest application first, got %q", lines[1])
	}
	// No applied_at: the date column stays empty between separators.
	if !strings.Contains(lines[1], `"À postuler";;`) {
		t.Errorf("expected empty applied date, got %q", lines[1])
	}
}
