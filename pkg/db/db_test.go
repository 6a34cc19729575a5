package db

import (
	"testing"

	"github.com/K-Bak/geo-checker/models"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	database, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	return database
}

func sampleReport() *models.Report {
	return &models.Report{
		FinalURL: "https://acme.dk/fliserens",
		PageType: models.ServicePage,
		Scores: models.Scores{
			Overall: 6.4,
			PerPillar: map[string]float64{
				models.PillarEntity:       7.0,
				models.PillarCredibility:  5.5,
				models.PillarTechnical:    6.8,
				models.PillarIndexability: 10,
			},
		},
		Findings: []models.Finding{
			{Pillar: models.PillarEntity, Severity: models.SeverityHigh, Title: "No social or review profiles linked"},
		},
	}
}

func TestInsertAndListAudits(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	id, err := db.InsertAudit("https://acme.dk/fliserens", sampleReport())
	if err != nil {
		t.Fatalf("InsertAudit() error = %v", err)
	}
	if id == 0 {
		t.Fatal("InsertAudit() returned zero id")
	}

	rows, err := db.ListAudits("", 10)
	if err != nil {
		t.Fatalf("ListAudits() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("ListAudits() = %d rows, want 1", len(rows))
	}

	row := rows[0]
	if row.URL != "https://acme.dk/fliserens" {
		t.Errorf("URL = %q", row.URL)
	}
	if row.OverallScore != 6.4 {
		t.Errorf("OverallScore = %.1f, want 6.4", row.OverallScore)
	}
	if row.PageType != string(models.ServicePage) {
		t.Errorf("PageType = %q", row.PageType)
	}
	if row.FindingsCount != 1 {
		t.Errorf("FindingsCount = %d, want 1", row.FindingsCount)
	}
}

func TestListAuditsFiltersByURL(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if _, err := db.InsertAudit("https://acme.dk/a", sampleReport()); err != nil {
		t.Fatal(err)
	}
	if _, err := db.InsertAudit("https://acme.dk/b", sampleReport()); err != nil {
		t.Fatal(err)
	}

	rows, err := db.ListAudits("https://acme.dk/a", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].URL != "https://acme.dk/a" {
		t.Errorf("rows = %+v, want only the filtered URL", rows)
	}
}

func TestGetReportRoundtrip(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	id, err := db.InsertAudit("https://acme.dk/fliserens", sampleReport())
	if err != nil {
		t.Fatal(err)
	}

	rep, err := db.GetReport(id)
	if err != nil {
		t.Fatalf("GetReport() error = %v", err)
	}
	if rep.FinalURL != "https://acme.dk/fliserens" {
		t.Errorf("FinalURL = %q", rep.FinalURL)
	}
	if rep.Scores.PerPillar[models.PillarCredibility] != 5.5 {
		t.Errorf("credibility = %.1f, want 5.5", rep.Scores.PerPillar[models.PillarCredibility])
	}
	if len(rep.Findings) != 1 || rep.Findings[0].Title != "No social or review profiles linked" {
		t.Errorf("findings = %+v", rep.Findings)
	}
}

func TestGetReportMissing(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if _, err := db.GetReport(999); err == nil {
		t.Error("GetReport() on missing id should error")
	}
}
