package db

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/K-Bak/geo-checker/models"
)

// AuditRow is one row of the audit history listing.
type AuditRow struct {
	AuditID       int64
	URL           string
	FinalURL      string
	PageType      string
	OverallScore  float64
	FindingsCount int
	CreatedAt     time.Time
}

// InsertAudit stores a finished report and its pillar breakdown, returning
// the audit_id.
func (db *DB) InsertAudit(requestedURL string, rep *models.Report) (int64, error) {
	payload, err := json.Marshal(rep)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize report: %w", err)
	}

	result, err := db.Exec(`
		INSERT INTO audits (url, final_url, page_type, overall_score, findings_count, report_json)
		VALUES (?, ?, ?, ?, ?, ?)
	`, requestedURL, rep.FinalURL, string(rep.PageType), rep.Scores.Overall, len(rep.Findings), string(payload))
	if err != nil {
		return 0, fmt.Errorf("failed to insert audit: %w", err)
	}

	auditID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get audit ID: %w", err)
	}

	for pillar, score := range rep.Scores.PerPillar {
		if _, err := db.Exec(`
			INSERT INTO pillar_scores (audit_id, pillar, score)
			VALUES (?, ?, ?)
		`, auditID, pillar, score); err != nil {
			return 0, fmt.Errorf("failed to insert pillar score: %w", err)
		}
	}

	return auditID, nil
}

// ListAudits returns the most recent audits, newest first. A non-empty url
// filters to runs against that URL.
func (db *DB) ListAudits(url string, limit int) ([]AuditRow, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT audit_id, url, final_url, page_type, overall_score, findings_count, created_at
		FROM audits`
	args := []any{}
	if url != "" {
		query += " WHERE url = ?"
		args = append(args, url)
	}
	query += " ORDER BY created_at DESC, audit_id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list audits: %w", err)
	}
	defer rows.Close()

	var out []AuditRow
	for rows.Next() {
		var r AuditRow
		if err := rows.Scan(&r.AuditID, &r.URL, &r.FinalURL, &r.PageType,
			&r.OverallScore, &r.FindingsCount, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetReport loads the stored report JSON for one audit.
func (db *DB) GetReport(auditID int64) (*models.Report, error) {
	var payload string
	err := db.QueryRow("SELECT report_json FROM audits WHERE audit_id = ?", auditID).Scan(&payload)
	if err != nil {
		return nil, fmt.Errorf("failed to load audit %d: %w", auditID, err)
	}

	var rep models.Report
	if err := json.Unmarshal([]byte(payload), &rep); err != nil {
		return nil, fmt.Errorf("failed to decode stored report: %w", err)
	}
	return &rep, nil
}
