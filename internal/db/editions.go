package db

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/ecagle/herald/internal/content"
	"github.com/ecagle/herald/internal/errors"
)

// InsertEdition stores a new draft edition. The pipeline is the only writer
// of html_content and sections; neither changes after creation.
func InsertEdition(db *sql.DB, e *content.Edition) error {
	sectionsJSON, err := json.Marshal(e.Sections)
	if err != nil {
		return errors.NewInternal(err)
	}

	query := `
		INSERT INTO editions (
			id, edition_type, title, subject_line, html_content,
			sections_json, status, sendfox_list_id, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, NULL, ?, ?)
	`
	_, err = db.Exec(query,
		e.ID, string(e.EditionType), e.Title, e.SubjectLine, e.HTMLContent,
		string(sectionsJSON), string(e.Status), e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// GetEditionByID retrieves a full edition record.
func GetEditionByID(db *sql.DB, id string) (*content.Edition, error) {
	row := db.QueryRow(`
		SELECT id, edition_type, title, subject_line, html_content,
			sections_json, status, sendfox_list_id, created_at, updated_at
		FROM editions
		WHERE id = ?
	`, id)

	var (
		e            content.Edition
		editionType  string
		status       string
		sectionsJSON string
		listID       sql.NullString
	)
	err := row.Scan(
		&e.ID, &editionType, &e.Title, &e.SubjectLine, &e.HTMLContent,
		&sectionsJSON, &status, &listID, &e.CreatedAt, &e.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	e.EditionType = content.EditionType(editionType)
	e.Status = content.EditionStatus(status)
	if listID.Valid {
		e.SendfoxListID = &listID.String
	}
	if sectionsJSON != "" {
		if err := json.Unmarshal([]byte(sectionsJSON), &e.Sections); err != nil {
			return nil, errors.NewInternal(err)
		}
	}
	return &e, nil
}

// EditionSummary is the listing row for an edition (no rendered content).
type EditionSummary struct {
	ID          string                `json:"id"`
	EditionType content.EditionType   `json:"edition_type"`
	Title       string                `json:"title"`
	SubjectLine string                `json:"subject_line"`
	Status      content.EditionStatus `json:"status"`
	CreatedAt   int64                 `json:"created_at"`
	UpdatedAt   int64                 `json:"updated_at"`
}

// ListEditions returns edition summaries newest-first with the total count.
func ListEditions(db *sql.DB, limit, offset int) ([]EditionSummary, int, error) {
	var total int
	if err := db.QueryRow(`SELECT COUNT(*) FROM editions`).Scan(&total); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	rows, err := db.Query(`
		SELECT id, edition_type, title, subject_line, status, created_at, updated_at
		FROM editions
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	defer rows.Close()

	var summaries []EditionSummary
	for rows.Next() {
		var (
			s           EditionSummary
			editionType string
			status      string
		)
		if err := rows.Scan(&s.ID, &editionType, &s.Title, &s.SubjectLine, &status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, errors.NewInternal(err)
		}
		s.EditionType = content.EditionType(editionType)
		s.Status = content.EditionStatus(status)
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	return summaries, total, nil
}

// MarkApproved transitions a draft edition to approved and attaches the
// mailing-list target. The status guard in the WHERE clause makes the
// transition atomic against concurrent approvals.
func MarkApproved(db *sql.DB, id, listID string) error {
	now := time.Now().Unix()
	result, err := db.Exec(`
		UPDATE editions
		SET status = ?, sendfox_list_id = ?, updated_at = ?
		WHERE id = ? AND status = ?
	`, string(content.StatusApproved), listID, now, id, string(content.StatusDraft))
	if err != nil {
		return errors.NewInternal(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if rowsAffected == 0 {
		// Either missing or not a draft; the caller distinguishes by
		// re-reading the record.
		return errors.NewNotFound(id)
	}
	return nil
}
