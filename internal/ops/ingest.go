package ops

import (
	"bufio"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/oklog/ulid/v2"

	"github.com/ecagle/herald/internal/db"
	"github.com/ecagle/herald/internal/errors"
)

// Import record types
const (
	RecordEvent        = "event"
	RecordArticle      = "article"
	RecordResource     = "resource"
	RecordIntelligence = "intelligence"
)

// ImportInput contains parameters for the Import operation.
type ImportInput struct {
	Path string // required
}

// ImportOutput contains the result of the Import operation.
type ImportOutput struct {
	Imported int           `json:"imported"`
	Skipped  int           `json:"skipped"`
	Errors   []ImportError `json:"errors"`
}

// ImportError describes one rejected line. The rest of the file still
// imports.
type ImportError struct {
	Line    int    `json:"line"`
	ID      string `json:"id,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ImportRecord is one JSONL line of a content import file. The first line
// is a header marked with _herald_import; every other line carries a type
// plus that type's fields.
type ImportRecord struct {
	HeraldImport bool `json:"_herald_import,omitempty"`

	Type     string  `json:"type,omitempty"`
	ID       string  `json:"id,omitempty"`
	Title    string  `json:"title,omitempty"`
	Summary  string  `json:"summary,omitempty"`
	Date     int64   `json:"date,omitempty"` // event start or article publish time
	URL      string  `json:"url,omitempty"`
	ImageURL string  `json:"image_url,omitempty"`
	Score    float64 `json:"score,omitempty"`
	Story    bool    `json:"story,omitempty"`
	Active   *bool   `json:"active,omitempty"` // resources only; nil means active

	// Intelligence fields. A record with stale set retires the row with
	// the given id instead of upserting a payload.
	Tag     string          `json:"tag,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Stale   bool            `json:"stale,omitempty"`
}

// Import loads content items and intelligence rows from a JSONL file.
// Malformed or unknown lines are reported and skipped; a readable file
// always produces an accounting rather than an error.
func Import(database *sql.DB, input ImportInput) (*ImportOutput, error) {
	if input.Path == "" {
		return nil, errors.NewInvalidRequest("path is required")
	}

	file, err := os.Open(input.Path)
	if os.IsNotExist(err) {
		return nil, errors.NewNotFound(input.Path)
	}
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("open import file: %w", err))
	}
	defer file.Close()

	return importRecords(database, file)
}

func importRecords(database *sql.DB, r io.Reader) (*ImportOutput, error) {
	out := &ImportOutput{Errors: []ImportError{}}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			out.Skipped++
			continue
		}

		var record ImportRecord
		if err := json.Unmarshal(line, &record); err != nil {
			out.Errors = append(out.Errors, ImportError{
				Line:    lineNum,
				Code:    "PARSE_ERROR",
				Message: fmt.Sprintf("invalid JSON: %v", err),
			})
			continue
		}
		if record.HeraldImport {
			out.Skipped++
			continue
		}

		if err := insertRecord(database, record); err != nil {
			out.Errors = append(out.Errors, ImportError{
				Line:    lineNum,
				ID:      record.ID,
				Code:    "IMPORT_ERROR",
				Message: err.Error(),
			})
			continue
		}
		out.Imported++
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("read import file: %w", err))
	}
	return out, nil
}

func insertRecord(database *sql.DB, record ImportRecord) error {
	if record.Type != RecordIntelligence && record.Title == "" {
		return fmt.Errorf("title is required")
	}
	id := record.ID
	if id == "" {
		id = ulid.Make().String()
	}

	switch record.Type {
	case RecordEvent:
		return db.InsertEvent(database, db.EventRow{
			ID:       id,
			Title:    record.Title,
			Summary:  record.Summary,
			StartsAt: record.Date,
			URL:      record.URL,
			ImageURL: record.ImageURL,
			Score:    record.Score,
		})
	case RecordArticle:
		return db.InsertArticle(database, db.ArticleRow{
			ID:          id,
			Title:       record.Title,
			Summary:     record.Summary,
			PublishedAt: record.Date,
			URL:         record.URL,
			ImageURL:    record.ImageURL,
			Score:       record.Score,
			Story:       record.Story,
		})
	case RecordResource:
		active := true
		if record.Active != nil {
			active = *record.Active
		}
		return db.InsertResource(database, db.ResourceRow{
			ID:       id,
			Title:    record.Title,
			Summary:  record.Summary,
			URL:      record.URL,
			ImageURL: record.ImageURL,
			Score:    record.Score,
			Active:   active,
		})
	case RecordIntelligence:
		if record.Stale {
			if record.ID == "" {
				return fmt.Errorf("id is required to retire an intelligence row")
			}
			if err := db.MarkIntelligenceStale(database, record.ID); err != nil {
				if err == sql.ErrNoRows {
					return fmt.Errorf("intelligence row not found: %s", record.ID)
				}
				return err
			}
			return nil
		}
		if record.Tag == "" {
			return fmt.Errorf("tag is required for intelligence records")
		}
		if len(record.Payload) == 0 {
			return fmt.Errorf("payload is required for intelligence records")
		}
		return db.UpsertIntelligence(database, id, record.Tag, string(record.Payload))
	case "":
		return fmt.Errorf("type is required")
	default:
		return fmt.Errorf("unknown record type %q", record.Type)
	}
}
