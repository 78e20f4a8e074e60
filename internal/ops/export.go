package ops

import (
	"database/sql"
	"encoding/json"

	"github.com/ecagle/herald/internal/db"
	"github.com/ecagle/herald/internal/errors"
	"github.com/ecagle/herald/internal/render"
)

// Export formats
const (
	FormatHTML = "html"
	FormatText = "text"
	FormatJSON = "json"
)

// ExportInput contains parameters for the Export operation.
type ExportInput struct {
	ID     string // required
	Format string // html (default), text, or json
}

// ExportOutput contains the result of the Export operation.
type ExportOutput struct {
	ID          string `json:"id"`
	Format      string `json:"format"`
	ContentType string `json:"content_type"`
	Content     string `json:"content"`
}

// Export returns the stored edition in one of three formats. Every format
// is a pure transformation of the persisted record; exporting never
// mutates the edition or re-runs the pipeline.
func Export(database *sql.DB, input ExportInput) (*ExportOutput, error) {
	if input.ID == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}
	format := input.Format
	if format == "" {
		format = FormatHTML
	}
	if format != FormatHTML && format != FormatText && format != FormatJSON {
		return nil, errors.NewInvalidRequest("format must be one of: html, text, json")
	}

	edition, err := db.GetEditionByID(database, input.ID)
	if err != nil {
		return nil, err
	}

	out := &ExportOutput{ID: edition.ID, Format: format}
	switch format {
	case FormatHTML:
		out.ContentType = "text/html; charset=utf-8"
		out.Content = edition.HTMLContent
	case FormatText:
		text, err := render.PlainText(edition.HTMLContent)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		out.ContentType = "text/plain; charset=utf-8"
		out.Content = text
	case FormatJSON:
		data, err := json.MarshalIndent(edition, "", "  ")
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		out.ContentType = "application/json"
		out.Content = string(data)
	}
	return out, nil
}
