package ops

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ecagle/herald/internal/content"
	"github.com/ecagle/herald/internal/errors"
)

func TestExportValidation(t *testing.T) {
	database := newTestDB(t)

	if _, err := Export(database, ExportInput{Format: FormatHTML}); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("missing id: err = %v, want INVALID_REQUEST", err)
	}
	if _, err := Export(database, ExportInput{ID: "x", Format: "pdf"}); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("bad format: err = %v, want INVALID_REQUEST", err)
	}
	if _, err := Export(database, ExportInput{ID: "missing", Format: FormatHTML}); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("missing edition: err = %v, want NOT_FOUND", err)
	}
}

func TestExportFormats(t *testing.T) {
	database := newTestDB(t)
	seedWeeklyContent(t, database)

	gen, err := Generate(context.Background(), database, testConfig(), offlineGenerator(), GenerateInput{
		EditionType: content.EditionWeekly,
		Now:         testNow,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	htmlOut, err := Export(database, ExportInput{ID: gen.EditionID, Format: FormatHTML})
	if err != nil {
		t.Fatalf("export html: %v", err)
	}
	if !strings.HasPrefix(htmlOut.Content, "<!DOCTYPE html>") {
		t.Error("html export should be the stored document")
	}
	if htmlOut.ContentType != "text/html; charset=utf-8" {
		t.Errorf("html content type = %q", htmlOut.ContentType)
	}

	textOut, err := Export(database, ExportInput{ID: gen.EditionID, Format: FormatText})
	if err != nil {
		t.Fatalf("export text: %v", err)
	}
	if strings.Contains(textOut.Content, "<") {
		t.Error("text export must not contain markup")
	}
	if !strings.Contains(textOut.Content, "Article art-0") {
		t.Error("text export should carry item titles")
	}

	jsonOut, err := Export(database, ExportInput{ID: gen.EditionID, Format: FormatJSON})
	if err != nil {
		t.Fatalf("export json: %v", err)
	}
	var decoded content.Edition
	if err := json.Unmarshal([]byte(jsonOut.Content), &decoded); err != nil {
		t.Fatalf("json export must round-trip: %v", err)
	}
	if decoded.ID != gen.EditionID {
		t.Errorf("json export id = %s, want %s", decoded.ID, gen.EditionID)
	}
	if len(decoded.Sections) != 3 {
		t.Errorf("json export sections = %d, want 3", len(decoded.Sections))
	}
	if decoded.HTMLContent == "" {
		t.Error("json export should embed the rendered HTML")
	}
}

func TestExportDefaultsToHTML(t *testing.T) {
	database := newTestDB(t)

	gen, err := Generate(context.Background(), database, testConfig(), offlineGenerator(), GenerateInput{
		EditionType: content.EditionWeekly,
		Now:         testNow,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	out, err := Export(database, ExportInput{ID: gen.EditionID})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if out.Format != FormatHTML {
		t.Errorf("format = %q, want html", out.Format)
	}
}
