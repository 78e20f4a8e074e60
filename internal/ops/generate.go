package ops

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/ecagle/herald/internal/config"
	"github.com/ecagle/herald/internal/content"
	"github.com/ecagle/herald/internal/db"
	"github.com/ecagle/herald/internal/errors"
	"github.com/ecagle/herald/internal/intel"
	"github.com/ecagle/herald/internal/intro"
	"github.com/ecagle/herald/internal/render"
)

const previewRunes = 240

// GenerateInput contains parameters for the Generate operation.
type GenerateInput struct {
	EditionType content.EditionType
	EditorNote  string    // optional markdown, spliced after the intro
	Now         time.Time // zero means the current time; fixed in tests
}

// GenerateOutput contains the result of the Generate operation.
type GenerateOutput struct {
	EditionID     string                      `json:"edition_id"`
	Title         string                      `json:"title"`
	SubjectLine   string                      `json:"subject_line"`
	Status        content.EditionStatus       `json:"status"`
	SectionCounts map[content.SectionKind]int `json:"section_counts"`
	Preview       string                      `json:"preview"`
	Degradations  []string                    `json:"degradations,omitempty"`
}

// Generate runs the assembly pipeline for one edition: fetch content,
// build intelligence context, assemble sections, generate the intro,
// render, and persist a draft. Content reads, intelligence reads, and
// intro generation degrade rather than fail; only an invalid edition type
// or a persistence failure is terminal.
func Generate(ctx context.Context, database *sql.DB, cfg *config.Config, gen *intro.Generator, input GenerateInput) (*GenerateOutput, error) {
	if !content.ValidEditionType(input.EditionType) {
		return nil, errors.NewInvalidRequest("edition type must be weekly or monthly")
	}

	now := input.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	fetched := FetchContent(database, input.EditionType, now)
	degradations := append([]string{}, fetched.Degraded...)

	intelCtx, reason := intel.Build(database)
	if reason != "" {
		degradations = append(degradations, reason)
	}

	sections := content.Assemble(input.EditionType, fetched.Sections)

	introText, reason := gen.Intro(ctx, input.EditionType, sections, intelCtx)
	if reason != "" {
		degradations = append(degradations, reason)
	}

	title := editionTitle(cfg.NewsletterName, input.EditionType, now)
	subject := subjectLine(input.EditionType, cfg.NewsletterName, now)

	htmlContent := render.HTML(render.Input{
		Title:       title,
		Intro:       introText,
		EditorNote:  input.EditorNote,
		Sections:    sections,
		EditionType: input.EditionType,
	})

	edition := &content.Edition{
		ID:          ulid.Make().String(),
		EditionType: input.EditionType,
		Title:       title,
		SubjectLine: subject,
		HTMLContent: htmlContent,
		Sections:    sections,
		Status:      content.StatusDraft,
		CreatedAt:   now.Unix(),
		UpdatedAt:   now.Unix(),
	}
	if err := db.InsertEdition(database, edition); err != nil {
		return nil, err
	}

	counts := make(map[content.SectionKind]int, len(sections))
	for _, s := range sections {
		counts[s.Kind] = len(s.Items)
	}

	return &GenerateOutput{
		EditionID:     edition.ID,
		Title:         title,
		SubjectLine:   subject,
		Status:        content.StatusDraft,
		SectionCounts: counts,
		Preview:       preview(htmlContent, introText),
		Degradations:  degradations,
	}, nil
}

func editionTitle(newsletterName string, t content.EditionType, now time.Time) string {
	label := "Weekly"
	if t == content.EditionMonthly {
		label = "Monthly"
	}
	return fmt.Sprintf("%s %s Edition - %s", newsletterName, label, now.Format("January 2, 2006"))
}

func subjectLine(t content.EditionType, newsletterName string, now time.Time) string {
	if t == content.EditionMonthly {
		return fmt.Sprintf("This Month: %s - %s", newsletterName, now.Format("January 2006"))
	}
	return fmt.Sprintf("This Week: %s - %s", newsletterName, now.Format("January 2, 2006"))
}

// preview returns a short plain-text excerpt of the rendered edition.
// Falls back to the intro text if HTML stripping fails.
func preview(htmlContent, introText string) string {
	text, err := render.PlainText(htmlContent)
	if err != nil {
		text = introText
	}
	runes := []rune(text)
	if len(runes) > previewRunes {
		return string(runes[:previewRunes]) + "..."
	}
	return text
}
