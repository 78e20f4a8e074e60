package render

import (
	"strings"
	"testing"

	"github.com/ecagle/herald/internal/content"
)

func sampleInput() Input {
	date := int64(1767139200) // fixed timestamp so output is stable
	return Input{
		Title:       "Community Herald — Weekly",
		Intro:       "Here's what's happening in our community this week!",
		EditionType: content.EditionWeekly,
		Sections: []content.Section{
			{
				Kind:  content.SectionHighlights,
				Title: "Community Highlights",
				Items: []content.Item{
					{ID: "a1", Kind: content.KindArticle, Title: "How We Organize", Summary: "A look inside the co-op.", URL: "https://example.org/organize"},
				},
			},
			{
				Kind:  content.SectionEvents,
				Title: "Upcoming Events",
				Items: []content.Item{
					{ID: "e1", Kind: content.KindEvent, Title: "Co-op Assembly", Date: &date, URL: "https://example.org/assembly"},
				},
			},
			{
				Kind:  content.SectionResources,
				Title: "Resources & Tools",
				Items: []content.Item{},
			},
		},
	}
}

func TestHTMLDeterministic(t *testing.T) {
	in := sampleInput()
	first := HTML(in)
	second := HTML(in)
	if first != second {
		t.Error("rendering the same input twice must produce byte-identical HTML")
	}
}

func TestHTMLOmitsEmptySections(t *testing.T) {
	out := HTML(sampleInput())
	if !strings.Contains(out, "Community Highlights") {
		t.Error("highlights heading missing")
	}
	if !strings.Contains(out, "Upcoming Events") {
		t.Error("events heading missing")
	}
	if strings.Contains(out, "Resources &amp; Tools") || strings.Contains(out, "Resources & Tools") {
		t.Error("empty resources section must be omitted entirely")
	}
}

func TestHTMLFooterTokens(t *testing.T) {
	out := HTML(sampleInput())
	if !strings.Contains(out, "{unsubscribe_url}") {
		t.Error("footer must keep the {unsubscribe_url} token for the sending platform")
	}
	if !strings.Contains(out, "{preferences_url}") {
		t.Error("footer must keep the {preferences_url} token for the sending platform")
	}
}

func TestHTMLInlineStylesOnly(t *testing.T) {
	out := HTML(sampleInput())
	if strings.Contains(out, "<link") {
		t.Error("no external stylesheets allowed")
	}
	if strings.Contains(out, "<style") {
		t.Error("styles must be inline attributes, not style blocks")
	}
}

func TestHTMLEscapesContent(t *testing.T) {
	in := sampleInput()
	in.Sections[0].Items[0].Title = `<script>alert("x")</script>`
	out := HTML(in)
	if strings.Contains(out, `<script>alert`) {
		t.Error("item titles must be HTML-escaped")
	}
}

func TestHTMLEditorNote(t *testing.T) {
	in := sampleInput()
	in.EditorNote = "A quick note from the **editor desk**."
	out := HTML(in)
	if !strings.Contains(out, "<strong>editor desk</strong>") {
		t.Error("editor note markdown should render through goldmark")
	}

	// Note appears after the intro, before the first section heading.
	introIdx := strings.Index(out, "this week!")
	noteIdx := strings.Index(out, "editor desk")
	headingIdx := strings.Index(out, "Community Highlights")
	if !(introIdx < noteIdx && noteIdx < headingIdx) {
		t.Errorf("editor note position wrong: intro=%d note=%d heading=%d", introIdx, noteIdx, headingIdx)
	}
}

func TestHTMLNoEditorNoteBlockWhenEmpty(t *testing.T) {
	out := HTML(sampleInput())
	if strings.Contains(out, styleNote) {
		t.Error("editor note block must not render when no note is supplied")
	}
}

func TestHTMLEventDate(t *testing.T) {
	out := HTML(sampleInput())
	if !strings.Contains(out, "Wed, Dec 31") {
		t.Errorf("event card should show the formatted date, got:\n%s", out)
	}
}

func TestPlainTextStripsStyleAndTags(t *testing.T) {
	text, err := PlainText(`<html><head><style>.a{color:red}</style></head><body><p>Hi</p></body></html>`)
	if err != nil {
		t.Fatalf("PlainText failed: %v", err)
	}
	if !strings.Contains(text, "Hi") {
		t.Errorf("text = %q, want it to contain Hi", text)
	}
	if strings.Contains(text, "style") || strings.Contains(text, "color:red") {
		t.Errorf("text = %q, style content must be stripped", text)
	}
	if strings.Contains(text, "<") || strings.Contains(text, ">") {
		t.Errorf("text = %q, no tag fragments allowed", text)
	}
}

func TestPlainTextOfRenderedEdition(t *testing.T) {
	text, err := PlainText(HTML(sampleInput()))
	if err != nil {
		t.Fatalf("PlainText failed: %v", err)
	}
	if !strings.Contains(text, "How We Organize") {
		t.Errorf("text missing item title:\n%s", text)
	}
	if !strings.Contains(text, "Unsubscribe") {
		t.Errorf("text missing footer:\n%s", text)
	}
	if strings.Contains(text, "<div") {
		t.Error("tags must be collapsed")
	}
}

func TestPlainTextUnescapesEntities(t *testing.T) {
	text, err := PlainText(`<p>Fish &amp; Chips</p>`)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text, "Fish & Chips") {
		t.Errorf("text = %q", text)
	}
}
