// Package render maps assembled newsletter sections into an email-client
// safe HTML document. Output is deterministic for identical inputs so
// editions can be snapshot-tested and re-rendered byte-for-byte.
package render

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"github.com/ecagle/herald/internal/content"
)

// Input carries everything the renderer needs. No clock, no I/O: any
// timestamps in the output come from the items themselves.
type Input struct {
	Title       string
	Intro       string
	EditorNote  string // markdown, spliced after the intro when non-empty
	Sections    []content.Section
	EditionType content.EditionType
}

// Inline style constants. Email clients ignore external stylesheets, so
// every element carries its styles inline.
const (
	styleBody    = "margin:0;padding:0;background-color:#f4f1ec;font-family:Georgia,'Times New Roman',serif;color:#2d2a26;"
	styleWrapper = "max-width:600px;margin:0 auto;padding:24px 16px;"
	styleHeader  = "padding:24px 0;text-align:center;border-bottom:3px solid #7a5c3e;"
	styleTitle   = "margin:0;font-size:28px;color:#4a3726;"
	styleIntro   = "font-size:16px;line-height:1.6;padding:20px 0;"
	styleNote    = "background-color:#fdf8ee;border-left:4px solid #c9a227;padding:12px 16px;margin:0 0 20px 0;font-size:15px;line-height:1.5;"
	styleHeading = "margin:28px 0 12px 0;font-size:20px;color:#4a3726;border-bottom:1px solid #d8cfc2;padding-bottom:6px;"
	styleCard    = "background-color:#ffffff;border:1px solid #e2dbd0;border-radius:6px;padding:14px 16px;margin:0 0 12px 0;"
	styleMeta    = "font-size:13px;color:#7a5c3e;margin:0 0 4px 0;"
	styleItem    = "margin:0 0 6px 0;font-size:16px;"
	styleSummary = "margin:0;font-size:14px;line-height:1.5;color:#55504a;"
	styleLink    = "color:#7a5c3e;"
	styleFooter  = "padding:24px 0;text-align:center;font-size:12px;color:#8a8378;border-top:1px solid #d8cfc2;margin-top:28px;"
)

// HTML renders a complete, self-contained newsletter document. Sections
// with no items are omitted entirely (their headings never appear). The
// footer carries {unsubscribe_url} and {preferences_url} placeholder
// tokens left for the sending platform to substitute.
func HTML(in Input) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString(`<html lang="en"><head><meta charset="utf-8">`)
	fmt.Fprintf(&b, "<title>%s</title>", html.EscapeString(in.Title))
	b.WriteString("</head>\n")
	fmt.Fprintf(&b, `<body style="%s">`, styleBody)
	fmt.Fprintf(&b, `<div style="%s">`, styleWrapper)

	fmt.Fprintf(&b, `<div style="%s"><h1 style="%s">%s</h1></div>`,
		styleHeader, styleTitle, html.EscapeString(in.Title))

	if in.Intro != "" {
		fmt.Fprintf(&b, `<p style="%s">%s</p>`, styleIntro, html.EscapeString(in.Intro))
	}

	if in.EditorNote != "" {
		fmt.Fprintf(&b, `<div style="%s">%s</div>`, styleNote, markdownToHTML(in.EditorNote))
	}

	for _, section := range in.Sections {
		if len(section.Items) == 0 {
			continue
		}
		fmt.Fprintf(&b, `<h2 style="%s">%s</h2>`, styleHeading, html.EscapeString(section.Title))
		if section.Intro != "" {
			fmt.Fprintf(&b, `<p style="%s">%s</p>`, styleSummary, html.EscapeString(section.Intro))
		}
		for _, item := range section.Items {
			writeCard(&b, section.Kind, item)
		}
	}

	fmt.Fprintf(&b, `<div style="%s">`, styleFooter)
	b.WriteString(`<p style="margin:0 0 6px 0;">You are receiving this because you are part of our community.</p>`)
	b.WriteString(`<p style="margin:0;"><a style="` + styleLink + `" href="{unsubscribe_url}">Unsubscribe</a> &middot; <a style="` + styleLink + `" href="{preferences_url}">Email preferences</a></p>`)
	b.WriteString("</div>")

	b.WriteString("</div></body></html>\n")
	return b.String()
}

// writeCard renders one item using the card layout for its section kind.
func writeCard(b *strings.Builder, kind content.SectionKind, item content.Item) {
	fmt.Fprintf(b, `<div style="%s">`, styleCard)

	switch kind {
	case content.SectionEvents:
		if item.Date != nil {
			fmt.Fprintf(b, `<p style="%s">%s</p>`, styleMeta, formatDate(*item.Date))
		}
		writeTitleLine(b, item)
		if item.Summary != "" {
			fmt.Fprintf(b, `<p style="%s">%s</p>`, styleSummary, html.EscapeString(item.Summary))
		}
	case content.SectionHighlights, content.SectionStories:
		if item.ImageURL != "" {
			fmt.Fprintf(b, `<img src="%s" alt="" style="width:100%%;border-radius:4px;margin:0 0 10px 0;">`,
				html.EscapeString(item.ImageURL))
		}
		writeTitleLine(b, item)
		if item.Summary != "" {
			fmt.Fprintf(b, `<p style="%s">%s</p>`, styleSummary, html.EscapeString(item.Summary))
		}
		if item.URL != "" {
			fmt.Fprintf(b, `<p style="margin:8px 0 0 0;font-size:14px;"><a style="%s" href="%s">Read more &rarr;</a></p>`,
				styleLink, html.EscapeString(item.URL))
		}
	default: // resources
		writeTitleLine(b, item)
		if item.Summary != "" {
			fmt.Fprintf(b, `<p style="%s">%s</p>`, styleSummary, html.EscapeString(item.Summary))
		}
	}

	b.WriteString("</div>")
}

func writeTitleLine(b *strings.Builder, item content.Item) {
	if item.URL != "" {
		fmt.Fprintf(b, `<p style="%s"><a style="%s" href="%s">%s</a></p>`,
			styleItem, styleLink, html.EscapeString(item.URL), html.EscapeString(item.Title))
		return
	}
	fmt.Fprintf(b, `<p style="%s">%s</p>`, styleItem, html.EscapeString(item.Title))
}

// formatDate formats an item timestamp as e.g. "Mon, Jan 2" in UTC.
func formatDate(unix int64) string {
	return time.Unix(unix, 0).UTC().Format("Mon, Jan 2")
}

// markdownToHTML converts the editor note through goldmark, falling back
// to escaped text if conversion fails.
func markdownToHTML(md string) string {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return html.EscapeString(md)
	}
	return strings.TrimSpace(buf.String())
}
