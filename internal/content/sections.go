package content

// SectionKind names a quota-bounded group of items within an edition.
type SectionKind string

const (
	SectionHighlights SectionKind = "highlights"
	SectionEvents     SectionKind = "events"
	SectionResources  SectionKind = "resources"
	SectionStories    SectionKind = "stories"
)

// sectionOrder fixes the render order of sections within an edition.
var sectionOrder = []SectionKind{
	SectionHighlights,
	SectionEvents,
	SectionResources,
	SectionStories,
}

// sectionTitles maps section kinds to their edition headings.
var sectionTitles = map[SectionKind]string{
	SectionHighlights: "Community Highlights",
	SectionEvents:     "Upcoming Events",
	SectionResources:  "Resources & Tools",
	SectionStories:    "Member Stories",
}

// Section is a named, quota-bounded group of content items. Sections exist
// only in memory during a pipeline run; the persisted edition stores them
// as JSON alongside the rendered HTML.
type Section struct {
	Kind  SectionKind `json:"kind"`
	Title string      `json:"title"`
	Items []Item      `json:"items"`
	Intro string      `json:"intro,omitempty"`
}

// Quotas returns the per-section maximum item counts for an edition type.
func Quotas(t EditionType) map[SectionKind]int {
	switch t {
	case EditionMonthly:
		return map[SectionKind]int{
			SectionHighlights: 5,
			SectionEvents:     4,
			SectionResources:  3,
			SectionStories:    2,
		}
	default:
		return map[SectionKind]int{
			SectionHighlights: 3,
			SectionEvents:     5,
			SectionResources:  2,
		}
	}
}

// SectionOrder returns the fixed render order of section kinds.
func SectionOrder() []SectionKind {
	return sectionOrder
}

// SectionTitle returns the heading for a section kind.
func SectionTitle(kind SectionKind) string {
	return sectionTitles[kind]
}

// Assemble groups already-fetched item sequences into sections, truncating
// each to its quota. Pure function: input order is preserved, empty inputs
// produce empty sections (the renderer omits those), and section kinds
// without a quota for the edition type are dropped.
func Assemble(t EditionType, fetched map[SectionKind][]Item) []Section {
	quotas := Quotas(t)

	sections := make([]Section, 0, len(quotas))
	for _, kind := range sectionOrder {
		quota, ok := quotas[kind]
		if !ok {
			continue
		}
		items := fetched[kind]
		if len(items) > quota {
			items = items[:quota]
		}
		if items == nil {
			items = []Item{}
		}
		sections = append(sections, Section{
			Kind:  kind,
			Title: sectionTitles[kind],
			Items: items,
		})
	}
	return sections
}
