package content

// Kind identifies which backing collection a content item came from.
type Kind string

const (
	KindEvent    Kind = "event"
	KindArticle  Kind = "article"
	KindResource Kind = "resource"
)

// EditionType selects the newsletter cadence and its quota table.
type EditionType string

const (
	EditionWeekly  EditionType = "weekly"
	EditionMonthly EditionType = "monthly"
)

// ValidEditionType reports whether t is a known edition type.
func ValidEditionType(t EditionType) bool {
	return t == EditionWeekly || t == EditionMonthly
}

// Item is a candidate newsletter entry produced by a fetcher.
// Items are immutable after creation; downstream stages only filter,
// sort, and truncate them.
type Item struct {
	// ID is the ULID of the backing row
	ID string `json:"id"`

	// Kind is the backing collection this item came from
	Kind Kind `json:"kind"`

	// Title is the display headline
	Title string `json:"title"`

	// Summary is an optional short description
	Summary string `json:"summary,omitempty"`

	// Date is the event start or article publish time as a Unix
	// timestamp (nullable; resources carry no date)
	Date *int64 `json:"date,omitempty"`

	// URL links to the full content
	URL string `json:"url,omitempty"`

	// ImageURL is an optional illustration for card layouts
	ImageURL string `json:"image_url,omitempty"`

	// Score is the relevance/interest score used as the primary sort key
	Score float64 `json:"score,omitempty"`
}

// EditionStatus is the persisted lifecycle state of an edition record.
type EditionStatus string

const (
	StatusDraft    EditionStatus = "draft"
	StatusApproved EditionStatus = "approved"
	// StatusSent is set by the external mailing platform once an operator
	// completes delivery; herald never writes it.
	StatusSent EditionStatus = "sent"
)

// Edition is a generated newsletter instance persisted for human review.
type Edition struct {
	ID            string        `json:"id"`
	EditionType   EditionType   `json:"edition_type"`
	Title         string        `json:"title"`
	SubjectLine   string        `json:"subject_line"`
	HTMLContent   string        `json:"html_content"`
	Sections      []Section     `json:"sections"`
	Status        EditionStatus `json:"status"`
	SendfoxListID *string       `json:"sendfox_list_id,omitempty"`
	CreatedAt     int64         `json:"created_at"`
	UpdatedAt     int64         `json:"updated_at"`
}
