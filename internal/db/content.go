package db

import (
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/ecagle/herald/internal/content"
)

// windowEventsDays is the forward-looking event window: today through 14
// days out. windowArticlesDays is the trailing article window.
const (
	windowEventsDays   = 14
	windowArticlesDays = 7
)

// ListEvents returns published events starting between the beginning of
// today and fourteen days out, sorted by score descending then start time
// ascending (soonest first).
func ListEvents(db *sql.DB, now time.Time, limit int) ([]content.Item, error) {
	dayStart := now.UTC().Truncate(24 * time.Hour)
	windowEnd := dayStart.Add((windowEventsDays + 1) * 24 * time.Hour)

	q := sq.Select("id", "title", "summary", "starts_at", "url", "image_url", "score").
		From("events").
		Where(sq.Eq{"status": "published"}).
		Where(sq.GtOrEq{"starts_at": dayStart.Unix()}).
		Where(sq.Lt{"starts_at": windowEnd.Unix()}).
		OrderBy("score DESC", "starts_at ASC").
		Limit(uint64(limit))

	return queryItems(db, q, content.KindEvent)
}

// ListArticles returns published non-story articles from the trailing seven
// days, sorted by score descending then publish time descending (most
// recent first).
func ListArticles(db *sql.DB, now time.Time, limit int) ([]content.Item, error) {
	since := now.UTC().Add(-windowArticlesDays * 24 * time.Hour)

	q := sq.Select("id", "title", "summary", "published_at", "url", "image_url", "score").
		From("articles").
		Where(sq.Eq{"status": "published", "story": 0}).
		Where(sq.GtOrEq{"published_at": since.Unix()}).
		OrderBy("score DESC", "published_at DESC").
		Limit(uint64(limit))

	return queryItems(db, q, content.KindArticle)
}

// ListStories returns published member stories (articles flagged story),
// sorted by score descending then publish time descending. Stories are not
// window-restricted: monthly editions draw from the whole backlog.
func ListStories(db *sql.DB, limit int) ([]content.Item, error) {
	q := sq.Select("id", "title", "summary", "published_at", "url", "image_url", "score").
		From("articles").
		Where(sq.Eq{"status": "published", "story": 1}).
		OrderBy("score DESC", "published_at DESC").
		Limit(uint64(limit))

	return queryItems(db, q, content.KindArticle)
}

// ListResources returns active resources sorted by score descending.
// Resources carry no date.
func ListResources(db *sql.DB, limit int) ([]content.Item, error) {
	q := sq.Select("id", "title", "summary", "url", "image_url", "score").
		From("resources").
		Where(sq.Eq{"active": 1}).
		OrderBy("score DESC", "id ASC").
		Limit(uint64(limit))

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build resources query: %w", err)
	}

	rows, err := db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("query resources: %w", err)
	}
	defer rows.Close()

	var items []content.Item
	for rows.Next() {
		var (
			it                     content.Item
			summary, url, imageURL sql.NullString
		)
		if err := rows.Scan(&it.ID, &it.Title, &summary, &url, &imageURL, &it.Score); err != nil {
			return nil, fmt.Errorf("scan resource: %w", err)
		}
		it.Kind = content.KindResource
		it.Summary = summary.String
		it.URL = url.String
		it.ImageURL = imageURL.String
		items = append(items, it)
	}
	return items, rows.Err()
}

// queryItems runs a dated item query (events, articles, stories) and scans
// rows into content items of the given kind.
func queryItems(db *sql.DB, q sq.SelectBuilder, kind content.Kind) ([]content.Item, error) {
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", kind, err)
	}

	rows, err := db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", kind, err)
	}
	defer rows.Close()

	var items []content.Item
	for rows.Next() {
		var (
			it                     content.Item
			summary, url, imageURL sql.NullString
			date                   int64
		)
		if err := rows.Scan(&it.ID, &it.Title, &summary, &date, &url, &imageURL, &it.Score); err != nil {
			return nil, fmt.Errorf("scan %s: %w", kind, err)
		}
		it.Kind = kind
		it.Summary = summary.String
		it.Date = &date
		it.URL = url.String
		it.ImageURL = imageURL.String
		items = append(items, it)
	}
	return items, rows.Err()
}

// EventRow is the insertable form of an event.
type EventRow struct {
	ID       string
	Title    string
	Summary  string
	StartsAt int64
	URL      string
	ImageURL string
	Score    float64
	Status   string
}

// ArticleRow is the insertable form of an article (Story marks member stories).
type ArticleRow struct {
	ID          string
	Title       string
	Summary     string
	PublishedAt int64
	URL         string
	ImageURL    string
	Score       float64
	Status      string
	Story       bool
}

// ResourceRow is the insertable form of a resource.
type ResourceRow struct {
	ID       string
	Title    string
	Summary  string
	URL      string
	ImageURL string
	Score    float64
	Active   bool
}

// InsertEvent stores a new event row.
func InsertEvent(db *sql.DB, r EventRow) error {
	if r.Status == "" {
		r.Status = "published"
	}
	q := sq.Insert("events").
		Columns("id", "title", "summary", "starts_at", "url", "image_url", "score", "status", "created_at").
		Values(r.ID, r.Title, nullIfEmpty(r.Summary), r.StartsAt, nullIfEmpty(r.URL), nullIfEmpty(r.ImageURL), r.Score, r.Status, time.Now().Unix())
	return execInsert(db, q, "event")
}

// InsertArticle stores a new article row.
func InsertArticle(db *sql.DB, r ArticleRow) error {
	if r.Status == "" {
		r.Status = "published"
	}
	q := sq.Insert("articles").
		Columns("id", "title", "summary", "published_at", "url", "image_url", "score", "status", "story", "created_at").
		Values(r.ID, r.Title, nullIfEmpty(r.Summary), r.PublishedAt, nullIfEmpty(r.URL), nullIfEmpty(r.ImageURL), r.Score, r.Status, boolToInt(r.Story), time.Now().Unix())
	return execInsert(db, q, "article")
}

// InsertResource stores a new resource row.
func InsertResource(db *sql.DB, r ResourceRow) error {
	q := sq.Insert("resources").
		Columns("id", "title", "summary", "url", "image_url", "score", "active", "created_at").
		Values(r.ID, r.Title, nullIfEmpty(r.Summary), nullIfEmpty(r.URL), nullIfEmpty(r.ImageURL), r.Score, boolToInt(r.Active), time.Now().Unix())
	return execInsert(db, q, "resource")
}

func execInsert(db *sql.DB, q sq.InsertBuilder, what string) error {
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build %s insert: %w", what, err)
	}
	if _, err := db.Exec(sqlStr, args...); err != nil {
		return fmt.Errorf("insert %s: %w", what, err)
	}
	return nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
