package ops

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/ecagle/herald/internal/config"
	"github.com/ecagle/herald/internal/db"
	"github.com/ecagle/herald/internal/intro"
)

// Fixed clock for pipeline tests: 2025-12-31 00:00:00 UTC.
var testNow = time.Unix(1767139200, 0).UTC()

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("init database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func testConfig() *config.Config {
	return config.DefaultConfig()
}

// offlineGenerator always falls back; no endpoint is configured.
func offlineGenerator() *intro.Generator {
	return intro.New(config.LLMConfig{})
}

func seedEvent(t *testing.T, database *sql.DB, id string, startsAt time.Time, score float64) {
	t.Helper()
	err := db.InsertEvent(database, db.EventRow{
		ID:       id,
		Title:    "Event " + id,
		Summary:  "About event " + id,
		StartsAt: startsAt.Unix(),
		Score:    score,
	})
	if err != nil {
		t.Fatalf("seed event %s: %v", id, err)
	}
}

func seedArticle(t *testing.T, database *sql.DB, id string, publishedAt time.Time, score float64, story bool) {
	t.Helper()
	err := db.InsertArticle(database, db.ArticleRow{
		ID:          id,
		Title:       "Article " + id,
		Summary:     "About article " + id,
		PublishedAt: publishedAt.Unix(),
		Score:       score,
		Story:       story,
	})
	if err != nil {
		t.Fatalf("seed article %s: %v", id, err)
	}
}

func seedResource(t *testing.T, database *sql.DB, id string, score float64) {
	t.Helper()
	err := db.InsertResource(database, db.ResourceRow{
		ID:     id,
		Title:  "Resource " + id,
		Score:  score,
		Active: true,
	})
	if err != nil {
		t.Fatalf("seed resource %s: %v", id, err)
	}
}

// seedWeeklyContent loads more content than the weekly quotas admit.
func seedWeeklyContent(t *testing.T, database *sql.DB) {
	t.Helper()
	for i := 0; i < 6; i++ {
		seedArticle(t, database, fmt.Sprintf("art-%d", i), testNow.Add(-time.Duration(i+1)*24*time.Hour), float64(10-i), false)
	}
	seedEvent(t, database, "evt-near", testNow.Add(3*24*time.Hour), 5)
	seedEvent(t, database, "evt-later", testNow.Add(10*24*time.Hour), 9)
	seedEvent(t, database, "evt-far", testNow.Add(30*24*time.Hour), 9)
	seedEvent(t, database, "evt-past", testNow.Add(-2*24*time.Hour), 9)
	seedResource(t, database, "res-1", 3)
	seedResource(t, database, "res-2", 7)
	seedResource(t, database, "res-3", 1)
}
