package intel

import (
	"database/sql"
	"testing"

	"github.com/ecagle/herald/internal/db"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("db.Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func insertIntel(t *testing.T, database *sql.DB, id, tag, payload string, updatedAt int64) {
	t.Helper()
	_, err := database.Exec(
		`INSERT INTO intelligence (id, tag, payload_json, stale, updated_at) VALUES (?, ?, ?, 0, ?)`,
		id, tag, payload, updatedAt,
	)
	if err != nil {
		t.Fatal(err)
	}
}

func TestBuildEmptyStore(t *testing.T) {
	database := testDB(t)
	ctx, degraded := Build(database)
	if degraded != "" {
		t.Errorf("degraded = %q, want empty", degraded)
	}
	if ctx.CommunitySize != 0 || ctx.TopArticle != "" || len(ctx.KeyInsights) != 0 {
		t.Errorf("ctx should be all-zero default: %+v", ctx)
	}
}

func TestBuildFoldsAllTags(t *testing.T) {
	database := testDB(t)
	insertIntel(t, database, "c", TagCommunity,
		`{"community_size": 1200, "coop_members": 85, "verified_creators": 40, "insights": ["Membership grew 4% this month"]}`, 100)
	insertIntel(t, database, "e", TagEvents,
		`{"upcoming_count": 6, "next_event": "Co-op Assembly", "insights": ["Workshops fill within a day"]}`, 200)
	insertIntel(t, database, "n", TagNewsroom,
		`{"weekly_articles": 9, "top_article": "How We Organize", "insights": []}`, 300)

	ctx, degraded := Build(database)
	if degraded != "" {
		t.Fatalf("degraded = %q", degraded)
	}
	if ctx.CommunitySize != 1200 || ctx.CoopMembers != 85 || ctx.VerifiedCreators != 40 {
		t.Errorf("community fields: %+v", ctx)
	}
	if ctx.UpcomingEventCount != 6 || ctx.NextEvent != "Co-op Assembly" {
		t.Errorf("events fields: %+v", ctx)
	}
	if ctx.WeeklyArticleCount != 9 || ctx.TopArticle != "How We Organize" {
		t.Errorf("newsroom fields: %+v", ctx)
	}
	if len(ctx.KeyInsights) != 2 {
		t.Errorf("KeyInsights = %v, want 2 entries", ctx.KeyInsights)
	}
}

func TestBuildLastUpdatedWinsScalars(t *testing.T) {
	database := testDB(t)
	insertIntel(t, database, "old", TagCommunity, `{"community_size": 100}`, 100)
	insertIntel(t, database, "new", TagCommunity, `{"community_size": 500}`, 200)

	ctx, _ := Build(database)
	if ctx.CommunitySize != 500 {
		t.Errorf("CommunitySize = %d, want 500 (most recently updated row wins)", ctx.CommunitySize)
	}
}

func TestBuildInsightsCappedPerRow(t *testing.T) {
	database := testDB(t)
	insertIntel(t, database, "c", TagCommunity,
		`{"insights": ["one", "two", "three", "four"]}`, 100)

	ctx, _ := Build(database)
	if len(ctx.KeyInsights) != 2 {
		t.Errorf("KeyInsights = %v, want capped at 2 per row", ctx.KeyInsights)
	}
	if ctx.KeyInsights[0] != "one" || ctx.KeyInsights[1] != "two" {
		t.Errorf("KeyInsights order = %v", ctx.KeyInsights)
	}
}

func TestBuildInsightsAccumulateAcrossRows(t *testing.T) {
	database := testDB(t)
	insertIntel(t, database, "c", TagCommunity, `{"insights": ["community insight"]}`, 100)
	insertIntel(t, database, "e", TagEvents, `{"insights": ["events insight"]}`, 200)

	ctx, _ := Build(database)
	if len(ctx.KeyInsights) != 2 {
		t.Fatalf("KeyInsights = %v, want 2", ctx.KeyInsights)
	}
	// Read order is updated_at DESC.
	if ctx.KeyInsights[0] != "events insight" || ctx.KeyInsights[1] != "community insight" {
		t.Errorf("KeyInsights order = %v", ctx.KeyInsights)
	}
}

func TestBuildSkipsMalformedPayload(t *testing.T) {
	database := testDB(t)
	insertIntel(t, database, "bad", TagCommunity, `{not json`, 100)
	insertIntel(t, database, "good", TagNewsroom, `{"weekly_articles": 3}`, 200)

	ctx, degraded := Build(database)
	if degraded != "" {
		t.Errorf("degraded = %q, malformed rows are skipped not degraded", degraded)
	}
	if ctx.WeeklyArticleCount != 3 {
		t.Errorf("WeeklyArticleCount = %d, want 3", ctx.WeeklyArticleCount)
	}
	if ctx.CommunitySize != 0 {
		t.Errorf("CommunitySize = %d, want 0 (bad row ignored)", ctx.CommunitySize)
	}
}

func TestBuildDegradesOnClosedDB(t *testing.T) {
	database := testDB(t)
	database.Close()

	ctx, degraded := Build(database)
	if degraded == "" {
		t.Error("expected a degradation reason on store failure")
	}
	if ctx.CommunitySize != 0 || len(ctx.KeyInsights) != 0 {
		t.Errorf("ctx should default on degraded read: %+v", ctx)
	}
}
