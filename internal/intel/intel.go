// Package intel summarizes community-state metrics into a flat context
// snapshot consumed by the intro generator's prompt builder.
package intel

import (
	"database/sql"
	"encoding/json"
	"log"

	"github.com/ecagle/herald/internal/db"
)

// Tags recognized by the aggregator. Rows with other tags are ignored.
const (
	TagCommunity = "community"
	TagEvents    = "events"
	TagNewsroom  = "newsroom"
)

// maxInsightsPerRow caps how many insight strings one row may contribute.
const maxInsightsPerRow = 2

// Context is a point-in-time snapshot of community metrics. It is rebuilt
// fresh on every pipeline run and has no persisted identity of its own.
type Context struct {
	CommunitySize      int      `json:"community_size"`
	CoopMembers        int      `json:"coop_members"`
	VerifiedCreators   int      `json:"verified_creators"`
	UpcomingEventCount int      `json:"upcoming_event_count"`
	WeeklyArticleCount int      `json:"weekly_article_count"`
	TopArticle         string   `json:"top_article,omitempty"`
	NextEvent          string   `json:"next_event,omitempty"`
	KeyInsights        []string `json:"key_insights,omitempty"`
}

// communityPayload mirrors the JSON blob written under the community tag.
type communityPayload struct {
	CommunitySize    int      `json:"community_size"`
	CoopMembers      int      `json:"coop_members"`
	VerifiedCreators int      `json:"verified_creators"`
	Insights         []string `json:"insights"`
}

type eventsPayload struct {
	UpcomingCount int      `json:"upcoming_count"`
	NextEvent     string   `json:"next_event"`
	Insights      []string `json:"insights"`
}

type newsroomPayload struct {
	WeeklyArticles int      `json:"weekly_articles"`
	TopArticle     string   `json:"top_article"`
	Insights       []string `json:"insights"`
}

// Build reads the non-stale intelligence rows and folds them into a
// Context. A store failure degrades to the all-zero default with the
// reason returned; it never fails the run. Insights accumulate in read
// order (most recently updated rows first); when two rows share a tag the
// most recently updated row wins scalar fields.
func Build(database *sql.DB) (Context, string) {
	rows, err := db.ListIntelligence(database)
	if err != nil {
		log.Printf("[intel] degraded read: %v", err)
		return Context{}, "intelligence: " + err.Error()
	}

	var ctx Context

	// Rows arrive newest-first. Fold oldest-first so that later (newer)
	// rows overwrite scalars, then collect insights in the newest-first
	// read order.
	for i := len(rows) - 1; i >= 0; i-- {
		foldScalars(&ctx, rows[i])
	}
	for _, row := range rows {
		ctx.KeyInsights = append(ctx.KeyInsights, rowInsights(row)...)
	}

	return ctx, ""
}

func foldScalars(ctx *Context, row db.IntelRow) {
	switch row.Tag {
	case TagCommunity:
		var p communityPayload
		if err := json.Unmarshal([]byte(row.Payload), &p); err != nil {
			log.Printf("[intel] bad community payload %s: %v", row.ID, err)
			return
		}
		ctx.CommunitySize = p.CommunitySize
		ctx.CoopMembers = p.CoopMembers
		ctx.VerifiedCreators = p.VerifiedCreators
	case TagEvents:
		var p eventsPayload
		if err := json.Unmarshal([]byte(row.Payload), &p); err != nil {
			log.Printf("[intel] bad events payload %s: %v", row.ID, err)
			return
		}
		ctx.UpcomingEventCount = p.UpcomingCount
		ctx.NextEvent = p.NextEvent
	case TagNewsroom:
		var p newsroomPayload
		if err := json.Unmarshal([]byte(row.Payload), &p); err != nil {
			log.Printf("[intel] bad newsroom payload %s: %v", row.ID, err)
			return
		}
		ctx.WeeklyArticleCount = p.WeeklyArticles
		ctx.TopArticle = p.TopArticle
	}
}

func rowInsights(row db.IntelRow) []string {
	var p struct {
		Insights []string `json:"insights"`
	}
	if err := json.Unmarshal([]byte(row.Payload), &p); err != nil {
		return nil
	}
	insights := p.Insights
	if len(insights) > maxInsightsPerRow {
		insights = insights[:maxInsightsPerRow]
	}
	out := make([]string, 0, len(insights))
	for _, s := range insights {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
