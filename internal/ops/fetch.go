package ops

import (
	"database/sql"
	"log"
	"time"

	"github.com/ecagle/herald/internal/content"
	"github.com/ecagle/herald/internal/db"
)

// FetchResult holds the items gathered for each quoted section kind plus
// the reasons for any sections that came back empty because of a store
// failure. A failed read never fails the run.
type FetchResult struct {
	Sections map[content.SectionKind][]content.Item
	Degraded []string
}

// FetchContent reads candidate items for every section kind the edition
// type quotes, each already windowed, sorted, and truncated to its quota.
func FetchContent(database *sql.DB, editionType content.EditionType, now time.Time) FetchResult {
	result := FetchResult{
		Sections: make(map[content.SectionKind][]content.Item),
	}

	quotas := content.Quotas(editionType)
	for _, kind := range content.SectionOrder() {
		quota, ok := quotas[kind]
		if !ok {
			continue
		}
		items, err := fetchKind(database, kind, now, quota)
		if err != nil {
			log.Printf("[fetch] %s degraded: %v", kind, err)
			result.Degraded = append(result.Degraded, string(kind)+": "+err.Error())
			items = nil
		}
		result.Sections[kind] = items
	}
	return result
}

func fetchKind(database *sql.DB, kind content.SectionKind, now time.Time, limit int) ([]content.Item, error) {
	switch kind {
	case content.SectionHighlights:
		return db.ListArticles(database, now, limit)
	case content.SectionEvents:
		return db.ListEvents(database, now, limit)
	case content.SectionResources:
		return db.ListResources(database, limit)
	case content.SectionStories:
		return db.ListStories(database, limit)
	}
	return nil, nil
}
