package ops

import (
	"strings"
	"testing"

	"github.com/ecagle/herald/internal/content"
)

func TestFetchContentDegradesOnClosedDB(t *testing.T) {
	database := newTestDB(t)
	database.Close()

	result := FetchContent(database, content.EditionWeekly, testNow)

	want := []content.SectionKind{
		content.SectionHighlights,
		content.SectionEvents,
		content.SectionResources,
	}
	if len(result.Degraded) != len(want) {
		t.Fatalf("degraded = %v, want one reason per quoted section", result.Degraded)
	}
	for i, kind := range want {
		if !strings.HasPrefix(result.Degraded[i], string(kind)+": ") {
			t.Errorf("degraded[%d] = %q, want prefix %q", i, result.Degraded[i], string(kind)+": ")
		}
	}
	for _, kind := range want {
		items, ok := result.Sections[kind]
		if !ok {
			t.Errorf("%s missing from sections; failed reads still produce the key", kind)
		}
		if len(items) != 0 {
			t.Errorf("%s items = %d, want 0 on store failure", kind, len(items))
		}
	}
}

func TestFetchContentDegradesMonthlyStories(t *testing.T) {
	database := newTestDB(t)
	database.Close()

	result := FetchContent(database, content.EditionMonthly, testNow)
	if len(result.Degraded) != 4 {
		t.Fatalf("degraded = %v, want all four monthly sections", result.Degraded)
	}
	last := result.Degraded[len(result.Degraded)-1]
	if !strings.HasPrefix(last, string(content.SectionStories)+": ") {
		t.Errorf("last reason = %q, want the stories section", last)
	}
}
