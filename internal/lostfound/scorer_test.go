package lostfound

import (
	"strings"
	"testing"
	"time"

	"lostfound-service/internal/model"
)

var day0 = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func TestScore_IdenticalAttributesScoreHigh(t *testing.T) {
	lost := model.LostItem{
		ItemName: "wireless headphones", Category: "Electronics",
		Color: "Black", Brand: "Sony", ReportedAt: day0,
	}
	found := model.FoundItem{
		ItemName: "headphones", Category: "Electronics",
		Color: "Black", Brand: "Sony", FoundAt: day0.Add(48 * time.Hour),
	}

	score, _ := Score(&lost, &found)
	if score < 60 {
		t.Fatalf("identical category+brand+color should score >= 60, got %d", score)
	}
}

func TestScore_FoundBeforeLostIsZero(t *testing.T) {
	lost := model.LostItem{
		ItemName: "iPhone 15", Category: "Electronics",
		Color: "Black", Brand: "Apple", ReportedAt: day0,
	}
	found := model.FoundItem{
		ItemName: "iPhone 15", Category: "Electronics",
		Color: "Black", Brand: "Apple", FoundAt: day0.Add(-36 * time.Hour),
	}

	score, reason := Score(&lost, &found)
	if score != 0 {
		t.Fatalf("found before loss must score 0 regardless of attributes, got %d", score)
	}
	if !strings.Contains(reason, "before") {
		t.Fatalf("reason should explain the temporal violation, got %q", reason)
	}
}

func TestScore_GraceWindowAllowsSlightlyEarlierFind(t *testing.T) {
	lost := model.LostItem{ItemName: "watch", Category: "Jewelry", ReportedAt: day0}
	found := model.FoundItem{ItemName: "watch", Category: "Jewelry", FoundAt: day0.Add(-12 * time.Hour)}

	score, _ := Score(&lost, &found)
	if score == 0 {
		t.Fatalf("a find within the grace window must not be invalidated")
	}
}

func TestScore_AppleScenario(t *testing.T) {
	lost := model.LostItem{
		ItemName: "phone", Category: "Electronics",
		Color: "Black", Brand: "Apple", ReportedAt: day0,
	}
	found := model.FoundItem{
		ItemName: "phone", Category: "Electronics",
		Color: "Black", Brand: "Apple", FoundAt: day0.Add(24 * time.Hour),
	}

	score, reason := Score(&lost, &found)
	if score < 70 {
		t.Fatalf("expected score >= 70 for the full-attribute match, got %d", score)
	}
	for _, dim := range []string{"category", "brand", "color"} {
		if !strings.Contains(reason, dim) {
			t.Fatalf("reason %q should mention %s", reason, dim)
		}
	}
}

func TestScore_EmptyDimensionsAreSkippedNotPenalized(t *testing.T) {
	// No category, brand or location on either side: only the token overlap
	// dimension applies, and a perfect overlap should still reach 100.
	lost := model.LostItem{ItemName: "red umbrella", ReportedAt: day0}
	found := model.FoundItem{ItemName: "red umbrella", FoundAt: day0.Add(time.Hour)}

	score, _ := Score(&lost, &found)
	if score != 100 {
		t.Fatalf("perfect overlap on the only applicable dimension should score 100, got %d", score)
	}
}

func TestScore_MismatchedEverythingScoresLow(t *testing.T) {
	lost := model.LostItem{
		ItemName: "gold ring", Category: "Jewelry",
		Color: "Gold", Brand: "Cartier", ReportedAt: day0,
	}
	found := model.FoundItem{
		ItemName: "laptop charger", Category: "Electronics",
		Color: "White", Brand: "Dell", FoundAt: day0.Add(time.Hour),
	}

	score, _ := Score(&lost, &found)
	if score >= MinMatchScore {
		t.Fatalf("fully mismatched items should fall below the candidate threshold, got %d", score)
	}
}

func TestScore_LocationMatchContributes(t *testing.T) {
	lost := model.LostItem{
		ItemName: "scarf", Category: "Clothing", LocationLost: "Lobby", ReportedAt: day0,
	}
	found := model.FoundItem{
		ItemName: "scarf", Category: "Clothing", LocationFound: "Lobby", FoundAt: day0.Add(time.Hour),
	}
	lostElsewhere := lost
	lostElsewhere.LocationLost = "Pool"

	withLocation, reason := Score(&lost, &found)
	withoutLocation, _ := Score(&lostElsewhere, &found)
	if withLocation <= withoutLocation {
		t.Fatalf("matching location should raise the score: %d vs %d", withLocation, withoutLocation)
	}
	if !strings.Contains(reason, "location") {
		t.Fatalf("reason %q should mention the location match", reason)
	}
}

func TestScore_ReasonMentionsDayGap(t *testing.T) {
	lost := model.LostItem{ItemName: "wallet", Category: "Documents", ReportedAt: day0}
	found := model.FoundItem{ItemName: "wallet", Category: "Documents", FoundAt: day0.Add(49 * time.Hour)}

	_, reason := Score(&lost, &found)
	if !strings.Contains(reason, "found 2 days after report") {
		t.Fatalf("reason should mention the day gap, got %q", reason)
	}
}

func TestScore_Deterministic(t *testing.T) {
	lost := model.LostItem{
		ItemName: "black leather bag", Category: "Personal",
		Color: "Black", ReportedAt: day0,
	}
	found := model.FoundItem{
		ItemName: "leather bag", Category: "Personal",
		Color: "Black", FoundAt: day0.Add(time.Hour),
	}

	first, firstReason := Score(&lost, &found)
	for i := 0; i < 10; i++ {
		score, reason := Score(&lost, &found)
		if score != first || reason != firstReason {
			t.Fatalf("scoring must be deterministic: (%d,%q) vs (%d,%q)", first, firstReason, score, reason)
		}
	}
}
