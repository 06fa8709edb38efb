package lostfound

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"

	"lostfound-service/internal/model"
)

// Scoring policy. The weights and threshold are tunable policy values, not
// business law; they are normalized over the dimensions actually present on a
// pair, so a full match always scores 100 regardless of which attributes were
// filled in.
const (
	weightCategory = 30
	weightTokens   = 25
	weightColor    = 15
	weightBrand    = 15
	weightLocation = 10

	// MinMatchScore is the minimum score a candidate needs before it is
	// persisted as a pending match proposal.
	MinMatchScore = 40

	// foundBeforeLostGrace tolerates imprecise "lost around" reporting: an
	// item found earlier than the report minus this window cannot be the
	// lost object and scores zero.
	foundBeforeLostGrace = 24 * time.Hour
)

// Score rates how likely a found item is the reported lost item, returning a
// score in [0,100] and a human-readable reason. Pure and deterministic; both
// items must belong to the same tenant (the caller's responsibility).
func Score(lost *model.LostItem, found *model.FoundItem) (int, string) {
	// An item "found" before it was lost cannot be the same object.
	if found.FoundAt.Before(lost.ReportedAt.Add(-foundBeforeLostGrace)) {
		return 0, "found before reported loss"
	}

	var earned, applicable float64
	var matched []string

	if lost.Category != "" && found.Category != "" {
		applicable += weightCategory
		if strings.EqualFold(lost.Category, found.Category) {
			earned += weightCategory
			matched = append(matched, "category")
		}
	}

	lostTokens := tokenize(lost.ItemName + " " + lost.Description)
	foundTokens := tokenize(found.ItemName + " " + found.Description)
	if len(lostTokens) > 0 && len(foundTokens) > 0 {
		applicable += weightTokens
		overlap := jaccard(lostTokens, foundTokens)
		earned += overlap * weightTokens
		if overlap >= 0.5 {
			matched = append(matched, "name")
		}
	}

	if lost.Color != "" && found.Color != "" {
		applicable += weightColor
		if strings.EqualFold(lost.Color, found.Color) {
			earned += weightColor
			matched = append(matched, "color")
		}
	}

	if lost.Brand != "" && found.Brand != "" {
		applicable += weightBrand
		if strings.EqualFold(lost.Brand, found.Brand) {
			earned += weightBrand
			matched = append(matched, "brand")
		}
	}

	if lost.LocationLost != "" && found.LocationFound != "" {
		applicable += weightLocation
		if strings.EqualFold(lost.LocationLost, found.LocationFound) {
			earned += weightLocation
			matched = append(matched, "location")
		}
	}

	if applicable == 0 {
		return 0, "not enough attributes to compare"
	}

	score := int(math.Round(earned * 100 / applicable))
	if score > 100 {
		score = 100
	}

	return score, reason(matched, lost.ReportedAt, found.FoundAt)
}

func reason(matched []string, reportedAt, foundAt time.Time) string {
	var b strings.Builder
	if len(matched) == 0 {
		b.WriteString("weak similarity")
	} else {
		b.WriteString(strings.Join(matched, "+"))
		b.WriteString(" match")
	}

	days := int(foundAt.Sub(reportedAt).Hours() / 24)
	switch {
	case days <= 0:
		b.WriteString(", found same day as report")
	case days == 1:
		b.WriteString(", found 1 day after report")
	default:
		fmt.Fprintf(&b, ", found %d days after report", days)
	}
	return b.String()
}

// tokenize lower-cases the text and splits it on non-alphanumeric runes,
// returning the set of distinct tokens
func tokenize(text string) map[string]struct{} {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// jaccard computes intersection-over-union of two token sets
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}
