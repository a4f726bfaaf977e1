package scan

import "strings"

// The series table is an ordered slice, not a map: when two series score
// the same, the one declared first wins, and that tie rule is observable
// behavior.
var seriesTable = []struct {
	Key      string
	Patterns []string
}{
	{"after_hours", []string{"night", "evening", "late", "pasar malam", "after hours", "nightlife"}},
	{"cram_and_cry", []string{"study", "cram", "cafe", "coffee", "library", "exam", "studying"}},
	{"food_for_heartbreak", []string{"food", "eat", "heartbreak", "comfort", "restaurant", "meal"}},
	{"stressed_depressed", []string{"stress", "depression", "mental health", "overwhelm", "crisis", "burnout"}},
	{"commute_crisis", []string{"commute", "transport", "bus", "train", "travel", "journey", "brt"}},
}

// ClassifySeries scores the concatenated inputs against each series'
// pattern list and returns the key with the strictly highest number of
// distinct matching patterns, or "" when nothing matches.
func ClassifySeries(title, body, keywords string) string {
	text := strings.ToLower(title + " " + body + " " + keywords)

	best := ""
	bestScore := 0
	for _, s := range seriesTable {
		score := 0
		for _, p := range s.Patterns {
			if strings.Contains(text, p) {
				score++
			}
		}
		if score > bestScore {
			best = s.Key
			bestScore = score
		}
	}
	return best
}

func KnownSeries(key string) bool {
	for _, s := range seriesTable {
		if s.Key == key {
			return true
		}
	}
	return false
}

func SeriesKeys() []string {
	keys := make([]string, 0, len(seriesTable))
	for _, s := range seriesTable {
		keys = append(keys, s.Key)
	}
	return keys
}
