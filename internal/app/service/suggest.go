package service

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SuggestNames ranks names against what the user typed, closest first.
func SuggestNames(query string, names []string, limit int) []string {
	if query == "" {
		if len(names) > limit {
			return names[:limit]
		}
		return names
	}
	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Stable(ranks)

	out := make([]string, 0, limit)
	for _, r := range ranks {
		if len(out) == limit {
			break
		}
		out = append(out, r.Target)
	}
	return out
}
