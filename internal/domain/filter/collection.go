package filter

import (
	"cmp"
	"slices"
	"strings"

	"github.com/okian/benchboard/internal/domain/score"
)

// Collection is a built, immutable, ordered pipeline of filters. It is safe
// to share between goroutines.
type Collection struct {
	filters []Filter
}

// Filters returns a copy of the pipeline in application order.
func (c *Collection) Filters() []Filter {
	if c == nil {
		return nil
	}
	out := make([]Filter, len(c.filters))
	for i, f := range c.filters {
		f.values = slices.Clone(f.values)
		out[i] = f
	}
	return out
}

// Len returns the number of filters in the pipeline.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.filters)
}

func (c *Collection) String() string {
	if c == nil {
		return ""
	}
	parts := make([]string, len(c.filters))
	for i, f := range c.filters {
		parts[i] = f.String()
	}
	return strings.Join(parts, " | ")
}

// Apply runs each filter left to right, feeding the output of one step to
// the next. The input slice is never modified; a new slice is returned even
// when the pipeline is empty.
func (c *Collection) Apply(scores []score.Score) []score.Score {
	out := slices.Clone(scores)
	if out == nil {
		out = []score.Score{}
	}
	if c == nil {
		return out
	}
	for _, f := range c.filters {
		out = apply(f, out)
	}
	return out
}

// apply runs a single filter. It owns scores and may reuse its storage.
func apply(f Filter, scores []score.Score) []score.Score {
	switch f.kind {
	case KindTop:
		return scores[:clamp(f.n, len(scores))]
	case KindBottom:
		slices.Reverse(scores)
		scores = scores[:clamp(f.n, len(scores))]
		slices.Reverse(scores)
		return scores
	case KindUniquePlayers:
		return uniqueBy(scores, func(s score.Score) string { return s.Name })
	case KindUniqueBinaries:
		return uniqueBy(scores, func(s score.Score) string { return s.Command })
	case KindUniqueLanguages:
		return uniqueBy(scores, func(s score.Score) string { return s.Language })
	case KindPlayerAllow:
		return allow(scores, f.values, func(s score.Score) string { return s.Name })
	case KindBinaryAllow:
		return allow(scores, f.values, func(s score.Score) string { return s.Command })
	case KindLanguageAllow:
		return allow(scores, f.values, func(s score.Score) string { return s.Language })
	case KindSortBy:
		sortBy(scores, f.column)
		return scores
	}
	return scores
}

func clamp(n, length int) int {
	return max(0, min(n, length))
}

func uniqueBy(scores []score.Score, key func(score.Score) string) []score.Score {
	seen := make(map[string]struct{}, len(scores))
	return slices.DeleteFunc(scores, func(s score.Score) bool {
		k := key(s)
		if _, dup := seen[k]; dup {
			return true
		}
		seen[k] = struct{}{}
		return false
	})
}

func allow(scores []score.Score, values []string, key func(score.Score) string) []score.Score {
	return slices.DeleteFunc(scores, func(s score.Score) bool {
		return !slices.Contains(values, key(s))
	})
}

// sortBy orders ascending and keeps equal elements in their incoming order.
// Times are expected to be validated as non-NaN at ingestion.
func sortBy(scores []score.Score, column SortColumn) {
	switch column {
	case PlayerName:
		slices.SortStableFunc(scores, func(a, b score.Score) int { return strings.Compare(a.Name, b.Name) })
	case Binary:
		slices.SortStableFunc(scores, func(a, b score.Score) int { return strings.Compare(a.Command, b.Command) })
	case Language:
		slices.SortStableFunc(scores, func(a, b score.Score) int { return strings.Compare(a.Language, b.Language) })
	case Time:
		slices.SortStableFunc(scores, func(a, b score.Score) int { return cmp.Compare(a.TimeNS, b.TimeNS) })
	}
}
