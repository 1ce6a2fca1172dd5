package locations

import (
	"sort"
	"strings"
)

// Option is a value/label pair as consumed by select inputs.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Search filters locations by a case-insensitive substring, ranking prefix
// matches first. Ties keep list order.
func Search(locations []string, query string, limit int, opts Options) []string {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if opts.EmptySearchMode == EmptySearchTop {
			if len(locations) <= limit {
				return append([]string{}, locations...)
			}
			return append([]string{}, locations[:limit]...)
		}
		return nil
	}

	q := strings.ToLower(query)
	matches := make([]matchedLocation, 0, 16)
	for _, location := range locations {
		lower := strings.ToLower(location)
		if !strings.Contains(lower, q) {
			continue
		}
		matches = append(matches, matchedLocation{
			name:     location,
			isPrefix: strings.HasPrefix(lower, q),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].isPrefix && !matches[j].isPrefix
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]string, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.name)
	}
	return out
}

// SearchOptions is Search mapped to value/label options.
func SearchOptions(locations []string, query string, limit int, opts Options) []Option {
	results := Search(locations, query, limit, opts)
	if len(results) == 0 {
		return nil
	}

	out := make([]Option, 0, len(results))
	for _, location := range results {
		out = append(out, Option{Value: location, Label: location})
	}
	return out
}

type matchedLocation struct {
	name     string
	isPrefix bool
}
