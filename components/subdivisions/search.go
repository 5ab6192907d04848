package subdivisions

import (
	"sort"
	"strings"
)

// Search filters options by case-insensitive match on label or value. Label
// prefix matches come first, then value matches, then other label matches;
// ties keep the input order.
func Search(options []Option, query string, limit int, opts Options) []Option {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if opts.EmptySearchMode == EmptySearchTop {
			if len(options) <= limit {
				return append([]Option{}, options...)
			}
			return append([]Option{}, options[:limit]...)
		}
		return nil
	}

	q := strings.ToLower(query)
	matches := make([]matchedOption, 0, 16)
	for _, opt := range options {
		label := strings.ToLower(opt.Label)
		value := strings.ToLower(opt.Value)
		rank := -1
		switch {
		case strings.HasPrefix(label, q):
			rank = 0
		case value == q:
			rank = 1
		case strings.Contains(label, q):
			rank = 2
		}
		if rank < 0 {
			continue
		}
		matches = append(matches, matchedOption{option: opt, rank: rank})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].rank < matches[j].rank
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]Option, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.option)
	}
	return out
}

type matchedOption struct {
	option Option
	rank   int
}
