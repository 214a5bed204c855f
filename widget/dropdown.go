package widget

import (
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"
)

// Option is one entry of a searchable dropdown.
type Option struct {
	Value  string
	Label  string
	Detail string
}

// FilterOptions ranks already-loaded options against the query before the
// dropdown falls back to a remote search. Substring matches always
// qualify; the rest are ranked by Levenshtein similarity and kept above
// the threshold.
func FilterOptions(options []Option, query string) []Option {
	if len([]rune(query)) < 1 {
		return options
	}
	query = strings.ToLower(query)

	type ranked struct {
		option     Option
		similarity float32
	}

	var matches []ranked
	for _, o := range options {
		label := strings.ToLower(o.Label)
		if strings.Contains(label, query) {
			matches = append(matches, ranked{o, 1})
			continue
		}
		similarity, err := edlib.StringsSimilarity(label, query, edlib.Levenshtein)
		if err == nil && similarity > 0.5 {
			matches = append(matches, ranked{o, similarity})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].similarity > matches[j].similarity
	})

	out := make([]Option, len(matches))
	for i, m := range matches {
		out[i] = m.option
	}
	return out
}
