// Package resolve suggests close matches for mistyped names such as resource types.
package resolve

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/sahilm/fuzzy"
)

var ErrEmptyQuery = errors.New("empty search query")

// maxDistance is the largest edit distance still offered as a suggestion.
const maxDistance = 2

type lowerSource []string

func (s lowerSource) String(i int) string { return strings.ToLower(s[i]) }
func (s lowerSource) Len() int            { return len(s) }

// Suggest returns the candidates closest to query, best first.
//
// An exact case-insensitive match is returned alone. Otherwise fuzzy subsequence matches are
// preferred, and candidates within a small edit distance are used when nothing matches as a
// subsequence (e.g. transposed letters).
func Suggest(query string, candidates []string) ([]string, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, ErrEmptyQuery
	}

	for _, c := range candidates {
		if strings.EqualFold(c, query) {
			return []string{c}, nil
		}
	}

	if matches := fuzzy.FindFrom(query, lowerSource(candidates)); len(matches) > 0 {
		out := make([]string, len(matches))
		for i, m := range matches {
			out[i] = candidates[m.Index]
		}
		return out, nil
	}

	type scored struct {
		name string
		dist int
	}
	var near []scored
	for _, c := range candidates {
		if d := levenshtein.ComputeDistance(query, strings.ToLower(c)); d <= maxDistance {
			near = append(near, scored{name: c, dist: d})
		}
	}
	sort.SliceStable(near, func(i, j int) bool { return near[i].dist < near[j].dist })

	out := make([]string, len(near))
	for i, s := range near {
		out[i] = s.name
	}
	return out, nil
}

// UnknownError reports a name that matched nothing, with any suggestions.
type UnknownError struct {
	Kind        string
	Name        string
	Suggestions []string
}

func (e *UnknownError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("unknown %s %q", e.Kind, e.Name)
	}
	return fmt.Sprintf("unknown %s %q, did you mean: %s?", e.Kind, e.Name, strings.Join(e.Suggestions, ", "))
}
