package repo

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"photoportal/internal/models"
)

// ---------------- Search ----------------

type SearchMode string

const (
	SearchByName SearchMode = "name"
	SearchByDate SearchMode = "date"
	SearchByTags SearchMode = "tags"
)

const (
	StatusMatchesFound = "Matching photos found"
	StatusNoMatches    = "No matching photos found"
)

// SearchQuery carries one input per mode; only the one selected by Mode is read.
type SearchQuery struct {
	Mode SearchMode
	Text string
	Date string
	Tags string
}

// Matches applies the predicate for q.Mode. Unknown modes and empty queries
// never match.
func (q SearchQuery) Matches(p models.Photo) bool {
	switch q.Mode {
	case SearchByName:
		return q.Text != "" && strings.Contains(strings.ToLower(p.Name), strings.ToLower(q.Text))
	case SearchByDate:
		return q.Date != "" && q.Date == p.DateTaken
	case SearchByTags:
		return q.Tags != "" && tagsOverlap(p.Tags, q.Tags)
	default:
		return false
	}
}

// Filter keeps matching photos in their original order.
func Filter(photos []models.Photo, q SearchQuery) []models.Photo {
	out := make([]models.Photo, 0, len(photos))
	for _, p := range photos {
		if q.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// Search scans the whole catalog and returns the matches plus a status message.
func Search(ctx context.Context, r Repo, q SearchQuery) ([]models.Photo, string, error) {
	zerolog.Ctx(ctx).Debug().Str("mode", string(q.Mode)).Msg("search photos")
	photos, err := r.Load(ctx)
	if err != nil {
		return nil, "", err
	}
	matched := Filter(photos, q)
	zerolog.Ctx(ctx).Debug().Int("count", len(matched)).Msg("search photos ok")
	if len(matched) == 0 {
		return matched, StatusNoMatches, nil
	}
	return matched, StatusMatchesFound, nil
}

// SplitTags splits a comma-separated tag list, trimming and lowercasing each
// tag and dropping empties.
func SplitTags(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// tagsOverlap is any-overlap, not subset.
func tagsOverlap(photoTags, query string) bool {
	have := make(map[string]struct{})
	for _, t := range SplitTags(photoTags) {
		have[t] = struct{}{}
	}
	for _, t := range SplitTags(query) {
		if _, ok := have[t]; ok {
			return true
		}
	}
	return false
}
