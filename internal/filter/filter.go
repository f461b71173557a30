// Package filter selects and orders episode records for display.
package filter

import (
	"fmt"
	"sort"
	"strings"

	"tvlog/internal/catalog"
	"tvlog/internal/coerce"
)

// Status restricts records by watch state.
type Status int

const (
	All Status = iota
	Watched
	Unwatched
	InProgress
)

func (s Status) String() string {
	switch s {
	case Watched:
		return "watched"
	case Unwatched:
		return "unwatched"
	case InProgress:
		return "in_progress"
	default:
		return "all"
	}
}

// ParseStatus reads a status flag value. Matching ignores case and accepts
// spaces or dashes in place of underscores.
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)
	switch normalized {
	case "", "all":
		return All, nil
	case "watched":
		return Watched, nil
	case "unwatched":
		return Unwatched, nil
	case "in_progress", "inprogress":
		return InProgress, nil
	}
	return All, fmt.Errorf("unknown status %q (want all, watched, unwatched or in_progress)", s)
}

// Criteria selects records. The zero value keeps everything.
type Criteria struct {
	// Seasons keeps records whose season is in the list; empty means any.
	Seasons       []int
	Status        Status
	FavoritesOnly bool
}

// Apply returns the records of table matching c. When the table has both
// Season and Episode columns the result is stably sorted by them, with
// records whose season or episode does not coerce placed last in their
// original relative order.
func Apply(table catalog.Table, c Criteria) []catalog.Record {
	var seasons map[int]struct{}
	if len(c.Seasons) > 0 {
		seasons = make(map[int]struct{}, len(c.Seasons))
		for _, s := range c.Seasons {
			seasons[s] = struct{}{}
		}
	}

	out := make([]catalog.Record, 0, len(table.Records))
	for _, rec := range table.Records {
		if seasons != nil {
			season, ok := coerce.Int(rec.Value(catalog.ColSeason))
			if !ok {
				continue
			}
			if _, keep := seasons[season]; !keep {
				continue
			}
		}
		if !matchStatus(rec, c.Status) {
			continue
		}
		if c.FavoritesOnly && !catalog.IsFavorite(rec.Value(catalog.ColFavorite)) {
			continue
		}
		out = append(out, rec)
	}

	if table.HasColumn(catalog.ColSeason) && table.HasColumn(catalog.ColEpisode) {
		sortBySeasonEpisode(out)
	}
	return out
}

func matchStatus(rec catalog.Record, status Status) bool {
	switch status {
	case Watched:
		return rec.Status() == catalog.Watched
	case Unwatched:
		return rec.Status() == catalog.Unwatched
	case InProgress:
		return rec.Status() == catalog.InProgress
	default:
		return true
	}
}

type keyed struct {
	rec             catalog.Record
	season, episode float64
	ok              bool
}

func sortBySeasonEpisode(records []catalog.Record) {
	items := make([]keyed, len(records))
	for i, rec := range records {
		season, okSeason := coerce.Number(rec.Value(catalog.ColSeason))
		episode, okEpisode := coerce.Number(rec.Value(catalog.ColEpisode))
		items[i] = keyed{rec: rec, season: season, episode: episode, ok: okSeason && okEpisode}
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.ok != b.ok {
			return a.ok
		}
		if !a.ok {
			return false
		}
		if a.season != b.season {
			return a.season < b.season
		}
		return a.episode < b.episode
	})
	for i := range items {
		records[i] = items[i].rec
	}
}
