package stats

import (
	"sort"

	"tvlog/internal/catalog"
	"tvlog/internal/coerce"
)

// Progress counts watched episodes in one table.
type Progress struct {
	Watched    int     `json:"watched"`
	InProgress int     `json:"in_progress"`
	Total      int     `json:"total"`
	Percent    float64 `json:"percent"`
}

// SeasonMean is a per-season average.
type SeasonMean struct {
	Season int     `json:"season"`
	Mean   float64 `json:"mean"`
	Count  int     `json:"count"`
}

// TotalEpisodes sums episode counts across shows.
func TotalEpisodes(metas []catalog.Metadata) int {
	total := 0
	for _, m := range metas {
		total += m.TotalEpisodes
	}
	return total
}

// TotalSeasons sums season counts; shows without a known count add nothing.
func TotalSeasons(metas []catalog.Metadata) int {
	total := 0
	for _, m := range metas {
		if m.Seasons != nil {
			total += *m.Seasons
		}
	}
	return total
}

// WatchProgress counts Watched and InProgress records. Percent is the
// watched share of all records, 0 for an empty table.
func WatchProgress(table catalog.Table) Progress {
	p := Progress{Total: len(table.Records)}
	for _, rec := range table.Records {
		switch rec.Status() {
		case catalog.Watched:
			p.Watched++
		case catalog.InProgress:
			p.InProgress++
		}
	}
	p.Percent = percent(p.Watched, p.Total)
	return p
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// AverageRating is the mean of coercible Rating cells.
func AverageRating(table catalog.Table) (float64, bool) {
	var sum float64
	var n int
	for _, rec := range table.Records {
		if v, ok := coerce.Number(rec.Value(catalog.ColRating)); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// SeasonRatingRollup averages Rating per season, ascending by season.
// Seasons with no coercible rating are omitted.
func SeasonRatingRollup(table catalog.Table) []SeasonMean {
	return seasonRollup(table, func(rec catalog.Record) (float64, bool) {
		return coerce.Number(rec.Value(catalog.ColRating))
	})
}

// RuntimeBySeasonRollup averages runtime minutes per season, ascending by
// season. Seasons with no parseable runtime are omitted.
func RuntimeBySeasonRollup(table catalog.Table) []SeasonMean {
	return seasonRollup(table, func(rec catalog.Record) (float64, bool) {
		m, ok := coerce.Minutes(rec.Value(catalog.ColRuntime))
		return float64(m), ok
	})
}

func seasonRollup(table catalog.Table, value func(catalog.Record) (float64, bool)) []SeasonMean {
	type acc struct {
		sum float64
		n   int
	}
	bySeason := make(map[int]*acc)
	for _, rec := range table.Records {
		season, ok := coerce.Int(rec.Value(catalog.ColSeason))
		if !ok {
			continue
		}
		v, ok := value(rec)
		if !ok {
			continue
		}
		a := bySeason[season]
		if a == nil {
			a = &acc{}
			bySeason[season] = a
		}
		a.sum += v
		a.n++
	}

	out := make([]SeasonMean, 0, len(bySeason))
	for season, a := range bySeason {
		out = append(out, SeasonMean{Season: season, Mean: a.sum / float64(a.n), Count: a.n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Season < out[j].Season })
	return out
}
