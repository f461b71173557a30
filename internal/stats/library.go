package stats

import (
	"sort"
	"time"

	"tvlog/internal/catalog"
	"tvlog/internal/coerce"
)

// Overview is the library-wide summary shown on the home screen.
type Overview struct {
	Shows      int     `json:"shows"`
	Episodes   int     `json:"episodes"`
	Seasons    int     `json:"seasons"`
	Watched    int     `json:"watched"`
	InProgress int     `json:"in_progress"`
	Percent    float64 `json:"percent"`
	Favorites  int     `json:"favorites"`
}

// ShowSummary is one row of the shows table.
type ShowSummary struct {
	Name        string           `json:"name"`
	Metadata    catalog.Metadata `json:"metadata"`
	Progress    Progress         `json:"progress"`
	LastWatched *time.Time       `json:"last_watched"`
}

// RankedEpisode is an entry in TopRated.
type RankedEpisode struct {
	Show     string  `json:"show"`
	Position int     `json:"position"`
	Season   string  `json:"season"`
	Episode  string  `json:"episode"`
	Title    string  `json:"title"`
	Rating   float64 `json:"rating"`
}

// ComputeOverview totals the whole library.
func ComputeOverview(lib *catalog.Library) Overview {
	metas := lib.Metadata()
	o := Overview{
		Shows:    lib.Len(),
		Episodes: TotalEpisodes(metas),
		Seasons:  TotalSeasons(metas),
	}
	for _, show := range lib.Shows() {
		p := WatchProgress(show.Table)
		o.Watched += p.Watched
		o.InProgress += p.InProgress
		for _, rec := range show.Table.Records {
			if catalog.IsFavorite(rec.Value(catalog.ColFavorite)) {
				o.Favorites++
			}
		}
	}
	o.Percent = percent(o.Watched, o.Episodes)
	return o
}

// ShowSummaries returns per-show metadata and progress in sheet order.
func ShowSummaries(lib *catalog.Library) []ShowSummary {
	shows := lib.Shows()
	out := make([]ShowSummary, 0, len(shows))
	for _, show := range shows {
		summary := ShowSummary{
			Name:     show.Name,
			Metadata: show.Metadata,
			Progress: WatchProgress(show.Table),
		}
		if dates := ViewingCalendar([]catalog.Table{show.Table}); len(dates) > 0 {
			last := dates[len(dates)-1]
			summary.LastWatched = &last
		}
		out = append(out, summary)
	}
	return out
}

// TopRated returns up to n episodes with the highest coercible Rating. Ties
// keep sheet order, then table position. n <= 0 returns every rated episode.
func TopRated(lib *catalog.Library, n int) []RankedEpisode {
	var ranked []RankedEpisode
	for _, show := range lib.Shows() {
		for _, rec := range show.Table.Records {
			rating, ok := coerce.Number(rec.Value(catalog.ColRating))
			if !ok {
				continue
			}
			ranked = append(ranked, RankedEpisode{
				Show:     show.Name,
				Position: rec.Position,
				Season:   rec.Text(catalog.ColSeason),
				Episode:  rec.Text(catalog.ColEpisode),
				Title:    rec.Text(catalog.ColEpisodeTitle),
				Rating:   rating,
			})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Rating > ranked[j].Rating })
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
