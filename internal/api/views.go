package api

import (
	"context"
	"time"

	"tvlog/internal/catalog"
	"tvlog/internal/coerce"
	"tvlog/internal/filter"
	"tvlog/internal/stats"
)

// DefaultPreviewSize is the number of episodes ShowView previews.
const DefaultPreviewSize = 5

// EpisodeRow is one episode prepared for display.
type EpisodeRow struct {
	Position       int                 `json:"position"`
	Season         string              `json:"season"`
	Episode        string              `json:"episode"`
	Title          string              `json:"title"`
	Rating         string              `json:"rating"`
	Runtime        string              `json:"runtime"`
	Status         catalog.WatchStatus `json:"status"`
	PersonalRating string              `json:"personal_rating"`
	Favorite       bool                `json:"favorite"`
	WatchDate      *time.Time          `json:"watch_date"`
}

func episodeRow(rec catalog.Record) EpisodeRow {
	row := EpisodeRow{
		Position:       rec.Position,
		Season:         rec.Text(catalog.ColSeason),
		Episode:        rec.Text(catalog.ColEpisode),
		Title:          rec.Text(catalog.ColEpisodeTitle),
		Rating:         rec.Text(catalog.ColRating),
		Runtime:        rec.Text(catalog.ColRuntime),
		Status:         rec.Status(),
		PersonalRating: rec.Text(catalog.ColPersonalRating),
		Favorite:       catalog.IsFavorite(rec.Value(catalog.ColFavorite)),
	}
	if d, ok := coerce.Date(rec.Value(catalog.ColWatchDate)); ok {
		row.WatchDate = &d
	}
	return row
}

func episodeRows(records []catalog.Record) []EpisodeRow {
	out := make([]EpisodeRow, len(records))
	for i, rec := range records {
		out[i] = episodeRow(rec)
	}
	return out
}

// ShowsView is the library overview.
type ShowsView struct {
	Overview stats.Overview      `json:"overview"`
	Shows    []stats.ShowSummary `json:"shows"`
	Warnings []string            `json:"warnings,omitempty"`
}

// Shows summarizes every loaded show.
func (s *Service) Shows(ctx context.Context) (ShowsView, error) {
	snap, err := s.Library(ctx)
	if err != nil {
		return ShowsView{}, err
	}
	return ShowsView{
		Overview: stats.ComputeOverview(snap.Library),
		Shows:    stats.ShowSummaries(snap.Library),
		Warnings: warningStrings(snap.Warnings),
	}, nil
}

// ShowView describes one show in detail.
type ShowView struct {
	Name           string             `json:"name"`
	Metadata       catalog.Metadata   `json:"metadata"`
	Progress       stats.Progress     `json:"progress"`
	SeasonRatings  []stats.SeasonMean `json:"season_ratings"`
	SeasonRuntimes []stats.SeasonMean `json:"season_runtimes"`
	Preview        []EpisodeRow       `json:"preview"`
	LastWatched    *time.Time         `json:"last_watched"`
}

// Show returns metadata, progress, season rollups and the first preview
// episodes of name. preview below 1 uses DefaultPreviewSize.
func (s *Service) Show(ctx context.Context, name string, preview int) (ShowView, error) {
	snap, err := s.Library(ctx)
	if err != nil {
		return ShowView{}, err
	}
	show, err := s.findShow(snap, name)
	if err != nil {
		return ShowView{}, err
	}
	if preview < 1 {
		preview = DefaultPreviewSize
	}
	records := show.Table.Records
	if len(records) > preview {
		records = records[:preview]
	}
	view := ShowView{
		Name:           show.Name,
		Metadata:       show.Metadata,
		Progress:       stats.WatchProgress(show.Table),
		SeasonRatings:  stats.SeasonRatingRollup(show.Table),
		SeasonRuntimes: stats.RuntimeBySeasonRollup(show.Table),
		Preview:        episodeRows(records),
	}
	if dates := stats.ViewingCalendar([]catalog.Table{show.Table}); len(dates) > 0 {
		last := dates[len(dates)-1]
		view.LastWatched = &last
	}
	return view, nil
}

// EpisodesView is a filtered episode list.
type EpisodesView struct {
	Show     string       `json:"show"`
	Total    int          `json:"total"`
	Episodes []EpisodeRow `json:"episodes"`
}

// Episodes applies criteria to the episodes of name.
func (s *Service) Episodes(ctx context.Context, name string, criteria filter.Criteria) (EpisodesView, error) {
	snap, err := s.Library(ctx)
	if err != nil {
		return EpisodesView{}, err
	}
	show, err := s.findShow(snap, name)
	if err != nil {
		return EpisodesView{}, err
	}
	return EpisodesView{
		Show:     show.Name,
		Total:    show.Table.Len(),
		Episodes: episodeRows(filter.Apply(show.Table, criteria)),
	}, nil
}

// Bucket is one labelled histogram bar.
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// StatsView holds the library-wide analysis.
type StatsView struct {
	Overview   stats.Overview        `json:"overview"`
	Dated      int                   `json:"dated_episodes"`
	FirstWatch *time.Time            `json:"first_watch"`
	LastWatch  *time.Time            `json:"last_watch"`
	Weekdays   []Bucket              `json:"weekdays"`
	Months     []Bucket              `json:"months"`
	TopRated   []stats.RankedEpisode `json:"top_rated"`
	Warnings   []string              `json:"warnings,omitempty"`
}

// Stats computes the viewing calendar histograms and the top rated episodes.
func (s *Service) Stats(ctx context.Context, top int) (StatsView, error) {
	snap, err := s.Library(ctx)
	if err != nil {
		return StatsView{}, err
	}
	dates := stats.ViewingCalendar(snap.Library.Tables())
	view := StatsView{
		Overview: stats.ComputeOverview(snap.Library),
		Dated:    len(dates),
		TopRated: stats.TopRated(snap.Library, top),
		Warnings: warningStrings(snap.Warnings),
	}
	if len(dates) > 0 {
		first, last := dates[0], dates[len(dates)-1]
		view.FirstWatch, view.LastWatch = &first, &last
	}
	weekdays := stats.WeekdayHistogram(dates)
	for i, n := range weekdays {
		view.Weekdays = append(view.Weekdays, Bucket{Label: stats.WeekdayLabels[i], Count: n})
	}
	months := stats.MonthHistogram(dates)
	for i, n := range months {
		view.Months = append(view.Months, Bucket{Label: stats.MonthLabels[i], Count: n})
	}
	return view, nil
}
