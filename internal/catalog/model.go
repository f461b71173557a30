package catalog

import (
	"encoding/json"
	"strings"

	"tvlog/internal/coerce"
	"tvlog/internal/store"
)

// Column names the loader and writer rely on.
const (
	ColShowName       = "Show Name"
	ColSeason         = "Season"
	ColEpisode        = "Episode"
	ColEpisodeTitle   = "Episode Title"
	ColRating         = "Rating"
	ColRuntime        = "Runtime"
	ColReleaseDate    = "Release Date"
	ColSynopsis       = "Synopsis"
	ColWatched        = "Watched"
	ColPersonalRating = "Personal Rating"
	ColFavorite       = "Favorite"
	ColWatchDate      = "Watch Date"
)

// TrackingColumn is a user-editable column with the value it gets when the
// sheet does not have it yet.
type TrackingColumn struct {
	Name    string
	Default string
}

// TrackingColumns lists the tracking columns in canonical order.
var TrackingColumns = []TrackingColumn{
	{Name: ColWatched, Default: "No"},
	{Name: ColPersonalRating, Default: ""},
	{Name: ColFavorite, Default: "No"},
	{Name: ColWatchDate, Default: ""},
}

// Record is one episode row. Position is zero-based within the show's table
// and maps to store row Position+2.
type Record struct {
	Position int            `json:"position"`
	Fields   map[string]any `json:"fields"`
}

// Value returns the raw value of column, or nil when the record lacks it.
func (r Record) Value(column string) any {
	return r.Fields[column]
}

// Text returns the display text of column.
func (r Record) Text(column string) string {
	return coerce.Text(r.Fields[column])
}

// Status derives the watch status from the Watched column.
func (r Record) Status() WatchStatus {
	return StatusOf(r.Fields[ColWatched])
}

// Table is an ordered episode list for one show.
type Table struct {
	Columns []string `json:"columns"`
	Records []Record `json:"records"`
}

// HasColumn reports whether the table carries column.
func (t Table) HasColumn(column string) bool {
	for _, c := range t.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// Len returns the number of episode records.
func (t Table) Len() int { return len(t.Records) }

// Metadata summarizes a show. Optional values are nil when no cell could be
// coerced, never zero.
type Metadata struct {
	Title          string   `json:"title"`
	TotalEpisodes  int      `json:"total_episodes"`
	Seasons        *int     `json:"seasons"`
	AverageRating  *float64 `json:"average_rating"`
	LongestEpisode *int     `json:"longest_episode"`
}

// Show is one worksheet after normalization.
type Show struct {
	Name     string      `json:"name"`
	Sheet    store.Sheet `json:"-"`
	Table    Table       `json:"table"`
	Metadata Metadata    `json:"metadata"`
}

// Library holds every loaded show keyed by sheet name, in store order.
type Library struct {
	order []string
	shows map[string]*Show
}

// NewLibrary returns an empty library.
func NewLibrary() *Library {
	return &Library{shows: make(map[string]*Show)}
}

func (l *Library) add(show *Show) bool {
	if _, exists := l.shows[show.Name]; exists {
		return false
	}
	l.order = append(l.order, show.Name)
	l.shows[show.Name] = show
	return true
}

// Len returns the number of shows.
func (l *Library) Len() int {
	if l == nil {
		return 0
	}
	return len(l.order)
}

// Names returns sheet names in store order.
func (l *Library) Names() []string {
	if l == nil {
		return nil
	}
	return append([]string(nil), l.order...)
}

// Show looks up a show by exact sheet name.
func (l *Library) Show(name string) (*Show, bool) {
	if l == nil {
		return nil, false
	}
	show, ok := l.shows[name]
	return show, ok
}

// Find looks up a show by sheet name, falling back to a case-insensitive
// match when the exact name is missing.
func (l *Library) Find(name string) (*Show, bool) {
	if show, ok := l.Show(name); ok {
		return show, true
	}
	if l == nil {
		return nil, false
	}
	trimmed := strings.TrimSpace(name)
	for _, candidate := range l.order {
		if strings.EqualFold(candidate, trimmed) {
			return l.shows[candidate], true
		}
	}
	return nil, false
}

// Shows returns every show in store order.
func (l *Library) Shows() []*Show {
	if l == nil {
		return nil
	}
	out := make([]*Show, 0, len(l.order))
	for _, name := range l.order {
		out = append(out, l.shows[name])
	}
	return out
}

// Tables returns every episode table in store order.
func (l *Library) Tables() []Table {
	shows := l.Shows()
	out := make([]Table, 0, len(shows))
	for _, show := range shows {
		out = append(out, show.Table)
	}
	return out
}

// Metadata returns every show's metadata in store order.
func (l *Library) Metadata() []Metadata {
	shows := l.Shows()
	out := make([]Metadata, 0, len(shows))
	for _, show := range shows {
		out = append(out, show.Metadata)
	}
	return out
}

// MarshalJSON renders the library as an ordered list of shows.
func (l *Library) MarshalJSON() ([]byte, error) {
	shows := l.Shows()
	if shows == nil {
		shows = []*Show{}
	}
	return json.Marshal(shows)
}

// Warning reports a sheet that could not be loaded. Sheet is empty when the
// workbook itself was unreachable.
type Warning struct {
	Sheet string
	Err   error
}

func (w Warning) Error() string {
	if w.Sheet == "" {
		return w.Err.Error()
	}
	return "sheet " + w.Sheet + ": " + w.Err.Error()
}

func (w Warning) Unwrap() error { return w.Err }
