package tracker

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"tvlog/internal/catalog"
	"tvlog/internal/coerce"
)

// ErrInvalidEdit is returned when an edit value cannot be written.
var ErrInvalidEdit = errors.New("invalid edit")

// Field names a tracking field of an episode.
type Field string

const (
	FieldWatched        Field = "Watched"
	FieldPersonalRating Field = "PersonalRating"
	FieldFavorite       Field = "Favorite"
	FieldWatchDate      Field = "WatchDate"
)

// Fields lists every field in write order.
var Fields = []Field{FieldWatched, FieldPersonalRating, FieldFavorite, FieldWatchDate}

// Column returns the sheet column the field is stored in.
func (f Field) Column() string {
	switch f {
	case FieldWatched:
		return catalog.ColWatched
	case FieldPersonalRating:
		return catalog.ColPersonalRating
	case FieldFavorite:
		return catalog.ColFavorite
	case FieldWatchDate:
		return catalog.ColWatchDate
	}
	return string(f)
}

// Edit is a pending change to one episode. A nil field is left unchanged.
//
// Watched and Favorite accept a bool or any value coerce.Boolean reads;
// Watched also accepts "In Progress". PersonalRating accepts a number in
// 0..10. WatchDate accepts a time.Time or a string in any supported date
// layout. An empty string clears PersonalRating or WatchDate.
type Edit struct {
	Watched        any
	PersonalRating any
	Favorite       any
	WatchDate      any
}

// IsEmpty reports whether the edit changes nothing.
func (e Edit) IsEmpty() bool {
	return e.Watched == nil && e.PersonalRating == nil && e.Favorite == nil && e.WatchDate == nil
}

func (e Edit) value(f Field) any {
	switch f {
	case FieldWatched:
		return e.Watched
	case FieldPersonalRating:
		return e.PersonalRating
	case FieldFavorite:
		return e.Favorite
	case FieldWatchDate:
		return e.WatchDate
	}
	return nil
}

type change struct {
	field Field
	value any
}

// normalize converts every requested change into its stored form.
func (e Edit) normalize() ([]change, error) {
	var out []change
	for _, f := range Fields {
		raw := e.value(f)
		if raw == nil {
			continue
		}
		var (
			value any
			err   error
		)
		switch f {
		case FieldWatched:
			value, err = watchedValue(raw)
		case FieldFavorite:
			value, err = yesNo(raw)
		case FieldPersonalRating:
			value, err = ratingValue(raw)
		case FieldWatchDate:
			value, err = dateValue(raw)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidEdit, f, err)
		}
		out = append(out, change{field: f, value: value})
	}
	return out, nil
}

func watchedValue(v any) (any, error) {
	if s, ok := v.(string); ok && strings.EqualFold(strings.TrimSpace(s), catalog.InProgressText) {
		return catalog.InProgressText, nil
	}
	return yesNo(v)
}

func yesNo(v any) (any, error) {
	switch coerce.Boolean(v) {
	case coerce.True:
		return "Yes", nil
	case coerce.False:
		return "No", nil
	}
	return nil, fmt.Errorf("%q is not yes or no", coerce.Text(v))
}

func ratingValue(v any) (any, error) {
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return "", nil
	}
	if _, ok := v.(bool); ok {
		return nil, errors.New("rating must be a number")
	}
	f, ok := coerce.Number(v)
	if !ok || math.IsNaN(f) {
		return nil, fmt.Errorf("%q is not a number", coerce.Text(v))
	}
	if f < 0 || f > 10 {
		return nil, fmt.Errorf("rating %s outside 0..10", coerce.Text(f))
	}
	return f, nil
}

func dateValue(v any) (any, error) {
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return "", nil
	}
	switch v.(type) {
	case string, time.Time:
	default:
		return nil, fmt.Errorf("unsupported date type %T", v)
	}
	d, ok := coerce.Date(v)
	if !ok {
		return nil, fmt.Errorf("%q is not a date", coerce.Text(v))
	}
	return coerce.FormatDate(d), nil
}
