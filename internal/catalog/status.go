package catalog

import "tvlog/internal/coerce"

// WatchStatus is the derived state of an episode.
type WatchStatus int

const (
	Unwatched WatchStatus = iota
	InProgress
	Watched
)

// InProgressText is the literal Watched value for a partly watched episode.
const InProgressText = "In Progress"

func (s WatchStatus) String() string {
	switch s {
	case Watched:
		return "watched"
	case InProgress:
		return "in_progress"
	default:
		return "unwatched"
	}
}

// MarshalText renders the status for JSON output.
func (s WatchStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// StatusOf derives a watch status from a raw Watched cell. Any tolerant true
// is Watched, the literal "In Progress" is InProgress, and everything else
// (including unparseable text) is Unwatched.
func StatusOf(v any) WatchStatus {
	if coerce.Boolean(v) == coerce.True {
		return Watched
	}
	if s, ok := v.(string); ok && s == InProgressText {
		return InProgress
	}
	return Unwatched
}

// IsFavorite reports whether a Favorite cell holds exactly "Yes".
func IsFavorite(v any) bool {
	s, ok := v.(string)
	return ok && s == "Yes"
}

// DisplayStatus is the label the CLI shows for a status.
func DisplayStatus(s WatchStatus) string {
	switch s {
	case Watched:
		return "Watched"
	case InProgress:
		return InProgressText
	default:
		return "Unwatched"
	}
}
