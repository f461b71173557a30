package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"tvlog/internal/coerce"
	"tvlog/internal/stats"
)

// now is replaced in tests.
var now = time.Now

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

func formatOptionalFloat(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 1, 64)
}

func formatOptionalInt(v *int, suffix string) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v) + suffix
}

func formatProgress(p stats.Progress) string {
	return fmt.Sprintf("%d/%d (%.0f%%)", p.Watched, p.Total, p.Percent)
}

// formatWatchDate renders a stored date with a relative hint, e.g.
// "03-15-2024 (2 weeks ago)".
func formatWatchDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return fmt.Sprintf("%s (%s)", coerce.FormatDate(*t), humanize.RelTime(*t, now(), "ago", "from now"))
}

func formatShortDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return coerce.FormatDate(*t)
}

func printWarnings(w io.Writer, warnings []string) {
	for _, warning := range warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
}
