package coerce

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Truth is the result of tolerant boolean parsing.
type Truth int

const (
	Unknown Truth = iota
	True
	False
)

func (t Truth) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unknown"
	}
}

// DateLayout is the layout used when a date is written back to the store.
const DateLayout = "01-02-2006"

// dateLayouts are tried in order. The non-padded verbs accept both "3" and "03".
var dateLayouts = []string{
	"1-2-2006",
	"2006-1-2",
	"1/2/2006",
}

var digitRun = regexp.MustCompile(`[0-9]+`)

// Boolean reports whether v reads as yes, no, or neither.
func Boolean(v any) Truth {
	switch value := v.(type) {
	case nil:
		return Unknown
	case bool:
		if value {
			return True
		}
		return False
	case string:
		return booleanText(value)
	case float64:
		return booleanNumber(value)
	case float32:
		return booleanNumber(float64(value))
	case int:
		return booleanNumber(float64(value))
	case int64:
		return booleanNumber(float64(value))
	default:
		return booleanText(fmt.Sprint(value))
	}
}

func booleanText(s string) Truth {
	s = strings.TrimSpace(s)
	if s == "Yes" {
		return True
	}
	if s == "No" {
		return False
	}
	switch strings.ToUpper(s) {
	case "TRUE", "YES", "1":
		return True
	case "FALSE", "NO", "0":
		return False
	}
	return Unknown
}

func booleanNumber(f float64) Truth {
	switch f {
	case 1:
		return True
	case 0:
		return False
	}
	return Unknown
}

// Number parses numeric cells and numeric strings. Booleans are not numbers.
func Number(v any) (float64, bool) {
	var f float64
	switch value := v.(type) {
	case nil, bool:
		return 0, false
	case float64:
		f = value
	case float32:
		f = float64(value)
	case int:
		f = float64(value)
	case int64:
		f = float64(value)
	case int32:
		f = float64(value)
	case string:
		s := strings.TrimSpace(value)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Minutes returns the first run of digits in the text form of v, so "45 min"
// yields 45 and "1h 05m" yields 1.
func Minutes(v any) (int, bool) {
	if v == nil {
		return 0, false
	}
	if _, isBool := v.(bool); isBool {
		return 0, false
	}
	match := digitRun.FindString(Text(v))
	if match == "" {
		return 0, false
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Date parses v with MM-DD-YYYY, YYYY-MM-DD and MM/DD/YYYY, in that order.
// "01-02-2024" is therefore January 2nd.
func Date(v any) (time.Time, bool) {
	switch value := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if value.IsZero() {
			return time.Time{}, false
		}
		y, m, d := value.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
	case string:
		return parseDate(value)
	default:
		return time.Time{}, false
	}
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders t in the storage layout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Text renders a raw cell for display. Integral floats drop their fraction.
func Text(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		return formatFloat(value)
	case float32:
		return formatFloat(float64(value))
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case bool:
		if value {
			return "TRUE"
		}
		return "FALSE"
	case time.Time:
		return FormatDate(value)
	default:
		return fmt.Sprint(value)
	}
}

func formatFloat(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Int returns v as a whole number when it is numeric and integral.
func Int(v any) (int, bool) {
	f, ok := Number(v)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// IsBlank reports whether v is nil or whitespace-only text.
func IsBlank(v any) bool {
	switch value := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(value) == ""
	default:
		return false
	}
}
