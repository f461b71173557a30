package stats

import (
	"sort"
	"time"

	"tvlog/internal/catalog"
	"tvlog/internal/coerce"
)

// ViewingCalendar collects every parseable Watch Date across tables, oldest
// first. Blank and malformed dates are dropped.
func ViewingCalendar(tables []catalog.Table) []time.Time {
	var dates []time.Time
	for _, table := range tables {
		for _, rec := range table.Records {
			if d, ok := coerce.Date(rec.Value(catalog.ColWatchDate)); ok {
				dates = append(dates, d)
			}
		}
	}
	sort.SliceStable(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// WeekdayHistogram counts dates per weekday, Monday first.
func WeekdayHistogram(dates []time.Time) [7]int {
	var buckets [7]int
	for _, d := range dates {
		// time.Sunday is 0; shift so Monday lands in bucket 0.
		buckets[(int(d.Weekday())+6)%7]++
	}
	return buckets
}

// MonthHistogram counts dates per calendar month, January first.
func MonthHistogram(dates []time.Time) [12]int {
	var buckets [12]int
	for _, d := range dates {
		buckets[int(d.Month())-1]++
	}
	return buckets
}

// WeekdayLabels names WeekdayHistogram buckets.
var WeekdayLabels = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// MonthLabels names MonthHistogram buckets.
var MonthLabels = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}
