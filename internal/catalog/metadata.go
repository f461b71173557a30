package catalog

import (
	"strings"

	"tvlog/internal/coerce"
)

// ComputeMetadata derives show metadata from a table. The title comes from
// the first record's Show Name, falling back to sheetName when blank.
func ComputeMetadata(sheetName string, table Table) Metadata {
	meta := Metadata{
		Title:         sheetName,
		TotalEpisodes: len(table.Records),
	}
	if len(table.Records) > 0 {
		if title := strings.TrimSpace(table.Records[0].Text(ColShowName)); title != "" {
			meta.Title = title
		}
	}

	if table.HasColumn(ColSeason) {
		distinct := make(map[string]struct{})
		for _, rec := range table.Records {
			key := strings.TrimSpace(rec.Text(ColSeason))
			if key == "" {
				continue
			}
			distinct[key] = struct{}{}
		}
		if len(distinct) > 0 {
			n := len(distinct)
			meta.Seasons = &n
		}
	}

	if table.HasColumn(ColRating) {
		var sum float64
		var count int
		for _, rec := range table.Records {
			if v, ok := coerce.Number(rec.Value(ColRating)); ok {
				sum += v
				count++
			}
		}
		if count > 0 {
			avg := sum / float64(count)
			meta.AverageRating = &avg
		}
	}

	if table.HasColumn(ColRuntime) {
		longest := -1
		for _, rec := range table.Records {
			if m, ok := coerce.Minutes(rec.Value(ColRuntime)); ok && m > longest {
				longest = m
			}
		}
		if longest >= 0 {
			meta.LongestEpisode = &longest
		}
	}
	return meta
}
