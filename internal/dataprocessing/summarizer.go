package dataprocessing

import (
	"sort"

	"enrolcli/pkg/contracts/domain"
)

// BuildSeries restricts a histogram to the inclusive day window
// [-low, high] and emits the surviving entries as index-aligned ascending
// sequences. Both bounds are given as non-negative magnitudes: low counts
// days before the epoch, high days after. A window that excludes every
// entry yields an empty series, which is a valid result.
func BuildSeries(histogram domain.Histogram, low, high int) domain.Series {
	days := make([]int, 0, len(histogram))
	for day := range histogram {
		if -low <= day && day <= high {
			days = append(days, day)
		}
	}
	sort.Ints(days)

	counts := make([]int, len(days))
	for i, day := range days {
		counts[i] = histogram[day]
	}
	return domain.Series{Days: days, Counts: counts}
}

// Summarize derives the maximum and current (latest-day) enrolment counts
// from a series. The second return value is false for an empty series;
// callers must branch on it rather than read a zero Summary, since neither
// statistic is defined without data.
func Summarize(series domain.Series) (domain.Summary, bool) {
	if series.Empty() {
		return domain.Summary{}, false
	}

	maximum := series.Counts[0]
	for _, count := range series.Counts[1:] {
		if count > maximum {
			maximum = count
		}
	}
	return domain.Summary{
		Maximum: maximum,
		Current: series.Counts[len(series.Counts)-1],
	}, true
}
