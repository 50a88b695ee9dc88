package analytics

import (
	"sort"
	"time"
)

// dateOnly truncates a timestamp to its UTC calendar date
func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MergeDaily collapses entries into one bucket per calendar date and returns
// them sorted by date ascending.
func MergeDaily(entries []DailyCount) []DailyCount {
	byDate := make(map[time.Time]DailyCount, len(entries))
	for _, e := range entries {
		d := dateOnly(e.Date)
		bucket := byDate[d]
		bucket.PropertyID = e.PropertyID
		bucket.Date = d
		bucket.Count += e.Count
		byDate[d] = bucket
	}

	merged := make([]DailyCount, 0, len(byDate))
	for _, bucket := range byDate {
		merged = append(merged, bucket)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Date.Before(merged[j].Date)
	})
	return merged
}

// daysAgo returns how many whole calendar days before today the date falls
func daysAgo(today, d time.Time) int {
	return int(today.Sub(dateOnly(d)).Hours() / 24)
}

// monthsAgo returns how many calendar months before today's month the date's
// month falls
func monthsAgo(today, d time.Time) int {
	d = dateOnly(d)
	return (today.Year()-d.Year())*12 + int(today.Month()) - int(d.Month())
}

// Summarize totals the entries into a current and a previous bucket for the
// given window, relative to now.
//
// Day windows compare equal spans of calendar days: today against yesterday,
// the last 7 days against the 7 before that, the last 30 against the 30
// before. Month windows compare calendar months: the last 6 months against
// the 6 before, the last 12 against the 12 before. WindowAll counts
// everything as current and leaves the previous bucket empty.
func Summarize(entries []DailyCount, window Window, now time.Time) Summary {
	today := dateOnly(now)
	summary := Summary{Window: window}

	for _, e := range entries {
		d := dateOnly(e.Date)
		if d.After(today) {
			continue
		}

		switch window {
		case WindowToday:
			switch daysAgo(today, d) {
			case 0:
				summary.Current += e.Count
			case 1:
				summary.Previous += e.Count
			}
		case WindowLast7:
			addByAge(&summary, daysAgo(today, d), 7, e.Count)
		case WindowLast30:
			addByAge(&summary, daysAgo(today, d), 30, e.Count)
		case WindowSixMonths:
			addByAge(&summary, monthsAgo(today, d), 6, e.Count)
		case WindowOneYear:
			addByAge(&summary, monthsAgo(today, d), 12, e.Count)
		case WindowAll:
			summary.Current += e.Count
		}
	}

	if summary.Previous > 0 {
		change := float64(summary.Current-summary.Previous) / float64(summary.Previous) * 100
		summary.ChangePercent = &change
	}
	return summary
}

// addByAge assigns a count to the current bucket when its age is within the
// span, and to the previous bucket when within the span before that.
func addByAge(summary *Summary, age, span, count int) {
	switch {
	case age < span:
		summary.Current += count
	case age < 2*span:
		summary.Previous += count
	}
}
