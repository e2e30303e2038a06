package analytics

import (
	"sort"
	"strings"
	"time"

	"skillpulse/internal/models"
)

// MonthlySeries maps a YYYY-MM month key to a posting count for one skill.
// Months with no postings have no entry; the sorted key order is the time
// axis, gaps are not interpolated.
type MonthlySeries map[string]int

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func monthKey(datePosted string) (string, bool) {
	s := strings.TrimSpace(datePosted)
	if s == "" {
		return "", false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01"), true
		}
	}
	return "", false
}

// CountMonthlySkills groups postings into per-skill monthly counts. A
// posting with a missing or unparseable date, or no skills, contributes
// nothing; a posting with several skills increments each of their series.
func CountMonthlySkills(postings []models.Posting) map[string]MonthlySeries {
	counts := make(map[string]MonthlySeries)

	for _, p := range postings {
		if len(p.Skills) == 0 {
			continue
		}
		month, ok := monthKey(p.DatePosted)
		if !ok {
			continue
		}

		for _, skill := range p.Skills {
			series, ok := counts[skill]
			if !ok {
				series = make(MonthlySeries)
				counts[skill] = series
			}
			series[month]++
		}
	}

	return counts
}

// sorted returns the series as parallel month/count slices in
// chronological order.
func (s MonthlySeries) sorted() ([]string, []int) {
	months := make([]string, 0, len(s))
	for month := range s {
		months = append(months, month)
	}
	sort.Strings(months)

	counts := make([]int, len(months))
	for i, month := range months {
		counts[i] = s[month]
	}
	return months, counts
}

func (s MonthlySeries) total() int {
	sum := 0
	for _, count := range s {
		sum += count
	}
	return sum
}
