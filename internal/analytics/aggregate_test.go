package analytics

import (
	"testing"

	"skillpulse/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountMonthlySkills(t *testing.T) {
	postings := []models.Posting{
		{DatePosted: "2024-01-15", Skills: []string{"Python", "SQL"}},
		{DatePosted: "2024-01-28T09:30:00Z", Skills: []string{"Python"}},
		{DatePosted: "2024-02-03", Skills: []string{"Python"}},
		{DatePosted: "not-a-date", Skills: []string{"Python"}},
		{DatePosted: "", Skills: []string{"Python"}},
		{DatePosted: "2024-02-10", Skills: nil},
	}

	counts := CountMonthlySkills(postings)

	require.Contains(t, counts, "Python")
	require.Contains(t, counts, "SQL")
	assert.Len(t, counts, 2)

	assert.Equal(t, MonthlySeries{"2024-01": 2, "2024-02": 1}, counts["Python"])
	assert.Equal(t, MonthlySeries{"2024-01": 1}, counts["SQL"])
}

func TestCountMonthlySkillsEmptyInput(t *testing.T) {
	assert.Empty(t, CountMonthlySkills(nil))
	assert.Empty(t, CountMonthlySkills([]models.Posting{}))
}

func TestMonthKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"rfc3339", "2024-03-05T12:00:00Z", "2024-03", true},
		{"datetime without zone", "2024-03-05T12:00:00", "2024-03", true},
		{"date only", "2024-12-31", "2024-12", true},
		{"space separated", "2024-03-05 12:00:00", "2024-03", true},
		{"garbage", "soon", "", false},
		{"empty", "", "", false},
		{"whitespace", "   ", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := monthKey(tc.input)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMonthlySeriesSorted(t *testing.T) {
	series := MonthlySeries{
		"2024-03": 7,
		"2023-11": 2,
		"2024-01": 5,
	}

	months, counts := series.sorted()
	assert.Equal(t, []string{"2023-11", "2024-01", "2024-03"}, months)
	assert.Equal(t, []int{2, 5, 7}, counts)
	assert.Equal(t, 14, series.total())
}
