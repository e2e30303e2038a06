package analytics

import (
	"sort"

	"skillpulse/internal/models"
)

const (
	DefaultHeatmapTopSkills = 15
	MinHeatmapTopSkills     = 5
	MaxHeatmapTopSkills     = 30
)

// HeatmapRow is one city's counts across the selected top skills. Skills
// absent from the city still appear with a zero count.
type HeatmapRow struct {
	City      string         `json:"city"`
	TotalJobs int            `json:"total_jobs"`
	Skills    map[string]int `json:"skills"`
}

// Insight names the single most frequent skill within one city and its
// share of that city's postings.
type Insight struct {
	City          string  `json:"city"`
	DominantSkill string  `json:"dominant_skill"`
	Count         int     `json:"count"`
	Percentage    float64 `json:"percentage"`
	TotalJobs     int     `json:"total_jobs"`
}

type HeatmapMetadata struct {
	TotalJobs           int `json:"total_jobs"`
	TotalCities         int `json:"total_cities"`
	TotalSkillsAnalyzed int `json:"total_skills_analyzed"`
}

// HeatmapResult is the dense city-by-skill matrix restricted to the
// globally most frequent skills, plus per-city dominance insights.
type HeatmapResult struct {
	Cities   []string        `json:"cities"`
	Skills   []string        `json:"skills"`
	Matrix   []HeatmapRow    `json:"matrix"`
	Insights []Insight       `json:"insights"`
	Metadata HeatmapMetadata `json:"metadata"`
}

// BuildHeatmap cross-tabulates postings by (city, skill). Postings without
// a city or without skills are left out of the matrix but still count
// toward metadata.TotalJobs. Ties in skill counts break by ascending skill
// name so repeated runs agree.
func BuildHeatmap(postings []models.Posting, topSkills int) HeatmapResult {
	topSkills = clampTopSkills(topSkills)

	citySkillCounts := make(map[string]map[string]int)
	for _, p := range postings {
		if p.SearchedCity == "" || len(p.Skills) == 0 {
			continue
		}
		counts, ok := citySkillCounts[p.SearchedCity]
		if !ok {
			counts = make(map[string]int)
			citySkillCounts[p.SearchedCity] = counts
		}
		for _, skill := range p.Skills {
			counts[skill]++
		}
	}

	cities := make([]string, 0, len(citySkillCounts))
	for city := range citySkillCounts {
		cities = append(cities, city)
	}
	sort.Strings(cities)

	skillTotals := make(map[string]int)
	for _, counts := range citySkillCounts {
		for skill, count := range counts {
			skillTotals[skill] += count
		}
	}
	topSkillNames := topByCount(skillTotals, topSkills)

	matrix := make([]HeatmapRow, 0, len(cities))
	for _, city := range cities {
		counts := citySkillCounts[city]

		total := 0
		for _, count := range counts {
			total += count
		}

		rowSkills := make(map[string]int, len(topSkillNames))
		for _, skill := range topSkillNames {
			rowSkills[skill] = counts[skill]
		}

		matrix = append(matrix, HeatmapRow{
			City:      city,
			TotalJobs: total,
			Skills:    rowSkills,
		})
	}

	insights := make([]Insight, 0, len(cities))
	for i, city := range cities {
		counts := citySkillCounts[city]
		total := matrix[i].TotalJobs

		dominant, count := dominantSkill(counts)
		insights = append(insights, Insight{
			City:          city,
			DominantSkill: dominant,
			Count:         count,
			Percentage:    round1(float64(count) / float64(total) * 100),
			TotalJobs:     total,
		})
	}
	sort.SliceStable(insights, func(i, j int) bool {
		if insights[i].TotalJobs != insights[j].TotalJobs {
			return insights[i].TotalJobs > insights[j].TotalJobs
		}
		return insights[i].City < insights[j].City
	})

	return HeatmapResult{
		Cities:   cities,
		Skills:   topSkillNames,
		Matrix:   matrix,
		Insights: insights,
		Metadata: HeatmapMetadata{
			TotalJobs:           len(postings),
			TotalCities:         len(cities),
			TotalSkillsAnalyzed: len(topSkillNames),
		},
	}
}

// topByCount selects up to limit skills ordered by descending total,
// breaking ties by ascending name.
func topByCount(totals map[string]int, limit int) []string {
	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if totals[names[i]] != totals[names[j]] {
			return totals[names[i]] > totals[names[j]]
		}
		return names[i] < names[j]
	})

	if len(names) > limit {
		names = names[:limit]
	}
	return names
}

func dominantSkill(counts map[string]int) (string, int) {
	best := ""
	bestCount := 0
	for skill, count := range counts {
		if count > bestCount || (count == bestCount && (best == "" || skill < best)) {
			best = skill
			bestCount = count
		}
	}
	return best, bestCount
}

func clampTopSkills(topSkills int) int {
	if topSkills == 0 {
		return DefaultHeatmapTopSkills
	}
	if topSkills < MinHeatmapTopSkills {
		return MinHeatmapTopSkills
	}
	if topSkills > MaxHeatmapTopSkills {
		return MaxHeatmapTopSkills
	}
	return topSkills
}
