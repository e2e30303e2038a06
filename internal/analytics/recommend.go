package analytics

import "fmt"

// recommendations maps a classified trend to ordered guidance strings.
// The percentage change is the unrounded value; formatting pins it to one
// decimal with an explicit sign.
func recommendations(trend, strength string, pctChange float64) []string {
	var recs []string

	switch trend {
	case TrendGrowing:
		recs = append(recs, "High demand - consider learning or improving this skill")
		if strength == StrengthStrong {
			recs = append(recs, fmt.Sprintf("Strong growth (%+.1f%%) - hot skill in the market", pctChange))
		}
		recs = append(recs, "Good for career development and job opportunities")
	case TrendDeclining:
		recs = append(recs, "Declining demand - may want to focus on other skills")
		if strength == StrengthStrong {
			recs = append(recs, fmt.Sprintf("Strong decline (%+.1f%%) - consider pivoting", pctChange))
		}
		recs = append(recs, "Look for complementary or emerging skills")
	default:
		recs = append(recs,
			"Stable demand - consistent opportunities available",
			"Maintain proficiency in this skill",
		)
	}

	return recs
}
