package models

import (
	"encoding/json"
	"time"
)

// RawPosting is a listing as fetched from the job board, before skill
// detection. It is the wire format on the postings.raw subject.
type RawPosting struct {
	Title        string `json:"title"`
	Company      string `json:"company"`
	Location     string `json:"location"`
	DatePosted   string `json:"date_posted"`
	JobURL       string `json:"job_url"`
	Description  string `json:"description"`
	SearchedCity string `json:"searched_city"`
	SearchedRole string `json:"searched_role"`
}

func (p *RawPosting) ToPosting(id string, skills []string, fetchedAt time.Time) *Posting {
	city := p.SearchedCity
	if city == "" {
		city = p.Location
	}
	if city == "" {
		city = "Unknown"
	}

	return &Posting{
		ID:           id,
		Title:        p.Title,
		Company:      p.Company,
		Location:     p.Location,
		DatePosted:   p.DatePosted,
		JobURL:       p.JobURL,
		SearchedCity: city,
		SearchedRole: p.SearchedRole,
		Skills:       skills,
		FetchedAt:    fetchedAt,
	}
}

// RawPostings is cacheable as a single redis value.
type RawPostings []RawPosting

func (p RawPostings) MarshalBinary() ([]byte, error) {
	return json.Marshal(p)
}

func (p *RawPostings) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, p)
}
