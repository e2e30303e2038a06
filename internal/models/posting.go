package models

import (
	"encoding/json"
	"time"
)

// Posting is one processed job listing: a timestamp, a search city, and the
// set of skills detected in its text. Skills holds unique names; order
// follows the detector's vocabulary.
type Posting struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	Location     string    `json:"location"`
	DatePosted   string    `json:"date_posted"`
	JobURL       string    `json:"job_url"`
	SearchedCity string    `json:"searched_city"`
	SearchedRole string    `json:"searched_role"`
	Skills       []string  `json:"skills"`
	FetchedAt    time.Time `json:"fetched_at"`
}

func (p Posting) MarshalBinary() ([]byte, error) {
	return json.Marshal(p)
}

func (p *Posting) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, p)
}
