package dto

import "github.com/google/uuid"

// JobRow is the flat shape the dashboard table renders. Company fields from
// the nested join collapse into plain columns; a missing company leaves them
// empty instead of failing.
type JobRow struct {
	JobID                 string `json:"job_id"`
	Position              string `json:"position"`
	Company               string `json:"company"`
	TechnicalRequirements string `json:"technical_requirements"`
	Experience            string `json:"experience"`
	URL                   string `json:"url"`
}

// TableCaptions maps JobRow keys to the header captions the table displays.
var TableCaptions = map[string]string{
	"job_id":                 "Job ID",
	"position":               "Position",
	"company":                "Company",
	"technical_requirements": "Technical Requirements",
	"experience":             "Experience",
	"url":                    "URL",
}

type LocationPoint struct {
	CompanyID uuid.UUID `json:"company_id"`
	Name      string    `json:"name"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Count     int64     `json:"count"`
}

// MissingLocation reports a company excluded from the map for lack of
// coordinates, so the caller can surface it instead of silently dropping it.
type MissingLocation struct {
	CompanyID uuid.UUID `json:"company_id"`
	Name      string    `json:"name"`
}

type Profile struct {
	DisplayName string `json:"display_name"`
}
