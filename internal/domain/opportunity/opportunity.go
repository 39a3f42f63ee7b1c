package opportunity

import (
	"time"

	"careerbridge/internal/common"
)

type Status string

const (
	StatusDraft   Status = "draft"
	StatusActive  Status = "active"
	StatusClosed  Status = "closed"
	StatusExpired Status = "expired"
)

var Categories = []string{"software", "data", "design", "marketing", "business", "other"}

var Types = []string{"internship", "externship", "freelance", "part-time", "full-time", "remote", "contract", "research", "apprenticeship"}

var ExperienceLevels = []string{"entry", "intermediate", "senior", "expert"}

type Salary struct {
	Min      int    `json:"min,omitempty"`
	Max      int    `json:"max,omitempty"`
	Currency string `json:"currency,omitempty"`
}

type Analytics struct {
	Views        int `json:"views"`
	Applications int `json:"applications"`
	Interviews   int `json:"interviews"`
	Hires        int `json:"hires"`
}

type Opportunity struct {
	ID              common.ID   `json:"id"`
	CompanyID       common.ID   `json:"company_id"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	Requirements    []string    `json:"requirements"`
	Location        string      `json:"location,omitempty"`
	Category        string      `json:"category"`
	Type            string      `json:"opportunityType"`
	ExperienceLevel string      `json:"experienceLevel"`
	Tags            []string    `json:"tags"`
	Salary          Salary      `json:"salary"`
	Duration        string      `json:"duration,omitempty"`
	Deadline        *time.Time  `json:"deadline,omitempty"`
	Status          Status      `json:"status"`
	Applicants      []common.ID `json:"applicants"`
	Analytics       Analytics   `json:"analytics"`
	LastUpdatedBy   common.ID   `json:"last_updated_by,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

func (o Opportunity) IsExpired(now time.Time) bool {
	return o.Deadline != nil && now.After(*o.Deadline)
}
