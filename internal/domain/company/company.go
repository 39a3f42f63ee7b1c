package company

import (
	"time"

	"careerbridge/internal/common"
)

type Company struct {
	ID            common.ID   `json:"id"`
	Name          string      `json:"name"`
	Email         string      `json:"email"`
	PasswordHash  string      `json:"-"`
	Industry      string      `json:"industry,omitempty"`
	Location      string      `json:"location,omitempty"`
	Description   string      `json:"description,omitempty"`
	Website       string      `json:"website,omitempty"`
	ContactEmail  string      `json:"contactEmail,omitempty"`
	Logo          string      `json:"logo,omitempty"`
	Opportunities []common.ID `json:"opportunities"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// Summary is the public projection embedded in opportunity listings.
type Summary struct {
	ID       common.ID `json:"id"`
	Name     string    `json:"name"`
	Logo     string    `json:"logo,omitempty"`
	Industry string    `json:"industry,omitempty"`
	Location string    `json:"location,omitempty"`
}

func (c Company) Summary() Summary {
	return Summary{ID: c.ID, Name: c.Name, Logo: c.Logo, Industry: c.Industry, Location: c.Location}
}
