package student

import (
	"time"

	"careerbridge/internal/common"
)

type Student struct {
	ID                 common.ID        `json:"id"`
	Name               string           `json:"name"`
	Email              string           `json:"email"`
	PasswordHash       string           `json:"-"`
	Phone              string           `json:"phone,omitempty"`
	Title              string           `json:"title,omitempty"`
	Location           string           `json:"location,omitempty"`
	ProfileImage       string           `json:"profileImage,omitempty"`
	Skills             []string         `json:"skills"`
	ExperienceLevel    string           `json:"experienceLevel"`
	Education          []map[string]any `json:"education"`
	Experience         []map[string]any `json:"experience"`
	SavedOpportunities []common.ID      `json:"savedOpportunities"`
	Applications       []common.ID      `json:"applications"`
	Notifications      []string         `json:"notifications"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}
