package application

import (
	"strings"
	"time"

	"careerbridge/internal/common"
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusUnderReview Status = "under_review"
	StatusInterview   Status = "interview"
	StatusAccepted    Status = "accepted"
	StatusRejected    Status = "rejected"
	StatusWithdrawn   Status = "withdrawn"
)

// Normalize maps historical status aliases onto the canonical enum. Stored
// documents may still carry the old values.
func Normalize(status Status) Status {
	normalized := Status(strings.ToLower(strings.TrimSpace(string(status))))
	switch normalized {
	case "new":
		return StatusPending
	case "reviewing":
		return StatusUnderReview
	case "interview_scheduled":
		return StatusInterview
	default:
		return normalized
	}
}

func Known(status Status) bool {
	switch status {
	case StatusPending, StatusUnderReview, StatusInterview, StatusAccepted, StatusRejected, StatusWithdrawn:
		return true
	default:
		return false
	}
}

func Terminal(status Status) bool {
	return status == StatusAccepted || status == StatusRejected || status == StatusWithdrawn
}

var InterviewTypes = []string{"phone", "video", "onsite", "virtual", "in-person"}

type Interview struct {
	Date        time.Time `json:"date"`
	Time        string    `json:"time"`
	Type        string    `json:"type"`
	Link        string    `json:"link,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	Status      string    `json:"status"`
	Feedback    string    `json:"feedback,omitempty"`
	Interviewer string    `json:"interviewer,omitempty"`
}

// InterviewRound is one entry of the append-only scheduling audit trail. The
// top-level Interview object stays authoritative for the active slot.
type InterviewRound struct {
	Round int `json:"round"`
	Interview
}

type Note struct {
	Text    string    `json:"text"`
	AddedBy common.ID `json:"addedBy"`
	Date    time.Time `json:"date"`
}

type Application struct {
	ID               common.ID        `json:"id"`
	StudentID        common.ID        `json:"student"`
	OpportunityID    common.ID        `json:"opportunity"`
	Status           Status           `json:"status"`
	Resume           string           `json:"resume,omitempty"`
	CoverLetter      string           `json:"coverLetter,omitempty"`
	Interview        *Interview       `json:"interview,omitempty"`
	InterviewRounds  []InterviewRound `json:"interviewRounds"`
	Notes            []Note           `json:"notes"`
	LastUpdatedBy    common.ID        `json:"last_updated_by,omitempty"`
	LastStatusChange time.Time        `json:"lastStatusChange"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}
