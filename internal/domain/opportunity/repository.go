package opportunity

import (
	"context"

	"careerbridge/internal/common"
)

// Listing pairs an opportunity with the owning company's public summary for
// search results.
type Listing struct {
	Opportunity
	Company CompanySummary `json:"company"`
}

type CompanySummary struct {
	ID       common.ID `json:"id"`
	Name     string    `json:"name"`
	Logo     string    `json:"logo,omitempty"`
	Industry string    `json:"industry,omitempty"`
	Location string    `json:"location,omitempty"`
}

type Repository interface {
	Create(ctx context.Context, o Opportunity) (*Opportunity, error)
	Update(ctx context.Context, o Opportunity) (*Opportunity, error)
	Delete(ctx context.Context, id common.ID) error
	GetByID(ctx context.Context, id common.ID) (*Opportunity, error)
	// Search applies the filter and returns listings sorted by creation time
	// descending.
	Search(ctx context.Context, f Filter) ([]Listing, error)
	ListByCompany(ctx context.Context, companyID common.ID, status, opportunityType string) ([]Opportunity, error)
	PushApplicant(ctx context.Context, opportunityID, studentID common.ID) error
	PullApplicant(ctx context.Context, opportunityID, studentID common.ID) error
	IncrementAnalytics(ctx context.Context, id common.ID, field string) error
}
