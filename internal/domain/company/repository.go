package company

import (
	"context"

	"careerbridge/internal/common"
)

type Repository interface {
	Create(ctx context.Context, c Company) (*Company, error)
	GetByID(ctx context.Context, id common.ID) (*Company, error)
	GetByEmail(ctx context.Context, email string) (*Company, error)
	UpdateProfile(ctx context.Context, c Company) (*Company, error)
	UpdatePassword(ctx context.Context, id common.ID, passwordHash string) error
	SetLogo(ctx context.Context, id common.ID, logoURL string) error
	PushOpportunity(ctx context.Context, companyID, opportunityID common.ID) error
	PullOpportunity(ctx context.Context, companyID, opportunityID common.ID) error
}
