package application

import (
	"context"

	"careerbridge/internal/common"
)

type Repository interface {
	Create(ctx context.Context, app Application) (*Application, error)
	GetByID(ctx context.Context, id common.ID) (*Application, error)
	FindByOpportunityAndStudent(ctx context.Context, opportunityID, studentID common.ID) (*Application, error)
	ListByStudent(ctx context.Context, studentID common.ID) ([]Application, error)
	ListByCompany(ctx context.Context, companyID common.ID) ([]Application, error)
	ListByOpportunities(ctx context.Context, opportunityIDs []common.ID) ([]Application, error)
	UpdateStatus(ctx context.Context, id common.ID, status Status, updatedBy common.ID) (*Application, error)
	// SetInterview overwrites the active interview slot, appends the round to
	// the audit trail and moves the application into the interview status.
	SetInterview(ctx context.Context, id common.ID, interview Interview, round InterviewRound, updatedBy common.ID) (*Application, error)
	PushNote(ctx context.Context, id common.ID, note Note) (*Application, error)
	Delete(ctx context.Context, id common.ID) error
}
