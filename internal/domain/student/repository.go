package student

import (
	"context"

	"careerbridge/internal/common"
)

type Repository interface {
	Create(ctx context.Context, s Student) (*Student, error)
	GetByID(ctx context.Context, id common.ID) (*Student, error)
	GetByEmail(ctx context.Context, email string) (*Student, error)
	UpdateProfile(ctx context.Context, s Student) (*Student, error)
	UpdatePassword(ctx context.Context, id common.ID, passwordHash string) error
	PushApplication(ctx context.Context, studentID, applicationID common.ID) error
	PullApplication(ctx context.Context, studentID, applicationID common.ID) error
	SaveOpportunity(ctx context.Context, studentID, opportunityID common.ID) error
	UnsaveOpportunity(ctx context.Context, studentID, opportunityID common.ID) error
	UnsaveOpportunityForAll(ctx context.Context, opportunityID common.ID) error
	PushNotification(ctx context.Context, studentID common.ID, message string) error
	SetNotifications(ctx context.Context, studentID common.ID, notifications []string) error
}
