package app

import (
	"context"

	"careerbridge/internal/common"
	"careerbridge/internal/domain/company"
	"careerbridge/internal/domain/student"
)

type ProfileService struct {
	students  student.Repository
	companies company.Repository
}

func NewProfileService(students student.Repository, companies company.Repository) *ProfileService {
	return &ProfileService{students: students, companies: companies}
}

func (s *ProfileService) GetStudent(ctx context.Context, id common.ID) (*student.Student, error) {
	return s.students.GetByID(ctx, id)
}

func (s *ProfileService) GetCompany(ctx context.Context, id common.ID) (*company.Company, error) {
	return s.companies.GetByID(ctx, id)
}

// UpdateStudent overwrites the profile fields of the authenticated student.
// Identity and credential fields are taken from the stored record, never
// from the request.
func (s *ProfileService) UpdateStudent(ctx context.Context, id common.ID, profile student.Student) (*student.Student, error) {
	current, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	profile.ID = current.ID
	profile.Email = current.Email
	profile.PasswordHash = current.PasswordHash
	profile.SavedOpportunities = current.SavedOpportunities
	profile.Applications = current.Applications
	profile.Notifications = current.Notifications
	profile.CreatedAt = current.CreatedAt
	if profile.Name == "" {
		profile.Name = current.Name
	}
	return s.students.UpdateProfile(ctx, profile)
}

func (s *ProfileService) UpdateCompany(ctx context.Context, id common.ID, profile company.Company) (*company.Company, error) {
	current, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	profile.ID = current.ID
	profile.Email = current.Email
	profile.PasswordHash = current.PasswordHash
	profile.Opportunities = current.Opportunities
	profile.CreatedAt = current.CreatedAt
	if profile.Name == "" {
		profile.Name = current.Name
	}
	return s.companies.UpdateProfile(ctx, profile)
}

func (s *ProfileService) SetCompanyLogo(ctx context.Context, id common.ID, logoURL string) error {
	if _, err := s.companies.GetByID(ctx, id); err != nil {
		return err
	}
	return s.companies.SetLogo(ctx, id, logoURL)
}

func (s *ProfileService) Notifications(ctx context.Context, studentID common.ID) ([]string, error) {
	account, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if account.Notifications == nil {
		return []string{}, nil
	}
	return account.Notifications, nil
}

// DismissNotification removes the inbox entry at the given position. The
// inbox is positional, so the whole list is rewritten.
func (s *ProfileService) DismissNotification(ctx context.Context, studentID common.ID, index int) ([]string, error) {
	account, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(account.Notifications) {
		return nil, common.NewError(common.CodeValidation, "invalid notification index", nil)
	}
	remaining := make([]string, 0, len(account.Notifications)-1)
	remaining = append(remaining, account.Notifications[:index]...)
	remaining = append(remaining, account.Notifications[index+1:]...)
	if err := s.students.SetNotifications(ctx, studentID, remaining); err != nil {
		return nil, err
	}
	return remaining, nil
}

func (s *ProfileService) DismissAllNotifications(ctx context.Context, studentID common.ID) error {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return err
	}
	return s.students.SetNotifications(ctx, studentID, []string{})
}
