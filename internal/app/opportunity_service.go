package app

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"careerbridge/internal/common"
	"careerbridge/internal/domain/application"
	"careerbridge/internal/domain/company"
	"careerbridge/internal/domain/opportunity"
	"careerbridge/internal/domain/student"
)

type OpportunityService struct {
	repo         opportunity.Repository
	companies    company.Repository
	students     student.Repository
	applications application.Repository
}

func NewOpportunityService(repo opportunity.Repository, companies company.Repository, students student.Repository, applications application.Repository) *OpportunityService {
	return &OpportunityService{repo: repo, companies: companies, students: students, applications: applications}
}

// CompanyStats summarizes a company's postings for the dashboard.
type CompanyStats struct {
	ActivePostings       int `json:"activePostings"`
	TotalApplications    int `json:"totalApplications"`
	InterviewsScheduled  int `json:"interviewsScheduled"`
	AcceptedApplications int `json:"acceptedApplications"`
	RejectedApplications int `json:"rejectedApplications"`
}

func (s *OpportunityService) Create(ctx context.Context, companyID common.ID, o opportunity.Opportunity) (*opportunity.Opportunity, error) {
	o.CompanyID = companyID
	o.LastUpdatedBy = companyID
	if o.Status == "" {
		o.Status = opportunity.StatusActive
	}
	if o.ExperienceLevel == "" {
		o.ExperienceLevel = "entry"
	}
	if err := validateOpportunity(o); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, o)
	if err != nil {
		return nil, err
	}
	if err := s.companies.PushOpportunity(ctx, companyID, created.ID); err != nil {
		slog.Warn("opportunity created but company mirror update failed", "opportunity_id", created.ID, "error", err)
	}
	return created, nil
}

func (s *OpportunityService) Update(ctx context.Context, companyID common.ID, o opportunity.Opportunity) (*opportunity.Opportunity, error) {
	current, err := s.repo.GetByID(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	if current.CompanyID != companyID {
		return nil, common.NewError(common.CodeForbidden, "opportunity belongs to another company", nil)
	}
	o.CompanyID = current.CompanyID
	o.LastUpdatedBy = companyID
	if o.Status == "" {
		o.Status = current.Status
	}
	if o.ExperienceLevel == "" {
		o.ExperienceLevel = current.ExperienceLevel
	}
	o.Applicants = current.Applicants
	o.Analytics = current.Analytics
	if err := validateOpportunity(o); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, o)
}

// Delete removes a posting and scrubs it from every student's saved list.
func (s *OpportunityService) Delete(ctx context.Context, companyID, opportunityID common.ID) error {
	current, err := s.repo.GetByID(ctx, opportunityID)
	if err != nil {
		return err
	}
	if current.CompanyID != companyID {
		return common.NewError(common.CodeForbidden, "opportunity belongs to another company", nil)
	}
	if err := s.repo.Delete(ctx, opportunityID); err != nil {
		return err
	}
	if err := s.companies.PullOpportunity(ctx, companyID, opportunityID); err != nil {
		slog.Warn("opportunity deleted but company mirror update failed", "opportunity_id", opportunityID, "error", err)
	}
	if err := s.students.UnsaveOpportunityForAll(ctx, opportunityID); err != nil {
		slog.Warn("opportunity deleted but saved lists not cleaned", "opportunity_id", opportunityID, "error", err)
	}
	return nil
}

func (s *OpportunityService) Get(ctx context.Context, id common.ID) (*opportunity.Opportunity, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.IncrementAnalytics(ctx, id, "views"); err != nil {
		slog.Warn("failed to count opportunity view", "opportunity_id", id, "error", err)
	}
	return item, nil
}

func (s *OpportunityService) Search(ctx context.Context, f opportunity.Filter) ([]opportunity.Listing, error) {
	return s.repo.Search(ctx, f)
}

func (s *OpportunityService) ListByCompany(ctx context.Context, companyID common.ID, status, opportunityType string) ([]opportunity.Opportunity, *CompanyStats, error) {
	items, err := s.repo.ListByCompany(ctx, companyID, status, opportunityType)
	if err != nil {
		return nil, nil, err
	}
	stats, err := s.statsFor(ctx, items)
	if err != nil {
		return nil, nil, err
	}
	return items, stats, nil
}

func (s *OpportunityService) DashboardStats(ctx context.Context, companyID common.ID) (*CompanyStats, error) {
	items, err := s.repo.ListByCompany(ctx, companyID, "", "")
	if err != nil {
		return nil, err
	}
	return s.statsFor(ctx, items)
}

func (s *OpportunityService) Save(ctx context.Context, studentID, opportunityID common.ID) error {
	item, err := s.repo.GetByID(ctx, opportunityID)
	if err != nil {
		return err
	}
	if item.Status != opportunity.StatusActive {
		return common.NewError(common.CodeValidation, "cannot save inactive opportunity", nil)
	}
	return s.students.SaveOpportunity(ctx, studentID, opportunityID)
}

func (s *OpportunityService) Unsave(ctx context.Context, studentID, opportunityID common.ID) error {
	return s.students.UnsaveOpportunity(ctx, studentID, opportunityID)
}

func (s *OpportunityService) statsFor(ctx context.Context, items []opportunity.Opportunity) (*CompanyStats, error) {
	stats := &CompanyStats{}
	ids := make([]common.ID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
		if item.Status == opportunity.StatusActive {
			stats.ActivePostings++
		}
	}
	if len(ids) == 0 {
		return stats, nil
	}
	apps, err := s.applications.ListByOpportunities(ctx, ids)
	if err != nil {
		return nil, err
	}
	stats.TotalApplications = len(apps)
	for _, app := range apps {
		status := application.Normalize(app.Status)
		switch status {
		case application.StatusAccepted:
			stats.AcceptedApplications++
		case application.StatusRejected:
			stats.RejectedApplications++
		}
		if app.Interview != nil && !app.Interview.Date.IsZero() &&
			status != application.StatusAccepted && status != application.StatusRejected {
			stats.InterviewsScheduled++
		}
	}
	return stats, nil
}

func validateOpportunity(o opportunity.Opportunity) error {
	fields := map[string]string{}
	if strings.TrimSpace(o.Title) == "" {
		fields["title"] = "title is required"
	}
	if strings.TrimSpace(o.Description) == "" {
		fields["description"] = "description is required"
	}
	if !containsString(opportunity.Categories, o.Category) {
		fields["category"] = "invalid category"
	}
	if !containsString(opportunity.Types, o.Type) {
		fields["opportunityType"] = "invalid or missing opportunityType"
	}
	if o.ExperienceLevel != "" && !containsString(opportunity.ExperienceLevels, o.ExperienceLevel) {
		fields["experienceLevel"] = "invalid experienceLevel"
	}
	switch o.Status {
	case opportunity.StatusDraft, opportunity.StatusActive, opportunity.StatusClosed, opportunity.StatusExpired:
	default:
		fields["status"] = "invalid status"
	}
	if o.Deadline != nil && o.Deadline.Before(time.Now()) {
		fields["deadline"] = "deadline must be in the future"
	}
	if len(fields) > 0 {
		return common.NewValidationError("invalid opportunity", fields)
	}
	return nil
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
