package app

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"careerbridge/internal/common"
	"careerbridge/internal/domain/application"
	"careerbridge/internal/domain/opportunity"
	"careerbridge/internal/domain/student"
	"careerbridge/internal/domain/user"
)

// Student-facing inbox messages pushed by lifecycle transitions. The inbox is
// a plain string list, so these are the full wire format.
const (
	NotificationAccepted           = "Your application was accepted."
	NotificationRejected           = "Your application was rejected."
	NotificationInterviewScheduled = "Your interview is scheduled."
)

type ApplicationService struct {
	repo          application.Repository
	opportunities opportunity.Repository
	students      student.Repository
}

func NewApplicationService(repo application.Repository, opportunities opportunity.Repository, students student.Repository) *ApplicationService {
	return &ApplicationService{repo: repo, opportunities: opportunities, students: students}
}

// Apply creates a pending application and mirrors it on both sides. The
// three writes are separate document updates: the application record is
// authoritative, the student/opportunity mirrors are best-effort and a
// failure there is logged rather than rolled back.
func (s *ApplicationService) Apply(ctx context.Context, studentID, opportunityID common.ID, coverLetter, resume string) (*application.Application, error) {
	opp, err := s.opportunities.GetByID(ctx, opportunityID)
	if err != nil {
		return nil, err
	}
	if opp.Status != opportunity.StatusActive {
		return nil, common.NewError(common.CodeValidation, "opportunity is not active", nil)
	}
	if _, err := s.repo.FindByOpportunityAndStudent(ctx, opportunityID, studentID); err == nil {
		return nil, common.NewError(common.CodeConflict, "already applied to this opportunity", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	created, err := s.repo.Create(ctx, application.Application{
		StudentID:     studentID,
		OpportunityID: opportunityID,
		Status:        application.StatusPending,
		CoverLetter:   coverLetter,
		Resume:        resume,
	})
	if err != nil {
		return nil, err
	}
	if err := s.students.PushApplication(ctx, studentID, created.ID); err != nil {
		slog.Warn("application created but student mirror update failed", "application_id", created.ID, "error", err)
	}
	if err := s.opportunities.PushApplicant(ctx, opportunityID, studentID); err != nil {
		slog.Warn("application created but opportunity mirror update failed", "application_id", created.ID, "error", err)
	}
	return created, nil
}

// UpdateStatus moves an application along the lifecycle on behalf of the
// company owning the opportunity. Transitions follow the graph enforced by
// isAllowedTransition; accepted and rejected push a fixed inbox message.
func (s *ApplicationService) UpdateStatus(ctx context.Context, applicationID common.ID, status application.Status, companyID common.ID) (*application.Application, error) {
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwner(ctx, app.OpportunityID, companyID); err != nil {
		return nil, err
	}
	currentStatus := application.Normalize(app.Status)
	nextStatus := application.Normalize(status)
	if !application.Known(nextStatus) {
		return nil, common.NewValidationError("invalid status", map[string]string{
			"status": "status must be pending, under_review, interview, accepted, rejected, or withdrawn",
		})
	}
	if nextStatus == currentStatus {
		return app, nil
	}
	if application.Terminal(currentStatus) {
		return nil, common.NewError(common.CodeValidation, "application status is final", nil)
	}
	if !isAllowedTransition(currentStatus, nextStatus) {
		return nil, common.NewError(common.CodeValidation, "invalid status transition", nil)
	}
	updated, err := s.repo.UpdateStatus(ctx, applicationID, nextStatus, companyID)
	if err != nil {
		return nil, err
	}
	s.notifyStatus(ctx, updated.StudentID, nextStatus)
	return updated, nil
}

// ScheduleInterview overwrites the active interview slot and appends a round
// to the audit trail. Rescheduling goes through the same path and pushes the
// inbox message again.
func (s *ApplicationService) ScheduleInterview(ctx context.Context, applicationID, companyID common.ID, interview application.Interview) (*application.Application, error) {
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwner(ctx, app.OpportunityID, companyID); err != nil {
		return nil, err
	}
	currentStatus := application.Normalize(app.Status)
	if application.Terminal(currentStatus) {
		return nil, common.NewError(common.CodeValidation, "application status is final", nil)
	}
	if err := validateInterview(interview); err != nil {
		return nil, err
	}
	if interview.Status == "" {
		interview.Status = "scheduled"
	}
	round := application.InterviewRound{
		Round:     len(app.InterviewRounds) + 1,
		Interview: interview,
	}
	updated, err := s.repo.SetInterview(ctx, applicationID, interview, round, companyID)
	if err != nil {
		return nil, err
	}
	if err := s.students.PushNotification(ctx, updated.StudentID, NotificationInterviewScheduled); err != nil {
		slog.Warn("interview scheduled but notification push failed", "application_id", applicationID, "error", err)
	}
	return updated, nil
}

// Withdraw marks the application withdrawn while keeping the record. Only
// the applying student may do this.
func (s *ApplicationService) Withdraw(ctx context.Context, applicationID, studentID common.ID) (*application.Application, error) {
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.StudentID != studentID {
		return nil, common.NewError(common.CodeForbidden, "you can only withdraw your own applications", nil)
	}
	if application.Terminal(application.Normalize(app.Status)) {
		return nil, common.NewError(common.CodeValidation, "application status is final", nil)
	}
	return s.repo.UpdateStatus(ctx, applicationID, application.StatusWithdrawn, "")
}

// Delete removes the application entirely, including both mirror entries.
// Allowed for the applying student and for the company owning the posting.
func (s *ApplicationService) Delete(ctx context.Context, applicationID, actorID common.ID, role user.Role) error {
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return err
	}
	switch role {
	case user.RoleStudent:
		if app.StudentID != actorID {
			return common.NewError(common.CodeForbidden, "you are not authorized to delete this application", nil)
		}
	case user.RoleCompany:
		if err := s.requireOwner(ctx, app.OpportunityID, actorID); err != nil {
			return err
		}
	default:
		return common.NewError(common.CodeForbidden, "insufficient role", nil)
	}
	if err := s.repo.Delete(ctx, applicationID); err != nil {
		return err
	}
	if err := s.opportunities.PullApplicant(ctx, app.OpportunityID, app.StudentID); err != nil {
		slog.Warn("application deleted but opportunity mirror update failed", "application_id", applicationID, "error", err)
	}
	if err := s.students.PullApplication(ctx, app.StudentID, applicationID); err != nil {
		slog.Warn("application deleted but student mirror update failed", "application_id", applicationID, "error", err)
	}
	return nil
}

// AddNote appends a company review note. Notes never affect status.
func (s *ApplicationService) AddNote(ctx context.Context, applicationID, companyID common.ID, text string) (*application.Application, error) {
	if strings.TrimSpace(text) == "" {
		return nil, common.NewError(common.CodeValidation, "note text is required", nil)
	}
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwner(ctx, app.OpportunityID, companyID); err != nil {
		return nil, err
	}
	return s.repo.PushNote(ctx, applicationID, application.Note{
		Text:    strings.TrimSpace(text),
		AddedBy: companyID,
		Date:    time.Now().UTC(),
	})
}

func (s *ApplicationService) ListByStudent(ctx context.Context, studentID common.ID) ([]application.Application, error) {
	return s.repo.ListByStudent(ctx, studentID)
}

func (s *ApplicationService) ListByCompany(ctx context.Context, companyID common.ID) ([]application.Application, error) {
	return s.repo.ListByCompany(ctx, companyID)
}

func (s *ApplicationService) Get(ctx context.Context, id common.ID) (*application.Application, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ApplicationService) requireOwner(ctx context.Context, opportunityID, companyID common.ID) error {
	opp, err := s.opportunities.GetByID(ctx, opportunityID)
	if err != nil {
		return err
	}
	if opp.CompanyID != companyID {
		return common.NewError(common.CodeForbidden, "application belongs to another company", nil)
	}
	return nil
}

func (s *ApplicationService) notifyStatus(ctx context.Context, studentID common.ID, status application.Status) {
	var message string
	switch status {
	case application.StatusAccepted:
		message = NotificationAccepted
	case application.StatusRejected:
		message = NotificationRejected
	default:
		return
	}
	if err := s.students.PushNotification(ctx, studentID, message); err != nil {
		slog.Warn("status updated but notification push failed", "student_id", studentID, "error", err)
	}
}

func isAllowedTransition(from, to application.Status) bool {
	switch from {
	case application.StatusPending:
		return to == application.StatusUnderReview || to == application.StatusInterview ||
			to == application.StatusAccepted || to == application.StatusRejected
	case application.StatusUnderReview:
		return to == application.StatusInterview || to == application.StatusAccepted || to == application.StatusRejected
	case application.StatusInterview:
		return to == application.StatusAccepted || to == application.StatusRejected
	default:
		return false
	}
}

func validateInterview(interview application.Interview) error {
	fields := map[string]string{}
	if interview.Date.IsZero() {
		fields["date"] = "date is required"
	}
	if interview.Time == "" {
		fields["time"] = "time is required"
	}
	known := false
	for _, t := range application.InterviewTypes {
		if t == interview.Type {
			known = true
			break
		}
	}
	if !known {
		fields["type"] = "type must be phone, video, onsite, virtual, or in-person"
	}
	if len(fields) > 0 {
		return common.NewValidationError("invalid interview", fields)
	}
	return nil
}
