package app

import (
	"context"
	"sort"
	"sync"
	"time"

	"careerbridge/internal/common"
	"careerbridge/internal/domain/application"
	"careerbridge/internal/domain/company"
	"careerbridge/internal/domain/opportunity"
	"careerbridge/internal/domain/student"
)

type fakeStudentRepo struct {
	mu       sync.Mutex
	students map[common.ID]*student.Student
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: make(map[common.ID]*student.Student)}
}

func (r *fakeStudentRepo) Create(ctx context.Context, s student.Student) (*student.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.students {
		if existing.Email == s.Email {
			return nil, common.NewError(common.CodeConflict, "student already exists", nil)
		}
	}
	s.ID = common.NewID()
	now := time.Now().UTC()
	s.CreatedAt, s.UpdatedAt = now, now
	r.students[s.ID] = &s
	return cloneStudent(&s), nil
}

func (r *fakeStudentRepo) GetByID(ctx context.Context, id common.ID) (*student.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.students[id]
	if s == nil {
		return nil, common.NewError(common.CodeNotFound, "student not found", nil)
	}
	return cloneStudent(s), nil
}

func (r *fakeStudentRepo) GetByEmail(ctx context.Context, email string) (*student.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.students {
		if s.Email == email {
			return cloneStudent(s), nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "student not found", nil)
}

func (r *fakeStudentRepo) UpdateProfile(ctx context.Context, s student.Student) (*student.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.students[s.ID] == nil {
		return nil, common.NewError(common.CodeNotFound, "student not found", nil)
	}
	s.UpdatedAt = time.Now().UTC()
	r.students[s.ID] = &s
	return cloneStudent(&s), nil
}

func (r *fakeStudentRepo) UpdatePassword(ctx context.Context, id common.ID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.students[id]
	if s == nil {
		return common.NewError(common.CodeNotFound, "student not found", nil)
	}
	s.PasswordHash = passwordHash
	return nil
}

func (r *fakeStudentRepo) PushApplication(ctx context.Context, studentID, applicationID common.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.students[studentID]
	if s == nil {
		return common.NewError(common.CodeNotFound, "student not found", nil)
	}
	s.Applications = append(s.Applications, applicationID)
	return nil
}

func (r *fakeStudentRepo) PullApplication(ctx context.Context, studentID, applicationID common.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.students[studentID]
	if s == nil {
		return common.NewError(common.CodeNotFound, "student not found", nil)
	}
	s.Applications = removeID(s.Applications, applicationID)
	return nil
}

func (r *fakeStudentRepo) SaveOpportunity(ctx context.Context, studentID, opportunityID common.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.students[studentID]
	if s == nil {
		return common.NewError(common.CodeNotFound, "student not found", nil)
	}
	for _, saved := range s.SavedOpportunities {
		if saved == opportunityID {
			return nil
		}
	}
	s.SavedOpportunities = append(s.SavedOpportunities, opportunityID)
	return nil
}

func (r *fakeStudentRepo) UnsaveOpportunity(ctx context.Context, studentID, opportunityID common.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.students[studentID]
	if s == nil {
		return common.NewError(common.CodeNotFound, "student not found", nil)
	}
	s.SavedOpportunities = removeID(s.SavedOpportunities, opportunityID)
	return nil
}

func (r *fakeStudentRepo) UnsaveOpportunityForAll(ctx context.Context, opportunityID common.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.students {
		s.SavedOpportunities = removeID(s.SavedOpportunities, opportunityID)
	}
	return nil
}

func (r *fakeStudentRepo) PushNotification(ctx context.Context, studentID common.ID, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.students[studentID]
	if s == nil {
		return common.NewError(common.CodeNotFound, "student not found", nil)
	}
	s.Notifications = append(s.Notifications, message)
	return nil
}

func (r *fakeStudentRepo) SetNotifications(ctx context.Context, studentID common.ID, notifications []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.students[studentID]
	if s == nil {
		return common.NewError(common.CodeNotFound, "student not found", nil)
	}
	s.Notifications = append([]string(nil), notifications...)
	return nil
}

func cloneStudent(s *student.Student) *student.Student {
	copy := *s
	copy.Skills = append([]string(nil), s.Skills...)
	copy.SavedOpportunities = append([]common.ID(nil), s.SavedOpportunities...)
	copy.Applications = append([]common.ID(nil), s.Applications...)
	copy.Notifications = append([]string(nil), s.Notifications...)
	return &copy
}

type fakeCompanyRepo struct {
	mu        sync.Mutex
	companies map[common.ID]*company.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: make(map[common.ID]*company.Company)}
}

func (r *fakeCompanyRepo) Create(ctx context.Context, c company.Company) (*company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.companies {
		if existing.Email == c.Email {
			return nil, common.NewError(common.CodeConflict, "company already exists", nil)
		}
	}
	c.ID = common.NewID()
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now
	r.companies[c.ID] = &c
	return cloneCompany(&c), nil
}

func (r *fakeCompanyRepo) GetByID(ctx context.Context, id common.ID) (*company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.companies[id]
	if c == nil {
		return nil, common.NewError(common.CodeNotFound, "company not found", nil)
	}
	return cloneCompany(c), nil
}

func (r *fakeCompanyRepo) GetByEmail(ctx context.Context, email string) (*company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.companies {
		if c.Email == email {
			return cloneCompany(c), nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "company not found", nil)
}

func (r *fakeCompanyRepo) UpdateProfile(ctx context.Context, c company.Company) (*company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.companies[c.ID] == nil {
		return nil, common.NewError(common.CodeNotFound, "company not found", nil)
	}
	c.UpdatedAt = time.Now().UTC()
	r.companies[c.ID] = &c
	return cloneCompany(&c), nil
}

func (r *fakeCompanyRepo) UpdatePassword(ctx context.Context, id common.ID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.companies[id]
	if c == nil {
		return common.NewError(common.CodeNotFound, "company not found", nil)
	}
	c.PasswordHash = passwordHash
	return nil
}

func (r *fakeCompanyRepo) SetLogo(ctx context.Context, id common.ID, logoURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.companies[id]
	if c == nil {
		return common.NewError(common.CodeNotFound, "company not found", nil)
	}
	c.Logo = logoURL
	return nil
}

func (r *fakeCompanyRepo) PushOpportunity(ctx context.Context, companyID, opportunityID common.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.companies[companyID]
	if c == nil {
		return common.NewError(common.CodeNotFound, "company not found", nil)
	}
	c.Opportunities = append(c.Opportunities, opportunityID)
	return nil
}

func (r *fakeCompanyRepo) PullOpportunity(ctx context.Context, companyID, opportunityID common.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.companies[companyID]
	if c == nil {
		return common.NewError(common.CodeNotFound, "company not found", nil)
	}
	c.Opportunities = removeID(c.Opportunities, opportunityID)
	return nil
}

func cloneCompany(c *company.Company) *company.Company {
	copy := *c
	copy.Opportunities = append([]common.ID(nil), c.Opportunities...)
	return &copy
}

type fakeOpportunityRepo struct {
	mu            sync.Mutex
	opportunities map[common.ID]*opportunity.Opportunity
	companies     *fakeCompanyRepo
}

func newFakeOpportunityRepo(companies *fakeCompanyRepo) *fakeOpportunityRepo {
	return &fakeOpportunityRepo{
		opportunities: make(map[common.ID]*opportunity.Opportunity),
		companies:     companies,
	}
}

func (r *fakeOpportunityRepo) Create(ctx context.Context, o opportunity.Opportunity) (*opportunity.Opportunity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o.ID = common.NewID()
	now := time.Now().UTC()
	o.CreatedAt, o.UpdatedAt = now, now
	r.opportunities[o.ID] = &o
	return cloneOpportunity(&o), nil
}

func (r *fakeOpportunityRepo) Update(ctx context.Context, o opportunity.Opportunity) (*opportunity.Opportunity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current := r.opportunities[o.ID]
	if current == nil {
		return nil, common.NewError(common.CodeNotFound, "opportunity not found", nil)
	}
	o.CreatedAt = current.CreatedAt
	o.UpdatedAt = time.Now().UTC()
	r.opportunities[o.ID] = &o
	return cloneOpportunity(&o), nil
}

func (r *fakeOpportunityRepo) Delete(ctx context.Context, id common.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.opportunities[id] == nil {
		return common.NewError(common.CodeNotFound, "opportunity not found", nil)
	}
	delete(r.opportunities, id)
	return nil
}

func (r *fakeOpportunityRepo) GetByID(ctx context.Context, id common.ID) (*opportunity.Opportunity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o := r.opportunities[id]
	if o == nil {
		return nil, common.NewError(common.CodeNotFound, "opportunity not found", nil)
	}
	return cloneOpportunity(o), nil
}

func (r *fakeOpportunityRepo) Search(ctx context.Context, f opportunity.Filter) ([]opportunity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	listings := make([]opportunity.Listing, 0)
	for _, o := range r.opportunities {
		companyName := ""
		summary := opportunity.CompanySummary{}
		if c, err := r.companies.GetByID(ctx, o.CompanyID); err == nil {
			companyName = c.Name
			summary = opportunity.CompanySummary{ID: c.ID, Name: c.Name, Logo: c.Logo, Industry: c.Industry, Location: c.Location}
		}
		if f.Matches(*o, companyName) {
			listings = append(listings, opportunity.Listing{Opportunity: *cloneOpportunity(o), Company: summary})
		}
	}
	sort.Slice(listings, func(i, j int) bool {
		return listings[i].CreatedAt.After(listings[j].CreatedAt)
	})
	return listings, nil
}

func (r *fakeOpportunityRepo) ListByCompany(ctx context.Context, companyID common.ID, status, opportunityType string) ([]opportunity.Opportunity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]opportunity.Opportunity, 0)
	for _, o := range r.opportunities {
		if o.CompanyID != companyID {
			continue
		}
		if status != "" && string(o.Status) != status {
			continue
		}
		if opportunityType != "" && o.Type != opportunityType {
			continue
		}
		items = append(items, *cloneOpportunity(o))
	}
	return items, nil
}

func (r *fakeOpportunityRepo) PushApplicant(ctx context.Context, opportunityID, studentID common.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o := r.opportunities[opportunityID]
	if o == nil {
		return common.NewError(common.CodeNotFound, "opportunity not found", nil)
	}
	o.Applicants = append(o.Applicants, studentID)
	return nil
}

func (r *fakeOpportunityRepo) PullApplicant(ctx context.Context, opportunityID, studentID common.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o := r.opportunities[opportunityID]
	if o == nil {
		return common.NewError(common.CodeNotFound, "opportunity not found", nil)
	}
	o.Applicants = removeID(o.Applicants, studentID)
	return nil
}

func (r *fakeOpportunityRepo) IncrementAnalytics(ctx context.Context, id common.ID, field string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o := r.opportunities[id]
	if o == nil {
		return common.NewError(common.CodeNotFound, "opportunity not found", nil)
	}
	switch field {
	case "views":
		o.Analytics.Views++
	case "applications":
		o.Analytics.Applications++
	case "interviews":
		o.Analytics.Interviews++
	case "hires":
		o.Analytics.Hires++
	}
	return nil
}

func cloneOpportunity(o *opportunity.Opportunity) *opportunity.Opportunity {
	copy := *o
	copy.Requirements = append([]string(nil), o.Requirements...)
	copy.Tags = append([]string(nil), o.Tags...)
	copy.Applicants = append([]common.ID(nil), o.Applicants...)
	return &copy
}

type fakeApplicationRepo struct {
	mu            sync.Mutex
	applications  map[common.ID]*application.Application
	opportunities *fakeOpportunityRepo
}

func newFakeApplicationRepo(opportunities *fakeOpportunityRepo) *fakeApplicationRepo {
	return &fakeApplicationRepo{
		applications:  make(map[common.ID]*application.Application),
		opportunities: opportunities,
	}
}

func (r *fakeApplicationRepo) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.applications {
		if existing.StudentID == app.StudentID && existing.OpportunityID == app.OpportunityID {
			return nil, common.NewError(common.CodeConflict, "already applied to this opportunity", nil)
		}
	}
	app.ID = common.NewID()
	now := time.Now().UTC()
	app.CreatedAt, app.UpdatedAt, app.LastStatusChange = now, now, now
	r.applications[app.ID] = &app
	return cloneApplication(&app), nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id common.ID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app := r.applications[id]
	if app == nil {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	return cloneApplication(app), nil
}

func (r *fakeApplicationRepo) FindByOpportunityAndStudent(ctx context.Context, opportunityID, studentID common.ID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, app := range r.applications {
		if app.OpportunityID == opportunityID && app.StudentID == studentID {
			return cloneApplication(app), nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "application not found", nil)
}

func (r *fakeApplicationRepo) ListByStudent(ctx context.Context, studentID common.ID) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]application.Application, 0)
	for _, app := range r.applications {
		if app.StudentID == studentID {
			items = append(items, *cloneApplication(app))
		}
	}
	return items, nil
}

func (r *fakeApplicationRepo) ListByCompany(ctx context.Context, companyID common.ID) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]application.Application, 0)
	for _, app := range r.applications {
		o, err := r.opportunities.GetByID(ctx, app.OpportunityID)
		if err != nil {
			continue
		}
		if o.CompanyID == companyID {
			items = append(items, *cloneApplication(app))
		}
	}
	return items, nil
}

func (r *fakeApplicationRepo) ListByOpportunities(ctx context.Context, opportunityIDs []common.ID) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[common.ID]struct{}, len(opportunityIDs))
	for _, id := range opportunityIDs {
		wanted[id] = struct{}{}
	}
	items := make([]application.Application, 0)
	for _, app := range r.applications {
		if _, ok := wanted[app.OpportunityID]; ok {
			items = append(items, *cloneApplication(app))
		}
	}
	return items, nil
}

func (r *fakeApplicationRepo) UpdateStatus(ctx context.Context, id common.ID, status application.Status, updatedBy common.ID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app := r.applications[id]
	if app == nil {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	app.Status = status
	if updatedBy != "" {
		app.LastUpdatedBy = updatedBy
	}
	app.LastStatusChange = time.Now().UTC()
	app.UpdatedAt = app.LastStatusChange
	return cloneApplication(app), nil
}

func (r *fakeApplicationRepo) SetInterview(ctx context.Context, id common.ID, interview application.Interview, round application.InterviewRound, updatedBy common.ID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app := r.applications[id]
	if app == nil {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	app.Interview = &interview
	app.InterviewRounds = append(app.InterviewRounds, round)
	app.Status = application.StatusInterview
	app.LastUpdatedBy = updatedBy
	app.LastStatusChange = time.Now().UTC()
	app.UpdatedAt = app.LastStatusChange
	return cloneApplication(app), nil
}

func (r *fakeApplicationRepo) PushNote(ctx context.Context, id common.ID, note application.Note) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app := r.applications[id]
	if app == nil {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	app.Notes = append(app.Notes, note)
	return cloneApplication(app), nil
}

func (r *fakeApplicationRepo) Delete(ctx context.Context, id common.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.applications[id] == nil {
		return common.NewError(common.CodeNotFound, "application not found", nil)
	}
	delete(r.applications, id)
	return nil
}

func cloneApplication(app *application.Application) *application.Application {
	copy := *app
	if app.Interview != nil {
		interview := *app.Interview
		copy.Interview = &interview
	}
	copy.InterviewRounds = append([]application.InterviewRound(nil), app.InterviewRounds...)
	copy.Notes = append([]application.Note(nil), app.Notes...)
	return &copy
}

func removeID(ids []common.ID, target common.ID) []common.ID {
	filtered := ids[:0]
	for _, id := range ids {
		if id != target {
			filtered = append(filtered, id)
		}
	}
	return filtered
}
