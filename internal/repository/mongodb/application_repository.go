package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"careerbridge/internal/common"
	"careerbridge/internal/domain/application"
)

type interviewDocument struct {
	Date        time.Time `bson:"date"`
	Time        string    `bson:"time"`
	Type        string    `bson:"type"`
	Link        string    `bson:"link,omitempty"`
	Notes       string    `bson:"notes,omitempty"`
	Status      string    `bson:"status"`
	Feedback    string    `bson:"feedback,omitempty"`
	Interviewer string    `bson:"interviewer,omitempty"`
}

type interviewRoundDocument struct {
	Round             int `bson:"round"`
	interviewDocument `bson:",inline"`
}

type noteDocument struct {
	Text    string        `bson:"text"`
	AddedBy bson.ObjectID `bson:"addedBy"`
	Date    time.Time     `bson:"date"`
}

type applicationDocument struct {
	ID               bson.ObjectID            `bson:"_id,omitempty"`
	Student          bson.ObjectID            `bson:"student"`
	Opportunity      bson.ObjectID            `bson:"opportunity"`
	Status           string                   `bson:"status"`
	Resume           string                   `bson:"resume,omitempty"`
	CoverLetter      string                   `bson:"coverLetter,omitempty"`
	Interview        *interviewDocument       `bson:"interview,omitempty"`
	InterviewRounds  []interviewRoundDocument `bson:"interviewRounds"`
	Notes            []noteDocument           `bson:"notes"`
	LastUpdatedBy    bson.ObjectID            `bson:"lastUpdatedBy,omitempty"`
	LastStatusChange time.Time                `bson:"lastStatusChange"`
	CreatedAt        time.Time                `bson:"createdAt"`
	UpdatedAt        time.Time                `bson:"updatedAt"`
}

func (d interviewDocument) toDomain() application.Interview {
	return application.Interview{
		Date:        d.Date,
		Time:        d.Time,
		Type:        d.Type,
		Link:        d.Link,
		Notes:       d.Notes,
		Status:      d.Status,
		Feedback:    d.Feedback,
		Interviewer: d.Interviewer,
	}
}

func fromDomainInterview(i application.Interview) interviewDocument {
	return interviewDocument{
		Date:        i.Date,
		Time:        i.Time,
		Type:        i.Type,
		Link:        i.Link,
		Notes:       i.Notes,
		Status:      i.Status,
		Feedback:    i.Feedback,
		Interviewer: i.Interviewer,
	}
}

func (d applicationDocument) toDomain() *application.Application {
	app := &application.Application{
		ID:               common.ID(d.ID.Hex()),
		StudentID:        common.ID(d.Student.Hex()),
		OpportunityID:    common.ID(d.Opportunity.Hex()),
		Status:           application.Normalize(application.Status(d.Status)),
		Resume:           d.Resume,
		CoverLetter:      d.CoverLetter,
		InterviewRounds:  make([]application.InterviewRound, 0, len(d.InterviewRounds)),
		Notes:            make([]application.Note, 0, len(d.Notes)),
		LastStatusChange: d.LastStatusChange,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
	if d.Interview != nil {
		interview := d.Interview.toDomain()
		app.Interview = &interview
	}
	for _, round := range d.InterviewRounds {
		app.InterviewRounds = append(app.InterviewRounds, application.InterviewRound{
			Round:     round.Round,
			Interview: round.interviewDocument.toDomain(),
		})
	}
	for _, note := range d.Notes {
		app.Notes = append(app.Notes, application.Note{
			Text:    note.Text,
			AddedBy: common.ID(note.AddedBy.Hex()),
			Date:    note.Date,
		})
	}
	if !d.LastUpdatedBy.IsZero() {
		app.LastUpdatedBy = common.ID(d.LastUpdatedBy.Hex())
	}
	return app
}

type ApplicationRepository struct {
	col *mongo.Collection
}

func NewApplicationRepository(db *mongo.Database) *ApplicationRepository {
	return &ApplicationRepository{col: db.Collection(applicationsCollection)}
}

func (r *ApplicationRepository) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	studentOID, err := app.StudentID.ObjectID()
	if err != nil {
		return nil, err
	}
	opportunityOID, err := app.OpportunityID.ObjectID()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	doc := applicationDocument{
		ID:               bson.NewObjectID(),
		Student:          studentOID,
		Opportunity:      opportunityOID,
		Status:           string(app.Status),
		Resume:           app.Resume,
		CoverLetter:      app.CoverLetter,
		InterviewRounds:  []interviewRoundDocument{},
		Notes:            []noteDocument{},
		LastStatusChange: now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, common.NewError(common.CodeConflict, "already applied", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create application", err)
	}
	return doc.toDomain(), nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id common.ID) (*application.Application, error) {
	oid, err := id.ObjectID()
	if err != nil {
		return nil, err
	}
	var doc applicationDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	return doc.toDomain(), nil
}

func (r *ApplicationRepository) FindByOpportunityAndStudent(ctx context.Context, opportunityID, studentID common.ID) (*application.Application, error) {
	opportunityOID, err := opportunityID.ObjectID()
	if err != nil {
		return nil, err
	}
	studentOID, err := studentID.ObjectID()
	if err != nil {
		return nil, err
	}
	var doc applicationDocument
	if err := r.col.FindOne(ctx, bson.M{"opportunity": opportunityOID, "student": studentOID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	return doc.toDomain(), nil
}

func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID common.ID) ([]application.Application, error) {
	studentOID, err := studentID.ObjectID()
	if err != nil {
		return nil, err
	}
	return r.list(ctx, bson.M{"student": studentOID})
}

// ListByCompany joins the opportunities collection so only applications to
// the company's own postings come back.
func (r *ApplicationRepository) ListByCompany(ctx context.Context, companyID common.ID) ([]application.Application, error) {
	companyOID, err := companyID.ObjectID()
	if err != nil {
		return nil, err
	}
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         opportunitiesCollection,
			"localField":   "opportunity",
			"foreignField": "_id",
			"as":           "opportunityData",
		}}},
		bson.D{{Key: "$match", Value: bson.M{"opportunityData.company": companyOID}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
	}
	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list company applications", err)
	}
	defer cursor.Close(ctx)

	var docs []applicationDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to decode applications", err)
	}
	items := make([]application.Application, 0, len(docs))
	for _, doc := range docs {
		items = append(items, *doc.toDomain())
	}
	return items, nil
}

func (r *ApplicationRepository) ListByOpportunities(ctx context.Context, opportunityIDs []common.ID) ([]application.Application, error) {
	oids, err := objectIDs(opportunityIDs)
	if err != nil {
		return nil, err
	}
	return r.list(ctx, bson.M{"opportunity": bson.M{"$in": oids}})
}

func (r *ApplicationRepository) list(ctx context.Context, query bson.M) ([]application.Application, error) {
	cursor, err := r.col.Find(ctx, query)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	defer cursor.Close(ctx)

	var docs []applicationDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to decode applications", err)
	}
	items := make([]application.Application, 0, len(docs))
	for _, doc := range docs {
		items = append(items, *doc.toDomain())
	}
	return items, nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id common.ID, status application.Status, updatedBy common.ID) (*application.Application, error) {
	oid, err := id.ObjectID()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	set := bson.M{
		"status":           string(status),
		"lastStatusChange": now,
		"updatedAt":        now,
	}
	if updatedBy != "" {
		updatedByOID, err := updatedBy.ObjectID()
		if err != nil {
			return nil, err
		}
		set["lastUpdatedBy"] = updatedByOID
	}
	if _, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": set}); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update application", err)
	}
	return r.GetByID(ctx, id)
}

func (r *ApplicationRepository) SetInterview(ctx context.Context, id common.ID, interview application.Interview, round application.InterviewRound, updatedBy common.ID) (*application.Application, error) {
	oid, err := id.ObjectID()
	if err != nil {
		return nil, err
	}
	updatedByOID, err := updatedBy.ObjectID()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	interviewDoc := fromDomainInterview(interview)
	roundDoc := interviewRoundDocument{Round: round.Round, interviewDocument: fromDomainInterview(round.Interview)}
	update := bson.M{
		"$set": bson.M{
			"interview":        interviewDoc,
			"status":           string(application.StatusInterview),
			"lastUpdatedBy":    updatedByOID,
			"lastStatusChange": now,
			"updatedAt":        now,
		},
		"$push": bson.M{"interviewRounds": roundDoc},
	}
	if _, err := r.col.UpdateByID(ctx, oid, update); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to schedule interview", err)
	}
	return r.GetByID(ctx, id)
}

func (r *ApplicationRepository) PushNote(ctx context.Context, id common.ID, note application.Note) (*application.Application, error) {
	oid, err := id.ObjectID()
	if err != nil {
		return nil, err
	}
	addedByOID, err := note.AddedBy.ObjectID()
	if err != nil {
		return nil, err
	}
	update := bson.M{
		"$push": bson.M{"notes": noteDocument{Text: note.Text, AddedBy: addedByOID, Date: note.Date}},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	if _, err := r.col.UpdateByID(ctx, oid, update); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to add note", err)
	}
	return r.GetByID(ctx, id)
}

func (r *ApplicationRepository) Delete(ctx context.Context, id common.ID) error {
	oid, err := id.ObjectID()
	if err != nil {
		return err
	}
	result, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete application", err)
	}
	if result.DeletedCount == 0 {
		return common.NewError(common.CodeNotFound, "application not found", nil)
	}
	return nil
}
