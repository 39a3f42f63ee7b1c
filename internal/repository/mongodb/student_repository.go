package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"careerbridge/internal/common"
	"careerbridge/internal/domain/student"
)

type studentDocument struct {
	ID                 bson.ObjectID    `bson:"_id,omitempty"`
	Name               string           `bson:"name"`
	Email              string           `bson:"email"`
	Password           string           `bson:"password"`
	Phone              string           `bson:"phone,omitempty"`
	Title              string           `bson:"title,omitempty"`
	Location           string           `bson:"location,omitempty"`
	ProfileImage       string           `bson:"profileImage,omitempty"`
	Skills             []string         `bson:"skills"`
	ExperienceLevel    string           `bson:"experienceLevel"`
	Education          []map[string]any `bson:"education"`
	Experience         []map[string]any `bson:"experience"`
	SavedOpportunities []bson.ObjectID  `bson:"savedOpportunities"`
	Applications       []bson.ObjectID  `bson:"applications"`
	Notifications      []string         `bson:"notifications"`
	CreatedAt          time.Time        `bson:"createdAt"`
	UpdatedAt          time.Time        `bson:"updatedAt"`
}

func (d studentDocument) toDomain() *student.Student {
	return &student.Student{
		ID:                 common.ID(d.ID.Hex()),
		Name:               d.Name,
		Email:              d.Email,
		PasswordHash:       d.Password,
		Phone:              d.Phone,
		Title:              d.Title,
		Location:           d.Location,
		ProfileImage:       d.ProfileImage,
		Skills:             d.Skills,
		ExperienceLevel:    d.ExperienceLevel,
		Education:          d.Education,
		Experience:         d.Experience,
		SavedOpportunities: idsFromObjectIDs(d.SavedOpportunities),
		Applications:       idsFromObjectIDs(d.Applications),
		Notifications:      d.Notifications,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}

type StudentRepository struct {
	col *mongo.Collection
}

func NewStudentRepository(db *mongo.Database) *StudentRepository {
	return &StudentRepository{col: db.Collection(studentsCollection)}
}

func (r *StudentRepository) Create(ctx context.Context, s student.Student) (*student.Student, error) {
	now := time.Now().UTC()
	doc := studentDocument{
		ID:                 bson.NewObjectID(),
		Name:               s.Name,
		Email:              s.Email,
		Password:           s.PasswordHash,
		Skills:             []string{},
		ExperienceLevel:    "entry",
		Education:          []map[string]any{},
		Experience:         []map[string]any{},
		SavedOpportunities: []bson.ObjectID{},
		Applications:       []bson.ObjectID{},
		Notifications:      []string{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, common.NewError(common.CodeConflict, "student already exists", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create student", err)
	}
	return doc.toDomain(), nil
}

func (r *StudentRepository) GetByID(ctx context.Context, id common.ID) (*student.Student, error) {
	oid, err := id.ObjectID()
	if err != nil {
		return nil, err
	}
	var doc studentDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.NewError(common.CodeNotFound, "student not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load student", err)
	}
	return doc.toDomain(), nil
}

func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*student.Student, error) {
	var doc studentDocument
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.NewError(common.CodeNotFound, "student not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load student", err)
	}
	return doc.toDomain(), nil
}

func (r *StudentRepository) UpdateProfile(ctx context.Context, s student.Student) (*student.Student, error) {
	oid, err := s.ID.ObjectID()
	if err != nil {
		return nil, err
	}
	update := bson.M{"$set": bson.M{
		"name":            s.Name,
		"phone":           s.Phone,
		"title":           s.Title,
		"location":        s.Location,
		"profileImage":    s.ProfileImage,
		"skills":          s.Skills,
		"experienceLevel": s.ExperienceLevel,
		"education":       s.Education,
		"experience":      s.Experience,
		"updatedAt":       time.Now().UTC(),
	}}
	if _, err := r.col.UpdateByID(ctx, oid, update); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update student", err)
	}
	return r.GetByID(ctx, s.ID)
}

func (r *StudentRepository) UpdatePassword(ctx context.Context, id common.ID, passwordHash string) error {
	oid, err := id.ObjectID()
	if err != nil {
		return err
	}
	update := bson.M{"$set": bson.M{"password": passwordHash, "updatedAt": time.Now().UTC()}}
	if _, err := r.col.UpdateByID(ctx, oid, update); err != nil {
		return common.NewError(common.CodeInternal, "failed to update password", err)
	}
	return nil
}

func (r *StudentRepository) PushApplication(ctx context.Context, studentID, applicationID common.ID) error {
	return r.updateByID(ctx, studentID, "$push", "applications", applicationID)
}

func (r *StudentRepository) PullApplication(ctx context.Context, studentID, applicationID common.ID) error {
	return r.updateByID(ctx, studentID, "$pull", "applications", applicationID)
}

func (r *StudentRepository) SaveOpportunity(ctx context.Context, studentID, opportunityID common.ID) error {
	return r.updateByID(ctx, studentID, "$addToSet", "savedOpportunities", opportunityID)
}

func (r *StudentRepository) UnsaveOpportunity(ctx context.Context, studentID, opportunityID common.ID) error {
	return r.updateByID(ctx, studentID, "$pull", "savedOpportunities", opportunityID)
}

func (r *StudentRepository) UnsaveOpportunityForAll(ctx context.Context, opportunityID common.ID) error {
	oid, err := opportunityID.ObjectID()
	if err != nil {
		return err
	}
	_, err = r.col.UpdateMany(ctx,
		bson.M{"savedOpportunities": oid},
		bson.M{"$pull": bson.M{"savedOpportunities": oid}})
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to unsave opportunity", err)
	}
	return nil
}

func (r *StudentRepository) PushNotification(ctx context.Context, studentID common.ID, message string) error {
	oid, err := studentID.ObjectID()
	if err != nil {
		return err
	}
	if _, err := r.col.UpdateByID(ctx, oid, bson.M{"$push": bson.M{"notifications": message}}); err != nil {
		return common.NewError(common.CodeInternal, "failed to push notification", err)
	}
	return nil
}

func (r *StudentRepository) SetNotifications(ctx context.Context, studentID common.ID, notifications []string) error {
	oid, err := studentID.ObjectID()
	if err != nil {
		return err
	}
	if notifications == nil {
		notifications = []string{}
	}
	if _, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"notifications": notifications}}); err != nil {
		return common.NewError(common.CodeInternal, "failed to set notifications", err)
	}
	return nil
}

func (r *StudentRepository) updateByID(ctx context.Context, studentID common.ID, op, field string, value common.ID) error {
	oid, err := studentID.ObjectID()
	if err != nil {
		return err
	}
	valueOID, err := value.ObjectID()
	if err != nil {
		return err
	}
	if _, err := r.col.UpdateByID(ctx, oid, bson.M{op: bson.M{field: valueOID}}); err != nil {
		return common.NewError(common.CodeInternal, "failed to update student", err)
	}
	return nil
}
