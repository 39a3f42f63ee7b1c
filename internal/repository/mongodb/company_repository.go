package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"careerbridge/internal/common"
	"careerbridge/internal/domain/company"
)

type companyDocument struct {
	ID            bson.ObjectID   `bson:"_id,omitempty"`
	Name          string          `bson:"name"`
	Email         string          `bson:"email"`
	Password      string          `bson:"password"`
	Industry      string          `bson:"industry,omitempty"`
	Location      string          `bson:"location,omitempty"`
	Description   string          `bson:"description,omitempty"`
	Website       string          `bson:"website,omitempty"`
	ContactEmail  string          `bson:"contactEmail,omitempty"`
	Logo          string          `bson:"logo,omitempty"`
	Opportunities []bson.ObjectID `bson:"opportunities"`
	CreatedAt     time.Time       `bson:"createdAt"`
	UpdatedAt     time.Time       `bson:"updatedAt"`
}

func (d companyDocument) toDomain() *company.Company {
	return &company.Company{
		ID:            common.ID(d.ID.Hex()),
		Name:          d.Name,
		Email:         d.Email,
		PasswordHash:  d.Password,
		Industry:      d.Industry,
		Location:      d.Location,
		Description:   d.Description,
		Website:       d.Website,
		ContactEmail:  d.ContactEmail,
		Logo:          d.Logo,
		Opportunities: idsFromObjectIDs(d.Opportunities),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

type CompanyRepository struct {
	col *mongo.Collection
}

func NewCompanyRepository(db *mongo.Database) *CompanyRepository {
	return &CompanyRepository{col: db.Collection(companiesCollection)}
}

func (r *CompanyRepository) Create(ctx context.Context, c company.Company) (*company.Company, error) {
	now := time.Now().UTC()
	doc := companyDocument{
		ID:            bson.NewObjectID(),
		Name:          c.Name,
		Email:         c.Email,
		Password:      c.PasswordHash,
		Opportunities: []bson.ObjectID{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, common.NewError(common.CodeConflict, "company already exists", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create company", err)
	}
	return doc.toDomain(), nil
}

func (r *CompanyRepository) GetByID(ctx context.Context, id common.ID) (*company.Company, error) {
	oid, err := id.ObjectID()
	if err != nil {
		return nil, err
	}
	var doc companyDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.NewError(common.CodeNotFound, "company not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load company", err)
	}
	return doc.toDomain(), nil
}

func (r *CompanyRepository) GetByEmail(ctx context.Context, email string) (*company.Company, error) {
	var doc companyDocument
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.NewError(common.CodeNotFound, "company not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load company", err)
	}
	return doc.toDomain(), nil
}

func (r *CompanyRepository) UpdateProfile(ctx context.Context, c company.Company) (*company.Company, error) {
	oid, err := c.ID.ObjectID()
	if err != nil {
		return nil, err
	}
	update := bson.M{"$set": bson.M{
		"name":         c.Name,
		"industry":     c.Industry,
		"location":     c.Location,
		"description":  c.Description,
		"website":      c.Website,
		"contactEmail": c.ContactEmail,
		"updatedAt":    time.Now().UTC(),
	}}
	if _, err := r.col.UpdateByID(ctx, oid, update); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update company", err)
	}
	return r.GetByID(ctx, c.ID)
}

func (r *CompanyRepository) UpdatePassword(ctx context.Context, id common.ID, passwordHash string) error {
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

func (r *CompanyRepository) SetLogo(ctx context.Context, id common.ID, logoURL string) error {
	oid, err := id.ObjectID()
	if err != nil {
		return err
	}
	update := bson.M{"$set": bson.M{"logo": logoURL, "updatedAt": time.Now().UTC()}}
	if _, err := r.col.UpdateByID(ctx, oid, update); err != nil {
		return common.NewError(common.CodeInternal, "failed to set logo", err)
	}
	return nil
}

func (r *CompanyRepository) PushOpportunity(ctx context.Context, companyID, opportunityID common.ID) error {
	return r.updateByID(ctx, companyID, "$push", opportunityID)
}

func (r *CompanyRepository) PullOpportunity(ctx context.Context, companyID, opportunityID common.ID) error {
	return r.updateByID(ctx, companyID, "$pull", opportunityID)
}

func (r *CompanyRepository) updateByID(ctx context.Context, companyID common.ID, op string, opportunityID common.ID) error {
	oid, err := companyID.ObjectID()
	if err != nil {
		return err
	}
	oppOID, err := opportunityID.ObjectID()
	if err != nil {
		return err
	}
	if _, err := r.col.UpdateByID(ctx, oid, bson.M{op: bson.M{"opportunities": oppOID}}); err != nil {
		return common.NewError(common.CodeInternal, "failed to update company", err)
	}
	return nil
}
