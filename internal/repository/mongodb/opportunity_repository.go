package mongodb

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"careerbridge/internal/common"
	"careerbridge/internal/domain/opportunity"
)

type salaryDocument struct {
	Min      int    `bson:"min,omitempty"`
	Max      int    `bson:"max,omitempty"`
	Currency string `bson:"currency,omitempty"`
}

type analyticsDocument struct {
	Views        int `bson:"views"`
	Applications int `bson:"applications"`
	Interviews   int `bson:"interviews"`
	Hires        int `bson:"hires"`
}

type opportunityDocument struct {
	ID              bson.ObjectID     `bson:"_id,omitempty"`
	Company         bson.ObjectID     `bson:"company"`
	Title           string            `bson:"title"`
	Description     string            `bson:"description"`
	Requirements    []string          `bson:"requirements"`
	Location        string            `bson:"location,omitempty"`
	Category        string            `bson:"category"`
	Type            string            `bson:"opportunityType"`
	ExperienceLevel string            `bson:"experienceLevel"`
	Tags            []string          `bson:"tags"`
	Salary          salaryDocument    `bson:"salary"`
	Duration        string            `bson:"duration,omitempty"`
	Deadline        *time.Time        `bson:"deadline,omitempty"`
	Status          string            `bson:"status"`
	Applicants      []bson.ObjectID   `bson:"applicants"`
	Analytics       analyticsDocument `bson:"analytics"`
	LastUpdatedBy   bson.ObjectID     `bson:"lastUpdatedBy,omitempty"`
	CreatedAt       time.Time         `bson:"createdAt"`
	UpdatedAt       time.Time         `bson:"updatedAt"`
}

type listingDocument struct {
	opportunityDocument `bson:",inline"`
	CompanyData         []companyDocument `bson:"companyData"`
}

func (d opportunityDocument) toDomain() opportunity.Opportunity {
	o := opportunity.Opportunity{
		ID:              common.ID(d.ID.Hex()),
		CompanyID:       common.ID(d.Company.Hex()),
		Title:           d.Title,
		Description:     d.Description,
		Requirements:    d.Requirements,
		Location:        d.Location,
		Category:        d.Category,
		Type:            d.Type,
		ExperienceLevel: d.ExperienceLevel,
		Tags:            d.Tags,
		Salary:          opportunity.Salary{Min: d.Salary.Min, Max: d.Salary.Max, Currency: d.Salary.Currency},
		Duration:        d.Duration,
		Deadline:        d.Deadline,
		Status:          opportunity.Status(d.Status),
		Applicants:      idsFromObjectIDs(d.Applicants),
		Analytics:       opportunity.Analytics(d.Analytics),
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
	if !d.LastUpdatedBy.IsZero() {
		o.LastUpdatedBy = common.ID(d.LastUpdatedBy.Hex())
	}
	return o
}

func fromDomainOpportunity(o opportunity.Opportunity) (opportunityDocument, error) {
	companyOID, err := o.CompanyID.ObjectID()
	if err != nil {
		return opportunityDocument{}, err
	}
	applicants, err := objectIDs(o.Applicants)
	if err != nil {
		return opportunityDocument{}, err
	}
	doc := opportunityDocument{
		Company:         companyOID,
		Title:           o.Title,
		Description:     o.Description,
		Requirements:    o.Requirements,
		// Stored trimmed so the anchored location regex in Search stays in
		// step with Filter.Matches, which trims both sides.
		Location:        strings.TrimSpace(o.Location),
		Category:        o.Category,
		Type:            o.Type,
		ExperienceLevel: o.ExperienceLevel,
		Tags:            o.Tags,
		Salary:          salaryDocument{Min: o.Salary.Min, Max: o.Salary.Max, Currency: o.Salary.Currency},
		Duration:        o.Duration,
		Deadline:        o.Deadline,
		Status:          string(o.Status),
		Applicants:      applicants,
		Analytics:       analyticsDocument(o.Analytics),
	}
	if o.LastUpdatedBy != "" {
		oid, err := o.LastUpdatedBy.ObjectID()
		if err != nil {
			return opportunityDocument{}, err
		}
		doc.LastUpdatedBy = oid
	}
	return doc, nil
}

type OpportunityRepository struct {
	col *mongo.Collection
}

func NewOpportunityRepository(db *mongo.Database) *OpportunityRepository {
	return &OpportunityRepository{col: db.Collection(opportunitiesCollection)}
}

func (r *OpportunityRepository) Create(ctx context.Context, o opportunity.Opportunity) (*opportunity.Opportunity, error) {
	doc, err := fromDomainOpportunity(o)
	if err != nil {
		return nil, err
	}
	doc.ID = bson.NewObjectID()
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now
	if doc.Requirements == nil {
		doc.Requirements = []string{}
	}
	if doc.Tags == nil {
		doc.Tags = []string{}
	}
	if doc.Applicants == nil {
		doc.Applicants = []bson.ObjectID{}
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create opportunity", err)
	}
	created := doc.toDomain()
	return &created, nil
}

func (r *OpportunityRepository) Update(ctx context.Context, o opportunity.Opportunity) (*opportunity.Opportunity, error) {
	oid, err := o.ID.ObjectID()
	if err != nil {
		return nil, err
	}
	doc, err := fromDomainOpportunity(o)
	if err != nil {
		return nil, err
	}
	update := bson.M{"$set": bson.M{
		"title":           doc.Title,
		"description":     doc.Description,
		"requirements":    doc.Requirements,
		"location":        doc.Location,
		"category":        doc.Category,
		"opportunityType": doc.Type,
		"experienceLevel": doc.ExperienceLevel,
		"tags":            doc.Tags,
		"salary":          doc.Salary,
		"duration":        doc.Duration,
		"deadline":        doc.Deadline,
		"status":          doc.Status,
		"lastUpdatedBy":   doc.LastUpdatedBy,
		"updatedAt":       time.Now().UTC(),
	}}
	if _, err := r.col.UpdateByID(ctx, oid, update); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update opportunity", err)
	}
	return r.GetByID(ctx, o.ID)
}

func (r *OpportunityRepository) Delete(ctx context.Context, id common.ID) error {
	oid, err := id.ObjectID()
	if err != nil {
		return err
	}
	result, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete opportunity", err)
	}
	if result.DeletedCount == 0 {
		return common.NewError(common.CodeNotFound, "opportunity not found", nil)
	}
	return nil
}

func (r *OpportunityRepository) GetByID(ctx context.Context, id common.ID) (*opportunity.Opportunity, error) {
	oid, err := id.ObjectID()
	if err != nil {
		return nil, err
	}
	var doc opportunityDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.NewError(common.CodeNotFound, "opportunity not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load opportunity", err)
	}
	item := doc.toDomain()
	return &item, nil
}

// Search translates the domain filter into a Mongo query. When the search
// term is present every other parameter is dropped and matching joins the
// companies collection to cover company names, mirroring Filter.Matches.
func (r *OpportunityRepository) Search(ctx context.Context, f opportunity.Filter) ([]opportunity.Listing, error) {
	if f.Search != "" {
		return r.searchByTerm(ctx, f.Search)
	}

	query := bson.M{}
	if f.Category != "" {
		query["category"] = f.Category
	}
	if f.Status != "" {
		query["status"] = f.Status
	}
	if f.ExperienceLevel != "" {
		query["experienceLevel"] = f.ExperienceLevel
	}
	if f.Location != "" {
		query["location"] = bson.M{
			"$regex":   "^" + regexp.QuoteMeta(strings.TrimSpace(f.Location)) + "$",
			"$options": "i",
		}
	}
	if len(f.Types) > 0 {
		types := make([]string, 0, len(f.Types))
		for _, t := range f.Types {
			types = append(types, strings.ToLower(strings.TrimSpace(t)))
		}
		query["opportunityType"] = bson.M{"$in": types}
	}
	if len(f.Tags) > 0 {
		query["tags"] = bson.M{"$in": f.Tags}
	}
	if f.MinSalary != nil {
		query["salary.min"] = bson.M{"$gte": *f.MinSalary}
	}
	if f.MaxSalary != nil {
		query["salary.max"] = bson.M{"$lte": *f.MaxSalary}
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: query}},
		lookupCompanyStage(),
		bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
	}
	return r.aggregateListings(ctx, pipeline)
}

func (r *OpportunityRepository) searchByTerm(ctx context.Context, term string) ([]opportunity.Listing, error) {
	pattern := regexp.QuoteMeta(term)
	pipeline := mongo.Pipeline{
		lookupCompanyStage(),
		bson.D{{Key: "$match", Value: bson.M{"$or": []bson.M{
			{"title": bson.M{"$regex": pattern, "$options": "i"}},
			{"companyData.name": bson.M{"$regex": pattern, "$options": "i"}},
		}}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
	}
	return r.aggregateListings(ctx, pipeline)
}

func lookupCompanyStage() bson.D {
	return bson.D{{Key: "$lookup", Value: bson.M{
		"from":         companiesCollection,
		"localField":   "company",
		"foreignField": "_id",
		"as":           "companyData",
	}}}
}

func (r *OpportunityRepository) aggregateListings(ctx context.Context, pipeline mongo.Pipeline) ([]opportunity.Listing, error) {
	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to search opportunities", err)
	}
	defer cursor.Close(ctx)

	var docs []listingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to decode opportunities", err)
	}
	listings := make([]opportunity.Listing, 0, len(docs))
	for _, doc := range docs {
		listing := opportunity.Listing{Opportunity: doc.toDomain()}
		if len(doc.CompanyData) > 0 {
			c := doc.CompanyData[0]
			listing.Company = opportunity.CompanySummary{
				ID:       common.ID(c.ID.Hex()),
				Name:     c.Name,
				Logo:     c.Logo,
				Industry: c.Industry,
				Location: c.Location,
			}
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

func (r *OpportunityRepository) ListByCompany(ctx context.Context, companyID common.ID, status, opportunityType string) ([]opportunity.Opportunity, error) {
	oid, err := companyID.ObjectID()
	if err != nil {
		return nil, err
	}
	query := bson.M{"company": oid}
	if status != "" {
		query["status"] = status
	}
	if opportunityType != "" {
		query["opportunityType"] = opportunityType
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list opportunities", err)
	}
	defer cursor.Close(ctx)

	var docs []opportunityDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to decode opportunities", err)
	}
	items := make([]opportunity.Opportunity, 0, len(docs))
	for _, doc := range docs {
		items = append(items, doc.toDomain())
	}
	return items, nil
}

func (r *OpportunityRepository) PushApplicant(ctx context.Context, opportunityID, studentID common.ID) error {
	return r.updateApplicants(ctx, opportunityID, "$push", studentID)
}

func (r *OpportunityRepository) PullApplicant(ctx context.Context, opportunityID, studentID common.ID) error {
	return r.updateApplicants(ctx, opportunityID, "$pull", studentID)
}

func (r *OpportunityRepository) updateApplicants(ctx context.Context, opportunityID common.ID, op string, studentID common.ID) error {
	oid, err := opportunityID.ObjectID()
	if err != nil {
		return err
	}
	studentOID, err := studentID.ObjectID()
	if err != nil {
		return err
	}
	if _, err := r.col.UpdateByID(ctx, oid, bson.M{op: bson.M{"applicants": studentOID}}); err != nil {
		return common.NewError(common.CodeInternal, "failed to update applicants", err)
	}
	return nil
}

func (r *OpportunityRepository) IncrementAnalytics(ctx context.Context, id common.ID, field string) error {
	oid, err := id.ObjectID()
	if err != nil {
		return err
	}
	if _, err := r.col.UpdateByID(ctx, oid, bson.M{"$inc": bson.M{"analytics." + field: 1}}); err != nil {
		return common.NewError(common.CodeInternal, "failed to update analytics", err)
	}
	return nil
}
