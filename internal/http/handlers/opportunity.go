package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"careerbridge/internal/app"
	"careerbridge/internal/common"
	"careerbridge/internal/domain/opportunity"
	"careerbridge/internal/http/middleware"
)

type OpportunityHandler struct {
	opportunities *app.OpportunityService
}

func NewOpportunityHandler(opportunities *app.OpportunityService) *OpportunityHandler {
	return &OpportunityHandler{opportunities: opportunities}
}

type opportunityRequest struct {
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	Requirements    []string           `json:"requirements"`
	Location        string             `json:"location"`
	Category        string             `json:"category"`
	Type            string             `json:"opportunityType"`
	ExperienceLevel string             `json:"experienceLevel"`
	Tags            []string           `json:"tags"`
	Salary          opportunity.Salary `json:"salary"`
	Duration        string             `json:"duration"`
	Deadline        *time.Time         `json:"deadline"`
	Status          string             `json:"status"`
}

func (r opportunityRequest) toDomain() opportunity.Opportunity {
	return opportunity.Opportunity{
		Title:           r.Title,
		Description:     r.Description,
		Requirements:    r.Requirements,
		Location:        r.Location,
		Category:        r.Category,
		Type:            r.Type,
		ExperienceLevel: r.ExperienceLevel,
		Tags:            r.Tags,
		Salary:          r.Salary,
		Duration:        r.Duration,
		Deadline:        r.Deadline,
		Status:          opportunity.Status(r.Status),
	}
}

func (h *OpportunityHandler) List(c *fiber.Ctx) error {
	filter, err := filterFromQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	items, err := h.opportunities.Search(c.Context(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(items)
}

func (h *OpportunityHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	item, err := h.opportunities.Get(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(item)
}

func (h *OpportunityHandler) Create(c *fiber.Ctx) error {
	companyID, ok := middleware.UserID(c)
	if !ok {
		return writeError(c, errUnauthorized())
	}
	var req opportunityRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, common.NewError(common.CodeValidation, "invalid request body", err))
	}
	created, err := h.opportunities.Create(c.Context(), companyID, req.toDomain())
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *OpportunityHandler) Update(c *fiber.Ctx) error {
	companyID, ok := middleware.UserID(c)
	if !ok {
		return writeError(c, errUnauthorized())
	}
	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var req opportunityRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, common.NewError(common.CodeValidation, "invalid request body", err))
	}
	o := req.toDomain()
	o.ID = id
	updated, err := h.opportunities.Update(c.Context(), companyID, o)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(updated)
}

func (h *OpportunityHandler) Delete(c *fiber.Ctx) error {
	companyID, ok := middleware.UserID(c)
	if !ok {
		return writeError(c, errUnauthorized())
	}
	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.opportunities.Delete(c.Context(), companyID, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "opportunity deleted"})
}

// ListByCompany returns the caller's postings together with aggregate
// dashboard counters, optionally narrowed by status and type.
func (h *OpportunityHandler) ListByCompany(c *fiber.Ctx) error {
	companyID, ok := middleware.UserID(c)
	if !ok {
		return writeError(c, errUnauthorized())
	}
	items, stats, err := h.opportunities.ListByCompany(c.Context(), companyID, c.Query("status"), c.Query("opportunityType"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"opportunities": items, "stats": stats})
}

func (h *OpportunityHandler) Save(c *fiber.Ctx) error {
	studentID, ok := middleware.UserID(c)
	if !ok {
		return writeError(c, errUnauthorized())
	}
	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.opportunities.Save(c.Context(), studentID, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "opportunity saved"})
}

func (h *OpportunityHandler) Unsave(c *fiber.Ctx) error {
	studentID, ok := middleware.UserID(c)
	if !ok {
		return writeError(c, errUnauthorized())
	}
	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.opportunities.Unsave(c.Context(), studentID, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "opportunity removed from saved"})
}

// filterFromQuery maps the listing query string onto a Filter. The skills
// parameter feeds the tags filter, matching what clients already send.
func filterFromQuery(c *fiber.Ctx) (opportunity.Filter, error) {
	filter := opportunity.Filter{
		Category:        c.Query("category"),
		Status:          c.Query("status"),
		ExperienceLevel: c.Query("experienceLevel"),
		Location:        c.Query("location"),
		Search:          c.Query("search"),
		Types:           opportunity.SplitList(c.Query("opportunityType")),
		Tags:            opportunity.SplitList(c.Query("skills")),
	}
	min, err := intQuery(c, "minSalary")
	if err != nil {
		return opportunity.Filter{}, err
	}
	max, err := intQuery(c, "maxSalary")
	if err != nil {
		return opportunity.Filter{}, err
	}
	filter.MinSalary = min
	filter.MaxSalary = max
	return filter, nil
}

func intQuery(c *fiber.Ctx, name string) (*int, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, common.NewValidationError("invalid query parameter", map[string]string{name: "must be an integer"})
	}
	return &value, nil
}
