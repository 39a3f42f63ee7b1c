package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"careerbridge/internal/app"
	"careerbridge/internal/common"
	"careerbridge/internal/domain/application"
	"careerbridge/internal/http/middleware"
	"careerbridge/internal/storage"
)

type ApplicationHandler struct {
	applications *app.ApplicationService
	files        *storage.FileStore
}

func NewApplicationHandler(applications *app.ApplicationService, files *storage.FileStore) *ApplicationHandler {
	return &ApplicationHandler{applications: applications, files: files}
}

type statusRequest struct {
	Status string `json:"status"`
}

type interviewRequest struct {
	Date        string `json:"date"`
	Time        string `json:"time"`
	Type        string `json:"type"`
	Link        string `json:"link"`
	Notes       string `json:"notes"`
	Status      string `json:"status"`
	Interviewer string `json:"interviewer"`
}

type noteRequest struct {
	Note string `json:"note"`
}

// Apply takes a multipart form: a coverLetter field and an optional resume
// file that is stored on disk before the application record is created.
func (h *ApplicationHandler) Apply(c *fiber.Ctx) error {
	studentID, ok := middleware.UserID(c)
	if !ok {
		return writeError(c, errUnauthorized())
	}
	opportunityID, err := idParam(c, "oppId")
	if err != nil {
		return writeError(c, err)
	}
	coverLetter := c.FormValue("coverLetter")
	resumeURL := ""
	if file, err := c.FormFile("resume"); err == nil && file != nil {
		src, err := file.Open()
		if err != nil {
			return writeError(c, common.NewError(common.CodeValidation, "unreadable resume upload", err))
		}
		defer src.Close()
		resumeURL, err = h.files.Save("resume", file.Filename, src)
		if err != nil {
			return writeError(c, err)
		}
	}
	created, err := h.applications.Apply(c.Context(), studentID, opportunityID, coverLetter, resumeURL)
	if err != nil {
		if resumeURL != "" {
			_ = h.files.Remove(resumeURL)
		}
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *ApplicationHandler) ListForStudent(c *fiber.Ctx) error {
	studentID, ok := middleware.UserID(c)
	if !ok {
		return writeError(c, errUnauthorized())
	}
	items, err := h.applications.ListByStudent(c.Context(), studentID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(items)
}

func (h *ApplicationHandler) ListForCompany(c *fiber.Ctx) error {
	companyID, ok := middleware.UserID(c)
	if !ok {
		return writeError(c, errUnauthorized())
	}
	items, err := h.applications.ListByCompany(c.Context(), companyID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(items)
}

func (h *ApplicationHandler) UpdateStatus(c *fiber.Ctx) error {
	companyID, ok := middleware.UserID(c)
	if !ok {
		return writeError(c, errUnauthorized())
	}
	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, common.NewError(common.CodeValidation, "invalid request body", err))
	}
	updated, err := h.applications.UpdateStatus(c.Context(), id, application.Status(req.Status), companyID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(updated)
}

func (h *ApplicationHandler) ScheduleInterview(c *fiber.Ctx) error {
	companyID, ok := middleware.UserID(c)
	if !ok {
		return writeError(c, errUnauthorized())
	}
	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var req interviewRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, common.NewError(common.CodeValidation, "invalid request body", err))
	}
	interview, err := req.toDomain()
	if err != nil {
		return writeError(c, err)
	}
	updated, err := h.applications.ScheduleInterview(c.Context(), id, companyID, interview)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(updated)
}

func (h *ApplicationHandler) Withdraw(c *fiber.Ctx) error {
	studentID, ok := middleware.UserID(c)
	if !ok {
		return writeError(c, errUnauthorized())
	}
	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	updated, err := h.applications.Withdraw(c.Context(), id, studentID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(updated)
}

func (h *ApplicationHandler) Delete(c *fiber.Ctx) error {
	actorID, ok := middleware.UserID(c)
	if !ok {
		return writeError(c, errUnauthorized())
	}
	role, ok := middleware.ActiveRole(c)
	if !ok {
		return writeError(c, errUnauthorized())
	}
	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.applications.Delete(c.Context(), id, actorID, role); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "application deleted"})
}

func (h *ApplicationHandler) AddNote(c *fiber.Ctx) error {
	companyID, ok := middleware.UserID(c)
	if !ok {
		return writeError(c, errUnauthorized())
	}
	id, err := idParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var req noteRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, common.NewError(common.CodeValidation, "invalid request body", err))
	}
	updated, err := h.applications.AddNote(c.Context(), id, companyID, req.Note)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(updated)
}

func (r interviewRequest) toDomain() (application.Interview, error) {
	interview := application.Interview{
		Time:        r.Time,
		Type:        r.Type,
		Link:        r.Link,
		Notes:       r.Notes,
		Status:      r.Status,
		Interviewer: r.Interviewer,
	}
	if r.Date == "" {
		return interview, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, r.Date); err == nil {
			interview.Date = parsed
			return interview, nil
		}
	}
	return application.Interview{}, common.NewValidationError("invalid interview", map[string]string{
		"date": "date must be RFC3339 or YYYY-MM-DD",
	})
}
