package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"careerbridge/internal/app"
	"careerbridge/internal/common"
	"careerbridge/internal/domain/company"
	"careerbridge/internal/domain/student"
	"careerbridge/internal/domain/user"
	"careerbridge/internal/http/middleware"
	"careerbridge/internal/storage"
)

type ProfileHandler struct {
	profiles      *app.ProfileService
	opportunities *app.OpportunityService
	files         *storage.FileStore
}

func NewProfileHandler(profiles *app.ProfileService, opportunities *app.OpportunityService, files *storage.FileStore) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, opportunities: opportunities, files: files}
}

type studentProfileRequest struct {
	Profile student.Student `json:"profile"`
}

type companyProfileRequest struct {
	Profile company.Company `json:"profile"`
}

// Get returns the caller's own profile. The role path segment must match
// the role baked into the token.
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return writeError(c, errUnauthorized())
	}
	role, err := h.matchRole(c)
	if err != nil {
		return writeError(c, err)
	}
	if role == user.RoleStudent {
		profile, err := h.profiles.GetStudent(c.Context(), userID)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(profile)
	}
	profile, err := h.profiles.GetCompany(c.Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(profile)
}

func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return writeError(c, errUnauthorized())
	}
	role, err := h.matchRole(c)
	if err != nil {
		return writeError(c, err)
	}
	if role == user.RoleStudent {
		var req studentProfileRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, common.NewError(common.CodeValidation, "invalid request body", err))
		}
		updated, err := h.profiles.UpdateStudent(c.Context(), userID, req.Profile)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(updated)
	}
	var req companyProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, common.NewError(common.CodeValidation, "invalid request body", err))
	}
	updated, err := h.profiles.UpdateCompany(c.Context(), userID, req.Profile)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(updated)
}

func (h *ProfileHandler) Notifications(c *fiber.Ctx) error {
	studentID, ok := middleware.UserID(c)
	if !ok {
		return writeError(c, errUnauthorized())
	}
	items, err := h.profiles.Notifications(c.Context(), studentID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(items)
}

func (h *ProfileHandler) DismissNotification(c *fiber.Ctx) error {
	studentID, ok := middleware.UserID(c)
	if !ok {
		return writeError(c, errUnauthorized())
	}
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return writeError(c, common.NewError(common.CodeValidation, "invalid notification index", err))
	}
	remaining, err := h.profiles.DismissNotification(c.Context(), studentID, index)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "notification dismissed", "notifications": remaining})
}

func (h *ProfileHandler) DismissAllNotifications(c *fiber.Ctx) error {
	studentID, ok := middleware.UserID(c)
	if !ok {
		return writeError(c, errUnauthorized())
	}
	if err := h.profiles.DismissAllNotifications(c.Context(), studentID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "all notifications dismissed"})
}

func (h *ProfileHandler) DashboardStats(c *fiber.Ctx) error {
	companyID, ok := middleware.UserID(c)
	if !ok {
		return writeError(c, errUnauthorized())
	}
	stats, err := h.opportunities.DashboardStats(c.Context(), companyID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(stats)
}

func (h *ProfileHandler) UploadLogo(c *fiber.Ctx) error {
	companyID, ok := middleware.UserID(c)
	if !ok {
		return writeError(c, errUnauthorized())
	}
	file, err := c.FormFile("logo")
	if err != nil {
		return writeError(c, common.NewError(common.CodeValidation, "no file uploaded", err))
	}
	if file.Size > storage.MaxImageBytes {
		return writeError(c, common.NewValidationError("logo too large", map[string]string{
			"logo": "logo must be 5MB or smaller",
		}))
	}
	src, err := file.Open()
	if err != nil {
		return writeError(c, common.NewError(common.CodeValidation, "unreadable logo upload", err))
	}
	defer src.Close()
	logoURL, err := h.files.SaveImage("logo", file.Filename, src)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.profiles.SetCompanyLogo(c.Context(), companyID, logoURL); err != nil {
		_ = h.files.Remove(logoURL)
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"logoUrl": logoURL})
}

func (h *ProfileHandler) matchRole(c *fiber.Ctx) (user.Role, error) {
	requested, ok := user.ParseRole(c.Params("role"))
	if !ok {
		return "", common.NewValidationError("invalid role", map[string]string{"role": "role must be student or company"})
	}
	active, ok := middleware.ActiveRole(c)
	if !ok {
		return "", errUnauthorized()
	}
	if requested != active {
		return "", common.NewError(common.CodeForbidden, "profile belongs to another role", nil)
	}
	return requested, nil
}
