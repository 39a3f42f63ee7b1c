package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"careerbridge/internal/common"
)

// writeError renders any service error as the JSON error envelope. Coded
// errors map onto their HTTP status, anything else becomes a 500 without
// leaking the cause.
func writeError(c *fiber.Ctx, err error) error {
	var coded *common.Error
	if !errors.As(err, &coded) {
		coded = common.NewError(common.CodeInternal, "internal server error", nil)
	}
	body := fiber.Map{
		"code":    coded.Code,
		"message": coded.Message,
	}
	if len(coded.Fields) > 0 {
		body["fields"] = coded.Fields
	}
	return c.Status(statusFor(coded.Code)).JSON(body)
}

func statusFor(code common.Code) int {
	switch code {
	case common.CodeUnauthorized:
		return fiber.StatusUnauthorized
	case common.CodeForbidden:
		return fiber.StatusForbidden
	case common.CodeNotFound:
		return fiber.StatusNotFound
	case common.CodeConflict:
		return fiber.StatusConflict
	case common.CodeValidation:
		return fiber.StatusBadRequest
	case common.CodeRateLimited:
		return fiber.StatusTooManyRequests
	default:
		return fiber.StatusInternalServerError
	}
}

func idParam(c *fiber.Ctx, name string) (common.ID, error) {
	return common.ParseID(c.Params(name))
}

func errUnauthorized() error {
	return common.NewError(common.CodeUnauthorized, "authentication required", nil)
}
