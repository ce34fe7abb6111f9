package courseValidator

import (
	"edustream/middleware"

	"github.com/gofiber/fiber/v2"
)

// SubmitAttemptRequest is the validated body for quiz answer submission
type SubmitAttemptRequest struct {
	SelectedIndex *int `json:"selected_index" validate:"required,gte=0"`
}

// UpdateProgressRequest is the validated body for progress updates
type UpdateProgressRequest struct {
	UnlockedSeconds *int `json:"unlocked_seconds" validate:"required,gte=0"`
}

// SubmitAttempt validates quiz answer submission
func SubmitAttempt() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SubmitAttemptRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedAttempt", reqData)
		return c.Next()
	}
}

// UpdateProgress validates progress update request
func UpdateProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateProgressRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}
