package courseValidator

import (
	"edustream/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CreateVideoRequest is the validated body for video creation
type CreateVideoRequest struct {
	Title       string `json:"title" validate:"required,min=3"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url" validate:"omitempty,url"`
}

// UpdateVideoRequest is the validated body for video updates
type UpdateVideoRequest struct {
	Title       string `json:"title" validate:"omitempty,min=3"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url" validate:"omitempty,url"`
}

// CreateVideo validates video creation request
func CreateVideo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateVideoRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedVideo", reqData)
		return c.Next()
	}
}

// UpdateVideo validates video update request
func UpdateVideo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateVideoRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedVideoUpdate", reqData)
		return c.Next()
	}
}

// VideoID validates the video id path parameter
func VideoID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		videoIDStr := strings.TrimSpace(c.Params("id"))
		if videoIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Video ID is required!", nil)
		}

		if _, err := uuid.Parse(videoIDStr); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Video ID!", nil)
		}

		c.Locals("videoID", videoIDStr)
		return c.Next()
	}
}
