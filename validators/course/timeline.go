package courseValidator

import (
	"edustream/middleware"
	courseModels "edustream/models/course"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// QuizPayload carries the quiz question for QUIZ-type events
type QuizPayload struct {
	Question     string   `json:"question" validate:"required,min=3"`
	Options      []string `json:"options" validate:"required,min=2,dive,required"`
	CorrectIndex int      `json:"correct_index" validate:"gte=0"`
}

// CreateEventRequest is the validated body for timeline event creation
type CreateEventRequest struct {
	Type      string                 `json:"type" validate:"required,oneof=QUIZ SIMULATION EXAM"`
	AtSeconds int                    `json:"at_seconds" validate:"gte=0"`
	Required  bool                   `json:"required"`
	Payload   map[string]interface{} `json:"payload"`
	Quiz      *QuizPayload           `json:"quiz"`
}

// CreateEvent validates timeline event creation request
func CreateEvent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateEventRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		errors := make(map[string]string)
		if reqData.Type == courseModels.EventTypeQuiz {
			if reqData.Quiz == nil {
				errors["quiz"] = "Quiz payload is required for QUIZ events!"
			} else if reqData.Quiz.CorrectIndex >= len(reqData.Quiz.Options) {
				errors["correct_index"] = "Correct index is out of range!"
			}
		} else if reqData.Quiz != nil {
			errors["quiz"] = "Quiz payload is only allowed on QUIZ events!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedEvent", reqData)
		return c.Next()
	}
}

// EventID validates the timeline event id path parameter
func EventID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		eventIDStr := strings.TrimSpace(c.Params("id"))
		if eventIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Event ID is required!", nil)
		}

		if _, err := uuid.Parse(eventIDStr); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Event ID!", nil)
		}

		c.Locals("eventID", eventIDStr)
		return c.Next()
	}
}
