package controllers

import (
	"edustream/database"
	"edustream/middleware"
	"edustream/models"
	courseModels "edustream/models/course"
	courseValidator "edustream/validators/course"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateTimelineEvent adds a checkpoint to a video (owner or admin). QUIZ
// events create their quiz row in the same transaction.
func CreateTimelineEvent(c *fiber.Ctx) error {
	user, ok := c.Locals("authUser").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	videoID := c.Locals("videoID").(string)

	var video courseModels.Video
	if err := database.Database.Db.Where("id = ?", videoID).First(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found!", nil)
	}

	if user.Role != models.RoleAdmin && video.OwnerID != user.ID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Not the video owner.", nil)
	}

	reqData, ok := c.Locals("validatedEvent").(*courseValidator.CreateEventRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	payload, err := json.Marshal(reqData.Payload)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid event payload!", nil)
	}

	event := courseModels.TimelineEvent{
		VideoID:   video.ID,
		Type:      reqData.Type,
		AtSeconds: reqData.AtSeconds,
		Required:  reqData.Required,
		Payload:   payload,
	}

	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&event).Error; err != nil {
			return err
		}
		if reqData.Type == courseModels.EventTypeQuiz {
			options, err := json.Marshal(reqData.Quiz.Options)
			if err != nil {
				return err
			}
			quiz := courseModels.Quiz{
				EventID:      event.ID,
				Question:     reqData.Quiz.Question,
				Options:      options,
				CorrectIndex: reqData.Quiz.CorrectIndex,
			}
			if err := tx.Create(&quiz).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create timeline event!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Timeline event created successfully!", event)
}

// ListTimelineEvents lists a video's checkpoints for its author, quizzes
// included with the correct answer
func ListTimelineEvents(c *fiber.Ctx) error {
	user, ok := c.Locals("authUser").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	videoID := c.Locals("videoID").(string)

	var video courseModels.Video
	if err := database.Database.Db.Where("id = ?", videoID).First(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found!", nil)
	}

	if user.Role != models.RoleAdmin && video.OwnerID != user.ID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Not the video owner.", nil)
	}

	var events []courseModels.TimelineEvent
	if err := database.Database.Db.Where("video_id = ?", video.ID).Order("at_seconds asc").Find(&events).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch timeline events!", nil)
	}

	type EventWithQuiz struct {
		courseModels.TimelineEvent
		Quiz *courseModels.Quiz `json:"quiz,omitempty"`
	}

	eventsWithQuiz := make([]EventWithQuiz, len(events))
	for i, event := range events {
		eventsWithQuiz[i] = EventWithQuiz{TimelineEvent: event}
		if event.Type == courseModels.EventTypeQuiz {
			var quiz courseModels.Quiz
			if err := database.Database.Db.Where("event_id = ?", event.ID).First(&quiz).Error; err == nil {
				eventsWithQuiz[i].Quiz = &quiz
			}
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Timeline events fetched successfully!", fiber.Map{
		"events": eventsWithQuiz,
	})
}
