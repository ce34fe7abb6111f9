package controllers

import (
	"edustream/database"
	"edustream/middleware"
	"edustream/models"
	courseModels "edustream/models/course"
	courseValidator "edustream/validators/course"
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SubmitQuizAttempt grades a student's answer to a quiz checkpoint. Correct
// answers mark the checkpoint as passed; every attempt is logged.
func SubmitQuizAttempt(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	eventID := c.Locals("eventID").(string)

	var event courseModels.TimelineEvent
	if err := database.Database.Db.Where("id = ?", eventID).First(&event).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Event not found!", nil)
	}

	if event.Type != courseModels.EventTypeQuiz {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Event is not a quiz!", nil)
	}

	var quiz courseModels.Quiz
	if err := database.Database.Db.Where("event_id = ?", event.ID).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	reqData, ok := c.Locals("validatedAttempt").(*courseValidator.SubmitAttemptRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	selected := *reqData.SelectedIndex

	var options []string
	if err := json.Unmarshal(quiz.Options, &options); err != nil || selected >= len(options) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Selected option is out of range!", nil)
	}

	isCorrect := selected == quiz.CorrectIndex

	attempt := courseModels.QuizAttempt{
		UserID:        userID,
		EventID:       event.ID,
		SelectedIndex: selected,
		IsCorrect:     isCorrect,
	}
	if err := database.Database.Db.Create(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record attempt!", nil)
	}

	if isCorrect {
		if err := markEventComplete(userID, event.ID); err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record completion!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempt recorded!", fiber.Map{
		"correct": isCorrect,
	})
}

// RecordExamLaunch logs that a student opened an external exam checkpoint
func RecordExamLaunch(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	eventID := c.Locals("eventID").(string)

	var event courseModels.TimelineEvent
	if err := database.Database.Db.Where("id = ?", eventID).First(&event).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Event not found!", nil)
	}

	if event.Type != courseModels.EventTypeExam {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Event is not an exam!", nil)
	}

	launch := courseModels.ExamLaunch{
		UserID:  userID,
		EventID: event.ID,
	}
	if err := database.Database.Db.Create(&launch).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record exam launch!", nil)
	}

	// The exam URL lives in the event payload
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exam launch recorded!", fiber.Map{
		"payload": event.Payload,
	})
}

// CompleteEvent marks an EXAM or SIMULATION checkpoint as passed. Quiz
// checkpoints are only passed by answering correctly.
func CompleteEvent(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	eventID := c.Locals("eventID").(string)

	var event courseModels.TimelineEvent
	if err := database.Database.Db.Where("id = ?", eventID).First(&event).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Event not found!", nil)
	}

	if event.Type == courseModels.EventTypeQuiz {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Quiz checkpoints are passed by answering correctly!", nil)
	}

	if err := markEventComplete(userID, event.ID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record completion!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Checkpoint completed!", nil)
}

// UpdateVideoProgress advances the caller's unlocked-until offset. The offset
// never moves backward and never passes the earliest uncompleted required
// checkpoint. This is the server side of the forward-seek lock.
func UpdateVideoProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	videoID := c.Locals("videoID").(string)

	var video courseModels.Video
	if err := database.Database.Db.Where("id = ? AND is_published = ?", videoID, true).First(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found!", nil)
	}

	reqData, ok := c.Locals("validatedProgress").(*courseValidator.UpdateProgressRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	requested := *reqData.UnlockedSeconds

	// Clamp at the earliest required checkpoint the student has not passed
	var events []courseModels.TimelineEvent
	if err := database.Database.Db.Where("video_id = ? AND required = ?", video.ID, true).
		Order("at_seconds asc").Find(&events).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch checkpoints!", nil)
	}
	if len(events) > 0 {
		eventIDs := make([]string, len(events))
		for i, event := range events {
			eventIDs[i] = event.ID
		}

		var completions []courseModels.VideoEventCompletion
		if err := database.Database.Db.Where("user_id = ? AND event_id IN ?", userID, eventIDs).
			Find(&completions).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch completions!", nil)
		}
		completed := make(map[string]bool, len(completions))
		for _, completion := range completions {
			completed[completion.EventID] = true
		}

		for _, event := range events {
			if !completed[event.ID] && event.AtSeconds < requested {
				requested = event.AtSeconds
				break
			}
		}
	}

	var progress courseModels.VideoProgress
	err := database.Database.Db.Where("user_id = ? AND video_id = ?", userID, video.ID).First(&progress).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		progress = courseModels.VideoProgress{
			UserID:          userID,
			VideoID:         video.ID,
			UnlockedSeconds: requested,
		}
		if err := database.Database.Db.Create(&progress).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save progress!", nil)
		}
	case err != nil:
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	case requested > progress.UnlockedSeconds:
		progress.UnlockedSeconds = requested
		if err := database.Database.Db.Save(&progress).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save progress!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated!", progress)
}

// GetVideoProgress returns the caller's unlocked-until offset for a video
func GetVideoProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	videoID := c.Locals("videoID").(string)

	var video courseModels.Video
	if err := database.Database.Db.Where("id = ? AND is_published = ?", videoID, true).First(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found!", nil)
	}

	var progress courseModels.VideoProgress
	if err := database.Database.Db.Where("user_id = ? AND video_id = ?", userID, video.ID).First(&progress).Error; err != nil {
		progress = courseModels.VideoProgress{UserID: userID, VideoID: video.ID, UnlockedSeconds: 0}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", progress)
}

// markEventComplete records a completion once per (user, event). A duplicate
// attempt simply keeps the existing row.
func markEventComplete(userID uint, eventID string) error {
	var completion courseModels.VideoEventCompletion
	return database.Database.Db.
		Where(courseModels.VideoEventCompletion{UserID: userID, EventID: eventID}).
		FirstOrCreate(&completion).Error
}
