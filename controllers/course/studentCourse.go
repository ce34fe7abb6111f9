package controllers

import (
	"edustream/database"
	"edustream/middleware"
	courseModels "edustream/models/course"

	"github.com/gofiber/fiber/v2"
)

// ListPublishedCourses lists courses available to students
func ListPublishedCourses(c *fiber.Ctx) error {
	var courses []courseModels.Course
	if err := database.Database.Db.Where("is_published = ?", true).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}

// GetCourseDetails returns a published course with its published videos
func GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(string)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_published = ?", courseID, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var videos []courseModels.Video
	if err := database.Database.Db.Where("course_id = ? AND is_published = ?", course.ID, true).Order("created_at asc").Find(&videos).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch videos!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course": course,
		"videos": videos,
	})
}

// GetVideoTimeline returns a published video's checkpoints for playback.
// Quiz questions are included; the correct answer never leaves the server.
func GetVideoTimeline(c *fiber.Ctx) error {
	videoID := c.Locals("videoID").(string)

	var video courseModels.Video
	if err := database.Database.Db.Where("id = ? AND is_published = ?", videoID, true).First(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found!", nil)
	}

	var events []courseModels.TimelineEvent
	if err := database.Database.Db.Where("video_id = ?", video.ID).Order("at_seconds asc").Find(&events).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch timeline events!", nil)
	}

	type QuizView struct {
		ID       string      `json:"id"`
		Question string      `json:"question"`
		Options  interface{} `json:"options"`
	}
	type EventView struct {
		courseModels.TimelineEvent
		Quiz *QuizView `json:"quiz,omitempty"`
	}

	eventViews := make([]EventView, len(events))
	for i, event := range events {
		eventViews[i] = EventView{TimelineEvent: event}
		if event.Type == courseModels.EventTypeQuiz {
			var quiz courseModels.Quiz
			if err := database.Database.Db.Where("event_id = ?", event.ID).First(&quiz).Error; err == nil {
				eventViews[i].Quiz = &QuizView{
					ID:       quiz.ID,
					Question: quiz.Question,
					Options:  quiz.Options,
				}
			}
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Timeline fetched successfully!", fiber.Map{
		"video":  video,
		"events": eventViews,
	})
}
