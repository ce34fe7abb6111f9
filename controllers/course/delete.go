package controllers

import (
	"edustream/database"
	"edustream/middleware"
	"edustream/models"
	courseModels "edustream/models/course"
	"edustream/services/authz"
	"edustream/services/deletion"
	"edustream/utils"
	"log"

	"github.com/gofiber/fiber/v2"
)

// deletionService performs the privileged cascades. Wired once at startup;
// handlers can only reach it after the fetch + authorize steps below.
var deletionService *deletion.Service

// SetupDeletionService injects the deletion service used by the delete handlers
func SetupDeletionService(svc *deletion.Service) {
	deletionService = svc
}

// DeleteVideo permanently deletes a video, its timeline events, quizzes,
// attempts, launches, completions, progress rows and stored object.
// Owner or admin only.
func DeleteVideo(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	videoID := c.Locals("videoID").(string)

	var video courseModels.Video
	if err := database.Database.Db.Where("id = ?", videoID).First(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found!", nil)
	}

	if !authz.CanDelete(user.ID, video.OwnerID, user.RoleSet()) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Not the video owner.", nil)
	}

	if err := deletionService.DeleteVideoCascade(&video); err != nil {
		log.Printf("Error cascading video %s: %v", video.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete video!", nil)
	}

	// Moderation path: tell the owner their video is gone
	if user.ID != video.OwnerID {
		go notifyVideoRemoved(video.OwnerID, video.Title)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Video deleted successfully!", nil)
}

// DeleteCourse permanently deletes a course, every video in it (each with its
// full cascade), the thumbnail object and the course row. Owner or admin only.
func DeleteCourse(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(string)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !authz.CanDelete(user.ID, course.OwnerID, user.RoleSet()) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Not the course owner.", nil)
	}

	if err := deletionService.DeleteCourseCascade(&course); err != nil {
		log.Printf("Error cascading course %s: %v", course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	// Moderation path: tell the owner their course is gone
	if user.ID != course.OwnerID {
		go notifyCourseRemoved(course.OwnerID, course.Title)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// DeleteTimelineEvent permanently deletes a single checkpoint and its
// dependent rows. Owner or admin only.
func DeleteTimelineEvent(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	eventID := c.Locals("eventID").(string)

	var event courseModels.TimelineEvent
	if err := database.Database.Db.Where("id = ?", eventID).First(&event).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Event not found!", nil)
	}

	var video courseModels.Video
	if err := database.Database.Db.Where("id = ?", event.VideoID).First(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found!", nil)
	}

	if !authz.CanDelete(user.ID, video.OwnerID, user.RoleSet()) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Not the video owner.", nil)
	}

	if err := deletionService.DeleteEventCascade(&event); err != nil {
		log.Printf("Error cascading event %s: %v", event.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete event!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Timeline event deleted successfully!", nil)
}

func notifyVideoRemoved(ownerID uint, title string) {
	var owner models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", ownerID, false).First(&owner).Error; err != nil {
		log.Printf("Error fetching owner %d for removal notice: %v", ownerID, err)
		return
	}
	utils.SendVideoRemovedNotice(owner.Name, owner.Email, title)
}

func notifyCourseRemoved(ownerID uint, title string) {
	var owner models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", ownerID, false).First(&owner).Error; err != nil {
		log.Printf("Error fetching owner %d for removal notice: %v", ownerID, err)
		return
	}
	utils.SendCourseRemovedNotice(owner.Name, owner.Email, title)
}
