package controllers

import (
	"edustream/database"
	"edustream/middleware"
	"edustream/models"
	courseModels "edustream/models/course"
	courseValidator "edustream/validators/course"

	"github.com/gofiber/fiber/v2"
)

// CreateVideo creates a new video under a course (owner or admin)
func CreateVideo(c *fiber.Ctx) error {
	user, ok := c.Locals("authUser").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(string)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if user.Role != models.RoleAdmin && course.OwnerID != user.ID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Not the course owner.", nil)
	}

	reqData, ok := c.Locals("validatedVideo").(*courseValidator.CreateVideoRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Videos always belong to the course owner, even when created by an admin
	video := courseModels.Video{
		CourseID:    course.ID,
		OwnerID:     course.OwnerID,
		Title:       reqData.Title,
		Description: reqData.Description,
		VideoURL:    reqData.VideoURL,
		IsPublished: false,
	}

	if err := database.Database.Db.Create(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create video!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Video created successfully!", video)
}

// UpdateVideo updates an existing video (owner or admin)
func UpdateVideo(c *fiber.Ctx) error {
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

	reqData, ok := c.Locals("validatedVideoUpdate").(*courseValidator.UpdateVideoRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != "" {
		video.Title = reqData.Title
	}
	if reqData.Description != "" {
		video.Description = reqData.Description
	}
	if reqData.VideoURL != "" {
		video.VideoURL = reqData.VideoURL
	}

	if err := database.Database.Db.Save(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update video!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Video updated successfully!", video)
}

// PublishVideo publishes or unpublishes a video (owner or admin)
func PublishVideo(c *fiber.Ctx) error {
	user, ok := c.Locals("authUser").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	videoID := c.Locals("videoID").(string)
	publishStatus := c.Locals("publishStatus").(bool)

	var video courseModels.Video
	if err := database.Database.Db.Where("id = ?", videoID).First(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found!", nil)
	}

	if user.Role != models.RoleAdmin && video.OwnerID != user.ID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Not the video owner.", nil)
	}

	video.IsPublished = publishStatus
	if err := database.Database.Db.Save(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update video!", nil)
	}

	message := "Video unpublished successfully!"
	if publishStatus {
		message = "Video published successfully!"
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, video)
}
