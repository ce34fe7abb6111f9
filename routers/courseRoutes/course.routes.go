package courseRoutes

import (
	controllers "edustream/controllers/course"
	"edustream/middleware"
	"edustream/models"
	validators "edustream/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupTeacherCourseRoutes sets up all course authoring and moderation routes
func SetupTeacherCourseRoutes(app *fiber.App) {
	authorGate := middleware.RequireRoles(models.RoleTeacher, models.RoleAdmin)

	teacherGroup := app.Group("/teacher/course", middleware.JWTMiddleware, authorGate)

	// Course CRUD
	teacherGroup.Post("/", validators.CreateCourse(), controllers.CreateCourse)
	teacherGroup.Get("/list", controllers.ListOwnCourses)
	teacherGroup.Put("/:id", validators.CourseID(), validators.UpdateCourse(), controllers.UpdateCourse)
	teacherGroup.Post("/:id/publish", validators.CourseID(), validators.PublishCourse(), controllers.PublishCourse)

	// Video management
	teacherGroup.Post("/:id/video", validators.CourseID(), validators.CreateVideo(), controllers.CreateVideo)

	videoGroup := app.Group("/teacher/video", middleware.JWTMiddleware, authorGate)
	videoGroup.Put("/:id", validators.VideoID(), validators.UpdateVideo(), controllers.UpdateVideo)
	videoGroup.Post("/:id/publish", validators.VideoID(), validators.PublishCourse(), controllers.PublishVideo)

	// Timeline events
	videoGroup.Post("/:id/event", validators.VideoID(), validators.CreateEvent(), controllers.CreateTimelineEvent)
	videoGroup.Get("/:id/events", validators.VideoID(), controllers.ListTimelineEvents)

	// Deletion endpoints skip the role gate: the handlers fetch the resource
	// and authorize against its owner themselves, so a bad id costs no
	// database round trip.
	deleteGroup := app.Group("/teacher", middleware.JWTMiddleware)
	deleteGroup.Delete("/course/:id", validators.CourseID(), controllers.DeleteCourse)
	deleteGroup.Delete("/video/:id", validators.VideoID(), controllers.DeleteVideo)
	deleteGroup.Delete("/event/:id", validators.EventID(), controllers.DeleteTimelineEvent)
}

// SetupStudentCourseRoutes sets up the learning routes
func SetupStudentCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/student/course", middleware.JWTMiddleware)
	courseGroup.Get("/list", controllers.ListPublishedCourses)
	courseGroup.Get("/:id", validators.CourseID(), controllers.GetCourseDetails)

	videoGroup := app.Group("/student/video", middleware.JWTMiddleware)
	videoGroup.Get("/:id/timeline", validators.VideoID(), controllers.GetVideoTimeline)
	videoGroup.Put("/:id/progress", validators.VideoID(), validators.UpdateProgress(), controllers.UpdateVideoProgress)
	videoGroup.Get("/:id/progress", validators.VideoID(), controllers.GetVideoProgress)

	eventGroup := app.Group("/student/event", middleware.JWTMiddleware)
	eventGroup.Post("/:id/attempt", validators.EventID(), validators.SubmitAttempt(), controllers.SubmitQuizAttempt)
	eventGroup.Post("/:id/launch", validators.EventID(), controllers.RecordExamLaunch)
	eventGroup.Post("/:id/complete", validators.EventID(), controllers.CompleteEvent)
}
