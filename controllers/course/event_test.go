package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"edustream/middleware"
	"edustream/models"
	courseModels "edustream/models/course"
	courseRoutes "edustream/routers/courseRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) postJSON(t *testing.T, target string, body interface{}, user *models.User) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", target, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func seedQuizEvent(t *testing.T, env *testEnv, video *courseModels.Video, atSeconds int) courseModels.TimelineEvent {
	t.Helper()

	event := courseModels.TimelineEvent{VideoID: video.ID, Type: courseModels.EventTypeQuiz, AtSeconds: atSeconds, Required: true}
	require.NoError(t, env.db.Create(&event).Error)
	require.NoError(t, env.db.Create(&courseModels.Quiz{
		EventID:      event.ID,
		Question:     "2+2?",
		Options:      []byte(`["3","4"]`),
		CorrectIndex: 1,
	}).Error)
	return event
}

func TestSubmitQuizAttemptGrading(t *testing.T) {
	env := setupTestEnv(t, "handler_quiz_grading")
	courseRoutes.SetupStudentCourseRoutes(env.app)

	video := courseModels.Video{CourseID: uuid.NewString(), OwnerID: env.teacher.ID, Title: "Lesson", IsPublished: true}
	require.NoError(t, env.db.Create(&video).Error)
	event := seedQuizEvent(t, env, &video, 120)

	// A wrong answer is logged but does not complete the checkpoint
	resp := env.postJSON(t, "/student/event/"+event.ID+"/attempt", fiber.Map{"selected_index": 0}, &env.student)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope struct {
		Data struct {
			Correct bool `json:"correct"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.False(t, envelope.Data.Correct)

	var attempts []courseModels.QuizAttempt
	require.NoError(t, env.db.Where("user_id = ? AND event_id = ?", env.student.ID, event.ID).Find(&attempts).Error)
	require.Len(t, attempts, 1)
	assert.False(t, attempts[0].IsCorrect)
	assert.Equal(t, 0, attempts[0].SelectedIndex)

	var completions int64
	env.db.Model(&courseModels.VideoEventCompletion{}).
		Where("user_id = ? AND event_id = ?", env.student.ID, event.ID).Count(&completions)
	assert.EqualValues(t, 0, completions)

	// The checkpoint still clamps seeking
	progress := env.putProgress(t, video.ID, 300, &env.student)
	assert.Equal(t, 120, progress.UnlockedSeconds)

	// The correct answer is logged and completes the checkpoint
	resp = env.postJSON(t, "/student/event/"+event.ID+"/attempt", fiber.Map{"selected_index": 1}, &env.student)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.True(t, envelope.Data.Correct)

	require.NoError(t, env.db.Where("user_id = ? AND event_id = ?", env.student.ID, event.ID).Find(&attempts).Error)
	assert.Len(t, attempts, 2, "every attempt stays logged")

	env.db.Model(&courseModels.VideoEventCompletion{}).
		Where("user_id = ? AND event_id = ?", env.student.ID, event.ID).Count(&completions)
	assert.EqualValues(t, 1, completions)

	// Passing the quiz releases the seek lock
	progress = env.putProgress(t, video.ID, 300, &env.student)
	assert.Equal(t, 300, progress.UnlockedSeconds)
}

func TestSubmitQuizAttemptOutOfRange(t *testing.T) {
	env := setupTestEnv(t, "handler_quiz_range")
	courseRoutes.SetupStudentCourseRoutes(env.app)

	video := courseModels.Video{CourseID: uuid.NewString(), OwnerID: env.teacher.ID, Title: "Lesson", IsPublished: true}
	require.NoError(t, env.db.Create(&video).Error)
	event := seedQuizEvent(t, env, &video, 60)

	resp := env.postJSON(t, "/student/event/"+event.ID+"/attempt", fiber.Map{"selected_index": 5}, &env.student)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Rejected answers leave no trace
	var attempts int64
	env.db.Model(&courseModels.QuizAttempt{}).Where("event_id = ?", event.ID).Count(&attempts)
	assert.EqualValues(t, 0, attempts)
}

func TestCompleteEventTypeRules(t *testing.T) {
	env := setupTestEnv(t, "handler_complete_rules")
	courseRoutes.SetupStudentCourseRoutes(env.app)

	video := courseModels.Video{CourseID: uuid.NewString(), OwnerID: env.teacher.ID, Title: "Lesson", IsPublished: true}
	require.NoError(t, env.db.Create(&video).Error)
	quizEvent := seedQuizEvent(t, env, &video, 60)
	simEvent := courseModels.TimelineEvent{VideoID: video.ID, Type: courseModels.EventTypeSimulation, AtSeconds: 90, Required: true}
	require.NoError(t, env.db.Create(&simEvent).Error)

	// Quiz checkpoints cannot be completed directly
	resp := env.postJSON(t, "/student/event/"+quizEvent.ID+"/complete", fiber.Map{}, &env.student)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var completions int64
	env.db.Model(&courseModels.VideoEventCompletion{}).Where("event_id = ?", quizEvent.ID).Count(&completions)
	assert.EqualValues(t, 0, completions)

	// Simulation checkpoints complete on request
	resp = env.postJSON(t, "/student/event/"+simEvent.ID+"/complete", fiber.Map{}, &env.student)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	env.db.Model(&courseModels.VideoEventCompletion{}).
		Where("user_id = ? AND event_id = ?", env.student.ID, simEvent.ID).Count(&completions)
	assert.EqualValues(t, 1, completions)
}

func TestRecordExamLaunch(t *testing.T) {
	env := setupTestEnv(t, "handler_exam_launch")
	courseRoutes.SetupStudentCourseRoutes(env.app)

	video := courseModels.Video{CourseID: uuid.NewString(), OwnerID: env.teacher.ID, Title: "Lesson", IsPublished: true}
	require.NoError(t, env.db.Create(&video).Error)
	examEvent := courseModels.TimelineEvent{
		VideoID:   video.ID,
		Type:      courseModels.EventTypeExam,
		AtSeconds: 300,
		Payload:   []byte(`{"url":"https://exams.example.co/final"}`),
	}
	require.NoError(t, env.db.Create(&examEvent).Error)
	quizEvent := seedQuizEvent(t, env, &video, 60)

	// Launching an exam is logged and returns the event payload
	resp := env.postJSON(t, "/student/event/"+examEvent.ID+"/launch", fiber.Map{}, &env.student)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope struct {
		Data struct {
			Payload map[string]string `json:"payload"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, "https://exams.example.co/final", envelope.Data.Payload["url"])

	var launches int64
	env.db.Model(&courseModels.ExamLaunch{}).
		Where("user_id = ? AND event_id = ?", env.student.ID, examEvent.ID).Count(&launches)
	assert.EqualValues(t, 1, launches)

	// Launching does not complete the checkpoint by itself
	var completions int64
	env.db.Model(&courseModels.VideoEventCompletion{}).Where("event_id = ?", examEvent.ID).Count(&completions)
	assert.EqualValues(t, 0, completions)

	// Only EXAM events can be launched
	resp = env.postJSON(t, "/student/event/"+quizEvent.ID+"/launch", fiber.Map{}, &env.student)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Unknown events are a 404, not a 500
	resp = env.postJSON(t, "/student/event/"+uuid.NewString()+"/launch", fiber.Map{}, &env.student)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
