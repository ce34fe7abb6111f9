package deletion

import (
	courseModels "edustream/models/course"
	"edustream/storage"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	videosBucket = "videos"
	thumbsBucket = "course-thumbnails"
	storageBase  = "https://proj.example.co/storage/v1/object/public/"
)

// fakeStore records removals and can be told to fail for specific objects
type fakeStore struct {
	removed []string
	fail    map[string]error
}

func (f *fakeStore) RemoveObject(bucket, objectPath string) error {
	key := bucket + "/" + objectPath
	if err, ok := f.fail[key]; ok {
		return err
	}
	f.removed = append(f.removed, key)
	return nil
}

func newTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&courseModels.Course{},
		&courseModels.Video{},
		&courseModels.TimelineEvent{},
		&courseModels.Quiz{},
		&courseModels.QuizAttempt{},
		&courseModels.ExamLaunch{},
		&courseModels.VideoEventCompletion{},
		&courseModels.VideoProgress{},
		&courseModels.StorageCleanup{},
	))
	return db
}

func count(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Where(query, args...).Count(&n).Error)
	return n
}

// seedVideoTree creates a video with one quiz event (one quiz, two attempts,
// one completion) and one exam event (one launch), plus a progress row.
func seedVideoTree(t *testing.T, db *gorm.DB, courseID, videoURL string) courseModels.Video {
	t.Helper()

	video := courseModels.Video{CourseID: courseID, OwnerID: 1, Title: "Lesson", VideoURL: videoURL}
	require.NoError(t, db.Create(&video).Error)

	quizEvent := courseModels.TimelineEvent{VideoID: video.ID, Type: courseModels.EventTypeQuiz, AtSeconds: 60, Required: true}
	require.NoError(t, db.Create(&quizEvent).Error)
	require.NoError(t, db.Create(&courseModels.Quiz{
		EventID:      quizEvent.ID,
		Question:     "2+2?",
		Options:      []byte(`["3","4"]`),
		CorrectIndex: 1,
	}).Error)
	require.NoError(t, db.Create(&courseModels.QuizAttempt{UserID: 9, EventID: quizEvent.ID, SelectedIndex: 0}).Error)
	require.NoError(t, db.Create(&courseModels.QuizAttempt{UserID: 9, EventID: quizEvent.ID, SelectedIndex: 1, IsCorrect: true}).Error)
	require.NoError(t, db.Create(&courseModels.VideoEventCompletion{UserID: 9, EventID: quizEvent.ID}).Error)

	examEvent := courseModels.TimelineEvent{VideoID: video.ID, Type: courseModels.EventTypeExam, AtSeconds: 300}
	require.NoError(t, db.Create(&examEvent).Error)
	require.NoError(t, db.Create(&courseModels.ExamLaunch{UserID: 9, EventID: examEvent.ID}).Error)

	require.NoError(t, db.Create(&courseModels.VideoProgress{UserID: 9, VideoID: video.ID, UnlockedSeconds: 120}).Error)

	return video
}

func TestDeleteVideoCascade(t *testing.T) {
	db := newTestDB(t, "delete_video_cascade")
	store := &fakeStore{}
	svc := NewService(db, store, videosBucket, thumbsBucket)

	video := seedVideoTree(t, db, "course-1", storageBase+videosBucket+"/lessons/intro.mp4")
	other := seedVideoTree(t, db, "course-1", "")

	require.NoError(t, svc.DeleteVideoCascade(&video))

	// Every dependent row of the deleted video is gone
	assert.EqualValues(t, 0, count(t, db, &courseModels.TimelineEvent{}, "video_id = ?", video.ID))
	assert.EqualValues(t, 0, count(t, db, &courseModels.VideoProgress{}, "video_id = ?", video.ID))
	assert.EqualValues(t, 0, count(t, db, &courseModels.Video{}, "id = ?", video.ID))
	assert.EqualValues(t, 0, count(t, db, &courseModels.Quiz{}, "1 = 1"), "no quiz may survive")
	assert.EqualValues(t, 2, count(t, db, &courseModels.QuizAttempt{}, "1 = 1"), "only the other video's attempts survive")

	// The sibling video is untouched
	assert.EqualValues(t, 2, count(t, db, &courseModels.TimelineEvent{}, "video_id = ?", other.ID))
	assert.EqualValues(t, 1, count(t, db, &courseModels.Video{}, "id = ?", other.ID))

	// Exactly the stored object was removed
	assert.Equal(t, []string{videosBucket + "/lessons/intro.mp4"}, store.removed)
}

func TestDeleteVideoCascadeIdempotent(t *testing.T) {
	db := newTestDB(t, "delete_video_idempotent")
	store := &fakeStore{}
	svc := NewService(db, store, videosBucket, thumbsBucket)

	video := seedVideoTree(t, db, "course-1", storageBase+videosBucket+"/lessons/intro.mp4")

	require.NoError(t, svc.DeleteVideoCascade(&video))
	// A second run matches zero rows everywhere and must not fail
	require.NoError(t, svc.DeleteVideoCascade(&video))

	assert.EqualValues(t, 0, count(t, db, &courseModels.Video{}, "id = ?", video.ID))
}

func TestDeleteVideoCascadeExternalURL(t *testing.T) {
	db := newTestDB(t, "delete_video_external")
	store := &fakeStore{}
	svc := NewService(db, store, videosBucket, thumbsBucket)

	video := seedVideoTree(t, db, "course-1", "https://www.youtube.com/watch?v=abc")
	require.NoError(t, svc.DeleteVideoCascade(&video))

	// External hosts mean nothing to delete in storage
	assert.Empty(t, store.removed)
	assert.EqualValues(t, 0, count(t, db, &courseModels.Video{}, "id = ?", video.ID))
}

func TestDeleteVideoCascadeStorageNotFound(t *testing.T) {
	db := newTestDB(t, "delete_video_missing_object")
	store := &fakeStore{fail: map[string]error{
		videosBucket + "/lessons/intro.mp4": storage.ErrObjectNotFound,
	}}
	svc := NewService(db, store, videosBucket, thumbsBucket)

	video := seedVideoTree(t, db, "course-1", storageBase+videosBucket+"/lessons/intro.mp4")

	// Already-absent objects count as success
	require.NoError(t, svc.DeleteVideoCascade(&video))
	assert.EqualValues(t, 0, count(t, db, &courseModels.StorageCleanup{}, "1 = 1"))
}

func TestDeleteVideoCascadeStorageFailureQueuesCleanup(t *testing.T) {
	db := newTestDB(t, "delete_video_storage_failure")
	store := &fakeStore{fail: map[string]error{
		videosBucket + "/lessons/intro.mp4": fmt.Errorf("storage returned 503"),
	}}
	svc := NewService(db, store, videosBucket, thumbsBucket)

	video := seedVideoTree(t, db, "course-1", storageBase+videosBucket+"/lessons/intro.mp4")

	err := svc.DeleteVideoCascade(&video)
	require.Error(t, err)

	// Rows are gone regardless: data consistency beats storage consistency
	assert.EqualValues(t, 0, count(t, db, &courseModels.Video{}, "id = ?", video.ID))

	// The orphaned object is queued for the cleanup scheduler
	var entry courseModels.StorageCleanup
	require.NoError(t, db.First(&entry).Error)
	assert.Equal(t, videosBucket, entry.Bucket)
	assert.Equal(t, "lessons/intro.mp4", entry.ObjectPath)
}

func TestDeleteCourseCascade(t *testing.T) {
	db := newTestDB(t, "delete_course_cascade")
	store := &fakeStore{}
	svc := NewService(db, store, videosBucket, thumbsBucket)

	course := courseModels.Course{
		OwnerID:      1,
		Title:        "Go Basics",
		ThumbnailURL: storageBase + thumbsBucket + "/go.png",
	}
	require.NoError(t, db.Create(&course).Error)
	seedVideoTree(t, db, course.ID, storageBase+videosBucket+"/a.mp4")
	seedVideoTree(t, db, course.ID, storageBase+videosBucket+"/b.mp4")

	require.NoError(t, svc.DeleteCourseCascade(&course))

	assert.EqualValues(t, 0, count(t, db, &courseModels.Course{}, "id = ?", course.ID))
	assert.EqualValues(t, 0, count(t, db, &courseModels.Video{}, "course_id = ?", course.ID))
	assert.EqualValues(t, 0, count(t, db, &courseModels.TimelineEvent{}, "1 = 1"))
	assert.EqualValues(t, 0, count(t, db, &courseModels.Quiz{}, "1 = 1"))
	assert.EqualValues(t, 0, count(t, db, &courseModels.QuizAttempt{}, "1 = 1"))
	assert.EqualValues(t, 0, count(t, db, &courseModels.ExamLaunch{}, "1 = 1"))
	assert.EqualValues(t, 0, count(t, db, &courseModels.VideoEventCompletion{}, "1 = 1"))
	assert.EqualValues(t, 0, count(t, db, &courseModels.VideoProgress{}, "1 = 1"))

	assert.ElementsMatch(t, []string{
		videosBucket + "/a.mp4",
		videosBucket + "/b.mp4",
		thumbsBucket + "/go.png",
	}, store.removed)
}

func TestDeleteCourseCascadeEmptyCourse(t *testing.T) {
	db := newTestDB(t, "delete_course_empty")
	store := &fakeStore{}
	svc := NewService(db, store, videosBucket, thumbsBucket)

	course := courseModels.Course{OwnerID: 1, Title: "Empty"}
	require.NoError(t, db.Create(&course).Error)

	require.NoError(t, svc.DeleteCourseCascade(&course))
	assert.EqualValues(t, 0, count(t, db, &courseModels.Course{}, "id = ?", course.ID))
	assert.Empty(t, store.removed)
}

func TestDeleteCourseCascadeAbortsOnVideoFailure(t *testing.T) {
	db := newTestDB(t, "delete_course_abort")
	store := &fakeStore{fail: map[string]error{
		videosBucket + "/b.mp4": fmt.Errorf("storage returned 503"),
	}}
	svc := NewService(db, store, videosBucket, thumbsBucket)

	course := courseModels.Course{
		OwnerID:      1,
		Title:        "Go Basics",
		ThumbnailURL: storageBase + thumbsBucket + "/go.png",
	}
	require.NoError(t, db.Create(&course).Error)
	seedVideoTree(t, db, course.ID, storageBase+videosBucket+"/a.mp4")
	seedVideoTree(t, db, course.ID, storageBase+videosBucket+"/b.mp4")

	err := svc.DeleteCourseCascade(&course)
	require.Error(t, err)

	// The course row survives so a retry can resume the cascade
	assert.EqualValues(t, 1, count(t, db, &courseModels.Course{}, "id = ?", course.ID))
	// The thumbnail is untouched: the orchestrator aborted before reaching it
	assert.NotContains(t, store.removed, thumbsBucket+"/go.png")
	// The failed object is queued for the scheduler
	assert.EqualValues(t, 1, count(t, db, &courseModels.StorageCleanup{}, "object_path = ?", "b.mp4"))
}

func TestDeleteEventCascade(t *testing.T) {
	db := newTestDB(t, "delete_event_cascade")
	store := &fakeStore{}
	svc := NewService(db, store, videosBucket, thumbsBucket)

	video := seedVideoTree(t, db, "course-1", "")

	var quizEvent courseModels.TimelineEvent
	require.NoError(t, db.Where("video_id = ? AND type = ?", video.ID, courseModels.EventTypeQuiz).First(&quizEvent).Error)

	require.NoError(t, svc.DeleteEventCascade(&quizEvent))

	assert.EqualValues(t, 0, count(t, db, &courseModels.TimelineEvent{}, "id = ?", quizEvent.ID))
	assert.EqualValues(t, 0, count(t, db, &courseModels.Quiz{}, "event_id = ?", quizEvent.ID))
	assert.EqualValues(t, 0, count(t, db, &courseModels.QuizAttempt{}, "event_id = ?", quizEvent.ID))
	assert.EqualValues(t, 0, count(t, db, &courseModels.VideoEventCompletion{}, "event_id = ?", quizEvent.ID))

	// The video, its exam event and its progress are untouched
	assert.EqualValues(t, 1, count(t, db, &courseModels.Video{}, "id = ?", video.ID))
	assert.EqualValues(t, 1, count(t, db, &courseModels.TimelineEvent{}, "video_id = ?", video.ID))
	assert.EqualValues(t, 1, count(t, db, &courseModels.VideoProgress{}, "video_id = ?", video.ID))
}
