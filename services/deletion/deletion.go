package deletion

import (
	"errors"
	"fmt"
	"log"

	courseModels "edustream/models/course"
	"edustream/storage"

	"gorm.io/gorm"
)

// Service performs privileged cascading deletes across the course ownership
// tree (course owns videos, videos own timeline events and progress, events
// own quizzes, attempts, launches and completions) and cleans up the backing
// storage objects.
//
// It holds the elevated database handle and storage accessor directly, so it
// must only be reached from handlers that have already authorized the caller
// against the resource owner.
type Service struct {
	db               *gorm.DB
	store            storage.ObjectStore
	videosBucket     string
	thumbnailsBucket string
}

// NewService wires the deletion service with its privileged collaborators
func NewService(db *gorm.DB, store storage.ObjectStore, videosBucket, thumbnailsBucket string) *Service {
	return &Service{
		db:               db,
		store:            store,
		videosBucket:     videosBucket,
		thumbnailsBucket: thumbnailsBucket,
	}
}

// DeleteVideoCascade removes a video row, every dependent row, and the stored
// video object. Row deletes run in one transaction, children before parents;
// the storage removal runs after commit so a failure there can never leave a
// dangling database row. Every step matches zero rows on retry, so the whole
// operation is idempotent.
func (s *Service) DeleteVideoCascade(video *courseModels.Video) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var eventIDs []string
		if err := tx.Model(&courseModels.TimelineEvent{}).
			Where("video_id = ?", video.ID).
			Pluck("id", &eventIDs).Error; err != nil {
			return fmt.Errorf("fetch timeline events: %w", err)
		}

		if len(eventIDs) > 0 {
			if err := deleteEventChildren(tx, eventIDs); err != nil {
				return err
			}
			if err := tx.Unscoped().Where("video_id = ?", video.ID).
				Delete(&courseModels.TimelineEvent{}).Error; err != nil {
				return fmt.Errorf("delete timeline events: %w", err)
			}
		}

		if err := tx.Unscoped().Where("video_id = ?", video.ID).
			Delete(&courseModels.VideoProgress{}).Error; err != nil {
			return fmt.Errorf("delete video progress: %w", err)
		}

		if err := tx.Unscoped().Where("id = ?", video.ID).
			Delete(&courseModels.Video{}).Error; err != nil {
			return fmt.Errorf("delete video: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return s.removeStoredObject(s.videosBucket, video.VideoURL)
}

// DeleteCourseCascade removes a course, all of its videos (each through
// DeleteVideoCascade), and the course thumbnail. If any single video cascade
// fails the operation aborts with the course row intact; a retry resumes
// where the failed attempt left off.
func (s *Service) DeleteCourseCascade(course *courseModels.Course) error {
	var videos []courseModels.Video
	if err := s.db.Where("course_id = ?", course.ID).Find(&videos).Error; err != nil {
		return fmt.Errorf("fetch course videos: %w", err)
	}

	for i := range videos {
		if err := s.DeleteVideoCascade(&videos[i]); err != nil {
			return fmt.Errorf("cascade video %s: %w", videos[i].ID, err)
		}
	}

	if err := s.removeStoredObject(s.thumbnailsBucket, course.ThumbnailURL); err != nil {
		return err
	}

	if err := s.db.Unscoped().Where("id = ?", course.ID).
		Delete(&courseModels.Course{}).Error; err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	return nil
}

// DeleteEventCascade removes a single timeline event and its dependent rows
func (s *Service) DeleteEventCascade(event *courseModels.TimelineEvent) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := deleteEventChildren(tx, []string{event.ID}); err != nil {
			return err
		}
		if err := tx.Unscoped().Where("id = ?", event.ID).
			Delete(&courseModels.TimelineEvent{}).Error; err != nil {
			return fmt.Errorf("delete timeline event: %w", err)
		}
		return nil
	})
}

// deleteEventChildren sweeps every table referencing the given event ids.
// Batched IN deletes keep this at one round trip per table regardless of
// event count.
func deleteEventChildren(tx *gorm.DB, eventIDs []string) error {
	if err := tx.Unscoped().Where("event_id IN ?", eventIDs).
		Delete(&courseModels.Quiz{}).Error; err != nil {
		return fmt.Errorf("delete quizzes: %w", err)
	}
	if err := tx.Unscoped().Where("event_id IN ?", eventIDs).
		Delete(&courseModels.QuizAttempt{}).Error; err != nil {
		return fmt.Errorf("delete quiz attempts: %w", err)
	}
	if err := tx.Unscoped().Where("event_id IN ?", eventIDs).
		Delete(&courseModels.ExamLaunch{}).Error; err != nil {
		return fmt.Errorf("delete exam launches: %w", err)
	}
	if err := tx.Unscoped().Where("event_id IN ?", eventIDs).
		Delete(&courseModels.VideoEventCompletion{}).Error; err != nil {
		return fmt.Errorf("delete event completions: %w", err)
	}
	return nil
}

// removeStoredObject resolves a stored public URL against bucket and removes
// the object. Unresolvable URLs (external host, empty, other bucket) mean
// nothing to delete. An already-absent object counts as success. Any other
// failure is queued for the cleanup scheduler and surfaced, since the rows
// referencing the URL are gone at this point.
func (s *Service) removeStoredObject(bucket, publicURL string) error {
	objectPath, ok := storage.ResolveObjectPath(publicURL, bucket)
	if !ok {
		return nil
	}

	err := s.store.RemoveObject(bucket, objectPath)
	if err == nil || errors.Is(err, storage.ErrObjectNotFound) {
		return nil
	}

	s.queueCleanup(bucket, objectPath, err)
	return fmt.Errorf("remove storage object: %w", err)
}

// queueCleanup records a failed removal so the scheduler can retry it.
// Best effort: the rows are already gone, losing the queue entry only costs
// an orphaned object.
func (s *Service) queueCleanup(bucket, objectPath string, cause error) {
	entry := courseModels.StorageCleanup{
		Bucket:     bucket,
		ObjectPath: objectPath,
		LastError:  cause.Error(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		log.Printf("Failed to queue storage cleanup for %s/%s: %v", bucket, objectPath, err)
	}
}
