package course

import "gorm.io/gorm"

// QuizAttempt records a student's answer to a quiz event. Append-only log.
type QuizAttempt struct {
	gorm.Model
	UserID        uint   `json:"user_id" gorm:"index;not null"`
	EventID       string `json:"event_id" gorm:"type:uuid;index;not null"`
	SelectedIndex int    `json:"selected_index"`
	IsCorrect     bool   `json:"is_correct" gorm:"default:false"`
}

// ExamLaunch records a student opening an external exam. Append-only log.
type ExamLaunch struct {
	gorm.Model
	UserID  uint   `json:"user_id" gorm:"index;not null"`
	EventID string `json:"event_id" gorm:"type:uuid;index;not null"`
}

// VideoEventCompletion marks a checkpoint as passed, once per (user, event)
type VideoEventCompletion struct {
	gorm.Model
	UserID  uint   `json:"user_id" gorm:"uniqueIndex:idx_completion_user_event;not null"`
	EventID string `json:"event_id" gorm:"type:uuid;uniqueIndex:idx_completion_user_event;not null"`
}

// VideoProgress tracks how far into a video a student may seek, once per
// (user, video)
type VideoProgress struct {
	gorm.Model
	UserID          uint   `json:"user_id" gorm:"uniqueIndex:idx_progress_user_video;not null"`
	VideoID         string `json:"video_id" gorm:"type:uuid;uniqueIndex:idx_progress_user_video;not null"`
	UnlockedSeconds int    `json:"unlocked_seconds" gorm:"default:0"`
}
