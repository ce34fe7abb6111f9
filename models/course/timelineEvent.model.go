package course

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Timeline event types
const (
	EventTypeQuiz       = "QUIZ"
	EventTypeSimulation = "SIMULATION"
	EventTypeExam       = "EXAM"
)

// TimelineEvent is a timestamped checkpoint attached to a video. Playback
// past a required event stays locked until the student passes it.
type TimelineEvent struct {
	ID        string         `json:"id" gorm:"type:uuid;primaryKey"`
	VideoID   string         `json:"video_id" gorm:"type:uuid;index;not null"`
	Type      string         `json:"type" gorm:"not null"` // QUIZ, SIMULATION, EXAM
	AtSeconds int            `json:"at_seconds" gorm:"default:0"`
	Required  bool           `json:"required" gorm:"default:false"`
	Payload   datatypes.JSON `json:"payload"` // type-specific: exam URL, simulation asset URL, ...
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (e *TimelineEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// Quiz holds the question attached to a QUIZ timeline event (1:1)
type Quiz struct {
	ID           string         `json:"id" gorm:"type:uuid;primaryKey"`
	EventID      string         `json:"event_id" gorm:"type:uuid;uniqueIndex;not null"`
	Question     string         `json:"question"`
	Options      datatypes.JSON `json:"options"` // JSON array of option strings
	CorrectIndex int            `json:"correct_index" gorm:"default:0"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (q *Quiz) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}
