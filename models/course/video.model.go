package course

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Video represents a single video within a course. VideoURL either points to
// an object in the videos bucket or to an external host, and may be empty.
type Video struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey"`
	CourseID    string    `json:"course_id" gorm:"type:uuid;index;not null"`
	OwnerID     uint      `json:"owner_id" gorm:"index;not null"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	VideoURL    string    `json:"video_url"`
	IsPublished bool      `json:"is_published" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (v *Video) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}
