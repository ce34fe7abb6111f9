package course

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Course represents a learning course owned by a teacher
type Course struct {
	ID           string         `json:"id" gorm:"type:uuid;primaryKey"`
	OwnerID      uint           `json:"owner_id" gorm:"index;not null"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Tags         datatypes.JSON `json:"tags"` // JSON array of tag strings
	ThumbnailURL string         `json:"thumbnail_url"`
	IsPublished  bool           `json:"is_published" gorm:"default:false"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
