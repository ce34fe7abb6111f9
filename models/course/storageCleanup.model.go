package course

import "gorm.io/gorm"

// StorageCleanup queues an object whose database rows are already gone but
// whose storage removal failed. A scheduler retries these until the object
// is confirmed absent.
type StorageCleanup struct {
	gorm.Model
	Bucket     string `json:"bucket" gorm:"not null"`
	ObjectPath string `json:"object_path" gorm:"not null"`
	Attempts   int    `json:"attempts" gorm:"default:0"`
	LastError  string `json:"last_error"`
}
