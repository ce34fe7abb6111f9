package utils

import (
	"edustream/database"
	courseModels "edustream/models/course"
	"edustream/storage"
	"errors"
	"log"

	"github.com/robfig/cron/v3"
)

// InitializeCleanupScheduler sets up the storage cleanup retry scheduler
func InitializeCleanupScheduler(store storage.ObjectStore) {
	log.Println("[CLEANUP-SCHEDULER] Initializing storage cleanup scheduler...")

	c := cron.New()

	// Retry queued storage removals every 15 minutes
	c.AddFunc("*/15 * * * *", func() {
		ProcessStorageCleanups(store)
	})

	c.Start()
	log.Println("[CLEANUP-SCHEDULER] Storage cleanup scheduler started - runs every 15 minutes")
}

// ProcessStorageCleanups retries every queued storage removal. Entries whose
// object is gone (removed or already absent) are dropped from the queue;
// failures stay queued with the attempt count and last error updated.
func ProcessStorageCleanups(store storage.ObjectStore) {
	db := database.Database.Db

	var pending []courseModels.StorageCleanup
	if err := db.Find(&pending).Error; err != nil {
		log.Printf("[CLEANUP-SCHEDULER] Error fetching cleanup queue: %v", err)
		return
	}
	if len(pending) == 0 {
		return
	}

	log.Printf("[CLEANUP-SCHEDULER] Retrying %d queued storage removals", len(pending))

	for _, entry := range pending {
		err := store.RemoveObject(entry.Bucket, entry.ObjectPath)
		if err == nil || errors.Is(err, storage.ErrObjectNotFound) {
			if err := db.Unscoped().Delete(&entry).Error; err != nil {
				log.Printf("[CLEANUP-SCHEDULER] Error dropping cleanup entry %d: %v", entry.ID, err)
			}
			continue
		}

		entry.Attempts++
		entry.LastError = err.Error()
		if err := db.Save(&entry).Error; err != nil {
			log.Printf("[CLEANUP-SCHEDULER] Error updating cleanup entry %d: %v", entry.ID, err)
		}
	}
}
