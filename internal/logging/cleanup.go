package logging

import (
	"log/slog"
	"time"

	"github.com/bettermespace/backend/internal/models"
	"gorm.io/gorm"
)

// Mirrored error logs are kept this long before the daily sweep drops them.
const logRetention = 30 * 24 * time.Hour

// StartCleanup owns the retention sweep for the system_logs table. It runs
// until done is closed; deletions happen at most once a day.
func StartCleanup(db *gorm.DB, done chan struct{}) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				cutoff := time.Now().Add(-logRetention)
				result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
				if result.Error != nil {
					slog.Error("log cleanup failed", "error", result.Error)
				} else if result.RowsAffected > 0 {
					slog.Info("log cleanup completed", "deleted", result.RowsAffected)
				}
			case <-done:
				return
			}
		}
	}()
}
