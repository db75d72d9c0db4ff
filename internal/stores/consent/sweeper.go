package consent

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// StartSweeper schedules a periodic purge of stale consent entries. Returns
// the cron runner so the caller can stop it on shutdown.
func StartSweeper(store *Store, schedule string, maxAge time.Duration) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(schedule, func() {
		if purged := store.Sweep(maxAge); purged > 0 {
			log.Printf("[CONSENT]: purged %d stale consent entries", purged)
		}
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	return c, nil
}
