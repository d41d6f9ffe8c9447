package tasks

import (
	"context"
	"time"

	"github.com/DefiantLabs/course-platform/catalog"
	"github.com/DefiantLabs/course-platform/config"
	dbTypes "github.com/DefiantLabs/course-platform/db"
	"github.com/go-co-op/gocron"
	"gorm.io/gorm"
)

// CatalogWarmTask rebuilds the cached catalog so API reads rarely pay for the merge.
func CatalogWarmTask(cat *catalog.Catalog) {
	config.Log.Debug("Task started for CatalogWarmTask")
	entries := cat.Refresh(context.Background())
	config.Log.Debugf("Task ended for CatalogWarmTask, %d catalog entries cached", len(entries))
}

// OrphanReportTask warns about courses saved off-chain longer than grace ago that were never created on-chain.
func OrphanReportTask(db *gorm.DB, grace time.Duration) int {
	orphans, err := dbTypes.GetCoursesWithoutChainCourse(db, time.Now().Add(-grace))
	if err != nil {
		config.Log.Error("Error in OrphanReportTask when reading courses", err)
		return 0
	}

	for _, course := range orphans {
		config.Log.Warnf("Course %s (chain id %s, %q) was never created on-chain", course.UUID, course.ChainID, course.Title)
	}
	return len(orphans)
}

// Schedule registers the periodic maintenance tasks on scheduler. It does not start the scheduler.
func Schedule(scheduler *gocron.Scheduler, db *gorm.DB, cat *catalog.Catalog, cacheWarmEvery, orphanEvery int64, orphanGrace time.Duration) error {
	if cacheWarmEvery > 0 {
		if _, err := scheduler.Every(int(cacheWarmEvery)).Seconds().Do(CatalogWarmTask, cat); err != nil {
			return err
		}
	}
	if orphanEvery > 0 {
		if _, err := scheduler.Every(int(orphanEvery)).Seconds().Do(OrphanReportTask, db, orphanGrace); err != nil {
			return err
		}
	}
	return nil
}
