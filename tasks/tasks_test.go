package tasks

import (
	"context"
	"testing"
	"time"

	"github.com/DefiantLabs/course-platform/catalog"
	"github.com/DefiantLabs/course-platform/db"
	"github.com/DefiantLabs/course-platform/db/dbtest"
	"github.com/go-co-op/gocron"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrphanReportTask(t *testing.T) {
	gormDB := dbtest.New(t)

	old := &db.Course{UUID: "uuid-old", ChainID: "1", Title: "old", CreatorAddress: "0x1", CreatedAt: time.Now().Add(-3 * time.Hour)}
	fresh := &db.Course{UUID: "uuid-fresh", ChainID: "2", Title: "fresh", CreatorAddress: "0x1"}
	require.NoError(t, db.CreateCourse(gormDB, old))
	require.NoError(t, db.CreateCourse(gormDB, fresh))

	assert.Equal(t, 1, OrphanReportTask(gormDB, time.Hour))

	require.NoError(t, gormDB.Create(&db.ChainUser{ID: "0x1"}).Error)
	require.NoError(t, gormDB.Create(&db.ChainCourse{ID: "1", CreatorID: "0x1"}).Error)
	assert.Equal(t, 0, OrphanReportTask(gormDB, time.Hour))
}

type countingCache struct {
	sets int
}

func (c *countingCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (c *countingCache) Set(context.Context, string, []byte) error {
	c.sets++
	return nil
}
func (c *countingCache) Delete(context.Context, string) error { return nil }

func TestCatalogWarmTaskStoresCatalog(t *testing.T) {
	cache := &countingCache{}
	CatalogWarmTask(catalog.New(dbtest.New(t), cache))
	assert.Equal(t, 1, cache.sets)
}

func TestSchedule(t *testing.T) {
	gormDB := dbtest.New(t)
	scheduler := gocron.NewScheduler(time.UTC)

	require.NoError(t, Schedule(scheduler, gormDB, catalog.New(gormDB, nil), 60, 3600, time.Hour))
	assert.Len(t, scheduler.Jobs(), 2)

	disabled := gocron.NewScheduler(time.UTC)
	require.NoError(t, Schedule(disabled, gormDB, catalog.New(gormDB, nil), 0, 0, time.Hour))
	assert.Empty(t, disabled.Jobs())
}
