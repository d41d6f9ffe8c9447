// Package catalog joins off-chain course metadata with indexed chain state.
package catalog

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/DefiantLabs/course-platform/config"
	"github.com/DefiantLabs/course-platform/db"
	"github.com/DefiantLabs/course-platform/util"
	"gorm.io/gorm"
)

const cacheKey = "catalog"

type Creator struct {
	ID string `json:"id"`
}

// Entry is one course as the frontend renders it.
type Entry struct {
	ID            string    `json:"id"`
	UUID          string    `json:"uuid"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	ContentURL    *string   `json:"content_url"`
	Creator       Creator   `json:"creator"`
	PriceInYd     string    `json:"priceInYd"`
	PurchaseCount string    `json:"purchaseCount"`
	ChainID       string    `json:"chain_id"`
	OnChain       bool      `json:"onChain"`
	CreatedAt     time.Time `json:"created_at"`
}

// Merge keeps the order of courses and fills chain fields from the indexed course with the same chain id.
// Courses that never made it on-chain keep a price and purchase count of "0".
func Merge(courses []db.Course, chainCourses []db.ChainCourse) []Entry {
	byID := make(map[string]db.ChainCourse, len(chainCourses))
	for _, c := range chainCourses {
		byID[c.ID] = c
	}

	entries := make([]Entry, 0, len(courses))
	for _, course := range courses {
		entry := Entry{
			ID:            course.ChainID,
			UUID:          course.UUID,
			Title:         course.Title,
			Description:   course.Description,
			ContentURL:    course.ContentURL,
			Creator:       Creator{ID: course.CreatorAddress},
			PriceInYd:     "0",
			PurchaseCount: "0",
			ChainID:       course.ChainID,
			CreatedAt:     course.CreatedAt,
		}
		if entry.ID == "" {
			entry.ID = course.UUID
		}
		if chainCourse, ok := byID[course.ChainID]; ok && course.ChainID != "" {
			entry.PriceInYd = util.NumericToString(chainCourse.PriceInYd)
			entry.PurchaseCount = decimalString(chainCourse.PurchaseCount)
			entry.OnChain = true
		}
		entries = append(entries, entry)
	}
	return entries
}

// Cache stores the serialized catalog.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type noopCache struct{}

func (noopCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (noopCache) Set(context.Context, string, []byte) error         { return nil }
func (noopCache) Delete(context.Context, string) error              { return nil }

type Catalog struct {
	db    *gorm.DB
	cache Cache

	// generation counts invalidations; a build started before one must not be stored after it
	mu         sync.Mutex
	generation uint64
}

// New returns a Catalog reading from gormDB. A nil cache disables caching.
func New(gormDB *gorm.DB, cache Cache) *Catalog {
	if cache == nil {
		cache = noopCache{}
	}
	return &Catalog{db: gormDB, cache: cache}
}

// Entries serves the catalog from cache, building and storing it on a miss.
// Cache failures are logged and fall back to the database.
func (c *Catalog) Entries(ctx context.Context) []Entry {
	data, found, err := c.cache.Get(ctx, cacheKey)
	if err != nil {
		config.Log.Warn("Catalog cache read failed", err)
	}
	if found {
		var entries []Entry
		if err := json.Unmarshal(data, &entries); err == nil {
			return entries
		}
		config.Log.Warn("Discarding unreadable cached catalog", err)
	}

	return c.Refresh(ctx)
}

// Build merges the current database state. A source that cannot be read is logged and treated as empty.
func (c *Catalog) Build(ctx context.Context) []Entry {
	gormDB := c.db.WithContext(ctx)

	courses, err := db.GetCourses(gormDB)
	if err != nil {
		config.Log.Error("Error reading courses for catalog", err)
		courses = nil
	}

	chainCourses, err := db.GetChainCourses(gormDB)
	if err != nil {
		config.Log.Error("Error reading indexed courses for catalog", err)
		chainCourses = nil
	}

	return Merge(courses, chainCourses)
}

// Refresh rebuilds the catalog and replaces the cached copy.
func (c *Catalog) Refresh(ctx context.Context) []Entry {
	generation := c.currentGeneration()
	entries := c.Build(ctx)
	c.store(ctx, generation, entries)
	return entries
}

func (c *Catalog) currentGeneration() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// store caches entries unless the catalog was invalidated after generation was read.
func (c *Catalog) store(ctx context.Context, generation uint64, entries []Entry) {
	data, err := json.Marshal(entries)
	if err != nil {
		config.Log.Error("Error serializing catalog", err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if generation != c.generation {
		config.Log.Debug("Skipping cache write for a catalog built before the last invalidation")
		return
	}
	if err := c.cache.Set(ctx, cacheKey, data); err != nil {
		config.Log.Warn("Catalog cache write failed", err)
	}
}

// Invalidate drops the cached catalog so the next read rebuilds it.
func (c *Catalog) Invalidate(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	if err := c.cache.Delete(ctx, cacheKey); err != nil {
		config.Log.Warn("Catalog cache invalidation failed", err)
	}
}

func decimalString(n int64) string {
	return strconv.FormatInt(n, 10)
}
