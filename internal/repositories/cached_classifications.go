package repositories

import (
	"context"
	gocache "github.com/patrickmn/go-cache"
	"github.com/vacsdata/sj-parser/internal/entities"
	"time"
)

const eligibleCacheKey = "eligible"

type classificationRepository interface {
	Eligible(ctx context.Context) ([]entities.ClassificationEntry, error)
}

// CachedClassifications avoids rereading the taxonomy on every scheduled run;
// the reference table changes a few times a year at most.
type CachedClassifications struct {
	repo  classificationRepository
	cache *gocache.Cache
}

func NewCachedClassifications(repo classificationRepository) *CachedClassifications {
	return &CachedClassifications{repo: repo, cache: gocache.New(12*time.Hour, 24*time.Hour)}
}

func (c CachedClassifications) Eligible(ctx context.Context) ([]entities.ClassificationEntry, error) {
	if value, found := c.cache.Get(eligibleCacheKey); found {
		return value.([]entities.ClassificationEntry), nil
	}

	entries, err := c.repo.Eligible(ctx)
	if err == nil && len(entries) > 0 {
		if err = c.cache.Add(eligibleCacheKey, entries, gocache.DefaultExpiration); err != nil {
			return entries, err
		}
	}

	return entries, err
}
