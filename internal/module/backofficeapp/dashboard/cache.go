package dashboard

import (
	"fmt"
	"time"

	"github.com/EzraHwang/BTSBackoffice/pkg/memcache"
)

// statsCache keeps recently aggregated results for a short window so bursts
// of identical requests do not hammer the provider. Entries stay fresh for
// at most the absolute TTL; a read extends an entry by the sliding window up
// to that cap. There is no single-flight: concurrent misses for one key may
// each reach the provider, and the last write wins.
type statsCache struct {
	store    *memcache.Store
	absolute time.Duration
	sliding  time.Duration
}

func newStatsCache(store *memcache.Store, absolute, sliding time.Duration) *statsCache {
	return &statsCache{
		store:    store,
		absolute: absolute,
		sliding:  sliding,
	}
}

func cacheKey(keyword string, dateRange DateRange) string {
	return fmt.Sprintf("dashboard:%s:%s:%s",
		keyword,
		dateRange.Start.Format("2006-01-02"),
		dateRange.End.Format("2006-01-02"),
	)
}

func (c *statsCache) Get(key string) (DashboardStats, bool) {
	v, ok := c.store.Get(key)
	if !ok {
		return DashboardStats{}, false
	}

	stats, ok := v.(DashboardStats)
	return stats, ok
}

func (c *statsCache) Set(key string, stats DashboardStats) {
	c.store.SetWithSliding(key, stats, c.absolute, c.sliding)
}
