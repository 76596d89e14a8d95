package dashboard

import (
	"context"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/EzraHwang/BTSBackoffice/pkg/errors"
	"github.com/EzraHwang/BTSBackoffice/pkg/memcache"
)

type DashboardUseCase interface {
	GetDashboard(ctx context.Context, req GetDashboardRequest) (GetDashboardResponse, error)
}

type dashboardUseCase struct {
	logger              *logrus.Logger
	timeout             time.Duration
	location            *time.Location
	labels              map[string]string
	orderInfoRepository OrderInfoRepository
	cache               *statsCache
	fallback            *fallbackGenerator
	now                 func() time.Time
}

type DashboardUseCaseProperty struct {
	Logger              *logrus.Logger
	Timeout             time.Duration
	Location            *time.Location
	TicketTypeLabels    map[string]string
	OrderInfoRepository OrderInfoRepository
	CacheStore          *memcache.Store
	CacheTTL            time.Duration
	CacheSlidingTTL     time.Duration
	Rand                *rand.Rand
}

func NewDashboardUseCase(props DashboardUseCaseProperty) DashboardUseCase {
	return &dashboardUseCase{
		logger:              props.Logger,
		timeout:             props.Timeout,
		location:            props.Location,
		labels:              props.TicketTypeLabels,
		orderInfoRepository: props.OrderInfoRepository,
		cache:               newStatsCache(props.CacheStore, props.CacheTTL, props.CacheSlidingTTL),
		fallback:            newFallbackGenerator(props.Rand),
		now:                 time.Now,
	}
}

// GetDashboard implements DashboardUseCase. Resolution order: symbolic range
// to date bounds, cache lookup, provider fetch plus aggregation on a miss.
// Any failure along the fetch-or-aggregate path degrades to synthetic
// fallback data; no error escapes to the caller from that path.
func (u *dashboardUseCase) GetDashboard(ctx context.Context, req GetDashboardRequest) (GetDashboardResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	dateRange := resolveDateRange(req.Range, req.StartDate, req.EndDate, u.location, u.now())
	key := cacheKey(req.Range, dateRange)

	stats, cached := u.cache.Get(key)
	if !cached {
		stats = u.loadStats(ctx, key, dateRange)
	}

	resp := GetDashboardResponse{}
	resp.PopulateFromEntity(stats, req.Range, u.now().In(u.location))

	return resp, nil
}

// loadStats fetches and aggregates one range, caching the result. Fetch
// failures and aggregation panics both degrade to fallback data, which is
// never cached so the next request retries the provider.
func (u *dashboardUseCase) loadStats(ctx context.Context, key string, dateRange DateRange) (stats DashboardStats) {
	defer func() {
		if rec := recover(); rec != nil {
			u.logger.WithContext(ctx).WithField("panic", rec).Error("dashboard aggregation failed, serving fallback data")
			stats = u.fallback.Generate(dateRange)
		}
	}()

	orderInfos, err := u.orderInfoRepository.GetOrderInfos(ctx, dateRange, TicketTypeAll)
	if err != nil {
		ae := errors.Destruct(err)
		u.logger.WithContext(ctx).WithFields(logrus.Fields{
			"status": ae.Status,
		}).Warn("order info fetch failed, serving fallback data")

		return u.fallback.Generate(dateRange)
	}

	stats = aggregateOrderData(orderInfos, dateRange, u.labels)
	u.cache.Set(key, stats)

	return stats
}
