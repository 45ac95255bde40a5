package service

import (
	"context"
	"fmt"
	"time"

	"go-inventory-ledger/internal/cache"
	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const maxMovementDays = 366

type DashboardService interface {
	GetDashboardStats(ctx context.Context) (*model.DashboardStats, error)
	GetStockMovement(ctx context.Context, days int) ([]model.StockMovementData, error)
	GetFinancialSummary(ctx context.Context, from, to time.Time) (*model.FinancialSummary, error)
}

type DashboardOptions struct {
	LowStockThreshold int
	CacheTTL          time.Duration
}

type dashboardService struct {
	analyticsRepo repository.AnalyticsRepository
	cache         cache.Cache
	log           *zap.Logger
	opts          DashboardOptions
	now           func() time.Time
	group         singleflight.Group
}

func NewDashboardService(analyticsRepo repository.AnalyticsRepository, c cache.Cache, log *zap.Logger, opts DashboardOptions) DashboardService {
	if c == nil {
		c = cache.NoopCache{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &dashboardService{
		analyticsRepo: analyticsRepo,
		cache:         c,
		log:           log.Named("dashboard"),
		opts:          opts,
		now:           time.Now,
	}
}

func (s *dashboardService) GetDashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	key := fmt.Sprintf("%sstats:%d", cache.DashboardPrefix, s.opts.LowStockThreshold)
	return loadThrough(ctx, s, key, func() (*model.DashboardStats, error) {
		return s.analyticsRepo.GetDashboardStats(s.opts.LowStockThreshold)
	})
}

func (s *dashboardService) GetStockMovement(ctx context.Context, days int) ([]model.StockMovementData, error) {
	if days < 1 || days > maxMovementDays {
		return nil, invalidInput("days must be between 1 and %d", maxMovementDays)
	}
	key := fmt.Sprintf("%smovement:%d", cache.DashboardPrefix, days)
	return loadThrough(ctx, s, key, func() ([]model.StockMovementData, error) {
		endDate := s.now()
		y, m, d := endDate.Date()
		startDate := time.Date(y, m, d-(days-1), 0, 0, 0, 0, endDate.Location())
		return s.analyticsRepo.GetStockMovement(startDate, endDate)
	})
}

func (s *dashboardService) GetFinancialSummary(ctx context.Context, from, to time.Time) (*model.FinancialSummary, error) {
	if to.Before(from) {
		return nil, invalidInput("'to' must not be before 'from'")
	}
	key := fmt.Sprintf("%sfinancial:%d:%d", cache.DashboardPrefix, from.Unix(), to.Unix())
	return loadThrough(ctx, s, key, func() (*model.FinancialSummary, error) {
		return s.analyticsRepo.GetFinancialSummary(from, to)
	})
}

// loadThrough serves key from the cache. On a miss, concurrent callers share one fetch.
func loadThrough[T any](ctx context.Context, s *dashboardService, key string, fetch func() (T, error)) (T, error) {
	var hit T
	if s.cached(ctx, key, &hit) {
		return hit, nil
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		fresh, err := fetch()
		if err != nil {
			return nil, err
		}
		s.store(ctx, key, fresh)
		return fresh, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// cached reports a hit. Cache errors are logged and treated as misses.
func (s *dashboardService) cached(ctx context.Context, key string, dest interface{}) bool {
	hit, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.log.Warn("dashboard cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return hit
}

func (s *dashboardService) store(ctx context.Context, key string, value interface{}) {
	if s.opts.CacheTTL <= 0 {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.opts.CacheTTL); err != nil {
		s.log.Warn("dashboard cache write failed", zap.String("key", key), zap.Error(err))
	}
}
