package analytics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/mcoot/blogadmin/internal/dependencies/clock"
	"github.com/mcoot/blogadmin/internal/metrics"
	"github.com/mcoot/blogadmin/internal/model"
	"github.com/mcoot/blogadmin/internal/storage"
)

// Errors
var (
	ErrInvalidWindow    = errors.New("invalid window")
	ErrStoreUnavailable = errors.New("store unavailable")
)

const (
	// DefaultWindowDays is used when a caller does not ask for a window
	DefaultWindowDays = 7
	// MaxWindowDays bounds the time series length
	MaxWindowDays = 366

	// UncategorizedLabel collects posts with a missing or dangling category
	UncategorizedLabel = "Uncategorized"
)

// Store is the slice of the record store the aggregator reads from
type Store interface {
	storage.ContentStore
	CategoryNames(ctx context.Context, ids []model.CategoryID) (map[model.CategoryID]string, error)
	CountCategories(ctx context.Context) (int64, error)
	CountAdmins(ctx context.Context) (int64, error)
}

// Performance is the dashboard chart payload
type Performance struct {
	TimeSeries []model.TimeBucket
	Categories []model.CategoryTally
}

// Stats are the dashboard headline counts
type Stats struct {
	AdminCount    int64
	CategoryCount int64
	BlogCount     int64
	// TotalViews is not tracked yet and is always zero
	TotalViews int64
}

// Service computes dashboard analytics over the content store
type Service struct {
	store    Store
	clock    clock.Clock
	location *time.Location
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// New creates a new analytics Service. Calendar days are taken in loc;
// a nil loc means time.Local.
func New(store Store, clk clock.Clock, loc *time.Location, m *metrics.Metrics, logger *slog.Logger) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		store:    store,
		clock:    clk,
		location: loc,
		metrics:  m,
		logger:   logger,
	}
}

// TimeSeries returns one bucket per calendar day for the windowDays days
// ending today, oldest first. Days without posts have a zero count.
func (s *Service) TimeSeries(ctx context.Context, windowDays int) ([]model.TimeBucket, error) {
	if windowDays < 1 || windowDays > MaxWindowDays {
		return nil, fmt.Errorf("%w: %d days, expected 1 to %d", ErrInvalidWindow, windowDays, MaxWindowDays)
	}
	defer s.observe("time_series")()

	now := s.clock.Now().In(s.location)
	start := clock.Today(s.clock, s.location).AddDate(0, 0, -(windowDays - 1))

	counts, err := s.store.CountVisibleByDay(ctx, model.DayCountQuery{
		Now:      now,
		Since:    start,
		Until:    now,
		Location: s.location,
	})
	if err != nil {
		return nil, s.storeError("time series", err)
	}

	buckets := make([]model.TimeBucket, 0, windowDays)
	for i := 0; i < windowDays; i++ {
		day := start.AddDate(0, 0, i).Format(model.DayFormat)
		buckets = append(buckets, model.TimeBucket{Date: day, Count: counts[day]})
	}
	return buckets, nil
}

// CategoryBreakdown counts visible posts per category. Posts without a
// category, or whose category no longer exists, share one Uncategorized
// tally. Tallies are ordered by count, largest first, then by label.
func (s *Service) CategoryBreakdown(ctx context.Context) ([]model.CategoryTally, error) {
	defer s.observe("category_breakdown")()

	groups, err := s.store.CountVisibleByCategory(ctx, s.clock.Now())
	if err != nil {
		return nil, s.storeError("category breakdown", err)
	}

	ids := make([]model.CategoryID, 0, len(groups))
	for _, g := range groups {
		if g.CategoryID != "" {
			ids = append(ids, g.CategoryID)
		}
	}

	names := map[model.CategoryID]string{}
	if len(ids) > 0 {
		names, err = s.store.CategoryNames(ctx, ids)
		if err != nil {
			return nil, s.storeError("category names", err)
		}
	}

	tallies := make([]model.CategoryTally, 0, len(groups))
	uncategorized := 0
	for _, g := range groups {
		name, ok := names[g.CategoryID]
		if g.CategoryID == "" || !ok {
			uncategorized += g.Count
			continue
		}
		tallies = append(tallies, model.CategoryTally{Label: name, Count: g.Count})
	}
	if uncategorized > 0 {
		tallies = append(tallies, model.CategoryTally{Label: UncategorizedLabel, Count: uncategorized})
	}

	sort.SliceStable(tallies, func(i, j int) bool {
		if tallies[i].Count != tallies[j].Count {
			return tallies[i].Count > tallies[j].Count
		}
		return tallies[i].Label < tallies[j].Label
	})
	return tallies, nil
}

// Performance computes both dashboard charts. Either query failing fails
// the whole call.
func (s *Service) Performance(ctx context.Context, windowDays int) (*Performance, error) {
	series, err := s.TimeSeries(ctx, windowDays)
	if err != nil {
		return nil, err
	}
	categories, err := s.CategoryBreakdown(ctx)
	if err != nil {
		return nil, err
	}
	return &Performance{TimeSeries: series, Categories: categories}, nil
}

// Stats returns the dashboard headline counts
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	defer s.observe("stats")()

	admins, err := s.store.CountAdmins(ctx)
	if err != nil {
		return nil, s.storeError("count admins", err)
	}
	categories, err := s.store.CountCategories(ctx)
	if err != nil {
		return nil, s.storeError("count categories", err)
	}
	blogs, err := s.store.CountListedBlogs(ctx)
	if err != nil {
		return nil, s.storeError("count blogs", err)
	}

	return &Stats{
		AdminCount:    admins,
		CategoryCount: categories,
		BlogCount:     blogs,
	}, nil
}

func (s *Service) observe(query string) func() {
	start := time.Now()
	return func() {
		s.metrics.AggregationDuration.WithLabelValues(query).Observe(time.Since(start).Seconds())
	}
}

func (s *Service) storeError(op string, err error) error {
	s.logger.Error("aggregation failed", slog.String("query", op), slog.String("error", err.Error()))
	return fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, op, err)
}
