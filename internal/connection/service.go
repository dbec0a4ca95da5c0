package connection

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"flightconnect/pkg/cache"
	"flightconnect/pkg/flighttime"
	"flightconnect/pkg/logger"
)

type ItinerarySearcher interface {
	Search(ctx context.Context, req SearchRequest) ([]Itinerary, error)
}

// SnapshotVersioner reports the schedule snapshot in use, so cached results
// never outlive the data they were computed from.
type SnapshotVersioner interface {
	Version() uint64
}

type Service struct {
	searcher ItinerarySearcher
	cache    cache.Cache
	ttl      time.Duration
	snapshot SnapshotVersioner
	logger   logger.Logger
	metrics  serviceMetrics
}

type serviceMetrics struct {
	searches metric.Int64Counter
	results  metric.Int64Histogram
	latency  metric.Float64Histogram
}

func NewService(searcher ItinerarySearcher, c cache.Cache, ttlMinutes int, snapshot SnapshotVersioner, log logger.Logger) *Service {
	if c == nil {
		c = cache.NoOp{}
	}
	metrics, err := newServiceMetrics(otel.Meter(tracerName))
	if err != nil {
		log.Warn("connection metrics unavailable", logger.Err(err))
		metrics, _ = newServiceMetrics(noop.NewMeterProvider().Meter(tracerName))
	}
	return &Service{
		searcher: searcher,
		cache:    c,
		ttl:      time.Duration(ttlMinutes) * time.Minute,
		snapshot: snapshot,
		logger:   log,
		metrics:  metrics,
	}
}

func newServiceMetrics(meter metric.Meter) (serviceMetrics, error) {
	var m serviceMetrics
	var err error
	var errs []error

	m.searches, err = meter.Int64Counter("connection.searches",
		metric.WithDescription("Connection searches served, by cache outcome"))
	errs = append(errs, err)
	m.results, err = meter.Int64Histogram("connection.results",
		metric.WithDescription("Itineraries returned per search"))
	errs = append(errs, err)
	m.latency, err = meter.Float64Histogram("connection.search.duration",
		metric.WithDescription("Search pipeline latency"), metric.WithUnit("ms"))
	errs = append(errs, err)

	return m, errors.Join(errs...)
}

// generateCacheKey creates a deterministic key from the effective request and snapshot version
func (s *Service) generateCacheKey(req SearchRequest) string {
	var version uint64
	if s.snapshot != nil {
		version = s.snapshot.Version()
	}
	key := fmt.Sprintf("connections:%s:%s:%s:%s:%d:%d:%d:%d",
		req.Origin,
		req.Destination,
		req.Date.Format(flighttime.DateLayout),
		req.Cabin,
		req.Passengers,
		req.MinLayoverMinutes,
		req.MaxLayoverHours,
		version,
	)

	hash := sha256.Sum256([]byte(key))
	return fmt.Sprintf("flight:connections:%x", hash[:16])
}

// Search serves a cached response when one exists for the current snapshot.
// hit reports whether it did.
func (s *Service) Search(ctx context.Context, req SearchRequest) (resp *SearchResponse, hit bool, err error) {
	cacheKey := s.generateCacheKey(req)

	if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != "" {
		var response SearchResponse
		if err := json.Unmarshal([]byte(cached), &response); err == nil {
			s.logger.Debug("Cache hit for connection search", logger.Field{Key: "cache_key", Value: cacheKey})
			s.record(ctx, "hit", response.Count)
			return &response, true, nil
		}
		s.logger.Error("Failed to unmarshal cached data", logger.Field{Key: "cache_key", Value: cacheKey})
	} else if err != nil && !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn("Cache read failed", logger.Err(err), logger.Field{Key: "cache_key", Value: cacheKey})
	}

	start := time.Now()
	its, err := s.searcher.Search(ctx, req)
	if err != nil {
		return nil, false, internalError(err)
	}
	elapsed := time.Since(start)
	s.metrics.latency.Record(ctx, float64(elapsed.Microseconds())/1000)

	response := NewSearchResponse(req, its)
	s.logger.Info("Connection search completed",
		logger.Field{Key: "from", Value: req.Origin},
		logger.Field{Key: "to", Value: req.Destination},
		logger.Field{Key: "date", Value: req.Date.Format(flighttime.DateLayout)},
		logger.Field{Key: "results", Value: response.Count},
		logger.Field{Key: "elapsed", Value: elapsed},
	)
	s.record(ctx, "miss", response.Count)

	responseBytes, err := json.Marshal(response)
	if err != nil {
		s.logger.Error("Failed to marshal response", logger.Err(err))
		return response, false, nil
	}
	if err := s.cache.Set(ctx, cacheKey, string(responseBytes), s.ttl); err != nil {
		s.logger.Error("Failed to cache response", logger.Err(err), logger.Field{Key: "cache_key", Value: cacheKey})
	}
	return response, false, nil
}

func (s *Service) record(ctx context.Context, outcome string, results int) {
	s.metrics.searches.Add(ctx, 1, metric.WithAttributes(attribute.String("cache", outcome)))
	s.metrics.results.Record(ctx, int64(results))
}

// InvalidateCache drops the cached response of req for the current snapshot.
func (s *Service) InvalidateCache(ctx context.Context, req SearchRequest) error {
	cacheKey := s.generateCacheKey(req)
	s.logger.Info("Invalidating cache", logger.Field{Key: "cache_key", Value: cacheKey})
	return s.cache.Del(ctx, cacheKey)
}
