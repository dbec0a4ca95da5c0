package connection

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"flightconnect/internal/schedule"
	"flightconnect/pkg/logger"
)

const tracerName = "flightconnect/internal/connection"

// Searcher runs the connection pipeline against a schedule repository.
type Searcher struct {
	repo    schedule.Repository
	workers int
	timeout time.Duration
	logger  logger.Logger
	tracer  trace.Tracer
}

// NewSearcher caps concurrent hub lookups at workers. A zero timeout leaves the
// caller's deadline in charge.
func NewSearcher(repo schedule.Repository, workers int, timeout time.Duration, log logger.Logger) *Searcher {
	if workers < 1 {
		workers = 1
	}
	return &Searcher{
		repo:    repo,
		workers: workers,
		timeout: timeout,
		logger:  log,
		tracer:  otel.Tracer(tracerName),
	}
}

type hubResult struct {
	slot        int
	itineraries []Itinerary
}

// Search returns every qualifying one-stop itinerary ordered by total price.
// Any repository failure aborts the search with no partial result.
func (s *Searcher) Search(ctx context.Context, req SearchRequest) ([]Itinerary, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	ctx, span := s.tracer.Start(ctx, "connection.Search", trace.WithAttributes(
		attribute.String("search.from", req.Origin),
		attribute.String("search.to", req.Destination),
		attribute.String("search.cabin", string(req.Cabin)),
		attribute.Int("search.passengers", req.Passengers),
	))
	defer span.End()

	itineraries, err := s.search(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "connection search failed")
		return nil, err
	}
	span.SetAttributes(attribute.Int("search.results", len(itineraries)))
	return itineraries, nil
}

func (s *Searcher) search(ctx context.Context, req SearchRequest) ([]Itinerary, error) {
	var (
		eff  efficiency
		hubs []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		eff.baseline, eff.hasBaseline, err = findBaseline(gctx, s.repo, req)
		return err
	})
	g.Go(func() error {
		var err error
		hubs, err = enumerateHubs(gctx, s.repo, req.Origin, req.Destination)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Debug("connection search fan-out",
		logger.Field{Key: "from", Value: req.Origin},
		logger.Field{Key: "to", Value: req.Destination},
		logger.Field{Key: "hubs", Value: len(hubs)},
		logger.Field{Key: "has_baseline", Value: eff.hasBaseline},
		logger.Field{Key: "baseline_minutes", Value: eff.baseline},
	)

	results := make(chan hubResult, len(hubs))
	slots := make([][]Itinerary, len(hubs))
	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for r := range results {
			slots[r.slot] = r.itineraries
		}
	}()

	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, hub := range hubs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			hctx, span := s.tracer.Start(gctx, "connection.matchHub",
				trace.WithAttributes(attribute.String("search.hub", hub)))
			defer span.End()

			its, err := matchHub(hctx, s.repo, req, hub, eff)
			if err != nil {
				span.RecordError(err)
				return fmt.Errorf("hub %s: %w", hub, err)
			}
			if len(its) > 0 {
				results <- hubResult{slot: i, itineraries: its}
			}
			return nil
		})
	}
	err := g.Wait()
	close(results)
	<-collected
	if err != nil {
		return nil, err
	}

	all := make([]Itinerary, 0)
	for _, its := range slots {
		all = append(all, its...)
	}
	rankByPrice(all)
	return all, nil
}
