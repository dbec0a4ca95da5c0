package schedule

import (
	"context"

	"golang.org/x/time/rate"
)

// ThrottledRepository caps the rate of calls reaching the wrapped repository.
type ThrottledRepository struct {
	next    Repository
	limiter *rate.Limiter
}

func NewThrottledRepository(next Repository, rps float64, burst int) *ThrottledRepository {
	return &ThrottledRepository{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (r *ThrottledRepository) FindFlights(ctx context.Context, q FlightQuery) ([]FlightTemplate, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, &RepositoryError{Op: "find flights", Err: err}
	}
	return r.next.FindFlights(ctx, q)
}

func (r *ThrottledRepository) ListDistinctAirportPairs(ctx context.Context) ([]AirportPair, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, &RepositoryError{Op: "list airport pairs", Err: err}
	}
	return r.next.ListDistinctAirportPairs(ctx)
}
