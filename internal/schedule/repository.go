package schedule

import (
	"context"
	"fmt"
)

// Repository is the read side of the flight schedule consumed by the search.
type Repository interface {
	FindFlights(ctx context.Context, q FlightQuery) ([]FlightTemplate, error)
	ListDistinctAirportPairs(ctx context.Context) ([]AirportPair, error)
}

// Source produces a full schedule snapshot.
type Source interface {
	LoadTemplates(ctx context.Context) ([]FlightTemplate, error)
}

// RepositoryError wraps a failed or timed out schedule read.
type RepositoryError struct {
	Op  string
	Err error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("schedule repository %s: %v", e.Op, e.Err)
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}
