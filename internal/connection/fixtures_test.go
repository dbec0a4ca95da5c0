package connection

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"flightconnect/internal/schedule"
	"flightconnect/pkg/flighttime"
)

var cities = map[string]string{
	"HKG": "Hong Kong", "DXB": "Dubai", "FRA": "Frankfurt",
	"SIN": "Singapore", "IST": "Istanbul", "DOH": "Doha", "LHR": "London",
}

type flightSpec struct {
	id, from, to, dep, arr, dur string
	price                       float64
	seats                       int
	days                        string
}

func flight(t *testing.T, s flightSpec) schedule.FlightTemplate {
	t.Helper()
	if s.days == "" {
		s.days = "1234567"
	}
	tpl, err := schedule.FlightRecord{
		ID: s.id, FlightNumber: "FN" + s.id, Airline: "Test Air", AirlineCode: "TA", Aircraft: "A330",
		From: s.from, FromCity: cities[s.from], To: s.to, ToCity: cities[s.to],
		DepartureTime: s.dep, ArrivalTime: s.arr, Duration: s.dur,
		EconomyPrice: s.price, EconomySeats: s.seats,
		BusinessPrice: s.price * 3, BusinessSeats: s.seats,
		Status: "SCHEDULED", OperatingDays: s.days,
	}.Template()
	require.NoError(t, err)
	return tpl
}

func index(t *testing.T, specs ...flightSpec) *schedule.Index {
	t.Helper()
	templates := make([]schedule.FlightTemplate, 0, len(specs))
	for _, s := range specs {
		templates = append(templates, flight(t, s))
	}
	return schedule.NewIndex(templates)
}

// wednesday is an ISO weekday 3.
var wednesday = time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

func request(from, to string) SearchRequest {
	return SearchRequest{
		Origin:            from,
		Destination:       to,
		Date:              wednesday,
		Cabin:             schedule.CabinEconomy,
		Passengers:        1,
		MinLayoverMinutes: 90,
		MaxLayoverHours:   12,
	}
}

// countingRepo records every FindFlights query it serves.
type countingRepo struct {
	schedule.Repository

	mu      sync.Mutex
	queries []schedule.FlightQuery
	pairs   int
}

func (r *countingRepo) FindFlights(ctx context.Context, q schedule.FlightQuery) ([]schedule.FlightTemplate, error) {
	r.mu.Lock()
	r.queries = append(r.queries, q)
	r.mu.Unlock()
	return r.Repository.FindFlights(ctx, q)
}

func (r *countingRepo) ListDistinctAirportPairs(ctx context.Context) ([]schedule.AirportPair, error) {
	r.mu.Lock()
	r.pairs++
	r.mu.Unlock()
	return r.Repository.ListDistinctAirportPairs(ctx)
}

func (r *countingRepo) routes() map[string]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]int)
	for _, q := range r.queries {
		out[q.Origin+"-"+q.Destination]++
	}
	return out
}

func (r *countingRepo) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queries) + r.pairs
}

// failingRepo fails FindFlights for one route.
type failingRepo struct {
	schedule.Repository
	route string
}

func (r *failingRepo) FindFlights(ctx context.Context, q schedule.FlightQuery) ([]schedule.FlightTemplate, error) {
	if q.Origin+"-"+q.Destination == r.route {
		return nil, &schedule.RepositoryError{Op: "find flights", Err: errors.New("connection reset by peer")}
	}
	return r.Repository.FindFlights(ctx, q)
}

// blockingRepo never answers before the context ends.
type blockingRepo struct {
	schedule.Repository
}

func (r *blockingRepo) FindFlights(ctx context.Context, q schedule.FlightQuery) ([]schedule.FlightTemplate, error) {
	<-ctx.Done()
	return nil, &schedule.RepositoryError{Op: "find flights", Err: ctx.Err()}
}

func dateTime(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := time.ParseInLocation(flighttime.DateTimeLayout, s, time.UTC)
	require.NoError(t, err)
	return v
}
