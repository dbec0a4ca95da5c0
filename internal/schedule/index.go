package schedule

import (
	"context"
	"sort"
	"sync/atomic"
)

// Index is an immutable in-memory schedule keyed by origin airport.
type Index struct {
	byOrigin map[string][]FlightTemplate
	pairs    []AirportPair
	size     int
}

// NewIndex builds the adjacency index. Templates of one origin are kept ordered by
// departure time, then ID, so lookups are deterministic.
func NewIndex(templates []FlightTemplate) *Index {
	idx := &Index{
		byOrigin: make(map[string][]FlightTemplate),
		size:     len(templates),
	}

	seen := make(map[AirportPair]struct{})
	for _, t := range templates {
		idx.byOrigin[t.Origin] = append(idx.byOrigin[t.Origin], t)

		p := AirportPair{Origin: t.Origin, Destination: t.Destination}
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			idx.pairs = append(idx.pairs, p)
		}
	}

	for _, list := range idx.byOrigin {
		sort.SliceStable(list, func(i, j int) bool {
			if list[i].Departure != list[j].Departure {
				return list[i].Departure < list[j].Departure
			}
			return list[i].ID < list[j].ID
		})
	}

	sort.Slice(idx.pairs, func(i, j int) bool {
		if idx.pairs[i].Origin != idx.pairs[j].Origin {
			return idx.pairs[i].Origin < idx.pairs[j].Origin
		}
		return idx.pairs[i].Destination < idx.pairs[j].Destination
	})

	return idx
}

// Len is the number of templates in the index.
func (i *Index) Len() int {
	return i.size
}

func (i *Index) FindFlights(ctx context.Context, q FlightQuery) ([]FlightTemplate, error) {
	if err := ctx.Err(); err != nil {
		return nil, &RepositoryError{Op: "find flights", Err: err}
	}

	var out []FlightTemplate
	for _, t := range i.byOrigin[q.Origin] {
		if t.Matches(q) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (i *Index) ListDistinctAirportPairs(ctx context.Context) ([]AirportPair, error) {
	if err := ctx.Err(); err != nil {
		return nil, &RepositoryError{Op: "list airport pairs", Err: err}
	}

	out := make([]AirportPair, len(i.pairs))
	copy(out, i.pairs)
	return out, nil
}

// Store serves the current Index and lets a reloader swap it without blocking readers.
type Store struct {
	current atomic.Pointer[Index]
	version atomic.Uint64
}

func NewStore(initial *Index) *Store {
	s := &Store{}
	if initial == nil {
		initial = NewIndex(nil)
	}
	s.current.Store(initial)
	return s
}

// Replace installs a new snapshot and bumps the version.
func (s *Store) Replace(idx *Index) {
	s.current.Store(idx)
	s.version.Add(1)
}

// Version changes every time the snapshot is replaced.
func (s *Store) Version() uint64 {
	return s.version.Load()
}

func (s *Store) Snapshot() *Index {
	return s.current.Load()
}

func (s *Store) FindFlights(ctx context.Context, q FlightQuery) ([]FlightTemplate, error) {
	return s.Snapshot().FindFlights(ctx, q)
}

func (s *Store) ListDistinctAirportPairs(ctx context.Context) ([]AirportPair, error) {
	return s.Snapshot().ListDistinctAirportPairs(ctx)
}
