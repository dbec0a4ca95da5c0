package connection

import (
	"context"
	"sort"

	"flightconnect/internal/schedule"
)

// candidateHubs is every airport in pairs other than origin and destination, sorted.
func candidateHubs(pairs []schedule.AirportPair, origin, destination string) []string {
	seen := make(map[string]struct{})
	for _, p := range pairs {
		seen[p.Origin] = struct{}{}
		seen[p.Destination] = struct{}{}
	}
	delete(seen, origin)
	delete(seen, destination)

	hubs := make([]string, 0, len(seen))
	for code := range seen {
		hubs = append(hubs, code)
	}
	sort.Strings(hubs)
	return hubs
}

// reachableHubs narrows candidates to airports served from origin that also
// have service on to destination.
func reachableHubs(pairs []schedule.AirportPair, origin, destination string) []string {
	fromOrigin := make(map[string]bool)
	toDestination := make(map[string]bool)
	for _, p := range pairs {
		if p.Origin == origin {
			fromOrigin[p.Destination] = true
		}
		if p.Destination == destination {
			toDestination[p.Origin] = true
		}
	}

	candidates := candidateHubs(pairs, origin, destination)
	hubs := candidates[:0]
	for _, h := range candidates {
		if fromOrigin[h] && toDestination[h] {
			hubs = append(hubs, h)
		}
	}
	return hubs
}

func enumerateHubs(ctx context.Context, repo schedule.Repository, origin, destination string) ([]string, error) {
	pairs, err := repo.ListDistinctAirportPairs(ctx)
	if err != nil {
		return nil, err
	}
	return reachableHubs(pairs, origin, destination), nil
}
