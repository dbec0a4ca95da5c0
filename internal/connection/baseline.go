package connection

import (
	"context"

	"flightconnect/internal/schedule"
)

// findBaseline returns the shortest direct flight duration in minutes on the
// requested route. ok is false when there is no direct service.
func findBaseline(ctx context.Context, repo schedule.Repository, req SearchRequest) (minutes int, ok bool, err error) {
	direct, err := repo.FindFlights(ctx, req.query(req.Origin, req.Destination))
	if err != nil {
		return 0, false, err
	}
	for i, f := range direct {
		d := f.Duration.TotalMinutes()
		if i == 0 || d < minutes {
			minutes = d
		}
	}
	return minutes, len(direct) > 0, nil
}
