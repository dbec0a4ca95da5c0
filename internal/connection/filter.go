package connection

// maxDetourFactor bounds how much longer than the reference a connection may take.
const maxDetourFactor = 2.0

// efficiency rejects connections that take too long. With direct service on the
// route the reference is the fastest direct flight, otherwise the connection's
// own flying time.
type efficiency struct {
	baseline    int
	hasBaseline bool
}

func (e efficiency) accept(it Itinerary) bool {
	if e.hasBaseline {
		return float64(it.TotalDuration) <= maxDetourFactor*float64(e.baseline)
	}
	flying := it.FlyingMinutes()
	if flying <= 0 {
		return false
	}
	return float64(it.TotalDuration)/float64(flying) <= maxDetourFactor
}
