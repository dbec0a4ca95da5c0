package connection

import (
	"time"

	"flightconnect/internal/schedule"
	"flightconnect/pkg/flighttime"
)

// SearchRequest is a validated connection search.
type SearchRequest struct {
	Origin            string
	Destination       string
	Date              time.Time
	Cabin             schedule.Cabin
	Passengers        int
	MinLayoverMinutes int
	MaxLayoverHours   int
}

func (r SearchRequest) weekday() int {
	return flighttime.ISOWeekday(r.Date)
}

func (r SearchRequest) query(from, to string) schedule.FlightQuery {
	return schedule.FlightQuery{
		Origin:      from,
		Destination: to,
		Weekday:     r.weekday(),
		Cabin:       r.Cabin,
		MinSeats:    r.Passengers,
	}
}

// Leg is a flight template placed on a calendar date.
type Leg struct {
	Flight            schedule.FlightTemplate
	Departure         time.Time
	Arrival           time.Time
	Cabin             schedule.Cabin
	PricePerPassenger float64
	TotalPrice        float64
	AvailableSeats    int
}

func (l Leg) DurationMinutes() int {
	return l.Flight.Duration.TotalMinutes()
}

// Itinerary is two legs joined at a hub.
type Itinerary struct {
	Outbound       Leg
	Inbound        Leg
	Hub            string
	HubCity        string
	LayoverMinutes int
	TotalDuration  int
	TotalPrice     float64
}

func (it Itinerary) ID() string {
	return it.Outbound.Flight.ID + "-" + it.Inbound.Flight.ID
}

// FlyingMinutes is the time spent in the air, layover excluded.
func (it Itinerary) FlyingMinutes() int {
	return it.Outbound.DurationMinutes() + it.Inbound.DurationMinutes()
}
