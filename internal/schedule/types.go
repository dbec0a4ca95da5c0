package schedule

import (
	"fmt"
	"strings"

	"flightconnect/pkg/flighttime"
)

type Cabin string

const (
	CabinEconomy  Cabin = "ECONOMY"
	CabinBusiness Cabin = "BUSINESS"
	CabinFirst    Cabin = "FIRST_CLASS"
)

// ParseCabin accepts the cabin names case-insensitively.
func ParseCabin(s string) (Cabin, error) {
	switch c := Cabin(strings.ToUpper(strings.TrimSpace(s))); c {
	case CabinEconomy, CabinBusiness, CabinFirst:
		return c, nil
	}
	return "", fmt.Errorf("unknown cabin class %q", s)
}

type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusBoarding  Status = "BOARDING"
	StatusDelayed   Status = "DELAYED"
	StatusDeparted  Status = "DEPARTED"
	StatusArrived   Status = "ARRIVED"
	StatusCancelled Status = "CANCELLED"
)

// Bookable reports whether seats on the flight can still be sold.
func (s Status) Bookable() bool {
	return s == StatusScheduled || s == StatusBoarding
}

// Fare is the price and remaining seat count of one cabin.
type Fare struct {
	Price float64
	Seats int
}

// FlightTemplate is a recurring weekly service. Times are local to the airports.
type FlightTemplate struct {
	ID              string
	FlightNumber    string
	Airline         string
	AirlineCode     string
	Aircraft        string
	Origin          string
	OriginCity      string
	Destination     string
	DestinationCity string
	Departure       flighttime.Clock
	Arrival         flighttime.Arrival
	Duration        flighttime.Duration
	Economy         Fare
	Business        Fare
	First           Fare
	Status          Status
	OperatingDays   WeekdaySet
}

// Fare returns the fare of the requested cabin.
func (t FlightTemplate) Fare(c Cabin) Fare {
	switch c {
	case CabinBusiness:
		return t.Business
	case CabinFirst:
		return t.First
	default:
		return t.Economy
	}
}

// Matches applies the FindFlights predicate to a single template.
func (t FlightTemplate) Matches(q FlightQuery) bool {
	return t.Origin == q.Origin &&
		t.Destination == q.Destination &&
		t.OperatingDays.Contains(q.Weekday) &&
		t.Status.Bookable() &&
		t.Fare(q.Cabin).Seats >= q.MinSeats
}

// AirportPair is one origin/destination combination present in the schedule.
type AirportPair struct {
	Origin      string `db:"from_code"`
	Destination string `db:"to_code"`
}

// FlightQuery selects bookable templates on a route for a weekday.
type FlightQuery struct {
	Origin      string
	Destination string
	Weekday     int
	Cabin       Cabin
	MinSeats    int
}
