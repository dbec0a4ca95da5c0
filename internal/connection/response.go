package connection

import (
	"flightconnect/pkg/flighttime"
)

type SearchResponse struct {
	Connections  []Connection `json:"connections"`
	Count        int          `json:"count"`
	SearchParams SearchParams `json:"searchParams"`
}

// SearchParams echoes the effective request after defaults were applied.
type SearchParams struct {
	From              string `json:"from"`
	To                string `json:"to"`
	DepartureDate     string `json:"departureDate"`
	CabinClass        string `json:"cabinClass"`
	Passengers        int    `json:"passengers"`
	MaxLayoverHours   int    `json:"maxLayoverHours"`
	MinLayoverMinutes int    `json:"minLayoverMinutes"`
}

type Connection struct {
	ID                 string    `json:"id"`
	Type               string    `json:"type"`
	Segments           []Segment `json:"segments"`
	LayoverMinutes     int       `json:"layoverMinutes"`
	LayoverAirport     string    `json:"layoverAirport"`
	LayoverAirportName string    `json:"layoverAirportName"`
	TotalDuration      int       `json:"totalDuration"`
	TotalPrice         float64   `json:"totalPrice"`
	PricePerPassenger  float64   `json:"pricePerPassenger"`
	From               string    `json:"from"`
	FromCity           string    `json:"fromCity"`
	To                 string    `json:"to"`
	ToCity             string    `json:"toCity"`
	DepartureTime      string    `json:"departureTime"`
	ArrivalTime        string    `json:"arrivalTime"`
	Stops              int       `json:"stops"`
}

type Segment struct {
	ID                string  `json:"id"`
	FlightNumber      string  `json:"flightNumber"`
	Airline           string  `json:"airline"`
	AirlineCode       string  `json:"airlineCode"`
	Aircraft          string  `json:"aircraft"`
	Status            string  `json:"status"`
	From              string  `json:"from"`
	FromCity          string  `json:"fromCity"`
	To                string  `json:"to"`
	ToCity            string  `json:"toCity"`
	DepartureTime     string  `json:"departureTime"`
	ArrivalTime       string  `json:"arrivalTime"`
	Duration          int     `json:"duration"`
	DurationStr       string  `json:"durationStr"`
	PricePerPassenger float64 `json:"pricePerPassenger"`
	TotalPrice        float64 `json:"totalPrice"`
	AvailableSeats    int     `json:"availableSeats"`
	CabinClass        string  `json:"cabinClass"`
}

func newSearchParams(req SearchRequest) SearchParams {
	return SearchParams{
		From:              req.Origin,
		To:                req.Destination,
		DepartureDate:     req.Date.Format(flighttime.DateLayout),
		CabinClass:        string(req.Cabin),
		Passengers:        req.Passengers,
		MaxLayoverHours:   req.MaxLayoverHours,
		MinLayoverMinutes: req.MinLayoverMinutes,
	}
}

func newSegment(l Leg) Segment {
	f := l.Flight
	return Segment{
		ID:                f.ID,
		FlightNumber:      f.FlightNumber,
		Airline:           f.Airline,
		AirlineCode:       f.AirlineCode,
		Aircraft:          f.Aircraft,
		Status:            string(f.Status),
		From:              f.Origin,
		FromCity:          f.OriginCity,
		To:                f.Destination,
		ToCity:            f.DestinationCity,
		DepartureTime:     l.Departure.Format(flighttime.DateTimeLayout),
		ArrivalTime:       l.Arrival.Format(flighttime.DateTimeLayout),
		Duration:          l.DurationMinutes(),
		DurationStr:       f.Duration.String(),
		PricePerPassenger: l.PricePerPassenger,
		TotalPrice:        l.TotalPrice,
		AvailableSeats:    l.AvailableSeats,
		CabinClass:        string(l.Cabin),
	}
}

func newConnection(it Itinerary, passengers int) Connection {
	perPassenger := it.TotalPrice
	if passengers > 0 {
		perPassenger = it.TotalPrice / float64(passengers)
	}
	return Connection{
		ID:                 it.ID(),
		Type:               "connection",
		Segments:           []Segment{newSegment(it.Outbound), newSegment(it.Inbound)},
		LayoverMinutes:     it.LayoverMinutes,
		LayoverAirport:     it.Hub,
		LayoverAirportName: it.HubCity,
		TotalDuration:      it.TotalDuration,
		TotalPrice:         it.TotalPrice,
		PricePerPassenger:  perPassenger,
		From:               it.Outbound.Flight.Origin,
		FromCity:           it.Outbound.Flight.OriginCity,
		To:                 it.Inbound.Flight.Destination,
		ToCity:             it.Inbound.Flight.DestinationCity,
		DepartureTime:      it.Outbound.Departure.Format(flighttime.DateTimeLayout),
		ArrivalTime:        it.Inbound.Arrival.Format(flighttime.DateTimeLayout),
		Stops:              1,
	}
}

// NewSearchResponse renders ranked itineraries. Connections is never nil.
func NewSearchResponse(req SearchRequest, its []Itinerary) *SearchResponse {
	conns := make([]Connection, 0, len(its))
	for _, it := range its {
		conns = append(conns, newConnection(it, req.Passengers))
	}
	return &SearchResponse{
		Connections:  conns,
		Count:        len(conns),
		SearchParams: newSearchParams(req),
	}
}
