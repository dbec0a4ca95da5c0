package connection

import (
	"context"
	"time"

	"flightconnect/internal/schedule"
	"flightconnect/pkg/flighttime"
)

// resolveLeg places f on date for the requested cabin and party size.
func resolveLeg(f schedule.FlightTemplate, date time.Time, cabin schedule.Cabin, passengers int) Leg {
	fare := f.Fare(cabin)
	arrivalDate := flighttime.Date(date).AddDate(0, 0, f.Arrival.Offset(f.Departure))
	return Leg{
		Flight:            f,
		Departure:         flighttime.At(date, f.Departure),
		Arrival:           flighttime.At(arrivalDate, f.Arrival.Clock),
		Cabin:             cabin,
		PricePerPassenger: fare.Price,
		TotalPrice:        fare.Price * float64(passengers),
		AvailableSeats:    fare.Seats,
	}
}

// connect joins out and in at the hub. An inbound leg that would leave before
// out lands is moved to the next day. ok is false when the layover is outside
// [minLayover, maxLayover].
func connect(out Leg, in schedule.FlightTemplate, req SearchRequest) (Itinerary, bool) {
	inbound := resolveLeg(in, req.Date, req.Cabin, req.Passengers)
	if inbound.Departure.Before(out.Arrival) {
		inbound = resolveLeg(in, req.Date.AddDate(0, 0, 1), req.Cabin, req.Passengers)
	}

	layover := int(inbound.Departure.Sub(out.Arrival) / time.Minute)
	if layover < 0 || layover < req.MinLayoverMinutes || layover > req.MaxLayoverHours*60 {
		return Itinerary{}, false
	}

	return Itinerary{
		Outbound:       out,
		Inbound:        inbound,
		Hub:            out.Flight.Destination,
		HubCity:        out.Flight.DestinationCity,
		LayoverMinutes: layover,
		TotalDuration:  out.DurationMinutes() + inbound.DurationMinutes() + layover,
		TotalPrice:     out.TotalPrice + inbound.TotalPrice,
	}, true
}

// matchHub builds every itinerary through hub that passes the layover and
// efficiency checks, in outbound then inbound order.
func matchHub(ctx context.Context, repo schedule.Repository, req SearchRequest, hub string, eff efficiency) ([]Itinerary, error) {
	outbound, err := repo.FindFlights(ctx, req.query(req.Origin, hub))
	if err != nil {
		return nil, err
	}
	if len(outbound) == 0 {
		return nil, nil
	}

	inbound, err := repo.FindFlights(ctx, req.query(hub, req.Destination))
	if err != nil {
		return nil, err
	}
	if len(inbound) == 0 {
		return nil, nil
	}

	var out []Itinerary
	for _, o := range outbound {
		leg := resolveLeg(o, req.Date, req.Cabin, req.Passengers)
		for _, i := range inbound {
			it, ok := connect(leg, i, req)
			if !ok || !eff.accept(it) {
				continue
			}
			out = append(out, it)
		}
	}
	return out, nil
}
