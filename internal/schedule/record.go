package schedule

import (
	"fmt"
	"strings"

	"flightconnect/pkg/flighttime"
	"flightconnect/pkg/logger"
)

// FlightRecord is the stored form of a template: times, duration and operating days
// are kept as the strings schedule tooling writes ("08:05", "06:10+1", "2h 30m", "1357").
type FlightRecord struct {
	ID              string  `db:"id" yaml:"id"`
	FlightNumber    string  `db:"flight_number" yaml:"flightNumber"`
	Airline         string  `db:"airline" yaml:"airline"`
	AirlineCode     string  `db:"airline_code" yaml:"airlineCode"`
	Aircraft        string  `db:"aircraft" yaml:"aircraft"`
	From            string  `db:"from_code" yaml:"from"`
	FromCity        string  `db:"from_city" yaml:"fromCity"`
	To              string  `db:"to_code" yaml:"to"`
	ToCity          string  `db:"to_city" yaml:"toCity"`
	DepartureTime   string  `db:"departure_time" yaml:"departureTime"`
	ArrivalTime     string  `db:"arrival_time" yaml:"arrivalTime"`
	Duration        string  `db:"duration" yaml:"duration"`
	EconomyPrice    float64 `db:"economy_price" yaml:"economyPrice"`
	BusinessPrice   float64 `db:"business_price" yaml:"businessPrice"`
	FirstClassPrice float64 `db:"first_class_price" yaml:"firstClassPrice"`
	EconomySeats    int     `db:"economy_seats" yaml:"economySeats"`
	BusinessSeats   int     `db:"business_seats" yaml:"businessSeats"`
	FirstClassSeats int     `db:"first_class_seats" yaml:"firstClassSeats"`
	Status          string  `db:"status" yaml:"status"`
	OperatingDays   string  `db:"operating_days" yaml:"operatingDays"`
}

// Template parses the record into its structured form.
func (r FlightRecord) Template() (FlightTemplate, error) {
	dep, err := flighttime.ParseClock(r.DepartureTime)
	if err != nil {
		return FlightTemplate{}, fmt.Errorf("departure time: %w", err)
	}
	arr, err := flighttime.ParseArrival(r.ArrivalTime)
	if err != nil {
		return FlightTemplate{}, fmt.Errorf("arrival time: %w", err)
	}
	dur, err := flighttime.ParseDuration(r.Duration)
	if err != nil {
		return FlightTemplate{}, err
	}
	days, err := ParseWeekdays(r.OperatingDays)
	if err != nil {
		return FlightTemplate{}, err
	}

	status := Status(strings.ToUpper(r.Status))
	if status == "" {
		status = StatusScheduled
	}

	return FlightTemplate{
		ID:              r.ID,
		FlightNumber:    r.FlightNumber,
		Airline:         r.Airline,
		AirlineCode:     r.AirlineCode,
		Aircraft:        r.Aircraft,
		Origin:          strings.ToUpper(r.From),
		OriginCity:      r.FromCity,
		Destination:     strings.ToUpper(r.To),
		DestinationCity: r.ToCity,
		Departure:       dep,
		Arrival:         arr,
		Duration:        dur,
		Economy:         Fare{Price: r.EconomyPrice, Seats: r.EconomySeats},
		Business:        Fare{Price: r.BusinessPrice, Seats: r.BusinessSeats},
		First:           Fare{Price: r.FirstClassPrice, Seats: r.FirstClassSeats},
		Status:          status,
		OperatingDays:   days,
	}, nil
}

// templatesFrom converts records, skipping and logging the ones with malformed data.
func templatesFrom(records []FlightRecord, log logger.Logger) []FlightTemplate {
	out := make([]FlightTemplate, 0, len(records))
	for _, r := range records {
		t, err := r.Template()
		if err != nil {
			log.Warn("skipping flight with malformed schedule data",
				logger.Field{Key: "flight_id", Value: r.ID},
				logger.Field{Key: "flight_number", Value: r.FlightNumber},
				logger.Err(err),
			)
			continue
		}
		out = append(out, t)
	}
	return out
}
