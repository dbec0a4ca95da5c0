// Package flighttime converts the schedule's local time-of-day and duration strings
// into comparable values.
package flighttime

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	MinutesPerDay = 24 * 60

	// NextDayMarker is the suffix schedule data uses on arrival times that land on the
	// day after departure, e.g. "06:15+1".
	NextDayMarker = "+1"

	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04:05"
)

var (
	hourPattern   = regexp.MustCompile(`(\d+)\s*h`)
	minutePattern = regexp.MustCompile(`(\d+)\s*m`)
)

// MalformedDurationError reports a duration string with neither an hour nor a minute part.
type MalformedDurationError struct {
	Input string
}

func (e *MalformedDurationError) Error() string {
	return fmt.Sprintf("malformed duration %q", e.Input)
}

// Duration is a flight duration split the way schedules write it ("2h 30m").
type Duration struct {
	Hours   int
	Minutes int
}

// ParseDuration accepts "2h 30m", "7h" or "45m". A missing component counts as zero.
func ParseDuration(s string) (Duration, error) {
	hm := hourPattern.FindStringSubmatch(s)
	mm := minutePattern.FindStringSubmatch(s)
	if hm == nil && mm == nil {
		return Duration{}, &MalformedDurationError{Input: s}
	}

	var d Duration
	if hm != nil {
		d.Hours, _ = strconv.Atoi(hm[1])
	}
	if mm != nil {
		d.Minutes, _ = strconv.Atoi(mm[1])
	}
	return d, nil
}

// FromMinutes builds a normalised Duration.
func FromMinutes(total int) Duration {
	return Duration{Hours: total / 60, Minutes: total % 60}
}

func (d Duration) TotalMinutes() int {
	return d.Hours*60 + d.Minutes
}

func (d Duration) String() string {
	switch {
	case d.Hours == 0:
		return fmt.Sprintf("%dm", d.Minutes)
	case d.Minutes == 0:
		return fmt.Sprintf("%dh", d.Hours)
	default:
		return fmt.Sprintf("%dh %dm", d.Hours, d.Minutes)
	}
}

// Clock is a local time of day in minutes since midnight (0-1439).
type Clock int

// ParseClock parses "HH:MM". A trailing next-day marker is ignored.
func ParseClock(hhmm string) (Clock, error) {
	s := strings.TrimSuffix(strings.TrimSpace(hhmm), NextDayMarker)
	h, m, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("invalid time of day %q", hhmm)
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", hhmm)
	}
	minute, err := strconv.Atoi(m)
	if err != nil || len(m) != 2 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", hhmm)
	}
	return Clock(hour*60 + minute), nil
}

// TimeOfDayMinutes converts "HH:MM" into minutes since midnight.
func TimeOfDayMinutes(hhmm string) (int, error) {
	c, err := ParseClock(hhmm)
	return int(c), err
}

func (c Clock) Hour() int   { return int(c) / 60 }
func (c Clock) Minute() int { return int(c) % 60 }

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// Arrival is an arrival time of day with the number of days it lands after departure.
// Marked records whether the offset came from an explicit "+1" in the schedule.
type Arrival struct {
	Clock     Clock
	DayOffset int
	Marked    bool
}

// ParseArrival parses "HH:MM" or "HH:MM+1".
func ParseArrival(s string) (Arrival, error) {
	c, err := ParseClock(s)
	if err != nil {
		return Arrival{}, err
	}
	if strings.HasSuffix(strings.TrimSpace(s), NextDayMarker) {
		return Arrival{Clock: c, DayOffset: 1, Marked: true}, nil
	}
	return Arrival{Clock: c}, nil
}

// Offset returns the day offset of the arrival relative to a departure at dep.
// An explicit marker wins; without one, an arrival earlier than the departure
// lands on the next day.
func (a Arrival) Offset(dep Clock) int {
	if a.Marked {
		return a.DayOffset
	}
	if a.Clock < dep {
		return 1
	}
	return 0
}

func (a Arrival) String() string {
	if a.Marked && a.DayOffset > 0 {
		return a.Clock.String() + NextDayMarker
	}
	return a.Clock.String()
}

// At places a clock time on a calendar date. Dates are treated as naive local dates.
func At(date time.Time, c Clock) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, c.Hour(), c.Minute(), 0, 0, time.UTC)
}

// Date truncates t to its calendar date.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO date ("2006-01-02").
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
}

// ResolveArrivalDate returns the calendar date an arrival lands on for a flight
// departing on departureDate.
func ResolveArrivalDate(departureDate time.Time, depTime, arrTime string) (time.Time, error) {
	dep, err := ParseClock(depTime)
	if err != nil {
		return time.Time{}, err
	}
	arr, err := ParseArrival(arrTime)
	if err != nil {
		return time.Time{}, err
	}
	return Date(departureDate).AddDate(0, 0, arr.Offset(dep)), nil
}

// ISOWeekday maps a date to 1 (Monday) .. 7 (Sunday).
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
