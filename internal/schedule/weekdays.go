package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// WeekdaySet is a set of ISO weekdays, Monday=1 .. Sunday=7, stored as bits 1..7.
type WeekdaySet uint8

const EveryDay WeekdaySet = 0b1111_1110

func NewWeekdaySet(days ...int) (WeekdaySet, error) {
	var s WeekdaySet
	for _, d := range days {
		if d < 1 || d > 7 {
			return 0, fmt.Errorf("weekday %d out of range 1-7", d)
		}
		s |= 1 << uint(d)
	}
	return s, nil
}

// ParseWeekdays reads the schedule's digit string form, e.g. "1357". Every
// character must be a digit 1-7; separators are not accepted.
func ParseWeekdays(s string) (WeekdaySet, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty operating days")
	}
	days := make([]int, 0, len(s))
	for _, r := range s {
		if r < '1' || r > '7' {
			return 0, fmt.Errorf("invalid operating day %q in %q", r, s)
		}
		days = append(days, int(r-'0'))
	}
	return NewWeekdaySet(days...)
}

func (s WeekdaySet) Contains(day int) bool {
	if day < 1 || day > 7 {
		return false
	}
	return s&(1<<uint(day)) != 0
}

func (s WeekdaySet) Days() []int {
	days := make([]int, 0, 7)
	for d := 1; d <= 7; d++ {
		if s.Contains(d) {
			days = append(days, d)
		}
	}
	return days
}

// String renders the digit form used in storage.
func (s WeekdaySet) String() string {
	var b strings.Builder
	for _, d := range s.Days() {
		b.WriteString(strconv.Itoa(d))
	}
	return b.String()
}
