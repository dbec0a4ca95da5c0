package connection

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"flightconnect/internal/schedule"
	"flightconnect/pkg/flighttime"
)

// SearchQuery is the raw query string of GET /v1/flights/connections.
type SearchQuery struct {
	From              string `form:"from" validate:"required,iata"`
	To                string `form:"to" validate:"required,iata,nefield=From"`
	DepartureDate     string `form:"departureDate" validate:"required,datetime=2006-01-02"`
	CabinClass        string `form:"cabinClass" validate:"omitempty,cabin"`
	Passengers        *int   `form:"passengers" validate:"omitempty,min=1"`
	MaxLayoverHours   *int   `form:"maxLayoverHours" validate:"omitempty,min=1"`
	MinLayoverMinutes *int   `form:"minLayoverMinutes" validate:"omitempty,min=0"`
}

// Defaults fills the optional parameters a query leaves out.
type Defaults struct {
	MinLayoverMinutes int
	MaxLayoverHours   int
}

var iataCode = regexp.MustCompile(`^[A-Z]{3}$`)

// RequestValidator turns a SearchQuery into a SearchRequest.
type RequestValidator struct {
	v        *validator.Validate
	defaults Defaults
}

func NewRequestValidator(defaults Defaults) *RequestValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		return name
	})
	_ = v.RegisterValidation("iata", func(fl validator.FieldLevel) bool {
		return iataCode.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("cabin", func(fl validator.FieldLevel) bool {
		_, err := schedule.ParseCabin(fl.Field().String())
		return err == nil
	})
	return &RequestValidator{v: v, defaults: defaults}
}

// Validate normalizes codes to upper case, checks every rule and applies defaults.
func (rv *RequestValidator) Validate(q SearchQuery) (SearchRequest, error) {
	q.From = strings.ToUpper(strings.TrimSpace(q.From))
	q.To = strings.ToUpper(strings.TrimSpace(q.To))
	q.DepartureDate = strings.TrimSpace(q.DepartureDate)
	q.CabinClass = strings.ToUpper(strings.TrimSpace(q.CabinClass))

	if err := rv.v.Struct(q); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return SearchRequest{}, validationError(describe(verrs[0]))
		}
		return SearchRequest{}, validationError("invalid search parameters")
	}

	date, err := flighttime.ParseDate(q.DepartureDate)
	if err != nil {
		return SearchRequest{}, validationError("departureDate must be a date in YYYY-MM-DD format")
	}

	req := SearchRequest{
		Origin:            q.From,
		Destination:       q.To,
		Date:              date,
		Cabin:             schedule.CabinEconomy,
		Passengers:        1,
		MinLayoverMinutes: rv.defaults.MinLayoverMinutes,
		MaxLayoverHours:   rv.defaults.MaxLayoverHours,
	}
	if q.CabinClass != "" {
		req.Cabin = schedule.Cabin(q.CabinClass)
	}
	if q.Passengers != nil {
		req.Passengers = *q.Passengers
	}
	if q.MinLayoverMinutes != nil {
		req.MinLayoverMinutes = *q.MinLayoverMinutes
	}
	if q.MaxLayoverHours != nil {
		req.MaxLayoverHours = *q.MaxLayoverHours
	}
	if req.MinLayoverMinutes > req.MaxLayoverHours*60 {
		return SearchRequest{}, validationError("minLayoverMinutes must not exceed maxLayoverHours")
	}
	return req, nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "iata":
		return fmt.Sprintf("%s must be a 3-letter airport code", fe.Field())
	case "nefield":
		return "from and to must be different airports"
	case "datetime":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", fe.Field())
	case "cabin":
		return fmt.Sprintf("%s must be one of ECONOMY, BUSINESS, FIRST_CLASS", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
