package connection

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightconnect/internal/schedule"
	"flightconnect/pkg/cache"
	"flightconnect/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, repo schedule.Repository, c cache.Cache) *gin.Engine {
	t.Helper()
	svc := NewService(NewSearcher(repo, 4, time.Second, logger.Nop()), c, 10, nil, logger.Nop())
	h := NewConnectionHandler(svc, NewRequestValidator(Defaults{MinLayoverMinutes: 90, MaxLayoverHours: 12}), logger.Nop())

	r := gin.New()
	h.RegisterRoutes(r)
	return r
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func scenarioIndex(t *testing.T) *schedule.Index {
	return index(t,
		flightSpec{id: "o1", from: "HKG", to: "DXB", dep: "04:00", arr: "08:00", dur: "7h", price: 3000, seats: 9},
		flightSpec{id: "i1", from: "DXB", to: "FRA", dep: "17:00", arr: "21:00", dur: "6h", price: 2500, seats: 9},
	)
}

func TestSearchConnectionsHandler_OK(t *testing.T) {
	mr := miniredis.RunT(t)
	r := newTestRouter(t, scenarioIndex(t), cache.NewRedisCache(mr.Addr(), ""))
	target := "/v1/flights/connections?from=hkg&to=FRA&departureDate=2025-03-12&passengers=2"

	w := get(r, target)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))

	var body SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, 1, body.Count)

	c := body.Connections[0]
	assert.Equal(t, "o1-i1", c.ID)
	assert.Equal(t, "connection", c.Type)
	assert.Equal(t, 1, c.Stops)
	assert.Equal(t, "DXB", c.LayoverAirport)
	assert.Equal(t, "Dubai", c.LayoverAirportName)
	assert.Equal(t, 540, c.LayoverMinutes)
	assert.Equal(t, 1320, c.TotalDuration)
	assert.Equal(t, 11000.0, c.TotalPrice)
	assert.Equal(t, 5500.0, c.PricePerPassenger)
	assert.Equal(t, "HKG", c.From)
	assert.Equal(t, "Hong Kong", c.FromCity)
	assert.Equal(t, "FRA", c.To)
	assert.Equal(t, "Frankfurt", c.ToCity)
	assert.Equal(t, "2025-03-12T04:00:00", c.DepartureTime)
	assert.Equal(t, "2025-03-12T21:00:00", c.ArrivalTime)

	require.Len(t, c.Segments, 2)
	seg := c.Segments[0]
	assert.Equal(t, "o1", seg.ID)
	assert.Equal(t, "FNo1", seg.FlightNumber)
	assert.Equal(t, "SCHEDULED", seg.Status)
	assert.Equal(t, 420, seg.Duration)
	assert.Equal(t, "7h", seg.DurationStr)
	assert.Equal(t, 3000.0, seg.PricePerPassenger)
	assert.Equal(t, 6000.0, seg.TotalPrice)
	assert.Equal(t, "ECONOMY", seg.CabinClass)
	assert.Equal(t, "2025-03-12T08:00:00", seg.ArrivalTime)

	assert.Equal(t, SearchParams{
		From: "HKG", To: "FRA", DepartureDate: "2025-03-12", CabinClass: "ECONOMY",
		Passengers: 2, MaxLayoverHours: 12, MinLayoverMinutes: 90,
	}, body.SearchParams)

	again := get(r, target)
	require.Equal(t, http.StatusOK, again.Code)
	assert.Equal(t, "HIT", again.Header().Get("X-Cache"))
	assert.JSONEq(t, w.Body.String(), again.Body.String())
}

func TestSearchConnectionsHandler_Empty(t *testing.T) {
	r := newTestRouter(t, scenarioIndex(t), cache.NoOp{})

	w := get(r, "/v1/flights/connections?from=HKG&to=SIN&departureDate=2025-03-12")

	require.Equal(t, http.StatusOK, w.Code)
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.JSONEq(t, `[]`, string(raw["connections"]))
	assert.JSONEq(t, `0`, string(raw["count"]))
}

func TestSearchConnectionsHandler_ValidationBeforeRepository(t *testing.T) {
	repo := &countingRepo{Repository: scenarioIndex(t)}
	r := newTestRouter(t, repo, cache.NoOp{})

	tests := []struct {
		name   string
		target string
	}{
		{"same airport", "/v1/flights/connections?from=HKG&to=hkg&departureDate=2025-03-12"},
		{"missing from", "/v1/flights/connections?to=FRA&departureDate=2025-03-12"},
		{"missing date", "/v1/flights/connections?from=HKG&to=FRA"},
		{"non numeric passengers", "/v1/flights/connections?from=HKG&to=FRA&departureDate=2025-03-12&passengers=two"},
		{"zero passengers", "/v1/flights/connections?from=HKG&to=FRA&departureDate=2025-03-12&passengers=0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(r, tt.target)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, ErrorCodeValidation, body.Code)
			assert.NotEmpty(t, body.Error)
		})
	}
	assert.Zero(t, repo.calls())
}

func TestSearchConnectionsHandler_RepositoryFailure(t *testing.T) {
	r := newTestRouter(t, &failingRepo{Repository: scenarioIndex(t), route: "DXB-FRA"}, cache.NoOp{})

	w := get(r, "/v1/flights/connections?from=HKG&to=FRA&departureDate=2025-03-12")

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error","code":"INTERNAL_FAILURE"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "connection reset")
}

func TestHealthHandler(t *testing.T) {
	r := newTestRouter(t, scenarioIndex(t), cache.NoOp{})

	w := get(r, "/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
