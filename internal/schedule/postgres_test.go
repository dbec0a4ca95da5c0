package schedule

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightconnect/pkg/db"
	"flightconnect/pkg/logger"
)

var recordColumns = []string{
	"id", "flight_number", "airline", "airline_code", "aircraft",
	"from_code", "from_city", "to_code", "to_city",
	"departure_time", "arrival_time", "duration",
	"economy_price", "business_price", "first_class_price",
	"economy_seats", "business_seats", "first_class_seats",
	"status", "operating_days",
}

func newPostgresRepo(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return NewPostgresRepository(db.Wrap(conn), logger.Nop()), mock
}

func TestPostgresRepository_FindFlights(t *testing.T) {
	repo, mock := newPostgresRepo(t)

	rows := sqlmock.NewRows(recordColumns).
		AddRow("f-1", "CX731", "Cathay Pacific", "CX", "A350",
			"HKG", "Hong Kong", "DXB", "Dubai",
			"08:00", "12:00", "7h",
			3200.0, 12000.0, 30000.0, 20, 4, 2, "SCHEDULED", "1234567").
		AddRow("f-2", "CX745", "Cathay Pacific", "CX", "A350",
			"HKG", "Hong Kong", "DXB", "Dubai",
			"09:00", "13:00", "seven hours",
			3100.0, 11000.0, 28000.0, 20, 4, 2, "SCHEDULED", "1234567")

	mock.ExpectQuery(`FROM flights\s+WHERE from_code = \$1`).
		WithArgs("HKG", "DXB", "3", 2).
		WillReturnRows(rows)

	got, err := repo.FindFlights(context.Background(), FlightQuery{
		Origin: "HKG", Destination: "DXB", Weekday: 3, Cabin: CabinBusiness, MinSeats: 2,
	})

	require.NoError(t, err)
	require.Len(t, got, 1, "the malformed duration row is skipped")
	assert.Equal(t, "f-1", got[0].ID)
	assert.Equal(t, 420, got[0].Duration.TotalMinutes())
	assert.Equal(t, Fare{Price: 12000, Seats: 4}, got[0].Fare(CabinBusiness))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_FindFlightsError(t *testing.T) {
	repo, mock := newPostgresRepo(t)

	mock.ExpectQuery(`FROM flights`).WillReturnError(errors.New("connection reset"))

	_, err := repo.FindFlights(context.Background(), FlightQuery{
		Origin: "HKG", Destination: "DXB", Weekday: 3, Cabin: CabinEconomy, MinSeats: 1,
	})

	var repoErr *RepositoryError
	require.True(t, errors.As(err, &repoErr))
	assert.Equal(t, "find flights", repoErr.Op)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_ListDistinctAirportPairs(t *testing.T) {
	repo, mock := newPostgresRepo(t)

	mock.ExpectQuery(`SELECT DISTINCT from_code, to_code FROM flights`).
		WillReturnRows(sqlmock.NewRows([]string{"from_code", "to_code"}).
			AddRow("DXB", "FRA").
			AddRow("HKG", "DXB"))

	pairs, err := repo.ListDistinctAirportPairs(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []AirportPair{{"DXB", "FRA"}, {"HKG", "DXB"}}, pairs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_LoadTemplates(t *testing.T) {
	repo, mock := newPostgresRepo(t)

	mock.ExpectQuery(`FROM flights ORDER BY id`).
		WillReturnRows(sqlmock.NewRows(recordColumns).
			AddRow("f-1", "LH631", "Lufthansa", "LH", "A340",
				"DXB", "Dubai", "FRA", "Frankfurt",
				"17:00", "21:30", "6h 30m",
				2500.0, 9000.0, 20000.0, 30, 6, 0, "BOARDING", "135"))

	got, err := repo.LoadTemplates(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, StatusBoarding, got[0].Status)
	assert.Equal(t, []int{1, 3, 5}, got[0].OperatingDays.Days())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_ReplaceAll(t *testing.T) {
	repo, mock := newPostgresRepo(t)

	records := []FlightRecord{
		{ID: "f-1", FlightNumber: "CX731", From: "HKG", To: "DXB", DepartureTime: "08:00",
			ArrivalTime: "12:00", Duration: "7h", Status: "SCHEDULED", OperatingDays: "1234567"},
		{ID: "f-2", FlightNumber: "LH631", From: "DXB", To: "FRA", DepartureTime: "17:00",
			ArrivalTime: "21:30", Duration: "6h 30m", Status: "SCHEDULED", OperatingDays: "1234567"},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM flights`).WillReturnResult(sqlmock.NewResult(0, 7))
	mock.ExpectExec(`INSERT INTO flights`).WithArgs(
		"f-1", "CX731", "", "", "", "HKG", "", "DXB", "", "08:00", "12:00", "7h",
		0.0, 0.0, 0.0, 0, 0, 0, "SCHEDULED", "1234567",
	).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO flights`).WillReturnError(errors.New("duplicate key"))
	mock.ExpectRollback()

	err := repo.ReplaceAll(context.Background(), records)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert flight f-2")
	assert.NoError(t, mock.ExpectationsWereMet())
}
