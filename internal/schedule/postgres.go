package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"

	"flightconnect/pkg/db"
	"flightconnect/pkg/logger"
)

const flightColumns = `id, flight_number, airline, airline_code, aircraft,
	from_code, from_city, to_code, to_city,
	departure_time, arrival_time, duration,
	economy_price, business_price, first_class_price,
	economy_seats, business_seats, first_class_seats,
	status, operating_days`

// PostgresRepository reads flight templates from the flights table.
type PostgresRepository struct {
	client db.SQLExecutor
	dbx    *sqlx.DB
	logger logger.Logger
}

func NewPostgresRepository(client db.SQLExecutor, log logger.Logger) *PostgresRepository {
	return &PostgresRepository{
		client: client,
		dbx:    sqlx.NewDb(client.DB(), "postgres"),
		logger: log,
	}
}

func seatColumn(c Cabin) string {
	switch c {
	case CabinBusiness:
		return "business_seats"
	case CabinFirst:
		return "first_class_seats"
	default:
		return "economy_seats"
	}
}

// FindFlights filters in SQL and re-checks each parsed row, so weekday membership is
// exact even if operating_days holds unexpected characters.
func (r *PostgresRepository) FindFlights(ctx context.Context, q FlightQuery) ([]FlightTemplate, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM flights
		WHERE from_code = $1
		  AND to_code = $2
		  AND status IN ('SCHEDULED', 'BOARDING')
		  AND $3 = ANY(string_to_array(operating_days, NULL))
		  AND %s >= $4
		ORDER BY departure_time, id`, flightColumns, seatColumn(q.Cabin))

	var records []FlightRecord
	if err := r.dbx.SelectContext(ctx, &records, query,
		q.Origin, q.Destination, strconv.Itoa(q.Weekday), q.MinSeats,
	); err != nil {
		return nil, &RepositoryError{Op: "find flights", Err: err}
	}

	templates := templatesFrom(records, r.logger)
	out := templates[:0]
	for _, t := range templates {
		if t.Matches(q) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *PostgresRepository) ListDistinctAirportPairs(ctx context.Context) ([]AirportPair, error) {
	var pairs []AirportPair
	if err := r.dbx.SelectContext(ctx, &pairs,
		`SELECT DISTINCT from_code, to_code FROM flights ORDER BY from_code, to_code`,
	); err != nil {
		return nil, &RepositoryError{Op: "list airport pairs", Err: err}
	}
	return pairs, nil
}

// LoadTemplates reads the whole table for the in-memory index.
func (r *PostgresRepository) LoadTemplates(ctx context.Context) ([]FlightTemplate, error) {
	var records []FlightRecord
	if err := r.dbx.SelectContext(ctx, &records,
		fmt.Sprintf(`SELECT %s FROM flights ORDER BY id`, flightColumns),
	); err != nil {
		return nil, &RepositoryError{Op: "load templates", Err: err}
	}
	return templatesFrom(records, r.logger), nil
}

// ReplaceAll swaps the table contents for records in one transaction.
func (r *PostgresRepository) ReplaceAll(ctx context.Context, records []FlightRecord) error {
	return r.client.WithTransaction(ctx, sql.LevelDefault, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM flights`); err != nil {
			return fmt.Errorf("clear flights: %w", err)
		}

		insert := fmt.Sprintf(`INSERT INTO flights (%s)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			        $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`, flightColumns)

		for _, rec := range records {
			if _, err := tx.ExecContext(ctx, insert,
				rec.ID, rec.FlightNumber, rec.Airline, rec.AirlineCode, rec.Aircraft,
				rec.From, rec.FromCity, rec.To, rec.ToCity,
				rec.DepartureTime, rec.ArrivalTime, rec.Duration,
				rec.EconomyPrice, rec.BusinessPrice, rec.FirstClassPrice,
				rec.EconomySeats, rec.BusinessSeats, rec.FirstClassSeats,
				rec.Status, rec.OperatingDays,
			); err != nil {
				return fmt.Errorf("insert flight %s: %w", rec.ID, err)
			}
		}
		return nil
	})
}
