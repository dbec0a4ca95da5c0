package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"

	"flightconnect/cfg"
	"flightconnect/internal/schedule"
	"flightconnect/pkg/db"
	"flightconnect/pkg/logger"
)

func main() {
	source := flag.String("path", "file://db/migrations", "migrations source URL")
	down := flag.Bool("down", false, "roll back every migration instead of applying them")
	seed := flag.String("seed", "", "schedule YAML file to load into the flights table after migrating")
	flag.Parse()

	// ============
	// Load config
	// ============
	config, errCfg := cfg.Load()
	if errCfg != nil {
		log.Fatal(errCfg)
	}
	if config.PostgresConfig.Host == "" {
		log.Fatal("migrate needs a postgres SCHEDULE_SOURCE")
	}
	zlogger := logger.NewZeroLog(config.AppEnv)
	dsn := config.PostgresConfig.DSN()

	// =========
	// Migrate
	// =========
	m, err := migrate.New(*source, dsn)
	if err != nil {
		log.Fatal(err)
	}
	if *down {
		err = m.Down()
	} else {
		err = m.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal(err)
	}
	version, dirty, _ := m.Version()
	zlogger.Info("migrations applied",
		logger.Field{Key: "version", Value: uint64(version)},
		logger.Field{Key: "dirty", Value: dirty},
	)

	if *seed == "" || *down {
		return
	}

	// ============
	// Seed schedule
	// ============
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	records, err := schedule.ReadRecords(*seed)
	if err != nil {
		log.Fatal(err)
	}

	client, err := db.NewSQLClient(ctx, "postgres", dsn, db.Pool{MaxOpenConns: 2})
	if err != nil {
		log.Fatal(err)
	}
	defer client.Close()

	if err := schedule.NewPostgresRepository(client, zlogger).ReplaceAll(ctx, records); err != nil {
		log.Fatal(err)
	}
	zlogger.Info("schedule seeded", logger.Field{Key: "flights", Value: len(records)})

	if config.Schedule.RabbitMQURL == "" {
		return
	}
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	if err := schedule.Publish(ctx, config.Schedule.RabbitMQURL, config.Schedule.ChangedQueue, schedule.ChangedEvent{
		FlightIDs: ids,
		Reason:    "seed",
		ChangedAt: time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		zlogger.Warn("schedule.changed not published", logger.Err(err))
	}
}
