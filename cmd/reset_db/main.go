package main

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"rentwheels/config"
	"rentwheels/pkg/logger"
	"rentwheels/storage/postgres"
)

// Dev utility: wipe the data tables without touching the schema.
func main() {
	cfg := config.Load()
	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, postgres.BuildURL(cfg))
	if err != nil {
		panic(err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, "TRUNCATE TABLE bookings, cars"); err != nil {
		log.Error("failed to truncate tables", logger.Error(err))
		return
	}
	log.Info("truncated bookings and cars tables")
}
