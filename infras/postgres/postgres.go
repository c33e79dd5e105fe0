package postgres

//nolint:revive
import (
	"fmt"
	"kampus/config"
	"net"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 2
	postgresMaxOpenConnection = 4
)

// DSN returns the connection string for the snapshot database.
func DSN(config *config.Config) string {
	pg := config.Storage.Postgres

	return fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		pg.Username,
		pg.Password,
		net.JoinHostPort(pg.Host, pg.Port),
		pg.Name,
		pg.SSLMode,
	)
}

// New connects to postgres, retrying up to MaxRetry times.
func New(config *config.Config) (*sqlx.DB, error) {
	pg := config.Storage.Postgres

	maxRetry := pg.MaxRetry
	if maxRetry < 1 {
		maxRetry = 1
	}

	var lastErr error

	for retry := range maxRetry {
		db, err := sqlx.Connect("postgres", DSN(config))
		if err == nil {
			log.
				Info().
				Str("host", pg.Host).
				Str("port", pg.Port).
				Str("dbName", pg.Name).
				Msg("Connected to database")
			db.SetMaxIdleConns(postgresMaxIdleConnection)
			db.SetMaxOpenConns(postgresMaxOpenConnection)

			return db, nil
		}

		lastErr = err

		log.
			Error().
			Err(err).
			Str("host", pg.Host).
			Str("port", pg.Port).
			Str("dbName", pg.Name).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(pg.RetryWaitTime) * time.Second)
	}

	return nil, fmt.Errorf("failed to connect to postgres after %d attempts: %w", maxRetry, lastErr)
}
