// Package db is the bot's Postgres database: guild settings and scheduled tasks.
package db

import (
	"context"
	"database/sql"
	"embed"

	"emperror.dev/errors"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4/pgxpool"
	"go.uber.org/zap"

	migrate "github.com/rubenv/sql-migrate"

	// pgx driver for migrations
	_ "github.com/jackc/pgx/v4/stdlib"
)

// sq is a squirrel builder for postgres
var sq = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// DB is a Postgres connection pool.
type DB struct {
	*pgxpool.Pool
	Sugar *zap.SugaredLogger

	openConns int32
	onQuery   func()
}

// New connects to the database. Migrations are run first unless noMigrate is true.
func New(ctx context.Context, url string, log *zap.SugaredLogger, noMigrate bool) (*DB, error) {
	if !noMigrate {
		n, err := Migrate(url)
		if err != nil {
			return nil, errors.Wrap(err, "running migrations")
		}

		if n != 0 {
			log.Infof("Performed %v migrations!", n)
		}
	}

	pool, err := pgxpool.Connect(ctx, url)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to postgres")
	}

	return &DB{
		Pool:  pool,
		Sugar: log,
	}, nil
}

//go:embed migrations
var fs embed.FS

// Migrate runs all of the migrations in migrations/, and returns how many were applied.
func Migrate(url string) (n int, err error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return 0, errors.Wrap(err, "opening database")
	}

	// we close this because we end up using pgx's native driver for all other queries.
	defer db.Close()

	err = db.Ping()
	if err != nil {
		return 0, errors.Wrap(err, "pinging database")
	}

	migrations := &migrate.EmbedFileSystemMigrationSource{
		FileSystem: fs,
		Root:       "migrations",
	}

	migrate.SetTable("migration_history")

	n, err = migrate.Exec(db, "postgres", migrations, migrate.Up)
	if err != nil {
		return n, errors.Wrap(err, "running migrations")
	}
	return n, nil
}
