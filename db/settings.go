package db

import (
	"context"
	"encoding/json"

	"emperror.dev/errors"
	"github.com/jackc/pgx/v4"
	"github.com/jamesatjaminit/Jam-Bot/settings"

	"github.com/Masterminds/squirrel"
)

var _ settings.Backend = (*DB)(nil)

// FindOne returns the settings document for a guild, or settings.ErrNotFound.
func (db *DB) FindOne(ctx context.Context, guildID string) (settings.Document, error) {
	sql, args, err := sq.Select("value").From("guild_settings").Where(squirrel.Eq{"guild_id": guildID}).ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building sql")
	}

	conn, err := db.Obtain(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "obtaining connection")
	}
	defer conn.Release()

	var raw []byte
	err = conn.QueryRow(ctx, sql, args...).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, settings.ErrNotFound
		}
		return nil, errors.Wrap(err, "executing query")
	}

	var doc settings.Document
	err = json.Unmarshal(raw, &doc)
	if err != nil {
		return nil, errors.Wrap(err, "unmarshaling settings")
	}
	return doc, nil
}

// ReplaceOne inserts or replaces the settings document for a guild.
func (db *DB) ReplaceOne(ctx context.Context, guildID string, doc settings.Document) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "marshaling settings")
	}

	sql, args, err := sq.Insert("guild_settings").
		Columns("guild_id", "value").
		Values(guildID, string(b)).
		Suffix("ON CONFLICT (guild_id) DO UPDATE SET value = excluded.value").
		ToSql()
	if err != nil {
		return errors.Wrap(err, "building sql")
	}

	conn, err := db.Obtain(ctx)
	if err != nil {
		return errors.Wrap(err, "obtaining connection")
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, sql, args...)
	if err != nil {
		return errors.Wrap(err, "executing query")
	}
	return nil
}
