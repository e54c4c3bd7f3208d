package db

import (
	"context"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/georgysavva/scany/pgxscan"

	"github.com/Masterminds/squirrel"
)

// TaskType is the action a task performs.
type TaskType string

// Task types
const (
	TaskUnban TaskType = "unban"
)

// Task is a deferred moderation action.
type Task struct {
	ID      int64
	GuildID discord.GuildID
	UserID  discord.UserID
	Type    TaskType
	Reason  string

	RunAt     time.Time
	CreatedAt time.Time
}

// AddTask schedules a task and returns it with its ID set.
func (db *DB) AddTask(ctx context.Context, t Task) (Task, error) {
	sql, args, err := sq.Insert("tasks").
		Columns("guild_id", "user_id", "type", "reason", "run_at").
		Values(t.GuildID, t.UserID, t.Type, t.Reason, t.RunAt.UTC()).
		Suffix("RETURNING *").
		ToSql()
	if err != nil {
		return t, errors.Wrap(err, "building sql")
	}

	conn, err := db.Obtain(ctx)
	if err != nil {
		return t, errors.Wrap(err, "obtaining connection")
	}
	defer conn.Release()

	var out Task
	err = pgxscan.Get(ctx, conn, &out, sql, args...)
	if err != nil {
		return t, errors.Wrap(err, "executing query")
	}
	return out, nil
}

// DueTasks returns all tasks with a run time at or before now, oldest first.
func (db *DB) DueTasks(ctx context.Context, now time.Time) (ts []Task, err error) {
	sql, args, err := sq.Select("*").From("tasks").
		Where(squirrel.LtOrEq{"run_at": now.UTC()}).
		OrderBy("run_at").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building sql")
	}

	conn, err := db.Obtain(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "obtaining connection")
	}
	defer conn.Release()

	err = pgxscan.Select(ctx, conn, &ts, sql, args...)
	if err != nil {
		return nil, errors.Wrap(err, "executing query")
	}
	return ts, nil
}

// PendingTasks returns all tasks in a guild that haven't run yet.
func (db *DB) PendingTasks(ctx context.Context, guildID discord.GuildID) (ts []Task, err error) {
	sql, args, err := sq.Select("*").From("tasks").
		Where(squirrel.Eq{"guild_id": guildID}).
		OrderBy("run_at").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building sql")
	}

	conn, err := db.Obtain(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "obtaining connection")
	}
	defer conn.Release()

	err = pgxscan.Select(ctx, conn, &ts, sql, args...)
	if err != nil {
		return nil, errors.Wrap(err, "executing query")
	}
	return ts, nil
}

// DeleteTask deletes a task.
func (db *DB) DeleteTask(ctx context.Context, id int64) error {
	sql, args, err := sq.Delete("tasks").Where(squirrel.Eq{"id": id}).ToSql()
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
