package jobs

import (
	"context"
	"net/http"
	"time"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/utils/httputil"
	"github.com/jamesatjaminit/Jam-Bot/db"
	"go.uber.org/zap"
)

// TaskStore stores scheduled tasks.
type TaskStore interface {
	DueTasks(ctx context.Context, now time.Time) ([]db.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

// Unbanner lifts bans.
type Unbanner interface {
	Unban(guildID discord.GuildID, userID discord.UserID, reason api.AuditLogReason) error
}

// Tasks runs scheduled moderation tasks once they're due.
type Tasks struct {
	Log      *zap.SugaredLogger
	Store    TaskStore
	Unbanner Unbanner
	Now      func() time.Time
}

// Run runs and deletes every due task.
// Tasks that fail are logged and deleted all the same, so a missing permission doesn't retry forever.
func (t *Tasks) Run(ctx context.Context) error {
	now := time.Now
	if t.Now != nil {
		now = t.Now
	}

	tasks, err := t.Store.DueTasks(ctx, now())
	if err != nil {
		return errors.Wrap(err, "getting due tasks")
	}

	for _, task := range tasks {
		err = t.run(task)
		if err != nil {
			t.Log.Errorf("running task %v (%v) in guild %v: %v", task.ID, task.Type, task.GuildID, err)
		}

		err = t.Store.DeleteTask(ctx, task.ID)
		if err != nil {
			return errors.Wrapf(err, "deleting task %v", task.ID)
		}
	}
	return nil
}

func (t *Tasks) run(task db.Task) error {
	switch task.Type {
	case db.TaskUnban:
		t.Log.Debugf("Unbanning %v in %v", task.UserID, task.GuildID)

		err := t.Unbanner.Unban(task.GuildID, task.UserID, "Temporary ban expired")
		// the user was already unbanned
		if isStatus(err, http.StatusNotFound) {
			return nil
		}
		return errors.Wrap(err, "unbanning user")
	default:
		return errors.Errorf("unknown task type %q", task.Type)
	}
}

func isStatus(err error, status int) bool {
	var httpErr *httputil.HTTPError
	return errors.As(err, &httpErr) && httpErr.Status == status
}
