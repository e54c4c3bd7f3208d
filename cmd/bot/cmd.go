package bot

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"emperror.dev/errors"
	"github.com/getsentry/sentry-go"
	"github.com/jamesatjaminit/Jam-Bot/bot"
	"github.com/jamesatjaminit/Jam-Bot/commands/config"
	"github.com/jamesatjaminit/Jam-Bot/commands/general"
	"github.com/jamesatjaminit/Jam-Bot/commands/images"
	"github.com/jamesatjaminit/Jam-Bot/commands/moderation"
	"github.com/jamesatjaminit/Jam-Bot/commands/owner"
	"github.com/jamesatjaminit/Jam-Bot/common"
	"github.com/jamesatjaminit/Jam-Bot/common/log"
	"github.com/jamesatjaminit/Jam-Bot/jobs"
	"github.com/jamesatjaminit/Jam-Bot/logging/members"
	"github.com/jamesatjaminit/Jam-Bot/logging/messages"
	"github.com/jamesatjaminit/Jam-Bot/web"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var Command = &cli.Command{
	Name:   "bot",
	Usage:  "Run the bot",
	Action: run,
}

func run(c *cli.Context) error {
	conf, err := bot.ReadConfig(c.String("config"))
	if err != nil {
		return errors.Wrap(err, "reading config")
	}

	ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// forward warnings and errors to a webhook, if one is set
	var opts []zap.Option
	if conf.Auth.ErrorWebhook != "" {
		fwd, err := log.NewForwarder(conf.Auth.ErrorWebhook, "Jam-Bot")
		if err != nil {
			return errors.Wrap(err, "creating error webhook")
		}
		opts = append(opts, fwd.Option())
		go fwd.Run(ctx)
	}

	zl, err := log.New(conf.Bot.Debug, opts...)
	if err != nil {
		return errors.Wrap(err, "creating logger")
	}
	sugar := zl.Sugar()
	defer func() { _ = sugar.Sync() }()

	initLog := sugar.Named("init")

	// set up sentry
	if conf.Auth.Sentry != "" {
		initLog.Debug("setting up sentry")
		err := sentry.Init(sentry.ClientOptions{
			Dsn:     conf.Auth.Sentry,
			Release: common.Version(),
		})
		if err != nil {
			initLog.Fatalf("setting up sentry: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	} else {
		initLog.Debugf("sentry DSN was not provided, not setting it up")
	}

	b, err := bot.New(ctx, conf, sugar.Named("bot"))
	if err != nil {
		initLog.Fatalf("creating bot: %v", err)
	}
	defer func() {
		err := b.Close()
		if err != nil {
			initLog.Errorf("closing bot: %v", err)
		}
		initLog.Info("Disconnected from Discord.")
	}()

	// set up modules (logging, commands)
	messages.Setup(b) // snipes and deleted message logs
	members.Setup(b)  // join logs and guild logs

	general.Setup(b)    // snipe, define, help...
	images.Setup(b)     // animals and image search
	moderation.Setup(b) // ban and kick
	config.Setup(b)     // settings
	owner.Setup(b)      // owner-only commands

	initLog.Infof("Registered %v commands", b.Commands.Len())

	// actually run bot!
	err = b.Open(ctx)
	if err != nil {
		initLog.Fatalf("opening gateway connection: %v", err)
	}

	err = b.SyncCommands()
	if err != nil {
		initLog.Errorf("syncing slash commands: %v", err)
	}

	sched := jobs.Setup(ctx, b)

	if addr := conf.Web.Listen; addr != "" {
		srv := web.New(addr, web.BotStatus(b), sugar.Named("web"))
		go func() {
			err := srv.Run(ctx)
			if err != nil {
				initLog.Errorf("running status server: %v", err)
			}
		}()
	}

	initLog.Info("Connected to Discord. Press Ctrl-C or send an interrupt signal to stop.")

	<-ctx.Done()
	initLog.Info("Interrupt signal received. Shutting down...")

	sched.Wait()
	return nil
}
