package migrate

import (
	"emperror.dev/errors"
	"github.com/jamesatjaminit/Jam-Bot/bot"
	"github.com/jamesatjaminit/Jam-Bot/common/log"
	"github.com/jamesatjaminit/Jam-Bot/db"
	"github.com/urfave/cli/v2"
)

var Command = &cli.Command{
	Name:   "migrate",
	Usage:  "Run migrations manually",
	Action: run,
	Flags: []cli.Flag{&cli.BoolFlag{
		Name:    "force",
		Aliases: []string{"f"},
		Usage:   "Run migrations whether or not no_auto_migrate is set in the config.",
		Value:   false,
	}},
}

func run(c *cli.Context) error {
	conf, err := bot.ReadConfig(c.String("config"))
	if err != nil {
		return errors.Wrap(err, "reading config")
	}

	zl, err := log.New(conf.Bot.Debug)
	if err != nil {
		return errors.Wrap(err, "creating logger")
	}
	sugar := zl.Sugar()

	if conf.Auth.Postgres == "" {
		return cli.Exit("No database url set in config.toml.", 1)
	}

	if !conf.Bot.NoAutoMigrate && !c.Bool("force") {
		return cli.Exit("Migrations are run automatically, and the --force flag is not set.", 1)
	}

	n, err := db.Migrate(conf.Auth.Postgres)
	if err != nil {
		sugar.Fatalf("Running migrations: %v", err)
	}

	sugar.Infof("Successfully ran %v migrations!", n)
	return nil
}
