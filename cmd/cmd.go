package cmd

import (
	"os"

	"github.com/jamesatjaminit/Jam-Bot/cmd/bot"
	"github.com/jamesatjaminit/Jam-Bot/cmd/migrate"
	"github.com/jamesatjaminit/Jam-Bot/common"
	"github.com/urfave/cli/v2"
)

var app = &cli.App{
	Name:    "Jam-Bot",
	Usage:   "A general purpose Discord bot",
	Version: common.Version(),

	Flags: []cli.Flag{&cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to the configuration file",
		Value:   "config.toml",
		EnvVars: []string{"JAMBOT_CONFIG"},
	}},

	Commands: []*cli.Command{
		bot.Command,
		migrate.Command,
	},
}

func Run() error {
	return app.Run(os.Args)
}
