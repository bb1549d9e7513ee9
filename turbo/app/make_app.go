package app

import (
	cli2 "github.com/sponsornet/sponsorchain/turbo/cli"
	"github.com/urfave/cli/v2"
)

func MakeApp(name string, commands []*cli.Command, cliFlags []cli.Flag) *cli.App {
	app := cli2.NewApp()
	app.Name = name
	app.Usage = name
	app.UsageText = app.Name + ` [command] [flags]`
	app.Commands = commands
	app.Flags = cliFlags

	return app
}
