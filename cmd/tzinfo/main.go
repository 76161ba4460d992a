package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/Microsoft/tzdb"
)

func main() {
	app := cli.NewApp()
	app.Name = "tzinfo"
	app.Usage = "time-zone database diagnostic tool"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "corrections",
			Usage: "YAML file with additional zone alias corrections",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "enable debug logging",
		},
	}
	app.Before = func(ctx *cli.Context) error {
		if ctx.GlobalBool("debug") {
			logrus.SetLevel(logrus.DebugLevel)
		}
		return nil
	}
	app.Commands = []cli.Command{
		listCommand,
		currentCommand,
		infoCommand,
		convertCommand,
		leapCommand,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newHistory(ctx *cli.Context) (*tzdb.History, error) {
	var opts []tzdb.Option
	if path := ctx.GlobalString("corrections"); path != "" {
		corr := tzdb.DefaultCorrections()
		if err := corr.MergeFile(path); err != nil {
			return nil, err
		}
		opts = append(opts, tzdb.WithCorrections(corr))
	}
	return tzdb.NewHistory(opts...), nil
}

// formatOffset renders a duration as a signed hh:mm UTC offset.
func formatOffset(d time.Duration) string {
	sign := "+"
	if d < 0 {
		sign = "-"
		d = -d
	}
	return fmt.Sprintf("%s%02d:%02d", sign, int(d.Hours()), int(d.Minutes())%60)
}

func formatSys(t tzdb.SysTime) string {
	switch t {
	case tzdb.MinSys:
		return "-inf"
	case tzdb.MaxSys:
		return "+inf"
	}
	return t.Time().Format(time.RFC3339)
}
