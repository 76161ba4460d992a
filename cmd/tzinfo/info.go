package main

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/Microsoft/tzdb"
	"github.com/Microsoft/tzdb/internal/appargs"
)

type sysInfoOutput struct {
	Zone   string `json:"zone"`
	Begin  string `json:"begin"`
	End    string `json:"end"`
	Offset string `json:"offset"`
	Save   string `json:"save"`
	Abbrev string `json:"abbrev"`
}

func printSysInfo(zone string, si tzdb.SysInfo, asJSON bool) error {
	out := sysInfoOutput{
		Zone:   zone,
		Begin:  formatSys(si.Begin),
		End:    formatSys(si.End),
		Offset: formatOffset(si.Offset),
		Save:   si.Save.String(),
		Abbrev: si.Abbrev,
	}
	if asJSON {
		return json.NewEncoder(os.Stdout).Encode(out)
	}
	fmt.Printf("%s [%s, %s) offset %s save %s abbrev %s\n",
		out.Zone, out.Begin, out.End, out.Offset, out.Save, out.Abbrev)
	return nil
}

var infoCommand = cli.Command{
	Name:      "info",
	Usage:     "Shows the rule in force for a zone at an instant",
	ArgsUsage: "<zone> [rfc3339-time]",
	Flags: []cli.Flag{
		cli.BoolFlag{
			Name:  "json",
			Usage: "emit JSON",
		},
	},
	Before: appargs.Validate(appargs.NonEmpty, appargs.OptionalTime),
	Action: func(ctx *cli.Context) error {
		h, err := newHistory(ctx)
		if err != nil {
			return err
		}
		snap, err := h.Current()
		if err != nil {
			return err
		}

		name := ctx.Args().Get(0)
		zone, ok := snap.LocateZone(name)
		if !ok {
			return errors.Wrap(tzdb.ErrZoneNotFound, name)
		}

		at := tzdb.FromTime(time.Now())
		if arg := ctx.Args().Get(1); arg != "" {
			t, err := time.Parse(time.RFC3339, arg)
			if err != nil {
				return err
			}
			at = tzdb.FromTime(t)
		}

		si, err := zone.Info(at)
		if err != nil {
			return err
		}
		return printSysInfo(zone.Name(), si, ctx.Bool("json"))
	},
}

var currentCommand = cli.Command{
	Name:      "current",
	Usage:     "Shows the system's current zone and its rule in force",
	ArgsUsage: " ",
	Flags: []cli.Flag{
		cli.BoolFlag{
			Name:  "json",
			Usage: "emit JSON",
		},
	},
	Before: appargs.Validate(),
	Action: func(ctx *cli.Context) error {
		h, err := newHistory(ctx)
		if err != nil {
			return err
		}
		snap, err := h.Current()
		if err != nil {
			return err
		}
		zone, err := snap.CurrentZone()
		if err != nil {
			return err
		}
		si, err := zone.Info(tzdb.FromTime(time.Now()))
		if err != nil {
			return err
		}
		return printSysInfo(zone.Name(), si, ctx.Bool("json"))
	},
}
