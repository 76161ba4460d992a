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

// localLayout is a civil timestamp without zone designator.
const localLayout = "2006-01-02T15:04:05"

var convertCommand = cli.Command{
	Name:      "convert",
	Usage:     "Converts a civil time in a zone to UTC",
	ArgsUsage: "<zone> <local-time>",
	Description: `Converts a civil timestamp (` + localLayout + `) to UTC.
   Ambiguous civil times pick the earlier candidate unless --latest is
   given; nonexistent civil times normalize forward across the gap
   unless --strict is given.`,
	Flags: []cli.Flag{
		cli.BoolFlag{
			Name:  "latest",
			Usage: "pick the later candidate for ambiguous times",
		},
		cli.BoolFlag{
			Name:  "strict",
			Usage: "fail on ambiguous or nonexistent times",
		},
		cli.BoolFlag{
			Name:  "json",
			Usage: "emit JSON",
		},
	},
	Before: appargs.Validate(appargs.NonEmpty, appargs.NonEmpty),
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

		civil, err := time.Parse(localLayout, ctx.Args().Get(1))
		if err != nil {
			return err
		}
		l := tzdb.FromCivil(civil.Year(), civil.Month(), civil.Day(),
			civil.Hour(), civil.Minute(), civil.Second())

		li, err := zone.LocalInfo(l)
		if err != nil {
			return err
		}

		var sys tzdb.SysTime
		if ctx.Bool("strict") {
			sys, err = zone.ToSysStrict(l)
		} else {
			choose := tzdb.ChooseEarliest
			if ctx.Bool("latest") {
				choose = tzdb.ChooseLatest
			}
			sys, err = zone.ToSys(l, choose)
		}
		if err != nil {
			return err
		}

		if ctx.Bool("json") {
			out := struct {
				Zone   string `json:"zone"`
				Local  string `json:"local"`
				Sys    string `json:"sys"`
				Kind   string `json:"kind"`
				Offset string `json:"offset"`
			}{
				Zone:   zone.Name(),
				Local:  ctx.Args().Get(1),
				Sys:    formatSys(sys),
				Kind:   li.Result.String(),
				Offset: formatOffset(li.First.Offset),
			}
			return json.NewEncoder(os.Stdout).Encode(out)
		}

		fmt.Printf("%s (%s in %s)\n", formatSys(sys), li.Result, zone.Name())
		return nil
	},
}
