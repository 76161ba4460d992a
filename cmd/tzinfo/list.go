package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/urfave/cli"

	"github.com/Microsoft/tzdb/internal/appargs"
)

var listCommand = cli.Command{
	Name:      "list",
	Usage:     "Lists the zones and links of the current snapshot",
	ArgsUsage: " ",
	Flags: []cli.Flag{
		cli.BoolFlag{
			Name:  "all",
			Usage: "show the backend's raw identifier list instead, aliases included",
		},
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

		if ctx.Bool("all") {
			ids, err := h.AllZoneIDs()
			if err != nil {
				return err
			}
			if ctx.Bool("json") {
				return json.NewEncoder(os.Stdout).Encode(ids)
			}
			for _, id := range ids {
				fmt.Println(id)
			}
			return nil
		}

		snap, err := h.Current()
		if err != nil {
			return err
		}
		if ctx.Bool("json") {
			type link struct {
				Alias  string `json:"alias"`
				Target string `json:"target"`
			}
			out := struct {
				Version string   `json:"version"`
				Zones   []string `json:"zones"`
				Links   []link   `json:"links"`
			}{Version: snap.Version()}
			for _, z := range snap.Zones() {
				out.Zones = append(out.Zones, z.Name())
			}
			for _, l := range snap.Links() {
				out.Links = append(out.Links, link{Alias: l.Alias, Target: l.Target})
			}
			return json.NewEncoder(os.Stdout).Encode(out)
		}

		fmt.Printf("tzdata %s\n", snap.Version())
		for _, z := range snap.Zones() {
			fmt.Println(z.Name())
		}
		for _, l := range snap.Links() {
			fmt.Printf("%s -> %s\n", l.Alias, l.Target)
		}
		return nil
	},
}

var leapCommand = cli.Command{
	Name:      "leap",
	Usage:     "Lists the known leap seconds",
	ArgsUsage: " ",
	Before:    appargs.Validate(),
	Action: func(ctx *cli.Context) error {
		h, err := newHistory(ctx)
		if err != nil {
			return err
		}
		snap, err := h.Current()
		if err != nil {
			return err
		}
		for _, ls := range snap.LeapSeconds() {
			kind := "+1s"
			if ls.Negative {
				kind = "-1s"
			}
			fmt.Printf("%s %s\n", formatSys(ls.At), kind)
		}
		return nil
	},
}
