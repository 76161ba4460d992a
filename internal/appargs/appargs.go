// Package appargs validates positional arguments for commands built
// on github.com/urfave/cli.
package appargs

import (
	"errors"
	"time"

	"github.com/urfave/cli"
)

// ErrInvalidUsage is returned when validation fails.
var ErrInvalidUsage = errors.New("invalid command usage")

// Validator checks the leading arguments and returns how many it
// consumed, or -1 to reject them.
type Validator = func([]string) int

// NonEmpty consumes one required, non-empty argument.
func NonEmpty(args []string) int {
	if len(args) == 0 || args[0] == "" {
		return -1
	}
	return 1
}

// Optional consumes one argument if present.
func Optional(args []string) int {
	if len(args) == 0 {
		return 0
	}
	return 1
}

// OptionalTime consumes one argument if present, which must parse as
// an RFC 3339 timestamp.
func OptionalTime(args []string) int {
	if len(args) == 0 {
		return 0
	}
	if _, err := time.Parse(time.RFC3339, args[0]); err != nil {
		return -1
	}
	return 1
}

// Validate runs the validators over a command's arguments; extra
// arguments are rejected. Use it as the command's Before function.
func Validate(vs ...Validator) cli.BeforeFunc {
	return func(ctx *cli.Context) error {
		remaining := []string(ctx.Args())
		for _, v := range vs {
			consumed := v(remaining)
			if consumed < 0 {
				return ErrInvalidUsage
			}
			remaining = remaining[consumed:]
		}
		if len(remaining) > 0 {
			return ErrInvalidUsage
		}
		return nil
	}
}
