package commands

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fzdarsky/srp6a/pkg/protocol"
)

// ParamsCommand implements the 'params' command for showing the active parameter set.
type ParamsCommand struct{}

// NewParamsCommand creates a new params command instance.
func NewParamsCommand() *ParamsCommand {
	return &ParamsCommand{}
}

// Execute runs the params command with the provided arguments.
func (c *ParamsCommand) Execute(args []string) {
	fs := flag.NewFlagSet("params", flag.ExitOnError)
	common := addCommonFlags(fs)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: srp6a params [flags]

Show the selected parameter set: prime N, generator g, multiplier k,
hash length and padding width.

Flags:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Default parameter set (SHA-256, 2048-bit group)
  srp6a params

  # RFC 5054 test vector parameters as JSON
  srp6a params --hash SHA-1 --group 1024 --output json
`)
	}

	if err := fs.Parse(args); err != nil {
		exitWithError("failed to parse flags: %v", err)
	}

	ctx := context.Background()
	env, err := common.setup(ctx)
	if err != nil {
		exitWithError("%v", err)
	}

	if err := env.print(c.run(env)); err != nil {
		exitWithError("%v", err)
	}
}

func (c *ParamsCommand) run(env *environment) protocol.GroupInfo {
	return env.params.Info()
}
