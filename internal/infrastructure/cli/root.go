// Package cli wires the cobra command surface over the app container.
package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/maysielabs/maysie/internal/app"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}

	root := &cobra.Command{
		Use:   "maysie [command text]",
		Short: "Maysie - local command assistant",
		Long:  "Maysie classifies free-text commands, runs system actions (with gated sudo) or forwards questions to an AI backend.",
		// ArbitraryArgs lets bare free text reach RunE; the default arg
		// validation on a root with subcommands would reject it first.
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			cmd.Println(container.Router.Route(cmd.Context(), strings.Join(args, " ")))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			container.Close()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRouteCommand(container))
	root.AddCommand(newSecretsCommand(container))
	root.AddCommand(newCacheCommand(container))
	root.AddCommand(newHistoryCommand(container))
	root.AddCommand(newConfigCommand(container))
	return root, nil
}

func newRouteCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "route [command text]",
		Short: "Route a free-text command",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			response := container.Router.Route(cmd.Context(), strings.Join(args, " "))
			cmd.Println(response)
			return nil
		},
	}
}
