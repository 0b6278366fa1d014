package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"portfolio-terminal/internal/logging"
	"portfolio-terminal/internal/theme"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle <client>",
	Short: "Flip a client's theme the way the toggle control does",
	Args:  cobra.ExactArgs(1),
	RunE:  runToggle,
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}

func runToggle(cmd *cobra.Command, args []string) error {
	ctrl := theme.NewController(clientStore(args[0]), nil,
		theme.WithDefault(fallback),
		theme.WithLogger(logging.Component(logger, "theme")))
	ctrl.Initialize(cmd.Context())
	before := ctrl.Mode()
	after := ctrl.Toggle(cmd.Context())
	if !ctrl.Persistent() {
		return fmt.Errorf("toggle for %s was not persisted", args[0])
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s → %s\n", args[0], modeLabel(before), modeLabel(after))
	return nil
}
