package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"portfolio-terminal/internal/theme"
)

var setCmd = &cobra.Command{
	Use:   "set <client> <light|dark>",
	Short: "Store a theme for a client",
	Long: `Store a theme for a client. The client sees it on their next visit.

Examples:
  themectl set ssh:SHA256:Xk9... light
  themectl set anon:3F2A9C1D0B7E dark`,
	Args: cobra.ExactArgs(2),
	RunE: runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)
}

func runSet(cmd *cobra.Command, args []string) error {
	mode, err := theme.ParseMode(args[1])
	if err != nil {
		return err
	}
	if err := clientStore(args[0]).Set(cmd.Context(), theme.PreferenceKey, mode.String()); err != nil {
		return fmt.Errorf("storing theme: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", args[0], modeLabel(mode))
	return nil
}
