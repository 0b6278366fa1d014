package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"portfolio-terminal/internal/prefs"
	"portfolio-terminal/internal/theme"
)

var getCmd = &cobra.Command{
	Use:   "get <client>",
	Short: "Show the stored theme of a client",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	raw, err := clientStore(args[0]).Get(cmd.Context(), theme.PreferenceKey)
	if errors.Is(err, prefs.ErrNotFound) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", modeLabel(fallback), faint("(not stored, default)"))
		return nil
	}
	if err != nil {
		return err
	}

	mode, err := theme.ParseMode(raw)
	if err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", warn(raw), faint("(malformed, replaced on next visit)"))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), modeLabel(mode))
	return nil
}
