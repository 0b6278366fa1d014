package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"portfolio-terminal/internal/prefs"
	"portfolio-terminal/internal/theme"
)

var listOpts struct {
	prefix string
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored client themes",
	Long: `List stored client themes with the time they last changed.

Examples:
  themectl list
  themectl list --prefix ssh:`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listOpts.prefix, "prefix", "", "Only list clients whose id starts with prefix")
}

func runList(cmd *cobra.Command, args []string) error {
	lister, ok := store.(prefs.Lister)
	if !ok {
		return fmt.Errorf("preference store does not support listing")
	}
	entries, err := lister.List(cmd.Context(), listOpts.prefix)
	if err != nil {
		return err
	}

	suffix := "/" + theme.PreferenceKey
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CLIENT\tTHEME\tCHANGED")
	count := 0
	for _, e := range entries {
		client, found := strings.CutSuffix(e.Key, suffix)
		if !found {
			continue
		}
		value := e.Value
		if mode, err := theme.ParseMode(e.Value); err == nil {
			value = modeLabel(mode)
		} else {
			value = warn(e.Value)
		}
		changed := "-"
		if !e.UpdatedAt.IsZero() {
			changed = humanize.Time(e.UpdatedAt)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", client, value, changed)
		count++
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), faint(fmt.Sprintf("%s stored", humanize.Comma(int64(count))+pluralize(count, " client", " clients"))))
	return nil
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
