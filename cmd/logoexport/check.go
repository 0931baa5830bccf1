package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/clodeb/logoexport"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "report outputs that are missing or differ from a fresh export",
	Long:  `render every output in memory and compare it with the file on disk. Exits with status 1 when any output is missing or stale.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, closeLog, err := newExporter(cmd)
		if err != nil {
			return err
		}
		defer closeLog()

		results, err := e.Check(cmd.Context())
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		outdated := 0
		for _, r := range results {
			status := color.GreenString(string(r.Status))
			detail := ""
			switch r.Status {
			case logoexport.StatusMissing:
				status = color.RedString(string(r.Status))
				outdated++
			case logoexport.StatusStale:
				status = color.YellowString(string(r.Status))
				if r.Distance >= 0 {
					detail = fmt.Sprintf("distance %d", r.Distance)
				} else {
					detail = "unreadable"
				}
				outdated++
			}
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", status, r.Spec.Path, detail)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		if outdated > 0 {
			return fmt.Errorf("%d of %d outputs are out of date", outdated, len(results))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
