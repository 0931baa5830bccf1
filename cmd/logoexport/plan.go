package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "list the outputs without writing anything",
	Long:  `list the outputs of the selected table with their source and size, without reading or writing any image.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, closeLog, err := newExporter(cmd)
		if err != nil {
			return err
		}
		defer closeLog()

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		_, _ = fmt.Fprintf(tw, "PATH\tSOURCE\tSIZE\n")
		for _, p := range e.Plan() {
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%dx%d\n", p.Spec.Path, p.Role, p.Written.X, p.Written.Y)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
}
