package main

import (
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "export, then export again whenever a source logo changes",
	Long:  `export once, then watch both source logos and export again whenever one of them changes. Stop with Ctrl-C.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, closeLog, err := newExporter(cmd)
		if err != nil {
			return err
		}
		defer closeLog()
		return e.Watch(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
