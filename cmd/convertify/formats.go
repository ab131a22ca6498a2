package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"convertify/internal/catalog"
	"convertify/internal/service/converter"

	"github.com/spf13/cobra"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported formats and their conversion targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := catalog.NewRegistry()
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "FORMAT\tNAME\tFAMILY\tTARGETS")
		for _, f := range registry.List() {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
				f.Token, f.DisplayName, f.Family,
				strings.Join(converter.SupportedTargets(f.Token), " "))
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
