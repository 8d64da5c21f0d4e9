package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"cleanhome/internal/address/models"
)

func regionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regions",
		Short: "List cities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printOptions(cmd.OutOrStdout(), areas.ListRegions())
		},
	}
}

func districtsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "districts <city-id>",
		Short: "List the districts of a city",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printOptions(cmd.OutOrStdout(), areas.ListSubRegions(args[0]))
		},
	}
}

func wardsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wards <city-id> <district-id>",
		Short: "List the wards of a district",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printOptions(cmd.OutOrStdout(), areas.ListSubSubRegions(args[0], args[1]))
		},
	}
}

func printOptions(w io.Writer, opts []models.Option) error {
	if jsonOutput {
		return writeJSON(w, opts)
	}
	for _, o := range opts {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", o.ID, o.Name); err != nil {
			return err
		}
	}
	return nil
}
