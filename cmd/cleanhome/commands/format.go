package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"cleanhome/internal/address/models"
	"cleanhome/internal/address/resolver"
)

var errIncomplete = errors.New("selection incomplete: city, district, ward, house number and street are required")

func formatCmd() *cobra.Command {
	var sel models.Selection

	cmd := &cobra.Command{
		Use:   "format",
		Short: "Render a selection as a canonical address line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			address := resolver.New(areas, sel, nil).FormatAddress()
			if address == "" {
				return errIncomplete
			}
			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), models.Submission{Selection: sel, Address: address})
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), address)
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&sel.RegionID, "city", "", "city ID")
	f.StringVar(&sel.SubRegionID, "district", "", "district ID")
	f.StringVar(&sel.SubSubRegionID, "ward", "", "ward ID (subsub-<index>)")
	f.StringVar(&sel.HouseNumber, "house", "", "house number")
	f.StringVar(&sel.Alley, "alley", "", "alley (ngách)")
	f.StringVar(&sel.Lane, "lane", "", "lane (ngõ)")
	f.StringVar(&sel.Street, "street", "", "street")
	f.StringVar(&sel.SpecificAddress, "specific", "", "building, floor or other detail")
	return cmd
}
