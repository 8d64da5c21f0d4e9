package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"cleanhome/internal/address/catalog"
)

var (
	catalogPath string
	jsonOutput  bool
	areas       *catalog.Catalog
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	catalogPath, jsonOutput, areas = "", false, nil

	root := &cobra.Command{
		Use:           "cleanhome",
		Short:         "CleanHome address and payment tooling",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if catalogPath == "" {
				areas = catalog.Default()
				return nil
			}
			f, err := os.Open(catalogPath)
			if err != nil {
				return fmt.Errorf("open catalog: %w", err)
			}
			defer f.Close()
			areas, err = catalog.Load(f)
			return err
		},
	}

	root.PersistentFlags().StringVar(&catalogPath, "catalog", "", "address catalog JSON (default: embedded table)")
	root.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print JSON instead of text")

	root.AddCommand(regionsCmd(), districtsCmd(), wardsCmd(), formatCmd(), decodeCmd())
	return root
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
