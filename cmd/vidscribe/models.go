package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vidscribe/internal/catalog"
)

var modelsAll bool

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List models available with the current credentials",
	RunE:  runModels,
}

func init() {
	modelsCmd.Flags().BoolVarP(&modelsAll, "all", "a", false, "list every known model, configured or not")
}

func runModels(cmd *cobra.Command, args []string) error {
	configured := newResolver().ConfiguredVendors()

	var models []catalog.ModelDescriptor
	if modelsAll {
		models = catalog.All()
	} else {
		models = catalog.ListAvailable(configured)
		if len(models) == 0 {
			fmt.Println("No vendors configured. Set an API key (e.g. OPENAI_API_KEY) or run with --all to see every known model.")
			return nil
		}
	}

	var vendor catalog.Vendor
	for _, m := range models {
		if m.Vendor != vendor {
			vendor = m.Vendor
			status := ""
			if modelsAll && !configured[vendor] {
				status = " (no credential)"
			}
			fmt.Printf("\n%s%s\n", vendor, status)
		}
		fmt.Printf("  %-24s %s\n", m.ID, m.DisplayName)
	}
	return nil
}
