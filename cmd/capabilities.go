package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	lakeversion "evalgo.org/lakeservice/internal/version"
)

var capabilitiesJSON bool

// capabilitiesCmd prints the supported LakeXpress capability catalog.
var capabilitiesCmd = &cobra.Command{
	Use:   "capabilities",
	Short: "Display the supported LakeXpress capability catalog",
	Long: `Display the source databases, log databases, storage backends,
publish targets, compression types and commands supported by LakeXpress.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog := lakeversion.SupportedCatalog()

		if capabilitiesJSON {
			data, err := json.MarshalIndent(catalog, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		printSection := func(title string, values []string) {
			fmt.Println(title + ":")
			for _, v := range values {
				fmt.Println("  - " + v)
			}
			fmt.Println()
		}

		printSection("Source databases", catalog.SourceDatabases)
		printSection("Log databases", catalog.LogDatabases)
		printSection("Storage backends", catalog.StorageBackends)
		printSection("Publish targets", catalog.PublishTargets)
		printSection("Compression types", catalog.CompressionTypes)

		fmt.Println("Commands:")
		for _, c := range catalog.Commands {
			fmt.Printf("  %-20s %s\n", c.Command, c.Description)
		}
		return nil
	},
}

func init() {
	capabilitiesCmd.Flags().BoolVar(&capabilitiesJSON, "json", false, "print the catalog as JSON")
	rootCmd.AddCommand(capabilitiesCmd)
}
