// Package cmd provides the command-line interface for the LakeXpress service.
//
// This package implements a cobra-based CLI with commands for:
//   - serve: Start the LakeXpress service API server
//   - capabilities: Display the supported LakeXpress capability catalog
//   - version: Display version and build information
//
// The CLI supports configuration via:
//   - Command-line flags
//   - Configuration files (YAML format)
//   - Environment variables
//
// Configuration File Locations:
//   - Specified via --config flag
//   - $HOME/.lakeservice.yaml (default)
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	eve "eve.evalgo.org/common"
)

var (
	// cfgFile holds the path to the configuration file
	cfgFile string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "lakeservice",
		Short: "LakeXpress Service - API for database-to-lakehouse export management",
		Long: `LakeXpress Service provides a RESTful API for driving the LakeXpress
data-export CLI: validating requests, previewing the exact command line that
will run, and executing it under an explicit two-step confirmation flow.

The service enables:
  - Log database management (init, drop, truncate, lock inspection)
  - Sync configuration management (create, delete, list)
  - Export and publish runs (full sync, export-only, publish-only)
  - Run status queries and orphaned-run cleanup
  - Credential file validation and workflow recommendations

Use "lakeservice serve" to start the API server.`,
	}
)

// Execute executes the root command and returns any error that occurs.
// This is the main entry point for the CLI application.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Configure eve logger to split output to multiple destinations
	eve.Logger.SetOutput(&eve.OutputSplitter{})
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.lakeservice.yaml)")
}

// initConfig reads in config file and environment variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".lakeservice")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
