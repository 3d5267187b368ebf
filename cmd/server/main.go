// Package main runs the family-tree HTTP server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tendant/family-tree/pkg/familytree/config"
)

var (
	// flagConfigFile is set by the --config flag; CONFIG_FILE is used when empty.
	flagConfigFile string
	flagPort       string
	flagStorage    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "familytree",
	Short: "Family tree hypermedia API server",
	Long: `Serves people and the events that connect them as hypermedia JSON
resources. Records live in memory for the lifetime of the process.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("failed to load server configuration: %w", err)
		}
		return serve(cmd.Context(), cfg)
	},
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Describe the environment variables the server reads",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		config.WriteUsage(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config", "", "YAML, JSON, TOML or .env config file (default: $CONFIG_FILE)")
	rootCmd.Flags().StringVar(&flagPort, "port", "", "listen port, overrides PORT")
	rootCmd.Flags().StringVar(&flagStorage, "storage", "", "record store (memory or sqlite), overrides STORAGE_TYPE")

	rootCmd.AddCommand(envCmd)
}

// loadConfig layers defaults, then the config file or the environment, then
// any flags given on the command line.
func loadConfig(cmd *cobra.Command) (*config.ServerConfig, error) {
	path := flagConfigFile
	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}

	opts := []config.Option{config.WithEnv()}
	if path != "" {
		opts = []config.Option{config.WithConfigFile(path)}
	}
	if cmd.Flags().Changed("port") {
		opts = append(opts, config.WithPort(flagPort))
	}
	if cmd.Flags().Changed("storage") {
		opts = append(opts, config.WithStorageType(flagStorage))
	}
	return config.Load(opts...)
}
