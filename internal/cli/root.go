package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/auricchain/auricd/internal/config"
)

var (
	// Global flags
	configFile string
	debug      bool
	verbose    bool

	loadedConfig *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "auricd",
	Short: "auricd - account-based chain-state validation engine",
	Long: `auricd applies and filters blocks of signed transactions against
an account-based chain-state snapshot: spends, coinbase issuance, oracle
registration and query/response, and name claiming. It is a standalone
validator, not a peer-to-peer node.`,
	Version: "0.1.0-dev",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "conf", "", "configuration file path")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug logging (parsed; no command reads it)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging (parsed; no command reads it)")
}

// initConfig loads configuration from --conf (or the default search path
// when unset) through the same layered defaults/file/env resolution every
// subcommand relies on.
func initConfig() {
	paths := config.DefaultConfigPaths()
	if configFile != "" {
		paths.Main = configFile
	}

	cfg, err := config.LoadConfig(paths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	loadedConfig = cfg
}
