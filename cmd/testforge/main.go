package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"testforge/internal/config"
	"testforge/internal/logging"
)

const version = "1.0.0"

var (
	// Global flags
	cfgPath string
	verbose bool

	// Effective configuration, loaded before every command
	cfg *config.Config

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "testforge",
	Short: "testforge - JUnit scaffold generator for Java sources",
	Long: `testforge scans Java source trees for stereotype-annotated classes
(@Service, @Controller, @Repository, @Component, @Configuration), models
their fields, methods, and injected dependencies, and writes JUnit 5
test scaffolds that mirror the package layout.

Scaffolds arrive wired: mocked dependencies, an @InjectMocks subject,
one happy-path test per public method, and one failure-path test per
declared exception, named by the configured convention.

Re-running over unchanged sources produces byte-identical files.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A local .env may carry TESTFORGE_* overrides.
		_ = godotenv.Load()

		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}

		level := cfg.Log.Level
		if verbose {
			level = "debug"
		}
		logger, err = logging.New(level, cfg.Log.Development)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// versionCmd prints the build version
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the testforge version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("testforge %s\n", version)
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", config.DefaultPath, "Path to the config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	// Add commands to root
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
