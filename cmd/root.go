// Package cmd provides the root command and CLI setup for flakemonster.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/growthboot/FlakeMonster/internal/adapter"
	"github.com/growthboot/FlakeMonster/internal/config"
	"github.com/growthboot/FlakeMonster/internal/controller"
	"github.com/growthboot/FlakeMonster/internal/domain"
)

var fsAdapter adapter.SourceFSAdapter
var manifestStore adapter.ManifestStore
var registry *domain.AdapterRegistry
var ui controller.UI
var workflow domain.Workflow
var logger *zap.Logger
var cfg *config.Config

var verboseFlag bool
var noTTYFlag bool

func init() {
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	manifestStore = adapter.NewManifestStore(fsAdapter)
	registry = domain.DefaultAdapterRegistry()
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "flakemonster",
		Short:         "Deterministic async delay injection for JavaScript and TypeScript",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			zapConfig := zap.NewProductionConfig()
			zapConfig.Encoding = "console"
			zapConfig.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)

			if verboseFlag {
				zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}

			var err error

			logger, err = zapConfig.Build()
			if err != nil {
				return err
			}

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}

			cfg, err = config.Load(cwd)
			if err != nil {
				return err
			}

			useTTY := controller.IsTTY(cmd.OutOrStdout()) && !noTTYFlag
			ui = controller.NewUI(cmd, useTTY)
			workflow = domain.NewWorkflow(fsAdapter, manifestStore, registry, ui, logger)

			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&noTTYFlag, "no-tty", false, "force plain text output")

	return cmd
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// pathArg returns the single optional path argument, defaulting to the
// current directory.
func pathArg(args []string) string {
	if len(args) == 0 {
		return "."
	}

	return args[0]
}
