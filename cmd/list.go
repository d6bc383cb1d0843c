package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/growthboot/FlakeMonster/internal/domain"
	m "github.com/growthboot/FlakeMonster/internal/model"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [path]",
		Short: "List source files and injection point counts",
		Long:  listLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applyConfigDefaults(cmd, cfg)

			mode := m.Mode(injectModeFlag)
			if !mode.Valid() {
				return fmt.Errorf("unknown mode %q (want light, medium or hardcore)", injectModeFlag)
			}

			return workflow.Estimate(domain.EstimateArgs{
				Path:           m.Path(pathArg(args)),
				Exclude:        injectExcludeFlags,
				Mode:           mode,
				Seed:           injectSeedFlag,
				Delay:          m.DelayRange{Min: injectDelayMinFlag, Max: injectDelayMaxFlag},
				SkipGenerators: injectSkipGeneratorsFlag,
			})
		},
	}

	registerInjectionFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
