package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/growthboot/FlakeMonster/internal/config"
	"github.com/growthboot/FlakeMonster/internal/domain"
	m "github.com/growthboot/FlakeMonster/internal/model"
)

var injectModeFlag string
var injectSeedFlag int32
var injectDelayMinFlag float64
var injectDelayMaxFlag float64
var injectExcludeFlags []string
var injectSkipGeneratorsFlag bool
var injectParallelFlag int

// injectCmd represents the inject command.
var injectCmd = newInjectCmd()

func newInjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inject [path]",
		Short: "Inject deterministic delays into async code",
		Long:  injectLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applyConfigDefaults(cmd, cfg)

			mode := m.Mode(injectModeFlag)
			if !mode.Valid() {
				return fmt.Errorf("unknown mode %q (want light, medium or hardcore)", injectModeFlag)
			}

			if injectDelayMinFlag < 0 || injectDelayMaxFlag < injectDelayMinFlag {
				return fmt.Errorf("invalid delay range [%v, %v]", injectDelayMinFlag, injectDelayMaxFlag)
			}

			return workflow.Inject(domain.InjectArgs{
				Path:           m.Path(pathArg(args)),
				Exclude:        injectExcludeFlags,
				Mode:           mode,
				Seed:           injectSeedFlag,
				Delay:          m.DelayRange{Min: injectDelayMinFlag, Max: injectDelayMaxFlag},
				SkipGenerators: injectSkipGeneratorsFlag,
				Threads:        injectParallelFlag,
			})
		},
	}

	registerInjectionFlags(cmd)
	cmd.Flags().IntVarP(&injectParallelFlag, "parallel", "p", config.DefaultConfig.Parallel, "number of parallel workers")

	return cmd
}

// registerInjectionFlags is shared between inject and list, which take the
// same derivation inputs.
func registerInjectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&injectModeFlag, "mode", "m", config.DefaultConfig.Mode, "injection density: light, medium or hardcore")
	cmd.Flags().Int32VarP(&injectSeedFlag, "seed", "s", config.DefaultConfig.Seed, "base seed for delay derivation")
	cmd.Flags().Float64Var(&injectDelayMinFlag, "delay-min", config.DefaultConfig.DelayMin, "minimum delay in milliseconds")
	cmd.Flags().Float64Var(&injectDelayMaxFlag, "delay-max", config.DefaultConfig.DelayMax, "maximum delay in milliseconds")
	cmd.Flags().StringArrayVarP(&injectExcludeFlags, "exclude", "x", nil, "exclude files matching regex (can be repeated)")
	cmd.Flags().BoolVar(&injectSkipGeneratorsFlag, "skip-generators", config.DefaultConfig.SkipGenerators, "leave generator function bodies untouched")
}

// applyConfigDefaults backfills flag values from the loaded configuration
// for flags the user did not set on the command line.
func applyConfigDefaults(cmd *cobra.Command, cfg *config.Config) {
	if cfg == nil {
		return
	}

	flags := cmd.Flags()

	if f := flags.Lookup("mode"); f != nil && !f.Changed {
		injectModeFlag = cfg.Mode
	}

	if f := flags.Lookup("seed"); f != nil && !f.Changed {
		injectSeedFlag = cfg.Seed
	}

	if f := flags.Lookup("delay-min"); f != nil && !f.Changed {
		injectDelayMinFlag = cfg.DelayMin
	}

	if f := flags.Lookup("delay-max"); f != nil && !f.Changed {
		injectDelayMaxFlag = cfg.DelayMax
	}

	if f := flags.Lookup("exclude"); f != nil && !f.Changed && len(cfg.Exclude) > 0 {
		injectExcludeFlags = cfg.Exclude
	}

	if f := flags.Lookup("skip-generators"); f != nil && !f.Changed {
		injectSkipGeneratorsFlag = cfg.SkipGenerators
	}

	if f := flags.Lookup("parallel"); f != nil && !f.Changed {
		injectParallelFlag = cfg.Parallel
	}
}

func init() {
	rootCmd.AddCommand(injectCmd)
}
