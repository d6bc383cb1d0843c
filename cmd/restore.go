package cmd

import (
	"github.com/spf13/cobra"

	"github.com/growthboot/FlakeMonster/internal/domain"
	m "github.com/growthboot/FlakeMonster/internal/model"
)

var restoreExcludeFlags []string

// restoreCmd represents the restore command.
var restoreCmd = newRestoreCmd()

func newRestoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore [path]",
		Short: "Remove injected delays and the support module",
		Long:  restoreLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Restore(domain.RestoreArgs{
				Path:    m.Path(pathArg(args)),
				Exclude: restoreExcludeFlags,
			})
		},
	}

	cmd.Flags().StringArrayVarP(&restoreExcludeFlags, "exclude", "x", nil, "exclude files matching regex during sweep recovery (can be repeated)")

	return cmd
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}
