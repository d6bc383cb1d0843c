package cmd

import (
	"github.com/spf13/cobra"

	"github.com/growthboot/FlakeMonster/internal/domain"
	m "github.com/growthboot/FlakeMonster/internal/model"
)

var scanExcludeFlags []string

// scanCmd represents the scan command.
var scanCmd = newScanCmd()

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Preview which lines restore would delete",
		Long:  scanLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Scan(domain.ScanArgs{
				Path:    m.Path(pathArg(args)),
				Exclude: scanExcludeFlags,
			})
		},
	}

	cmd.Flags().StringArrayVarP(&scanExcludeFlags, "exclude", "x", nil, "exclude files matching regex (can be repeated)")

	return cmd
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
