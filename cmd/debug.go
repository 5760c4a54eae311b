package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yeisme/tooled/pkg/debug"
	"github.com/yeisme/tooled/pkg/imaging"
	"github.com/yeisme/tooled/pkg/indicator"
)

var (
	debugCmd = &cobra.Command{
		Use:   "debug",
		Short: "Debug related commands",
	}

	debugInfoCmd = &cobra.Command{
		Use:   "info [config|indicator|decon|table]",
		Short: "Print type, size and members of an internal object",
		Long: strings.TrimSpace(`
Print the value, type, shallow size and member names of one of tooled's
runtime objects, built from the current configuration.

Examples:
  tooled debug info indicator
  tooled debug info decon`),
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"config", "indicator", "decon", "table"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "config"
			if len(args) == 1 {
				target = args[0]
			}

			var obj any
			switch target {
			case "config":
				obj = *tooledCtx.Config
			case "indicator":
				cfg, err := indicatorConfig(tooledCtx.Config.Indicator)
				if err != nil {
					return err
				}
				ind, err := indicator.New(cfg, indicator.WithWriter(cmd.OutOrStdout()))
				if err != nil {
					return err
				}
				obj = ind
			case "decon":
				obj = imaging.NewDeconvolution(nil, deconOptions(tooledCtx.Config.Decon))
			case "table":
				obj = tableColumns(tooledCtx.Config.Table)
			default:
				return fmt.Errorf("unknown object %q, valid: config, indicator, decon, table", target)
			}
			debug.ObjInfo(cmd.OutOrStdout(), obj)
			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(debugCmd)
	debugCmd.AddCommand(debugInfoCmd)
}
