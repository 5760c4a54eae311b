// Package cmd provides command-line interface commands for tooled
package cmd

import (
	stdctx "context"
	"fmt"
	"os"
	"runtime/pprof"
	"runtime/trace"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yeisme/tooled/pkg/context"
	log2 "github.com/yeisme/tooled/pkg/utils/log"
	"github.com/yeisme/tooled/pkg/utils/version"
)

var (
	tooledCtx *context.TooledContext
	log       log2.Logger

	// Global flags
	globalFlags = context.GlobalFlags{}
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tooled",
	Short: "tooled is a toolbox for microscopy image and track data",
	Long: `tooled bundles the small helpers used around microscopy experiments:
convolution kernels, deconvolution and image operations, KNIME track tables,
plots, and a terminal loading indicator for long running work.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		if globalFlags.VersionEnable {
			fmt.Fprintln(cmd.OutOrStdout(), version.GetShortVersionString())
			return
		}
		if len(args) == 0 {
			_ = cmd.Help()
		}
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if globalFlags.CPUProfile != "" {
			f, err := os.Create(globalFlags.CPUProfile)
			if err != nil {
				return fmt.Errorf("could not create CPU profile: %w", err)
			}
			if err := pprof.StartCPUProfile(f); err != nil {
				return fmt.Errorf("could not start CPU profile: %w", err)
			}
		}
		if globalFlags.Trace != "" {
			f, err := os.Create(globalFlags.Trace)
			if err != nil {
				return fmt.Errorf("could not create trace file: %w", err)
			}
			if err := trace.Start(f); err != nil {
				return fmt.Errorf("could not start trace: %w", err)
			}
		}

		ctx, err := context.InitTooledContext(cmd.Context(), globalFlags)
		if err != nil {
			return err
		}
		tooledCtx = ctx
		log = ctx.Logger

		log.Debug().Msgf("Execute Command: %s %s", "tooled", strings.Join(os.Args[1:], " "))
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if globalFlags.CPUProfile != "" {
			pprof.StopCPUProfile()
		}
		if globalFlags.Trace != "" {
			trace.Stop()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(ctx stdctx.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if log != nil && !tooledCtx.Config.App.Quiet {
			log.Error().Msg(err.Error())
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&globalFlags.ConfigPath, "config", "c", "", "config file")
	rootCmd.PersistentFlags().StringVar(&globalFlags.CPUProfile, "cpu-profile", "", "write cpu profile to `file`")
	rootCmd.PersistentFlags().StringVar(&globalFlags.Trace, "trace", "", "write execution trace to `file`")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.Debug, "debug", false, "enable debug mode (prints additional information)")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.Verbose, "verbose", "V", false, "enable verbose output (prints more detailed information)")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.Quiet, "quiet", false, "suppress all output except errors")
	rootCmd.Flags().BoolVarP(&globalFlags.VersionEnable, "version", "v", false, "show version information")
}
