package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yeisme/tooled/pkg/debug"
	"github.com/yeisme/tooled/pkg/indicator"
	"github.com/yeisme/tooled/pkg/style"
	"github.com/yeisme/tooled/pkg/utils/executor"
)

var (
	waitStyle   string
	waitMessage string
	waitEnd     string
	waitTimed   bool
	waitList    bool
	waitDir     string
	waitEnv     []string

	waitCmd = &cobra.Command{
		Use:   "wait [flags] -- <command> [args...]",
		Short: "Run a command behind a loading indicator",
		Long: strings.TrimSpace(`
Run an external command while a loading indicator animates on the current line.
The command's output is printed after it finishes; a failing command's exit
error is reported unchanged.

Examples:
  tooled wait -- sleep 3
  tooled wait --style build --message "Fetching data..." -- curl -sO https://example.com/data.csv
  tooled wait --timed -- make`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if waitList {
				return printStyles(cmd)
			}
			if len(args) == 0 {
				return errors.New("no command given, usage: tooled wait [flags] -- <command> [args...]")
			}
			cfg, err := indicatorConfig(tooledCtx.Config.Indicator)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("style") {
				if cfg.Style, err = indicator.ParseStyle(waitStyle); err != nil {
					return err
				}
			}
			if waitMessage != "" {
				cfg.StartMessage = waitMessage
			}
			if waitEnd != "" {
				cfg.EndMessage = waitEnd
			}

			exe := executor.NewExecutorContext(cmd.Context(), args[0], args[1:]...).
				WithDir(waitDir).
				WithEnv(waitEnv...)
			var stdout, stderr string
			body := func() error {
				var runErr error
				stdout, stderr, runErr = exe.Run()
				return runErr
			}
			if waitTimed {
				body = debug.TimedErr(cmd.ErrOrStderr(), exe.String(), body)
			}

			runErr := indicator.Run(cfg, body, indicator.WithWriter(cmd.OutOrStdout()))
			_, _ = io.WriteString(cmd.OutOrStdout(), stdout)

			var execErr *executor.ExecError
			if errors.As(runErr, &execErr) {
				// stderr 已包含在错误信息中
				return runErr
			}
			_, _ = io.WriteString(cmd.ErrOrStderr(), stderr)
			if runErr != nil {
				return fmt.Errorf("wait: %w", runErr)
			}
			return nil
		},
	}
)

func printStyles(cmd *cobra.Command) error {
	pairs := make([][2]string, 0, len(indicator.Styles()))
	for _, name := range indicator.Styles() {
		st, err := indicator.ParseStyle(name)
		if err != nil {
			return err
		}
		pairs = append(pairs, [2]string{name, strings.Join(st.Glyphs(), " ")})
	}
	return style.PrintKeyValues(cmd.OutOrStdout(), pairs)
}

func init() {
	rootCmd.AddCommand(waitCmd)

	waitCmd.Flags().StringVarP(&waitStyle, "style", "s", string(indicator.StyleRotate), fmt.Sprintf("animation style (%s)", strings.Join(indicator.Styles(), ", ")))
	waitCmd.Flags().StringVarP(&waitMessage, "message", "m", "", "message shown beside the animation")
	waitCmd.Flags().StringVar(&waitEnd, "end", "", "message printed when the command finishes")
	waitCmd.Flags().BoolVar(&waitTimed, "timed", false, "print how long the command took")
	waitCmd.Flags().BoolVar(&waitList, "list-styles", false, "list animation styles and their glyphs")
	waitCmd.Flags().StringVarP(&waitDir, "dir", "C", "", "working directory of the command")
	waitCmd.Flags().StringArrayVarP(&waitEnv, "env", "e", nil, "extra KEY=VALUE environment for the command")
	waitCmd.Flags().SetInterspersed(false)
}
