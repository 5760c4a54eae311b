package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/yeisme/tooled/pkg/configs"
	"github.com/yeisme/tooled/pkg/kernel"
	"github.com/yeisme/tooled/pkg/style"
)

var (
	kernelInteractive bool
	kernelFormat      string
	kernelNamesOnly   bool

	kernelCmd = &cobra.Command{
		Use:     "kernel",
		Short:   "Look up convolution kernels",
		Aliases: []string{"k"},
	}

	kernelListCmd = &cobra.Command{
		Use:     "list",
		Short:   "List available kernels",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if kernelNamesOnly {
				return style.PrintList(cmd.OutOrStdout(), kernel.Names()...)
			}
			rows := make([][]string, 0)
			for _, name := range kernel.Names() {
				k, err := kernel.Get(name)
				if err != nil {
					return err
				}
				rows = append(rows, []string{name, fmt.Sprintf("%dx%d", k.Size(), k.Size()), strconv.Itoa(k.Sum())})
			}
			return style.PrintTable(cmd.OutOrStdout(), []string{"Name", "Size", "Sum"}, rows, 0)
		},
	}

	kernelShowCmd = &cobra.Command{
		Use:   "show [name]",
		Short: "Show a kernel matrix",
		Long: strings.TrimSpace(`
Show the weights of a named kernel.

Examples:
  tooled kernel show sharp
  tooled kernel show imagej --format json
  tooled kernel show -i            # pick interactively`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			switch {
			case len(args) == 1:
				name = args[0]
			case kernelInteractive:
				selected, err := kernel.Select()
				if errors.Is(err, fuzzyfinder.ErrAbort) {
					return nil
				}
				if err != nil {
					return err
				}
				name = selected
			default:
				return errors.New("kernel name required (or use --interactive)")
			}

			k, err := kernel.Get(name)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if kernelFormat != "" {
				format, err := configs.ParseOutputFormat(kernelFormat)
				if err != nil {
					return err
				}
				if format == configs.FormatText {
					_, err = fmt.Fprint(out, k.String())
					return err
				}
				return configs.OutputData(map[string]any{name: k}, format, out)
			}

			if err := style.PrintHeading(out, name); err != nil {
				return err
			}
			headers := make([]string, k.Size())
			for i := range headers {
				headers[i] = strconv.Itoa(i)
			}
			return style.PrintTable(out, headers, k.Rows(), 8*k.Size())
		},
	}
)

func init() {
	rootCmd.AddCommand(kernelCmd)
	kernelCmd.AddCommand(kernelListCmd, kernelShowCmd)

	kernelListCmd.Flags().BoolVar(&kernelNamesOnly, "names", false, "only print kernel names")
	kernelShowCmd.Flags().BoolVarP(&kernelInteractive, "interactive", "i", false, "pick the kernel with a fuzzy finder")
	kernelShowCmd.Flags().StringVarP(&kernelFormat, "format", "f", "", fmt.Sprintf("Output format (%s)", strings.Join(configs.ValidFormats(), ", ")))
}
