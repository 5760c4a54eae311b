package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/spf13/cobra"

	"github.com/yeisme/tooled/pkg/indicator"
	"github.com/yeisme/tooled/pkg/plot"
	"github.com/yeisme/tooled/pkg/style"
	"github.com/yeisme/tooled/pkg/table"
	"github.com/yeisme/tooled/pkg/utils/hotload"
)

var (
	trackOutput    string
	trackOutDir    string
	trackColumn    string
	trackThreshold float64
	trackPosition  string
	trackWatch     bool
	trackPlot      string

	trackCmd = &cobra.Command{
		Use:     "track",
		Short:   "Work with KNIME track result tables (CSV)",
		Aliases: []string{"t"},
	}

	trackSplitCmd = &cobra.Command{
		Use:   "split <file.csv>",
		Short: "Split a table into one file per distinct column value",
		Long: strings.TrimSpace(`
Split a table by the distinct values of a column (for example condition or sample).
Each part is written to <out-dir>/<name>_<value>.csv.

Examples:
  tooled track split results.csv --column condition
  tooled track split results.csv --column sample --out-dir parts`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			df, err := openTable(args[0])
			if err != nil {
				return err
			}
			groups, err := table.SplitByColumn(df, trackColumn)
			if err != nil {
				return err
			}

			base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			rows := make([][]string, 0, len(groups))
			for _, g := range groups {
				name, err := table.Write(g.Frame, filepath.Join(trackOutDir, base+"_"+safeFileName(g.Value)))
				if err != nil {
					return err
				}
				rows = append(rows, []string{g.Value, strconv.Itoa(g.Frame.Nrow()), name})
			}
			return style.PrintTable(cmd.OutOrStdout(), []string{trackColumn, "Rows", "File"}, rows, 0)
		},
	}

	trackDeleteCmd = &cobra.Command{
		Use:   "delete <file.csv> <track>",
		Short: "Delete all rows of a track",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			df, err := openTable(args[0])
			if err != nil {
				return err
			}
			out, err := tableColumns(tooledCtx.Config.Table).DeleteTrack(df, args[1])
			if err != nil {
				return err
			}
			return writeTable(cmd, out, args[0], "trimmed")
		},
	}

	trackSumCmd = &cobra.Command{
		Use:   "sum <file.csv> <channel>",
		Short: "Sum a channel over time for every track",
		Long: strings.TrimSpace(`
Sum a channel for each track and print the result.

Examples:
  tooled track sum results.csv gfp
  tooled track sum results.csv gfp --plot sum.png
  tooled track sum results.csv gfp --watch     # re-run whenever the file changes`),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			run := func() error {
				return runTrackSum(cmd, args[0], args[1])
			}
			if err := run(); err != nil {
				return err
			}
			if !trackWatch {
				return nil
			}
			debounce := time.Duration(tooledCtx.Config.App.Hotload.Debounce) * time.Millisecond
			return hotload.WatchFile(cmd.Context(), args[0], debounce, func() {
				if err := run(); err != nil {
					log.Error().Err(err).Msg("track sum failed")
				}
			})
		},
	}

	trackFilterCmd = &cobra.Command{
		Use:   "filter <file.csv> <channel>",
		Short: "Keep whole tracks based on their summed channel value",
		Long: strings.TrimSpace(`
Filter tracks by the sum of a channel.

  --position above   keeps tracks whose sum is <= threshold
  --position below   keeps tracks whose sum is >= threshold

Examples:
  tooled track filter results.csv gfp --threshold 1000 --position above -o low.csv`),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			position, err := table.ParsePosition(trackPosition)
			if err != nil {
				return err
			}
			df, err := openTable(args[0])
			if err != nil {
				return err
			}
			out, err := tableColumns(tooledCtx.Config.Table).FilterTracks(df, args[1], trackThreshold, position)
			if err != nil {
				return err
			}
			return writeTable(cmd, out, args[0], "filtered")
		},
	}
)

func openTable(path string) (dataframe.DataFrame, error) {
	return tableColumns(tooledCtx.Config.Table).Open(path)
}

// writeTable 写到 --output，未指定时写到 <输入名>_<suffix>.csv
func writeTable(cmd *cobra.Command, df dataframe.DataFrame, input, suffix string) error {
	name := trackOutput
	if name == "" {
		name = strings.TrimSuffix(input, filepath.Ext(input)) + "_" + suffix
	}
	written, err := table.Write(df, name)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %d rows to %s\n", df.Nrow(), written)
	return nil
}

func runTrackSum(cmd *cobra.Command, path, channel string) error {
	cfg, err := indicatorConfig(tooledCtx.Config.Indicator)
	if err != nil {
		return err
	}
	cfg.StartMessage = "Summing tracks..."

	var sums []table.TrackSum
	err = indicator.Run(cfg, func() error {
		df, err := openTable(path)
		if err != nil {
			return err
		}
		sums, err = tableColumns(tooledCtx.Config.Table).SumTracks(df, channel)
		return err
	}, indicator.WithWriter(cmd.OutOrStdout()))
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(sums))
	for _, s := range sums {
		rows = append(rows, []string{s.Track, strconv.FormatFloat(s.Sum, 'g', -1, 64)})
	}
	if err := style.PrintTable(cmd.OutOrStdout(), []string{"Track", channel}, rows, 0); err != nil {
		return err
	}

	if trackPlot != "" {
		if err := plot.TrackSum(sums, channel, trackPlot, plotOptions(tooledCtx.Config)...); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Plot saved to %s\n", trackPlot)
	}
	return nil
}

// safeFileName 把列值中的路径分隔符等字符替换为下划线
func safeFileName(s string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", ":", "_", " ", "_")
	if s = r.Replace(s); s == "" {
		s = "empty"
	}
	return s
}

func init() {
	rootCmd.AddCommand(trackCmd)
	trackCmd.AddCommand(trackSplitCmd, trackDeleteCmd, trackSumCmd, trackFilterCmd)

	trackSplitCmd.Flags().StringVar(&trackColumn, "column", "condition", "column to split by")
	trackSplitCmd.Flags().StringVar(&trackOutDir, "out-dir", ".", "directory for the split files")

	for _, c := range []*cobra.Command{trackDeleteCmd, trackFilterCmd} {
		c.Flags().StringVarP(&trackOutput, "output", "o", "", "output file (.csv is appended when missing)")
	}

	trackSumCmd.Flags().BoolVarP(&trackWatch, "watch", "w", false, "re-run when the input file changes")
	trackSumCmd.Flags().StringVar(&trackPlot, "plot", "", "also save a scatter plot to this file (png, svg, pdf)")

	trackFilterCmd.Flags().Float64Var(&trackThreshold, "threshold", 0, "threshold for the summed channel value")
	trackFilterCmd.Flags().StringVar(&trackPosition, "position", string(table.Above), "above or below")
}
