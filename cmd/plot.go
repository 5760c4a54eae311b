package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yeisme/tooled/pkg/indicator"
	"github.com/yeisme/tooled/pkg/plot"
)

var (
	plotOutput string
	plotAxes   []string

	plotCmd = &cobra.Command{
		Use:   "plot",
		Short: "Plot track tables to image files",
		Long: strings.TrimSpace(`
Render figures from KNIME track tables. The image format follows the output
extension (png, svg, pdf, jpg). Figure size comes from the plot section of the config.`),
	}

	plotTrackSumCmd = &cobra.Command{
		Use:   "track-sum <file.csv> <channel>",
		Short: "Scatter of the summed channel value per track",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			df, err := openTable(args[0])
			if err != nil {
				return err
			}
			sums, err := tableColumns(tooledCtx.Config.Table).SumTracks(df, args[1])
			if err != nil {
				return err
			}
			return renderPlot(cmd, "Plotting track sums...", func() error {
				return plot.TrackSum(sums, args[1], plotOutput, plotOptions(tooledCtx.Config)...)
			})
		},
	}

	plotLineCmd = &cobra.Command{
		Use:   "line <file.csv> <channel>",
		Short: "Channel over time, one shaded line per loc",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			df, err := openTable(args[0])
			if err != nil {
				return err
			}
			return renderPlot(cmd, "Plotting lines...", func() error {
				return plot.ShadeLine(df, args[1], plotOutput, plotOptions(tooledCtx.Config)...)
			})
		},
	}

	plotScatter3DCmd = &cobra.Command{
		Use:   "scatter3d <file.csv>",
		Short: "x/y scatter with the third axis as colour",
		Long: strings.TrimSpace(`
Plot three columns: the first two as x and y, the third as colour.
Without --axes the first three columns of the table are used.

Examples:
  tooled plot scatter3d points.csv -o points.png
  tooled plot scatter3d points.csv --axes x,y,intensity -o points.svg`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			df, err := openTable(args[0])
			if err != nil {
				return err
			}
			return renderPlot(cmd, "Plotting points...", func() error {
				return plot.Scatter3D(df, plotAxes, plotOutput, plotOptions(tooledCtx.Config)...)
			})
		},
	}
)

func renderPlot(cmd *cobra.Command, message string, draw func() error) error {
	cfg, err := indicatorConfig(tooledCtx.Config.Indicator)
	if err != nil {
		return err
	}
	cfg.StartMessage = message
	if err := indicator.Run(cfg, draw, indicator.WithWriter(cmd.OutOrStdout())); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Plot saved to %s\n", plotOutput)
	return nil
}

func init() {
	rootCmd.AddCommand(plotCmd)
	plotCmd.AddCommand(plotTrackSumCmd, plotLineCmd, plotScatter3DCmd)

	plotCmd.PersistentFlags().StringVarP(&plotOutput, "output", "o", "plot.png", "output image file")
	plotScatter3DCmd.Flags().StringSliceVar(&plotAxes, "axes", nil, "x,y,z column names")
}
