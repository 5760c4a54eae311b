package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yeisme/tooled/pkg/configs"
	"github.com/yeisme/tooled/pkg/utils/schema"
)

var (
	configCmd = &cobra.Command{
		Use:     "config",
		Short:   "Manage tooled configuration",
		Long:    `tooled config allows you to view and manage your tooled configuration settings.`,
		Aliases: []string{"c"},
	}

	configValidateCmd = &cobra.Command{
		Use:   "validate",
		Short: "Validate tooled configuration",
		Long:  `tooled config validate checks the configuration file, environment variables and derived settings.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fileUsed := tooledCtx.Viper.ConfigFileUsed()
			if fileUsed == "" {
				fileUsed = "(none, defaults and environment only)"
			}

			cfg := tooledCtx.Config
			var errs []error
			if _, err := indicatorConfig(cfg.Indicator); err != nil {
				errs = append(errs, fmt.Errorf("indicator: %w", err))
			}
			if cfg.Indicator.Interval <= 0 {
				errs = append(errs, fmt.Errorf("indicator: interval must be positive, got %s", cfg.Indicator.Interval))
			}
			if cfg.Decon.Iterations <= 0 {
				errs = append(errs, fmt.Errorf("decon: iterations must be positive, got %d", cfg.Decon.Iterations))
			}
			if cfg.Plot.Width <= 0 || cfg.Plot.Height <= 0 {
				errs = append(errs, fmt.Errorf("plot: width and height must be positive"))
			}
			if err := errors.Join(errs...); err != nil {
				return fmt.Errorf("config %s is invalid:\n%w", fileUsed, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Config file used: %s\nConfiguration is valid.\n", fileUsed)
			return nil
		},
		Aliases: []string{"check", "verify"},
	}

	configListCmd = &cobra.Command{
		Use:   "list [section]",
		Short: "List tooled configuration",
		Long: `tooled config list displays the current configuration settings.

You can specify a section to display only that part of the configuration:
  - app: Application settings
  - log: Logging settings
  - indicator: Loading indicator defaults
  - decon: Deconvolution parameters
  - table: Track table column names
  - plot: Figure size

Examples:
  tooled config list                    # Show all configuration (viper raw data)
  tooled config list --all              # Show all configuration with defaults
  tooled config list decon              # Show only decon settings
  tooled config list --format json      # Output in JSON format
  tooled config list indicator --all --toml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			section := ""
			if len(args) > 0 {
				section = args[0]
			}

			format := configs.GetOutputFormatFromFlags(cmd.Flags())
			showAll, _ := cmd.Flags().GetBool("all")

			data, err := configs.GetConfigSection(tooledCtx.Viper, section, showAll)
			if err != nil {
				return err
			}
			return configs.OutputData(data, format, cmd.OutOrStdout())
		},
		Aliases: []string{"ls"},
	}

	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Initialize tooled configuration",
		Long: `tooled config init creates a new configuration file with default settings.

Examples:
  tooled config init                    # Create .tooled.yaml in current directory
  tooled config init --path ~/.config/tooled/tooled.yaml
  tooled config init --format toml      # Create .tooled.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("path")
			formatStr, _ := cmd.Flags().GetString("format")

			format, err := configs.ParseOutputFormat(formatStr)
			if err != nil {
				return err
			}
			if format == configs.FormatText {
				return errors.New("text format is not supported for config files")
			}

			if path == "" {
				path = ".tooled." + string(format)
			}

			if err := configs.CreateDefaultConfig(path, format); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config file created successfully: %s\n", path)
			return nil
		},
	}

	configSchemaCmd = &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return schema.GenConfigSchema(cmd.OutOrStdout())
		},
	}
)

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(
		configListCmd,
		configValidateCmd,
		configInitCmd,
		configSchemaCmd,
	)

	configListCmd.Flags().StringP("format", "f", "", fmt.Sprintf("Output format (%s)", strings.Join(configs.ValidFormats(), ", ")))
	configListCmd.Flags().Bool("yaml", false, "Output in YAML format")
	configListCmd.Flags().Bool("json", false, "Output in JSON format")
	configListCmd.Flags().Bool("toml", false, "Output in TOML format")
	configListCmd.Flags().Bool("text", false, "Output in plain text format")
	configListCmd.Flags().BoolP("all", "a", false, "Show complete configuration with defaults (processed struct)")

	configInitCmd.Flags().StringP("path", "p", "", "Path to the config file")
	configInitCmd.Flags().StringP("format", "f", "yaml", "Format of the config file (yaml, json, toml)")
}
