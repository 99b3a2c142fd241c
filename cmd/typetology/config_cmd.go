package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/typetology/internal/config"
)

// NewConfigCmd creates the config parent command.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `Manage typetology configuration.

Subcommands:
  init    Generate a typetology.toml file
  show    Display current effective configuration with sources

Examples:
  # Generate a project config file
  typetology config init

  # Show current configuration
  typetology config show`,
	}

	cmd.AddCommand(
		NewConfigInitCmd(),
		NewConfigShowCmd(),
	)

	return cmd
}

var (
	configInitDir       string
	configInitOverwrite bool
)

// NewConfigInitCmd creates the config init subcommand.
func NewConfigInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a typetology.toml file",
		Long: `Generate a typetology.toml file with all available options.

Values already set by an existing config file, environment variable or flag
are written out; everything else is left as a commented default.

Examples:
  # Write ./typetology.toml
  typetology config init

  # Write the user config file
  typetology config init --dir ~/.typetology`,
		Args: cobra.NoArgs,
		RunE: runConfigInit,
	}

	cmd.Flags().StringVar(&configInitDir, "dir", ".", "Directory to write typetology.toml to")
	cmd.Flags().BoolVar(&configInitOverwrite, "overwrite", false, "Overwrite an existing typetology.toml")

	return cmd
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	w := config.NewConfigWriter(configInitDir)
	if w.Exists() && !configInitOverwrite {
		return fmt.Errorf("%s already exists (use --overwrite to replace it)", w.Path())
	}

	if err := w.Write(fileConfigFromEffective(effective)); err != nil {
		return err
	}
	logger.Success("Wrote %s", w.Path())
	return nil
}

// fileConfigFromEffective keeps only values that did not come from defaults.
func fileConfigFromEffective(cfg *config.EffectiveConfig) *config.FileConfig {
	fc := &config.FileConfig{Network: &config.NetworkConfig{}}

	str := func(v config.StringValue) *string {
		if v.Source == config.SourceDefault {
			return nil
		}
		s := v.Value
		return &s
	}
	boolean := func(v config.BoolValue) *bool {
		if v.Source == config.SourceDefault {
			return nil
		}
		b := v.Value
		return &b
	}

	fc.NoColor = boolean(cfg.NoColor)
	fc.Verbose = boolean(cfg.Verbose)
	fc.Input = str(cfg.Input)
	fc.Out = str(cfg.Out)
	fc.Package = str(cfg.Package)
	fc.Force = boolean(cfg.Force)
	if cfg.Ignore.Source != config.SourceDefault {
		ignore := append([]string(nil), cfg.Ignore.Value...)
		fc.Ignore = &ignore
	}
	fc.Network.Endpoint = str(cfg.Endpoint)
	fc.Network.GasPrice = str(cfg.GasPrice)
	fc.Network.GasLimit = str(cfg.GasLimit)
	fc.Network.Payer = str(cfg.Payer)

	return fc
}

// NewConfigShowCmd creates the config show subcommand.
func NewConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display current effective configuration",
		Long: `Display the current effective configuration with sources.

Shows all configuration values and where they came from:
  - default: Built-in default value
  - typetology.toml: Value from config file
  - environment: Value from environment variable
  - flag: Value from command-line flag`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			effective.ToTable(out)

			if effective.ConfigFilePath != "" {
				fmt.Fprintf(out, "\nConfig file: %s\n", effective.ConfigFilePath)
			} else {
				fmt.Fprintln(out, "\nNo config file loaded")
			}
			return nil
		},
	}
}
