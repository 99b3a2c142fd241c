package main

import (
	"os"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/typetology/internal/config"
)

// buildEffectiveConfig builds the effective configuration with source tracking.
// Flags not defined on cmd keep the default or file value.
func buildEffectiveConfig(cmd *cobra.Command) (*config.EffectiveConfig, error) {
	cfg := config.NewEffectiveConfig()
	cfg.ConfigFilePath = loadedConfigPath

	fileCfg := loadedFileConfig
	if fileCfg == nil {
		fileCfg = &config.FileConfig{}
	}
	network := fileCfg.Network
	if network == nil {
		network = &config.NetworkConfig{}
	}

	// Global
	cfg.NoColor.Value, cfg.NoColor.Source = config.ApplyBoolConfig(cmd, "no-color",
		boolFlag(cmd, "no-color", cfg.NoColor.Value), fileCfg.NoColor)
	cfg.NoColor.Value, cfg.NoColor.Source = config.ApplyEnvBool(cmd, "no-color",
		cfg.NoColor.Value, os.Getenv(config.EnvNoColor) != "", cfg.NoColor.Source)
	cfg.Verbose.Value, cfg.Verbose.Source = config.ApplyBoolConfig(cmd, "verbose",
		boolFlag(cmd, "verbose", cfg.Verbose.Value), fileCfg.Verbose)

	// Generate
	applyString(cmd, "input", &cfg.Input, fileCfg.Input)
	applyString(cmd, "out", &cfg.Out, fileCfg.Out)
	applyString(cmd, "package", &cfg.Package, fileCfg.Package)
	cfg.Force.Value, cfg.Force.Source = config.ApplyBoolConfig(cmd, "force",
		boolFlag(cmd, "force", cfg.Force.Value), fileCfg.Force)
	cfg.Ignore.Value, cfg.Ignore.Source = config.ApplyStringSliceConfig(cmd, "ignore",
		sliceFlag(cmd, "ignore", cfg.Ignore.Value), fileCfg.Ignore)

	// Send
	applyString(cmd, "endpoint", &cfg.Endpoint, network.Endpoint)
	cfg.Endpoint.Value, cfg.Endpoint.Source = config.ApplyEnvString(cmd, "endpoint",
		cfg.Endpoint.Value, os.Getenv(config.EnvEndpoint), cfg.Endpoint.Source)
	applyString(cmd, "gas-price", &cfg.GasPrice, network.GasPrice)
	applyString(cmd, "gas-limit", &cfg.GasLimit, network.GasLimit)
	applyString(cmd, "payer", &cfg.Payer, network.Payer)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyString(cmd *cobra.Command, flagName string, target *config.StringValue, fileValue *string) {
	target.Value, target.Source = config.ApplyStringConfig(cmd, flagName,
		stringFlag(cmd, flagName, target.Value), fileValue)
}

// stringFlag returns the flag value when it was set on the command line,
// else fallback.
func stringFlag(cmd *cobra.Command, name, fallback string) string {
	if !cmd.Flags().Changed(name) {
		return fallback
	}
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return fallback
	}
	return v
}

func boolFlag(cmd *cobra.Command, name string, fallback bool) bool {
	if !cmd.Flags().Changed(name) {
		return fallback
	}
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		return fallback
	}
	return v
}

func sliceFlag(cmd *cobra.Command, name string, fallback []string) []string {
	if !cmd.Flags().Changed(name) {
		return fallback
	}
	v, err := cmd.Flags().GetStringSlice(name)
	if err != nil {
		return fallback
	}
	return v
}

// runtimeLogger returns the structured logger handed to the generator and
// the contract runtime. It is silent unless verbose output is enabled.
func runtimeLogger(cmd *cobra.Command, cfg *config.EffectiveConfig) log.Logger {
	if !cfg.Verbose.Value {
		return log.NewNopLogger()
	}
	return log.NewLogger(cmd.ErrOrStderr(), log.ColorOption(!cfg.NoColor.Value))
}
