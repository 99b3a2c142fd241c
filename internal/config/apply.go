package config

import "github.com/spf13/cobra"

// ApplyStringConfig applies a config file string value if the flag was not explicitly set
// and the config value is present. Returns the effective value and its source.
func ApplyStringConfig(cmd *cobra.Command, flagName string, currentValue string, configValue *string) (string, ConfigSource) {
	// If flag was explicitly set on command line, use it
	if cmd.Flags().Changed(flagName) {
		return currentValue, SourceFlag
	}

	// If config file has a value, use it
	if configValue != nil {
		return *configValue, SourceConfigFile
	}

	// Otherwise, keep current value (which is the default)
	return currentValue, SourceDefault
}

// ApplyBoolConfig applies a config file bool value if the flag was not explicitly set
// and the config value is present. Returns the effective value and its source.
// A default false flag must not override a true value from the file.
func ApplyBoolConfig(cmd *cobra.Command, flagName string, currentValue bool, configValue *bool) (bool, ConfigSource) {
	if cmd.Flags().Changed(flagName) {
		return currentValue, SourceFlag
	}
	if configValue != nil {
		return *configValue, SourceConfigFile
	}
	return currentValue, SourceDefault
}

// ApplyStringSliceConfig applies a config file list if the flag was not explicitly set.
// A flag value replaces the file list rather than extending it.
func ApplyStringSliceConfig(cmd *cobra.Command, flagName string, currentValue []string, configValue *[]string) ([]string, ConfigSource) {
	if cmd.Flags().Changed(flagName) {
		return currentValue, SourceFlag
	}
	if configValue != nil {
		return *configValue, SourceConfigFile
	}
	return currentValue, SourceDefault
}

// ApplyEnvString applies an environment variable string value if set and flag was not changed.
// This handles the priority: typetology.toml < env < flag
func ApplyEnvString(cmd *cobra.Command, flagName string, currentValue string, envValue string, currentSource ConfigSource) (string, ConfigSource) {
	// If flag was explicitly set on command line, keep it
	if cmd.Flags().Changed(flagName) {
		return currentValue, SourceFlag
	}

	// If env variable is set, use it (overrides typetology.toml)
	if envValue != "" {
		return envValue, SourceEnvironment
	}

	// Otherwise, keep current value and source
	return currentValue, currentSource
}

// ApplyEnvBool applies an environment variable bool value if set and flag was not changed.
func ApplyEnvBool(cmd *cobra.Command, flagName string, currentValue bool, envSet bool, currentSource ConfigSource) (bool, ConfigSource) {
	if cmd.Flags().Changed(flagName) {
		return currentValue, SourceFlag
	}

	// A set env variable means "enable"
	if envSet {
		return true, SourceEnvironment
	}

	return currentValue, currentSource
}
