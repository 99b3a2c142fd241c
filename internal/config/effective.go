package config

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// Defaults for values not set by flag, environment or file.
const (
	DefaultPackage  = "bindings"
	DefaultEndpoint = "http://localhost:20336"
	DefaultGasPrice = "500"
	DefaultGasLimit = "20000"
	DefaultIgnore   = "**/node_modules/**"
)

// Environment variables consulted by the CLI.
const (
	EnvEndpoint   = "TYPETOLOGY_ENDPOINT"
	EnvPrivateKey = "TYPETOLOGY_PRIVATE_KEY"
	EnvNoColor    = "NO_COLOR"
)

// EffectiveConfig represents the final merged configuration after applying priority chain.
type EffectiveConfig struct {
	// Global settings
	NoColor BoolValue
	Verbose BoolValue

	// Generate settings
	Input   StringValue
	Out     StringValue
	Package StringValue
	Force   BoolValue
	Ignore  StringSliceValue

	// Send settings
	Endpoint StringValue
	GasPrice StringValue
	GasLimit StringValue
	Payer    StringValue

	// Metadata
	ConfigFilePath string // Path to loaded config file (empty if none)
}

// NewEffectiveConfig creates a new EffectiveConfig with default values.
func NewEffectiveConfig() *EffectiveConfig {
	return &EffectiveConfig{
		NoColor:  NewBoolValue(false),
		Verbose:  NewBoolValue(false),
		Input:    NewStringValue(""),
		Out:      NewStringValue(""),
		Package:  NewStringValue(DefaultPackage),
		Force:    NewBoolValue(false),
		Ignore:   NewStringSliceValue(DefaultIgnore),
		Endpoint: NewStringValue(DefaultEndpoint),
		GasPrice: NewStringValue(DefaultGasPrice),
		GasLimit: NewStringValue(DefaultGasLimit),
		Payer:    NewStringValue(""),
	}
}

// ToTable writes the configuration as a formatted table.
func (c *EffectiveConfig) ToTable(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tVALUE\tSOURCE")
	fmt.Fprintf(tw, "no_color\t%t\t%s\n", c.NoColor.Value, c.NoColor.Source)
	fmt.Fprintf(tw, "verbose\t%t\t%s\n", c.Verbose.Value, c.Verbose.Source)
	fmt.Fprintf(tw, "input\t%s\t%s\n", orNotSet(c.Input.Value), c.Input.Source)
	fmt.Fprintf(tw, "out\t%s\t%s\n", orNotSet(c.Out.Value), c.Out.Source)
	fmt.Fprintf(tw, "package\t%s\t%s\n", c.Package.Value, c.Package.Source)
	fmt.Fprintf(tw, "force\t%t\t%s\n", c.Force.Value, c.Force.Source)
	fmt.Fprintf(tw, "ignore\t%s\t%s\n", orNotSet(c.Ignore.String()), c.Ignore.Source)
	fmt.Fprintf(tw, "network.endpoint\t%s\t%s\n", c.Endpoint.Value, c.Endpoint.Source)
	fmt.Fprintf(tw, "network.gas_price\t%s\t%s\n", c.GasPrice.Value, c.GasPrice.Source)
	fmt.Fprintf(tw, "network.gas_limit\t%s\t%s\n", c.GasLimit.Value, c.GasLimit.Source)
	fmt.Fprintf(tw, "network.payer\t%s\t%s\n", orNotSet(c.Payer.Value), c.Payer.Source)
	tw.Flush()
}

func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
