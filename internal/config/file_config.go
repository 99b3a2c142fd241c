package config

// FileConfig represents the raw typetology.toml file contents.
// All fields are pointers to distinguish "not set" from "set to zero/false".
type FileConfig struct {
	// Global settings
	NoColor *bool `toml:"no_color"`
	Verbose *bool `toml:"verbose"`

	// Generate settings
	Input   *string   `toml:"input"`   // Input glob, e.g. "abi/**/*.json"
	Out     *string   `toml:"out"`     // Output directory
	Package *string   `toml:"package"` // Go package name of generated files
	Force   *bool     `toml:"force"`   // Overwrite existing files without asking
	Ignore  *[]string `toml:"ignore"`  // Glob patterns excluded from input discovery

	// Send settings
	Network *NetworkConfig `toml:"network"`
}

// NetworkConfig holds the [network] table.
type NetworkConfig struct {
	Endpoint *string `toml:"endpoint"`  // Node endpoint; scheme selects the client
	GasPrice *string `toml:"gas_price"` // Default gas price
	GasLimit *string `toml:"gas_limit"` // Default gas limit
	Payer    *string `toml:"payer"`     // Default payer address (base58)
}

// IsEmpty returns true if no configuration values are set.
func (f *FileConfig) IsEmpty() bool {
	return f.NoColor == nil &&
		f.Verbose == nil &&
		f.Input == nil &&
		f.Out == nil &&
		f.Package == nil &&
		f.Force == nil &&
		f.Ignore == nil &&
		f.Network.IsEmpty()
}

// IsEmpty returns true if no network values are set.
func (n *NetworkConfig) IsEmpty() bool {
	return n == nil ||
		(n.Endpoint == nil && n.GasPrice == nil && n.GasLimit == nil && n.Payer == nil)
}

// networkOrEmpty returns f.Network, or an empty table when unset.
func (f *FileConfig) networkOrEmpty() *NetworkConfig {
	if f.Network == nil {
		return &NetworkConfig{}
	}
	return f.Network
}
