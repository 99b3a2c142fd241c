package generator

import "github.com/altuslabsxyz/typetology/pkg/binding"

// DefaultIgnore is the ignore pattern applied when none is configured.
const DefaultIgnore = "**/node_modules/**"

// Config holds the configuration for a generation run
type Config struct {
	// Globs selecting ABI files, "**" matches across directories
	Patterns []string

	// Glob patterns excluded from the matches
	Ignore []string

	// Output directory for generated files
	OutputDir string

	// Go package name of generated files
	Package string

	// Overwrite existing files without asking
	Force bool
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Ignore:  []string{DefaultIgnore},
		Package: binding.DefaultPackage,
	}
}
