package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ConfigWriter handles writing configuration to dir/typetology.toml.
type ConfigWriter struct {
	dir string
}

// NewConfigWriter creates a new ConfigWriter for the given directory.
func NewConfigWriter(dir string) *ConfigWriter {
	return &ConfigWriter{
		dir: dir,
	}
}

// Path returns the full path to typetology.toml in dir.
func (w *ConfigWriter) Path() string {
	return filepath.Join(w.dir, FileName)
}

// Exists returns true if typetology.toml already exists in dir.
func (w *ConfigWriter) Exists() bool {
	_, err := os.Stat(w.Path())
	return err == nil
}

// Write saves the FileConfig to dir/typetology.toml.
// Creates dir if it doesn't exist.
func (w *ConfigWriter) Write(cfg *FileConfig) error {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", w.dir, err)
	}

	content := w.generateTOMLWithComments(cfg)

	if err := os.WriteFile(w.Path(), []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// generateTOMLWithComments creates TOML content with section comments.
// Unset values are written as commented-out defaults.
func (w *ConfigWriter) generateTOMLWithComments(cfg *FileConfig) string {
	var b strings.Builder

	b.WriteString("# typetology configuration file\n")
	b.WriteString("# Priority: default < typetology.toml < environment < CLI flag\n")
	b.WriteString("#\n")
	fmt.Fprintf(&b, "# Location: %s\n", w.Path())
	b.WriteString("# Override with: --config /path/to/typetology.toml\n\n")

	section(&b, "Global Settings (apply to all commands)")
	boolLine(&b, "verbose", cfg.Verbose)
	boolLine(&b, "no_color", cfg.NoColor)
	b.WriteString("\n")

	section(&b, "Generate Settings")
	stringLine(&b, "input", cfg.Input, "abi/**/*.json")
	stringLine(&b, "out", cfg.Out, "bindings")
	stringLine(&b, "package", cfg.Package, DefaultPackage)
	boolLine(&b, "force", cfg.Force)
	if cfg.Ignore != nil {
		fmt.Fprintf(&b, "ignore = [%s]\n", quoteAll(*cfg.Ignore))
	} else {
		fmt.Fprintf(&b, "# ignore = [%q]\n", DefaultIgnore)
	}
	b.WriteString("\n")

	section(&b, "Network Settings (send command)")
	network := cfg.networkOrEmpty()
	b.WriteString("[network]\n")
	stringLine(&b, "endpoint", network.Endpoint, DefaultEndpoint)
	stringLine(&b, "gas_price", network.GasPrice, DefaultGasPrice)
	stringLine(&b, "gas_limit", network.GasLimit, DefaultGasLimit)
	stringLine(&b, "payer", network.Payer, "")

	return b.String()
}

func section(b *strings.Builder, title string) {
	rule := "# " + strings.Repeat("=", 77) + "\n"
	b.WriteString(rule)
	fmt.Fprintf(b, "# %s\n", title)
	b.WriteString(rule + "\n")
}

func stringLine(b *strings.Builder, key string, v *string, def string) {
	if v != nil {
		fmt.Fprintf(b, "%s = %q\n", key, *v)
		return
	}
	fmt.Fprintf(b, "# %s = %q\n", key, def)
}

func boolLine(b *strings.Builder, key string, v *bool) {
	if v != nil && *v {
		fmt.Fprintf(b, "%s = true\n", key)
		return
	}
	fmt.Fprintf(b, "# %s = false\n", key)
}

func quoteAll(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return strings.Join(quoted, ", ")
}
