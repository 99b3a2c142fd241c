package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/altuslabsxyz/typetology/internal/output"
)

// FileName is the name of the configuration file.
const FileName = "typetology.toml"

// ConfigLoader is responsible for loading and merging configuration.
type ConfigLoader struct {
	homeDir    string
	workDir    string
	configPath string // Explicit --config path
	logger     output.LoggerInterface
}

// NewConfigLoader creates a new ConfigLoader.
// homeDir is the user configuration directory (~/.typetology).
func NewConfigLoader(homeDir, configPath string, logger output.LoggerInterface) *ConfigLoader {
	return &ConfigLoader{
		homeDir:    homeDir,
		workDir:    ".",
		configPath: configPath,
		logger:     logger,
	}
}

// SetWorkDir sets the directory searched for a project config file.
func (l *ConfigLoader) SetWorkDir(dir string) {
	l.workDir = dir
}

// DefaultHomeDir returns ~/.typetology, or .typetology if the user home
// directory cannot be determined.
func DefaultHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".typetology"
	}
	return filepath.Join(home, ".typetology")
}

// configFiles lists existing config files in order of increasing priority:
// ~/.typetology/typetology.toml, ./typetology.toml, --config.
func (l *ConfigLoader) configFiles() ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	add := func(path string) {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if seen[abs] {
			return
		}
		seen[abs] = true
		files = append(files, path)
	}

	// 3. Home directory (lowest priority)
	if l.homeDir != "" {
		homePath := filepath.Join(l.homeDir, FileName)
		if _, err := os.Stat(homePath); err == nil {
			add(homePath)
		}
	}

	// 2. Working directory
	workPath := filepath.Join(l.workDir, FileName)
	if _, err := os.Stat(workPath); err == nil {
		add(workPath)
	}

	// 1. Explicit path (highest priority)
	if l.configPath != "" {
		if _, err := os.Stat(l.configPath); err != nil {
			return nil, fmt.Errorf("config file not found: %s", l.configPath)
		}
		add(l.configPath)
	}

	return files, nil
}

// LoadFileConfig loads and parses config files, merging them in priority order.
// Priority: explicit path > ./typetology.toml > ~/.typetology/typetology.toml
// All config files are merged, with higher priority values overwriting lower ones.
// Returns the merged FileConfig and the primary (highest priority) config file path.
func (l *ConfigLoader) LoadFileConfig() (*FileConfig, string, error) {
	files, err := l.configFiles()
	if err != nil {
		return nil, "", err
	}
	if len(files) == 0 {
		// No config file found - return empty config
		return &FileConfig{}, "", nil
	}

	// Load and merge all configs (later files override earlier ones)
	var merged FileConfig
	var primaryFile string
	for _, configFile := range files {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}

		var cfg FileConfig
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, "", fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}

		mergeFileConfig(&merged, &cfg)
		primaryFile = configFile

		l.warnUnknownKeys(configFile, data)

		if l.logger != nil {
			l.logger.Debug("Loaded config file: %s", configFile)
		}
	}

	if err := ValidateFileConfig(&merged); err != nil {
		return nil, "", fmt.Errorf("config validation failed: %w", err)
	}

	return &merged, primaryFile, nil
}

// mergeFileConfig merges src into dst. Non-nil values in src overwrite dst.
func mergeFileConfig(dst, src *FileConfig) {
	if src.NoColor != nil {
		dst.NoColor = src.NoColor
	}
	if src.Verbose != nil {
		dst.Verbose = src.Verbose
	}
	if src.Input != nil {
		dst.Input = src.Input
	}
	if src.Out != nil {
		dst.Out = src.Out
	}
	if src.Package != nil {
		dst.Package = src.Package
	}
	if src.Force != nil {
		dst.Force = src.Force
	}
	if src.Ignore != nil {
		dst.Ignore = src.Ignore
	}
	if src.Network != nil {
		if dst.Network == nil {
			dst.Network = &NetworkConfig{}
		}
		mergeNetworkConfig(dst.Network, src.Network)
	}
}

func mergeNetworkConfig(dst, src *NetworkConfig) {
	if src.Endpoint != nil {
		dst.Endpoint = src.Endpoint
	}
	if src.GasPrice != nil {
		dst.GasPrice = src.GasPrice
	}
	if src.GasLimit != nil {
		dst.GasLimit = src.GasLimit
	}
	if src.Payer != nil {
		dst.Payer = src.Payer
	}
}

var (
	knownKeys = map[string]bool{
		"no_color": true,
		"verbose":  true,
		"input":    true,
		"out":      true,
		"package":  true,
		"force":    true,
		"ignore":   true,
		"network":  true,
	}
	knownNetworkKeys = map[string]bool{
		"endpoint":  true,
		"gas_price": true,
		"gas_limit": true,
		"payer":     true,
	}
)

// warnUnknownKeys checks for unknown keys in the config file and logs warnings.
func (l *ConfigLoader) warnUnknownKeys(file string, data []byte) {
	if l.logger == nil {
		return
	}

	var raw map[string]interface{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return // Ignore errors here - main parsing will catch them
	}

	for key, value := range raw {
		if !knownKeys[key] {
			l.logger.Warn("Unknown config key in %s: %s", file, key)
			continue
		}
		if key != "network" {
			continue
		}
		table, ok := value.(map[string]interface{})
		if !ok {
			continue
		}
		for sub := range table {
			if !knownNetworkKeys[sub] {
				l.logger.Warn("Unknown config key in %s: network.%s", file, sub)
			}
		}
	}
}
