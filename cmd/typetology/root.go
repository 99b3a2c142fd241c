package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/typetology/internal/config"
	"github.com/altuslabsxyz/typetology/internal/generator"
	"github.com/altuslabsxyz/typetology/internal/output"
	"github.com/altuslabsxyz/typetology/internal/version"
)

// Global configuration variables
var (
	noColor    bool
	verbose    bool
	configPath string // Path to typetology.toml file (--config flag)

	// loadedFileConfig holds the parsed typetology.toml values (empty if no config file)
	loadedFileConfig *config.FileConfig
	loadedConfigPath string

	// effective is the merged configuration of the running command
	effective *config.EffectiveConfig

	logger = output.DefaultLogger
)

// Generate flags
var (
	inputFlag   string
	outFlag     string
	packageFlag string
	forceFlag   bool
	ignoreFlag  []string
)

// Command group IDs for organized help output.
const (
	GroupMain = "main"
	GroupTool = "tool"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "typetology [flags] <abi-glob>...",
		Short: "Generate typed Go bindings from smart contract ABI files",
		Long: `typetology generates typed Go bindings from Ontology-style smart contract
ABI files. Each ABI becomes a Go file exposing one method per contract
function; calling a method returns a deferred transaction that is built,
signed and submitted by Send.

Examples:
  # Generate bindings for every ABI under ./abi
  typetology -o ./bindings 'abi/**/*.json'

  # Overwrite existing files and use a custom package name
  typetology -f -o ./internal/contracts -p contracts -i 'abi/*.json'

  # Inspect an ABI without generating code
  typetology inspect abi/store.json

  # Invoke a contract function on a node
  typetology send abi/store.json Put mykey 42 --endpoint http://localhost:20336 --key $KEY`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger = newLogger(cmd)

			// Load config file
			loader := config.NewConfigLoader(config.DefaultHomeDir(), configPath, logger)
			fileCfg, configFilePath, err := loader.LoadFileConfig()
			if err != nil {
				return err
			}
			loadedFileConfig = fileCfg
			loadedConfigPath = configFilePath

			// Priority: default < typetology.toml < env < flag
			effective, err = buildEffectiveConfig(cmd)
			if err != nil {
				return err
			}

			if effective.NoColor.Value {
				logger.SetNoColor(true)
			}
			logger.SetVerbose(effective.Verbose.Value)

			if configFilePath != "" {
				logger.Debug("Using config file: %s", configFilePath)
			}
			return nil
		},
		RunE: runGenerate,
	}

	// Global flags available on all commands
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable colored output")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose logging")
	cmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to typetology.toml file")

	// Generate flags
	cmd.Flags().StringVarP(&inputFlag, "input", "i", "",
		"Glob of ABI files to generate bindings for")
	cmd.Flags().StringVarP(&outFlag, "out", "o", "",
		"Output directory for generated files")
	cmd.Flags().StringVarP(&packageFlag, "package", "p", config.DefaultPackage,
		"Go package name of generated files")
	cmd.Flags().BoolVarP(&forceFlag, "force", "f", false,
		"Overwrite existing files without asking")
	cmd.Flags().StringSliceVar(&ignoreFlag, "ignore", []string{config.DefaultIgnore},
		"Glob patterns excluded from the inputs")

	cmd.AddGroup(&cobra.Group{ID: GroupMain, Title: "Main Commands:"})
	cmd.AddGroup(&cobra.Group{ID: GroupTool, Title: "Tool Commands:"})

	inspectCmd := NewInspectCmd()
	inspectCmd.GroupID = GroupMain
	sendCmd := NewSendCmd()
	sendCmd.GroupID = GroupMain

	configCmd := NewConfigCmd()
	configCmd.GroupID = GroupTool
	versionCmd := version.NewCmd()
	versionCmd.GroupID = GroupTool

	cmd.AddCommand(
		inspectCmd,
		sendCmd,
		configCmd,
		versionCmd,
	)

	return cmd
}

// newLogger writes to the command's streams, using the process logger when
// they are the standard ones.
func newLogger(cmd *cobra.Command) *output.Logger {
	if cmd.OutOrStdout() == os.Stdout && cmd.ErrOrStderr() == os.Stderr {
		return output.DefaultLogger
	}
	return output.NewLoggerWithWriters(cmd.OutOrStdout(), cmd.ErrOrStderr())
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := effective

	var patterns []string
	if cfg.Input.Value != "" {
		patterns = append(patterns, cfg.Input.Value)
	}
	patterns = append(patterns, args...)
	if len(patterns) == 0 {
		return cmd.Help()
	}
	if cfg.Out.Value == "" {
		return errors.New("output directory is required (use --out)")
	}

	var prompter output.Prompter
	if !cfg.Force.Value && output.IsInteractive() {
		prompter = output.NewPromptuiPrompter()
	}

	runner, err := generator.NewRunner(&generator.Config{
		Patterns:  patterns,
		Ignore:    cfg.Ignore.Value,
		OutputDir: cfg.Out.Value,
		Package:   cfg.Package.Value,
		Force:     cfg.Force.Value,
	}, prompter, runtimeLogger(cmd, cfg))
	if err != nil {
		return err
	}

	result, err := runner.Run()
	if err != nil {
		return err
	}

	for _, path := range result.Written {
		logger.Debug("Wrote %s", path)
	}
	for _, path := range result.Unchanged {
		logger.Debug("Unchanged %s", path)
	}
	logger.Success("Generated bindings for %d ABI file(s) in %s (%d written, %d unchanged)",
		len(result.Inputs), cfg.Out.Value, len(result.Written), len(result.Unchanged))
	return nil
}
