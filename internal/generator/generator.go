package generator

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cosmossdk.io/log"

	"github.com/altuslabsxyz/typetology/internal/output"
	"github.com/altuslabsxyz/typetology/pkg/abi"
	"github.com/altuslabsxyz/typetology/pkg/binding"
)

var (
	// ErrFileExists is returned when a target file exists and may not be overwritten.
	ErrFileExists = errors.New("output file already exists")

	// ErrDuplicateType is returned when two inputs map to the same contract type or file.
	ErrDuplicateType = errors.New("duplicate contract type")
)

// Runner generates bindings for every ABI matched by its config.
type Runner struct {
	config   *Config
	gen      *binding.Generator
	prompter output.Prompter
	logger   log.Logger
}

// Result lists the files handled by a run.
type Result struct {
	Inputs    []string
	Written   []string
	Unchanged []string
}

// artifact is a rendered file waiting to be written.
type artifact struct {
	input  string
	path   string
	source string
}

// NewRunner creates a Runner. A nil prompter makes existing files an error
// unless Force is set.
func NewRunner(config *Config, prompter output.Prompter, logger log.Logger) (*Runner, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.OutputDir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Runner{
		config:   config,
		gen:      binding.NewGenerator(config.Package),
		prompter: prompter,
		logger:   logger,
	}, nil
}

// Run discovers, renders and writes all bindings. Nothing is written unless
// every input renders and every overwrite is permitted.
func (r *Runner) Run() (*Result, error) {
	inputs, err := Discover(r.config.Patterns, r.config.Ignore)
	if err != nil {
		return nil, err
	}
	r.logger.Info("Discovered ABI files", "count", len(inputs), "patterns", r.config.Patterns)

	// 1. Render everything in memory
	artifacts, err := r.render(inputs)
	if err != nil {
		return nil, err
	}

	// 2. Resolve overwrites before touching the filesystem
	result := &Result{Inputs: inputs}
	pending := make([]artifact, 0, len(artifacts))
	for _, a := range artifacts {
		write, err := r.shouldWrite(a)
		if err != nil {
			return nil, err
		}
		if !write {
			result.Unchanged = append(result.Unchanged, a.path)
			continue
		}
		pending = append(pending, a)
	}

	// 3. Write
	if err := os.MkdirAll(r.config.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	for _, a := range pending {
		if err := os.WriteFile(a.path, []byte(a.source), 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", a.path, err)
		}
		r.logger.Debug("Wrote binding", "input", a.input, "output", a.path)
		result.Written = append(result.Written, a.path)
	}

	return result, nil
}

func (r *Runner) render(inputs []string) ([]artifact, error) {
	artifacts := make([]artifact, 0, len(inputs)+1)
	types := make(map[string]string, len(inputs))
	files := make(map[string]string, len(inputs))

	for _, input := range inputs {
		iface, err := abi.ParseFile(input)
		if err != nil {
			return nil, err
		}

		name := contractName(input)
		typeName := r.gen.TypeName(name)
		if prev, ok := types[typeName]; ok && typeName != "" {
			return nil, fmt.Errorf("%w %s: %s and %s", ErrDuplicateType, typeName, prev, input)
		}
		types[typeName] = input

		source, err := r.gen.Generate(name, iface)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", input, err)
		}

		fileName := outputFileName(name, typeName)
		if prev, ok := files[fileName]; ok {
			return nil, fmt.Errorf("%w: %s and %s both generate %s", ErrDuplicateType, prev, input, fileName)
		}
		files[fileName] = input

		artifacts = append(artifacts, artifact{
			input:  input,
			path:   filepath.Join(r.config.OutputDir, fileName),
			source: source,
		})
		r.logger.Debug("Rendered binding", "input", input, "type", typeName, "functions", len(iface.Functions))
	}

	runtime, err := r.gen.GenerateRuntime()
	if err != nil {
		return nil, err
	}
	artifacts = append(artifacts, artifact{
		path:   filepath.Join(r.config.OutputDir, binding.RuntimeFileName),
		source: runtime,
	})

	return artifacts, nil
}

// shouldWrite reports whether a should be written. Identical files are
// left untouched.
func (r *Runner) shouldWrite(a artifact) (bool, error) {
	existing, err := os.ReadFile(a.path)
	if errors.Is(err, os.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", a.path, err)
	}
	if bytes.Equal(existing, []byte(a.source)) {
		return false, nil
	}
	if r.config.Force {
		return true, nil
	}
	if r.prompter == nil {
		return false, fmt.Errorf("%w: %s (use --force to overwrite)", ErrFileExists, a.path)
	}

	ok, err := r.prompter.Confirm(fmt.Sprintf("Overwrite %s", a.path))
	if err != nil {
		return false, err
	}
	if !ok {
		return false, fmt.Errorf("%w: %s (overwrite declined)", ErrFileExists, a.path)
	}
	return true, nil
}

// contractName is the input file name without its extension.
func contractName(input string) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// outputFileName keeps the input base name unless it could carry a build
// constraint suffix (_test, _linux, ...) or be ignored by the go tool, in
// which case the lowercased type name is used.
func outputFileName(name, typeName string) string {
	if name == "" || strings.Contains(name, "_") || strings.HasPrefix(name, ".") || !isPlainFileName(name) {
		return strings.ToLower(typeName) + ".go"
	}
	return name + ".go"
}

func isPlainFileName(name string) bool {
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
		default:
			return false
		}
	}
	return true
}
