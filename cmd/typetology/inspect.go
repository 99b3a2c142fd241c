package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/altuslabsxyz/typetology/internal/output"
	"github.com/altuslabsxyz/typetology/pkg/abi"
	"github.com/altuslabsxyz/typetology/pkg/address"
	"github.com/altuslabsxyz/typetology/pkg/binding"
)

var (
	inspectOutput string
	inspectName   string
)

// inspectResult is the machine-readable form of inspect.
type inspectResult struct {
	File       string            `json:"file" yaml:"file"`
	Type       string            `json:"type" yaml:"type"`
	Hash       string            `json:"hash" yaml:"hash"`
	Address    string            `json:"address,omitempty" yaml:"address,omitempty"`
	EntryPoint string            `json:"entrypoint,omitempty" yaml:"entrypoint,omitempty"`
	Functions  []inspectFunction `json:"functions" yaml:"functions"`
}

type inspectFunction struct {
	Name      string `json:"name" yaml:"name"`
	Signature string `json:"signature" yaml:"signature"`
	Binding   string `json:"binding" yaml:"binding"`
}

// NewInspectCmd creates the inspect command.
func NewInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <abi-file>",
		Short: "Show the functions and generated methods of an ABI",
		Long: `Show what typetology reads from an ABI file: the code hash, the derived
contract address, every function with its parameter kinds, and the Go method
generated for it.

Examples:
  typetology inspect abi/store.json
  typetology inspect abi/store.json --output yaml`,
		Args: cobra.ExactArgs(1),
		RunE: runInspect,
	}

	cmd.Flags().StringVar(&inspectOutput, "output", "text", "Output format: text, json or yaml")
	cmd.Flags().StringVar(&inspectName, "name", "", "Contract name (defaults to the file name)")

	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]
	iface, err := abi.ParseFile(path)
	if err != nil {
		return err
	}

	name := inspectName
	if name == "" {
		base := filepath.Base(path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	result, err := buildInspectResult(path, name, iface, effective.Package.Value)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch inspectOutput {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return err
		}
		return enc.Close()
	case "text":
		printInspectText(out, result)
	default:
		return fmt.Errorf("invalid output format: %s (must be 'text', 'json' or 'yaml')", inspectOutput)
	}
	return nil
}

// buildInspectResult leaves Address empty when the code hash does not map
// to an address.
func buildInspectResult(path, name string, iface *abi.Interface, pkg string) (*inspectResult, error) {
	var addrText string
	if addr, err := address.FromCodeHash(iface.CodeHash()); err == nil {
		addrText = addr.Base58()
	}

	gen := binding.NewGenerator(pkg)
	sigs, err := gen.Signatures(name, iface)
	if err != nil {
		return nil, err
	}

	result := &inspectResult{
		File:       path,
		Type:       gen.TypeName(name),
		Hash:       iface.Hash,
		Address:    addrText,
		EntryPoint: iface.EntryPoint,
		Functions:  make([]inspectFunction, len(iface.Functions)),
	}
	for i := range iface.Functions {
		fn := &iface.Functions[i]
		result.Functions[i] = inspectFunction{
			Name:      fn.Name,
			Signature: fn.Signature(),
			Binding:   sigs[i],
		}
	}
	return result, nil
}

func printInspectText(w io.Writer, r *inspectResult) {
	addr := r.Address
	if addr == "" {
		addr = "(none)"
	}
	fmt.Fprintln(w, output.CyanSeparator())
	output.KeyValue(w, [][2]string{
		{"File", r.File},
		{"Type", r.Type},
		{"Hash", r.Hash},
		{"Address", addr},
		{"Entry point", r.EntryPoint},
		{"Functions", fmt.Sprintf("%d", len(r.Functions))},
	})
	fmt.Fprintln(w, output.CyanSeparator())
	for _, fn := range r.Functions {
		fmt.Fprintf(w, "%s\n    %s\n", fn.Signature, fn.Binding)
	}
}
