// pkg/binding/generator.go
package binding

import (
	"bytes"
	"fmt"
	"go/format"
	"strconv"
	"strings"
	"text/template"

	"github.com/altuslabsxyz/typetology/pkg/abi"
)

// RuntimeFileName is the name of the runtime support file emitted once per
// output package.
const RuntimeFileName = "typetology_runtime.go"

// DefaultPackage is used when no package name is configured.
const DefaultPackage = "bindings"

var (
	contractTmpl = template.Must(template.New("contract").Parse(tmplSource))
	runtimeTmpl  = template.Must(template.New("runtime").Parse(tmplRuntimeSource))
)

// Generator renders Go bindings into a single package.
type Generator struct {
	pkg string
}

// NewGenerator creates a Generator emitting code for package pkg.
func NewGenerator(pkg string) *Generator {
	if pkg == "" {
		pkg = DefaultPackage
	}
	return &Generator{pkg: pkg}
}

// Package returns the package name of generated files.
func (g *Generator) Package() string {
	return g.pkg
}

// TypeName returns the Go type name generated for contractName.
func (g *Generator) TypeName(contractName string) string {
	return typeName(contractName)
}

// Generate renders the binding of iface as a contract type named after
// contractName.
func (g *Generator) Generate(contractName string, iface *abi.Interface) (string, error) {
	if iface == nil {
		return "", fmt.Errorf("contract interface is required")
	}
	if err := g.validatePackage(); err != nil {
		return "", err
	}

	data, err := g.contractData(contractName, iface)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := contractTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render binding for %s: %w", contractName, err)
	}
	return formatSource(buf.Bytes())
}

// GenerateRuntime renders the runtime support file for the package.
func (g *Generator) GenerateRuntime() (string, error) {
	if err := g.validatePackage(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := runtimeTmpl.Execute(&buf, &tmplRuntime{Package: g.pkg}); err != nil {
		return "", fmt.Errorf("failed to render runtime: %w", err)
	}
	return formatSource(buf.Bytes())
}

// Signatures returns the Go method signature generated for each function,
// in interface order. It is used for inspection output.
func (g *Generator) Signatures(contractName string, iface *abi.Interface) ([]string, error) {
	data, err := g.contractData(contractName, iface)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(data.Methods))
	for i, m := range data.Methods {
		params := make([]string, len(m.Params))
		for j, p := range m.Params {
			params[j] = p.Name + " " + p.Type
		}
		out[i] = fmt.Sprintf("%s(%s) *contract.DeferredTx", m.Normalized, strings.Join(params, ", "))
	}
	return out, nil
}

func (g *Generator) validatePackage() error {
	if !isIdentifier(g.pkg) || isKeyWord(g.pkg) {
		return fmt.Errorf("%w: package name %q", ErrInvalidName, g.pkg)
	}
	return nil
}

// contractData normalizes iface into template data.
func (g *Generator) contractData(contractName string, iface *abi.Interface) (*tmplData, error) {
	typ := typeName(contractName)
	if typ == "" {
		return nil, fmt.Errorf("%w: contract name %q", ErrInvalidName, contractName)
	}
	if runtimeNames[typ] {
		return nil, fmt.Errorf("%w: contract name %q collides with the runtime type %s", ErrInvalidName, contractName, typ)
	}

	receiver := "_" + typ
	reserved := map[string]bool{
		"abi":      true,
		"contract": true,
		receiver:   true,
		"bool":     true,
		"int64":    true,
		"string":   true,
	}

	data := &tmplData{
		Package:    g.pkg,
		Type:       typ,
		Receiver:   receiver,
		InterfaceV: decapitalise(typ) + "Interface",
		InputABI:   goLiteral(iface.Indent()),
		Hash:       sanitizeComment(iface.Hash),
		EntryPoint: sanitizeComment(iface.EntryPoint),
		Methods:    make([]*tmplMethod, 0, len(iface.Functions)),
	}

	// identifiers detects functions that normalize to the same method
	identifiers := make(map[string]string, len(iface.Functions))
	for _, fn := range iface.Functions {
		method := methodName(fn.Name)
		if method == "" {
			return nil, fmt.Errorf("%w: function name %q", ErrInvalidName, fn.Name)
		}
		if _, dup := identifiers[method]; dup {
			return nil, &DuplicateFunctionError{Contract: typ, Function: fn.Name, Method: method}
		}
		identifiers[method] = fn.Name

		names := paramNames(fn.Parameters, reserved)
		params := make([]*tmplParam, len(fn.Parameters))
		for i, p := range fn.Parameters {
			params[i] = &tmplParam{
				Name: names[i],
				Type: BindType(p.Type),
				Kind: sanitizeComment(string(p.Type)),
			}
		}
		data.Methods = append(data.Methods, &tmplMethod{
			Original:   fn.Name,
			Normalized: method,
			ReturnType: sanitizeComment(fn.ReturnType),
			Params:     params,
		})
	}
	return data, nil
}

// goLiteral returns s as a Go string literal, preferring a raw string.
func goLiteral(s string) string {
	if strings.Contains(s, "`") || strings.Contains(s, "\r") {
		return strconv.Quote(s)
	}
	return "`" + s + "`"
}

// sanitizeComment keeps s on one line so it can be emitted in a line comment.
func sanitizeComment(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// formatSource passes generated code through gofmt.
func formatSource(src []byte) (string, error) {
	code, err := format.Source(src)
	if err != nil {
		return "", fmt.Errorf("failed to format generated code: %v\n%s", err, src)
	}
	return string(code), nil
}
