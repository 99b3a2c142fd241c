// pkg/abi/abi.go

// Package abi parses contract interface documents.
//
// An interface document is a JSON object carrying the contract code hash,
// an optional entry point and the list of callable functions:
//
//	{
//	  "hash": "0x...",
//	  "entrypoint": "Main",
//	  "functions": [
//	    {"name": "Query", "parameters": [{"name": "key", "type": "String"}], "returntype": "ByteArray"}
//	  ],
//	  "events": []
//	}
//
// Fields the model does not know about are kept in the verbatim document
// returned by JSON, so a parsed Interface can be re-emitted without loss.
package abi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Parameter describes one positional function parameter.
type Parameter struct {
	Name string        `json:"name" yaml:"name"`
	Type ParameterKind `json:"type" yaml:"type"`
}

// Function describes one callable contract function.
type Function struct {
	Name       string      `json:"name" yaml:"name"`
	Parameters []Parameter `json:"parameters" yaml:"parameters"`
	ReturnType string      `json:"returntype,omitempty" yaml:"returntype,omitempty"`
}

// Interface is the parsed form of an interface document.
type Interface struct {
	Hash       string
	EntryPoint string
	Functions  []Function

	// raw is the compacted verbatim document.
	raw []byte
}

// document mirrors the known fields of an interface document.
// Pointers distinguish absent keys from empty values.
type document struct {
	Hash       *string            `json:"hash"`
	EntryPoint string             `json:"entrypoint"`
	Functions  *[]functionDocument `json:"functions"`
}

type functionDocument struct {
	Name       *string             `json:"name"`
	Parameters []parameterDocument `json:"parameters"`
	ReturnType string              `json:"returntype"`
}

type parameterDocument struct {
	Name *string `json:"name"`
	Type *string `json:"type"`
}

// Parse parses an interface document.
func Parse(raw []byte) (*Interface, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, &ParseError{Reason: "document must be a JSON object"}
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, trimmed); err != nil {
		return nil, &ParseError{Reason: "malformed JSON", Err: err}
	}

	var doc document
	if err := json.Unmarshal(compact.Bytes(), &doc); err != nil {
		return nil, &ParseError{Reason: "malformed document", Err: err}
	}
	if doc.Hash == nil {
		return nil, &ParseError{Reason: `missing "hash"`}
	}
	if doc.Functions == nil {
		return nil, &ParseError{Reason: `missing "functions"`}
	}

	iface := &Interface{
		Hash:       *doc.Hash,
		EntryPoint: doc.EntryPoint,
		Functions:  make([]Function, 0, len(*doc.Functions)),
		raw:        compact.Bytes(),
	}

	for i, fd := range *doc.Functions {
		if fd.Name == nil || *fd.Name == "" {
			return nil, &ParseError{Reason: fmt.Sprintf("function #%d has no name", i)}
		}
		fn := Function{
			Name:       *fd.Name,
			Parameters: make([]Parameter, 0, len(fd.Parameters)),
			ReturnType: fd.ReturnType,
		}
		for j, pd := range fd.Parameters {
			if pd.Name == nil {
				return nil, &ParseError{Reason: fmt.Sprintf("function %q: parameter #%d has no name", fn.Name, j)}
			}
			if pd.Type == nil {
				return nil, &ParseError{Reason: fmt.Sprintf("function %q: parameter %q has no type", fn.Name, *pd.Name)}
			}
			fn.Parameters = append(fn.Parameters, Parameter{Name: *pd.Name, Type: ParameterKind(*pd.Type)})
		}
		iface.Functions = append(iface.Functions, fn)
	}

	return iface, nil
}

// ParseFile reads and parses the interface document at path.
func ParseFile(path string) (*Interface, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read interface file: %w", err)
	}
	iface, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return iface, nil
}

// MustParse is like Parse but panics on error.
// It is intended for documents embedded in generated code.
func MustParse(raw string) *Interface {
	iface, err := Parse([]byte(raw))
	if err != nil {
		panic(err)
	}
	return iface
}

// Function returns the first function with the given name.
func (i *Interface) Function(name string) (*Function, bool) {
	if i == nil {
		return nil, false
	}
	for idx := range i.Functions {
		if i.Functions[idx].Name == name {
			return &i.Functions[idx], true
		}
	}
	return nil, false
}

// CodeHash returns the contract code hash without a 0x prefix.
func (i *Interface) CodeHash() string {
	return strings.TrimPrefix(i.Hash, "0x")
}

// JSON returns a copy of the compacted verbatim document.
func (i *Interface) JSON() []byte {
	out := make([]byte, len(i.raw))
	copy(out, i.raw)
	return out
}

// Indent returns the verbatim document indented with two spaces.
func (i *Interface) Indent() string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, i.raw, "", "  "); err != nil {
		return string(i.raw)
	}
	return buf.String()
}

// MarshalJSON implements json.Marshaler by emitting the verbatim document.
func (i *Interface) MarshalJSON() ([]byte, error) {
	return i.JSON(), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (i *Interface) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*i = *parsed
	return nil
}

// Signature returns a short human-readable signature, e.g. "Query(key String) ByteArray".
func (f *Function) Signature() string {
	parts := make([]string, len(f.Parameters))
	for i, p := range f.Parameters {
		parts[i] = p.Name + " " + string(p.Type)
	}
	sig := f.Name + "(" + strings.Join(parts, ", ") + ")"
	if f.ReturnType != "" {
		sig += " " + f.ReturnType
	}
	return sig
}
