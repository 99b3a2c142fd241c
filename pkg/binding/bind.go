// pkg/binding/bind.go

// Package binding generates Go bindings for contract interface documents.
//
// A binding is a struct embedding *contract.Contract with one method per
// contract function. Each method returns a *contract.DeferredTx that is
// signed and submitted later, so generated code performs no I/O and no
// argument validation of its own.
package binding

import (
	"fmt"
	"go/token"
	"strings"
	"unicode"

	gethabi "github.com/ethereum/go-ethereum/accounts/abi"

	"github.com/altuslabsxyz/typetology/pkg/abi"
)

// BindType returns the Go type used for a parameter of the given kind.
//
// Integer kinds map to int64 and integer arrays to []int64. Contracts may
// declare integers wider than 64 bits; such values lose precision through
// a binding and callers needing the full range should use the runtime
// directly with a JSON-encodable value.
func BindType(kind abi.ParameterKind) string {
	switch kind.Class() {
	case abi.ClassBoolean:
		return "bool"
	case abi.ClassInteger:
		return "int64"
	case abi.ClassIntegerArray:
		return "[]int64"
	case abi.ClassByteArray:
		return "contract.ByteArray"
	case abi.ClassString:
		return "string"
	default:
		return "interface{}"
	}
}

// isKeyWord reports whether s is a Go keyword.
func isKeyWord(s string) bool {
	return token.Lookup(s).IsKeyword()
}

// isIdentifier reports whether s is a usable, non-blank Go identifier.
func isIdentifier(s string) bool {
	if s == "" || s == "_" {
		return false
	}
	return token.IsIdentifier(s)
}

// capitalise makes a camel-case string starting with an upper case letter.
// Anything other than ASCII letters and digits is a word separator.
func capitalise(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return r
		}
		return '_'
	}, s)

	var parts []string
	for _, p := range strings.Split(cleaned, "_") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return gethabi.ToCamelCase(strings.Join(parts, "_"))
}

// decapitalise makes a camel-case string starting with a lower case letter.
func decapitalise(s string) string {
	name := capitalise(s)
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}

// typeName returns the exported Go type name for a contract.
func typeName(contract string) string {
	name := capitalise(contract)
	if name != "" && unicode.IsDigit(rune(name[0])) {
		name = "C" + name
	}
	return name
}

// methodName returns the exported Go method name for a contract function.
// Names shouldn't start with a digit, so those get an M prefix.
func methodName(function string) string {
	name := capitalise(function)
	if name == "" {
		return ""
	}
	if unicode.IsDigit(rune(name[0])) {
		name = "M" + name
	}
	return name + "Tx"
}

// paramNames returns usable Go parameter names for params, renaming any
// keyword, invalid, reserved or repeated name to arg<i>.
func paramNames(params []abi.Parameter, reserved map[string]bool) []string {
	names := make([]string, len(params))
	used := make(map[string]bool, len(params))
	for i, p := range params {
		name := p.Name
		if !isIdentifier(name) || isKeyWord(name) || reserved[name] || used[name] {
			name = fmt.Sprintf("arg%d", i)
		}
		for used[name] || reserved[name] {
			name = "_" + name
		}
		used[name] = true
		names[i] = name
	}
	return names
}
