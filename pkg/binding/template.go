package binding

// tmplData is the data structure required to fill the binding template.
type tmplData struct {
	Package    string // Name of the package to place the generated file in
	Type       string // Type name of the contract binding
	Receiver   string // Receiver name used by generated methods
	InterfaceV string // Package-level variable holding the parsed interface
	InputABI   string // Go literal of the indented interface document
	Hash       string // Contract code hash as declared
	EntryPoint string // Contract entry point, if declared
	Methods    []*tmplMethod
}

// tmplMethod contains the data needed to generate one contract method.
type tmplMethod struct {
	Original   string // Function name as declared in the interface document
	Normalized string // Exported Go method name
	ReturnType string // Declared return type, used for documentation only
	Params     []*tmplParam
}

// tmplParam is one generated method parameter.
type tmplParam struct {
	Name string // Go parameter name
	Type string // Go parameter type
	Kind string // Parameter kind as declared
}

// tmplRuntime is the data structure required to fill the runtime template.
type tmplRuntime struct {
	Package string
}

// tmplSource is the Go source template used to generate a contract binding.
const tmplSource = `// Code generated by typetology. DO NOT EDIT.

package {{.Package}}

import (
	"github.com/altuslabsxyz/typetology/pkg/abi"
	"github.com/altuslabsxyz/typetology/pkg/contract"
)

// {{.Type}}ABI is the interface document {{.Type}} was generated from.
const {{.Type}}ABI = {{.InputABI}}

var {{.InterfaceV}} = abi.MustParse({{.Type}}ABI)

// {{.Type}} is a binding for the contract with code hash {{.Hash}}.{{if .EntryPoint}}
// Its entry point is {{.EntryPoint}}.{{end}}
type {{.Type}} struct {
	*contract.Contract
}

// New{{.Type}} creates a {{.Type}} bound to client.
func New{{.Type}}(client contract.Client, opts ...contract.Option) (*{{.Type}}, error) {
	c, err := contract.New(client, {{.InterfaceV}}, opts...)
	if err != nil {
		return nil, err
	}
	return &{{.Type}}{Contract: c}, nil
}
{{range .Methods}}
// {{.Normalized}} prepares a call of {{printf "%q" .Original}}.{{if .ReturnType}}
// The contract returns {{.ReturnType}}.{{end}}
func ({{$.Receiver}} *{{$.Type}}) {{.Normalized}}({{range .Params}}
	{{.Name}} {{.Type}}, // {{.Kind}}{{end}}
) *contract.DeferredTx {
	return contract.NewDeferredTx({{$.Receiver}}.Contract, {{printf "%q" .Original}}{{range .Params}}, {{.Name}}{{end}})
}
{{end}}`

// tmplRuntimeSource is the Go source template of the per-package runtime
// support file. It re-exports the runtime so users of a generated package
// need not import pkg/contract themselves.
const tmplRuntimeSource = `// Code generated by typetology. DO NOT EDIT.

package {{.Package}}

import (
	"github.com/altuslabsxyz/typetology/pkg/address"
	"github.com/altuslabsxyz/typetology/pkg/contract"
)

// Default gas settings applied when TxParams leaves them empty.
const (
	DefaultGasPrice = contract.DefaultGasPrice
	DefaultGasLimit = contract.DefaultGasLimit
)

type (
	Client     = contract.Client
	Option     = contract.Option
	SendOption = contract.SendOption
	Response   = contract.Response
	TxParams   = contract.TxParams
	AddressRef = contract.AddressRef
	KeyRef     = contract.KeyRef
	DeferredTx = contract.DeferredTx
	ByteArray  = contract.ByteArray
	Address    = address.Address
)

var (
	RawBytes      = contract.RawBytes
	ByteString    = contract.ByteString
	PrivateKeyHex = contract.PrivateKeyHex
	PrivateKey    = contract.PrivateKey
	Base58Address = contract.Base58Address
	TypedAddress  = contract.TypedAddress
	WithClient    = contract.WithClient
	WithLogger    = contract.WithLogger
)
`

// runtimeNames are the identifiers declared by the runtime support file.
var runtimeNames = map[string]bool{
	"DefaultGasPrice": true,
	"DefaultGasLimit": true,
	"Client":          true,
	"Option":          true,
	"SendOption":      true,
	"Response":        true,
	"TxParams":        true,
	"AddressRef":      true,
	"KeyRef":          true,
	"DeferredTx":      true,
	"ByteArray":       true,
	"Address":         true,
	"RawBytes":        true,
	"ByteString":      true,
	"PrivateKeyHex":   true,
	"PrivateKey":      true,
	"Base58Address":   true,
	"TypedAddress":    true,
	"WithClient":      true,
	"WithLogger":      true,
}
