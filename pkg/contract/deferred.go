// pkg/contract/deferred.go
package contract

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/altuslabsxyz/typetology/pkg/abi"
	"github.com/altuslabsxyz/typetology/pkg/transaction"
)

// DeferredTx describes a contract call now and signs and submits it later.
// It holds no state consumed by Send, so Send may be called repeatedly,
// and concurrently, with different TxParams.
type DeferredTx struct {
	contract *Contract
	function string
	args     []interface{}
}

// NewDeferredTx records a call of function with positional args.
// No validation happens until Build or Send.
func NewDeferredTx(c *Contract, function string, args ...interface{}) *DeferredTx {
	return &DeferredTx{
		contract: c,
		function: function,
		args:     args,
	}
}

// Function returns the recorded function name.
func (d *DeferredTx) Function() string {
	return d.function
}

// Args returns a copy of the recorded arguments.
func (d *DeferredTx) Args() []interface{} {
	return append([]interface{}(nil), d.args...)
}

// SendOption configures a single Send call.
type SendOption func(*sendOptions)

type sendOptions struct {
	client Client
}

// WithClient submits through client instead of the contract's bound client.
func WithClient(client Client) SendOption {
	return func(o *sendOptions) {
		o.client = client
	}
}

// Params resolves the recorded arguments against the function's parameters.
func (d *DeferredTx) Params() ([]transaction.Param, error) {
	fn, err := d.lookup()
	if err != nil {
		return nil, err
	}
	return resolveParams(fn, d.args)
}

// Build converts the call into an unsigned invocation transaction.
func (d *DeferredTx) Build(params TxParams) (*transaction.Transaction, error) {
	// 1. Resolve the function
	fn, err := d.lookup()
	if err != nil {
		return nil, err
	}

	// 2. Convert arguments
	txParams, err := resolveParams(fn, d.args)
	if err != nil {
		return nil, err
	}

	// 3. Gas and payer
	gasPrice, err := parseGas("gas price", params.GasPrice, DefaultGasPrice)
	if err != nil {
		return nil, err
	}
	gasLimit, err := parseGas("gas limit", params.GasLimit, DefaultGasLimit)
	if err != nil {
		return nil, err
	}
	payer, err := params.Payer.Resolve()
	if err != nil {
		return nil, err
	}

	// 4. Build
	contractAddr, err := d.contract.Address()
	if err != nil {
		return nil, err
	}
	return transaction.NewInvoke(fn.Name, txParams, contractAddr, gasPrice, gasLimit, payer)
}

// Send builds, signs and submits the call.
// The client's response or error is returned unchanged.
func (d *DeferredTx) Send(ctx context.Context, params TxParams, opts ...SendOption) (*Response, error) {
	var o sendOptions
	for _, opt := range opts {
		opt(&o)
	}

	tx, err := d.Build(params)
	if err != nil {
		return nil, err
	}

	key, err := params.PrivateKey.Resolve()
	if err != nil {
		return nil, err
	}
	if err := tx.Sign(key); err != nil {
		return nil, err
	}

	client := o.client
	if client == nil {
		client = d.contract.client
	}
	if client == nil {
		return nil, fmt.Errorf("no client to submit %s", d.function)
	}

	txHex, err := tx.Hex()
	if err != nil {
		return nil, err
	}

	logger := d.contract.logger
	logger.Debug("submitting contract invocation",
		"contract", d.contract.CodeHash(),
		"function", d.function,
		"nonce", tx.Nonce,
		"gas_price", tx.GasPrice,
		"gas_limit", tx.GasLimit,
	)

	resp, err := client.SendRawTransaction(ctx, txHex)
	if err != nil {
		logger.Debug("submission failed", "function", d.function, "error", err)
		return nil, err
	}

	logger.Debug("submission accepted", "function", d.function, "node_error", resp.Error)
	return resp, nil
}

func (d *DeferredTx) lookup() (*abi.Function, error) {
	if d.contract == nil {
		return nil, fmt.Errorf("deferred transaction %s has no contract", d.function)
	}
	fn, ok := d.contract.ABI().Function(d.function)
	if !ok {
		return nil, &LookupError{Function: d.function, CodeHash: d.contract.CodeHash()}
	}
	return fn, nil
}

// resolveParams zips parameters with args by position.
func resolveParams(fn *abi.Function, args []interface{}) ([]transaction.Param, error) {
	if len(args) != len(fn.Parameters) {
		return nil, &ConversionError{
			Function: fn.Name,
			Reason:   fmt.Sprintf("expected %d arguments, got %d", len(fn.Parameters), len(args)),
		}
	}

	out := make([]transaction.Param, len(fn.Parameters))
	for i, p := range fn.Parameters {
		value, err := convertArg(p.Type, args[i])
		if err != nil {
			return nil, &ConversionError{Function: fn.Name, Param: p.Name, Index: i, Reason: err.Error()}
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, &ConversionError{Function: fn.Name, Param: p.Name, Index: i, Reason: err.Error()}
		}
		out[i] = transaction.Param{Name: p.Name, Type: string(p.Type), Value: encoded}
	}
	return out, nil
}

// convertArg checks v against kind and returns the value to encode.
func convertArg(kind abi.ParameterKind, v interface{}) (interface{}, error) {
	class := kind.Class()
	if v == nil {
		if class == abi.ClassOther {
			return nil, nil
		}
		return nil, fmt.Errorf("nil value for %s parameter", kind)
	}

	switch class {
	case abi.ClassByteArray:
		switch b := v.(type) {
		case ByteArray:
			return b.Value(), nil
		case *ByteArray:
			if b != nil {
				return b.Value(), nil
			}
		case []byte:
			return RawBytes(b).Value(), nil
		case string:
			return b, nil
		}
	case abi.ClassBoolean:
		if _, ok := v.(bool); ok {
			return v, nil
		}
	case abi.ClassString:
		if _, ok := v.(string); ok {
			return v, nil
		}
	case abi.ClassInteger:
		if isInteger(reflect.TypeOf(v)) {
			return v, nil
		}
	case abi.ClassIntegerArray:
		// []byte is rejected: JSON encodes it as base64
		t := reflect.TypeOf(v)
		isBytes := t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8
		if (t.Kind() == reflect.Slice || t.Kind() == reflect.Array) && !isBytes && isInteger(t.Elem()) {
			return v, nil
		}
	default:
		return v, nil
	}

	return nil, fmt.Errorf("cannot use %T as %s", v, kind)
}

func isInteger(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}
