// pkg/contract/contract.go

// Package contract is the runtime used by generated contract bindings.
//
// Every generated type embeds *Contract, which carries the parsed interface
// and the network client. The contract address is derived from the code
// hash and is only needed to build transactions. Generated methods
// return a *DeferredTx that is converted, signed and submitted only when
// Send is called.
package contract

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"cosmossdk.io/log"

	"github.com/altuslabsxyz/typetology/pkg/abi"
	"github.com/altuslabsxyz/typetology/pkg/address"
)

// Default gas settings applied when TxParams leaves them empty.
const (
	DefaultGasPrice = "500"
	DefaultGasLimit = "20000"
)

// Client is the network client a contract talks to.
// Implementations live in pkg/client.
type Client interface {
	// SendRawTransaction submits a hex-encoded serialized transaction.
	SendRawTransaction(ctx context.Context, txHex string) (*Response, error)

	// GetStorage reads the value stored under keyHex by the contract.
	GetStorage(ctx context.Context, codeHash, keyHex string) (*Response, error)

	// GetContract returns the deployed contract's code and metadata.
	GetContract(ctx context.Context, codeHash string) (*Response, error)

	// GetContractJSON returns the deployed contract as a JSON object.
	GetContractJSON(ctx context.Context, codeHash string) (*Response, error)
}

// Response is the reply envelope returned by nodes.
type Response struct {
	Action  string          `json:"Action"`
	Desc    string          `json:"Desc"`
	Error   int64           `json:"Error"`
	Result  json.RawMessage `json:"Result,omitempty"`
	Version string          `json:"Version"`
}

// OK reports whether the node reported success.
func (r *Response) OK() bool {
	return r != nil && r.Error == 0
}

// Option configures a Contract.
type Option func(*Contract)

// WithLogger sets the logger used for debug output.
func WithLogger(logger log.Logger) Option {
	return func(c *Contract) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Contract is the runtime state shared by all methods of a binding.
type Contract struct {
	iface      *abi.Interface
	client     Client
	address    address.Address
	addressErr error
	logger     log.Logger
}

// New creates a Contract for iface using client.
// client may be nil when every send supplies WithClient.
// A code hash that does not map to an address is reported by Address and
// by DeferredTx.Build; storage and contract queries still work.
func New(client Client, iface *abi.Interface, opts ...Option) (*Contract, error) {
	if iface == nil {
		return nil, fmt.Errorf("contract interface is required")
	}

	c := &Contract{
		iface:  iface,
		client: client,
		logger: log.NewNopLogger(),
	}
	c.address, c.addressErr = address.FromCodeHash(iface.CodeHash())
	if c.addressErr != nil {
		c.addressErr = fmt.Errorf("failed to derive contract address from hash %q: %w", iface.Hash, c.addressErr)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ABI returns the contract interface.
func (c *Contract) ABI() *abi.Interface {
	return c.iface
}

// Client returns the bound network client.
func (c *Contract) Client() Client {
	return c.client
}

// CodeHash returns the contract code hash without a 0x prefix.
func (c *Contract) CodeHash() string {
	return c.iface.CodeHash()
}

// Address returns the contract address derived from the code hash.
func (c *Contract) Address() (address.Address, error) {
	return c.address, c.addressErr
}

// GetStorage reads the value stored under key.
// The key is hex-encoded before lookup.
func (c *Contract) GetStorage(ctx context.Context, key string) (json.RawMessage, error) {
	client, err := c.boundClient()
	if err != nil {
		return nil, err
	}

	keyHex := hex.EncodeToString([]byte(key))
	resp, err := client.GetStorage(ctx, c.CodeHash(), keyHex)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, &StorageError{Desc: "empty response"}
	}
	if !resp.OK() {
		return nil, &StorageError{Code: resp.Error, Desc: resp.Desc}
	}
	return resp.Result, nil
}

// GetContract queries the deployed contract.
func (c *Contract) GetContract(ctx context.Context) (*Response, error) {
	client, err := c.boundClient()
	if err != nil {
		return nil, err
	}
	return client.GetContract(ctx, c.CodeHash())
}

// GetContractJSON queries the deployed contract in JSON form.
func (c *Contract) GetContractJSON(ctx context.Context) (*Response, error) {
	client, err := c.boundClient()
	if err != nil {
		return nil, err
	}
	return client.GetContractJSON(ctx, c.CodeHash())
}

func (c *Contract) boundClient() (Client, error) {
	if c.client == nil {
		return nil, fmt.Errorf("contract %s has no client", c.CodeHash())
	}
	return c.client, nil
}
