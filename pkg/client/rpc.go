package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"cosmossdk.io/log"
	"github.com/google/uuid"

	"github.com/altuslabsxyz/typetology/pkg/contract"
)

// RPCClient is a contract.Client for a node's JSON-RPC 2.0 endpoint.
type RPCClient struct {
	endpoint   string
	httpClient *http.Client
	logger     log.Logger
}

// NewRPCClient creates a JSON-RPC client for endpoint,
// e.g. http://localhost:20336.
func NewRPCClient(endpoint string, opts ...Option) *RPCClient {
	o := applyOptions(opts)
	return &RPCClient{
		endpoint:   endpoint,
		httpClient: o.httpClient,
		logger:     o.logger,
	}
}

// Endpoint returns the JSON-RPC URL.
func (c *RPCClient) Endpoint() string {
	if c == nil {
		return ""
	}
	return c.endpoint
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      string        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Desc    string          `json:"desc"`
	Error   int64           `json:"error"`
	Result  json.RawMessage `json:"result"`
}

// SendRawTransaction submits a serialized transaction.
func (c *RPCClient) SendRawTransaction(ctx context.Context, txHex string) (*contract.Response, error) {
	return c.call(ctx, "sendrawtransaction", txHex)
}

// GetStorage reads a contract storage value.
func (c *RPCClient) GetStorage(ctx context.Context, codeHash, keyHex string) (*contract.Response, error) {
	return c.call(ctx, "getstorage", codeHash, keyHex)
}

// GetContract returns the deployed contract in serialized form.
func (c *RPCClient) GetContract(ctx context.Context, codeHash string) (*contract.Response, error) {
	return c.call(ctx, "getcontractstate", codeHash)
}

// GetContractJSON returns the deployed contract as JSON.
func (c *RPCClient) GetContractJSON(ctx context.Context, codeHash string) (*contract.Response, error) {
	return c.call(ctx, "getcontractstate", codeHash, 1)
}

func (c *RPCClient) call(ctx context.Context, method string, params ...interface{}) (*contract.Response, error) {
	if c == nil {
		return nil, fmt.Errorf("nil RPCClient")
	}

	id := uuid.NewString()
	body, err := json.Marshal(&rpcRequest{
		JSONRPC: "2.0",
		ID:      id,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("rpc request", "method", method, "id", id, "endpoint", c.endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &contract.SubmissionError{Op: method, Endpoint: c.endpoint, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &contract.SubmissionError{Op: method, Endpoint: c.endpoint, Err: fmt.Errorf("read response: %w", err)}
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(data, &rpcResp); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return nil, &contract.SubmissionError{Op: method, Endpoint: c.endpoint, Err: fmt.Errorf("unexpected status %s", resp.Status)}
		}
		return nil, &contract.SubmissionError{Op: method, Endpoint: c.endpoint, Err: fmt.Errorf("decode response: %w", err)}
	}

	return &contract.Response{
		Action:  method,
		Desc:    rpcResp.Desc,
		Error:   rpcResp.Error,
		Result:  rpcResp.Result,
		Version: rpcResp.JSONRPC,
	}, nil
}
