package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"cosmossdk.io/log"

	"github.com/altuslabsxyz/typetology/pkg/contract"
)

// RestClient is a contract.Client for a node's REST API.
type RestClient struct {
	baseURL    string
	httpClient *http.Client
	logger     log.Logger
}

// NewRestClient creates a REST client for the node at baseURL,
// e.g. http://localhost:20334.
func NewRestClient(baseURL string, opts ...Option) *RestClient {
	o := applyOptions(opts)
	return &RestClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: o.httpClient,
		logger:     o.logger,
	}
}

// Endpoint returns the base URL.
func (c *RestClient) Endpoint() string {
	if c == nil {
		return ""
	}
	return c.baseURL
}

// SendRawTransaction posts a serialized transaction.
func (c *RestClient) SendRawTransaction(ctx context.Context, txHex string) (*contract.Response, error) {
	body, err := json.Marshal(map[string]string{
		"Action":  "sendrawtransaction",
		"Version": apiVersion,
		"Data":    txHex,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	return c.do(ctx, http.MethodPost, "/api/v1/transaction", body)
}

// GetStorage reads a contract storage value.
func (c *RestClient) GetStorage(ctx context.Context, codeHash, keyHex string) (*contract.Response, error) {
	path := "/api/v1/storage/" + url.PathEscape(codeHash) + "/" + url.PathEscape(keyHex)
	return c.do(ctx, http.MethodGet, path, nil)
}

// GetContract returns the deployed contract in serialized form.
func (c *RestClient) GetContract(ctx context.Context, codeHash string) (*contract.Response, error) {
	return c.do(ctx, http.MethodGet, "/api/v1/contract/"+url.PathEscape(codeHash)+"?raw=1", nil)
}

// GetContractJSON returns the deployed contract as JSON.
func (c *RestClient) GetContractJSON(ctx context.Context, codeHash string) (*contract.Response, error) {
	return c.do(ctx, http.MethodGet, "/api/v1/contract/"+url.PathEscape(codeHash)+"?raw=0", nil)
}

func (c *RestClient) do(ctx context.Context, method, path string, body []byte) (*contract.Response, error) {
	if c == nil {
		return nil, fmt.Errorf("nil RestClient")
	}
	endpoint := c.baseURL + path

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("rest request", "method", method, "url", endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &contract.SubmissionError{Op: method, Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	return decodeEnvelope(method, endpoint, resp)
}

// decodeEnvelope decodes a node reply envelope from resp.
func decodeEnvelope(op, endpoint string, resp *http.Response) (*contract.Response, error) {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &contract.SubmissionError{Op: op, Endpoint: endpoint, Err: fmt.Errorf("read response: %w", err)}
	}

	var out contract.Response
	if err := json.Unmarshal(data, &out); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return nil, &contract.SubmissionError{Op: op, Endpoint: endpoint, Err: fmt.Errorf("unexpected status %s", resp.Status)}
		}
		return nil, &contract.SubmissionError{Op: op, Endpoint: endpoint, Err: fmt.Errorf("decode response: %w", err)}
	}
	return &out, nil
}
