package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"cosmossdk.io/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/altuslabsxyz/typetology/pkg/contract"
)

// ErrClosed is returned for calls on a closed WebSocket client.
var ErrClosed = errors.New("websocket client closed")

// WSClient is a contract.Client for a node's WebSocket API.
// Requests are matched to replies by Id, so calls may run concurrently.
type WSClient struct {
	endpoint string
	conn     *websocket.Conn
	logger   log.Logger

	writeMu sync.Mutex

	mu      sync.Mutex
	pending map[string]chan *contract.Response
	err     error

	closeCh   chan struct{}
	closeOnce sync.Once
}

type wsReply struct {
	contract.Response
	ID string `json:"Id"`
}

// DialWS connects to the WebSocket API at endpoint, e.g. ws://localhost:20335.
func DialWS(ctx context.Context, endpoint string, opts ...Option) (*WSClient, error) {
	o := applyOptions(opts)

	dialer := websocket.Dialer{
		HandshakeTimeout: o.timeout,
	}
	conn, resp, err := dialer.DialContext(ctx, endpoint, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, &contract.SubmissionError{Op: "dial", Endpoint: endpoint, Err: err}
	}

	c := &WSClient{
		endpoint: endpoint,
		conn:     conn,
		logger:   o.logger,
		pending:  make(map[string]chan *contract.Response),
		closeCh:  make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

// Endpoint returns the WebSocket URL.
func (c *WSClient) Endpoint() string {
	if c == nil {
		return ""
	}
	return c.endpoint
}

// SendRawTransaction submits a serialized transaction.
func (c *WSClient) SendRawTransaction(ctx context.Context, txHex string) (*contract.Response, error) {
	return c.call(ctx, map[string]interface{}{
		"Action": "sendrawtransaction",
		"Data":   txHex,
	})
}

// GetStorage reads a contract storage value.
func (c *WSClient) GetStorage(ctx context.Context, codeHash, keyHex string) (*contract.Response, error) {
	return c.call(ctx, map[string]interface{}{
		"Action": "getstorage",
		"Hash":   codeHash,
		"Key":    keyHex,
	})
}

// GetContract returns the deployed contract in serialized form.
func (c *WSClient) GetContract(ctx context.Context, codeHash string) (*contract.Response, error) {
	return c.call(ctx, map[string]interface{}{
		"Action": "getcontract",
		"Hash":   codeHash,
		"Raw":    "1",
	})
}

// GetContractJSON returns the deployed contract as JSON.
func (c *WSClient) GetContractJSON(ctx context.Context, codeHash string) (*contract.Response, error) {
	return c.call(ctx, map[string]interface{}{
		"Action": "getcontract",
		"Hash":   codeHash,
		"Raw":    "0",
	})
}

// Close closes the connection and fails all pending calls.
// It is idempotent.
func (c *WSClient) Close() error {
	if c == nil {
		return nil
	}
	var err error
	c.closeOnce.Do(func() {
		close(c.closeCh)
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		err = c.conn.Close()
	})
	return err
}

func (c *WSClient) call(ctx context.Context, req map[string]interface{}) (*contract.Response, error) {
	if c == nil {
		return nil, fmt.Errorf("nil WSClient")
	}
	action, _ := req["Action"].(string)

	id := uuid.NewString()
	req["Id"] = id
	req["Version"] = apiVersion

	ch := make(chan *contract.Response, 1)
	c.mu.Lock()
	if c.err != nil {
		err := c.err
		c.mu.Unlock()
		return nil, &contract.SubmissionError{Op: action, Endpoint: c.endpoint, Err: err}
	}
	c.pending[id] = ch
	c.mu.Unlock()
	defer c.forget(id)

	c.logger.Debug("ws request", "action", action, "id", id)

	c.writeMu.Lock()
	err := c.conn.WriteJSON(req)
	c.writeMu.Unlock()
	if err != nil {
		return nil, &contract.SubmissionError{Op: action, Endpoint: c.endpoint, Err: err}
	}

	select {
	case resp, ok := <-ch:
		if !ok {
			return nil, &contract.SubmissionError{Op: action, Endpoint: c.endpoint, Err: c.failure()}
		}
		return resp, nil
	case <-ctx.Done():
		return nil, &contract.SubmissionError{Op: action, Endpoint: c.endpoint, Err: ctx.Err()}
	}
}

func (c *WSClient) forget(id string) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}

func (c *WSClient) failure() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	return ErrClosed
}

// readLoop routes replies to waiting calls until the connection fails.
func (c *WSClient) readLoop() {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			select {
			case <-c.closeCh:
				err = ErrClosed
			default:
				err = fmt.Errorf("websocket read: %w", err)
			}
			c.shutdown(err)
			return
		}

		var reply wsReply
		if err := json.Unmarshal(data, &reply); err != nil {
			c.logger.Debug("ignoring undecodable websocket message", "error", err)
			continue
		}
		if reply.ID == "" {
			// pushed notifications carry no request id
			continue
		}

		c.mu.Lock()
		ch, ok := c.pending[reply.ID]
		if ok {
			delete(c.pending, reply.ID)
		}
		c.mu.Unlock()

		if ok {
			resp := reply.Response
			ch <- &resp
		}
	}
}

func (c *WSClient) shutdown(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err == nil {
		c.err = err
	}
	for id, ch := range c.pending {
		close(ch)
		delete(c.pending, id)
	}
}
