package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altuslabsxyz/typetology/pkg/contract"
)

const codeHash = "0102030405060708090a0b0c0d0e0f1011121314"

func TestRestClient_SendRawTransaction(t *testing.T) {
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/transaction", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		_, _ = w.Write([]byte(`{"Action":"sendrawtransaction","Desc":"SUCCESS","Error":0,"Result":"f00d","Version":"1.0.0"}`))
	}))
	defer server.Close()

	c := NewRestClient(server.URL + "/")
	resp, err := c.SendRawTransaction(context.Background(), "abcdef")
	require.NoError(t, err)

	require.Equal(t, map[string]string{"Action": "sendrawtransaction", "Version": "1.0.0", "Data": "abcdef"}, gotBody)
	require.Equal(t, "sendrawtransaction", resp.Action)
	require.True(t, resp.OK())
	require.JSONEq(t, `"f00d"`, string(resp.Result))
}

func TestRestClient_Queries(t *testing.T) {
	var paths []string
	var mu sync.Mutex
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.RequestURI())
		mu.Unlock()
		_, _ = w.Write([]byte(`{"Action":"x","Desc":"SUCCESS","Error":0,"Result":{}}`))
	}))
	defer server.Close()

	c := NewRestClient(server.URL)
	ctx := context.Background()

	_, err := c.GetStorage(ctx, codeHash, "68656c6c6f")
	require.NoError(t, err)
	_, err = c.GetContract(ctx, codeHash)
	require.NoError(t, err)
	_, err = c.GetContractJSON(ctx, codeHash)
	require.NoError(t, err)

	require.Equal(t, []string{
		"/api/v1/storage/" + codeHash + "/68656c6c6f",
		"/api/v1/contract/" + codeHash + "?raw=1",
		"/api/v1/contract/" + codeHash + "?raw=0",
	}, paths)
}

func TestRestClient_NodeErrorIsNotGoError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Action":"getstorage","Desc":"INVALID PARAMS","Error":42002,"Result":"","Version":"1.0.0"}`))
	}))
	defer server.Close()

	resp, err := NewRestClient(server.URL).GetStorage(context.Background(), codeHash, "00")
	require.NoError(t, err)
	require.False(t, resp.OK())
	require.Equal(t, int64(42002), resp.Error)
	require.Equal(t, "INVALID PARAMS", resp.Desc)
}

func TestRestClient_TransportErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewRestClient(server.URL).SendRawTransaction(context.Background(), "00")
	require.Error(t, err)
	require.True(t, errors.Is(err, contract.ErrSubmission))
	require.Contains(t, err.Error(), "500")

	// closed server: connection refused
	closed := httptest.NewServer(http.NotFoundHandler())
	url := closed.URL
	closed.Close()

	_, err = NewRestClient(url, WithTimeout(time.Second)).SendRawTransaction(context.Background(), "00")
	require.Error(t, err)

	var serr *contract.SubmissionError
	require.True(t, errors.As(err, &serr))
	require.Equal(t, http.MethodPost, serr.Op)
}

func TestRPCClient(t *testing.T) {
	type call struct {
		Method string
		Params []interface{}
	}
	var calls []call
	var mu sync.Mutex

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)

		var req rpcRequest
		assert.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "2.0", req.JSONRPC)
		assert.NotEmpty(t, req.ID)

		mu.Lock()
		calls = append(calls, call{Method: req.Method, Params: req.Params})
		mu.Unlock()

		reply := map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"desc":    "SUCCESS",
			"error":   0,
			"result":  "ok",
		}
		if req.Method == "getstorage" {
			reply["desc"] = "UNKNOWN STORAGE"
			reply["error"] = 44001
		}
		_ = json.NewEncoder(w).Encode(reply)
	}))
	defer server.Close()

	c := NewRPCClient(server.URL)
	ctx := context.Background()

	resp, err := c.SendRawTransaction(ctx, "abcd")
	require.NoError(t, err)
	require.Equal(t, "sendrawtransaction", resp.Action)
	require.Equal(t, "2.0", resp.Version)
	require.JSONEq(t, `"ok"`, string(resp.Result))

	resp, err = c.GetStorage(ctx, codeHash, "6b6579")
	require.NoError(t, err)
	require.Equal(t, int64(44001), resp.Error)
	require.Equal(t, "UNKNOWN STORAGE", resp.Desc)

	_, err = c.GetContract(ctx, codeHash)
	require.NoError(t, err)
	_, err = c.GetContractJSON(ctx, codeHash)
	require.NoError(t, err)

	require.Equal(t, []call{
		{Method: "sendrawtransaction", Params: []interface{}{"abcd"}},
		{Method: "getstorage", Params: []interface{}{codeHash, "6b6579"}},
		{Method: "getcontractstate", Params: []interface{}{codeHash}},
		{Method: "getcontractstate", Params: []interface{}{codeHash, float64(1)}},
	}, calls)
}

func TestRPCClient_BadResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	_, err := NewRPCClient(server.URL).SendRawTransaction(context.Background(), "00")
	require.Error(t, err)
	require.True(t, errors.Is(err, contract.ErrSubmission))
	require.Contains(t, err.Error(), "decode response")
}

// newWSNode starts a WebSocket server answering every request with an
// envelope echoing its Action and Id. Requests with Action "hang" get no reply.
func newWSNode(t *testing.T, seen chan<- map[string]interface{}) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		// a push notification without Id is ignored by the client
		_ = conn.WriteJSON(map[string]interface{}{"Action": "Notify", "Result": "block"})

		for {
			var req map[string]interface{}
			if err := conn.ReadJSON(&req); err != nil {
				return
			}
			if seen != nil {
				seen <- req
			}
			if req["Action"] == "hang" {
				continue
			}
			_ = conn.WriteJSON(map[string]interface{}{
				"Action":  req["Action"],
				"Desc":    "SUCCESS",
				"Error":   0,
				"Id":      req["Id"],
				"Result":  req["Action"],
				"Version": "1.0.0",
			})
		}
	}))
}

func wsURL(server *httptest.Server) string {
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestWSClient(t *testing.T) {
	seen := make(chan map[string]interface{}, 8)
	server := newWSNode(t, seen)
	defer server.Close()

	c, err := DialWS(context.Background(), wsURL(server))
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()

	resp, err := c.SendRawTransaction(ctx, "abcd")
	require.NoError(t, err)
	require.Equal(t, "sendrawtransaction", resp.Action)
	req := <-seen
	require.Equal(t, "abcd", req["Data"])
	require.Equal(t, "1.0.0", req["Version"])
	require.NotEmpty(t, req["Id"])

	resp, err = c.GetStorage(ctx, codeHash, "6b6579")
	require.NoError(t, err)
	require.Equal(t, "getstorage", resp.Action)
	req = <-seen
	require.Equal(t, codeHash, req["Hash"])
	require.Equal(t, "6b6579", req["Key"])

	_, err = c.GetContract(ctx, codeHash)
	require.NoError(t, err)
	require.Equal(t, "1", (<-seen)["Raw"])

	_, err = c.GetContractJSON(ctx, codeHash)
	require.NoError(t, err)
	require.Equal(t, "0", (<-seen)["Raw"])
}

func TestWSClient_ConcurrentCalls(t *testing.T) {
	server := newWSNode(t, nil)
	defer server.Close()

	c, err := DialWS(context.Background(), wsURL(server))
	require.NoError(t, err)
	defer c.Close()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := c.GetContractJSON(context.Background(), codeHash)
			assert.NoError(t, err)
			assert.Equal(t, "getcontract", resp.Action)
		}()
	}
	wg.Wait()
}

func TestWSClient_ContextCancel(t *testing.T) {
	server := newWSNode(t, nil)
	defer server.Close()

	c, err := DialWS(context.Background(), wsURL(server))
	require.NoError(t, err)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err = c.call(ctx, map[string]interface{}{"Action": "hang"})
	require.Error(t, err)
	require.True(t, errors.Is(err, contract.ErrSubmission))
	require.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestWSClient_Closed(t *testing.T) {
	server := newWSNode(t, nil)
	defer server.Close()

	c, err := DialWS(context.Background(), wsURL(server))
	require.NoError(t, err)
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	require.Eventually(t, func() bool {
		_, err := c.SendRawTransaction(context.Background(), "00")
		return errors.Is(err, contract.ErrSubmission)
	}, time.Second, 10*time.Millisecond)
}

func TestDial(t *testing.T) {
	ctx := context.Background()

	c, err := Dial(ctx, "http://localhost:20334/api/v1")
	require.NoError(t, err)
	rest, ok := c.(*RestClient)
	require.True(t, ok)
	require.Equal(t, "http://localhost:20334", rest.Endpoint())

	c, err = Dial(ctx, "http://localhost:20336")
	require.NoError(t, err)
	require.IsType(t, &RPCClient{}, c)

	server := newWSNode(t, nil)
	defer server.Close()
	c, err = Dial(ctx, wsURL(server))
	require.NoError(t, err)
	require.IsType(t, &WSClient{}, c)
	require.NoError(t, Close(c))

	_, err = Dial(ctx, "ftp://localhost")
	require.Error(t, err)
	_, err = Dial(ctx, "localhost:20336")
	require.Error(t, err)
}
