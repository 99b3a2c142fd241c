package contract

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altuslabsxyz/typetology/pkg/address"
	"github.com/altuslabsxyz/typetology/pkg/transaction"
)

func TestDeferredTx_Accessors(t *testing.T) {
	c := newTestContract(t, &spyClient{})
	d := NewDeferredTx(c, "Put", RawBytes([]byte{0x01}), int64(7))

	require.Equal(t, "Put", d.Function())
	require.Len(t, d.Args(), 2)
}

func TestDeferredTx_ArityPreserved(t *testing.T) {
	c := newTestContract(t, &spyClient{})
	params, err := NewDeferredTx(c, "Put", "abcd", 9).Params()
	require.NoError(t, err)

	require.Len(t, params, 2)
	require.Equal(t, "key", params[0].Name)
	require.Equal(t, "ByteArray", params[0].Type)
	require.Equal(t, "value", params[1].Name)
	require.Equal(t, "Integer", params[1].Type)
	require.JSONEq(t, `9`, string(params[1].Value))
}

func TestDeferredTx_ByteArrayEncoding(t *testing.T) {
	c := newTestContract(t, &spyClient{})

	tests := []struct {
		name string
		arg  interface{}
		want string
	}{
		{name: "raw bytes variant", arg: RawBytes([]byte{0xAB, 0xCD}), want: `"abcd"`},
		{name: "plain byte slice", arg: []byte{0xAB, 0xCD}, want: `"abcd"`},
		{name: "string variant", arg: ByteString("ABCD"), want: `"ABCD"`},
		{name: "plain string", arg: "not-hex", want: `"not-hex"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := NewDeferredTx(c, "Put", tt.arg, 1).Params()
			require.NoError(t, err)
			require.JSONEq(t, tt.want, string(params[0].Value))
		})
	}
}

func TestDeferredTx_ConversionErrors(t *testing.T) {
	tests := []struct {
		name     string
		function string
		args     []interface{}
		errMsg   string
	}{
		{name: "too few", function: "Put", args: []interface{}{"ab"}, errMsg: "expected 2 arguments, got 1"},
		{name: "too many", function: "Ping", args: []interface{}{1}, errMsg: "expected 0 arguments, got 1"},
		{name: "string for integer", function: "Put", args: []interface{}{"ab", "1"}, errMsg: "cannot use string as Integer"},
		{name: "int for bytearray", function: "Put", args: []interface{}{3, 1}, errMsg: "cannot use int as ByteArray"},
		{name: "int for string", function: "Query", args: []interface{}{5}, errMsg: "cannot use int as String"},
		{name: "nil for string", function: "Query", args: []interface{}{nil}, errMsg: "nil value"},
		{name: "strings for int array", function: "SetFlags", args: []interface{}{true, []string{"a"}}, errMsg: "cannot use []string as IntArray"},
		{name: "int for boolean", function: "SetFlags", args: []interface{}{1, []int64{1}}, errMsg: "cannot use int as Boolean"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spy := &spyClient{}
			d := NewDeferredTx(newTestContract(t, spy), tt.function, tt.args...)

			_, err := d.Send(context.Background(), TxParams{PrivateKey: PrivateKeyHex(testKeyHex)})
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrConversion))
			require.Contains(t, err.Error(), tt.errMsg)
			require.Zero(t, spy.calls())
		})
	}
}

func TestDeferredTx_IntegerWidths(t *testing.T) {
	c := newTestContract(t, &spyClient{})

	for _, v := range []interface{}{int8(7), uint8(7), uint16(7), int32(7), uint64(7), 7} {
		params, err := NewDeferredTx(c, "Put", "k", v).Params()
		require.NoError(t, err, "%T", v)
		require.JSONEq(t, `7`, string(params[1].Value))
	}

	params, err := NewDeferredTx(c, "SetFlags", true, [2]uint8{1, 2}).Params()
	require.NoError(t, err)
	require.JSONEq(t, `[1,2]`, string(params[1].Value))

	_, err = NewDeferredTx(c, "SetFlags", true, []byte{1, 2}).Params()
	require.True(t, errors.Is(err, ErrConversion))
	require.Contains(t, err.Error(), "cannot use []uint8 as IntArray")
}

func TestDeferredTx_NilContract(t *testing.T) {
	d := NewDeferredTx(nil, "Query", "x")

	_, err := d.Params()
	require.ErrorContains(t, err, "has no contract")

	_, err = d.Build(TxParams{})
	require.ErrorContains(t, err, "has no contract")

	_, err = d.Send(context.Background(), TxParams{PrivateKey: PrivateKeyHex(testKeyHex)})
	require.ErrorContains(t, err, "has no contract")
}

func TestDeferredTx_OtherKindsPassThrough(t *testing.T) {
	c := newTestContract(t, &spyClient{})
	params, err := NewDeferredTx(c, "Any", map[string]interface{}{"a": 1}).Params()
	require.NoError(t, err)
	require.JSONEq(t, `{"a":1}`, string(params[0].Value))

	params, err = NewDeferredTx(c, "SetFlags", false, []int64{1, 2, 3}).Params()
	require.NoError(t, err)
	require.JSONEq(t, `false`, string(params[0].Value))
	require.JSONEq(t, `[1,2,3]`, string(params[1].Value))
}

func TestDeferredTx_UnknownFunction(t *testing.T) {
	spy := &spyClient{}
	c := newTestContract(t, spy)

	resp, err := NewDeferredTx(c, "Nope").Send(context.Background(), TxParams{PrivateKey: PrivateKeyHex(testKeyHex)})
	require.Error(t, err)
	require.Nil(t, resp)
	require.True(t, errors.Is(err, ErrLookup))

	var lerr *LookupError
	require.True(t, errors.As(err, &lerr))
	require.Equal(t, "Nope", lerr.Function)
	require.Zero(t, spy.calls())
}

func TestDeferredTx_GasDefaults(t *testing.T) {
	c := newTestContract(t, &spyClient{})

	tx, err := NewDeferredTx(c, "Ping").Build(TxParams{})
	require.NoError(t, err)
	require.Equal(t, uint64(500), tx.GasPrice)
	require.Equal(t, uint64(20000), tx.GasLimit)
	require.True(t, tx.Payer.IsZero())

	tx, err = NewDeferredTx(c, "Ping").Build(TxParams{GasPrice: "2500", GasLimit: "30000"})
	require.NoError(t, err)
	require.Equal(t, uint64(2500), tx.GasPrice)
	require.Equal(t, uint64(30000), tx.GasLimit)
}

func TestDeferredTx_InvalidGas(t *testing.T) {
	spy := &spyClient{}
	c := newTestContract(t, spy)

	for _, p := range []TxParams{
		{GasPrice: "-1"},
		{GasLimit: "abc"},
		{GasPrice: "18446744073709551616"},
	} {
		p.PrivateKey = PrivateKeyHex(testKeyHex)
		_, err := NewDeferredTx(c, "Ping").Send(context.Background(), p)
		require.Error(t, err)
	}
	require.Zero(t, spy.calls())
}

func TestDeferredTx_Payer(t *testing.T) {
	c := newTestContract(t, &spyClient{})
	want, err := address.FromBase58("AazEvfQPcQ2GEFFPLF1ZLwQ7K5jDn81hve")
	require.NoError(t, err)

	tx, err := NewDeferredTx(c, "Ping").Build(TxParams{Payer: Base58Address("AazEvfQPcQ2GEFFPLF1ZLwQ7K5jDn81hve")})
	require.NoError(t, err)
	require.Equal(t, want, tx.Payer)

	tx, err = NewDeferredTx(c, "Ping").Build(TxParams{Payer: TypedAddress(want)})
	require.NoError(t, err)
	require.Equal(t, want, tx.Payer)

	_, err = NewDeferredTx(c, "Ping").Build(TxParams{Payer: Base58Address("bogus")})
	require.Error(t, err)
}

func TestDeferredTx_MissingKey(t *testing.T) {
	spy := &spyClient{}
	_, err := NewDeferredTx(newTestContract(t, spy), "Ping").Send(context.Background(), TxParams{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "private key is required")
	require.Zero(t, spy.calls())
}

func TestDeferredTx_SendEndToEnd(t *testing.T) {
	spy := &spyClient{}
	c := newTestContract(t, spy)

	resp, err := NewDeferredTx(c, "Query", "hello").Send(context.Background(), TxParams{
		PrivateKey: PrivateKeyHex(testKeyHex),
	})
	require.NoError(t, err)
	require.Equal(t, "sendrawtransaction", resp.Action)
	require.Len(t, spy.sent, 1)

	tx, err := transaction.DecodeHex(spy.sent[0])
	require.NoError(t, err)
	require.NoError(t, tx.Verify())
	require.Equal(t, "Query", tx.Payload.Function)
	addr, err := c.Address()
	require.NoError(t, err)
	require.Equal(t, addr, tx.Payload.Contract)
	require.Equal(t, uint64(500), tx.GasPrice)
	require.Equal(t, uint64(20000), tx.GasLimit)
	require.Len(t, tx.Payload.Params, 1)
	require.Equal(t, "key", tx.Payload.Params[0].Name)
	require.Equal(t, "String", tx.Payload.Params[0].Type)
	require.JSONEq(t, `"hello"`, string(tx.Payload.Params[0].Value))

	key, err := transaction.ParsePrivateKey(testKeyHex)
	require.NoError(t, err)
	require.Equal(t, crypto.CompressPubkey(&key.PublicKey), tx.Sigs[0].PubKey)
}

func TestDeferredTx_ZeroParameterFunction(t *testing.T) {
	spy := &spyClient{}
	c := newTestContract(t, spy)

	_, err := NewDeferredTx(c, "Ping").Send(context.Background(), TxParams{PrivateKey: PrivateKeyHex(testKeyHex)})
	require.NoError(t, err)

	tx, err := transaction.DecodeHex(spy.sent[0])
	require.NoError(t, err)
	require.Equal(t, "Ping", tx.Payload.Function)
	require.Empty(t, tx.Payload.Params)
}

func TestDeferredTx_ClientOverride(t *testing.T) {
	bound := &spyClient{}
	override := &spyClient{}
	c := newTestContract(t, bound)

	key, err := transaction.ParsePrivateKey(testKeyHex)
	require.NoError(t, err)

	_, err = NewDeferredTx(c, "Ping").Send(context.Background(), TxParams{PrivateKey: PrivateKey(key)}, WithClient(override))
	require.NoError(t, err)
	require.Zero(t, bound.calls())
	require.Equal(t, 1, override.calls())
}

func TestDeferredTx_SubmissionErrorUnchanged(t *testing.T) {
	transportErr := &SubmissionError{Op: "POST", Endpoint: "http://node", Err: errors.New("connection refused")}
	spy := &spyClient{sendErr: transportErr}

	_, err := NewDeferredTx(newTestContract(t, spy), "Ping").Send(context.Background(), TxParams{PrivateKey: PrivateKeyHex(testKeyHex)})
	require.Same(t, transportErr, err)
	require.True(t, errors.Is(err, ErrSubmission))
}

func TestDeferredTx_NodeErrorReturnedInResponse(t *testing.T) {
	spy := &spyClient{sendResp: &Response{Action: "sendrawtransaction", Error: 43001, Desc: "INVALID TRANSACTION"}}

	resp, err := NewDeferredTx(newTestContract(t, spy), "Ping").Send(context.Background(), TxParams{PrivateKey: PrivateKeyHex(testKeyHex)})
	require.NoError(t, err)
	require.False(t, resp.OK())
	require.Equal(t, int64(43001), resp.Error)
}

func TestDeferredTx_RepeatedAndConcurrentSend(t *testing.T) {
	spy := &spyClient{}
	d := NewDeferredTx(newTestContract(t, spy), "Query", "hello")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := d.Send(context.Background(), TxParams{PrivateKey: PrivateKeyHex(testKeyHex)})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	require.Len(t, spy.sent, 8)
}
