package contract

import (
	"crypto/ecdsa"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"cosmossdk.io/math"

	"github.com/altuslabsxyz/typetology/pkg/address"
	"github.com/altuslabsxyz/typetology/pkg/transaction"
)

// TxParams carries the per-send signing and fee settings.
type TxParams struct {
	// Payer pays the transaction fee. The zero value means no payer.
	Payer AddressRef

	// PrivateKey signs the transaction. Required.
	PrivateKey KeyRef

	// GasPrice and GasLimit are unsigned decimal strings.
	// Empty values fall back to DefaultGasPrice and DefaultGasLimit.
	GasPrice string
	GasLimit string
}

// AddressRef is an address given either in wallet (base58) form or typed.
type AddressRef struct {
	encoded string
	typed   *address.Address
}

// Base58Address refers to an address by its wallet encoding.
func Base58Address(s string) AddressRef {
	return AddressRef{encoded: s}
}

// TypedAddress refers to an already decoded address.
func TypedAddress(a address.Address) AddressRef {
	return AddressRef{typed: &a}
}

// IsZero reports whether no address was supplied.
func (r AddressRef) IsZero() bool {
	return r.typed == nil && r.encoded == ""
}

// Resolve returns the referenced address, or nil for the zero value.
func (r AddressRef) Resolve() (*address.Address, error) {
	switch {
	case r.typed != nil:
		a := *r.typed
		return &a, nil
	case r.encoded != "":
		a, err := address.FromBase58(r.encoded)
		if err != nil {
			return nil, fmt.Errorf("invalid payer address: %w", err)
		}
		return &a, nil
	default:
		return nil, nil
	}
}

// KeyRef is a private key given either as hex or typed.
type KeyRef struct {
	encoded string
	typed   *ecdsa.PrivateKey
}

// PrivateKeyHex refers to a hex-encoded secp256k1 private key.
func PrivateKeyHex(s string) KeyRef {
	return KeyRef{encoded: s}
}

// PrivateKey refers to a parsed private key.
func PrivateKey(k *ecdsa.PrivateKey) KeyRef {
	return KeyRef{typed: k}
}

// IsZero reports whether no key was supplied.
func (r KeyRef) IsZero() bool {
	return r.typed == nil && r.encoded == ""
}

// Resolve returns the referenced key.
func (r KeyRef) Resolve() (*ecdsa.PrivateKey, error) {
	switch {
	case r.typed != nil:
		return r.typed, nil
	case r.encoded != "":
		return transaction.ParsePrivateKey(r.encoded)
	default:
		return nil, fmt.Errorf("private key is required")
	}
}

// ByteArray is an argument for a ByteArray parameter: either raw bytes,
// hex-encoded at send time, or a string passed through unchanged.
type ByteArray struct {
	raw   []byte
	str   string
	isRaw bool
}

// RawBytes wraps raw bytes.
func RawBytes(b []byte) ByteArray {
	return ByteArray{raw: append([]byte(nil), b...), isRaw: true}
}

// ByteString wraps a string, typically already hex-encoded.
func ByteString(s string) ByteArray {
	return ByteArray{str: s}
}

// IsRaw reports whether the value holds raw bytes.
func (b ByteArray) IsRaw() bool {
	return b.isRaw
}

// Value returns the value as submitted: lowercase hex for raw bytes,
// the string unchanged otherwise.
func (b ByteArray) Value() string {
	if b.isRaw {
		return hex.EncodeToString(b.raw)
	}
	return b.str
}

// String implements fmt.Stringer.
func (b ByteArray) String() string {
	return b.Value()
}

// MarshalJSON encodes the submitted value as a JSON string.
func (b ByteArray) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Value())
}

// parseGas parses an unsigned decimal gas value, applying def when s is empty.
func parseGas(field, s, def string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		s = def
	}
	u, err := math.ParseUint(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", field, s, err)
	}
	if !u.BigInt().IsUint64() {
		return 0, fmt.Errorf("invalid %s %q: exceeds 64 bits", field, s)
	}
	return u.Uint64(), nil
}
