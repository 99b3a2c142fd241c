// pkg/address/address.go

// Package address implements the 20-byte account/contract address used by
// invocation transactions, its base58check wallet encoding and the
// code-hash-to-address derivation used for deployed contracts.
package address

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/ethereum/go-ethereum/crypto"
)

// Length is the size of an address in bytes.
const Length = 20

// Version is the base58check version byte of wallet addresses.
// Encoded addresses with this version always start with "A".
const Version byte = 0x17

// Sentinel errors for address decoding.
var (
	// ErrInvalidLength indicates the decoded payload is not 20 bytes long.
	ErrInvalidLength = errors.New("invalid address length")

	// ErrInvalidVersion indicates a base58 address with an unexpected version byte.
	ErrInvalidVersion = errors.New("invalid address version")

	// ErrInvalidEncoding indicates malformed base58 or hex input.
	ErrInvalidEncoding = errors.New("invalid address encoding")
)

// Address is a 20-byte account or contract address.
type Address [Length]byte

// Zero is the empty address.
var Zero Address

// FromBytes copies b into an Address.
func FromBytes(b []byte) (Address, error) {
	var a Address
	if len(b) != Length {
		return a, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidLength, len(b), Length)
	}
	copy(a[:], b)
	return a, nil
}

// FromHex decodes a hex string (with or without 0x prefix) into an Address.
// The bytes are taken in the order they appear in the string.
func FromHex(s string) (Address, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return Zero, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	return FromBytes(b)
}

// FromBase58 decodes a base58check wallet address.
func FromBase58(s string) (Address, error) {
	payload, version, err := base58.CheckDecode(s)
	if err != nil {
		return Zero, fmt.Errorf("%w: %s: %v", ErrInvalidEncoding, s, err)
	}
	if version != Version {
		return Zero, fmt.Errorf("%w: 0x%02x (want 0x%02x)", ErrInvalidVersion, version, Version)
	}
	return FromBytes(payload)
}

// FromCodeHash derives a contract address from its hex code hash.
// The hash bytes are reversed before being interpreted as an address,
// matching the byte order nodes use when indexing deployed contracts.
func FromCodeHash(codeHash string) (Address, error) {
	reversed, err := ReverseHex(codeHash)
	if err != nil {
		return Zero, err
	}
	return FromHex(reversed)
}

// FromPubKey derives the address controlled by a secp256k1 public key.
// Both compressed (33 bytes) and uncompressed (65 bytes) keys are accepted.
func FromPubKey(pub []byte) (Address, error) {
	key := pub
	if len(pub) == 33 {
		k, derr := crypto.DecompressPubkey(pub)
		if derr != nil {
			return Zero, fmt.Errorf("decompress public key: %w", derr)
		}
		key = crypto.FromECDSAPub(k)
	}
	k, err := crypto.UnmarshalPubkey(key)
	if err != nil {
		return Zero, fmt.Errorf("unmarshal public key: %w", err)
	}
	return Address(crypto.PubkeyToAddress(*k)), nil
}

// ReverseHex reverses the byte order of a hex string.
// A leading 0x prefix is dropped.
func ReverseHex(s string) (string, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return hex.EncodeToString(b), nil
}

// Base58 returns the base58check wallet encoding of the address.
func (a Address) Base58() string {
	return base58.CheckEncode(a[:], Version)
}

// Hex returns the lowercase hex encoding of the address bytes.
func (a Address) Hex() string {
	return hex.EncodeToString(a[:])
}

// IsZero reports whether a is the zero address.
func (a Address) IsZero() bool {
	return a == Zero
}

// String implements fmt.Stringer using the wallet encoding.
func (a Address) String() string {
	return a.Base58()
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.Base58()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	decoded, err := FromBase58(string(text))
	if err != nil {
		return err
	}
	*a = decoded
	return nil
}
