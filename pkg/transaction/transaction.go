// pkg/transaction/transaction.go

// Package transaction models contract invocation transactions and their
// wire encoding, signing and verification.
//
// A transaction is RLP-encoded. The signing digest is the Keccak-256 hash of
// the RLP encoding of every field except the signatures; signatures are
// 65-byte recoverable secp256k1 signatures over that digest.
package transaction

import (
	"crypto/ecdsa"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/altuslabsxyz/typetology/pkg/address"
)

const (
	// Version is the transaction format version.
	Version byte = 0x00

	// TxTypeInvoke marks a contract invocation transaction.
	TxTypeInvoke byte = 0xd1
)

var (
	// ErrUnsigned indicates a transaction without signatures.
	ErrUnsigned = errors.New("transaction is not signed")

	// ErrInvalidSignature indicates a signature that does not verify.
	ErrInvalidSignature = errors.New("invalid transaction signature")
)

// Param is one named, typed argument of an invocation.
// Value holds the canonical JSON encoding of the argument.
type Param struct {
	Name  string
	Type  string
	Value []byte
}

// InvokeCode is the payload of an invocation transaction.
type InvokeCode struct {
	Contract address.Address
	Function string
	Params   []Param
}

// Sig is a signature together with the compressed public key that produced it.
type Sig struct {
	PubKey    []byte
	Signature []byte
}

// Transaction is a contract invocation transaction.
type Transaction struct {
	Version  byte
	TxType   byte
	Nonce    uint32
	GasPrice uint64
	GasLimit uint64
	Payer    address.Address
	Payload  InvokeCode
	Sigs     []Sig
}

// unsigned is the portion of a transaction covered by signatures.
type unsigned struct {
	Version  byte
	TxType   byte
	Nonce    uint32
	GasPrice uint64
	GasLimit uint64
	Payer    address.Address
	Payload  InvokeCode
}

// NewInvoke builds an unsigned invocation of function on contract.
// A nil payer leaves the payer field empty.
func NewInvoke(function string, params []Param, contract address.Address, gasPrice, gasLimit uint64, payer *address.Address) (*Transaction, error) {
	if function == "" {
		return nil, fmt.Errorf("function name is required")
	}

	nonce, err := randomNonce()
	if err != nil {
		return nil, err
	}

	tx := &Transaction{
		Version:  Version,
		TxType:   TxTypeInvoke,
		Nonce:    nonce,
		GasPrice: gasPrice,
		GasLimit: gasLimit,
		Payload: InvokeCode{
			Contract: contract,
			Function: function,
			Params:   append([]Param(nil), params...),
		},
	}
	if payer != nil {
		tx.Payer = *payer
	}
	return tx, nil
}

func randomNonce() (uint32, error) {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

// SigningHash returns the digest covered by signatures.
func (tx *Transaction) SigningHash() (common.Hash, error) {
	enc, err := rlp.EncodeToBytes(&unsigned{
		Version:  tx.Version,
		TxType:   tx.TxType,
		Nonce:    tx.Nonce,
		GasPrice: tx.GasPrice,
		GasLimit: tx.GasLimit,
		Payer:    tx.Payer,
		Payload:  tx.Payload,
	})
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to encode transaction: %w", err)
	}
	return crypto.Keccak256Hash(enc), nil
}

// Sign signs the transaction with key, replacing any existing signatures.
func (tx *Transaction) Sign(key *ecdsa.PrivateKey) error {
	if key == nil {
		return fmt.Errorf("private key is nil")
	}

	digest, err := tx.SigningHash()
	if err != nil {
		return err
	}

	sig, err := crypto.Sign(digest.Bytes(), key)
	if err != nil {
		return fmt.Errorf("failed to sign transaction: %w", err)
	}

	tx.Sigs = []Sig{{
		PubKey:    crypto.CompressPubkey(&key.PublicKey),
		Signature: sig,
	}}
	return nil
}

// Verify checks every signature against the signing digest.
func (tx *Transaction) Verify() error {
	if len(tx.Sigs) == 0 {
		return ErrUnsigned
	}

	digest, err := tx.SigningHash()
	if err != nil {
		return err
	}

	for i, s := range tx.Sigs {
		if len(s.Signature) != crypto.SignatureLength {
			return fmt.Errorf("%w: signature #%d has length %d", ErrInvalidSignature, i, len(s.Signature))
		}
		if !crypto.VerifySignature(s.PubKey, digest.Bytes(), s.Signature[:crypto.RecoveryIDOffset]) {
			return fmt.Errorf("%w: signature #%d", ErrInvalidSignature, i)
		}
	}
	return nil
}

// Signers returns the addresses of the keys that signed the transaction.
func (tx *Transaction) Signers() ([]address.Address, error) {
	out := make([]address.Address, 0, len(tx.Sigs))
	for _, s := range tx.Sigs {
		addr, err := address.FromPubKey(s.PubKey)
		if err != nil {
			return nil, err
		}
		out = append(out, addr)
	}
	return out, nil
}

// Serialize returns the RLP encoding of the transaction.
func (tx *Transaction) Serialize() ([]byte, error) {
	enc, err := rlp.EncodeToBytes(tx)
	if err != nil {
		return nil, fmt.Errorf("failed to encode transaction: %w", err)
	}
	return enc, nil
}

// Hex returns the lowercase hex encoding of Serialize, without 0x prefix.
func (tx *Transaction) Hex() (string, error) {
	enc, err := tx.Serialize()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(enc), nil
}

// Hash returns the Keccak-256 hash of the serialized transaction.
func (tx *Transaction) Hash() (common.Hash, error) {
	enc, err := tx.Serialize()
	if err != nil {
		return common.Hash{}, err
	}
	return crypto.Keccak256Hash(enc), nil
}

// Decode parses a serialized transaction.
func Decode(data []byte) (*Transaction, error) {
	var tx Transaction
	if err := rlp.DecodeBytes(data, &tx); err != nil {
		return nil, fmt.Errorf("failed to decode transaction: %w", err)
	}
	if tx.TxType != TxTypeInvoke {
		return nil, fmt.Errorf("unsupported transaction type 0x%02x", tx.TxType)
	}
	return &tx, nil
}

// DecodeHex parses a hex-encoded serialized transaction.
func DecodeHex(s string) (*Transaction, error) {
	data, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to decode transaction hex: %w", err)
	}
	return Decode(data)
}

// ParsePrivateKey parses a hex-encoded secp256k1 private key.
func ParsePrivateKey(s string) (*ecdsa.PrivateKey, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(s), "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return key, nil
}
