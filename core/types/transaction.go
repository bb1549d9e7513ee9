package types

import (
	"errors"
	"math/big"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
)

// Transaction types.
const (
	SponsoredTxType = 0x10
)

var (
	ErrInvalidSig           = errors.New("invalid transaction v, r, s values")
	ErrTxTypeNotSupported   = errors.New("transaction type not supported")
	ErrNotSigned            = errors.New("transaction is not signed")
	ErrInputNotList         = errors.New("invalid serialized input: not an array")
	ErrUnexpectedFieldCount = errors.New("invalid transaction: unexpected field count")
)

// Transaction is a chain transaction. It is immutable once constructed: the
// payload is only reachable through accessors that hand out copies, and every
// transformation (signing) yields a new Transaction.
type Transaction struct {
	inner TxData

	// caches
	hash atomic.Value
	size atomic.Value
	from atomic.Value
}

// TxData is the underlying data of a transaction. It carries the fields every
// variant shares; variant-specific fields layer on top via extension
// interfaces such as sponsoredData.
type TxData interface {
	txType() byte
	copy() TxData // creates a deep copy and initializes all fields

	chainID() *big.Int
	nonce() *big.Int
	gasTipCap() *big.Int
	gasFeeCap() *big.Int
	gasPrice() *big.Int
	gasLimit() *big.Int
	to() *common.Address
	value() *big.Int
	data() []byte

	rawSignatureValues() (v, r, s *big.Int)
	setSignatureValues(v, r, s *big.Int)

	// rawFields renders the full canonical wire sequence; sigFields the
	// signable prefix of it.
	rawFields() [][]byte
	sigFields() [][]byte

	sanityCheck() error
}

// sponsoredData is implemented by payloads that carry a payer co-signature.
type sponsoredData interface {
	payerSignatureValues() (v, r, s *big.Int)
	expiredTime() *big.Int
	payerURL() string
}

// NewTx wraps a transaction payload. The payload is deep-copied and validated;
// no Transaction is returned for an invalid payload.
func NewTx(inner TxData) (*Transaction, error) {
	cpy := inner.copy()
	if err := cpy.sanityCheck(); err != nil {
		return nil, err
	}
	tx := new(Transaction)
	tx.setDecoded(cpy, 0)
	return tx, nil
}

// setDecoded sets the inner transaction and size after decoding.
func (tx *Transaction) setDecoded(inner TxData, size uint64) {
	tx.inner = inner
	if size > 0 {
		tx.size.Store(size)
	}
}

// Type returns the transaction type.
func (tx *Transaction) Type() byte { return tx.inner.txType() }

// ChainId returns the chain id of the transaction.
func (tx *Transaction) ChainId() *big.Int { return bigCopy(tx.inner.chainID()) }

// Nonce returns the sender account nonce of the transaction.
func (tx *Transaction) Nonce() *big.Int { return bigCopy(tx.inner.nonce()) }

// GasTipCap returns the maxPriorityFeePerGas of the transaction.
func (tx *Transaction) GasTipCap() *big.Int { return bigCopy(tx.inner.gasTipCap()) }

// GasFeeCap returns the maxFeePerGas of the transaction.
func (tx *Transaction) GasFeeCap() *big.Int { return bigCopy(tx.inner.gasFeeCap()) }

// GasPrice returns the legacy gas price of the transaction.
func (tx *Transaction) GasPrice() *big.Int { return bigCopy(tx.inner.gasPrice()) }

// GasLimit returns the gas limit of the transaction.
func (tx *Transaction) GasLimit() *big.Int { return bigCopy(tx.inner.gasLimit()) }

// To returns the recipient address of the transaction.
// For contract-creation transactions, To returns nil.
func (tx *Transaction) To() *common.Address { return copyAddressPtr(tx.inner.to()) }

// Value returns the ether amount of the transaction.
func (tx *Transaction) Value() *big.Int { return bigCopy(tx.inner.value()) }

// Data returns the input data of the transaction.
func (tx *Transaction) Data() []byte { return common.CopyBytes(tx.inner.data()) }

// RawSignatureValues returns the sender signature values. Every component is
// nil on an unsigned transaction.
func (tx *Transaction) RawSignatureValues() (v, r, s *big.Int) {
	v, r, s = tx.inner.rawSignatureValues()
	return bigCopy(v), bigCopy(r), bigCopy(s)
}

// IsSigned reports whether the sender signature triple is present. The triple
// is all-or-nothing; a partial triple never passes construction.
func (tx *Transaction) IsSigned() bool {
	v, r, s := tx.inner.rawSignatureValues()
	return v != nil && r != nil && s != nil
}

// PayerSignatureValues returns the payer co-signature values, or nils if the
// payload carries no payer signature.
func (tx *Transaction) PayerSignatureValues() (v, r, s *big.Int) {
	if sp, ok := tx.inner.(sponsoredData); ok {
		v, r, s = sp.payerSignatureValues()
		return bigCopy(v), bigCopy(r), bigCopy(s)
	}
	return nil, nil, nil
}

// ExpiredTime returns the signature validity deadline carried by the
// transaction. The core carries it opaquely; enforcement is external policy.
func (tx *Transaction) ExpiredTime() *big.Int {
	if sp, ok := tx.inner.(sponsoredData); ok {
		return bigCopy(sp.expiredTime())
	}
	return nil
}

// PayerURL returns the payer service endpoint carried by the transaction.
func (tx *Transaction) PayerURL() string {
	if sp, ok := tx.inner.(sponsoredData); ok {
		return sp.payerURL()
	}
	return ""
}

// RawFields returns the canonical ordered wire sequence of the transaction:
// every integer as its unpadded big-endian encoding (zero as the empty
// string), absent to/v/r/s as empty strings.
func (tx *Transaction) RawFields() [][]byte { return tx.inner.rawFields() }

// MarshalBinary returns the canonical wire encoding of the transaction: the
// list encoding of RawFields.
func (tx *Transaction) MarshalBinary() ([]byte, error) {
	return rlp.EncodeToBytes(tx.inner.rawFields())
}

// Hash returns the canonical transaction hash, computed over the full signed
// serialization by the legacy-format helpers. Hashing an unsigned transaction
// is an error.
func (tx *Transaction) Hash() (common.Hash, error) {
	if hash := tx.hash.Load(); hash != nil {
		return hash.(common.Hash), nil
	}
	h, err := LegacyHash(tx)
	if err != nil {
		return common.Hash{}, err
	}
	tx.hash.Store(h)
	return h, nil
}

// Size returns the encoded size of the transaction, cached after the first
// call.
func (tx *Transaction) Size() uint64 {
	if size := tx.size.Load(); size != nil {
		return size.(uint64)
	}
	enc, err := tx.MarshalBinary()
	if err != nil {
		return 0
	}
	size := uint64(len(enc))
	tx.size.Store(size)
	return size
}

// SigningMessage returns the type-tagged signing preimage: the transaction
// type byte followed by the list encoding of the signable fields (chainId
// through expiredTime, excluding the sender signature triple and payerUrl).
func (tx *Transaction) SigningMessage() ([]byte, error) {
	enc, err := rlp.EncodeToBytes(tx.inner.sigFields())
	if err != nil {
		return nil, err
	}
	return append([]byte{tx.Type()}, enc...), nil
}

// SigningHash returns the keccak256 hash of the length-prefix encoded signing
// preimage. This is the hash the sender's key actually signs.
func (tx *Transaction) SigningHash() common.Hash {
	msg, err := tx.SigningMessage()
	if err != nil {
		// [][]byte always encodes; reaching this means memory corruption.
		panic(err)
	}
	return rlpHash(msg)
}

// VerifyHash returns the hash used to verify the sender signature. It is the
// same value as SigningHash, but requires the transaction to be signed.
func (tx *Transaction) VerifyHash() (common.Hash, error) {
	if !tx.IsSigned() {
		return common.Hash{}, ErrNotSigned
	}
	return tx.SigningHash(), nil
}

// WithSignature returns a new transaction with the given raw signature
// installed through the signer, which applies the chain's replay-protection
// encoding. All other fields, the payer co-signature included, carry over
// unchanged; the receiver is left untouched.
func (tx *Transaction) WithSignature(signer Signer, sig []byte) (*Transaction, error) {
	r, s, v, err := signer.SignatureValues(tx, sig)
	if err != nil {
		return nil, err
	}
	cpy := tx.inner.copy()
	cpy.setSignatureValues(v, r, s)
	signed := new(Transaction)
	signed.setDecoded(cpy, 0)
	return signed, nil
}

func bigCopy(i *big.Int) *big.Int {
	if i == nil {
		return nil
	}
	return new(big.Int).Set(i)
}

func copyAddressPtr(a *common.Address) *common.Address {
	if a == nil {
		return nil
	}
	cpy := *a
	return &cpy
}
