package types

import (
	"bytes"
	"fmt"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
)

// Wire layout of a sponsored transaction: a flat list of byte strings in
// fixed positional order. payerUrl is pinned to an RLP string of the URL's
// UTF-8 bytes.
const (
	fieldChainID = iota
	fieldNonce
	fieldTipCap
	fieldFeeCap
	fieldGasPrice
	fieldGasLimit
	fieldTo
	fieldValue
	fieldData
	fieldPayerV
	fieldPayerR
	fieldPayerS
	fieldExpiredTime
	fieldV
	fieldR
	fieldS
	fieldPayerURL
	numTxFields
)

// minTxFields is the shortest accepted wire sequence; trailing positions
// decode as absent.
const minTxFields = 11

// numSigFields is the length of the signable prefix: chainId through
// expiredTime, excluding the sender signature triple and payerUrl.
const numSigFields = fieldExpiredTime + 1

// strictIntFields are the positions whose encoding must be canonical: any
// leading zero byte is rejected at decode time.
var strictIntFields = []struct {
	name string
	idx  int
}{
	{"chainId", fieldChainID},
	{"nonce", fieldNonce},
	{"gasPrice", fieldGasPrice},
	{"gasLimit", fieldGasLimit},
	{"payerV", fieldPayerV},
	{"payerR", fieldPayerR},
	{"payerS", fieldPayerS},
	{"expiredTime", fieldExpiredTime},
}

// bigToCanonical returns the unpadded big-endian encoding of i. Zero and nil
// encode as the empty string.
func bigToCanonical(i *big.Int) []byte {
	if i == nil {
		return []byte{}
	}
	return i.Bytes()
}

// rawFields renders the fixed-order canonical field sequence.
func (tx *SponsoredTx) rawFields() [][]byte {
	fields := make([][]byte, numTxFields)
	fields[fieldChainID] = bigToCanonical(tx.ChainID)
	fields[fieldNonce] = bigToCanonical(tx.Nonce)
	fields[fieldTipCap] = bigToCanonical(tx.TipCap)
	fields[fieldFeeCap] = bigToCanonical(tx.FeeCap)
	fields[fieldGasPrice] = bigToCanonical(tx.GasPrice)
	fields[fieldGasLimit] = bigToCanonical(tx.GasLimit)
	if tx.To != nil {
		fields[fieldTo] = tx.To.Bytes()
	} else {
		fields[fieldTo] = []byte{}
	}
	fields[fieldValue] = bigToCanonical(tx.Value)
	fields[fieldData] = common.CopyBytes(tx.Data)
	if fields[fieldData] == nil {
		fields[fieldData] = []byte{}
	}
	fields[fieldPayerV] = bigToCanonical(tx.PayerV)
	fields[fieldPayerR] = bigToCanonical(tx.PayerR)
	fields[fieldPayerS] = bigToCanonical(tx.PayerS)
	fields[fieldExpiredTime] = bigToCanonical(tx.ExpiredTime)
	fields[fieldV] = bigToCanonical(tx.V)
	fields[fieldR] = bigToCanonical(tx.R)
	fields[fieldS] = bigToCanonical(tx.S)
	fields[fieldPayerURL] = []byte(tx.PayerURL)
	return fields
}

// sigFields is the signable prefix of rawFields.
func (tx *SponsoredTx) sigFields() [][]byte {
	return tx.rawFields()[:numSigFields]
}

// DecodeSponsoredTx decodes the canonical wire encoding produced by
// MarshalBinary. The payload must be a flat list; a non-list payload and a
// nested list in any scalar position are both rejected.
func DecodeSponsoredTx(b []byte) (*Transaction, error) {
	s := rlp.NewStream(bytes.NewReader(b), uint64(len(b)))
	kind, _, err := s.Kind()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputNotList, err)
	}
	if kind != rlp.List {
		return nil, ErrInputNotList
	}
	if _, err := s.List(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputNotList, err)
	}
	var values [][]byte
	for i := 0; ; i++ {
		kind, _, err := s.Kind()
		if err == rlp.EOL {
			break
		}
		if err != nil {
			return nil, err
		}
		if kind == rlp.List {
			switch i {
			case fieldChainID:
				return nil, fmt.Errorf("%w: chainId must be a scalar", ErrInputNotList)
			case fieldV:
				return nil, fmt.Errorf("%w: v must be a scalar", ErrInputNotList)
			default:
				return nil, fmt.Errorf("%w: field %d must be a byte string", ErrInputNotList, i)
			}
		}
		val, err := s.Bytes()
		if err != nil {
			return nil, err
		}
		values = append(values, val)
	}
	if err := s.ListEnd(); err != nil {
		return nil, err
	}
	if _, _, err := s.Kind(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing bytes after transaction", ErrInputNotList)
	}
	return SponsoredTxFromValues(values)
}

// SponsoredTxFromValues assembles a transaction from an already-parsed
// positional byte-string sequence. The accepted arity is [minTxFields,
// numTxFields]; missing trailing positions are treated as absent, which
// coerces the optional fee fields to zero.
func SponsoredTxFromValues(values [][]byte) (*Transaction, error) {
	if len(values) < minTxFields || len(values) > numTxFields {
		return nil, fmt.Errorf("%w: got %d, want %d to %d", ErrUnexpectedFieldCount, len(values), minTxFields, numTxFields)
	}
	field := func(i int) []byte {
		if i < len(values) {
			return values[i]
		}
		return nil
	}
	for _, f := range strictIntFields {
		if err := checkCanonicalInt(f.name, field(f.idx)); err != nil {
			return nil, err
		}
	}
	to, err := bytesToAddress(field(fieldTo))
	if err != nil {
		return nil, err
	}
	inner := &SponsoredTx{
		ChainID:     new(big.Int).SetBytes(field(fieldChainID)),
		Nonce:       new(big.Int).SetBytes(field(fieldNonce)),
		TipCap:      new(big.Int).SetBytes(field(fieldTipCap)),
		FeeCap:      new(big.Int).SetBytes(field(fieldFeeCap)),
		GasPrice:    new(big.Int).SetBytes(field(fieldGasPrice)),
		GasLimit:    new(big.Int).SetBytes(field(fieldGasLimit)),
		To:          to,
		Value:       new(big.Int).SetBytes(field(fieldValue)),
		Data:        common.CopyBytes(field(fieldData)),
		PayerV:      new(big.Int).SetBytes(field(fieldPayerV)),
		PayerR:      new(big.Int).SetBytes(field(fieldPayerR)),
		PayerS:      new(big.Int).SetBytes(field(fieldPayerS)),
		ExpiredTime: new(big.Int).SetBytes(field(fieldExpiredTime)),
		PayerURL:    string(field(fieldPayerURL)),
	}
	// An empty sender signature position decodes as absent. The constructor
	// rejects a partially present triple, so no partial state can escape.
	if v := field(fieldV); len(v) > 0 {
		inner.V = new(big.Int).SetBytes(v)
	}
	if r := field(fieldR); len(r) > 0 {
		inner.R = new(big.Int).SetBytes(r)
	}
	if sv := field(fieldS); len(sv) > 0 {
		inner.S = new(big.Int).SetBytes(sv)
	}
	return NewTx(inner)
}

// bytesToAddress maps the wire form of the to field: empty means contract
// creation, otherwise exactly 20 bytes.
func bytesToAddress(b []byte) (*common.Address, error) {
	if len(b) == 0 {
		return nil, nil
	}
	if len(b) != common.AddressLength {
		return nil, fmt.Errorf("invalid to address: want %d bytes, got %d", common.AddressLength, len(b))
	}
	addr := common.BytesToAddress(b)
	return &addr, nil
}
