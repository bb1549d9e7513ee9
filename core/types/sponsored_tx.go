package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// SponsoredTx is the payload of a sponsored transaction: a secondary party
// (the payer) co-signs to underwrite execution fees on behalf of the sender.
// The payer signature triple is always present on a well-formed payload; the
// sender triple is nil as a group until the transaction is signed.
type SponsoredTx struct {
	ChainID  *big.Int
	Nonce    *big.Int
	TipCap   *big.Int // a.k.a. maxPriorityFeePerGas, carried but not consumed here
	FeeCap   *big.Int // a.k.a. maxFeePerGas, carried but not consumed here
	GasPrice *big.Int
	GasLimit *big.Int
	To       *common.Address `rlp:"nil"` // nil means contract creation
	Value    *big.Int
	Data     []byte

	PayerV, PayerR, PayerS *big.Int
	ExpiredTime            *big.Int // signature validity deadline, enforced externally
	PayerURL               string   // payer service endpoint, carried opaquely

	// Sender signature values.
	V, R, S *big.Int
}

// copy creates a deep copy of the transaction data and initializes all fields.
func (tx *SponsoredTx) copy() TxData {
	cpy := &SponsoredTx{
		To:       copyAddressPtr(tx.To),
		Data:     common.CopyBytes(tx.Data),
		PayerURL: tx.PayerURL,

		// These are copied below.
		ChainID:     new(big.Int),
		Nonce:       new(big.Int),
		TipCap:      new(big.Int),
		FeeCap:      new(big.Int),
		GasPrice:    new(big.Int),
		GasLimit:    new(big.Int),
		Value:       new(big.Int),
		PayerV:      new(big.Int),
		PayerR:      new(big.Int),
		PayerS:      new(big.Int),
		ExpiredTime: new(big.Int),
	}
	if tx.ChainID != nil {
		cpy.ChainID.Set(tx.ChainID)
	}
	if tx.Nonce != nil {
		cpy.Nonce.Set(tx.Nonce)
	}
	if tx.TipCap != nil {
		cpy.TipCap.Set(tx.TipCap)
	}
	if tx.FeeCap != nil {
		cpy.FeeCap.Set(tx.FeeCap)
	}
	if tx.GasPrice != nil {
		cpy.GasPrice.Set(tx.GasPrice)
	}
	if tx.GasLimit != nil {
		cpy.GasLimit.Set(tx.GasLimit)
	}
	if tx.Value != nil {
		cpy.Value.Set(tx.Value)
	}
	if tx.PayerV != nil {
		cpy.PayerV.Set(tx.PayerV)
	}
	if tx.PayerR != nil {
		cpy.PayerR.Set(tx.PayerR)
	}
	if tx.PayerS != nil {
		cpy.PayerS.Set(tx.PayerS)
	}
	if tx.ExpiredTime != nil {
		cpy.ExpiredTime.Set(tx.ExpiredTime)
	}
	// The sender triple stays nil on an unsigned payload.
	if tx.V != nil {
		cpy.V = new(big.Int).Set(tx.V)
	}
	if tx.R != nil {
		cpy.R = new(big.Int).Set(tx.R)
	}
	if tx.S != nil {
		cpy.S = new(big.Int).Set(tx.S)
	}
	return cpy
}

// accessors for innerTx.
func (tx *SponsoredTx) txType() byte          { return SponsoredTxType }
func (tx *SponsoredTx) chainID() *big.Int     { return tx.ChainID }
func (tx *SponsoredTx) nonce() *big.Int       { return tx.Nonce }
func (tx *SponsoredTx) gasTipCap() *big.Int   { return tx.TipCap }
func (tx *SponsoredTx) gasFeeCap() *big.Int   { return tx.FeeCap }
func (tx *SponsoredTx) gasPrice() *big.Int    { return tx.GasPrice }
func (tx *SponsoredTx) gasLimit() *big.Int    { return tx.GasLimit }
func (tx *SponsoredTx) to() *common.Address   { return tx.To }
func (tx *SponsoredTx) value() *big.Int       { return tx.Value }
func (tx *SponsoredTx) data() []byte          { return tx.Data }
func (tx *SponsoredTx) expiredTime() *big.Int { return tx.ExpiredTime }
func (tx *SponsoredTx) payerURL() string      { return tx.PayerURL }

func (tx *SponsoredTx) payerSignatureValues() (v, r, s *big.Int) {
	return tx.PayerV, tx.PayerR, tx.PayerS
}

func (tx *SponsoredTx) rawSignatureValues() (v, r, s *big.Int) {
	return tx.V, tx.R, tx.S
}

func (tx *SponsoredTx) setSignatureValues(v, r, s *big.Int) {
	tx.V, tx.R, tx.S = v, r, s
}

// sanityCheck validates the payload at construction time: 256-bit range on
// every integer field, the gasLimit*gasPrice product bound, and sender
// signature completeness. It is fail-fast; no partially valid payload ever
// reaches a Transaction.
func (tx *SponsoredTx) sanityCheck() error {
	for _, f := range []struct {
		name string
		v    *big.Int
	}{
		{"chainId", tx.ChainID},
		{"nonce", tx.Nonce},
		{"maxPriorityFeePerGas", tx.TipCap},
		{"maxFeePerGas", tx.FeeCap},
		{"gasPrice", tx.GasPrice},
		{"gasLimit", tx.GasLimit},
		{"value", tx.Value},
		{"payerV", tx.PayerV},
		{"payerR", tx.PayerR},
		{"payerS", tx.PayerS},
		{"expiredTime", tx.ExpiredTime},
		{"v", tx.V},
		{"r", tx.R},
		{"s", tx.S},
	} {
		if err := checkRange(f.name, f.v); err != nil {
			return err
		}
	}
	if err := checkFeeOverflow(tx.GasLimit, tx.GasPrice); err != nil {
		return err
	}
	return checkSignatureCompleteness(tx.V, tx.R, tx.S)
}
