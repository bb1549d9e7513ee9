package types

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"

	"github.com/sponsornet/sponsorchain/params"
)

// Legacy-format helpers shared across transaction variants. They are free
// functions taking the record, so hashing and fee policy stay swappable per
// transaction family without inheritance.

// DataFee returns the fee charged for the transaction payload bytes: zero
// bytes are priced at TxDataZeroGas, non-zero bytes at TxDataNonZeroGas.
func DataFee(tx *Transaction) *big.Int {
	var zeros, nonzeros uint64
	for _, b := range tx.inner.data() {
		if b == 0 {
			zeros++
		} else {
			nonzeros++
		}
	}
	fee := new(uint256.Int).Mul(uint256.NewInt(zeros), uint256.NewInt(params.TxDataZeroGas))
	nz := new(uint256.Int).Mul(uint256.NewInt(nonzeros), uint256.NewInt(params.TxDataNonZeroGas))
	return fee.Add(fee, nz).ToBig()
}

// LegacyHash computes the canonical transaction hash: keccak256 over the
// full signed serialization. Hashing an unsigned transaction is an error.
func LegacyHash(tx *Transaction) (common.Hash, error) {
	if !tx.IsSigned() {
		return common.Hash{}, ErrNotSigned
	}
	return rlpHash(tx.inner.rawFields()), nil
}

// SenderPublicKey recovers the sender's uncompressed public key from the
// signature over the signing hash. The replay-protection offset, when
// present, is stripped using the chain id derived from v itself.
func SenderPublicKey(tx *Transaction) ([]byte, error) {
	v, r, s := tx.RawSignatureValues()
	if v == nil || r == nil || s == nil {
		return nil, ErrNotSigned
	}
	if chainId := deriveChainId(v); chainId.Sign() != 0 {
		v.Sub(v, new(big.Int).Mul(chainId, big.NewInt(2)))
		v.Sub(v, replayProtectionOffset)
	}
	if v.BitLen() > 8 {
		return nil, ErrInvalidSig
	}
	rec := byte(v.Uint64() - 27)
	if !crypto.ValidateSignatureValues(rec, r, s, true) {
		return nil, ErrInvalidSig
	}
	rb, sb := r.Bytes(), s.Bytes()
	sig := make([]byte, crypto.SignatureLength)
	copy(sig[32-len(rb):32], rb)
	copy(sig[64-len(sb):64], sb)
	sig[64] = rec
	sighash := tx.SigningHash()
	return crypto.Ecrecover(sighash[:], sig)
}

// FormatError decorates msg with a fixed-order snapshot of the fee-related
// fields. Informational only; callers must not parse the result.
func FormatError(tx *Transaction, msg string) string {
	return fmt.Sprintf("%s (gasLimit=%v gasPrice=%v maxFeePerGas=%v maxPriorityFeePerGas=%v value=%v)",
		msg, tx.GasLimit(), tx.GasPrice(), tx.GasFeeCap(), tx.GasTipCap(), tx.Value())
}
