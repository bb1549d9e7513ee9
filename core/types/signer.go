// Copyright 2016 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package types

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/sponsornet/sponsorchain/params"
)

var ErrInvalidChainId = errors.New("invalid chain id for signer")

// replayProtectionOffset is added to the 27/28 recovery values when the chain
// binds signatures to its id, landing them in the chainId*2 + 35/36 family.
var replayProtectionOffset = big.NewInt(8)

// sigCache is used to cache the derived sender and contains
// the signer used to derive it.
type sigCache struct {
	signer Signer
	from   common.Address
}

// LatestSigner returns the signer mandated by the chain config, with the
// replay-protection capability resolved once up front.
func LatestSigner(config *params.ChainConfig) Signer {
	rules := config.Rules()
	return NewSponsoredSigner(rules.ChainID, rules.IsReplayProtected)
}

// LatestSignerForChainID returns a replay-protected signer for the given
// chain id. Use this in transaction-handling code where no ChainConfig is at
// hand.
func LatestSignerForChainID(chainId *big.Int) Signer {
	return NewSponsoredSigner(chainId, true)
}

// SignTx signs the transaction using the given signer and private key.
func SignTx(tx *Transaction, s Signer, prv *ecdsa.PrivateKey) (*Transaction, error) {
	h := s.Hash(tx)
	sig, err := crypto.Sign(h[:], prv)
	if err != nil {
		return nil, err
	}
	return tx.WithSignature(s, sig)
}

// SignNewTx wraps the payload in a transaction and signs it.
func SignNewTx(txdata TxData, s Signer, prv *ecdsa.PrivateKey) (*Transaction, error) {
	tx, err := NewTx(txdata)
	if err != nil {
		return nil, err
	}
	return SignTx(tx, s, prv)
}

// Sender returns the address derived from the signature (V, R, S) using
// secp256k1 elliptic curve and an error if it failed deriving or upon an
// incorrect signature.
//
// Sender may cache the address, allowing it to be used regardless of
// signing method. The cache is invalidated if the cached signer does
// not match the signer used in the current call.
func Sender(signer Signer, tx *Transaction) (common.Address, error) {
	if sc := tx.from.Load(); sc != nil {
		sigCache := sc.(sigCache)
		if sigCache.signer.Equal(signer) {
			return sigCache.from, nil
		}
	}

	addr, err := signer.Sender(tx)
	if err != nil {
		return common.Address{}, err
	}
	tx.from.Store(sigCache{signer: signer, from: addr})
	return addr, nil
}

// Signer encapsulates transaction signature handling. The name of this type
// is slightly misleading because Signers don't actually sign, they're just
// for validating and processing of signatures.
type Signer interface {
	// Sender returns the sender address of the transaction.
	Sender(tx *Transaction) (common.Address, error)

	// SignatureValues returns the raw R, S, V values corresponding to the
	// given raw signature, with the chain's replay-protection encoding
	// applied to V.
	SignatureValues(tx *Transaction, sig []byte) (r, s, v *big.Int, err error)

	ChainID() *big.Int

	// Hash returns 'signature hash', i.e. the transaction hash that is signed
	// by the private key. This hash does not uniquely identify the transaction.
	Hash(tx *Transaction) common.Hash

	// Equal returns true if the given signer is the same as the receiver.
	Equal(Signer) bool
}

type sponsoredSigner struct {
	chainId, chainIdMul *big.Int
	protected           bool
}

// NewSponsoredSigner builds a signer for sponsored transactions on the given
// chain. When protected is set, produced signatures carry the chain-bound
// replay-protection encoding.
func NewSponsoredSigner(chainId *big.Int, protected bool) Signer {
	if chainId == nil {
		chainId = new(big.Int)
	}
	return sponsoredSigner{
		chainId:    new(big.Int).Set(chainId),
		chainIdMul: new(big.Int).Mul(chainId, big.NewInt(2)),
		protected:  protected,
	}
}

func (s sponsoredSigner) ChainID() *big.Int {
	return new(big.Int).Set(s.chainId)
}

func (s sponsoredSigner) Equal(o Signer) bool {
	x, ok := o.(sponsoredSigner)
	return ok && x.chainId.Cmp(s.chainId) == 0 && x.protected == s.protected
}

// SignatureValues decodes a raw 65-byte signature and applies the
// replay-protection transform v' = v + chainId*2 + 8, mapping the 27/28
// recovery values into the chainId*2 + 35/36 family.
func (s sponsoredSigner) SignatureValues(tx *Transaction, sig []byte) (r, sv, v *big.Int, err error) {
	if tx.Type() != SponsoredTxType {
		return nil, nil, nil, ErrTxTypeNotSupported
	}
	r, sv, v = decodeSignature(sig)
	if s.protected {
		v.Add(v, s.chainIdMul)
		v.Add(v, replayProtectionOffset)
	}
	return r, sv, v, nil
}

func (s sponsoredSigner) Sender(tx *Transaction) (common.Address, error) {
	if tx.Type() != SponsoredTxType {
		return common.Address{}, ErrTxTypeNotSupported
	}
	if tx.ChainId().Cmp(s.chainId) != 0 {
		return common.Address{}, fmt.Errorf("%w: have %d want %d", ErrInvalidChainId, tx.ChainId(), s.chainId)
	}
	sighash, err := tx.VerifyHash()
	if err != nil {
		return common.Address{}, err
	}
	v, r, sv := tx.RawSignatureValues()
	// A decoded transaction may carry either encoding; v itself says which.
	if MeetsEIP155(v, s.chainId) {
		v.Sub(v, s.chainIdMul)
		v.Sub(v, replayProtectionOffset)
	}
	return recoverPlain(sighash, r, sv, v, true)
}

// Hash returns the hash to be signed by the sender.
// It does not uniquely identify the transaction.
func (s sponsoredSigner) Hash(tx *Transaction) common.Hash {
	return tx.SigningHash()
}

// MeetsEIP155 reports whether v already carries the chain-bound
// replay-protection encoding, i.e. v equals chainId*2+35 or chainId*2+36.
func MeetsEIP155(v, chainId *big.Int) bool {
	if v == nil || chainId == nil {
		return false
	}
	chainIdMul := new(big.Int).Mul(chainId, big.NewInt(2))
	low := new(big.Int).Add(chainIdMul, big.NewInt(35))
	high := new(big.Int).Add(chainIdMul, big.NewInt(36))
	return v.Cmp(low) == 0 || v.Cmp(high) == 0
}

func decodeSignature(sig []byte) (r, s, v *big.Int) {
	if len(sig) != crypto.SignatureLength {
		panic(fmt.Sprintf("wrong size for signature: got %d, want %d", len(sig), crypto.SignatureLength))
	}
	r = new(big.Int).SetBytes(sig[:32])
	s = new(big.Int).SetBytes(sig[32:64])
	v = new(big.Int).SetBytes([]byte{sig[64] + 27})
	return r, s, v
}

func recoverPlain(sighash common.Hash, R, S, Vb *big.Int, homestead bool) (common.Address, error) {
	if Vb.BitLen() > 8 {
		return common.Address{}, ErrInvalidSig
	}
	V := byte(Vb.Uint64() - 27)
	if !crypto.ValidateSignatureValues(V, R, S, homestead) {
		return common.Address{}, ErrInvalidSig
	}
	// encode the signature in uncompressed format
	r, s := R.Bytes(), S.Bytes()
	sig := make([]byte, crypto.SignatureLength)
	copy(sig[32-len(r):32], r)
	copy(sig[64-len(s):64], s)
	sig[64] = V
	// recover the public key from the signature
	pub, err := crypto.Ecrecover(sighash[:], sig)
	if err != nil {
		return common.Address{}, err
	}
	if len(pub) == 0 || pub[0] != 4 {
		return common.Address{}, errors.New("invalid public key")
	}
	var addr common.Address
	copy(addr[:], crypto.Keccak256(pub[1:])[12:])
	return addr, nil
}

// deriveChainId derives the chain id from the given v parameter.
func deriveChainId(v *big.Int) *big.Int {
	if v.BitLen() <= 64 {
		v := v.Uint64()
		if v == 27 || v == 28 {
			return new(big.Int)
		}
		return new(big.Int).SetUint64((v - 35) / 2)
	}
	v = new(big.Int).Sub(v, big.NewInt(35))
	return v.Div(v, big.NewInt(2))
}
