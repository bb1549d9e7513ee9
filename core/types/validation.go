package types

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
)

var (
	ErrValueOverflow = errors.New("value exceeds 256 bits")
	ErrNegativeValue = errors.New("value may not be negative")
	ErrFeeOverflow   = errors.New("gasLimit * gasPrice exceeds 256 bits")
	ErrLeadingZero   = errors.New("invalid canonical integer: leading zero byte")
)

// checkRange verifies that v fits an unsigned 256-bit integer. A nil value is
// acceptable; it stands for an absent field.
func checkRange(name string, v *big.Int) error {
	if v == nil {
		return nil
	}
	if v.Sign() < 0 {
		return fmt.Errorf("%w: %s", ErrNegativeValue, name)
	}
	if v.BitLen() > 256 {
		return fmt.Errorf("%w: %s", ErrValueOverflow, name)
	}
	return nil
}

// checkFeeOverflow verifies that the worst-case legacy fee gasLimit*gasPrice
// still fits 256 bits.
func checkFeeOverflow(gasLimit, gasPrice *big.Int) error {
	limit, overflow := uint256FromBig(gasLimit)
	if overflow {
		return fmt.Errorf("%w: gasLimit", ErrValueOverflow)
	}
	price, overflow := uint256FromBig(gasPrice)
	if overflow {
		return fmt.Errorf("%w: gasPrice", ErrValueOverflow)
	}
	if _, overflow := new(uint256.Int).MulOverflow(limit, price); overflow {
		return ErrFeeOverflow
	}
	return nil
}

// checkSignatureCompleteness enforces the all-or-nothing sender signature
// invariant.
func checkSignatureCompleteness(v, r, s *big.Int) error {
	present := 0
	for _, c := range []*big.Int{v, r, s} {
		if c != nil {
			present++
		}
	}
	if present != 0 && present != 3 {
		return fmt.Errorf("%w: partial sender signature", ErrInvalidSig)
	}
	return nil
}

// checkCanonicalInt rejects padded wire integers: the canonical big-endian
// form carries no leading zero byte and zero is the empty string. Anything
// longer than 32 bytes cannot fit 256 bits.
func checkCanonicalInt(name string, b []byte) error {
	if len(b) > 0 && b[0] == 0 {
		return fmt.Errorf("%w: %s", ErrLeadingZero, name)
	}
	if len(b) > 32 {
		return fmt.Errorf("%w: %s", ErrValueOverflow, name)
	}
	return nil
}

func uint256FromBig(i *big.Int) (*uint256.Int, bool) {
	if i == nil {
		return new(uint256.Int), false
	}
	return uint256.FromBig(i)
}
