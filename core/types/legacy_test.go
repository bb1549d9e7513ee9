package types

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDataFee(t *testing.T) {
	payload := newTestPayload(1)
	payload.Data = []byte{0x00, 0x01, 0xff, 0x00, 0x00}
	tx, err := NewTx(payload)
	require.NoError(t, err)

	// 3 zero bytes * 4 + 2 non-zero bytes * 68.
	require.Equal(t, big.NewInt(3*4+2*68), DataFee(tx))

	empty := newTestTx(t, 1)
	require.Equal(t, big.NewInt(0), DataFee(empty))
}

func TestFormatError(t *testing.T) {
	tx := newTestTx(t, 1)
	msg := FormatError(tx, "intrinsic gas too low")
	require.Contains(t, msg, "intrinsic gas too low")
	require.Contains(t, msg, "gasLimit=21000")
	require.Contains(t, msg, "gasPrice=1000000000")
	require.Contains(t, msg, "maxFeePerGas=0")
	require.Contains(t, msg, "value=1000000000000000000")
}
