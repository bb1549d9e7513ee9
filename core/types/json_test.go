package types

import (
	"encoding/json"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

func marshalToMap(t *testing.T, tx *Transaction) map[string]interface{} {
	t.Helper()
	enc, err := json.Marshal(tx)
	require.NoError(t, err)
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(enc, &m))
	return m
}

func TestJSONProjectionUnsigned(t *testing.T) {
	m := marshalToMap(t, newTestTx(t, 1))

	require.Equal(t, "0x1", m["chainId"])
	require.Equal(t, "0x0", m["nonce"], "zero renders as 0x0, not empty")
	require.Equal(t, "0x0", m["maxFeePerGas"])
	require.Equal(t, "0x0", m["maxPriorityFeePerGas"])
	require.Equal(t, "0x3b9aca00", m["gasPrice"])
	require.Equal(t, "0x5208", m["gas"])
	require.Equal(t, "0xde0b6b3a7640000", m["value"])
	require.Equal(t, "0x1b", m["payerV"])
	require.Equal(t, "0x6553f100", m["expiredTime"])
	require.Equal(t, "https://payer.example", m["payerUrl"])
	require.Equal(t, strings.ToLower(testTo.Hex()), strings.ToLower(m["to"].(string)))

	// Absent optional fields are explicit nulls, never "0x0".
	require.Nil(t, m["v"])
	require.Nil(t, m["r"])
	require.Nil(t, m["s"])
}

func TestJSONProjectionSigned(t *testing.T) {
	key, err := crypto.HexToECDSA(testKeyHex)
	require.NoError(t, err)
	signer := NewSponsoredSigner(big.NewInt(1), true)
	tx, err := SignNewTx(newTestPayload(1), signer, key)
	require.NoError(t, err)

	m := marshalToMap(t, tx)
	for _, field := range []string{
		"chainId", "nonce", "maxPriorityFeePerGas", "maxFeePerGas", "gasPrice",
		"gas", "value", "payerV", "payerR", "payerS", "expiredTime", "v", "r", "s",
	} {
		s, ok := m[field].(string)
		require.True(t, ok, "%s must be a hex string", field)
		require.True(t, strings.HasPrefix(s, "0x"), "%s: %q", field, s)
		// Minimal encoding: no leading zero digit except the lone zero.
		if s != "0x0" {
			require.NotEqual(t, byte('0'), s[2], "%s: %q has a padded hex digit", field, s)
		}
	}
}

func TestJSONContractCreation(t *testing.T) {
	payload := newTestPayload(1)
	payload.To = nil
	tx, err := NewTx(payload)
	require.NoError(t, err)

	m := marshalToMap(t, tx)
	require.Nil(t, m["to"])
}
