package types

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	payload := newTestPayload(1)
	payload.Data = []byte{0xca, 0xfe, 0x00, 0x01}
	payload.TipCap = big.NewInt(2)
	payload.FeeCap = big.NewInt(3)
	tx, err := NewTx(payload)
	require.NoError(t, err)

	enc, err := tx.MarshalBinary()
	require.NoError(t, err)

	dec, err := DecodeSponsoredTx(enc)
	require.NoError(t, err)
	require.Equal(t, tx.RawFields(), dec.RawFields())
	require.Equal(t, tx.PayerURL(), dec.PayerURL())
	require.False(t, dec.IsSigned())

	// Re-encoding is byte-exact.
	enc2, err := dec.MarshalBinary()
	require.NoError(t, err)
	require.Equal(t, enc, enc2)
}

func TestDecodeNotAList(t *testing.T) {
	enc, err := rlp.EncodeToBytes([]byte("not a transaction"))
	require.NoError(t, err)

	_, err = DecodeSponsoredTx(enc)
	require.ErrorIs(t, err, ErrInputNotList)

	_, err = DecodeSponsoredTx(nil)
	require.ErrorIs(t, err, ErrInputNotList)
}

func TestDecodeFieldCountBounds(t *testing.T) {
	fields := newTestTx(t, 1).RawFields()

	for _, n := range []int{0, 1, 10} {
		enc, err := rlp.EncodeToBytes(fields[:n])
		require.NoError(t, err)
		_, err = DecodeSponsoredTx(enc)
		require.ErrorIs(t, err, ErrUnexpectedFieldCount, "%d fields", n)
	}

	long := append(append([][]byte{}, fields...), []byte{0x01})
	enc, err := rlp.EncodeToBytes(long)
	require.NoError(t, err)
	_, err = DecodeSponsoredTx(enc)
	require.ErrorIs(t, err, ErrUnexpectedFieldCount)
}

func TestDecodeShortFormCoercion(t *testing.T) {
	// Eleven positions (chainId..payerR) is the shortest accepted form; the
	// rest decode as absent or zero.
	fields := newTestTx(t, 1).RawFields()
	enc, err := rlp.EncodeToBytes(fields[:minTxFields])
	require.NoError(t, err)

	tx, err := DecodeSponsoredTx(enc)
	require.NoError(t, err)
	require.False(t, tx.IsSigned())
	require.Equal(t, big.NewInt(0), tx.ExpiredTime())
	require.Equal(t, "", tx.PayerURL())
	_, _, ps := tx.PayerSignatureValues()
	require.Equal(t, big.NewInt(0), ps)
}

func TestDecodeLeadingZeroRejected(t *testing.T) {
	base := newTestTx(t, 1).RawFields()

	for _, f := range strictIntFields {
		fields := append([][]byte{}, base...)
		fields[f.idx] = append([]byte{0x00}, fields[f.idx]...)
		enc, err := rlp.EncodeToBytes(fields)
		require.NoError(t, err)
		_, err = DecodeSponsoredTx(enc)
		require.ErrorIs(t, err, ErrLeadingZero, f.name)
	}

	// The canonical form of the same values passes.
	enc, err := rlp.EncodeToBytes(base)
	require.NoError(t, err)
	_, err = DecodeSponsoredTx(enc)
	require.NoError(t, err)
}

func TestDecodeNestedScalarRejected(t *testing.T) {
	base := newTestTx(t, 1).RawFields()
	items := make([]interface{}, len(base))
	for i, b := range base {
		items[i] = b
	}

	items[fieldChainID] = [][]byte{{0x01}}
	enc, err := rlp.EncodeToBytes(items)
	require.NoError(t, err)
	_, err = DecodeSponsoredTx(enc)
	require.ErrorIs(t, err, ErrInputNotList)
	require.ErrorContains(t, err, "chainId")

	items[fieldChainID] = base[fieldChainID]
	items[fieldV] = [][]byte{{0x26}}
	enc, err = rlp.EncodeToBytes(items)
	require.NoError(t, err)
	_, err = DecodeSponsoredTx(enc)
	require.ErrorIs(t, err, ErrInputNotList)
	require.ErrorContains(t, err, "v must be a scalar")
}

func TestDecodeBadToAddress(t *testing.T) {
	fields := newTestTx(t, 1).RawFields()
	fields[fieldTo] = fields[fieldTo][:19]
	enc, err := rlp.EncodeToBytes(fields)
	require.NoError(t, err)
	_, err = DecodeSponsoredTx(enc)
	require.ErrorContains(t, err, "invalid to address")
}

func TestDecodeContractCreation(t *testing.T) {
	payload := newTestPayload(1)
	payload.To = nil
	tx, err := NewTx(payload)
	require.NoError(t, err)

	enc, err := tx.MarshalBinary()
	require.NoError(t, err)
	dec, err := DecodeSponsoredTx(enc)
	require.NoError(t, err)
	require.Nil(t, dec.To())
}

func TestDecodeTrailingBytes(t *testing.T) {
	enc, err := newTestTx(t, 1).MarshalBinary()
	require.NoError(t, err)
	_, err = DecodeSponsoredTx(append(enc, 0x00))
	require.Error(t, err)
}

func TestFromValuesPartialSignature(t *testing.T) {
	fields := newTestTx(t, 1).RawFields()
	fields[fieldV] = []byte{0x26}
	_, err := SponsoredTxFromValues(fields)
	require.ErrorIs(t, err, ErrInvalidSig)
}
