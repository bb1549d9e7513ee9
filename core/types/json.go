package types

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// txJSON is the hex field projection of a transaction. Absent optional
// fields render as null, never as "0x0".
type txJSON struct {
	Type                 hexutil.Uint64  `json:"type"`
	ChainID              *hexutil.Big    `json:"chainId"`
	Nonce                *hexutil.Big    `json:"nonce"`
	MaxPriorityFeePerGas *hexutil.Big    `json:"maxPriorityFeePerGas"`
	MaxFeePerGas         *hexutil.Big    `json:"maxFeePerGas"`
	GasPrice             *hexutil.Big    `json:"gasPrice"`
	GasLimit             *hexutil.Big    `json:"gas"`
	To                   *common.Address `json:"to"`
	Value                *hexutil.Big    `json:"value"`
	Input                hexutil.Bytes   `json:"input"`
	PayerV               *hexutil.Big    `json:"payerV"`
	PayerR               *hexutil.Big    `json:"payerR"`
	PayerS               *hexutil.Big    `json:"payerS"`
	ExpiredTime          *hexutil.Big    `json:"expiredTime"`
	PayerURL             string          `json:"payerUrl"`
	V                    *hexutil.Big    `json:"v"`
	R                    *hexutil.Big    `json:"r"`
	S                    *hexutil.Big    `json:"s"`
}

// MarshalJSON renders the canonical human-readable field projection: every
// integer as a minimal 0x-prefixed hex string (zero as "0x0"), payerUrl
// as-is. Pure projection; it cannot fail beyond encoding itself.
func (tx *Transaction) MarshalJSON() ([]byte, error) {
	enc := txJSON{
		Type:                 hexutil.Uint64(tx.Type()),
		ChainID:              (*hexutil.Big)(tx.ChainId()),
		Nonce:                (*hexutil.Big)(tx.Nonce()),
		MaxPriorityFeePerGas: (*hexutil.Big)(tx.GasTipCap()),
		MaxFeePerGas:         (*hexutil.Big)(tx.GasFeeCap()),
		GasPrice:             (*hexutil.Big)(tx.GasPrice()),
		GasLimit:             (*hexutil.Big)(tx.GasLimit()),
		To:                   tx.To(),
		Value:                (*hexutil.Big)(tx.Value()),
		Input:                tx.Data(),
		ExpiredTime:          (*hexutil.Big)(tx.ExpiredTime()),
		PayerURL:             tx.PayerURL(),
	}
	pv, pr, ps := tx.PayerSignatureValues()
	enc.PayerV = (*hexutil.Big)(pv)
	enc.PayerR = (*hexutil.Big)(pr)
	enc.PayerS = (*hexutil.Big)(ps)
	v, r, s := tx.RawSignatureValues()
	enc.V = (*hexutil.Big)(v)
	enc.R = (*hexutil.Big)(r)
	enc.S = (*hexutil.Big)(s)
	return json.Marshal(&enc)
}
