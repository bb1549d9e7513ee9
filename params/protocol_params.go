package params

const (
	TxGas uint64 = 21000 // Per transaction not creating a contract.

	TxDataZeroGas    uint64 = 4  // Per byte of data attached to a transaction that equals zero.
	TxDataNonZeroGas uint64 = 68 // Per byte of data attached to a transaction that is not zero.
)
