package sdk

import (
	"context"
	"math/big"
)

// PayGasParams pays the execution gas for an outbound message up front. The
// payment is keyed to the call the sender makes next, so the sender here must
// match the contract call's sender.
type PayGasParams struct {
	DestinationChain   string
	DestinationAddress string
	Payload            []byte
	RefundAddress      string
	Amount             *big.Int
}

// AddGasParams tops up the gas paid for an in-flight message, identified by
// its source transaction and log index.
type AddGasParams struct {
	TxHash        string
	LogIndex      uint64
	RefundAddress string
	Amount        *big.Int
}

// RefundParams returns escrowed gas for a message to its refund address.
type RefundParams struct {
	TxHash   string
	LogIndex uint64
	Receiver string
	Amount   *big.Int
}

// GasService administers a deployed gas service contract.
type GasService interface {
	// PayGas escrows native gas for a contract call the sender is about to make.
	PayGas(ctx context.Context, params PayGasParams) (TxResult, error)

	// AddGas escrows additional native gas for an in-flight message.
	AddGas(ctx context.Context, params AddGasParams) (TxResult, error)

	// CollectFees withdraws accrued fees to a receiver. A nil amount collects
	// the full balance where the chain supports it.
	CollectFees(ctx context.Context, receiver string, amount *big.Int) (TxResult, error)

	// Refund returns escrowed gas for a message to a receiver.
	Refund(ctx context.Context, params RefundParams) (TxResult, error)
}
