package sdk

import (
	"context"
)

// OperatorRegistry administers the operators contract: the allowlist of
// addresses permitted to run day-to-day service actions (fee collection,
// refunds) without owner keys.
type OperatorRegistry interface {
	// IsOperator reports whether the address is in the registry.
	IsOperator(ctx context.Context, address string) (bool, error)

	// AddOperator adds an address to the registry.
	AddOperator(ctx context.Context, address string) (TxResult, error)

	// RemoveOperator removes an address from the registry.
	RemoveOperator(ctx context.Context, address string) (TxResult, error)
}
