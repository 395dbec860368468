package sdk

import (
	"context"
)

// Ownable administers ownership of a deployed contract. Chains whose
// contracts support the two-step handover expose ProposeOwnership and
// AcceptOwnership; the rest implement only the direct transfer.
type Ownable interface {
	// TransferOwnership hands the contract to a new owner in one step.
	TransferOwnership(ctx context.Context, contract, newOwner string) (TxResult, error)

	// ProposeOwnership nominates a new owner who must accept.
	ProposeOwnership(ctx context.Context, contract, newOwner string) (TxResult, error)

	// AcceptOwnership completes a proposed handover; the signer must be the
	// nominated owner.
	AcceptOwnership(ctx context.Context, contract string) (TxResult, error)
}
