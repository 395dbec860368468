package sdk

import (
	"context"
)

// GatewayState is the subset of gateway configuration every chain family can
// report. State-changing commands read it back afterwards to confirm the
// intended change landed.
type GatewayState struct {
	Operator        string
	DomainSeparator [32]byte

	// Epoch counts verifier-set rotations; SignersHash identifies the set
	// installed by the latest rotation.
	Epoch       uint64
	SignersHash [32]byte
}

// Inspector reads deployed-contract state for post-step verification.
type Inspector interface {
	// GatewayState reads the gateway's current configuration.
	GatewayState(ctx context.Context) (GatewayState, error)

	// Owner returns the owner of a deployed contract.
	Owner(ctx context.Context, contract string) (string, error)

	// Operator returns the operator of a deployed contract.
	Operator(ctx context.Context, contract string) (string, error)
}
