package sdk

import (
	"context"
	"math/big"

	"github.com/axelarnetwork/axelar-deployments/types"
)

// DeployTokenParams carries the inputs for minting a new interchain token.
type DeployTokenParams struct {
	Token         types.TokenMetadata
	Salt          [32]byte
	InitialSupply *big.Int
	Minter        string
}

// RemoteDeployParams deploys an existing interchain token to another chain.
// GasValue is the cross-chain gas payment in the source chain's native token.
type RemoteDeployParams struct {
	Salt             [32]byte
	DestinationChain string
	GasValue         *big.Int
}

// TransferParams carries the inputs for an interchain token transfer.
type TransferParams struct {
	TokenID            types.TokenID
	DestinationChain   string
	DestinationAddress string
	Amount             *big.Int
	GasValue           *big.Int
	Data               []byte
}

// LinkTokenParams links a custom token deployment on another chain to a
// locally registered one under the same token id.
type LinkTokenParams struct {
	Salt                    [32]byte
	DestinationChain        string
	DestinationTokenAddress string
	TokenManagerType        uint8
	LinkParams              []byte
	GasValue                *big.Int
}

// RegisterTokenParams registers an existing token with the token service.
type RegisterTokenParams struct {
	TokenAddress     string
	TokenManagerType uint8
	Salt             [32]byte
	Operator         string
}

// InterchainTokenService administers a deployed token service contract.
type InterchainTokenService interface {
	// SetTrustedChain authorizes inbound ITS messages from a chain.
	SetTrustedChain(ctx context.Context, chain string) (TxResult, error)

	// RemoveTrustedChain revokes a chain's trusted status.
	RemoveTrustedChain(ctx context.Context, chain string) (TxResult, error)

	// IsTrustedChain reports whether inbound messages from chain are trusted.
	IsTrustedChain(ctx context.Context, chain string) (bool, error)

	// DeployInterchainToken mints a new native interchain token.
	DeployInterchainToken(ctx context.Context, params DeployTokenParams) (TxResult, error)

	// DeployRemoteInterchainToken extends a local token to another chain.
	DeployRemoteInterchainToken(ctx context.Context, params RemoteDeployParams) (TxResult, error)

	// RegisterCanonicalToken registers a pre-existing token so it can be
	// bridged under a canonical token id.
	RegisterCanonicalToken(ctx context.Context, tokenAddress string) (TxResult, error)

	// RegisterCustomToken registers a token under an operator-chosen salt.
	RegisterCustomToken(ctx context.Context, params RegisterTokenParams) (TxResult, error)

	// RegisterTokenMetadata reports a token's decimals to the ITS hub.
	RegisterTokenMetadata(ctx context.Context, tokenAddress string, gasValue *big.Int) (TxResult, error)

	// LinkToken connects a destination-chain token to a local registration.
	LinkToken(ctx context.Context, params LinkTokenParams) (TxResult, error)

	// InterchainTransfer moves tokens to another chain.
	InterchainTransfer(ctx context.Context, params TransferParams) (TxResult, error)

	// InterchainTokenID derives the token id a deployer/salt pair maps to.
	InterchainTokenID(ctx context.Context, deployer string, salt [32]byte) (types.TokenID, error)

	// SetFlowLimit caps the per-epoch token flow for a token id.
	SetFlowLimit(ctx context.Context, tokenID types.TokenID, limit *big.Int) (TxResult, error)

	// SetPauseStatus pauses or unpauses the token service.
	SetPauseStatus(ctx context.Context, paused bool) (TxResult, error)
}
