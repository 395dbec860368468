package sui

import (
	"context"
	"errors"
	"math/big"

	"github.com/block-vision/sui-go-sdk/models"
	"github.com/block-vision/sui-go-sdk/transaction"

	"github.com/axelarnetwork/axelar-deployments/sdk"
	sdkerrors "github.com/axelarnetwork/axelar-deployments/sdk/errors"
	"github.com/axelarnetwork/axelar-deployments/types"
)

const itsModule = "its"

// Its administers the interchain token service package. The toolkit covers
// the trust wiring an operator runs after deployment; token registration and
// transfers go through coin packages and channels owned by the applications
// themselves.
type Its struct {
	client    *Client
	packageID string
	its       string
	ownerCap  string
}

var _ sdk.InterchainTokenService = (*Its)(nil)

// NewIts creates an Its for a published package id, its shared ITS object
// and the OwnerCap object.
func NewIts(client *Client, packageID, itsObject, ownerCapObject string) (*Its, error) {
	pkg, err := normalizeAddress(packageID)
	if err != nil {
		return nil, err
	}
	its, err := normalizeAddress(itsObject)
	if err != nil {
		return nil, err
	}
	ownerCap, err := normalizeAddress(ownerCapObject)
	if err != nil {
		return nil, err
	}

	return &Its{client: client, packageID: pkg, its: its, ownerCap: ownerCap}, nil
}

// SetTrustedChain authorizes inbound ITS messages from a chain.
func (i *Its) SetTrustedChain(ctx context.Context, chain string) (sdk.TxResult, error) {
	return i.trustedChains(ctx, "add_trusted_chains", chain)
}

// RemoveTrustedChain revokes a chain's trusted status.
func (i *Its) RemoveTrustedChain(ctx context.Context, chain string) (sdk.TxResult, error) {
	return i.trustedChains(ctx, "remove_trusted_chains", chain)
}

// trustedChains updates the trusted set. The entry functions take a vector
// of chain names; the toolkit wires one chain per call.
func (i *Its) trustedChains(ctx context.Context, function, chain string) (sdk.TxResult, error) {
	if chain == "" {
		return sdk.TxResult{}, errors.New("chain name cannot be empty")
	}

	ptb := i.client.ptb()
	ptb.MoveCall(
		models.SuiAddress(i.packageID),
		itsModule,
		function,
		nil,
		[]transaction.Argument{ptb.Object(i.its), ptb.Object(i.ownerCap), ptb.Pure([]string{chain})},
	)

	resp, err := i.client.executePTB(ctx, ptb)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: resp.Digest}, nil
}

// IsTrustedChain is unsupported; the trusted set lives in dynamic fields on
// the ITS object and is read through the indexer tooling.
func (i *Its) IsTrustedChain(ctx context.Context, chain string) (bool, error) {
	return false, sdkerrors.NewUnsupportedOperationError("sui", "query trusted chain")
}

// Interchain tokens on Sui are coin packages published per token, and
// transfers flow through application channels; none of that runs through an
// operator CLI against the shared ITS object.

func (i *Its) DeployInterchainToken(ctx context.Context, params sdk.DeployTokenParams) (sdk.TxResult, error) {
	return sdk.TxResult{}, sdkerrors.NewUnsupportedOperationError("sui", "deploy interchain token")
}

func (i *Its) DeployRemoteInterchainToken(ctx context.Context, params sdk.RemoteDeployParams) (sdk.TxResult, error) {
	return sdk.TxResult{}, sdkerrors.NewUnsupportedOperationError("sui", "deploy remote interchain token")
}

func (i *Its) RegisterCanonicalToken(ctx context.Context, tokenAddress string) (sdk.TxResult, error) {
	return sdk.TxResult{}, sdkerrors.NewUnsupportedOperationError("sui", "register canonical token")
}

func (i *Its) RegisterCustomToken(ctx context.Context, params sdk.RegisterTokenParams) (sdk.TxResult, error) {
	return sdk.TxResult{}, sdkerrors.NewUnsupportedOperationError("sui", "register custom token")
}

func (i *Its) RegisterTokenMetadata(ctx context.Context, tokenAddress string, gasValue *big.Int) (sdk.TxResult, error) {
	return sdk.TxResult{}, sdkerrors.NewUnsupportedOperationError("sui", "register token metadata")
}

func (i *Its) LinkToken(ctx context.Context, params sdk.LinkTokenParams) (sdk.TxResult, error) {
	return sdk.TxResult{}, sdkerrors.NewUnsupportedOperationError("sui", "link token")
}

func (i *Its) InterchainTransfer(ctx context.Context, params sdk.TransferParams) (sdk.TxResult, error) {
	return sdk.TxResult{}, sdkerrors.NewUnsupportedOperationError("sui", "interchain transfer")
}

func (i *Its) InterchainTokenID(ctx context.Context, deployer string, salt [32]byte) (types.TokenID, error) {
	return types.TokenID{}, sdkerrors.NewUnsupportedOperationError("sui", "derive token id")
}

func (i *Its) SetFlowLimit(ctx context.Context, tokenID types.TokenID, limit *big.Int) (sdk.TxResult, error) {
	return sdk.TxResult{}, sdkerrors.NewUnsupportedOperationError("sui", "set flow limit")
}

func (i *Its) SetPauseStatus(ctx context.Context, paused bool) (sdk.TxResult, error) {
	return sdk.TxResult{}, sdkerrors.NewUnsupportedOperationError("sui", "set pause status")
}
