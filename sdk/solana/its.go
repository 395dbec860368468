package solana

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gagliardetto/solana-go"

	"github.com/axelarnetwork/axelar-deployments/sdk"
	sdkerrors "github.com/axelarnetwork/axelar-deployments/sdk/errors"
	"github.com/axelarnetwork/axelar-deployments/types"
)

// Token id derivation prefixes, shared with the on-chain program.
const (
	interchainTokenSaltPrefix = "interchain-token-salt"
	canonicalTokenSaltPrefix  = "canonical-token-salt"
	customTokenSaltPrefix     = "solana-custom-token-salt"
)

var _ sdk.InterchainTokenService = (*Its)(nil)

// Its drives the interchain token service program. The deployed anchor
// program exposes initialization, pausing and trusted-chain management; token
// deployments and transfers arrive as GMP messages and have no direct
// instructions yet, so those operations return unsupported errors.
type Its struct {
	client  *Client
	program solana.PublicKey
}

// NewIts creates an Its bound to a token service program id.
func NewIts(client *Client, programID string) (*Its, error) {
	program, err := parseAddress(programID)
	if err != nil {
		return nil, err
	}

	return &Its{client: client, program: program}, nil
}

type initializeItsArgs struct {
	ChainName     string
	ItsHubAddress string
}

// Initialize creates the root config account. The operator must co-sign, so
// the payer key doubles as the operator here. chainName is this chain's
// amplifier name; itsHubAddress is the hub contract on the axelar network.
func (i *Its) Initialize(ctx context.Context, operator, chainName, itsHubAddress string) (sdk.TxResult, error) {
	operatorKey, err := parseAddress(operator)
	if err != nil {
		return sdk.TxResult{}, err
	}

	itsRoot, err := ItsRootPDA(i.program)
	if err != nil {
		return sdk.TxResult{}, err
	}

	programData, err := ProgramDataAddress(i.program)
	if err != nil {
		return sdk.TxResult{}, err
	}

	userRoles, err := UserRolesPDA(i.program, itsRoot, operatorKey)
	if err != nil {
		return sdk.TxResult{}, err
	}

	data, err := instructionData("initialize", initializeItsArgs{
		ChainName:     chainName,
		ItsHubAddress: itsHubAddress,
	})
	if err != nil {
		return sdk.TxResult{}, err
	}

	ix := solana.NewInstruction(i.program, solana.AccountMetaSlice{
		solana.Meta(i.client.Payer()).WRITE().SIGNER(),
		solana.Meta(programData),
		solana.Meta(itsRoot).WRITE(),
		solana.Meta(solana.SystemProgramID),
		solana.Meta(operatorKey).SIGNER(),
		solana.Meta(userRoles).WRITE(),
	}, data)

	sig, err := i.client.send(ctx, ix)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: sig}, nil
}

type trustedChainArgs struct {
	ChainName string
}

func (i *Its) SetTrustedChain(ctx context.Context, chain string) (sdk.TxResult, error) {
	return i.trustedChain(ctx, "set_trusted_chain", chain)
}

func (i *Its) RemoveTrustedChain(ctx context.Context, chain string) (sdk.TxResult, error) {
	return i.trustedChain(ctx, "remove_trusted_chain", chain)
}

// trustedChain submits a trusted-chain update signed by the payer, whose
// roles account authorizes the change.
func (i *Its) trustedChain(ctx context.Context, method, chain string) (sdk.TxResult, error) {
	if chain == "" {
		return sdk.TxResult{}, errors.New("chain name cannot be empty")
	}

	itsRoot, err := ItsRootPDA(i.program)
	if err != nil {
		return sdk.TxResult{}, err
	}

	userRoles, err := UserRolesPDA(i.program, itsRoot, i.client.Payer())
	if err != nil {
		return sdk.TxResult{}, err
	}

	data, err := instructionData(method, trustedChainArgs{ChainName: chain})
	if err != nil {
		return sdk.TxResult{}, err
	}

	ix := solana.NewInstruction(i.program, solana.AccountMetaSlice{
		solana.Meta(itsRoot).WRITE(),
		solana.Meta(i.client.Payer()).SIGNER(),
		solana.Meta(userRoles),
	}, data)

	sig, err := i.client.send(ctx, ix)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: sig}, nil
}

// IsTrustedChain is not queryable on chain: the trusted set lives inside the
// root config account and the program publishes no layout for it.
func (i *Its) IsTrustedChain(ctx context.Context, chain string) (bool, error) {
	return false, sdkerrors.NewUnsupportedOperationError(types.FamilySVM.String(), "query trusted chain")
}

type setPauseStatusArgs struct {
	Paused bool
}

func (i *Its) SetPauseStatus(ctx context.Context, paused bool) (sdk.TxResult, error) {
	itsRoot, err := ItsRootPDA(i.program)
	if err != nil {
		return sdk.TxResult{}, err
	}

	userRoles, err := UserRolesPDA(i.program, itsRoot, i.client.Payer())
	if err != nil {
		return sdk.TxResult{}, err
	}

	data, err := instructionData("set_pause_status", setPauseStatusArgs{Paused: paused})
	if err != nil {
		return sdk.TxResult{}, err
	}

	ix := solana.NewInstruction(i.program, solana.AccountMetaSlice{
		solana.Meta(itsRoot).WRITE(),
		solana.Meta(i.client.Payer()).SIGNER(),
		solana.Meta(userRoles),
	}, data)

	sig, err := i.client.send(ctx, ix)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: sig}, nil
}

// InterchainTokenID derives the token id for a deployer/salt pair locally;
// the derivation is pure keccak and needs no RPC.
func (i *Its) InterchainTokenID(ctx context.Context, deployer string, salt [32]byte) (types.TokenID, error) {
	deployerKey, err := parseAddress(deployer)
	if err != nil {
		return types.TokenID{}, err
	}

	prefixHash := crypto.Keccak256([]byte(interchainTokenSaltPrefix), salt[:])

	return types.TokenID(crypto.Keccak256Hash(prefixHash, deployerKey.Bytes())), nil
}

// CanonicalTokenID derives the token id a canonical mint registration maps
// to.
func (i *Its) CanonicalTokenID(mint string) (types.TokenID, error) {
	mintKey, err := parseAddress(mint)
	if err != nil {
		return types.TokenID{}, err
	}

	return types.TokenID(crypto.Keccak256Hash([]byte(canonicalTokenSaltPrefix), mintKey.Bytes())), nil
}

// LinkedTokenID derives the token id a custom token link maps to.
func (i *Its) LinkedTokenID(sender string, salt [32]byte) (types.TokenID, error) {
	senderKey, err := parseAddress(sender)
	if err != nil {
		return types.TokenID{}, err
	}

	return types.TokenID(crypto.Keccak256Hash([]byte(customTokenSaltPrefix), senderKey.Bytes(), salt[:])), nil
}

// TokenManagerInfo describes a token id's registration.
type TokenManagerInfo struct {
	TokenAddress string
	Type         uint8

	// FlowLimit is nil when no per-epoch cap is set.
	FlowLimit *uint64
}

// TokenManager reads the token manager account for a token id.
func (i *Its) TokenManager(ctx context.Context, tokenID types.TokenID) (TokenManagerInfo, error) {
	itsRoot, err := ItsRootPDA(i.program)
	if err != nil {
		return TokenManagerInfo{}, err
	}

	pda, err := TokenManagerPDA(i.program, itsRoot, tokenID)
	if err != nil {
		return TokenManagerInfo{}, err
	}

	data, err := i.client.accountData(ctx, pda)
	if err != nil {
		return TokenManagerInfo{}, err
	}

	manager, err := decodeTokenManager(data)
	if err != nil {
		return TokenManagerInfo{}, err
	}

	return TokenManagerInfo{
		TokenAddress: manager.TokenAddress.String(),
		Type:         manager.Type,
		FlowLimit:    manager.FlowSlot.FlowLimit,
	}, nil
}

func (i *Its) DeployInterchainToken(ctx context.Context, params sdk.DeployTokenParams) (sdk.TxResult, error) {
	return sdk.TxResult{}, sdkerrors.NewUnsupportedOperationError(types.FamilySVM.String(), "deploy interchain token")
}

func (i *Its) DeployRemoteInterchainToken(ctx context.Context, params sdk.RemoteDeployParams) (sdk.TxResult, error) {
	return sdk.TxResult{}, sdkerrors.NewUnsupportedOperationError(types.FamilySVM.String(), "deploy remote interchain token")
}

func (i *Its) RegisterCanonicalToken(ctx context.Context, tokenAddress string) (sdk.TxResult, error) {
	return sdk.TxResult{}, sdkerrors.NewUnsupportedOperationError(types.FamilySVM.String(), "register canonical token")
}

func (i *Its) RegisterCustomToken(ctx context.Context, params sdk.RegisterTokenParams) (sdk.TxResult, error) {
	return sdk.TxResult{}, sdkerrors.NewUnsupportedOperationError(types.FamilySVM.String(), "register custom token")
}

func (i *Its) RegisterTokenMetadata(ctx context.Context, tokenAddress string, gasValue *big.Int) (sdk.TxResult, error) {
	return sdk.TxResult{}, sdkerrors.NewUnsupportedOperationError(types.FamilySVM.String(), "register token metadata")
}

func (i *Its) LinkToken(ctx context.Context, params sdk.LinkTokenParams) (sdk.TxResult, error) {
	return sdk.TxResult{}, sdkerrors.NewUnsupportedOperationError(types.FamilySVM.String(), "link token")
}

func (i *Its) InterchainTransfer(ctx context.Context, params sdk.TransferParams) (sdk.TxResult, error) {
	return sdk.TxResult{}, sdkerrors.NewUnsupportedOperationError(types.FamilySVM.String(), "interchain transfer")
}

func (i *Its) SetFlowLimit(ctx context.Context, tokenID types.TokenID, limit *big.Int) (sdk.TxResult, error) {
	return sdk.TxResult{}, sdkerrors.NewUnsupportedOperationError(types.FamilySVM.String(), "set flow limit")
}
