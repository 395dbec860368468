package evm

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	abiutils "github.com/axelarnetwork/axelar-deployments/internal/utils/abi"
	"github.com/axelarnetwork/axelar-deployments/sdk"
	"github.com/axelarnetwork/axelar-deployments/types"
)

var _ sdk.InterchainTokenService = (*Its)(nil)

// Its drives the interchain token service. Token deployments and canonical
// registrations go through the token factory; everything else hits the
// service contract directly.
type Its struct {
	client  ContractDeployBackend
	auth    *bind.TransactOpts
	service *bind.BoundContract
	factory *bind.BoundContract
}

func NewIts(client ContractDeployBackend, auth *bind.TransactOpts, service, factory common.Address) *Its {
	return &Its{
		client:  client,
		auth:    auth,
		service: bind.NewBoundContract(service, itsABI, client, client, client),
		factory: bind.NewBoundContract(factory, itsFactoryABI, client, client, client),
	}
}

func (e *Its) SetTrustedChain(ctx context.Context, chain string) (sdk.TxResult, error) {
	tx, err := e.service.Transact(transactOptsWithCtx(ctx, e.auth), "setTrustedChain", chain)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: txResultHash(tx)}, nil
}

func (e *Its) RemoveTrustedChain(ctx context.Context, chain string) (sdk.TxResult, error) {
	tx, err := e.service.Transact(transactOptsWithCtx(ctx, e.auth), "removeTrustedChain", chain)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: txResultHash(tx)}, nil
}

func (e *Its) IsTrustedChain(ctx context.Context, chain string) (bool, error) {
	var out []any
	if err := e.service.Call(&bind.CallOpts{Context: ctx}, &out, "isTrustedChain", chain); err != nil {
		return false, err
	}

	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

func (e *Its) DeployInterchainToken(ctx context.Context, params sdk.DeployTokenParams) (sdk.TxResult, error) {
	minter := zeroAddress
	if params.Minter != "" {
		parsed, err := ParseAddress(params.Minter)
		if err != nil {
			return sdk.TxResult{}, err
		}
		minter = parsed
	}

	tx, err := e.factory.Transact(transactOptsWithCtx(ctx, e.auth), "deployInterchainToken",
		params.Salt, params.Token.Name, params.Token.Symbol, params.Token.Decimals, orZero(params.InitialSupply), minter)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: txResultHash(tx)}, nil
}

func (e *Its) DeployRemoteInterchainToken(ctx context.Context, params sdk.RemoteDeployParams) (sdk.TxResult, error) {
	opts := transactOptsWithCtx(ctx, e.auth)
	opts.Value = orZero(params.GasValue)

	tx, err := e.factory.Transact(opts, "deployRemoteInterchainToken",
		params.Salt, params.DestinationChain, orZero(params.GasValue))
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: txResultHash(tx)}, nil
}

func (e *Its) RegisterCanonicalToken(ctx context.Context, tokenAddress string) (sdk.TxResult, error) {
	token, err := ParseAddress(tokenAddress)
	if err != nil {
		return sdk.TxResult{}, err
	}

	tx, err := e.factory.Transact(transactOptsWithCtx(ctx, e.auth), "registerCanonicalInterchainToken", token)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: txResultHash(tx)}, nil
}

func (e *Its) RegisterCustomToken(ctx context.Context, params sdk.RegisterTokenParams) (sdk.TxResult, error) {
	token, err := ParseAddress(params.TokenAddress)
	if err != nil {
		return sdk.TxResult{}, err
	}

	operator := zeroAddress
	if params.Operator != "" {
		parsed, err := ParseAddress(params.Operator)
		if err != nil {
			return sdk.TxResult{}, err
		}
		operator = parsed
	}

	tx, err := e.service.Transact(transactOptsWithCtx(ctx, e.auth), "registerCustomToken",
		params.Salt, token, params.TokenManagerType, operator)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: txResultHash(tx)}, nil
}

func (e *Its) RegisterTokenMetadata(ctx context.Context, tokenAddress string, gasValue *big.Int) (sdk.TxResult, error) {
	token, err := ParseAddress(tokenAddress)
	if err != nil {
		return sdk.TxResult{}, err
	}

	opts := transactOptsWithCtx(ctx, e.auth)
	opts.Value = orZero(gasValue)

	tx, err := e.service.Transact(opts, "registerTokenMetadata", token, orZero(gasValue))
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: txResultHash(tx)}, nil
}

func (e *Its) LinkToken(ctx context.Context, params sdk.LinkTokenParams) (sdk.TxResult, error) {
	opts := transactOptsWithCtx(ctx, e.auth)
	opts.Value = orZero(params.GasValue)

	tx, err := e.service.Transact(opts, "linkToken",
		params.Salt, params.DestinationChain, destinationAddressBytes(params.DestinationTokenAddress),
		params.TokenManagerType, params.LinkParams, orZero(params.GasValue))
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: txResultHash(tx)}, nil
}

func (e *Its) InterchainTransfer(ctx context.Context, params sdk.TransferParams) (sdk.TxResult, error) {
	opts := transactOptsWithCtx(ctx, e.auth)
	opts.Value = orZero(params.GasValue)

	metadata := params.Data
	if metadata == nil {
		metadata = []byte{}
	}

	tx, err := e.service.Transact(opts, "interchainTransfer",
		[32]byte(params.TokenID), params.DestinationChain, destinationAddressBytes(params.DestinationAddress),
		orZero(params.Amount), metadata, orZero(params.GasValue))
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: txResultHash(tx)}, nil
}

func (e *Its) InterchainTokenID(ctx context.Context, deployer string, salt [32]byte) (types.TokenID, error) {
	deployerAddress, err := ParseAddress(deployer)
	if err != nil {
		return types.TokenID{}, err
	}

	var out []any
	if err := e.service.Call(&bind.CallOpts{Context: ctx}, &out, "interchainTokenId", deployerAddress, salt); err != nil {
		return types.TokenID{}, err
	}

	return types.TokenID(*abi.ConvertType(out[0], new([32]byte)).(*[32]byte)), nil
}

// prefixInterchainTokenID mirrors the service contract's token id namespace
// constant.
var prefixInterchainTokenID = crypto.Keccak256Hash([]byte("its-interchain-token-id"))

// DeriveInterchainTokenID computes the token id the service assigns to a
// deployer/salt pair without a node round trip. It matches the on-chain
// interchainTokenId view, so manifests can record ids before deployment.
func DeriveInterchainTokenID(deployer common.Address, salt [32]byte) (types.TokenID, error) {
	encoded, err := abiutils.ABIEncode(`[{"type":"bytes32"},{"type":"address"},{"type":"bytes32"}]`,
		[32]byte(prefixInterchainTokenID), deployer, salt)
	if err != nil {
		return types.TokenID{}, err
	}

	return types.TokenID(crypto.Keccak256Hash(encoded)), nil
}

func (e *Its) SetFlowLimit(ctx context.Context, tokenID types.TokenID, limit *big.Int) (sdk.TxResult, error) {
	tx, err := e.service.Transact(transactOptsWithCtx(ctx, e.auth), "setFlowLimits",
		[][32]byte{tokenID}, []*big.Int{orZero(limit)})
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: txResultHash(tx)}, nil
}

func (e *Its) SetPauseStatus(ctx context.Context, paused bool) (sdk.TxResult, error) {
	tx, err := e.service.Transact(transactOptsWithCtx(ctx, e.auth), "setPauseStatus", paused)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: txResultHash(tx)}, nil
}

// destinationAddressBytes converts a destination address to its wire form:
// hex strings decode to raw bytes, anything else passes through as UTF-8.
// Non-EVM destinations use bech32 or base58 text addresses.
func destinationAddressBytes(address string) []byte {
	if decoded, err := hexutil.Decode(address); err == nil {
		return decoded
	}

	return []byte(address)
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}

	return v
}
