package stellar

import (
	"context"
	"fmt"
	"math/big"

	"github.com/stellar/go/keypair"
	"github.com/stellar/go/xdr"

	"github.com/axelarnetwork/axelar-deployments/sdk"
	sdkerrors "github.com/axelarnetwork/axelar-deployments/sdk/errors"
	"github.com/axelarnetwork/axelar-deployments/types"
)

var _ sdk.InterchainTokenService = (*Its)(nil)

// Its drives the soroban interchain token service contract. Cross-chain gas
// is paid in the chain's native asset through its contract address.
type Its struct {
	client      *Client
	kp          *keypair.Full
	address     string
	nativeToken string
}

// NewIts creates an Its. nativeToken is the contract address of the native
// asset used for cross-chain gas payments.
func NewIts(client *Client, kp *keypair.Full, address, nativeToken string) (*Its, error) {
	if !IsValidContractAddress(address) {
		return nil, sdkerrors.NewInvalidAddressError(address)
	}

	return &Its{client: client, kp: kp, address: address, nativeToken: nativeToken}, nil
}

func (i *Its) SetTrustedChain(ctx context.Context, chain string) (sdk.TxResult, error) {
	return i.invoke(ctx, "set_trusted_chain", String(chain))
}

func (i *Its) RemoveTrustedChain(ctx context.Context, chain string) (sdk.TxResult, error) {
	return i.invoke(ctx, "remove_trusted_chain", String(chain))
}

func (i *Its) IsTrustedChain(ctx context.Context, chain string) (bool, error) {
	result, err := i.client.SimulateInvoke(ctx, i.kp.Address(), i.address, "is_trusted_chain", String(chain))
	if err != nil {
		return false, err
	}

	return boolFromScVal(result)
}

func (i *Its) DeployInterchainToken(ctx context.Context, params sdk.DeployTokenParams) (sdk.TxResult, error) {
	supply, err := I128FromBig(params.InitialSupply)
	if err != nil {
		return sdk.TxResult{}, err
	}

	minter := Void()
	if params.Minter != "" {
		minter, err = Address(params.Minter)
		if err != nil {
			return sdk.TxResult{}, err
		}
	}

	caller, err := Address(i.kp.Address())
	if err != nil {
		return sdk.TxResult{}, err
	}

	return i.invoke(ctx, "deploy_interchain_token",
		caller, Bytes32(params.Salt), tokenMetadataScVal(params.Token), supply, minter)
}

func (i *Its) DeployRemoteInterchainToken(ctx context.Context, params sdk.RemoteDeployParams) (sdk.TxResult, error) {
	caller, err := Address(i.kp.Address())
	if err != nil {
		return sdk.TxResult{}, err
	}

	gasToken, err := i.gasToken(params.GasValue)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return i.invoke(ctx, "deploy_remote_interchain_token",
		caller, Bytes32(params.Salt), String(params.DestinationChain), gasToken)
}

func (i *Its) RegisterCanonicalToken(ctx context.Context, tokenAddress string) (sdk.TxResult, error) {
	token, err := Address(tokenAddress)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return i.invoke(ctx, "register_canonical_token", token)
}

func (i *Its) RegisterCustomToken(ctx context.Context, params sdk.RegisterTokenParams) (sdk.TxResult, error) {
	token, err := Address(params.TokenAddress)
	if err != nil {
		return sdk.TxResult{}, err
	}

	operator := Void()
	if params.Operator != "" {
		operator, err = Address(params.Operator)
		if err != nil {
			return sdk.TxResult{}, err
		}
	}

	caller, err := Address(i.kp.Address())
	if err != nil {
		return sdk.TxResult{}, err
	}

	return i.invoke(ctx, "register_custom_token",
		caller, Bytes32(params.Salt), token, U32(uint32(params.TokenManagerType)), operator)
}

func (i *Its) RegisterTokenMetadata(ctx context.Context, tokenAddress string, gasValue *big.Int) (sdk.TxResult, error) {
	token, err := Address(tokenAddress)
	if err != nil {
		return sdk.TxResult{}, err
	}

	spender, err := Address(i.kp.Address())
	if err != nil {
		return sdk.TxResult{}, err
	}

	gasToken, err := i.gasToken(gasValue)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return i.invoke(ctx, "register_token_metadata", token, spender, gasToken)
}

func (i *Its) LinkToken(ctx context.Context, params sdk.LinkTokenParams) (sdk.TxResult, error) {
	caller, err := Address(i.kp.Address())
	if err != nil {
		return sdk.TxResult{}, err
	}

	linkParams := Void()
	if len(params.LinkParams) > 0 {
		linkParams = Bytes(params.LinkParams)
	}

	gasToken, err := i.gasToken(params.GasValue)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return i.invoke(ctx, "link_token",
		caller, Bytes32(params.Salt), String(params.DestinationChain),
		Bytes(destinationAddressBytes(params.DestinationTokenAddress)),
		U32(uint32(params.TokenManagerType)), linkParams, gasToken)
}

func (i *Its) InterchainTransfer(ctx context.Context, params sdk.TransferParams) (sdk.TxResult, error) {
	caller, err := Address(i.kp.Address())
	if err != nil {
		return sdk.TxResult{}, err
	}

	amount, err := I128FromBig(params.Amount)
	if err != nil {
		return sdk.TxResult{}, err
	}

	metadata := Void()
	if len(params.Data) > 0 {
		metadata = Bytes(params.Data)
	}

	gasToken, err := i.gasToken(params.GasValue)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return i.invoke(ctx, "interchain_transfer",
		caller, Bytes32(params.TokenID), String(params.DestinationChain),
		Bytes(destinationAddressBytes(params.DestinationAddress)), amount, metadata, gasToken)
}

func (i *Its) InterchainTokenID(ctx context.Context, deployer string, salt [32]byte) (types.TokenID, error) {
	deployerAddress, err := Address(deployer)
	if err != nil {
		return types.TokenID{}, err
	}

	result, err := i.client.SimulateInvoke(ctx, i.kp.Address(), i.address, "interchain_token_id",
		deployerAddress, Bytes32(salt))
	if err != nil {
		return types.TokenID{}, err
	}

	id, err := bytes32FromScVal(result)
	if err != nil {
		return types.TokenID{}, err
	}

	return types.TokenID(id), nil
}

// SetFlowLimit caps the per-epoch flow for a token. A nil limit removes the
// cap.
func (i *Its) SetFlowLimit(ctx context.Context, tokenID types.TokenID, limit *big.Int) (sdk.TxResult, error) {
	flowLimit := Void()
	if limit != nil {
		var err error
		flowLimit, err = I128FromBig(limit)
		if err != nil {
			return sdk.TxResult{}, err
		}
	}

	return i.invoke(ctx, "set_flow_limit", Bytes32(tokenID), flowLimit)
}

func (i *Its) SetPauseStatus(ctx context.Context, paused bool) (sdk.TxResult, error) {
	function := "unpause"
	if paused {
		function = "pause"
	}

	return i.invoke(ctx, function)
}

func (i *Its) invoke(ctx context.Context, function string, args ...xdr.ScVal) (sdk.TxResult, error) {
	resp, err := i.client.InvokeContract(ctx, i.kp, i.address, function, args...)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: resp.Hash}, nil
}

// gasToken builds the optional gas payment: None when no gas value is set,
// otherwise the native token with the amount.
func (i *Its) gasToken(amount *big.Int) (xdr.ScVal, error) {
	return gasTokenScVal(i.nativeToken, amount)
}

func gasTokenScVal(tokenAddress string, amount *big.Int) (xdr.ScVal, error) {
	if amount == nil || amount.Sign() == 0 {
		return Void(), nil
	}

	address, err := Address(tokenAddress)
	if err != nil {
		return xdr.ScVal{}, err
	}

	amountVal, err := I128FromBig(amount)
	if err != nil {
		return xdr.ScVal{}, err
	}

	return Map(
		MapEntry{Key: "address", Val: address},
		MapEntry{Key: "amount", Val: amountVal},
	), nil
}

// tokenMetadataScVal encodes soroban token metadata as its struct map.
func tokenMetadataScVal(token types.TokenMetadata) xdr.ScVal {
	return Map(
		MapEntry{Key: "decimal", Val: U32(uint32(token.Decimals))},
		MapEntry{Key: "name", Val: String(token.Name)},
		MapEntry{Key: "symbol", Val: String(token.Symbol)},
	)
}

// destinationAddressBytes converts a destination address to its wire form:
// hex strings decode to raw bytes, anything else passes through as UTF-8.
func destinationAddressBytes(address string) []byte {
	if decoded, ok := tryDecodeHex(address); ok {
		return decoded
	}

	return []byte(address)
}

func bytes32FromScVal(v xdr.ScVal) ([32]byte, error) {
	if v.Type != xdr.ScValTypeScvBytes || v.Bytes == nil || len(*v.Bytes) != 32 {
		return [32]byte{}, fmt.Errorf("contract returned %s, expected 32 bytes", v.Type)
	}

	var fixed [32]byte
	copy(fixed[:], *v.Bytes)

	return fixed, nil
}
