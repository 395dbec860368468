package evm

import (
	"context"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"

	"github.com/axelarnetwork/axelar-deployments/sdk"
	sdkerrors "github.com/axelarnetwork/axelar-deployments/sdk/errors"
	"github.com/axelarnetwork/axelar-deployments/types"
)

var _ sdk.Gateway = (*Gateway)(nil)

// Gateway drives a deployed amplifier gateway contract.
//
// Approve and rotate payloads arrive as the full calldata produced by the
// multisig prover; they are submitted raw after a selector check.
type Gateway struct {
	client   ContractDeployBackend
	auth     *bind.TransactOpts
	address  common.Address
	contract *bind.BoundContract
}

// NewGateway creates a Gateway bound to the contract at address.
func NewGateway(client ContractDeployBackend, auth *bind.TransactOpts, address common.Address) *Gateway {
	return &Gateway{
		client:   client,
		auth:     auth,
		address:  address,
		contract: bind.NewBoundContract(address, gatewayABI, client, client, client),
	}
}

// CallContract emits an outbound cross-chain message.
func (g *Gateway) CallContract(ctx context.Context, destinationChain, destinationAddress string, payload []byte) (sdk.TxResult, error) {
	tx, err := g.contract.Transact(transactOptsWithCtx(ctx, g.auth), "callContract", destinationChain, destinationAddress, payload)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: txResultHash(tx)}, nil
}

// ApproveMessages submits a message-approval proof as raw calldata.
func (g *Gateway) ApproveMessages(ctx context.Context, executeData []byte) (sdk.TxResult, error) {
	if err := checkSelector(executeData, gatewayABI.Methods["approveMessages"].ID); err != nil {
		return sdk.TxResult{}, err
	}

	tx, err := g.contract.RawTransact(transactOptsWithCtx(ctx, g.auth), executeData)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: txResultHash(tx)}, nil
}

// RotateSigners submits a verifier-set rotation proof as raw calldata.
func (g *Gateway) RotateSigners(ctx context.Context, executeData []byte) (sdk.TxResult, error) {
	if err := checkSelector(executeData, gatewayABI.Methods["rotateSigners"].ID); err != nil {
		return sdk.TxResult{}, err
	}

	tx, err := g.contract.RawTransact(transactOptsWithCtx(ctx, g.auth), executeData)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: txResultHash(tx)}, nil
}

// TransferOperatorship hands the gateway operator role to a new address.
func (g *Gateway) TransferOperatorship(ctx context.Context, newOperator string) (sdk.TxResult, error) {
	if !common.IsHexAddress(newOperator) {
		return sdk.TxResult{}, sdkerrors.NewInvalidAddressError(newOperator)
	}

	tx, err := g.contract.Transact(transactOptsWithCtx(ctx, g.auth), "transferOperatorship", common.HexToAddress(newOperator))
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: txResultHash(tx)}, nil
}

// IsMessageApproved reports whether the gateway has approved the message.
func (g *Gateway) IsMessageApproved(ctx context.Context, msg types.Message) (bool, error) {
	if !common.IsHexAddress(msg.DestinationAddress) {
		return false, sdkerrors.NewInvalidAddressError(msg.DestinationAddress)
	}

	var out []any
	err := g.contract.Call(&bind.CallOpts{Context: ctx}, &out, "isMessageApproved",
		msg.SourceChain, msg.MessageID, msg.SourceAddress,
		common.HexToAddress(msg.DestinationAddress), [32]byte(msg.PayloadHash))
	if err != nil {
		return false, err
	}

	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

// IsMessageExecuted reports whether the destination contract has executed the
// message.
func (g *Gateway) IsMessageExecuted(ctx context.Context, sourceChain, messageID string) (bool, error) {
	var out []any
	err := g.contract.Call(&bind.CallOpts{Context: ctx}, &out, "isMessageExecuted", sourceChain, messageID)
	if err != nil {
		return false, err
	}

	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}
