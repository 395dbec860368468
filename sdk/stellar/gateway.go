package stellar

import (
	"context"
	"fmt"

	"github.com/stellar/go/keypair"
	"github.com/stellar/go/xdr"

	"github.com/axelarnetwork/axelar-deployments/sdk"
	sdkerrors "github.com/axelarnetwork/axelar-deployments/sdk/errors"
	"github.com/axelarnetwork/axelar-deployments/types"
)

var _ sdk.Gateway = (*Gateway)(nil)

// Gateway drives the soroban amplifier gateway contract. Amplifier proofs
// arrive as an XDR ScVec of (payload, proof) produced by the multisig
// prover; the pair is passed to the contract unchanged.
type Gateway struct {
	client  *Client
	kp      *keypair.Full
	address string
}

func NewGateway(client *Client, kp *keypair.Full, address string) (*Gateway, error) {
	if !IsValidContractAddress(address) {
		return nil, sdkerrors.NewInvalidAddressError(address)
	}

	return &Gateway{client: client, kp: kp, address: address}, nil
}

func (g *Gateway) CallContract(ctx context.Context, destinationChain, destinationAddress string, payload []byte) (sdk.TxResult, error) {
	caller, err := Address(g.kp.Address())
	if err != nil {
		return sdk.TxResult{}, err
	}

	resp, err := g.client.InvokeContract(ctx, g.kp, g.address, "call_contract",
		caller, String(destinationChain), String(destinationAddress), Bytes(payload))
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: resp.Hash}, nil
}

func (g *Gateway) ApproveMessages(ctx context.Context, executeData []byte) (sdk.TxResult, error) {
	messages, proof, err := decodeExecuteData(executeData)
	if err != nil {
		return sdk.TxResult{}, err
	}

	resp, err := g.client.InvokeContract(ctx, g.kp, g.address, "approve_messages", messages, proof)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: resp.Hash}, nil
}

// RotateSigners submits a verifier-set rotation. The rotation delay is never
// bypassed; bypass requires the operator role and a deliberate manual call.
func (g *Gateway) RotateSigners(ctx context.Context, executeData []byte) (sdk.TxResult, error) {
	signers, proof, err := decodeExecuteData(executeData)
	if err != nil {
		return sdk.TxResult{}, err
	}

	resp, err := g.client.InvokeContract(ctx, g.kp, g.address, "rotate_signers", signers, proof, Bool(false))
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: resp.Hash}, nil
}

func (g *Gateway) TransferOperatorship(ctx context.Context, newOperator string) (sdk.TxResult, error) {
	operator, err := Address(newOperator)
	if err != nil {
		return sdk.TxResult{}, err
	}

	resp, err := g.client.InvokeContract(ctx, g.kp, g.address, "transfer_operatorship", operator)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: resp.Hash}, nil
}

func (g *Gateway) IsMessageApproved(ctx context.Context, msg types.Message) (bool, error) {
	contractAddress, err := Address(msg.DestinationAddress)
	if err != nil {
		return false, err
	}

	result, err := g.client.SimulateInvoke(ctx, g.kp.Address(), g.address, "is_message_approved",
		String(msg.SourceChain), String(msg.MessageID), String(msg.SourceAddress),
		contractAddress, Bytes32(msg.PayloadHash))
	if err != nil {
		return false, err
	}

	return boolFromScVal(result)
}

func (g *Gateway) IsMessageExecuted(ctx context.Context, sourceChain, messageID string) (bool, error) {
	result, err := g.client.SimulateInvoke(ctx, g.kp.Address(), g.address, "is_message_executed",
		String(sourceChain), String(messageID))
	if err != nil {
		return false, err
	}

	return boolFromScVal(result)
}

// decodeExecuteData splits an amplifier proof blob into its payload and
// proof contract values.
func decodeExecuteData(executeData []byte) (xdr.ScVal, xdr.ScVal, error) {
	var val xdr.ScVal
	if err := xdr.SafeUnmarshal(executeData, &val); err != nil {
		return xdr.ScVal{}, xdr.ScVal{}, sdkerrors.NewInvalidExecuteDataError(fmt.Sprintf("decode xdr: %v", err))
	}

	if val.Type != xdr.ScValTypeScvVec || val.Vec == nil || *val.Vec == nil {
		return xdr.ScVal{}, xdr.ScVal{}, sdkerrors.NewInvalidExecuteDataError("expected a vector of payload and proof")
	}

	vec := **val.Vec
	if len(vec) != 2 {
		return xdr.ScVal{}, xdr.ScVal{}, sdkerrors.NewInvalidExecuteDataError(fmt.Sprintf("expected 2 elements, got %d", len(vec)))
	}

	return vec[0], vec[1], nil
}

func boolFromScVal(v xdr.ScVal) (bool, error) {
	if v.Type != xdr.ScValTypeScvBool || v.B == nil {
		return false, fmt.Errorf("contract returned %s, expected bool", v.Type)
	}

	return *v.B, nil
}
