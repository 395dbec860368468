package stellar

import (
	"context"

	"github.com/stellar/go/keypair"

	"github.com/axelarnetwork/axelar-deployments/sdk"
	sdkerrors "github.com/axelarnetwork/axelar-deployments/sdk/errors"
)

var _ sdk.OperatorRegistry = (*Operators)(nil)

// Operators drives the soroban operators contract.
type Operators struct {
	client  *Client
	kp      *keypair.Full
	address string
}

func NewOperators(client *Client, kp *keypair.Full, address string) (*Operators, error) {
	if !IsValidContractAddress(address) {
		return nil, sdkerrors.NewInvalidAddressError(address)
	}

	return &Operators{client: client, kp: kp, address: address}, nil
}

func (o *Operators) IsOperator(ctx context.Context, address string) (bool, error) {
	operator, err := Address(address)
	if err != nil {
		return false, err
	}

	result, err := o.client.SimulateInvoke(ctx, o.kp.Address(), o.address, "is_operator", operator)
	if err != nil {
		return false, err
	}

	return boolFromScVal(result)
}

func (o *Operators) AddOperator(ctx context.Context, address string) (sdk.TxResult, error) {
	return o.invoke(ctx, "add_operator", address)
}

func (o *Operators) RemoveOperator(ctx context.Context, address string) (sdk.TxResult, error) {
	return o.invoke(ctx, "remove_operator", address)
}

func (o *Operators) invoke(ctx context.Context, function, address string) (sdk.TxResult, error) {
	operator, err := Address(address)
	if err != nil {
		return sdk.TxResult{}, err
	}

	resp, err := o.client.InvokeContract(ctx, o.kp, o.address, function, operator)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: resp.Hash}, nil
}
