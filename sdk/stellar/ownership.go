package stellar

import (
	"context"

	"github.com/stellar/go/keypair"

	"github.com/axelarnetwork/axelar-deployments/sdk"
	sdkerrors "github.com/axelarnetwork/axelar-deployments/sdk/errors"
	"github.com/axelarnetwork/axelar-deployments/types"
)

var _ sdk.Ownable = (*Ownership)(nil)

// Ownership transfers soroban contract ownership. The contracts hand over in
// a single step; the two-step flow is not part of their interface.
type Ownership struct {
	client *Client
	kp     *keypair.Full
}

func NewOwnership(client *Client, kp *keypair.Full) *Ownership {
	return &Ownership{client: client, kp: kp}
}

func (o *Ownership) TransferOwnership(ctx context.Context, contract, newOwner string) (sdk.TxResult, error) {
	if !IsValidContractAddress(contract) {
		return sdk.TxResult{}, sdkerrors.NewInvalidAddressError(contract)
	}

	owner, err := Address(newOwner)
	if err != nil {
		return sdk.TxResult{}, err
	}

	resp, err := o.client.InvokeContract(ctx, o.kp, contract, "transfer_ownership", owner)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: resp.Hash}, nil
}

func (o *Ownership) ProposeOwnership(_ context.Context, _, _ string) (sdk.TxResult, error) {
	return sdk.TxResult{}, sdkerrors.NewUnsupportedOperationError(types.FamilyStellar.String(), "propose ownership")
}

func (o *Ownership) AcceptOwnership(_ context.Context, _ string) (sdk.TxResult, error) {
	return sdk.TxResult{}, sdkerrors.NewUnsupportedOperationError(types.FamilyStellar.String(), "accept ownership")
}
