package evm

import (
	"context"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"

	"github.com/axelarnetwork/axelar-deployments/sdk"
)

var _ sdk.Ownable = (*Ownership)(nil)

// Ownership administers ownership of any axelar ownable contract.
type Ownership struct {
	client ContractDeployBackend
	auth   *bind.TransactOpts
}

func NewOwnership(client ContractDeployBackend, auth *bind.TransactOpts) *Ownership {
	return &Ownership{client: client, auth: auth}
}

func (o *Ownership) TransferOwnership(ctx context.Context, contract, newOwner string) (sdk.TxResult, error) {
	return o.transact(ctx, contract, "transferOwnership", newOwner)
}

func (o *Ownership) ProposeOwnership(ctx context.Context, contract, newOwner string) (sdk.TxResult, error) {
	return o.transact(ctx, contract, "proposeOwnership", newOwner)
}

func (o *Ownership) AcceptOwnership(ctx context.Context, contract string) (sdk.TxResult, error) {
	address, err := ParseAddress(contract)
	if err != nil {
		return sdk.TxResult{}, err
	}

	bound := bind.NewBoundContract(address, ownableABI, o.client, o.client, o.client)

	tx, err := bound.Transact(transactOptsWithCtx(ctx, o.auth), "acceptOwnership")
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: txResultHash(tx)}, nil
}

func (o *Ownership) transact(ctx context.Context, contract, method, newOwner string) (sdk.TxResult, error) {
	address, err := ParseAddress(contract)
	if err != nil {
		return sdk.TxResult{}, err
	}
	owner, err := ParseAddress(newOwner)
	if err != nil {
		return sdk.TxResult{}, err
	}

	bound := bind.NewBoundContract(address, ownableABI, o.client, o.client, o.client)

	tx, err := bound.Transact(transactOptsWithCtx(ctx, o.auth), method, owner)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: txResultHash(tx)}, nil
}
