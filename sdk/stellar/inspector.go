package stellar

import (
	"context"
	"fmt"

	"github.com/stellar/go/xdr"

	"github.com/axelarnetwork/axelar-deployments/sdk"
	sdkerrors "github.com/axelarnetwork/axelar-deployments/sdk/errors"
)

var _ sdk.Inspector = (*Inspector)(nil)

// Inspector reads deployed soroban contract state through simulation. source
// is any funded account; simulations never submit.
type Inspector struct {
	client  *Client
	source  string
	gateway string
}

func NewInspector(client *Client, source, gateway string) (*Inspector, error) {
	if !IsValidContractAddress(gateway) {
		return nil, sdkerrors.NewInvalidAddressError(gateway)
	}

	return &Inspector{client: client, source: source, gateway: gateway}, nil
}

func (i *Inspector) GatewayState(ctx context.Context) (sdk.GatewayState, error) {
	epochVal, err := i.client.SimulateInvoke(ctx, i.source, i.gateway, "epoch")
	if err != nil {
		return sdk.GatewayState{}, err
	}

	epoch, err := u64FromScVal(epochVal)
	if err != nil {
		return sdk.GatewayState{}, err
	}

	signersHashVal, err := i.client.SimulateInvoke(ctx, i.source, i.gateway, "signers_hash_by_epoch", U64(epoch))
	if err != nil {
		return sdk.GatewayState{}, err
	}

	signersHash, err := bytes32FromScVal(signersHashVal)
	if err != nil {
		return sdk.GatewayState{}, err
	}

	operator, err := i.Operator(ctx, i.gateway)
	if err != nil {
		return sdk.GatewayState{}, err
	}

	domainSeparatorVal, err := i.client.SimulateInvoke(ctx, i.source, i.gateway, "domain_separator")
	if err != nil {
		return sdk.GatewayState{}, err
	}

	domainSeparator, err := bytes32FromScVal(domainSeparatorVal)
	if err != nil {
		return sdk.GatewayState{}, err
	}

	return sdk.GatewayState{
		Operator:        operator,
		DomainSeparator: domainSeparator,
		Epoch:           epoch,
		SignersHash:     signersHash,
	}, nil
}

func (i *Inspector) Owner(ctx context.Context, contract string) (string, error) {
	return i.readAddress(ctx, contract, "owner")
}

func (i *Inspector) Operator(ctx context.Context, contract string) (string, error) {
	return i.readAddress(ctx, contract, "operator")
}

func (i *Inspector) readAddress(ctx context.Context, contract, function string) (string, error) {
	if !IsValidContractAddress(contract) {
		return "", sdkerrors.NewInvalidAddressError(contract)
	}

	result, err := i.client.SimulateInvoke(ctx, i.source, contract, function)
	if err != nil {
		return "", err
	}

	if result.Type != xdr.ScValTypeScvAddress || result.Address == nil {
		return "", fmt.Errorf("contract returned %s, expected an address", result.Type)
	}

	return ScAddressToString(*result.Address)
}

func u64FromScVal(v xdr.ScVal) (uint64, error) {
	if v.Type != xdr.ScValTypeScvU64 || v.U64 == nil {
		return 0, fmt.Errorf("contract returned %s, expected u64", v.Type)
	}

	return uint64(*v.U64), nil
}
