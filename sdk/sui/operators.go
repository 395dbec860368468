package sui

import (
	"context"

	"github.com/block-vision/sui-go-sdk/models"
	"github.com/block-vision/sui-go-sdk/transaction"

	"github.com/axelarnetwork/axelar-deployments/sdk"
	sdkerrors "github.com/axelarnetwork/axelar-deployments/sdk/errors"
)

const operatorsModule = "operators"

// Operators administers the operators package. Adding an operator mints an
// OperatorCap into their wallet; removing one revokes it. Both require the
// OwnerCap.
type Operators struct {
	client    *Client
	packageID string
	operators string
	ownerCap  string
}

var _ sdk.OperatorRegistry = (*Operators)(nil)

// NewOperators creates an Operators for a published package id, its shared
// Operators object and the OwnerCap object.
func NewOperators(client *Client, packageID, operatorsObject, ownerCapObject string) (*Operators, error) {
	pkg, err := normalizeAddress(packageID)
	if err != nil {
		return nil, err
	}
	registry, err := normalizeAddress(operatorsObject)
	if err != nil {
		return nil, err
	}
	ownerCap, err := normalizeAddress(ownerCapObject)
	if err != nil {
		return nil, err
	}

	return &Operators{client: client, packageID: pkg, operators: registry, ownerCap: ownerCap}, nil
}

// IsOperator is unsupported; membership is an OperatorCap owned by the
// operator's wallet, and listing another wallet's objects runs through the
// indexer tooling.
func (o *Operators) IsOperator(ctx context.Context, address string) (bool, error) {
	return false, sdkerrors.NewUnsupportedOperationError("sui", "query operator")
}

// AddOperator mints an OperatorCap for the address.
func (o *Operators) AddOperator(ctx context.Context, address string) (sdk.TxResult, error) {
	return o.operatorCall(ctx, "add_operator", address)
}

// RemoveOperator revokes the address's OperatorCap.
func (o *Operators) RemoveOperator(ctx context.Context, address string) (sdk.TxResult, error) {
	return o.operatorCall(ctx, "remove_operator", address)
}

func (o *Operators) operatorCall(ctx context.Context, function, address string) (sdk.TxResult, error) {
	operator, err := normalizeAddress(address)
	if err != nil {
		return sdk.TxResult{}, err
	}

	ptb := o.client.ptb()
	ptb.MoveCall(
		models.SuiAddress(o.packageID),
		operatorsModule,
		function,
		nil,
		[]transaction.Argument{ptb.Object(o.operators), ptb.Object(o.ownerCap), ptb.Pure(models.SuiAddress(operator))},
	)

	resp, err := o.client.executePTB(ctx, ptb)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: resp.Digest}, nil
}
