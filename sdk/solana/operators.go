package solana

import (
	"context"

	"github.com/gagliardetto/solana-go"

	"github.com/axelarnetwork/axelar-deployments/sdk"
	sdkerrors "github.com/axelarnetwork/axelar-deployments/sdk/errors"
	"github.com/axelarnetwork/axelar-deployments/types"
)

var _ sdk.OperatorRegistry = (*Operators)(nil)

// Operators drives the operators registry program. Each registered operator
// is a standalone account keyed by its public key, so membership checks
// reduce to account existence.
type Operators struct {
	client  *Client
	program solana.PublicKey
}

// NewOperators creates an Operators bound to a registry program id.
func NewOperators(client *Client, programID string) (*Operators, error) {
	program, err := parseAddress(programID)
	if err != nil {
		return nil, err
	}

	return &Operators{client: client, program: program}, nil
}

// Initialize creates the registry account owned by owner.
func (o *Operators) Initialize(ctx context.Context, owner string) (sdk.TxResult, error) {
	ownerKey, err := parseAddress(owner)
	if err != nil {
		return sdk.TxResult{}, err
	}

	registry, err := OperatorRegistryPDA(o.program)
	if err != nil {
		return sdk.TxResult{}, err
	}

	data, err := instructionData("initialize", nil)
	if err != nil {
		return sdk.TxResult{}, err
	}

	ix := solana.NewInstruction(o.program, solana.AccountMetaSlice{
		solana.Meta(o.client.Payer()).WRITE().SIGNER(),
		solana.Meta(ownerKey),
		solana.Meta(registry).WRITE(),
		solana.Meta(solana.SystemProgramID),
	}, data)

	sig, err := o.client.send(ctx, ix)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: sig}, nil
}

func (o *Operators) AddOperator(ctx context.Context, address string) (sdk.TxResult, error) {
	operatorKey, err := parseAddress(address)
	if err != nil {
		return sdk.TxResult{}, err
	}

	registry, err := OperatorRegistryPDA(o.program)
	if err != nil {
		return sdk.TxResult{}, err
	}

	operatorPDA, err := OperatorPDA(o.program, operatorKey)
	if err != nil {
		return sdk.TxResult{}, err
	}

	data, err := instructionData("add_operator", nil)
	if err != nil {
		return sdk.TxResult{}, err
	}

	ix := solana.NewInstruction(o.program, solana.AccountMetaSlice{
		solana.Meta(o.client.Payer()).WRITE().SIGNER(),
		solana.Meta(operatorKey),
		solana.Meta(registry).WRITE(),
		solana.Meta(operatorPDA).WRITE(),
		solana.Meta(solana.SystemProgramID),
	}, data)

	sig, err := o.client.send(ctx, ix)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: sig}, nil
}

// RemoveOperator is not exposed by the registry program.
func (o *Operators) RemoveOperator(ctx context.Context, address string) (sdk.TxResult, error) {
	return sdk.TxResult{}, sdkerrors.NewUnsupportedOperationError(types.FamilySVM.String(), "remove operator")
}

func (o *Operators) IsOperator(ctx context.Context, address string) (bool, error) {
	operatorKey, err := parseAddress(address)
	if err != nil {
		return false, err
	}

	operatorPDA, err := OperatorPDA(o.program, operatorKey)
	if err != nil {
		return false, err
	}

	return o.client.accountExists(ctx, operatorPDA)
}
