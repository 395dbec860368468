package evm

import (
	"context"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"

	"github.com/axelarnetwork/axelar-deployments/sdk"
)

var _ sdk.OperatorRegistry = (*Operators)(nil)

// Operators drives the operators registry contract.
type Operators struct {
	client   ContractDeployBackend
	auth     *bind.TransactOpts
	contract *bind.BoundContract
}

func NewOperators(client ContractDeployBackend, auth *bind.TransactOpts, address common.Address) *Operators {
	return &Operators{
		client:   client,
		auth:     auth,
		contract: bind.NewBoundContract(address, operatorsABI, client, client, client),
	}
}

func (o *Operators) IsOperator(ctx context.Context, address string) (bool, error) {
	account, err := ParseAddress(address)
	if err != nil {
		return false, err
	}

	var out []any
	if err := o.contract.Call(&bind.CallOpts{Context: ctx}, &out, "isOperator", account); err != nil {
		return false, err
	}

	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

func (o *Operators) AddOperator(ctx context.Context, address string) (sdk.TxResult, error) {
	account, err := ParseAddress(address)
	if err != nil {
		return sdk.TxResult{}, err
	}

	tx, err := o.contract.Transact(transactOptsWithCtx(ctx, o.auth), "addOperator", account)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: txResultHash(tx)}, nil
}

func (o *Operators) RemoveOperator(ctx context.Context, address string) (sdk.TxResult, error) {
	account, err := ParseAddress(address)
	if err != nil {
		return sdk.TxResult{}, err
	}

	tx, err := o.contract.Transact(transactOptsWithCtx(ctx, o.auth), "removeOperator", account)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: txResultHash(tx)}, nil
}
