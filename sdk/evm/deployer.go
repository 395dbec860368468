package evm

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/axelarnetwork/axelar-deployments/sdk"
	sdkerrors "github.com/axelarnetwork/axelar-deployments/sdk/errors"
	"github.com/axelarnetwork/axelar-deployments/types"
)

var _ sdk.Deployer = (*Deployer)(nil)

// Deployer deploys contracts directly or through the deterministic deployer
// contracts. Create2 and create3 require the respective deployer contract
// address from the manifest.
type Deployer struct {
	client          ContractDeployBackend
	auth            *bind.TransactOpts
	create2Deployer common.Address
	create3Deployer common.Address
}

// NewDeployer creates a Deployer. The deterministic deployer addresses may be
// zero if only plain create deployments are needed.
func NewDeployer(client ContractDeployBackend, auth *bind.TransactOpts, create2Deployer, create3Deployer common.Address) *Deployer {
	return &Deployer{
		client:          client,
		auth:            auth,
		create2Deployer: create2Deployer,
		create3Deployer: create3Deployer,
	}
}

// Upload is not meaningful on EVM chains; code and instance are created in
// one step.
func (d *Deployer) Upload(_ context.Context, _ []byte) (sdk.UploadResult, error) {
	return sdk.UploadResult{}, sdkerrors.NewUnsupportedOperationError(types.FamilyEVM.String(), "upload")
}

// Deploy instantiates a contract. InitArgs must already be ABI-packed; they
// are appended to the creation bytecode.
func (d *Deployer) Deploy(ctx context.Context, params sdk.DeployParams) (sdk.DeployResult, error) {
	data := make([]byte, 0, len(params.Code)+len(params.InitArgs))
	data = append(data, params.Code...)
	data = append(data, params.InitArgs...)

	switch params.Method {
	case sdk.DeployMethodCreate, "":
		return d.deployCreate(ctx, data)
	case sdk.DeployMethodCreate2:
		return d.deployDeterministic(ctx, d.create2Deployer, create2DeployerABI, data, params.Salt)
	case sdk.DeployMethodCreate3:
		return d.deployDeterministic(ctx, d.create3Deployer, create3DeployerABI, data, params.Salt)
	default:
		return sdk.DeployResult{}, fmt.Errorf("unknown deploy method %q", params.Method)
	}
}

func (d *Deployer) deployCreate(ctx context.Context, data []byte) (sdk.DeployResult, error) {
	address, tx, _, err := bind.DeployContract(transactOptsWithCtx(ctx, d.auth), abi.ABI{}, data, d.client)
	if err != nil {
		return sdk.DeployResult{}, err
	}

	return sdk.DeployResult{Address: address.Hex(), TxHash: txResultHash(tx)}, nil
}

func (d *Deployer) deployDeterministic(ctx context.Context, deployer common.Address, deployerABI abi.ABI, data []byte, salt string) (sdk.DeployResult, error) {
	if deployer == (common.Address{}) {
		return sdk.DeployResult{}, sdkerrors.NewInvalidAddressError("deterministic deployer not configured")
	}

	contract := bind.NewBoundContract(deployer, deployerABI, d.client, d.client, d.client)

	predicted, err := d.deployedAddress(ctx, contract, deployerABI, data, salt)
	if err != nil {
		return sdk.DeployResult{}, fmt.Errorf("predict deployment address: %w", err)
	}

	tx, err := contract.Transact(transactOptsWithCtx(ctx, d.auth), "deploy", data, SaltHash(salt))
	if err != nil {
		return sdk.DeployResult{}, err
	}

	return sdk.DeployResult{Address: predicted.Hex(), TxHash: txResultHash(tx)}, nil
}

// deployedAddress asks the deployer contract where the deployment will land.
// The create3 deployer derives the address from sender and salt alone; the
// create2 deployer also hashes the bytecode.
func (d *Deployer) deployedAddress(ctx context.Context, contract *bind.BoundContract, deployerABI abi.ABI, data []byte, salt string) (common.Address, error) {
	callArgs := []any{d.auth.From, SaltHash(salt)}
	if len(deployerABI.Methods["deployedAddress"].Inputs) == 3 {
		callArgs = []any{data, d.auth.From, SaltHash(salt)}
	}

	var out []any
	if err := contract.Call(&bind.CallOpts{Context: ctx}, &out, "deployedAddress", callArgs...); err != nil {
		return common.Address{}, err
	}

	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}

// Upgrade points a proxy at a new implementation through the axelar
// upgradable interface. Implementation must already be deployed; its code
// hash binds the upgrade to the reviewed build.
func (d *Deployer) Upgrade(ctx context.Context, params sdk.UpgradeParams) (sdk.TxResult, error) {
	proxy, err := ParseAddress(params.Address)
	if err != nil {
		return sdk.TxResult{}, err
	}
	implementation, err := ParseAddress(params.Implementation)
	if err != nil {
		return sdk.TxResult{}, err
	}

	code, err := d.client.CodeAt(ctx, implementation, nil)
	if err != nil {
		return sdk.TxResult{}, fmt.Errorf("fetch implementation code: %w", err)
	}
	if len(code) == 0 {
		return sdk.TxResult{}, fmt.Errorf("no code at implementation %s", implementation)
	}

	contract := bind.NewBoundContract(proxy, ownableABI, d.client, d.client, d.client)

	var codeHash [32]byte
	copy(codeHash[:], crypto.Keccak256(code))

	tx, err := contract.Transact(transactOptsWithCtx(ctx, d.auth), "upgrade", implementation, codeHash, params.MigrateArgs)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: txResultHash(tx)}, nil
}
