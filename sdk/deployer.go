package sdk

import (
	"context"
)

// DeployMethod selects how an EVM deployment derives the contract address.
// Chains without deterministic deployer contracts ignore it.
type DeployMethod string

const (
	DeployMethodCreate  DeployMethod = "create"
	DeployMethodCreate2 DeployMethod = "create2"
	DeployMethodCreate3 DeployMethod = "create3"
)

// DeployParams carries deployment inputs. InitArgs is the chain-native
// encoding of the constructor or instantiate arguments: ABI-packed for EVM,
// an XDR-encoded ScVec for Soroban, a JSON message for CosmWasm. Fields not
// meaningful on a chain are ignored by its SDK. CodeID and CodeHash
// reference previously uploaded code on CosmWasm and Soroban respectively;
// Code takes precedence when both are set.
type DeployParams struct {
	Code     []byte
	InitArgs []byte
	Salt     string
	Label    string
	Admin    string
	CodeID   uint64
	CodeHash string
	Method   DeployMethod
}

// UpgradeParams carries the inputs for migrating a deployed contract to new
// code. NewCode is the raw artifact on chains that take bytecode directly;
// CodeID or CodeHash reference previously uploaded code elsewhere.
// Implementation points at a separately deployed implementation contract on
// proxy-based chains. Capability names the upgrade-authority object on
// chains that model upgrade rights as an owned object (the UpgradeCap on
// Sui).
type UpgradeParams struct {
	Address        string
	Implementation string
	NewCode        []byte
	CodeID         uint64
	CodeHash       string
	MigrateArgs    []byte
	Capability     string
}

// Deployer manages the contract code lifecycle on one chain.
type Deployer interface {
	// Upload stores contract code on the chain without instantiating it.
	Upload(ctx context.Context, code []byte) (UploadResult, error)

	// Deploy instantiates a contract and returns its address.
	Deploy(ctx context.Context, params DeployParams) (DeployResult, error)

	// Upgrade migrates a deployed contract to new code.
	Upgrade(ctx context.Context, params UpgradeParams) (TxResult, error)
}
