// Package sdk defines the chain-agnostic interfaces the toolkit drives chains
// through. Each chain family implements the subset its contracts expose, in
// its own subpackage.
package sdk

// TxResult records a submitted transaction.
type TxResult struct {
	Hash string
}

// UploadResult records contract code stored on chain without instantiation.
type UploadResult struct {
	TxHash string

	// ID is the chain-specific code identifier: the hex wasm hash on Soroban,
	// the decimal code id on CosmWasm chains.
	ID string
}

// DeployResult records an instantiated contract.
type DeployResult struct {
	TxHash  string
	Address string

	// Objects holds satellite objects created alongside the contract, keyed
	// by role. Sui publishes report the gateway, owner cap and operator cap
	// object ids here.
	Objects map[string]string
}
