package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"errors"
	"fmt"
	"slices"
)

// ChainFamily identifies the ecosystem a chain belongs to and selects the SDK
// implementation used to talk to it. Values match the chainType field of the
// deployment manifests.
type ChainFamily string

const (
	FamilyEVM      ChainFamily = "evm"
	FamilyStellar  ChainFamily = "stellar"
	FamilySui      ChainFamily = "sui"
	FamilySVM      ChainFamily = "svm"
	FamilyCosmWasm ChainFamily = "cosmwasm"
)

// ErrUnsupportedChainFamily is returned when a manifest names a chain family
// the toolkit has no SDK for.
var ErrUnsupportedChainFamily = errors.New("unsupported chain family")

var supportedFamilies = []ChainFamily{
	FamilyEVM,
	FamilyStellar,
	FamilySui,
	FamilySVM,
	FamilyCosmWasm,
}

// ParseChainFamily validates a raw chainType value from a manifest.
func ParseChainFamily(s string) (ChainFamily, error) {
	family := ChainFamily(s)
	if !slices.Contains(supportedFamilies, family) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedChainFamily, s)
	}

	return family, nil
}

func (f ChainFamily) String() string {
	return string(f)
}

// Environment names a deployment target network set. Each environment has its
// own manifest file (<env>.json) and its own set of deployed contracts.
type Environment string

const (
	EnvDevnetAmplifier Environment = "devnet-amplifier"
	EnvStagenet        Environment = "stagenet"
	EnvTestnet         Environment = "testnet"
	EnvMainnet         Environment = "mainnet"

	// EnvLocal is a scratch environment for running against local nodes.
	EnvLocal Environment = "local"
)

// ErrUnknownEnvironment is returned when an environment name does not match
// any known deployment target.
var ErrUnknownEnvironment = errors.New("unknown environment")

var environments = []Environment{
	EnvDevnetAmplifier,
	EnvStagenet,
	EnvTestnet,
	EnvMainnet,
	EnvLocal,
}

// ParseEnvironment validates a raw environment name from a flag or the ENV
// environment variable.
func ParseEnvironment(s string) (Environment, error) {
	env := Environment(s)
	if !slices.Contains(environments, env) {
		return "", fmt.Errorf("%w: %s", ErrUnknownEnvironment, s)
	}

	return env, nil
}

func (e Environment) String() string {
	return string(e)
}

// IsMainnet reports whether the environment targets production networks.
// Faucet funding and other test-only conveniences are refused on mainnet.
func (e Environment) IsMainnet() bool {
	return e == EnvMainnet
}
