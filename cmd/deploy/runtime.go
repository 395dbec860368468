package deploy

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	deployments "github.com/axelarnetwork/axelar-deployments"
	abiutils "github.com/axelarnetwork/axelar-deployments/internal/utils/abi"
	"github.com/axelarnetwork/axelar-deployments/types"
)

// Manifest contract keys, matching the axelar deployment naming.
const (
	contractGateway              = "AxelarGateway"
	contractGasService           = "AxelarGasService"
	contractITS                  = "InterchainTokenService"
	contractITSFactory           = "InterchainTokenFactory"
	contractOperators            = "Operators"
	contractConstAddressDeployer = "ConstAddressDeployer"
	contractCreate3Deployer      = "Create3Deployer"

	contractRouter         = "Router"
	contractCoordinator    = "Coordinator"
	contractMultisig       = "Multisig"
	contractMultisigProver = "MultisigProver"
)

// runtime carries the resolved global flags and the loaded manifest for one
// command invocation.
type runtime struct {
	env       types.Environment
	chainName string
	key       string
	yes       bool
	configDir string

	cfg *deployments.Config
	log zerolog.Logger
}

// flagOrEnv returns the flag value if the operator set it, otherwise the
// fallback environment variable.
func flagOrEnv(cmd *cobra.Command, flag, envVar string) (string, error) {
	value, err := cmd.Flags().GetString(flag)
	if err != nil {
		return "", err
	}
	if !cmd.Flags().Changed(flag) && value == "" {
		value = os.Getenv(envVar)
	}

	return value, nil
}

// newRuntime resolves the persistent flags and loads the environment
// manifest. Every leaf command starts here.
func newRuntime(cmd *cobra.Command) (*runtime, error) {
	envName, err := flagOrEnv(cmd, "env", "ENV")
	if err != nil {
		return nil, err
	}
	if envName == "" {
		return nil, fmt.Errorf("environment is required: set ENV or pass --env")
	}
	env, err := types.ParseEnvironment(envName)
	if err != nil {
		return nil, err
	}

	chainName, err := flagOrEnv(cmd, "chain-name", "CHAIN")
	if err != nil {
		return nil, err
	}
	key, err := flagOrEnv(cmd, "private-key", "PRIVATE_KEY")
	if err != nil {
		return nil, err
	}
	yes, err := cmd.Flags().GetBool("yes")
	if err != nil {
		return nil, err
	}
	configDir, err := cmd.Flags().GetString("config-dir")
	if err != nil {
		return nil, err
	}

	cfg, err := deployments.LoadConfig(configDir, env)
	if err != nil {
		return nil, err
	}

	return &runtime{
		env:       env,
		chainName: chainName,
		key:       key,
		yes:       yes,
		configDir: configDir,
		cfg:       cfg,
		log:       zerolog.Ctx(cmd.Context()).With().Str("env", env.String()).Logger(),
	}, nil
}

// chain returns the manifest entry for --chain-name, checked against the
// family the command tree serves.
func (r *runtime) chain(family types.ChainFamily) (*deployments.ChainConfig, error) {
	if r.chainName == "" {
		return nil, fmt.Errorf("chain name is required: set CHAIN or pass --chain-name")
	}

	chain, err := r.cfg.Chain(r.chainName)
	if err != nil {
		return nil, err
	}
	if chain.ChainType != family {
		return nil, deployments.NewChainFamilyMismatchError(chain.Name, family.String(), chain.ChainType.String())
	}

	return chain, nil
}

// axelar returns the amplifier chain section of the manifest.
func (r *runtime) axelar() (*deployments.AxelarConfig, error) {
	if r.cfg.Axelar == nil {
		return nil, fmt.Errorf("manifest has no axelar section")
	}

	return r.cfg.Axelar, nil
}

// requireKey returns the signing key material or fails with the canonical
// missing-key error.
func (r *runtime) requireKey() (string, error) {
	if r.key == "" {
		return "", deployments.ErrMissingPrivateKey
	}

	return r.key, nil
}

// confirm gates a state-changing step behind an operator prompt unless the
// operator passed --yes.
func (r *runtime) confirm(action string) error {
	if r.yes {
		return nil
	}

	ok, err := deployments.Confirm(os.Stdin, os.Stderr, action)
	if err != nil {
		return err
	}
	if !ok {
		return deployments.ErrAborted
	}

	return nil
}

// save writes the patched manifest back to disk.
func (r *runtime) save() error {
	return deployments.SaveConfig(r.configDir, r.env, r.cfg)
}

// contractAddress reads a contract address from a chain entry, failing with
// the contract-not-found error when the entry or address is missing.
func contractAddress(chain *deployments.ChainConfig, name string) (string, error) {
	contract, err := chain.Contract(name)
	if err != nil {
		return "", err
	}
	if contract.Address == "" {
		return "", fmt.Errorf("contract %s on chain %s has no address", name, chain.Name)
	}

	return contract.Address, nil
}

// parseSalt32 turns a salt flag into the fixed 32 bytes the token service
// derivations take. Exact 32-byte hex is used as-is; any other string is
// hashed the way the deployment scripts derive salts from keys.
func parseSalt32(salt string) ([32]byte, error) {
	if strings.HasPrefix(salt, "0x") {
		raw, err := hex.DecodeString(salt[2:])
		if err != nil {
			return [32]byte{}, fmt.Errorf("parse salt: %w", err)
		}
		if len(raw) != 32 {
			return [32]byte{}, fmt.Errorf("salt must be 32 bytes, got %d", len(raw))
		}

		return [32]byte(raw), nil
	}

	encoded, err := abiutils.ABIEncode(`[{"type":"string"}]`, salt)
	if err != nil {
		return [32]byte{}, fmt.Errorf("hash salt: %w", err)
	}

	return [32]byte(crypto.Keccak256Hash(encoded)), nil
}

// parseHex32 decodes a flag that must be exactly 32 bytes of hex, such as a
// domain separator or verifier-set root.
func parseHex32(name, s string) ([32]byte, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return [32]byte{}, fmt.Errorf("parse %s: %w", name, err)
	}
	if len(raw) != 32 {
		return [32]byte{}, fmt.Errorf("%s must be 32 bytes, got %d", name, len(raw))
	}

	return [32]byte(raw), nil
}

// parseTokenID decodes a 32-byte token id flag.
func parseTokenID(s string) (types.TokenID, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return types.TokenID{}, fmt.Errorf("parse token id: %w", err)
	}
	if len(raw) != 32 {
		return types.TokenID{}, fmt.Errorf("token id must be 32 bytes, got %d", len(raw))
	}

	return types.TokenID(raw), nil
}

// hexBytes decodes an optional hex flag; empty means nil.
func hexBytes(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}

	return hex.DecodeString(strings.TrimPrefix(s, "0x"))
}

// parseExecuteData decodes the hex execute data handed over from the
// multisig prover.
func parseExecuteData(s string) ([]byte, error) {
	data, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, fmt.Errorf("parse execute data: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("execute data is empty")
	}

	return data, nil
}

// parseBigInt parses a base-10 amount flag. Empty means nil, which SDKs
// treat as "not set" (collect full balance, no gas value).
func parseBigInt(s string) (*big.Int, error) {
	if s == "" {
		return nil, nil
	}

	value, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("parse amount %q", s)
	}

	return value, nil
}

// kebabCase lowercases a CamelCase contract name with dash separators:
// InterchainTokenService becomes interchain-token-service.
func kebabCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}

	return b.String()
}

// chainIDBig parses the manifest chainId for EIP-155 signing.
func chainIDBig(chain *deployments.ChainConfig) (*big.Int, error) {
	id, ok := new(big.Int).SetString(chain.ChainID.String(), 10)
	if !ok || chain.ChainID.String() == "" {
		return nil, fmt.Errorf("chain %s has no numeric chainId", chain.Name)
	}

	return id, nil
}
