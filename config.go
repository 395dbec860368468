// Package deployments manages per-environment deployment manifests for the
// Axelar contract estate: which contracts are deployed on which chains, at
// which addresses, and with which initialization parameters.
//
// The manifest is the source of truth operators review and commit after every
// deployment step. Mutation is read-patch-write by a single operator; the
// package does no file locking.
package deployments

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	jsonutils "github.com/axelarnetwork/axelar-deployments/internal/utils/json"
	"github.com/axelarnetwork/axelar-deployments/types"
)

// Config is a per-environment deployment manifest. Chains are keyed by their
// lowercase manifest identifier (e.g. "avalanche", "stellar-2025-q1").
type Config struct {
	Chains map[string]*ChainConfig `json:"chains" validate:"required,min=1,dive,required"`
	Axelar *AxelarConfig           `json:"axelar,omitempty"`
}

// ChainConfig describes one chain in the manifest: how to reach it and what
// has been deployed to it.
type ChainConfig struct {
	Name         string                     `json:"name" validate:"required"`
	AxelarID     string                     `json:"axelarId,omitempty"`
	ChainID      json.Number                `json:"chainId,omitempty"`
	ChainType    types.ChainFamily          `json:"chainType" validate:"required"`
	NetworkType  string                     `json:"networkType,omitempty"`
	RPC          string                     `json:"rpc" validate:"required"`
	HorizonRPC   string                     `json:"horizonRpc,omitempty"`
	TokenSymbol  string                     `json:"tokenSymbol,omitempty"`
	TokenAddress string                     `json:"tokenAddress,omitempty"`
	Decimals     uint8                      `json:"decimals,omitempty"`
	Contracts    map[string]*ContractConfig `json:"contracts,omitempty"`
}

// AxelarConfig describes the amplifier chain section of the manifest. The
// amplifier contracts (Router, Multisig, MultisigProver, ...) live here
// rather than under a chain entry.
type AxelarConfig struct {
	RPC         string                     `json:"rpc" validate:"required"`
	GRPC        string                     `json:"grpc,omitempty"`
	LCD         string                     `json:"lcd,omitempty"`
	ChainID     string                     `json:"chainId" validate:"required"`
	TokenSymbol string                     `json:"tokenSymbol,omitempty"`
	GasPrice    string                     `json:"gasPrice,omitempty"`
	GasLimit    uint64                     `json:"gasLimit,omitempty"`
	Contracts   map[string]*ContractConfig `json:"contracts,omitempty"`
}

// ContractConfig records one deployed contract. Which fields are set depends
// on the chain family: EVM entries carry implementation, code hash and
// deployment method, Soroban entries carry the wasm hash, CosmWasm entries
// the code id, Sui entries the created object ids.
//
// Fields the toolkit does not model are preserved in Extra so a manifest
// survives a load/patch/save round trip without losing operator annotations.
type ContractConfig struct {
	Address          string            `json:"address,omitempty"`
	Deployer         string            `json:"deployer,omitempty"`
	Owner            string            `json:"owner,omitempty"`
	Operator         string            `json:"operator,omitempty"`
	CodeID           uint64            `json:"codeId,omitempty"`
	WasmHash         string            `json:"wasmHash,omitempty"`
	Implementation   string            `json:"implementation,omitempty"`
	CodeHash         string            `json:"codehash,omitempty"`
	DeploymentMethod string            `json:"deploymentMethod,omitempty"`
	Salt             string            `json:"salt,omitempty"`
	Version          string            `json:"version,omitempty"`
	InitializeArgs   json.RawMessage   `json:"initializeArgs,omitempty"`
	Objects          map[string]string `json:"objects,omitempty"`
	GasOptions       *GasOptions       `json:"gasOptions,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// GasOptions overrides gas parameters for transactions against one contract.
// Zero fields defer to the chain client's estimation.
type GasOptions struct {
	GasLimit uint64 `json:"gasLimit,omitempty"`
}

// NewConfig parses and validates a manifest from a reader.
func NewConfig(reader io.Reader) (*Config, error) {
	var out Config
	if err := json.NewDecoder(reader).Decode(&out); err != nil {
		return nil, err
	}

	if err := out.Validate(); err != nil {
		return nil, err
	}

	return &out, nil
}

// LoadConfig reads and validates the manifest for env from dir.
func LoadConfig(dir string, env types.Environment) (*Config, error) {
	f, err := os.Open(ConfigPath(dir, env))
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()

	cfg, err := NewConfig(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s manifest: %w", env, err)
	}

	return cfg, nil
}

// SaveConfig validates and writes the manifest for env to dir, 2-space
// indented so review diffs stay small.
func SaveConfig(dir string, env types.Environment, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if err := os.WriteFile(ConfigPath(dir, env), data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}

// ConfigPath returns the manifest file path for an environment.
func ConfigPath(dir string, env types.Environment) string {
	return filepath.Join(dir, env.String()+".json")
}

// Validate checks the manifest structure and every chain's chainType.
func (c *Config) Validate() error {
	var validate = validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}

	for name, chain := range c.Chains {
		if _, err := types.ParseChainFamily(string(chain.ChainType)); err != nil {
			return fmt.Errorf("chain %s: %w", name, err)
		}
	}

	return nil
}

// Chain returns the chain entry for name. Lookup is by manifest key first,
// then case-insensitively against keys, names and axelar ids so operators can
// pass any of the identifiers a chain is known by.
func (c *Config) Chain(name string) (*ChainConfig, error) {
	if chain, ok := c.Chains[name]; ok {
		return chain, nil
	}

	for key, chain := range c.Chains {
		if strings.EqualFold(key, name) ||
			strings.EqualFold(chain.Name, name) ||
			strings.EqualFold(chain.AxelarID, name) {
			return chain, nil
		}
	}

	return nil, NewChainNotFoundError(name)
}

// ChainNames returns a sorted list of the manifest's chain keys.
func (c *Config) ChainNames() []string {
	return slices.Sorted(maps.Keys(c.Chains))
}

// Contract returns the named contract record on the chain.
func (c *ChainConfig) Contract(name string) (*ContractConfig, error) {
	contract, ok := c.Contracts[name]
	if !ok {
		return nil, NewContractNotFoundError(name, c.Name)
	}

	return contract, nil
}

// SetContract records a contract deployment on the chain, replacing any
// previous record under the same name.
func (c *ChainConfig) SetContract(name string, contract *ContractConfig) {
	if c.Contracts == nil {
		c.Contracts = make(map[string]*ContractConfig)
	}
	c.Contracts[name] = contract
}

// Contract returns the named amplifier contract record.
func (c *AxelarConfig) Contract(name string) (*ContractConfig, error) {
	contract, ok := c.Contracts[name]
	if !ok {
		return nil, NewContractNotFoundError(name, "axelar")
	}

	return contract, nil
}

// SetContract records an amplifier contract deployment.
func (c *AxelarConfig) SetContract(name string, contract *ContractConfig) {
	if c.Contracts == nil {
		c.Contracts = make(map[string]*ContractConfig)
	}
	c.Contracts[name] = contract
}

// ChainEntry unmarshals a per-chain sub-entry of an amplifier contract
// record. The MultisigProver and VotingVerifier sections key their entries by
// chain name rather than by contract field.
func (c *ContractConfig) ChainEntry(chain string) (*ContractConfig, error) {
	raw, ok := c.Extra[chain]
	if !ok {
		return nil, NewContractNotFoundError(chain, "axelar")
	}

	var out ContractConfig
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("parse %s entry: %w", chain, err)
	}

	return &out, nil
}

// MarshalJSON merges the modeled fields with the preserved unknown fields.
func (c ContractConfig) MarshalJSON() ([]byte, error) {
	type Alias ContractConfig

	known, err := json.Marshal(Alias(c))
	if err != nil {
		return nil, err
	}
	if len(c.Extra) == 0 {
		return known, nil
	}

	extra, err := json.Marshal(c.Extra)
	if err != nil {
		return nil, err
	}

	// Known fields win on collision.
	return jsonutils.Merge(extra, known)
}

// UnmarshalJSON decodes the modeled fields and captures everything else into
// Extra.
func (c *ContractConfig) UnmarshalJSON(data []byte) error {
	type Alias ContractConfig
	var alias Alias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	*c = ContractConfig(alias)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for field := range knownContractFields {
		delete(raw, field)
	}
	if len(raw) > 0 {
		c.Extra = raw
	}

	return nil
}

// knownContractFields holds the JSON names of the fields ContractConfig
// models, derived from the struct tags so the two cannot drift.
var knownContractFields = func() map[string]struct{} {
	t := reflect.TypeOf(ContractConfig{})
	out := make(map[string]struct{}, t.NumField())
	for i := range t.NumField() {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		out[name] = struct{}{}
	}

	return out
}()
