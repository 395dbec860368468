package deployments

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/golden"

	"github.com/axelarnetwork/axelar-deployments/types"
)

func Test_NewConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    string
		wantErr string
	}{
		{
			name: "success",
			give: `{
				"chains": {
					"avalanche": {
						"name": "Avalanche",
						"chainType": "evm",
						"rpc": "https://api.avax-test.network/ext/bc/C/rpc"
					}
				}
			}`,
		},
		{
			name:    "invalid json",
			give:    `{`,
			wantErr: "unexpected EOF",
		},
		{
			name:    "no chains",
			give:    `{"chains": {}}`,
			wantErr: "Error:Field validation for 'Chains' failed on the 'min' tag",
		},
		{
			name: "missing rpc",
			give: `{
				"chains": {
					"avalanche": {"name": "Avalanche", "chainType": "evm"}
				}
			}`,
			wantErr: "Error:Field validation for 'RPC' failed on the 'required' tag",
		},
		{
			name: "unsupported chain family",
			give: `{
				"chains": {
					"near": {"name": "Near", "chainType": "near", "rpc": "https://rpc.testnet.near.org"}
				}
			}`,
			wantErr: "chain near: unsupported chain family: near",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewConfig(strings.NewReader(tt.give))

			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				require.NotNil(t, got)
			}
		})
	}
}

func Test_Config_Chain(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Chains: map[string]*ChainConfig{
			"avalanche": {
				Name:      "Avalanche",
				AxelarID:  "Avalanche",
				ChainType: types.FamilyEVM,
				RPC:       "https://example.com",
			},
			"stellar-2025-q1": {
				Name:      "Stellar",
				AxelarID:  "stellar-2025-q1",
				ChainType: types.FamilyStellar,
				RPC:       "https://example.com",
			},
		},
	}

	tests := []struct {
		name     string
		give     string
		wantName string
		wantErr  string
	}{
		{name: "manifest key", give: "avalanche", wantName: "Avalanche"},
		{name: "case insensitive key", give: "Avalanche", wantName: "Avalanche"},
		{name: "display name", give: "stellar", wantName: "Stellar"},
		{name: "axelar id", give: "STELLAR-2025-Q1", wantName: "Stellar"},
		{name: "not found", give: "fantom", wantErr: "chain fantom not found in manifest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := cfg.Chain(tt.give)

			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantName, got.Name)
			}
		})
	}
}

func Test_Config_ChainNames(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Chains: map[string]*ChainConfig{
			"stellar":   {},
			"avalanche": {},
			"sui":       {},
		},
	}

	assert.Equal(t, []string{"avalanche", "stellar", "sui"}, cfg.ChainNames())
}

func Test_ChainConfig_Contract(t *testing.T) {
	t.Parallel()

	chain := &ChainConfig{Name: "Avalanche"}

	_, err := chain.Contract("AxelarGateway")
	require.EqualError(t, err, "contract AxelarGateway not found on chain Avalanche")

	chain.SetContract("AxelarGateway", &ContractConfig{Address: "0x1234"})

	got, err := chain.Contract("AxelarGateway")
	require.NoError(t, err)
	assert.Equal(t, "0x1234", got.Address)
}

func Test_ContractConfig_ExtraRoundTrip(t *testing.T) {
	t.Parallel()

	give := `{
		"address": "0x52444f1Dd86f6a4D8BcA1f9e2d1a9913f1Ff196D",
		"deployer": "0xB8Cd93C83A974649D76B1c19f311f654e228214d",
		"authModule": "0x6E87c66E10A9a34eA27cb4E1B73a6f81666E5E2b",
		"largeSupply": 18446744073709551615
	}`

	var contract ContractConfig
	require.NoError(t, json.Unmarshal([]byte(give), &contract))

	assert.Equal(t, "0x52444f1Dd86f6a4D8BcA1f9e2d1a9913f1Ff196D", contract.Address)
	require.Contains(t, contract.Extra, "authModule")
	require.Contains(t, contract.Extra, "largeSupply")
	assert.NotContains(t, contract.Extra, "address")

	got, err := json.Marshal(contract)
	require.NoError(t, err)
	assert.JSONEq(t, give, string(got))
	assert.Contains(t, string(got), "18446744073709551615")
}

func Test_ContractConfig_ChainEntry(t *testing.T) {
	t.Parallel()

	give := `{
		"avalanche": {"address": "axelar1xz4cya4qm2ws6nzperhvc40wdjcq4872fl6d3j2s4cytyx8j80eqh8cgra"}
	}`

	var prover ContractConfig
	require.NoError(t, json.Unmarshal([]byte(give), &prover))

	entry, err := prover.ChainEntry("avalanche")
	require.NoError(t, err)
	assert.Equal(t, "axelar1xz4cya4qm2ws6nzperhvc40wdjcq4872fl6d3j2s4cytyx8j80eqh8cgra", entry.Address)

	_, err = prover.ChainEntry("fantom")
	require.EqualError(t, err, "contract fantom not found on chain axelar")
}

func Test_Config_RoundTrip(t *testing.T) {
	t.Parallel()

	raw := golden.Get(t, "testnet.json.golden")

	cfg, err := NewConfig(bytes.NewReader(raw))
	require.NoError(t, err)

	avalanche, err := cfg.Chain("avalanche")
	require.NoError(t, err)
	gateway, err := avalanche.Contract("AxelarGateway")
	require.NoError(t, err)
	assert.Equal(t, "create3", gateway.DeploymentMethod)
	assert.Contains(t, gateway.Extra, "authModule")
	require.NotNil(t, gateway.GasOptions)
	assert.Equal(t, uint64(8000000), gateway.GasOptions.GasLimit)

	require.NotNil(t, cfg.Axelar)
	prover, err := cfg.Axelar.Contract("MultisigProver")
	require.NoError(t, err)
	_, err = prover.ChainEntry("avalanche")
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, SaveConfig(dir, types.EnvTestnet, cfg))

	got, err := os.ReadFile(ConfigPath(dir, types.EnvTestnet))
	require.NoError(t, err)
	golden.Assert(t, string(got), "testnet.json.golden")

	reloaded, err := LoadConfig(dir, types.EnvTestnet)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(cfg, reloaded))
}

func Test_LoadConfig_NotFound(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(t.TempDir(), types.EnvMainnet)
	require.ErrorContains(t, err, "open manifest")
}

func Test_SaveConfig_Invalid(t *testing.T) {
	t.Parallel()

	err := SaveConfig(t.TempDir(), types.EnvTestnet, &Config{})
	require.Error(t, err)
}
