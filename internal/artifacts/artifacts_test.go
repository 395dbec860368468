package artifacts

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

var wasmHeader = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

func Test_Fetcher_Fetch_localFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "gateway.wasm")
	require.NoError(t, os.WriteFile(path, wasmHeader, 0o644))

	got, err := NewFetcher().Fetch(t.Context(), path)
	require.NoError(t, err)
	require.Equal(t, wasmHeader, got)
}

func Test_Fetcher_Fetch_missingFile(t *testing.T) {
	t.Parallel()

	_, err := NewFetcher().Fetch(t.Context(), filepath.Join(t.TempDir(), "nope.wasm"))
	require.ErrorContains(t, err, "read artifact")
}

func Test_Fetcher_Fetch_emptySource(t *testing.T) {
	t.Parallel()

	_, err := NewFetcher().Fetch(t.Context(), "")
	require.ErrorContains(t, err, "artifact source is required")
}

func Test_Fetcher_Fetch_download(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/releases/gateway.wasm" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write(wasmHeader)
	}))
	t.Cleanup(server.Close)

	fetcher := NewFetcher()

	got, err := fetcher.Fetch(t.Context(), server.URL+"/releases/gateway.wasm")
	require.NoError(t, err)
	require.Equal(t, wasmHeader, got)

	_, err = fetcher.Fetch(t.Context(), server.URL+"/releases/missing.wasm")
	require.ErrorContains(t, err, "download artifact from")
	require.ErrorContains(t, err, "404")
}

func Test_Checksum(t *testing.T) {
	t.Parallel()

	require.Equal(t, "93a44bbb96c751218e4c00d479e4c14358122a389acca16205b1e4d0dc5f9476", Checksum(wasmHeader))
	require.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", Checksum(nil))
}

func Test_SolanaReleaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		giveProgram string
		giveVersion string
		want        string
		wantErr     string
	}{
		{
			name:        "semver resolves to github release asset",
			giveProgram: "solana-axelar-gateway",
			giveVersion: "0.1.7",
			want:        "https://github.com/axelarnetwork/axelar-amplifier-solana/releases/download/solana-axelar-gateway-v0.1.7/solana_axelar_gateway.so",
		},
		{
			name:        "commit hash resolves to r2 bucket",
			giveProgram: "solana-axelar-its",
			giveVersion: "12E6126",
			want:        "https://static.axelar.network/releases/solana/solana-axelar-its/12e6126/programs/solana_axelar_its.so",
		},
		{
			name:        "tagged version rejected",
			giveProgram: "solana-axelar-gateway",
			giveVersion: "v0.1.7",
			wantErr:     `invalid version "v0.1.7"`,
		},
		{
			name:        "short version rejected",
			giveProgram: "solana-axelar-gateway",
			giveVersion: "0.1",
			wantErr:     `invalid version "0.1"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := SolanaReleaseURL(tt.giveProgram, tt.giveVersion)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func Test_StellarReleaseURL(t *testing.T) {
	t.Parallel()

	got, err := StellarReleaseURL("stellar-axelar-gateway", "1.1.1")
	require.NoError(t, err)
	require.Equal(t,
		"https://github.com/axelarnetwork/axelar-amplifier-stellar/releases/download/stellar-axelar-gateway-v1.1.1/stellar_axelar_gateway.optimized.wasm",
		got)

	got, err = StellarReleaseURL("stellar-interchain-token-service", "abcdef1234")
	require.NoError(t, err)
	require.Equal(t,
		"https://static.axelar.network/releases/stellar/stellar-interchain-token-service/abcdef1234/wasm/stellar_interchain_token_service.optimized.wasm",
		got)

	_, err = StellarReleaseURL("stellar-axelar-gateway", "latest")
	require.ErrorContains(t, err, `invalid version "latest"`)
}

func Test_ParseEVMArtifact(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		give         string
		wantName     string
		wantBytecode []byte
		wantErr      string
	}{
		{
			name:         "hardhat artifact",
			give:         `{"contractName":"AxelarGateway","abi":[{"type":"constructor","inputs":[]}],"bytecode":"0x60806040"}`,
			wantName:     "AxelarGateway",
			wantBytecode: []byte{0x60, 0x80, 0x60, 0x40},
		},
		{
			name:         "bare hex bytecode",
			give:         `{"contractName":"Operators","abi":[],"bytecode":"6001"}`,
			wantName:     "Operators",
			wantBytecode: []byte{0x60, 0x01},
		},
		{
			name:    "missing bytecode",
			give:    `{"contractName":"AxelarGateway","abi":[]}`,
			wantErr: `artifact "AxelarGateway" has no bytecode`,
		},
		{
			name:    "zero hex bytecode",
			give:    `{"contractName":"AxelarGateway","abi":[],"bytecode":"0x"}`,
			wantErr: "has no bytecode",
		},
		{
			name:    "invalid json",
			give:    `{"contractName":`,
			wantErr: "parse artifact",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			artifact, err := ParseEVMArtifact([]byte(tt.give))
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantName, artifact.ContractName)

			code, err := artifact.BytecodeBytes()
			require.NoError(t, err)
			require.Equal(t, tt.wantBytecode, code)
		})
	}
}

func Test_EVMArtifact_BytecodeBytes_invalidHex(t *testing.T) {
	t.Parallel()

	artifact := &EVMArtifact{Bytecode: "0xzz"}
	_, err := artifact.BytecodeBytes()
	require.ErrorContains(t, err, "decode artifact bytecode")
}
