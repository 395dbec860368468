package deploy

import (
	"encoding/hex"
	"encoding/json"
	"math/big"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	deployments "github.com/axelarnetwork/axelar-deployments"
)

func Test_flagOrEnv(t *testing.T) {
	tests := []struct {
		name     string
		flag     string
		env      string
		wantUsed string
	}{
		{
			name:     "flag wins",
			flag:     "from-flag",
			env:      "from-env",
			wantUsed: "from-flag",
		},
		{
			name:     "env fallback",
			env:      "from-env",
			wantUsed: "from-env",
		},
		{
			name: "neither set",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{}
			cmd.Flags().String("private-key", "", "")
			if tt.flag != "" {
				require.NoError(t, cmd.Flags().Set("private-key", tt.flag))
			}
			t.Setenv("PRIVATE_KEY", tt.env)

			got, err := flagOrEnv(cmd, "private-key", "PRIVATE_KEY")

			require.NoError(t, err)
			require.Equal(t, tt.wantUsed, got)
		})
	}
}

func Test_parseSalt32(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    string
		want    string
		wantErr string
	}{
		{
			name: "exact hex used as-is",
			give: "0x00000000000000000000000000000000000000000000000000000000000000ff",
			want: "00000000000000000000000000000000000000000000000000000000000000ff",
		},
		{
			name: "key hashed",
			give: "test",
			want: "05294e8f4a5ee627df181a607a6376b9d98fab962d53722cd6871cf8321cedf6",
		},
		{
			name: "versioned key hashed",
			give: "its-salt-v1",
			want: "7858a9ccbb0babdd36864c46ffe81bc33e9e79e6b37c20efdcfa12534699a5a9",
		},
		{
			name:    "short hex rejected",
			give:    "0xabcd",
			wantErr: "salt must be 32 bytes",
		},
		{
			name:    "invalid hex rejected",
			give:    "0xzz000000000000000000000000000000000000000000000000000000000000zz",
			wantErr: "parse salt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseSalt32(tt.give)

			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, hex.EncodeToString(got[:]))
		})
	}
}

func Test_parseHex32(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    string
		wantErr string
	}{
		{
			name: "with prefix",
			give: "0x1111111111111111111111111111111111111111111111111111111111111111",
		},
		{
			name: "without prefix",
			give: "2222222222222222222222222222222222222222222222222222222222222222",
		},
		{
			name:    "wrong length",
			give:    "0x1234",
			wantErr: "domain separator must be 32 bytes",
		},
		{
			name:    "invalid hex",
			give:    "not-hex",
			wantErr: "parse domain separator",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseHex32("domain separator", tt.give)

			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotEqual(t, [32]byte{}, got)
		})
	}
}

func Test_parseTokenID(t *testing.T) {
	t.Parallel()

	id, err := parseTokenID("0xdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeef")
	require.NoError(t, err)
	require.Equal(t, "0xdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeef", id.String())

	_, err = parseTokenID("0xdead")
	require.ErrorContains(t, err, "token id must be 32 bytes")
}

func Test_parseExecuteData(t *testing.T) {
	t.Parallel()

	data, err := parseExecuteData("0x64eca496")
	require.NoError(t, err)
	require.Equal(t, []byte{0x64, 0xec, 0xa4, 0x96}, data)

	_, err = parseExecuteData("")
	require.ErrorContains(t, err, "execute data is empty")

	_, err = parseExecuteData("0xnothex")
	require.ErrorContains(t, err, "parse execute data")
}

func Test_parseBigInt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    string
		want    *big.Int
		wantErr bool
	}{
		{
			name: "empty means unset",
			give: "",
			want: nil,
		},
		{
			name: "decimal amount",
			give: "1000000000000000000",
			want: new(big.Int).SetUint64(1000000000000000000),
		},
		{
			name:    "garbage rejected",
			give:    "12three",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseBigInt(tt.give)

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.want == nil {
				require.Nil(t, got)
				return
			}
			require.Zero(t, tt.want.Cmp(got))
		})
	}
}

func Test_kebabCase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		give string
		want string
	}{
		{give: "InterchainTokenService", want: "interchain-token-service"},
		{give: "AxelarGateway", want: "axelar-gateway"},
		{give: "Operators", want: "operators"},
		{give: "gateway", want: "gateway"},
	}

	for _, tt := range tests {
		t.Run(tt.give, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tt.want, kebabCase(tt.give))
		})
	}
}

func Test_chainIDBig(t *testing.T) {
	t.Parallel()

	chain := &deployments.ChainConfig{Name: "avalanche", ChainID: json.Number("43113")}

	id, err := chainIDBig(chain)

	require.NoError(t, err)
	require.Equal(t, int64(43113), id.Int64())

	_, err = chainIDBig(&deployments.ChainConfig{Name: "nochain"})
	require.ErrorContains(t, err, "no numeric chainId")
}

func Test_BuildRootCmd_families(t *testing.T) {
	t.Parallel()

	root := BuildRootCmd()

	var names []string
	for _, sub := range root.Commands() {
		names = append(names, sub.Name())
	}

	require.Contains(t, names, "evm")
	require.Contains(t, names, "stellar")
	require.Contains(t, names, "sui")
	require.Contains(t, names, "solana")
	require.Contains(t, names, "cosmwasm")
}
