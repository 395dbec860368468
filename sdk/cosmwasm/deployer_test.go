package cosmwasm

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"io"
	"strings"
	"testing"

	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	"github.com/stretchr/testify/require"

	"github.com/axelarnetwork/axelar-deployments/sdk"
)

func Test_storeCodeMsg(t *testing.T) {
	t.Parallel()

	_, err := storeCodeMsg(testAccount, nil)
	require.ErrorContains(t, err, "wasm code cannot be empty")

	msg, err := storeCodeMsg(testAccount, []byte("\x00asm\x01\x00\x00\x00"))
	require.NoError(t, err)
	require.Equal(t, testAccount, msg.Sender)
	require.GreaterOrEqual(t, len(msg.WASMByteCode), 2)
	require.Equal(t, byte(0x1f), msg.WASMByteCode[0])
	require.Equal(t, byte(0x8b), msg.WASMByteCode[1])

	compressed := msg.WASMByteCode
	passthrough, err := storeCodeMsg(testAccount, compressed)
	require.NoError(t, err)
	require.Equal(t, compressed, passthrough.WASMByteCode)
}

func Test_gzipWasm_roundTrip(t *testing.T) {
	t.Parallel()

	original := bytes.Repeat([]byte("\x00asm\x01\x00\x00\x00contract body"), 64)

	compressed, err := gzipWasm(original)
	require.NoError(t, err)
	require.Less(t, len(compressed), len(original))

	zr, err := gzip.NewReader(bytes.NewReader(compressed))
	require.NoError(t, err)
	decompressed, err := io.ReadAll(zr)
	require.NoError(t, err)
	require.NoError(t, zr.Close())
	require.Equal(t, original, decompressed)
}

func Test_instantiateMsg(t *testing.T) {
	t.Parallel()

	t.Run("plain instantiate without salt", func(t *testing.T) {
		t.Parallel()

		msg, err := instantiateMsg("axelar", testAccount, 7, sdk.DeployParams{
			Label:    "axelarnet-gateway",
			Admin:    testGovAuthority,
			InitArgs: []byte(`{"chain_name":"axelar"}`),
		})
		require.NoError(t, err)

		v1, ok := msg.(*wasmtypes.MsgInstantiateContract)
		require.True(t, ok)
		require.Equal(t, testAccount, v1.Sender)
		require.Equal(t, testGovAuthority, v1.Admin)
		require.EqualValues(t, 7, v1.CodeID)
		require.Equal(t, "axelarnet-gateway", v1.Label)
		require.JSONEq(t, `{"chain_name":"axelar"}`, string(v1.Msg))
	})

	t.Run("salt switches to instantiate2", func(t *testing.T) {
		t.Parallel()

		msg, err := instantiateMsg("axelar", testAccount, 7, sdk.DeployParams{
			Label: "axelarnet-gateway",
			Salt:  "gateway-v1",
		})
		require.NoError(t, err)

		v2, ok := msg.(*wasmtypes.MsgInstantiateContract2)
		require.True(t, ok)
		require.Equal(t, []byte("gateway-v1"), v2.Salt)
		require.False(t, v2.FixMsg)
		require.JSONEq(t, `{}`, string(v2.Msg))
	})

	t.Run("hex salt decodes", func(t *testing.T) {
		t.Parallel()

		msg, err := instantiateMsg("axelar", testAccount, 7, sdk.DeployParams{
			Label: "axelarnet-gateway",
			Salt:  "0xdeadbeef",
		})
		require.NoError(t, err)

		v2, ok := msg.(*wasmtypes.MsgInstantiateContract2)
		require.True(t, ok)
		require.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, v2.Salt)
	})
}

func Test_instantiateMsg_errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		codeID  uint64
		give    sdk.DeployParams
		wantErr string
	}{
		{
			name:    "missing code id",
			give:    sdk.DeployParams{Label: "gateway"},
			wantErr: "code id is required",
		},
		{
			name:    "missing label",
			codeID:  7,
			give:    sdk.DeployParams{},
			wantErr: "label cannot be empty",
		},
		{
			name:    "admin on the wrong chain",
			codeID:  7,
			give:    sdk.DeployParams{Label: "gateway", Admin: testCosmosAccount},
			wantErr: "invalid address",
		},
		{
			name:    "init args are not JSON",
			codeID:  7,
			give:    sdk.DeployParams{Label: "gateway", InitArgs: []byte(`{"x":`)},
			wantErr: "contract message is not valid JSON",
		},
		{
			name:    "salt is not hex",
			codeID:  7,
			give:    sdk.DeployParams{Label: "gateway", Salt: "0xzz"},
			wantErr: "parse salt",
		},
		{
			name:    "salt too long",
			codeID:  7,
			give:    sdk.DeployParams{Label: "gateway", Salt: strings.Repeat("a", maxSaltLen+1)},
			wantErr: "salt must be 1 to 64 bytes, got 65",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := instantiateMsg("axelar", testAccount, tt.codeID, tt.give)
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func Test_migrateMsg(t *testing.T) {
	t.Parallel()

	msg, err := migrateMsg("axelar", testAccount, 9, sdk.UpgradeParams{
		Address: testRouter,
	})
	require.NoError(t, err)
	require.Equal(t, testAccount, msg.Sender)
	require.Equal(t, testRouter, msg.Contract)
	require.EqualValues(t, 9, msg.CodeID)
	require.JSONEq(t, `{}`, string(msg.Msg))

	msg, err = migrateMsg("axelar", testAccount, 9, sdk.UpgradeParams{
		Address:     testRouter,
		MigrateArgs: []byte(`{"new_field":true}`),
	})
	require.NoError(t, err)
	require.JSONEq(t, `{"new_field":true}`, string(msg.Msg))

	_, err = migrateMsg("axelar", testAccount, 9, sdk.UpgradeParams{Address: "bogus"})
	require.ErrorContains(t, err, "invalid address")

	_, err = migrateMsg("axelar", testAccount, 0, sdk.UpgradeParams{Address: testRouter})
	require.ErrorContains(t, err, "code id is required")

	_, err = migrateMsg("axelar", testAccount, 9, sdk.UpgradeParams{
		Address:     testRouter,
		MigrateArgs: []byte(`[`),
	})
	require.ErrorContains(t, err, "contract message is not valid JSON")
}

func Test_parseSalt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    string
		want    []byte
		wantErr string
	}{
		{name: "raw string", give: "its-v1.2", want: []byte("its-v1.2")},
		{name: "hex", give: "0x00ff", want: []byte{0x00, 0xff}},
		{name: "max length", give: strings.Repeat("s", maxSaltLen), want: bytes.Repeat([]byte("s"), maxSaltLen)},
		{name: "bad hex", give: "0xnope", wantErr: "parse salt"},
		{name: "empty hex", give: "0x", wantErr: "salt must be 1 to 64 bytes, got 0"},
		{name: "too long", give: strings.Repeat("s", maxSaltLen+1), wantErr: "salt must be 1 to 64 bytes, got 65"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseSalt(tt.give)

			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func Test_PredictAddress(t *testing.T) {
	t.Parallel()

	checksum := sha256.Sum256([]byte("testing contract code"))
	salt := []byte("gateway-v1")

	addr, err := PredictAddress("axelar", checksum[:], testAccount, salt, nil, false)
	require.NoError(t, err)
	require.Equal(t, "axelar19agl7sg3sknep9usmamklqejx5d66ze0yy43t4fkqt4cyk7ksjssmud5fk", addr)

	// Without fixMsg the init message must not influence the address.
	ignored, err := PredictAddress("axelar", checksum[:], testAccount, salt, []byte(`{"count":1}`), false)
	require.NoError(t, err)
	require.Equal(t, addr, ignored)

	fixed, err := PredictAddress("axelar", checksum[:], testAccount, salt, []byte(`{"count":1}`), true)
	require.NoError(t, err)
	require.Equal(t, "axelar1ufq0szzjddvwfayx949d6nncczs30k4el6wpplxre4r46yxn8djsd2yy09", fixed)
}

func Test_PredictAddress_errors(t *testing.T) {
	t.Parallel()

	checksum := sha256.Sum256([]byte("testing contract code"))

	_, err := PredictAddress("axelar", []byte{0x01}, testAccount, []byte("s"), nil, false)
	require.ErrorContains(t, err, "checksum must be 32 bytes, got 1")

	_, err = PredictAddress("axelar", checksum[:], testCosmosAccount, []byte("s"), nil, false)
	require.ErrorContains(t, err, "invalid address")

	_, err = PredictAddress("axelar", checksum[:], "garbage", []byte("s"), nil, false)
	require.ErrorContains(t, err, "invalid address")

	_, err = PredictAddress("axelar", checksum[:], testAccount, nil, nil, false)
	require.ErrorContains(t, err, "salt must be 1 to 64 bytes, got 0")
}

func Test_Deployer_validation(t *testing.T) {
	t.Parallel()

	deployer := NewDeployer(testClient(t))

	_, err := deployer.Upload(context.Background(), nil)
	require.ErrorContains(t, err, "wasm code cannot be empty")

	_, err = deployer.Deploy(context.Background(), sdk.DeployParams{Label: "gateway"})
	require.ErrorContains(t, err, "code id is required")

	_, err = deployer.Upgrade(context.Background(), sdk.UpgradeParams{CodeID: 3})
	require.ErrorContains(t, err, "invalid address")
}
