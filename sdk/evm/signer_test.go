package evm

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Well-known development key; never holds funds.
const testPrivateKeyHex = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

func Test_NewPrivateKeySignerFromHex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    string
		want    common.Address
		wantErr bool
	}{
		{
			name: "success",
			give: testPrivateKeyHex,
			want: common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"),
		},
		{
			name: "success with prefix",
			give: "0x" + testPrivateKeyHex,
			want: common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"),
		},
		{
			name:    "failure not hex",
			give:    "not-a-key",
			wantErr: true,
		},
		{
			name:    "failure empty",
			give:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			signer, err := NewPrivateKeySignerFromHex(tt.give)

			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			address, err := signer.Address()
			require.NoError(t, err)
			assert.Equal(t, tt.want, address)
		})
	}
}

func Test_PrivateKeySigner_TransactOpts(t *testing.T) {
	t.Parallel()

	signer, err := NewPrivateKeySignerFromHex(testPrivateKeyHex)
	require.NoError(t, err)

	opts, err := signer.TransactOpts(big.NewInt(SimulatedEVMChainID))
	require.NoError(t, err)

	assert.Equal(t, common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"), opts.From)
	assert.NotNil(t, opts.Signer)
}

func Test_PrivateKeySigner_SignMessage(t *testing.T) {
	t.Parallel()

	signer, err := NewPrivateKeySignerFromHex(testPrivateKeyHex)
	require.NoError(t, err)

	payload := []byte("axelar gateway rotation")
	sig, err := signer.SignMessage(payload)
	require.NoError(t, err)
	require.Len(t, sig, 65)

	// The signature must recover to the signer over the EIP-191 digest.
	pub, err := crypto.SigToPub(accounts.TextHash(payload), sig)
	require.NoError(t, err)

	address, err := signer.Address()
	require.NoError(t, err)
	assert.Equal(t, address, crypto.PubkeyToAddress(*pub))
}
