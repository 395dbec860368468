package types

import (
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_VerifierSet_Validate(t *testing.T) {
	t.Parallel()

	signerA := hexutil.MustDecode("0x02a2b3c4d5e6f708192a3b4c5d6e7f8091a2b3c4d5e6f708192a3b4c5d6e7f8091")
	signerB := hexutil.MustDecode("0x03b2c3d4e5f6a708192a3b4c5d6e7f8091a2b3c4d5e6f708192a3b4c5d6e7f8091")

	tests := []struct {
		name    string
		give    VerifierSet
		wantErr string
	}{
		{
			name: "success",
			give: VerifierSet{
				Nonce: 1,
				Signers: []WeightedSigner{
					{PublicKey: signerA, Weight: 1},
					{PublicKey: signerB, Weight: 1},
				},
				Threshold: 2,
			},
		},
		{
			name: "unsorted signers",
			give: VerifierSet{
				Signers: []WeightedSigner{
					{PublicKey: signerB, Weight: 1},
					{PublicKey: signerA, Weight: 1},
				},
				Threshold: 1,
			},
			wantErr: "signers are not sorted by public key: index 1",
		},
		{
			name: "duplicate signer",
			give: VerifierSet{
				Signers: []WeightedSigner{
					{PublicKey: signerA, Weight: 1},
					{PublicKey: signerA, Weight: 1},
				},
				Threshold: 1,
			},
			wantErr: "signers are not sorted by public key: index 1",
		},
		{
			name: "threshold exceeds total weight",
			give: VerifierSet{
				Signers: []WeightedSigner{
					{PublicKey: signerA, Weight: 1},
					{PublicKey: signerB, Weight: 2},
				},
				Threshold: 4,
			},
			wantErr: "threshold exceeds total signer weight",
		},
		{
			name: "no signers",
			give: VerifierSet{
				Signers:   []WeightedSigner{},
				Threshold: 1,
			},
			wantErr: "Error:Field validation for 'Signers' failed on the 'min' tag",
		},
		{
			name: "zero weight",
			give: VerifierSet{
				Signers: []WeightedSigner{
					{PublicKey: signerA, Weight: 0},
				},
				Threshold: 1,
			},
			wantErr: "Error:Field validation for 'Weight' failed on the 'required' tag",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.give.Validate()

			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func Test_VerifierSet_Sort(t *testing.T) {
	t.Parallel()

	signerA := hexutil.MustDecode("0x02a2b3c4d5e6f708192a3b4c5d6e7f8091a2b3c4d5e6f708192a3b4c5d6e7f8091")
	signerB := hexutil.MustDecode("0x03b2c3d4e5f6a708192a3b4c5d6e7f8091a2b3c4d5e6f708192a3b4c5d6e7f8091")

	set := VerifierSet{
		Signers: []WeightedSigner{
			{PublicKey: signerB, Weight: 2},
			{PublicKey: signerA, Weight: 1},
		},
		Threshold: 3,
	}

	set.Sort()

	require.Len(t, set.Signers, 2)
	assert.Equal(t, hexutil.Bytes(signerA), set.Signers[0].PublicKey)
	assert.Equal(t, hexutil.Bytes(signerB), set.Signers[1].PublicKey)
	require.NoError(t, set.Validate())
}

func Test_NewVerifierSet(t *testing.T) {
	t.Parallel()

	give := `{
		"nonce": 7,
		"signers": [
			{"pubKey": "0x02a2b3c4d5e6f708192a3b4c5d6e7f8091a2b3c4d5e6f708192a3b4c5d6e7f8091", "weight": 1}
		],
		"threshold": 1
	}`

	set, err := NewVerifierSet([]byte(give))
	require.NoError(t, err)

	assert.Equal(t, uint64(7), set.Nonce)
	assert.Equal(t, uint64(1), set.Threshold)
	assert.Equal(t, uint64(1), set.TotalWeight())

	_, err = NewVerifierSet([]byte(`{"signers": [], "threshold": 1}`))
	require.Error(t, err)
}
