package stellar

import (
	"testing"

	"github.com/stretchr/testify/require"

	sdkerrors "github.com/axelarnetwork/axelar-deployments/sdk/errors"
)

func Test_NewGateway_InvalidAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		give string
	}{
		{
			name: "account address",
			give: testAccountAddress,
		},
		{
			name: "empty",
			give: "",
		},
		{
			name: "corrupted checksum",
			give: "GAAACAQDAQCQMBYIBEFAWDANBYHRAEISCMKBKFQXDAMRUGY4DUPB7JZA",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewGateway(nil, nil, tt.give)

			var invalidAddress *sdkerrors.InvalidAddressError
			require.ErrorAs(t, err, &invalidAddress)
		})
	}
}

func Test_decodeExecuteData(t *testing.T) {
	t.Parallel()

	pair, err := Vec(Vec(String("messages")), Map(MapEntry{Key: "signers", Val: Vec(String("signer"))})).MarshalBinary()
	require.NoError(t, err)

	single, err := Vec(String("payload")).MarshalBinary()
	require.NoError(t, err)

	scalar, err := String("not a vector").MarshalBinary()
	require.NoError(t, err)

	tests := []struct {
		name    string
		give    []byte
		wantErr string
	}{
		{
			name: "payload and proof",
			give: pair,
		},
		{
			name:    "garbage",
			give:    []byte{0xff},
			wantErr: "invalid execute data: decode xdr",
		},
		{
			name:    "not a vector",
			give:    scalar,
			wantErr: "invalid execute data: expected a vector of payload and proof",
		},
		{
			name:    "wrong arity",
			give:    single,
			wantErr: "invalid execute data: expected 2 elements, got 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			payload, proof, err := decodeExecuteData(tt.give)

			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)

				var invalidExecuteData *sdkerrors.InvalidExecuteDataError
				require.ErrorAs(t, err, &invalidExecuteData)
				return
			}

			require.NoError(t, err)
			require.Equal(t, Vec(String("messages")), payload)
			require.Equal(t, Map(MapEntry{Key: "signers", Val: Vec(String("signer"))}), proof)
		})
	}
}
