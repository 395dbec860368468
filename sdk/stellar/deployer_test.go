package stellar

import (
	"encoding/hex"
	"testing"

	"github.com/stellar/go/xdr"
	"github.com/stretchr/testify/require"
)

func Test_saltBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		give string
		want string
	}{
		{
			name: "hex used verbatim",
			give: "9f589b603f5cfe0c762d03c9296e6992e176f745c994bb1d3f451e7f1e6d6043",
			want: "9f589b603f5cfe0c762d03c9296e6992e176f745c994bb1d3f451e7f1e6d6043",
		},
		{
			name: "prefixed hex used verbatim",
			give: "0x9f589b603f5cfe0c762d03c9296e6992e176f745c994bb1d3f451e7f1e6d6043",
			want: "9f589b603f5cfe0c762d03c9296e6992e176f745c994bb1d3f451e7f1e6d6043",
		},
		{
			name: "label hashed",
			give: "axelar-gateway",
			want: "9f589b603f5cfe0c762d03c9296e6992e176f745c994bb1d3f451e7f1e6d6043",
		},
		{
			name: "short hex hashed",
			give: "its-salt-v1",
			want: "a7e2f00779599581a3e9c83e02f84ff171ab9e671bc92a6e1dc5c3e98ff176cf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := saltBytes(tt.give)

			require.NoError(t, err)
			require.Equal(t, tt.want, hex.EncodeToString(got[:]))
		})
	}
}

func Test_saltBytes_EmptyIsRandom(t *testing.T) {
	t.Parallel()

	first, err := saltBytes("")
	require.NoError(t, err)

	second, err := saltBytes("")
	require.NoError(t, err)

	require.NotEqual(t, [32]byte{}, first)
	require.NotEqual(t, first, second)
}

func Test_MarshalArgs_RoundTrip(t *testing.T) {
	t.Parallel()

	give := []xdr.ScVal{String("axelar"), U32(7), Bool(true)}

	encoded, err := MarshalArgs(give...)
	require.NoError(t, err)

	got, err := UnmarshalArgs(encoded)
	require.NoError(t, err)
	require.Equal(t, give, got)
}

func Test_UnmarshalArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    []byte
		wantLen int
		wantErr string
	}{
		{
			name:    "empty input yields no args",
			give:    nil,
			wantLen: 0,
		},
		{
			name:    "garbage",
			give:    []byte{0xff, 0xff, 0xff},
			wantErr: "decode args",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := UnmarshalArgs(tt.give)

			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.Len(t, got, tt.wantLen)
		})
	}
}

func Test_contractAddressFromReturn(t *testing.T) {
	t.Parallel()

	address, err := Address(testContractAddress)
	require.NoError(t, err)

	got, err := contractAddressFromReturn(address)
	require.NoError(t, err)
	require.Equal(t, testContractAddress, got)

	_, err = contractAddressFromReturn(String("not an address"))
	require.ErrorContains(t, err, "expected an address")
}
