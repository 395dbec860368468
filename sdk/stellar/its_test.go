package stellar

import (
	"math/big"
	"testing"

	"github.com/stellar/go/xdr"
	"github.com/stretchr/testify/require"

	"github.com/axelarnetwork/axelar-deployments/types"
)

func Test_gasTokenScVal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		giveAddr string
		giveAmt  *big.Int
		wantVoid bool
		wantErr  string
	}{
		{
			name:     "nil amount is none",
			giveAddr: testContractAddress,
			giveAmt:  nil,
			wantVoid: true,
		},
		{
			name:     "zero amount is none",
			giveAddr: testContractAddress,
			giveAmt:  big.NewInt(0),
			wantVoid: true,
		},
		{
			name:     "amount builds token struct",
			giveAddr: testContractAddress,
			giveAmt:  big.NewInt(10_000_000),
		},
		{
			name:     "invalid token address",
			giveAddr: "not-a-contract",
			giveAmt:  big.NewInt(1),
			wantErr:  "invalid address: not-a-contract",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := gasTokenScVal(tt.giveAddr, tt.giveAmt)

			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)

			if tt.wantVoid {
				require.Equal(t, Void(), got)
				return
			}

			require.Equal(t, xdr.ScValTypeScvMap, got.Type)

			entries := **got.Map
			require.Len(t, entries, 2)
			require.Equal(t, xdr.ScSymbol("address"), *entries[0].Key.Sym)
			require.Equal(t, xdr.ScSymbol("amount"), *entries[1].Key.Sym)
			require.Equal(t, tt.giveAmt.String(), I128ToBig(*entries[1].Val.I128).String())
		})
	}
}

func Test_tokenMetadataScVal(t *testing.T) {
	t.Parallel()

	got := tokenMetadataScVal(types.TokenMetadata{
		Name:     "Wrapped Ether",
		Symbol:   "WETH",
		Decimals: 18,
	})

	require.Equal(t, xdr.ScValTypeScvMap, got.Type)

	entries := **got.Map
	require.Len(t, entries, 3)
	require.Equal(t, xdr.ScSymbol("decimal"), *entries[0].Key.Sym)
	require.Equal(t, xdr.Uint32(18), *entries[0].Val.U32)
	require.Equal(t, xdr.ScSymbol("name"), *entries[1].Key.Sym)
	require.Equal(t, xdr.ScString("Wrapped Ether"), *entries[1].Val.Str)
	require.Equal(t, xdr.ScSymbol("symbol"), *entries[2].Key.Sym)
	require.Equal(t, xdr.ScString("WETH"), *entries[2].Val.Str)
}

func Test_destinationAddressBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		give string
		want []byte
	}{
		{
			name: "hex decodes",
			give: "0x4f4495243837681061c4743b74b3eedf548d56a5",
			want: []byte{
				0x4f, 0x44, 0x95, 0x24, 0x38, 0x37, 0x68, 0x10, 0x61, 0xc4,
				0x74, 0x3b, 0x74, 0xb3, 0xee, 0xdf, 0x54, 0x8d, 0x56, 0xa5,
			},
		},
		{
			name: "bech32 passes through",
			give: "axelar1dv4u5k73pzqrxlzujxg3qp8kvc3pje7jtdvu72npnt5zhq05ejcsn5qme5",
			want: []byte("axelar1dv4u5k73pzqrxlzujxg3qp8kvc3pje7jtdvu72npnt5zhq05ejcsn5qme5"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tt.want, destinationAddressBytes(tt.give))
		})
	}
}

func Test_NewIts_InvalidAddress(t *testing.T) {
	t.Parallel()

	_, err := NewIts(nil, nil, testAccountAddress, testContractAddress)

	require.EqualError(t, err, "invalid address: "+testAccountAddress)
}
