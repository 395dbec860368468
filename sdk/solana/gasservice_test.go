package solana

import (
	"context"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/axelarnetwork/axelar-deployments/sdk"
	sdkerrors "github.com/axelarnetwork/axelar-deployments/sdk/errors"
)

func testGasServiceDriver(t *testing.T) *GasService {
	t.Helper()

	gas, err := NewGasService(testClient(), testGasService.String(), testOperators.String())
	require.NoError(t, err)

	return gas
}

func Test_messageID(t *testing.T) {
	t.Parallel()

	require.Equal(t, "sig111-3", messageID("sig111", 3))
	require.Equal(t,
		"2B3x8ZqX5Fany1p6eSwoyw7nHgNUbyGmDTC9u9yKxQpW-0",
		messageID("2B3x8ZqX5Fany1p6eSwoyw7nHgNUbyGmDTC9u9yKxQpW", 0))
}

func Test_lamports(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    *big.Int
		want    uint64
		wantErr bool
	}{
		{name: "typical amount", give: big.NewInt(5_000_000), want: 5_000_000},
		{name: "max u64", give: new(big.Int).SetUint64(math.MaxUint64), want: math.MaxUint64},
		{name: "nil", give: nil, wantErr: true},
		{name: "negative", give: big.NewInt(-5), wantErr: true},
		{name: "beyond u64", give: new(big.Int).Lsh(big.NewInt(1), 64), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := lamports(tt.give)

			if tt.wantErr {
				require.ErrorContains(t, err, "does not fit in u64 lamports")
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func Test_GasService_unsupportedOperations(t *testing.T) {
	t.Parallel()

	gas := testGasServiceDriver(t)
	ctx := context.Background()

	_, err := gas.CollectFees(ctx, testOperator.String(), big.NewInt(1))
	var unsupported *sdkerrors.UnsupportedOperationError
	require.ErrorAs(t, err, &unsupported)
	require.Equal(t, "collect fees", unsupported.Operation)

	_, err = gas.Refund(ctx, sdk.RefundParams{})
	require.ErrorAs(t, err, &unsupported)
	require.Equal(t, "refund", unsupported.Operation)
}

func Test_GasService_invalidAddresses(t *testing.T) {
	t.Parallel()

	_, err := NewGasService(testClient(), "bogus", testOperators.String())
	require.EqualError(t, err, "invalid address: bogus")

	_, err = NewGasService(testClient(), testGasService.String(), "bogus")
	require.EqualError(t, err, "invalid address: bogus")

	gas := testGasServiceDriver(t)
	_, err = gas.AddGas(context.Background(), sdk.AddGasParams{
		TxHash:        "sig111",
		LogIndex:      0,
		RefundAddress: "bogus",
		Amount:        big.NewInt(1),
	})
	require.EqualError(t, err, "invalid address: bogus")

	_, err = gas.PayGas(context.Background(), sdk.PayGasParams{
		DestinationChain:   "ethereum",
		DestinationAddress: "0x1daA1d8b9d1a751ed4d9e80bbbcba4fccd4b3b94",
		RefundAddress:      "bogus",
		Amount:             big.NewInt(1),
	})
	require.EqualError(t, err, "invalid address: bogus")
}
