package solana

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/axelarnetwork/axelar-deployments/sdk"
	sdkerrors "github.com/axelarnetwork/axelar-deployments/sdk/errors"
)

func testItsDriver(t *testing.T) *Its {
	t.Helper()

	its, err := NewIts(testClient(), testIts.String())
	require.NoError(t, err)

	return its
}

func Test_Its_tokenIDs(t *testing.T) {
	t.Parallel()

	its := testItsDriver(t)
	salt := filled32(0xAA)

	interchain, err := its.InterchainTokenID(context.Background(), testOperator.String(), salt)
	require.NoError(t, err)
	require.Equal(t, "0xb8f6b7ad0d261a740d5d213b2d21f1615f4e16ca714bfe5f62bb218c2436b6ee", interchain.String())

	canonical, err := its.CanonicalTokenID(testOperator.String())
	require.NoError(t, err)
	require.Equal(t, "0x8f1af88bc63f866280d82e4cfc931ff325f7cc2dd71234526d0928fdf9482ea2", canonical.String())

	linked, err := its.LinkedTokenID(testOperator.String(), salt)
	require.NoError(t, err)
	require.Equal(t, "0x127619bfe996586ca8417093e973f17aff6783efd2777e6b966b5942d6629696", linked.String())

	_, err = its.InterchainTokenID(context.Background(), "bogus", salt)
	require.EqualError(t, err, "invalid address: bogus")
}

func Test_Its_emptyTrustedChain(t *testing.T) {
	t.Parallel()

	its := testItsDriver(t)

	_, err := its.SetTrustedChain(context.Background(), "")
	require.EqualError(t, err, "chain name cannot be empty")
}

func Test_Its_unsupportedOperations(t *testing.T) {
	t.Parallel()

	its := testItsDriver(t)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
	}{
		{
			name: "deploy interchain token",
			call: func() error {
				_, err := its.DeployInterchainToken(ctx, sdk.DeployTokenParams{})
				return err
			},
		},
		{
			name: "deploy remote interchain token",
			call: func() error {
				_, err := its.DeployRemoteInterchainToken(ctx, sdk.RemoteDeployParams{})
				return err
			},
		},
		{
			name: "register canonical token",
			call: func() error {
				_, err := its.RegisterCanonicalToken(ctx, testOperator.String())
				return err
			},
		},
		{
			name: "register custom token",
			call: func() error {
				_, err := its.RegisterCustomToken(ctx, sdk.RegisterTokenParams{})
				return err
			},
		},
		{
			name: "register token metadata",
			call: func() error {
				_, err := its.RegisterTokenMetadata(ctx, testOperator.String(), big.NewInt(1))
				return err
			},
		},
		{
			name: "link token",
			call: func() error {
				_, err := its.LinkToken(ctx, sdk.LinkTokenParams{})
				return err
			},
		},
		{
			name: "interchain transfer",
			call: func() error {
				_, err := its.InterchainTransfer(ctx, sdk.TransferParams{})
				return err
			},
		},
		{
			name: "set flow limit",
			call: func() error {
				_, err := its.SetFlowLimit(ctx, [32]byte{}, big.NewInt(1))
				return err
			},
		},
		{
			name: "query trusted chain",
			call: func() error {
				_, err := its.IsTrustedChain(ctx, "ethereum")
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.call()

			var unsupported *sdkerrors.UnsupportedOperationError
			require.ErrorAs(t, err, &unsupported)
			require.Equal(t, "svm", unsupported.Family)
			require.Equal(t, tt.name, unsupported.Operation)
		})
	}
}
