package sui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	sdkerrors "github.com/axelarnetwork/axelar-deployments/sdk/errors"
)

func testOperatorsDriver(t *testing.T) *Operators {
	t.Helper()

	operators, err := NewOperators(testClient(t), testPackageID, testOperatorsObj, testOwnerCap)
	require.NoError(t, err)

	return operators
}

func Test_NewOperators(t *testing.T) {
	t.Parallel()

	operators := testOperatorsDriver(t)
	require.Equal(t, testOperatorsObj, operators.operators)

	var invalidErr *sdkerrors.InvalidAddressError
	_, err := NewOperators(testClient(t), "bogus", testOperatorsObj, testOwnerCap)
	require.ErrorAs(t, err, &invalidErr)

	_, err = NewOperators(testClient(t), testPackageID, testOperatorsObj, "")
	require.ErrorAs(t, err, &invalidErr)
}

func Test_Operators_IsOperator(t *testing.T) {
	t.Parallel()

	var unsupported *sdkerrors.UnsupportedOperationError
	_, err := testOperatorsDriver(t).IsOperator(context.Background(), testAddress)
	require.ErrorAs(t, err, &unsupported)
	require.Equal(t, "sui", unsupported.Family)
	require.Equal(t, "query operator", unsupported.Operation)
}

func Test_Operators_invalidAddress(t *testing.T) {
	t.Parallel()

	operators := testOperatorsDriver(t)

	var invalidErr *sdkerrors.InvalidAddressError
	_, err := operators.AddOperator(context.Background(), "bogus")
	require.ErrorAs(t, err, &invalidErr)

	_, err = operators.RemoveOperator(context.Background(), "bogus")
	require.ErrorAs(t, err, &invalidErr)
}
