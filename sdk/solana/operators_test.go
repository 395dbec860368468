package solana

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	sdkerrors "github.com/axelarnetwork/axelar-deployments/sdk/errors"
)

func Test_Operators_RemoveOperator(t *testing.T) {
	t.Parallel()

	operators, err := NewOperators(testClient(), testOperators.String())
	require.NoError(t, err)

	_, err = operators.RemoveOperator(context.Background(), testOperator.String())

	var unsupported *sdkerrors.UnsupportedOperationError
	require.ErrorAs(t, err, &unsupported)
	require.Equal(t, "svm", unsupported.Family)
	require.Equal(t, "remove operator", unsupported.Operation)
}

func Test_NewOperators_invalidProgram(t *testing.T) {
	t.Parallel()

	_, err := NewOperators(testClient(), "bogus")

	require.EqualError(t, err, "invalid address: bogus")
}
