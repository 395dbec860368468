package sui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	sdkerrors "github.com/axelarnetwork/axelar-deployments/sdk/errors"
	"github.com/axelarnetwork/axelar-deployments/types"
)

func testGatewayDriver(t *testing.T) *Gateway {
	t.Helper()

	gateway, err := NewGateway(testClient(t), testPackageID, testGateway)
	require.NoError(t, err)

	return gateway
}

func Test_NewGateway(t *testing.T) {
	t.Parallel()

	gateway := testGatewayDriver(t)
	require.Equal(t, testPackageID, gateway.packageID)
	require.Equal(t, testGateway, gateway.gateway)

	short, err := NewGateway(testClient(t), "0xA", "0xB")
	require.NoError(t, err)
	require.Equal(t, "0x000000000000000000000000000000000000000000000000000000000000000a", short.packageID)
	require.Equal(t, "0x000000000000000000000000000000000000000000000000000000000000000b", short.gateway)

	var invalidErr *sdkerrors.InvalidAddressError
	_, err = NewGateway(testClient(t), "bogus", testGateway)
	require.ErrorAs(t, err, &invalidErr)

	_, err = NewGateway(testClient(t), testPackageID, "")
	require.ErrorAs(t, err, &invalidErr)
}

func Test_Gateway_CallContract_validation(t *testing.T) {
	t.Parallel()

	gateway := testGatewayDriver(t)

	_, err := gateway.CallContract(context.Background(), "", "0x1234", []byte{0x01})
	require.EqualError(t, err, "destination chain cannot be empty")

	_, err = gateway.CallContract(context.Background(), "ethereum", "", []byte{0x01})
	require.EqualError(t, err, "destination address cannot be empty")
}

func Test_Gateway_invalidExecuteData(t *testing.T) {
	t.Parallel()

	gateway := testGatewayDriver(t)

	var decodeErr *sdkerrors.InvalidExecuteDataError
	_, err := gateway.ApproveMessages(context.Background(), []byte{0xFF})
	require.ErrorAs(t, err, &decodeErr)

	_, err = gateway.RotateSigners(context.Background(), nil)
	require.EqualError(t, err, "invalid execute data: empty payload")
}

func Test_Gateway_TransferOperatorship_invalidAddress(t *testing.T) {
	t.Parallel()

	var invalidErr *sdkerrors.InvalidAddressError
	_, err := testGatewayDriver(t).TransferOperatorship(context.Background(), "not-an-address")
	require.ErrorAs(t, err, &invalidErr)
	require.Equal(t, "not-an-address", invalidErr.ReceivedAddress)
}

func Test_Gateway_unsupportedQueries(t *testing.T) {
	t.Parallel()

	gateway := testGatewayDriver(t)

	var unsupported *sdkerrors.UnsupportedOperationError
	_, err := gateway.IsMessageApproved(context.Background(), types.Message{})
	require.ErrorAs(t, err, &unsupported)
	require.Equal(t, "sui", unsupported.Family)
	require.Equal(t, "query message approval", unsupported.Operation)

	_, err = gateway.IsMessageExecuted(context.Background(), "ethereum", "0xabc-1")
	require.ErrorAs(t, err, &unsupported)
	require.Equal(t, "query message execution", unsupported.Operation)
}
