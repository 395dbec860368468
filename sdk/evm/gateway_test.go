package evm

import (
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	sdkerrors "github.com/axelarnetwork/axelar-deployments/sdk/errors"
)

func Test_Gateway_ApproveMessages_ExecuteDataValidation(t *testing.T) {
	t.Parallel()

	gateway := NewGateway(nil, &bind.TransactOpts{}, common.HexToAddress("0x1"))

	tests := []struct {
		name    string
		give    []byte
		wantErr string
	}{
		{
			name:    "failure empty",
			give:    nil,
			wantErr: "invalid execute data: calldata shorter than a function selector",
		},
		{
			name:    "failure rotation calldata",
			give:    gatewayABI.Methods["rotateSigners"].ID,
			wantErr: "invalid execute data: unexpected selector 0x1d92c0bf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := gateway.ApproveMessages(t.Context(), tt.give)

			require.EqualError(t, err, tt.wantErr)
			var executeDataErr *sdkerrors.InvalidExecuteDataError
			require.ErrorAs(t, err, &executeDataErr)
		})
	}
}

func Test_Gateway_RotateSigners_ExecuteDataValidation(t *testing.T) {
	t.Parallel()

	gateway := NewGateway(nil, &bind.TransactOpts{}, common.HexToAddress("0x1"))

	_, err := gateway.RotateSigners(t.Context(), gatewayABI.Methods["approveMessages"].ID)

	require.EqualError(t, err, "invalid execute data: unexpected selector 0x64f1d85a")
}

func Test_Gateway_TransferOperatorship_InvalidAddress(t *testing.T) {
	t.Parallel()

	gateway := NewGateway(nil, &bind.TransactOpts{}, common.HexToAddress("0x1"))

	_, err := gateway.TransferOperatorship(t.Context(), "not-an-address")

	require.EqualError(t, err, "invalid address: not-an-address")
}
