package deploy

import (
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/stretchr/testify/require"

	deployments "github.com/axelarnetwork/axelar-deployments"
)

func Test_evmSession_applyGasOptions(t *testing.T) {
	t.Parallel()

	session := &evmSession{auth: &bind.TransactOpts{}}

	session.applyGasOptions(&deployments.ContractConfig{})
	require.Zero(t, session.auth.GasLimit)

	session.applyGasOptions(&deployments.ContractConfig{GasOptions: &deployments.GasOptions{}})
	require.Zero(t, session.auth.GasLimit)

	session.applyGasOptions(&deployments.ContractConfig{
		GasOptions: &deployments.GasOptions{GasLimit: 8000000},
	})
	require.Equal(t, uint64(8000000), session.auth.GasLimit)
}
