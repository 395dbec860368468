package evm

import (
	"math/big"
	"testing"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/axelarnetwork/axelar-deployments/internal/testutils/evmsim"
	"github.com/axelarnetwork/axelar-deployments/sdk"
	sdkerrors "github.com/axelarnetwork/axelar-deployments/sdk/errors"
)

// A minimal contract for the deployment smoke test: the creation code copies
// a 10-byte runtime that returns the word 42 to every call.
var (
	smokeRuntime  = common.Hex2Bytes("602a60005260206000f3")
	smokeCreation = append(common.Hex2Bytes("600a600c600039600a6000f3"), smokeRuntime...)
)

func Test_Deployer_Deploy_Simulated(t *testing.T) {
	t.Parallel()

	sim := evmsim.NewSimulatedChain(t, 1)
	client := sim.Backend.Client()
	deployer := NewDeployer(client, sim.Signers[0].NewTransactOpts(t), common.Address{}, common.Address{})

	res, err := deployer.Deploy(t.Context(), sdk.DeployParams{Code: smokeCreation})
	require.NoError(t, err)
	require.NotEmpty(t, res.TxHash)

	sim.Backend.Commit()

	receipt, err := WaitForTransaction(t.Context(), client, common.HexToHash(res.TxHash))
	require.NoError(t, err)
	require.Equal(t, res.Address, receipt.ContractAddress.Hex())

	address := common.HexToAddress(res.Address)
	code, err := client.CodeAt(t.Context(), address, nil)
	require.NoError(t, err)
	require.Equal(t, smokeRuntime, code)

	hash, err := CodeHash(t.Context(), client, res.Address)
	require.NoError(t, err)
	require.Equal(t, hexutil.Encode(crypto.Keccak256(smokeRuntime)), hash)

	_, err = CodeHash(t.Context(), client, common.Address{0x01}.Hex())
	require.ErrorContains(t, err, "no code at")

	ret, err := client.CallContract(t.Context(), ethereum.CallMsg{To: &address}, nil)
	require.NoError(t, err)
	require.Equal(t, int64(42), new(big.Int).SetBytes(ret).Int64())
}

func Test_Deployer_Deploy_UnknownMethod(t *testing.T) {
	t.Parallel()

	deployer := NewDeployer(nil, &bind.TransactOpts{}, common.Address{}, common.Address{})

	_, err := deployer.Deploy(t.Context(), sdk.DeployParams{Method: "create4"})
	require.EqualError(t, err, `unknown deploy method "create4"`)
}

func Test_Deployer_Deploy_DeterministicNotConfigured(t *testing.T) {
	t.Parallel()

	deployer := NewDeployer(nil, &bind.TransactOpts{}, common.Address{}, common.Address{})

	var invalidErr *sdkerrors.InvalidAddressError
	_, err := deployer.Deploy(t.Context(), sdk.DeployParams{Method: sdk.DeployMethodCreate2})
	require.ErrorAs(t, err, &invalidErr)

	_, err = deployer.Deploy(t.Context(), sdk.DeployParams{Method: sdk.DeployMethodCreate3})
	require.ErrorAs(t, err, &invalidErr)
}

func Test_Deployer_Upgrade_InvalidAddresses(t *testing.T) {
	t.Parallel()

	deployer := NewDeployer(nil, &bind.TransactOpts{}, common.Address{}, common.Address{})

	var invalidErr *sdkerrors.InvalidAddressError
	_, err := deployer.Upgrade(t.Context(), sdk.UpgradeParams{Address: "bogus"})
	require.ErrorAs(t, err, &invalidErr)

	_, err = deployer.Upgrade(t.Context(), sdk.UpgradeParams{
		Address:        "0x4F4495243837681061C4743b74B3eEdf548D56A5",
		Implementation: "bogus",
	})
	require.ErrorAs(t, err, &invalidErr)
}

func Test_Deployer_Upload_Unsupported(t *testing.T) {
	t.Parallel()

	deployer := NewDeployer(nil, &bind.TransactOpts{}, common.Address{}, common.Address{})

	var unsupportedErr *sdkerrors.UnsupportedOperationError
	_, err := deployer.Upload(t.Context(), []byte{0x60})
	require.ErrorAs(t, err, &unsupportedErr)
}
