package evm

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	sdkerrors "github.com/axelarnetwork/axelar-deployments/sdk/errors"
)

const (
	// SimulatedEVMChainID is the chain ID used for simulated backends in tests.
	SimulatedEVMChainID = 1337

	receiptPollInterval = 2 * time.Second
)

// ContractDeployBackend combines the geth binding interfaces every operation
// in this package needs: contract calls, transaction submission and receipt
// lookup.
type ContractDeployBackend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// WaitForTransaction polls for the receipt of txHash and returns it once
// mined. It returns a TransactionFailedError if the transaction reverted.
func WaitForTransaction(ctx context.Context, client ContractDeployBackend, txHash common.Hash) (*gethtypes.Receipt, error) {
	ticker := time.NewTicker(receiptPollInterval)
	defer ticker.Stop()

	for {
		receipt, err := client.TransactionReceipt(ctx, txHash)
		if err == nil {
			if receipt.Status != gethtypes.ReceiptStatusSuccessful {
				return receipt, sdkerrors.NewTransactionFailedError(txHash.Hex(), "reverted")
			}

			return receipt, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// CodeHash returns the keccak256 hash of the runtime bytecode deployed at an
// address. Accounts without code are an error, not an empty hash.
func CodeHash(ctx context.Context, client ContractDeployBackend, contractAddress string) (string, error) {
	address, err := ParseAddress(contractAddress)
	if err != nil {
		return "", err
	}

	code, err := client.CodeAt(ctx, address, nil)
	if err != nil {
		return "", err
	}
	if len(code) == 0 {
		return "", fmt.Errorf("no code at %s", address)
	}

	return hexutil.Encode(crypto.Keccak256(code)), nil
}

// txResult converts a submitted geth transaction into the shared result type.
func txResultHash(tx *gethtypes.Transaction) string {
	return tx.Hash().Hex()
}

// transactOptsWithCtx clones auth and attaches the call context so a single
// set of transact opts can be shared across operations.
func transactOptsWithCtx(ctx context.Context, auth *bind.TransactOpts) *bind.TransactOpts {
	opts := *auth
	opts.Context = ctx

	return &opts
}

// zeroAddress is the native-token marker used by the gas service.
var zeroAddress = common.Address{}
