// Package evmsim wraps go-ethereum's simulated backend with funded signer
// accounts for deployment tests.
package evmsim

import (
	"crypto/ecdsa"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/stretchr/testify/require"
)

const (
	// DefaultGasLimit is the block gas limit of the simulated chain.
	DefaultGasLimit = uint64(8_000_000)

	// DefaultBalance funds each signer account at genesis.
	DefaultBalance = 1e18

	// SimulatedChainID is fixed by the simulated backend.
	//
	// https://pkg.go.dev/github.com/ethereum/go-ethereum/ethclient/simulated#NewBackend
	SimulatedChainID = 1337
)

// SimulatedChain is an in-process EVM chain with pre-funded signers. Blocks
// are mined by calling Backend.Commit.
type SimulatedChain struct {
	Backend *simulated.Backend
	Signers []*Signer
}

// Signer holds one funded account's private key.
type Signer struct {
	PrivateKey *ecdsa.PrivateKey
}

// NewTransactOpts returns keyed transact opts for the simulated chain.
func (s *Signer) NewTransactOpts(t *testing.T) *bind.TransactOpts {
	t.Helper()

	auth, err := bind.NewKeyedTransactorWithChainID(s.PrivateKey, big.NewInt(SimulatedChainID))
	require.NoError(t, err)
	auth.GasLimit = DefaultGasLimit

	return auth
}

// Address returns the signer's account address.
func (s *Signer) Address(t *testing.T) common.Address {
	t.Helper()

	publicKey, ok := s.PrivateKey.Public().(*ecdsa.PublicKey)
	if !ok {
		t.Fatal("signer key is not an ecdsa key")
	}

	return crypto.PubkeyToAddress(*publicKey)
}

// NewSimulatedChain starts a simulated backend with numSigners funded
// accounts.
func NewSimulatedChain(t *testing.T, numSigners uint64) SimulatedChain {
	t.Helper()

	signers := make([]*Signer, 0, numSigners)
	for range numSigners {
		key, err := crypto.GenerateKey()
		require.NoError(t, err)

		signers = append(signers, &Signer{PrivateKey: key})
	}

	genesisAlloc := gethtypes.GenesisAlloc{}
	for _, s := range signers {
		genesisAlloc[s.Address(t)] = gethtypes.Account{
			Balance: big.NewInt(DefaultBalance),
		}
	}

	sim := simulated.NewBackend(genesisAlloc,
		simulated.WithBlockGasLimit(DefaultGasLimit),
	)
	t.Cleanup(func() { _ = sim.Close() })

	return SimulatedChain{
		Backend: sim,
		Signers: signers,
	}
}
