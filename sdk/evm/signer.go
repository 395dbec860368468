package evm

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/usbwallet"
	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// Signer is a strategy for producing transact opts and signing raw payloads.
type Signer interface {
	// TransactOpts returns bound-contract transact opts for the chain.
	TransactOpts(chainID *big.Int) (*bind.TransactOpts, error)

	// SignMessage signs a payload with the EIP-191 personal-sign prefix.
	SignMessage(payload []byte) ([]byte, error)

	// Address returns the signer's address.
	Address() (common.Address, error)
}

var _ Signer = (*PrivateKeySigner)(nil)

// PrivateKeySigner signs with an in-memory secp256k1 key.
type PrivateKeySigner struct {
	pk *ecdsa.PrivateKey
}

// NewPrivateKeySigner creates a new PrivateKeySigner.
func NewPrivateKeySigner(pk *ecdsa.PrivateKey) *PrivateKeySigner {
	return &PrivateKeySigner{pk: pk}
}

// NewPrivateKeySignerFromHex parses a hex-encoded private key, with or
// without a 0x prefix.
func NewPrivateKeySignerFromHex(key string) (*PrivateKeySigner, error) {
	pk, err := crypto.HexToECDSA(strings.TrimPrefix(key, "0x"))
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	return &PrivateKeySigner{pk: pk}, nil
}

func (s *PrivateKeySigner) TransactOpts(chainID *big.Int) (*bind.TransactOpts, error) {
	return bind.NewKeyedTransactorWithChainID(s.pk, chainID)
}

// SignMessage signs the payload with the EIP-191 prefix applied.
func (s *PrivateKeySigner) SignMessage(payload []byte) ([]byte, error) {
	return crypto.Sign(accounts.TextHash(payload), s.pk)
}

func (s *PrivateKeySigner) Address() (common.Address, error) {
	return crypto.PubkeyToAddress(s.pk.PublicKey), nil
}

var _ Signer = (*LedgerSigner)(nil)

// LedgerSigner signs with the first Ledger device found on USB.
type LedgerSigner struct {
	derivationPath accounts.DerivationPath
}

// NewLedgerSigner creates a new LedgerSigner. A nil derivation path selects
// the default Ethereum ledger path.
func NewLedgerSigner(derivationPath []uint32) *LedgerSigner {
	if derivationPath == nil {
		derivationPath = accounts.DefaultBaseDerivationPath
	}

	return &LedgerSigner{derivationPath: derivationPath}
}

func (s *LedgerSigner) TransactOpts(chainID *big.Int) (*bind.TransactOpts, error) {
	wallet, account, err := s.setupLedgerAccount()
	if err != nil {
		return nil, err
	}

	signerFn := func(address common.Address, tx *gethtypes.Transaction) (*gethtypes.Transaction, error) {
		if address != account.Address {
			return nil, bind.ErrNotAuthorized
		}

		return wallet.SignTx(account, tx, chainID)
	}

	// The wallet stays open for the lifetime of the opts; ledger sessions are
	// closed when the process exits.
	return &bind.TransactOpts{
		From:   account.Address,
		Signer: signerFn,
	}, nil
}

// SignMessage signs the payload on the device; the ledger applies the
// EIP-191 prefix itself.
func (s *LedgerSigner) SignMessage(payload []byte) ([]byte, error) {
	wallet, account, err := s.setupLedgerAccount()
	if err != nil {
		return nil, err
	}
	defer wallet.Close()

	return wallet.SignText(account, payload)
}

func (s *LedgerSigner) Address() (common.Address, error) {
	wallet, account, err := s.setupLedgerAccount()
	if err != nil {
		return common.Address{}, err
	}
	defer wallet.Close()

	return account.Address, nil
}

// setupLedgerAccount loads the wallet and account from the ledger. Caller is
// responsible for closing the wallet.
func (s *LedgerSigner) setupLedgerAccount() (accounts.Wallet, accounts.Account, error) {
	ledgerhub, err := usbwallet.NewLedgerHub()
	if err != nil {
		return nil, accounts.Account{}, fmt.Errorf("failed to open ledger hub: %w", err)
	}

	wallets := ledgerhub.Wallets()
	if len(wallets) == 0 {
		return nil, accounts.Account{}, errors.New("no ledger found")
	}
	wallet := wallets[0]

	if err = wallet.Open(""); err != nil {
		return nil, accounts.Account{}, fmt.Errorf("failed to open wallet: %w", err)
	}

	account, err := wallet.Derive(s.derivationPath, true)
	if err != nil {
		wallet.Close() // Only close on error since caller won't be able to
		return nil, accounts.Account{}, fmt.Errorf("is your ledger ethereum app open? Failed to derive account: %w derivation path %v", err, s.derivationPath)
	}

	return wallet, account, nil
}
