package stellar

import (
	"fmt"

	"github.com/stellar/go/clients/horizonclient"
	"github.com/stellar/go/keypair"

	sdkerrors "github.com/axelarnetwork/axelar-deployments/sdk/errors"
)

// GenerateKeypair creates a fresh ed25519 account keypair.
func GenerateKeypair() (*keypair.Full, error) {
	return keypair.Random()
}

// Fund asks the network's friendbot to create and fund the account. Only
// test networks run a friendbot.
func (c *Client) Fund(address string) error {
	if !IsValidAccountAddress(address) {
		return sdkerrors.NewInvalidAddressError(address)
	}

	_, err := c.horizon.Fund(address)
	if err != nil {
		return fmt.Errorf("fund %s: %w", address, err)
	}

	return nil
}

// NativeBalance returns the account's XLM balance as a decimal string.
func (c *Client) NativeBalance(address string) (string, error) {
	if !IsValidAccountAddress(address) {
		return "", sdkerrors.NewInvalidAddressError(address)
	}

	account, err := c.horizon.AccountDetail(horizonclient.AccountRequest{AccountID: address})
	if err != nil {
		return "", fmt.Errorf("account detail %s: %w", address, err)
	}

	balance, err := account.GetNativeBalance()
	if err != nil {
		return "", err
	}

	return balance, nil
}
