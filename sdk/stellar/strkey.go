package stellar

import (
	"github.com/stellar/go/strkey"

	sdkerrors "github.com/axelarnetwork/axelar-deployments/sdk/errors"
)

// IsValidAccountAddress reports whether address is a well-formed ed25519
// account strkey (G...).
func IsValidAccountAddress(address string) bool {
	return strkey.IsValidEd25519PublicKey(address)
}

// IsValidContractAddress reports whether address is a well-formed contract
// strkey (C...).
func IsValidContractAddress(address string) bool {
	_, err := strkey.Decode(strkey.VersionByteContract, address)
	return err == nil
}

// ValidateAddress accepts either an account or a contract strkey.
func ValidateAddress(address string) error {
	if !IsValidAccountAddress(address) && !IsValidContractAddress(address) {
		return sdkerrors.NewInvalidAddressError(address)
	}

	return nil
}
