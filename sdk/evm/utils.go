package evm

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	sdkerrors "github.com/axelarnetwork/axelar-deployments/sdk/errors"
)

// checkSelector verifies calldata starts with the expected 4-byte function
// selector.
func checkSelector(calldata, want []byte) error {
	if len(calldata) < 4 {
		return sdkerrors.NewInvalidExecuteDataError("calldata shorter than a function selector")
	}
	if !bytes.Equal(calldata[:4], want) {
		return sdkerrors.NewInvalidExecuteDataError(fmt.Sprintf("unexpected selector 0x%x", calldata[:4]))
	}

	return nil
}

// SaltHash converts a human-readable salt string into the bytes32 salt the
// deployer contracts consume.
func SaltHash(salt string) [32]byte {
	return crypto.Keccak256Hash([]byte(salt))
}

// PredictCreate2Address computes the address a create2 deployment through the
// deployer contract will land on. The deployer scopes salts to the sender by
// hashing them together before the CREATE2.
func PredictCreate2Address(deployer, sender common.Address, bytecode []byte, salt [32]byte) common.Address {
	senderSalt := crypto.Keccak256Hash(sender.Bytes(), salt[:])

	return crypto.CreateAddress2(deployer, senderSalt, crypto.Keccak256(bytecode))
}

// ParseAddress validates and parses a 0x-prefixed hex address.
func ParseAddress(address string) (common.Address, error) {
	if !common.IsHexAddress(address) {
		return common.Address{}, sdkerrors.NewInvalidAddressError(address)
	}

	return common.HexToAddress(address), nil
}

// DecodeBytecode parses an artifact's hex-encoded creation bytecode, with or
// without a 0x prefix.
func DecodeBytecode(raw string) ([]byte, error) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "0x") {
		raw = "0x" + raw
	}

	decoded, err := hexutil.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decode bytecode: %w", err)
	}

	return decoded, nil
}
