// Package abi wraps go-ethereum's abi package with helpers equivalent to
// Solidity's abi.encode / abi.decode for ad-hoc tuples. The gateway proof
// payloads and ITS identifiers are keccak hashes over abi-encoded tuples, so
// several packages need encoding outside of any bound contract method.
package abi

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// ABIEncode encodes values as the tuple described by abiStr, a JSON array of
// ABI argument descriptors (e.g. `[{"type":"bytes32"},{"type":"address"}]`).
func ABIEncode(abiStr string, values ...any) ([]byte, error) {
	inDef := fmt.Sprintf(`[{ "name" : "method", "type": "function", "inputs": %s}]`, abiStr)
	inAbi, err := abi.JSON(strings.NewReader(inDef))
	if err != nil {
		return nil, err
	}

	res, err := inAbi.Pack("method", values...)
	if err != nil {
		return nil, err
	}

	// Strip the selector of the wrapper method.
	return res[4:], nil
}

// ABIDecode decodes data as the tuple described by abiStr.
func ABIDecode(abiStr string, data []byte) ([]any, error) {
	inDef := fmt.Sprintf(`[{ "name" : "method", "type": "function", "outputs": %s}]`, abiStr)
	inAbi, err := abi.JSON(strings.NewReader(inDef))
	if err != nil {
		return nil, err
	}

	return inAbi.Unpack("method", data)
}
