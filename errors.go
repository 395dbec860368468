package deployments

import (
	"errors"
	"fmt"
)

// ErrMissingPrivateKey is returned when a signing key is required but neither
// the --private-key flag nor the PRIVATE_KEY environment variable is set.
var ErrMissingPrivateKey = errors.New("private key is required: set PRIVATE_KEY or pass --private-key")

// ErrAborted is returned when the operator declines a confirmation prompt.
var ErrAborted = errors.New("aborted by operator")

// ChainNotFoundError is returned when a chain is not present in the manifest.
type ChainNotFoundError struct {
	ChainName string
}

// NewChainNotFoundError creates a new ChainNotFoundError.
func NewChainNotFoundError(name string) *ChainNotFoundError {
	return &ChainNotFoundError{ChainName: name}
}

func (e *ChainNotFoundError) Error() string {
	return fmt.Sprintf("chain %s not found in manifest", e.ChainName)
}

// ContractNotFoundError is returned when a chain entry has no record for the
// requested contract.
type ContractNotFoundError struct {
	ContractName string
	ChainName    string
}

// NewContractNotFoundError creates a new ContractNotFoundError.
func NewContractNotFoundError(contract, chain string) *ContractNotFoundError {
	return &ContractNotFoundError{ContractName: contract, ChainName: chain}
}

func (e *ContractNotFoundError) Error() string {
	return fmt.Sprintf("contract %s not found on chain %s", e.ContractName, e.ChainName)
}

// ChainFamilyMismatchError is returned when a command targets a chain whose
// manifest chainType belongs to a different family.
type ChainFamilyMismatchError struct {
	ChainName string
	Want      string
	Got       string
}

// NewChainFamilyMismatchError creates a new ChainFamilyMismatchError.
func NewChainFamilyMismatchError(chain, want, got string) *ChainFamilyMismatchError {
	return &ChainFamilyMismatchError{ChainName: chain, Want: want, Got: got}
}

func (e *ChainFamilyMismatchError) Error() string {
	return fmt.Sprintf("chain %s is %s, not %s", e.ChainName, e.Got, e.Want)
}
