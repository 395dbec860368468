package sdkerrors

import (
	"fmt"
)

// InvalidAddressError is returned when an address does not parse under the
// target chain's format.
type InvalidAddressError struct {
	ReceivedAddress string
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid address: %s", e.ReceivedAddress)
}

func NewInvalidAddressError(address string) *InvalidAddressError {
	return &InvalidAddressError{ReceivedAddress: address}
}

// TransactionFailedError is returned when a submitted transaction was
// included but did not succeed.
type TransactionFailedError struct {
	Hash   string
	Status string
}

func (e *TransactionFailedError) Error() string {
	return fmt.Sprintf("transaction %s failed with status %s", e.Hash, e.Status)
}

func NewTransactionFailedError(hash, status string) *TransactionFailedError {
	return &TransactionFailedError{Hash: hash, Status: status}
}

// UnsupportedOperationError is returned when an operation has no
// implementation on the target chain family.
type UnsupportedOperationError struct {
	Family    string
	Operation string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("operation %s is not supported on %s", e.Operation, e.Family)
}

func NewUnsupportedOperationError(family, operation string) *UnsupportedOperationError {
	return &UnsupportedOperationError{Family: family, Operation: operation}
}

// InvalidExecuteDataError is returned when an amplifier proof payload cannot
// be decoded for the target chain.
type InvalidExecuteDataError struct {
	Reason string
}

func (e *InvalidExecuteDataError) Error() string {
	return "invalid execute data: " + e.Reason
}

func NewInvalidExecuteDataError(reason string) *InvalidExecuteDataError {
	return &InvalidExecuteDataError{Reason: reason}
}
