package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/go-playground/validator/v10"
)

var (
	// ErrSignersNotSorted is returned when a verifier set lists its signers
	// out of canonical order. Gateways hash the set as an ordered sequence, so
	// an unsorted set produces a hash the amplifier network will never sign.
	ErrSignersNotSorted = errors.New("signers are not sorted by public key")

	// ErrThresholdTooHigh is returned when a verifier set's threshold exceeds
	// the sum of its signer weights, which would make the set unable to sign.
	ErrThresholdTooHigh = errors.New("threshold exceeds total signer weight")
)

// WeightedSigner pairs a verifier public key with its voting weight.
//
// The key encoding is chain dependent: 33-byte compressed secp256k1 for EVM,
// Stellar and Sui gateways, 32-byte ed25519 where a chain verifies ed25519
// signatures.
type WeightedSigner struct {
	PublicKey hexutil.Bytes `json:"pubKey" validate:"required"`
	Weight    uint64        `json:"weight" validate:"required"`
}

// VerifierSet is a weighted set of verifier public keys with a signing
// threshold. Gateways track the hash of the active set and accept proofs
// signed by any subset of it whose weights meet the threshold. The nonce
// makes consecutive sets with identical membership hash differently.
type VerifierSet struct {
	Nonce     uint64           `json:"nonce"`
	Signers   []WeightedSigner `json:"signers" validate:"required,min=1,dive"`
	Threshold uint64           `json:"threshold" validate:"required"`
}

// NewVerifierSet parses and validates a verifier set from its JSON encoding.
func NewVerifierSet(data []byte) (VerifierSet, error) {
	var out VerifierSet
	if err := json.Unmarshal(data, &out); err != nil {
		return VerifierSet{}, err
	}

	if err := out.Validate(); err != nil {
		return VerifierSet{}, err
	}

	return out, nil
}

// Validate checks that the set is well formed: at least one signer, nonzero
// weights, signers in strictly ascending public key order, and a threshold
// that the full set can meet.
func (s VerifierSet) Validate() error {
	var validate = validator.New()
	if err := validate.Struct(s); err != nil {
		return err
	}

	for i := 1; i < len(s.Signers); i++ {
		if bytes.Compare(s.Signers[i-1].PublicKey, s.Signers[i].PublicKey) >= 0 {
			return fmt.Errorf("%w: index %d", ErrSignersNotSorted, i)
		}
	}

	if s.Threshold > s.TotalWeight() {
		return ErrThresholdTooHigh
	}

	return nil
}

// Sort orders the signers by ascending public key, the canonical order
// gateways hash the set in.
func (s *VerifierSet) Sort() {
	slices.SortFunc(s.Signers, func(a, b WeightedSigner) int {
		return bytes.Compare(a.PublicKey, b.PublicKey)
	})
}

// TotalWeight returns the sum of all signer weights.
func (s VerifierSet) TotalWeight() uint64 {
	var total uint64
	for _, signer := range s.Signers {
		total += signer.Weight
	}

	return total
}
