package solana

import (
	"bytes"
	"encoding/binary"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// u256 is the gateway's 256-bit counter encoding: 32 bytes little-endian.
type u256 [32]uint8

func u256FromUint64(v uint64) u256 {
	var out u256
	binary.LittleEndian.PutUint64(out[:8], v)

	return out
}

// Uint64 narrows the counter, rejecting values beyond 64 bits.
func (v u256) Uint64() (uint64, error) {
	for _, b := range v[8:] {
		if b != 0 {
			return 0, fmt.Errorf("value does not fit in uint64")
		}
	}

	return binary.LittleEndian.Uint64(v[:8]), nil
}

func checkAccountDiscriminator(data []byte, account string) error {
	if len(data) < 8 {
		return fmt.Errorf("account data too short: %d bytes", len(data))
	}
	if !bytes.Equal(data[:8], accountDiscriminator(account)) {
		return fmt.Errorf("account discriminator mismatch for %s", account)
	}

	return nil
}

// gatewayConfig mirrors the gateway's root config account.
type gatewayConfig struct {
	CurrentEpoch              u256
	PreviousVerifierRetention u256
	MinimumRotationDelay      uint64
	LastRotationTimestamp     uint64
	Operator                  solana.PublicKey
	DomainSeparator           [32]uint8
	Bump                      uint8
}

func decodeGatewayConfig(data []byte) (*gatewayConfig, error) {
	if err := checkAccountDiscriminator(data, "GatewayConfig"); err != nil {
		return nil, err
	}

	var config gatewayConfig
	if err := bin.NewBorshDecoder(data[8:]).Decode(&config); err != nil {
		return nil, fmt.Errorf("decode gateway config: %w", err)
	}

	return &config, nil
}

// verifierSetTracker mirrors one registered verifier set's tracker account.
type verifierSetTracker struct {
	Epoch           u256
	VerifierSetHash [32]uint8
	Bump            uint8
}

func decodeVerifierSetTracker(data []byte) (*verifierSetTracker, error) {
	if err := checkAccountDiscriminator(data, "VerifierSetTracker"); err != nil {
		return nil, err
	}

	var tracker verifierSetTracker
	if err := bin.NewBorshDecoder(data[8:]).Decode(&tracker); err != nil {
		return nil, fmt.Errorf("decode verifier set tracker: %w", err)
	}

	return &tracker, nil
}

// tokenManager mirrors the token service's per-token manager account.
type tokenManager struct {
	TokenAddress solana.PublicKey
	Type         uint8
	FlowSlot     flowSlot
}

type flowSlot struct {
	FlowLimit *uint64 `bin:"optional"`
}

func decodeTokenManager(data []byte) (*tokenManager, error) {
	var manager tokenManager
	if err := bin.NewBorshDecoder(data).Decode(&manager); err != nil {
		return nil, fmt.Errorf("decode token manager: %w", err)
	}

	return &manager, nil
}
