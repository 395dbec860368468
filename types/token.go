package types

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// TokenID is the 32-byte interchain token identifier. It is derived by the
// token service from the deployer address and salt, and is identical on every
// chain the token is deployed to.
type TokenID [32]byte

// MarshalJSON encodes the token ID as a 0x-prefixed hex string.
func (t TokenID) MarshalJSON() ([]byte, error) {
	return json.Marshal("0x" + hex.EncodeToString(t[:]))
}

// UnmarshalJSON decodes a 0x-prefixed hex string into the token ID.
func (t *TokenID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	decoded, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return err
	}
	if len(decoded) != len(t) {
		return fmt.Errorf("invalid token ID length: %d", len(decoded))
	}

	copy(t[:], decoded)

	return nil
}

func (t TokenID) String() string {
	return "0x" + hex.EncodeToString(t[:])
}

// TokenMetadata describes an interchain token at deployment time.
type TokenMetadata struct {
	Name     string `json:"name" validate:"required"`
	Symbol   string `json:"symbol" validate:"required"`
	Decimals uint8  `json:"decimals"`
}

// Validate runs tag-based validation on the token metadata.
func (m TokenMetadata) Validate() error {
	var validate = validator.New()

	return validate.Struct(m)
}
