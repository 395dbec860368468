package types

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/go-playground/validator/v10"
)

// Message identifies a cross-chain message routed through a gateway.
//
// MessageID is the source-chain identifier assigned by the amplifier network,
// typically "<tx hash>-<event index>".
type Message struct {
	SourceChain        string        `json:"sourceChain" validate:"required"`
	MessageID          string        `json:"messageID" validate:"required"`
	SourceAddress      string        `json:"sourceAddress" validate:"required"`
	DestinationAddress string        `json:"destinationAddress" validate:"required"`
	PayloadHash        common.Hash   `json:"payloadHash"`
}

// Validate runs tag-based validation on the message fields.
func (m Message) Validate() error {
	var validate = validator.New()

	return validate.Struct(m)
}

// CommandID returns the 32-byte identifier gateways use to track the message:
// keccak256 of "<sourceChain>-<messageID>".
func (m Message) CommandID() [32]byte {
	return CommandID(m.SourceChain, m.MessageID)
}

// CommandID derives the gateway command identifier for a message.
func CommandID(sourceChain, messageID string) [32]byte {
	return [32]byte(crypto.Keccak256Hash([]byte(sourceChain), []byte("-"), []byte(messageID)))
}
