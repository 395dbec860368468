package solana

import (
	"fmt"

	bin "github.com/gagliardetto/binary"

	sdkerrors "github.com/axelarnetwork/axelar-deployments/sdk/errors"
)

// ExecuteData is the proof blob the multisig prover emits for Solana:
// a signed merkle commitment over either a message batch or a verifier-set
// rotation. The gateway consumes it across several transactions, so the
// toolkit decodes it and replays each piece.
type ExecuteData struct {
	SigningVerifierSetMerkleRoot [32]uint8
	SigningVerifierSetLeaves     []SigningVerifierSetInfo
	PayloadMerkleRoot            [32]uint8
	PayloadItems                 MerklizedPayload
}

// SigningVerifierSetInfo proves one verifier's membership in the signing set
// and carries their signature over the payload root.
type SigningVerifierSetInfo struct {
	Signature   [65]uint8
	Leaf        VerifierSetLeaf
	MerkleProof []uint8
}

// VerifierSetLeaf is one verifier's slot in the merkleised signing set.
type VerifierSetLeaf struct {
	Nonce           uint64
	Quorum          bin.Uint128
	SignerPubkey    [33]uint8
	SignerWeight    bin.Uint128
	Position        uint16
	SetSize         uint16
	DomainSeparator [32]uint8
}

// MerklizedPayload is the proven payload: exactly one of Rotation or
// Messages is set, mirroring the on-chain enum.
type MerklizedPayload struct {
	Rotation *VerifierSetRotation
	Messages []MerklizedMessage
}

// VerifierSetRotation carries the merkle root of the incoming verifier set.
type VerifierSetRotation struct {
	NewVerifierSetMerkleRoot [32]uint8
}

// MerklizedMessage pairs a message leaf with its inclusion proof.
type MerklizedMessage struct {
	Leaf  MessageLeaf
	Proof []uint8
}

// MessageLeaf is one message's slot in the merkleised payload.
type MessageLeaf struct {
	Message         Message
	Position        uint16
	SetSize         uint16
	DomainSeparator [32]uint8
}

// Message is the cross-chain message body the gateway approves.
type Message struct {
	CCID               CrossChainID
	SourceAddress      string
	DestinationChain   string
	DestinationAddress string
	PayloadHash        [32]uint8
}

// CrossChainID identifies a message by source chain and the id that chain
// assigned.
type CrossChainID struct {
	Chain string
	ID    string
}

// UnmarshalWithDecoder decodes the borsh enum: a one-byte variant tag
// followed by the variant body.
func (p *MerklizedPayload) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	tag, err := decoder.ReadUint8()
	if err != nil {
		return err
	}

	switch tag {
	case 0:
		p.Rotation = &VerifierSetRotation{}

		return decoder.Decode(p.Rotation)
	case 1:
		return decoder.Decode(&p.Messages)
	default:
		return fmt.Errorf("unknown payload variant %d", tag)
	}
}

// decodeExecuteData parses a prover proof blob. The whole blob must be
// consumed; trailing bytes mean the payload was not built for this chain.
func decodeExecuteData(data []byte) (*ExecuteData, error) {
	decoder := bin.NewBorshDecoder(data)

	var executeData ExecuteData
	if err := decoder.Decode(&executeData); err != nil {
		return nil, sdkerrors.NewInvalidExecuteDataError("decode borsh: " + err.Error())
	}
	if decoder.Remaining() > 0 {
		return nil, sdkerrors.NewInvalidExecuteDataError(fmt.Sprintf("%d trailing bytes", decoder.Remaining()))
	}

	return &executeData, nil
}
