package sdk

import (
	"context"

	"github.com/axelarnetwork/axelar-deployments/types"
)

// Gateway drives a deployed gateway contract.
//
// Proof-carrying payloads (executeData) are produced by the amplifier
// network's multisig prover and passed through opaquely; each implementation
// decodes its chain's encoding. The toolkit never constructs proofs itself.
type Gateway interface {
	// CallContract emits an outbound cross-chain message.
	CallContract(ctx context.Context, destinationChain, destinationAddress string, payload []byte) (TxResult, error)

	// ApproveMessages relays a message-approval proof to the gateway.
	ApproveMessages(ctx context.Context, executeData []byte) (TxResult, error)

	// RotateSigners relays a verifier-set rotation proof to the gateway.
	RotateSigners(ctx context.Context, executeData []byte) (TxResult, error)

	// TransferOperatorship hands the gateway operator role to a new address.
	TransferOperatorship(ctx context.Context, newOperator string) (TxResult, error)

	// IsMessageApproved reports whether the gateway has approved the message.
	IsMessageApproved(ctx context.Context, msg types.Message) (bool, error)

	// IsMessageExecuted reports whether the destination contract has executed
	// the message.
	IsMessageExecuted(ctx context.Context, sourceChain, messageID string) (bool, error)
}
