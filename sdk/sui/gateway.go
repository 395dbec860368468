package sui

import (
	"context"
	"errors"

	"github.com/block-vision/sui-go-sdk/models"
	"github.com/block-vision/sui-go-sdk/transaction"

	"github.com/axelarnetwork/axelar-deployments/sdk"
	sdkerrors "github.com/axelarnetwork/axelar-deployments/sdk/errors"
	"github.com/axelarnetwork/axelar-deployments/types"
)

// Clock object ID in Sui.
const clockObjectID = "0x6"

const gatewayModule = "gateway"

// Gateway drives the axelar gateway package. State-changing entry functions
// take the shared Gateway object; proof-carrying calls pass the prover's
// payload and proof vectors through unchanged.
type Gateway struct {
	client    *Client
	packageID string
	gateway   string
}

var _ sdk.Gateway = (*Gateway)(nil)

// NewGateway creates a Gateway for a published package id and its shared
// Gateway object.
func NewGateway(client *Client, packageID, gatewayObject string) (*Gateway, error) {
	pkg, err := normalizeAddress(packageID)
	if err != nil {
		return nil, err
	}
	gateway, err := normalizeAddress(gatewayObject)
	if err != nil {
		return nil, err
	}

	return &Gateway{client: client, packageID: pkg, gateway: gateway}, nil
}

// CallContract emits an outbound message through a channel created for this
// one call. Messages originate from channels on Sui, so the block creates
// one, routes the prepared ticket through the gateway, and hands the channel
// back to the signer.
func (g *Gateway) CallContract(ctx context.Context, destinationChain, destinationAddress string, payload []byte) (sdk.TxResult, error) {
	if destinationChain == "" {
		return sdk.TxResult{}, errors.New("destination chain cannot be empty")
	}
	if destinationAddress == "" {
		return sdk.TxResult{}, errors.New("destination address cannot be empty")
	}

	ptb := g.client.ptb()
	channel := ptb.MoveCall(models.SuiAddress(g.packageID), "channel", "new", nil, nil)
	ticket := ptb.MoveCall(
		models.SuiAddress(g.packageID),
		gatewayModule,
		"prepare_message",
		nil,
		[]transaction.Argument{channel, ptb.Pure(destinationChain), ptb.Pure(destinationAddress), ptb.Pure(payload)},
	)
	ptb.MoveCall(
		models.SuiAddress(g.packageID),
		gatewayModule,
		"send_message",
		nil,
		[]transaction.Argument{ptb.Object(g.gateway), ticket},
	)
	ptb.TransferObjects([]transaction.Argument{channel}, ptb.Pure(models.SuiAddress(g.client.Address())))

	resp, err := g.client.executePTB(ctx, ptb)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: resp.Digest}, nil
}

// ApproveMessages relays a message-approval proof to the gateway.
func (g *Gateway) ApproveMessages(ctx context.Context, executeData []byte) (sdk.TxResult, error) {
	return g.relayProof(ctx, "approve_messages", executeData)
}

// RotateSigners relays a verifier-set rotation proof to the gateway. The
// rotation delay is enforced on chain against the Clock.
func (g *Gateway) RotateSigners(ctx context.Context, executeData []byte) (sdk.TxResult, error) {
	return g.relayProof(ctx, "rotate_signers", executeData)
}

func (g *Gateway) relayProof(ctx context.Context, function string, data []byte) (sdk.TxResult, error) {
	decoded, err := decodeExecuteData(data)
	if err != nil {
		return sdk.TxResult{}, err
	}

	ptb := g.client.ptb()
	args := []transaction.Argument{ptb.Object(g.gateway)}
	if function == "rotate_signers" {
		args = append(args, ptb.Object(clockObjectID))
	}
	args = append(args, ptb.Pure(decoded.Payload), ptb.Pure(decoded.Proof))
	ptb.MoveCall(models.SuiAddress(g.packageID), gatewayModule, function, nil, args)

	resp, err := g.client.executePTB(ctx, ptb)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: resp.Digest}, nil
}

// TransferOperatorship hands the gateway operator role to a new address. The
// signer must be the current operator.
func (g *Gateway) TransferOperatorship(ctx context.Context, newOperator string) (sdk.TxResult, error) {
	operator, err := normalizeAddress(newOperator)
	if err != nil {
		return sdk.TxResult{}, err
	}

	ptb := g.client.ptb()
	ptb.MoveCall(
		models.SuiAddress(g.packageID),
		gatewayModule,
		"transfer_operatorship",
		nil,
		[]transaction.Argument{ptb.Object(g.gateway), ptb.Pure(models.SuiAddress(operator))},
	)

	resp, err := g.client.executePTB(ctx, ptb)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: resp.Digest}, nil
}

// Approval records live in dynamic fields on the gateway object and are read
// through the relayer's indexer, not this toolkit.

func (g *Gateway) IsMessageApproved(ctx context.Context, msg types.Message) (bool, error) {
	return false, sdkerrors.NewUnsupportedOperationError("sui", "query message approval")
}

func (g *Gateway) IsMessageExecuted(ctx context.Context, sourceChain, messageID string) (bool, error) {
	return false, sdkerrors.NewUnsupportedOperationError("sui", "query message execution")
}
