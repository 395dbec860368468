package solana

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/axelarnetwork/axelar-deployments/sdk"
	sdkerrors "github.com/axelarnetwork/axelar-deployments/sdk/errors"
	"github.com/axelarnetwork/axelar-deployments/types"
)

// Incoming message status values stored on chain.
const (
	messageStatusApproved uint8 = 0
	messageStatusExecuted uint8 = 1
)

// Gateway drives the axelar gateway program. Proofs arrive as execute data
// blobs from the multisig prover; the gateway verifies them across several
// transactions (session init, one per signature, then the approval or
// rotation itself), so every submit here fans out into an ordered sequence.
type Gateway struct {
	client  *Client
	program solana.PublicKey
}

var _ sdk.Gateway = (*Gateway)(nil)

// NewGateway creates a Gateway for a deployed program id.
func NewGateway(client *Client, programID string) (*Gateway, error) {
	program, err := parseAddress(programID)
	if err != nil {
		return nil, err
	}

	return &Gateway{client: client, program: program}, nil
}

// InitializeConfigParams seeds the gateway's root config account.
type InitializeConfigParams struct {
	DomainSeparator           [32]byte
	InitialVerifierSetRoot    [32]byte
	MinimumRotationDelay      uint64
	Operator                  string
	PreviousVerifierRetention uint64
}

type initializeConfigArgs struct {
	Params initializeConfigParams
}

type initializeConfigParams struct {
	DomainSeparator           [32]uint8
	InitialVerifierSet        initialVerifierSet
	MinimumRotationDelay      uint64
	Operator                  solana.PublicKey
	PreviousVerifierRetention u256
}

type initialVerifierSet struct {
	Hash [32]uint8
	PDA  solana.PublicKey
}

type callContractArgs struct {
	DestinationChain           string
	DestinationContractAddress string
	Payload                    []byte
	SigningPDABump             uint8
}

type initializeSessionArgs struct {
	MerkleRoot [32]uint8
}

type verifySignatureArgs struct {
	PayloadMerkleRoot [32]uint8
	VerifierInfo      SigningVerifierSetInfo
}

type approveMessageArgs struct {
	MerklizedMessage  MerklizedMessage
	PayloadMerkleRoot [32]uint8
}

type rotateSignersArgs struct {
	NewVerifierSetMerkleRoot [32]uint8
}

// InitializeConfig creates the gateway's config account and registers the
// genesis verifier set. The signer must be the program's upgrade authority.
func (g *Gateway) InitializeConfig(ctx context.Context, params InitializeConfigParams) (sdk.TxResult, error) {
	operator, err := parseAddress(params.Operator)
	if err != nil {
		return sdk.TxResult{}, err
	}

	configPDA, err := GatewayConfigPDA(g.program)
	if err != nil {
		return sdk.TxResult{}, err
	}
	trackerPDA, err := VerifierSetTrackerPDA(g.program, params.InitialVerifierSetRoot)
	if err != nil {
		return sdk.TxResult{}, err
	}
	programData, err := ProgramDataAddress(g.program)
	if err != nil {
		return sdk.TxResult{}, err
	}

	data, err := instructionData("initialize_config", initializeConfigArgs{
		Params: initializeConfigParams{
			DomainSeparator: params.DomainSeparator,
			InitialVerifierSet: initialVerifierSet{
				Hash: params.InitialVerifierSetRoot,
				PDA:  trackerPDA,
			},
			MinimumRotationDelay:      params.MinimumRotationDelay,
			Operator:                  operator,
			PreviousVerifierRetention: u256FromUint64(params.PreviousVerifierRetention),
		},
	})
	if err != nil {
		return sdk.TxResult{}, err
	}

	payer := g.client.Payer()
	instruction := solana.NewInstruction(g.program, solana.AccountMetaSlice{
		solana.Meta(payer).WRITE().SIGNER(),
		solana.Meta(payer).SIGNER(),
		solana.Meta(programData),
		solana.Meta(configPDA).WRITE(),
		solana.Meta(solana.SystemProgramID),
		solana.Meta(trackerPDA).WRITE(),
	}, data)

	sig, err := g.client.send(ctx, instruction)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: sig}, nil
}

// CallContract emits an outbound cross-chain message.
func (g *Gateway) CallContract(ctx context.Context, destinationChain, destinationAddress string, payload []byte) (sdk.TxResult, error) {
	instruction, err := g.callContractInstruction(destinationChain, destinationAddress, payload)
	if err != nil {
		return sdk.TxResult{}, err
	}

	sig, err := g.client.send(ctx, instruction)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: sig}, nil
}

func (g *Gateway) callContractInstruction(destinationChain, destinationAddress string, payload []byte) (solana.Instruction, error) {
	configPDA, err := GatewayConfigPDA(g.program)
	if err != nil {
		return nil, err
	}
	eventAuthority, err := EventAuthorityPDA(g.program)
	if err != nil {
		return nil, err
	}

	data, err := instructionData("call_contract", callContractArgs{
		DestinationChain:           destinationChain,
		DestinationContractAddress: destinationAddress,
		Payload:                    payload,
	})
	if err != nil {
		return nil, err
	}

	return solana.NewInstruction(g.program, solana.AccountMetaSlice{
		solana.Meta(g.client.Payer()).WRITE().SIGNER(),
		solana.Meta(configPDA),
		solana.Meta(eventAuthority),
		solana.Meta(g.program),
	}, data), nil
}

// ApproveMessages relays a message-approval proof: a verification session is
// opened, every verifier signature is checked, then each message in the
// batch is approved.
func (g *Gateway) ApproveMessages(ctx context.Context, executeData []byte) (sdk.TxResult, error) {
	decoded, err := decodeExecuteData(executeData)
	if err != nil {
		return sdk.TxResult{}, err
	}
	if decoded.PayloadItems.Messages == nil {
		return sdk.TxResult{}, sdkerrors.NewInvalidExecuteDataError("expected a message batch payload")
	}

	instructions, sessionPDA, err := g.verificationFlowInstructions(decoded)
	if err != nil {
		return sdk.TxResult{}, err
	}

	for _, message := range decoded.PayloadItems.Messages {
		instruction, err := g.approveMessageInstruction(message, decoded.PayloadMerkleRoot, sessionPDA)
		if err != nil {
			return sdk.TxResult{}, err
		}
		instructions = append(instructions, instruction)
	}

	sig, err := g.client.sendEach(ctx, instructions)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: sig}, nil
}

// RotateSigners relays a verifier-set rotation proof signed by the outgoing
// set.
func (g *Gateway) RotateSigners(ctx context.Context, executeData []byte) (sdk.TxResult, error) {
	decoded, err := decodeExecuteData(executeData)
	if err != nil {
		return sdk.TxResult{}, err
	}
	if decoded.PayloadItems.Rotation == nil {
		return sdk.TxResult{}, sdkerrors.NewInvalidExecuteDataError("expected a verifier set rotation payload")
	}

	instructions, sessionPDA, err := g.verificationFlowInstructions(decoded)
	if err != nil {
		return sdk.TxResult{}, err
	}

	instruction, err := g.rotateSignersInstruction(decoded, sessionPDA)
	if err != nil {
		return sdk.TxResult{}, err
	}
	instructions = append(instructions, instruction)

	sig, err := g.client.sendEach(ctx, instructions)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: sig}, nil
}

// verificationFlowInstructions opens the signature verification session for
// the proof and appends one verify_signature instruction per signer leaf.
func (g *Gateway) verificationFlowInstructions(decoded *ExecuteData) ([]solana.Instruction, solana.PublicKey, error) {
	configPDA, err := GatewayConfigPDA(g.program)
	if err != nil {
		return nil, solana.PublicKey{}, err
	}
	trackerPDA, err := VerifierSetTrackerPDA(g.program, decoded.SigningVerifierSetMerkleRoot)
	if err != nil {
		return nil, solana.PublicKey{}, err
	}
	sessionPDA, err := VerificationSessionPDA(g.program, decoded.PayloadMerkleRoot, decoded.SigningVerifierSetMerkleRoot)
	if err != nil {
		return nil, solana.PublicKey{}, err
	}

	initData, err := instructionData("initialize_payload_verification_session", initializeSessionArgs{
		MerkleRoot: decoded.PayloadMerkleRoot,
	})
	if err != nil {
		return nil, solana.PublicKey{}, err
	}

	instructions := []solana.Instruction{
		solana.NewInstruction(g.program, solana.AccountMetaSlice{
			solana.Meta(g.client.Payer()).WRITE().SIGNER(),
			solana.Meta(configPDA),
			solana.Meta(sessionPDA).WRITE(),
			solana.Meta(trackerPDA),
			solana.Meta(solana.SystemProgramID),
		}, initData),
	}

	for _, leaf := range decoded.SigningVerifierSetLeaves {
		verifyData, err := instructionData("verify_signature", verifySignatureArgs{
			PayloadMerkleRoot: decoded.PayloadMerkleRoot,
			VerifierInfo:      leaf,
		})
		if err != nil {
			return nil, solana.PublicKey{}, err
		}

		instructions = append(instructions, solana.NewInstruction(g.program, solana.AccountMetaSlice{
			solana.Meta(configPDA),
			solana.Meta(trackerPDA),
			solana.Meta(sessionPDA).WRITE(),
		}, verifyData))
	}

	return instructions, sessionPDA, nil
}

func (g *Gateway) approveMessageInstruction(message MerklizedMessage, payloadRoot [32]byte, sessionPDA solana.PublicKey) (solana.Instruction, error) {
	configPDA, err := GatewayConfigPDA(g.program)
	if err != nil {
		return nil, err
	}
	eventAuthority, err := EventAuthorityPDA(g.program)
	if err != nil {
		return nil, err
	}

	commandID := types.CommandID(message.Leaf.Message.CCID.Chain, message.Leaf.Message.CCID.ID)
	incomingMessagePDA, err := IncomingMessagePDA(g.program, commandID)
	if err != nil {
		return nil, err
	}

	data, err := instructionData("approve_message", approveMessageArgs{
		MerklizedMessage:  message,
		PayloadMerkleRoot: payloadRoot,
	})
	if err != nil {
		return nil, err
	}

	return solana.NewInstruction(g.program, solana.AccountMetaSlice{
		solana.Meta(configPDA),
		solana.Meta(g.client.Payer()).WRITE().SIGNER(),
		solana.Meta(sessionPDA),
		solana.Meta(incomingMessagePDA).WRITE(),
		solana.Meta(solana.SystemProgramID),
		solana.Meta(eventAuthority),
		solana.Meta(g.program),
	}, data), nil
}

func (g *Gateway) rotateSignersInstruction(decoded *ExecuteData, sessionPDA solana.PublicKey) (solana.Instruction, error) {
	configPDA, err := GatewayConfigPDA(g.program)
	if err != nil {
		return nil, err
	}
	eventAuthority, err := EventAuthorityPDA(g.program)
	if err != nil {
		return nil, err
	}
	currentTrackerPDA, err := VerifierSetTrackerPDA(g.program, decoded.SigningVerifierSetMerkleRoot)
	if err != nil {
		return nil, err
	}
	newRoot := decoded.PayloadItems.Rotation.NewVerifierSetMerkleRoot
	newTrackerPDA, err := VerifierSetTrackerPDA(g.program, newRoot)
	if err != nil {
		return nil, err
	}

	data, err := instructionData("rotate_signers", rotateSignersArgs{
		NewVerifierSetMerkleRoot: newRoot,
	})
	if err != nil {
		return nil, err
	}

	return solana.NewInstruction(g.program, solana.AccountMetaSlice{
		solana.Meta(configPDA).WRITE(),
		solana.Meta(sessionPDA),
		solana.Meta(currentTrackerPDA),
		solana.Meta(newTrackerPDA).WRITE(),
		solana.Meta(g.client.Payer()).WRITE().SIGNER(),
		solana.Meta(solana.SystemProgramID),
		solana.Meta(eventAuthority),
		solana.Meta(g.program),
	}, data), nil
}

// TransferOperatorship hands the gateway operator role to a new address. The
// signer must be the current operator or the program's upgrade authority.
func (g *Gateway) TransferOperatorship(ctx context.Context, newOperator string) (sdk.TxResult, error) {
	operator, err := parseAddress(newOperator)
	if err != nil {
		return sdk.TxResult{}, err
	}

	configPDA, err := GatewayConfigPDA(g.program)
	if err != nil {
		return sdk.TxResult{}, err
	}
	programData, err := ProgramDataAddress(g.program)
	if err != nil {
		return sdk.TxResult{}, err
	}
	eventAuthority, err := EventAuthorityPDA(g.program)
	if err != nil {
		return sdk.TxResult{}, err
	}

	data, err := instructionData("transfer_operatorship", nil)
	if err != nil {
		return sdk.TxResult{}, err
	}

	instruction := solana.NewInstruction(g.program, solana.AccountMetaSlice{
		solana.Meta(configPDA).WRITE(),
		solana.Meta(g.client.Payer()).SIGNER(),
		solana.Meta(programData),
		solana.Meta(operator),
		solana.Meta(eventAuthority),
		solana.Meta(g.program),
	}, data)

	sig, err := g.client.send(ctx, instruction)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: sig}, nil
}

// IsMessageApproved reports whether the gateway has approved the message.
func (g *Gateway) IsMessageApproved(ctx context.Context, msg types.Message) (bool, error) {
	status, exists, err := g.messageStatus(ctx, msg.CommandID())
	if err != nil {
		return false, err
	}

	return exists && status == messageStatusApproved, nil
}

// IsMessageExecuted reports whether the destination program has executed the
// message.
func (g *Gateway) IsMessageExecuted(ctx context.Context, sourceChain, messageID string) (bool, error) {
	status, exists, err := g.messageStatus(ctx, types.CommandID(sourceChain, messageID))
	if err != nil {
		return false, err
	}

	return exists && status == messageStatusExecuted, nil
}

// messageStatus reads the incoming message account for a command id. A
// missing account means the message was never approved.
func (g *Gateway) messageStatus(ctx context.Context, commandID [32]byte) (uint8, bool, error) {
	messagePDA, err := IncomingMessagePDA(g.program, commandID)
	if err != nil {
		return 0, false, err
	}

	data, err := g.client.accountData(ctx, messagePDA)
	if errors.Is(err, rpc.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	status, err := accountField(data, "IncomingMessage")
	if err != nil {
		return 0, false, err
	}

	return status, true, nil
}

// accountField validates an anchor account's discriminator and returns the
// first data byte, which on the accounts read here is the status field.
func accountField(data []byte, account string) (uint8, error) {
	if err := checkAccountDiscriminator(data, account); err != nil {
		return 0, err
	}
	if len(data) < 9 {
		return 0, fmt.Errorf("account data too short: %d bytes", len(data))
	}

	return data[8], nil
}
