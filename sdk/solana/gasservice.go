package solana

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gagliardetto/solana-go"

	"github.com/axelarnetwork/axelar-deployments/sdk"
	sdkerrors "github.com/axelarnetwork/axelar-deployments/sdk/errors"
	"github.com/axelarnetwork/axelar-deployments/types"
)

var _ sdk.GasService = (*GasService)(nil)

// GasService drives the gas service program. Gas is escrowed in lamports in
// the program's treasury account; fee collection and refunds go through the
// relayer's operator signature, not this toolkit.
type GasService struct {
	client    *Client
	program   solana.PublicKey
	operators solana.PublicKey
}

// NewGasService creates a GasService. The operators program id is needed
// because initialization proves the operator against its registry.
func NewGasService(client *Client, programID, operatorsProgramID string) (*GasService, error) {
	program, err := parseAddress(programID)
	if err != nil {
		return nil, err
	}

	operators, err := parseAddress(operatorsProgramID)
	if err != nil {
		return nil, err
	}

	return &GasService{client: client, program: program, operators: operators}, nil
}

// Initialize creates the treasury account. The operator must be registered
// with the operators program and must co-sign, so the payer key doubles as
// the operator here.
func (g *GasService) Initialize(ctx context.Context, operator string) (sdk.TxResult, error) {
	operatorKey, err := parseAddress(operator)
	if err != nil {
		return sdk.TxResult{}, err
	}

	operatorPDA, err := OperatorPDA(g.operators, operatorKey)
	if err != nil {
		return sdk.TxResult{}, err
	}

	treasuryPDA, err := TreasuryPDA(g.program)
	if err != nil {
		return sdk.TxResult{}, err
	}

	data, err := instructionData("initialize", nil)
	if err != nil {
		return sdk.TxResult{}, err
	}

	ix := solana.NewInstruction(g.program, solana.AccountMetaSlice{
		solana.Meta(g.client.Payer()).WRITE().SIGNER(),
		solana.Meta(operatorKey).SIGNER(),
		solana.Meta(operatorPDA),
		solana.Meta(solana.SystemProgramID),
		solana.Meta(treasuryPDA).WRITE(),
	}, data)

	sig, err := g.client.send(ctx, ix)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: sig}, nil
}

type payGasArgs struct {
	DestinationChain   string
	DestinationAddress string
	PayloadHash        [32]byte
	Amount             uint64
	RefundAddress      solana.PublicKey
}

// PayGas escrows lamports for an outbound contract call. The program records
// the payload hash, so the payer must send the same payload through the
// gateway.
func (g *GasService) PayGas(ctx context.Context, params sdk.PayGasParams) (sdk.TxResult, error) {
	refund, err := parseAddress(params.RefundAddress)
	if err != nil {
		return sdk.TxResult{}, err
	}

	amount, err := lamports(params.Amount)
	if err != nil {
		return sdk.TxResult{}, err
	}

	treasuryPDA, err := TreasuryPDA(g.program)
	if err != nil {
		return sdk.TxResult{}, err
	}

	eventAuthority, err := EventAuthorityPDA(g.program)
	if err != nil {
		return sdk.TxResult{}, err
	}

	data, err := instructionData("pay_native_for_contract_call", payGasArgs{
		DestinationChain:   params.DestinationChain,
		DestinationAddress: params.DestinationAddress,
		PayloadHash:        [32]byte(crypto.Keccak256Hash(params.Payload)),
		Amount:             amount,
		RefundAddress:      refund,
	})
	if err != nil {
		return sdk.TxResult{}, err
	}

	ix := solana.NewInstruction(g.program, solana.AccountMetaSlice{
		solana.Meta(g.client.Payer()).WRITE().SIGNER(),
		solana.Meta(treasuryPDA).WRITE(),
		solana.Meta(solana.SystemProgramID),
		solana.Meta(eventAuthority),
		solana.Meta(g.program),
	}, data)

	sig, err := g.client.send(ctx, ix)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: sig}, nil
}

type addGasArgs struct {
	MessageID     string
	Amount        uint64
	RefundAddress solana.PublicKey
}

func (g *GasService) AddGas(ctx context.Context, params sdk.AddGasParams) (sdk.TxResult, error) {
	refund, err := parseAddress(params.RefundAddress)
	if err != nil {
		return sdk.TxResult{}, err
	}

	amount, err := lamports(params.Amount)
	if err != nil {
		return sdk.TxResult{}, err
	}

	treasuryPDA, err := TreasuryPDA(g.program)
	if err != nil {
		return sdk.TxResult{}, err
	}

	eventAuthority, err := EventAuthorityPDA(g.program)
	if err != nil {
		return sdk.TxResult{}, err
	}

	data, err := instructionData("add_gas", addGasArgs{
		MessageID:     messageID(params.TxHash, params.LogIndex),
		Amount:        amount,
		RefundAddress: refund,
	})
	if err != nil {
		return sdk.TxResult{}, err
	}

	ix := solana.NewInstruction(g.program, solana.AccountMetaSlice{
		solana.Meta(g.client.Payer()).WRITE().SIGNER(),
		solana.Meta(treasuryPDA).WRITE(),
		solana.Meta(solana.SystemProgramID),
		solana.Meta(eventAuthority),
		solana.Meta(g.program),
	}, data)

	sig, err := g.client.send(ctx, ix)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: sig}, nil
}

// CollectFees requires the registered operator's signature and runs through
// the relayer tooling.
func (g *GasService) CollectFees(ctx context.Context, receiver string, amount *big.Int) (sdk.TxResult, error) {
	return sdk.TxResult{}, sdkerrors.NewUnsupportedOperationError(types.FamilySVM.String(), "collect fees")
}

// Refund requires the registered operator's signature and runs through the
// relayer tooling.
func (g *GasService) Refund(ctx context.Context, params sdk.RefundParams) (sdk.TxResult, error) {
	return sdk.TxResult{}, sdkerrors.NewUnsupportedOperationError(types.FamilySVM.String(), "refund")
}

// messageID formats the cross-chain message id for a source transaction.
// Solana signatures are base58, so no 0x prefix is applied.
func messageID(txHash string, logIndex uint64) string {
	return fmt.Sprintf("%s-%d", txHash, logIndex)
}

// lamports narrows a token amount to the u64 the programs take.
func lamports(amount *big.Int) (uint64, error) {
	if amount == nil || amount.Sign() < 0 || !amount.IsUint64() {
		return 0, fmt.Errorf("amount %v does not fit in u64 lamports", amount)
	}

	return amount.Uint64(), nil
}
