package sui

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/block-vision/sui-go-sdk/models"
	"github.com/block-vision/sui-go-sdk/transaction"

	"github.com/axelarnetwork/axelar-deployments/sdk"
)

const gasServiceModule = "gas_service"

// GasService administers the gas service package. Collection and refunds are
// gated on the GasCollectorCap, so the signer must own it; gas top-ups are
// open to anyone and draw from the transaction's own gas coin.
type GasService struct {
	client       *Client
	packageID    string
	gasService   string
	collectorCap string
}

var _ sdk.GasService = (*GasService)(nil)

// NewGasService creates a GasService for a published package id, its shared
// GasService object and the GasCollectorCap object. collectorCapObject may
// be empty when only AddGas is needed.
func NewGasService(client *Client, packageID, gasServiceObject, collectorCapObject string) (*GasService, error) {
	pkg, err := normalizeAddress(packageID)
	if err != nil {
		return nil, err
	}
	service, err := normalizeAddress(gasServiceObject)
	if err != nil {
		return nil, err
	}
	collectorCap := ""
	if collectorCapObject != "" {
		collectorCap, err = normalizeAddress(collectorCapObject)
		if err != nil {
			return nil, err
		}
	}

	return &GasService{
		client:       client,
		packageID:    pkg,
		gasService:   service,
		collectorCap: collectorCap,
	}, nil
}

// PayGas escrows gas for an outbound contract call, split off the
// transaction's gas coin. The signer's address is recorded as the message
// sender, so the same signer must make the call.
func (s *GasService) PayGas(ctx context.Context, params sdk.PayGasParams) (sdk.TxResult, error) {
	amount, err := mist(params.Amount)
	if err != nil {
		return sdk.TxResult{}, err
	}
	refund, err := normalizeAddress(params.RefundAddress)
	if err != nil {
		return sdk.TxResult{}, err
	}

	ptb := s.client.ptb()
	paid := ptb.SplitCoins(ptb.Gas(), []transaction.Argument{ptb.Pure(amount)})
	ptb.MoveCall(
		models.SuiAddress(s.packageID),
		gasServiceModule,
		"pay_gas",
		nil,
		[]transaction.Argument{
			ptb.Object(s.gasService),
			paid,
			ptb.Pure(models.SuiAddress(s.client.Address())),
			ptb.Pure(params.DestinationChain),
			ptb.Pure(params.DestinationAddress),
			ptb.Pure(params.Payload),
			ptb.Pure(models.SuiAddress(refund)),
			ptb.Pure([]byte{}),
		},
	)

	resp, err := s.client.executePTB(ctx, ptb)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: resp.Digest}, nil
}

// AddGas escrows additional gas for an in-flight message, split off the
// transaction's gas coin.
func (s *GasService) AddGas(ctx context.Context, params sdk.AddGasParams) (sdk.TxResult, error) {
	amount, err := mist(params.Amount)
	if err != nil {
		return sdk.TxResult{}, err
	}
	refund, err := normalizeAddress(params.RefundAddress)
	if err != nil {
		return sdk.TxResult{}, err
	}

	ptb := s.client.ptb()
	paid := ptb.SplitCoins(ptb.Gas(), []transaction.Argument{ptb.Pure(amount)})
	ptb.MoveCall(
		models.SuiAddress(s.packageID),
		gasServiceModule,
		"add_gas",
		nil,
		[]transaction.Argument{
			ptb.Object(s.gasService),
			paid,
			ptb.Pure(messageID(params.TxHash, params.LogIndex)),
			ptb.Pure(models.SuiAddress(refund)),
			ptb.Pure([]byte{}),
		},
	)

	resp, err := s.client.executePTB(ctx, ptb)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: resp.Digest}, nil
}

// CollectFees withdraws accrued gas fees to a receiver. The contract takes
// an explicit amount, so nil is rejected rather than draining the balance.
func (s *GasService) CollectFees(ctx context.Context, receiver string, amount *big.Int) (sdk.TxResult, error) {
	if amount == nil {
		return sdk.TxResult{}, errors.New("collect amount is required")
	}

	value, err := mist(amount)
	if err != nil {
		return sdk.TxResult{}, err
	}
	to, err := normalizeAddress(receiver)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return s.collectorCall(ctx, "collect_gas", func(ptb *transaction.Transaction, capArg transaction.Argument) []transaction.Argument {
		return []transaction.Argument{
			ptb.Object(s.gasService),
			capArg,
			ptb.Pure(models.SuiAddress(to)),
			ptb.Pure(value),
		}
	})
}

// Refund returns escrowed gas for a message to a receiver.
func (s *GasService) Refund(ctx context.Context, params sdk.RefundParams) (sdk.TxResult, error) {
	value, err := mist(params.Amount)
	if err != nil {
		return sdk.TxResult{}, err
	}
	to, err := normalizeAddress(params.Receiver)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return s.collectorCall(ctx, "refund", func(ptb *transaction.Transaction, capArg transaction.Argument) []transaction.Argument {
		return []transaction.Argument{
			ptb.Object(s.gasService),
			capArg,
			ptb.Pure(messageID(params.TxHash, params.LogIndex)),
			ptb.Pure(models.SuiAddress(to)),
			ptb.Pure(value),
		}
	})
}

func (s *GasService) collectorCall(ctx context.Context, function string, buildArgs func(*transaction.Transaction, transaction.Argument) []transaction.Argument) (sdk.TxResult, error) {
	if s.collectorCap == "" {
		return sdk.TxResult{}, errors.New("gas collector cap object is not configured")
	}

	ptb := s.client.ptb()
	ptb.MoveCall(models.SuiAddress(s.packageID), gasServiceModule, function, nil, buildArgs(ptb, ptb.Object(s.collectorCap)))

	resp, err := s.client.executePTB(ctx, ptb)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: resp.Digest}, nil
}

// messageID formats the axelar message id for a source event. Sui transaction
// digests are base58, so no 0x prefix is applied.
func messageID(txHash string, logIndex uint64) string {
	return fmt.Sprintf("%s-%d", txHash, logIndex)
}

// mist converts an amount to u64 MIST.
func mist(amount *big.Int) (uint64, error) {
	if amount == nil || amount.Sign() < 0 || !amount.IsUint64() {
		return 0, fmt.Errorf("amount %v does not fit in u64 mist", amount)
	}

	return amount.Uint64(), nil
}
