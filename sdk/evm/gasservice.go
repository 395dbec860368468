package evm

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/axelarnetwork/axelar-deployments/sdk"
)

var _ sdk.GasService = (*GasService)(nil)

// GasServiceBackend extends the contract backend with balance reads, needed
// to collect the full accrued fee balance.
type GasServiceBackend interface {
	ContractDeployBackend
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

// GasService drives the axelar gas service contract. All operations work in
// the chain's native token; ERC20 gas payments are not part of the toolkit.
type GasService struct {
	client   GasServiceBackend
	auth     *bind.TransactOpts
	address  common.Address
	contract *bind.BoundContract
}

func NewGasService(client GasServiceBackend, auth *bind.TransactOpts, address common.Address) *GasService {
	return &GasService{
		client:   client,
		auth:     auth,
		address:  address,
		contract: bind.NewBoundContract(address, gasServiceABI, client, client, client),
	}
}

// PayGas pays for a contract call the signer makes next; the contract keys
// the payment on the sender, so the signer here must be the caller.
func (g *GasService) PayGas(ctx context.Context, params sdk.PayGasParams) (sdk.TxResult, error) {
	refundAddress, err := ParseAddress(params.RefundAddress)
	if err != nil {
		return sdk.TxResult{}, err
	}

	opts := transactOptsWithCtx(ctx, g.auth)
	opts.Value = orZero(params.Amount)

	tx, err := g.contract.Transact(opts, "payNativeGasForContractCall",
		g.auth.From, params.DestinationChain, params.DestinationAddress, params.Payload, refundAddress)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: txResultHash(tx)}, nil
}

func (g *GasService) AddGas(ctx context.Context, params sdk.AddGasParams) (sdk.TxResult, error) {
	txHash, err := parseTxHash(params.TxHash)
	if err != nil {
		return sdk.TxResult{}, err
	}
	refundAddress, err := ParseAddress(params.RefundAddress)
	if err != nil {
		return sdk.TxResult{}, err
	}

	opts := transactOptsWithCtx(ctx, g.auth)
	opts.Value = orZero(params.Amount)

	tx, err := g.contract.Transact(opts, "addNativeGas", txHash, new(big.Int).SetUint64(params.LogIndex), refundAddress)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: txResultHash(tx)}, nil
}

// CollectFees withdraws native-token fees to the receiver. A nil amount
// collects the contract's entire native balance.
func (g *GasService) CollectFees(ctx context.Context, receiver string, amount *big.Int) (sdk.TxResult, error) {
	receiverAddress, err := ParseAddress(receiver)
	if err != nil {
		return sdk.TxResult{}, err
	}

	if amount == nil {
		balance, err := g.client.BalanceAt(ctx, g.address, nil)
		if err != nil {
			return sdk.TxResult{}, fmt.Errorf("read gas service balance: %w", err)
		}
		amount = balance
	}

	tx, err := g.contract.Transact(transactOptsWithCtx(ctx, g.auth), "collectFees",
		receiverAddress, []common.Address{zeroAddress}, []*big.Int{amount})
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: txResultHash(tx)}, nil
}

func (g *GasService) Refund(ctx context.Context, params sdk.RefundParams) (sdk.TxResult, error) {
	txHash, err := parseTxHash(params.TxHash)
	if err != nil {
		return sdk.TxResult{}, err
	}
	receiver, err := ParseAddress(params.Receiver)
	if err != nil {
		return sdk.TxResult{}, err
	}

	tx, err := g.contract.Transact(transactOptsWithCtx(ctx, g.auth), "refund",
		txHash, new(big.Int).SetUint64(params.LogIndex), receiver, zeroAddress, orZero(params.Amount))
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: txResultHash(tx)}, nil
}

func parseTxHash(s string) (common.Hash, error) {
	decoded, err := hexutil.Decode(s)
	if err != nil {
		return common.Hash{}, fmt.Errorf("invalid transaction hash %q: %w", s, err)
	}
	if len(decoded) != common.HashLength {
		return common.Hash{}, fmt.Errorf("invalid transaction hash length: %d", len(decoded))
	}

	return common.BytesToHash(decoded), nil
}
