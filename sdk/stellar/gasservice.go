package stellar

import (
	"context"
	"math/big"

	"github.com/stellar/go/keypair"
	"github.com/stellar/go/xdr"

	"github.com/axelarnetwork/axelar-deployments/sdk"
	sdkerrors "github.com/axelarnetwork/axelar-deployments/sdk/errors"
)

var _ sdk.GasService = (*GasService)(nil)

// GasService drives the soroban gas service contract. Gas is escrowed and
// refunded in the chain's native asset through its contract address.
type GasService struct {
	client      *Client
	kp          *keypair.Full
	address     string
	nativeToken string
}

// NewGasService creates a GasService. nativeToken is the contract address of
// the native asset held by the gas service.
func NewGasService(client *Client, kp *keypair.Full, address, nativeToken string) (*GasService, error) {
	if !IsValidContractAddress(address) {
		return nil, sdkerrors.NewInvalidAddressError(address)
	}

	return &GasService{client: client, kp: kp, address: address, nativeToken: nativeToken}, nil
}

// PayGas escrows gas for a contract call the keypair makes next. The keypair
// acts as both the message sender and the token spender.
func (g *GasService) PayGas(ctx context.Context, params sdk.PayGasParams) (sdk.TxResult, error) {
	sender, err := Address(g.kp.Address())
	if err != nil {
		return sdk.TxResult{}, err
	}

	token, err := g.token(params.Amount)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return g.invoke(ctx, "pay_gas",
		sender, String(params.DestinationChain), String(params.DestinationAddress),
		Bytes(params.Payload), sender, token, Bytes(nil))
}

func (g *GasService) AddGas(ctx context.Context, params sdk.AddGasParams) (sdk.TxResult, error) {
	sender, err := Address(g.kp.Address())
	if err != nil {
		return sdk.TxResult{}, err
	}

	token, err := g.token(params.Amount)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return g.invoke(ctx, "add_gas",
		sender, String(messageID(params.TxHash, params.LogIndex)), sender, token)
}

func (g *GasService) CollectFees(ctx context.Context, receiver string, amount *big.Int) (sdk.TxResult, error) {
	receiverAddress, err := Address(receiver)
	if err != nil {
		return sdk.TxResult{}, err
	}

	if amount == nil {
		amount, err = g.balance(ctx)
		if err != nil {
			return sdk.TxResult{}, err
		}
	}

	token, err := g.token(amount)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return g.invoke(ctx, "collect_fees", receiverAddress, token)
}

func (g *GasService) Refund(ctx context.Context, params sdk.RefundParams) (sdk.TxResult, error) {
	receiver, err := Address(params.Receiver)
	if err != nil {
		return sdk.TxResult{}, err
	}

	token, err := g.token(params.Amount)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return g.invoke(ctx, "refund",
		String(messageID(params.TxHash, params.LogIndex)), receiver, token)
}

// balance reads the gas service's native token balance, for collecting the
// full accrued amount.
func (g *GasService) balance(ctx context.Context) (*big.Int, error) {
	holder, err := Address(g.address)
	if err != nil {
		return nil, err
	}

	result, err := g.client.SimulateInvoke(ctx, g.kp.Address(), g.nativeToken, "balance", holder)
	if err != nil {
		return nil, err
	}

	return i128FromScVal(result)
}

func (g *GasService) token(amount *big.Int) (xdr.ScVal, error) {
	address, err := Address(g.nativeToken)
	if err != nil {
		return xdr.ScVal{}, err
	}

	amountVal, err := I128FromBig(amount)
	if err != nil {
		return xdr.ScVal{}, err
	}

	return Map(
		MapEntry{Key: "address", Val: address},
		MapEntry{Key: "amount", Val: amountVal},
	), nil
}

func (g *GasService) invoke(ctx context.Context, function string, args ...xdr.ScVal) (sdk.TxResult, error) {
	resp, err := g.client.InvokeContract(ctx, g.kp, g.address, function, args...)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: resp.Hash}, nil
}
