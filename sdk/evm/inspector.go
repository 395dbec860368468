package evm

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"

	"github.com/axelarnetwork/axelar-deployments/sdk"
)

var _ sdk.Inspector = (*Inspector)(nil)

// Inspector reads on-chain state without signing anything.
type Inspector struct {
	client  ContractDeployBackend
	gateway common.Address
}

func NewInspector(client ContractDeployBackend, gateway common.Address) *Inspector {
	return &Inspector{client: client, gateway: gateway}
}

// GatewayState reads the gateway's operator, domain separator and current
// signer epoch, plus the hash of the signer set active in that epoch.
func (i *Inspector) GatewayState(ctx context.Context) (sdk.GatewayState, error) {
	contract := bind.NewBoundContract(i.gateway, gatewayABI, i.client, i.client, i.client)
	opts := &bind.CallOpts{Context: ctx}

	var state sdk.GatewayState

	var out []any
	if err := contract.Call(opts, &out, "operator"); err != nil {
		return sdk.GatewayState{}, err
	}
	state.Operator = abi.ConvertType(out[0], new(common.Address)).(*common.Address).Hex()

	out = nil
	if err := contract.Call(opts, &out, "domainSeparator"); err != nil {
		return sdk.GatewayState{}, err
	}
	state.DomainSeparator = *abi.ConvertType(out[0], new([32]byte)).(*[32]byte)

	out = nil
	if err := contract.Call(opts, &out, "epoch"); err != nil {
		return sdk.GatewayState{}, err
	}
	epoch := abi.ConvertType(out[0], new(*big.Int)).(**big.Int)
	state.Epoch = (*epoch).Uint64()

	out = nil
	if err := contract.Call(opts, &out, "signerHashByEpoch", *epoch); err != nil {
		return sdk.GatewayState{}, err
	}
	state.SignersHash = *abi.ConvertType(out[0], new([32]byte)).(*[32]byte)

	return state, nil
}

// Owner reads the owner of any ownable axelar contract.
func (i *Inspector) Owner(ctx context.Context, contractAddress string) (string, error) {
	return i.readAddress(ctx, contractAddress, "owner")
}

// Operator reads the operator of contracts that have one, such as the
// gateway and the interchain token service.
func (i *Inspector) Operator(ctx context.Context, contractAddress string) (string, error) {
	return i.readAddress(ctx, contractAddress, "operator")
}

func (i *Inspector) readAddress(ctx context.Context, contractAddress, method string) (string, error) {
	address, err := ParseAddress(contractAddress)
	if err != nil {
		return "", err
	}

	contract := bind.NewBoundContract(address, ownableABI, i.client, i.client, i.client)

	var out []any
	if err := contract.Call(&bind.CallOpts{Context: ctx}, &out, method); err != nil {
		return "", err
	}

	return abi.ConvertType(out[0], new(common.Address)).(*common.Address).Hex(), nil
}
