// Package cosmwasm drives the Axelar chain side of a deployment: storing and
// instantiating CosmWasm contracts, wiring the amplifier protocol contracts
// together, and fetching prover output for the external chains.
package cosmwasm

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	sdkmath "cosmossdk.io/math"
	txsigning "cosmossdk.io/x/tx/signing"
	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	abci "github.com/cometbft/cometbft/abci/types"
	rpchttp "github.com/cometbft/cometbft/rpc/client/http"
	coretypes "github.com/cometbft/cometbft/rpc/core/types"
	cmttypes "github.com/cometbft/cometbft/types"
	"github.com/cosmos/cosmos-sdk/client"
	clienttx "github.com/cosmos/cosmos-sdk/client/tx"
	"github.com/cosmos/cosmos-sdk/codec"
	codecaddress "github.com/cosmos/cosmos-sdk/codec/address"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	"github.com/cosmos/cosmos-sdk/std"
	sdktypes "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/bech32"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	signingtypes "github.com/cosmos/cosmos-sdk/types/tx/signing"
	authsigning "github.com/cosmos/cosmos-sdk/x/auth/signing"
	authtx "github.com/cosmos/cosmos-sdk/x/auth/tx"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"
	govv1 "github.com/cosmos/cosmos-sdk/x/gov/types/v1"
	gogoproto "github.com/cosmos/gogoproto/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/axelarnetwork/axelar-deployments/sdk"
	sdkerrors "github.com/axelarnetwork/axelar-deployments/sdk/errors"
)

const (
	txWaitTimeout    = time.Minute
	statusPollPeriod = time.Second

	privateKeyLen = 32

	defaultAccountPrefix = "axelar"
	defaultDenom         = "uamplifier"
	defaultGasPrice      = "0.007"
	defaultGasAdjustment = "1.5"
)

// Config locates a CosmWasm chain and prices its gas. Zero-value fields fall
// back to the Axelar amplifier defaults.
type Config struct {
	ChainID string

	// RPCURL is the CometBFT RPC endpoint; GRPCURL the cosmos gRPC one.
	RPCURL  string
	GRPCURL string

	AccountPrefix string
	Denom         string

	// GasPrice is a decimal amount of Denom per gas unit. GasAdjustment
	// scales simulated gas before pricing.
	GasPrice      string
	GasAdjustment string

	// Insecure dials gRPC without transport security.
	Insecure bool
}

// Client signs and submits transactions to a CosmWasm chain. Fees come from
// simulation: simulated gas times the adjustment, priced at the configured
// gas price. Queries run over gRPC; broadcasts over the CometBFT RPC, polled
// until the transaction is included in a block.
type Client struct {
	grpc     *grpc.ClientConn
	rpc      *rpchttp.HTTP
	cdc      *codec.ProtoCodec
	txConfig client.TxConfig

	priv         *secp256k1.PrivKey
	address      string
	govAuthority string

	chainID       string
	prefix        string
	denom         string
	gasPrice      sdkmath.LegacyDec
	gasAdjustment sdkmath.LegacyDec
}

// NewClient creates a Client for the given chain. privateKey is the
// hex-encoded secp256k1 key that signs and pays for every transaction.
func NewClient(cfg Config, privateKey string) (*Client, error) {
	if cfg.ChainID == "" {
		return nil, errors.New("chain id cannot be empty")
	}
	if cfg.RPCURL == "" || cfg.GRPCURL == "" {
		return nil, errors.New("rpc and grpc endpoints are required")
	}

	priv, err := parsePrivateKey(privateKey)
	if err != nil {
		return nil, err
	}

	prefix := valueOr(cfg.AccountPrefix, defaultAccountPrefix)

	gasPrice, err := sdkmath.LegacyNewDecFromStr(valueOr(cfg.GasPrice, defaultGasPrice))
	if err != nil {
		return nil, fmt.Errorf("parse gas price: %w", err)
	}
	gasAdjustment, err := sdkmath.LegacyNewDecFromStr(valueOr(cfg.GasAdjustment, defaultGasAdjustment))
	if err != nil {
		return nil, fmt.Errorf("parse gas adjustment: %w", err)
	}

	cdc, txConfig, err := newCodec(prefix)
	if err != nil {
		return nil, err
	}

	address, err := bech32.ConvertAndEncode(prefix, priv.PubKey().Address())
	if err != nil {
		return nil, fmt.Errorf("encode account address: %w", err)
	}
	govAuthority, err := bech32.ConvertAndEncode(prefix, authtypes.NewModuleAddress(govtypes.ModuleName))
	if err != nil {
		return nil, fmt.Errorf("encode governance authority: %w", err)
	}

	grpcConn, err := dialGRPC(cfg)
	if err != nil {
		return nil, err
	}

	rpcClient, err := rpchttp.New(cfg.RPCURL, "/websocket")
	if err != nil {
		return nil, fmt.Errorf("create rpc client: %w", err)
	}

	return &Client{
		grpc:          grpcConn,
		rpc:           rpcClient,
		cdc:           cdc,
		txConfig:      txConfig,
		priv:          priv,
		address:       address,
		govAuthority:  govAuthority,
		chainID:       cfg.ChainID,
		prefix:        prefix,
		denom:         valueOr(cfg.Denom, defaultDenom),
		gasPrice:      gasPrice,
		gasAdjustment: gasAdjustment,
	}, nil
}

// Address returns the signer's bech32 account address.
func (c *Client) Address() string {
	return c.address
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	return c.grpc.Close()
}

// Execute submits a contract execution carrying msg as the JSON payload,
// with optional funds attached.
func (c *Client) Execute(ctx context.Context, contract string, msg []byte, funds sdktypes.Coins) (sdk.TxResult, error) {
	res, err := c.execute(ctx, contract, msg, funds)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: res.Hash}, nil
}

func (c *Client) execute(ctx context.Context, contract string, msg []byte, funds sdktypes.Coins) (txResponse, error) {
	if err := validateAddress(c.prefix, contract); err != nil {
		return txResponse{}, err
	}
	payload, err := contractMessage(msg)
	if err != nil {
		return txResponse{}, err
	}

	return c.signAndBroadcast(ctx, &wasmtypes.MsgExecuteContract{
		Sender:   c.address,
		Contract: contract,
		Msg:      payload,
		Funds:    funds,
	})
}

// QuerySmart runs a smart query against a contract and returns the raw JSON
// response.
func (c *Client) QuerySmart(ctx context.Context, contract string, query []byte) ([]byte, error) {
	if err := validateAddress(c.prefix, contract); err != nil {
		return nil, err
	}

	resp, err := wasmtypes.NewQueryClient(c.grpc).SmartContractState(ctx, &wasmtypes.QuerySmartContractStateRequest{
		Address:   contract,
		QueryData: wasmtypes.RawContractMessage(query),
	})
	if err != nil {
		return nil, fmt.Errorf("query contract %s: %w", contract, err)
	}

	return resp.Data, nil
}

// ContractInfo reads a contract's stored metadata: code id, creator, admin
// and label.
func (c *Client) ContractInfo(ctx context.Context, contract string) (wasmtypes.ContractInfo, error) {
	if err := validateAddress(c.prefix, contract); err != nil {
		return wasmtypes.ContractInfo{}, err
	}

	resp, err := wasmtypes.NewQueryClient(c.grpc).ContractInfo(ctx, &wasmtypes.QueryContractInfoRequest{
		Address: contract,
	})
	if err != nil {
		return wasmtypes.ContractInfo{}, fmt.Errorf("query contract info %s: %w", contract, err)
	}

	return resp.ContractInfo, nil
}

// txResponse records an included transaction along with the events its
// messages emitted.
type txResponse struct {
	Hash   string
	Height int64
	Events []abci.Event
}

func (c *Client) signAndBroadcast(ctx context.Context, msgs ...sdktypes.Msg) (txResponse, error) {
	accountNumber, sequence, err := c.account(ctx)
	if err != nil {
		return txResponse{}, err
	}

	gasUsed, err := c.simulate(ctx, msgs, sequence)
	if err != nil {
		return txResponse{}, err
	}
	gasLimit, feeCoins := c.fee(gasUsed)

	txBytes, err := c.signTx(ctx, msgs, accountNumber, sequence, gasLimit, feeCoins)
	if err != nil {
		return txResponse{}, err
	}

	res, err := c.rpc.BroadcastTxSync(ctx, cmttypes.Tx(txBytes))
	if err != nil {
		return txResponse{}, fmt.Errorf("broadcast transaction: %w", err)
	}
	if res.Code != 0 {
		return txResponse{}, sdkerrors.NewTransactionFailedError(res.Hash.String(), fmt.Sprintf("code %d: %s", res.Code, res.Log))
	}

	included, err := c.waitForTx(ctx, res.Hash)
	if err != nil {
		return txResponse{}, err
	}
	if included.TxResult.Code != 0 {
		return txResponse{}, sdkerrors.NewTransactionFailedError(res.Hash.String(), fmt.Sprintf("code %d: %s", included.TxResult.Code, included.TxResult.Log))
	}

	return txResponse{
		Hash:   res.Hash.String(),
		Height: included.Height,
		Events: included.TxResult.Events,
	}, nil
}

// waitForTx polls the node until the transaction lands in a block. The node
// answers with an error until then.
func (c *Client) waitForTx(ctx context.Context, hash []byte) (*coretypes.ResultTx, error) {
	ctx, cancel := context.WithTimeout(ctx, txWaitTimeout)
	defer cancel()

	ticker := time.NewTicker(statusPollPeriod)
	defer ticker.Stop()

	for {
		res, err := c.rpc.Tx(ctx, hash, false)
		if err == nil {
			return res, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("transaction %X not included: %w", hash, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (c *Client) account(ctx context.Context) (accountNumber, sequence uint64, err error) {
	resp, err := authtypes.NewQueryClient(c.grpc).Account(ctx, &authtypes.QueryAccountRequest{
		Address: c.address,
	})
	if err != nil {
		return 0, 0, fmt.Errorf("query account %s: %w", c.address, err)
	}

	var account sdktypes.AccountI
	if err := c.cdc.UnpackAny(resp.Account, &account); err != nil {
		return 0, 0, fmt.Errorf("unpack account: %w", err)
	}

	return account.GetAccountNumber(), account.GetSequence(), nil
}

// simulate runs the messages through the node with a zero-fee unsigned
// transaction and reports the gas they consumed.
func (c *Client) simulate(ctx context.Context, msgs []sdktypes.Msg, sequence uint64) (uint64, error) {
	builder, err := c.buildTx(msgs, sequence, 0, nil)
	if err != nil {
		return 0, err
	}
	txBytes, err := c.txConfig.TxEncoder()(builder.GetTx())
	if err != nil {
		return 0, fmt.Errorf("encode transaction: %w", err)
	}

	resp, err := txtypes.NewServiceClient(c.grpc).Simulate(ctx, &txtypes.SimulateRequest{TxBytes: txBytes})
	if err != nil {
		return 0, fmt.Errorf("simulate transaction: %w", err)
	}
	if resp.GasInfo == nil {
		return 0, errors.New("simulation returned no gas info")
	}

	return resp.GasInfo.GasUsed, nil
}

// fee scales simulated gas by the adjustment and prices the result, rounding
// both up.
func (c *Client) fee(gasUsed uint64) (uint64, sdktypes.Coins) {
	gasLimit := sdkmath.LegacyNewDec(int64(gasUsed)).Mul(c.gasAdjustment).Ceil()
	amount := gasLimit.Mul(c.gasPrice).Ceil().TruncateInt()

	return gasLimit.TruncateInt().Uint64(), sdktypes.NewCoins(sdktypes.NewCoin(c.denom, amount))
}

func (c *Client) buildTx(msgs []sdktypes.Msg, sequence, gasLimit uint64, feeCoins sdktypes.Coins) (client.TxBuilder, error) {
	builder := c.txConfig.NewTxBuilder()
	if err := builder.SetMsgs(msgs...); err != nil {
		return nil, fmt.Errorf("set messages: %w", err)
	}
	builder.SetGasLimit(gasLimit)
	builder.SetFeeAmount(feeCoins)

	sig := signingtypes.SignatureV2{
		PubKey:   c.priv.PubKey(),
		Data:     &signingtypes.SingleSignatureData{SignMode: signingtypes.SignMode_SIGN_MODE_DIRECT},
		Sequence: sequence,
	}
	if err := builder.SetSignatures(sig); err != nil {
		return nil, fmt.Errorf("set signatures: %w", err)
	}

	return builder, nil
}

func (c *Client) signTx(ctx context.Context, msgs []sdktypes.Msg, accountNumber, sequence, gasLimit uint64, feeCoins sdktypes.Coins) ([]byte, error) {
	builder, err := c.buildTx(msgs, sequence, gasLimit, feeCoins)
	if err != nil {
		return nil, err
	}

	signerData := authsigning.SignerData{
		Address:       c.address,
		ChainID:       c.chainID,
		AccountNumber: accountNumber,
		Sequence:      sequence,
		PubKey:        c.priv.PubKey(),
	}
	sig, err := clienttx.SignWithPrivKey(ctx, signingtypes.SignMode_SIGN_MODE_DIRECT, signerData, builder, c.priv, c.txConfig, sequence)
	if err != nil {
		return nil, fmt.Errorf("sign transaction: %w", err)
	}
	if err := builder.SetSignatures(sig); err != nil {
		return nil, fmt.Errorf("set signatures: %w", err)
	}

	return c.txConfig.TxEncoder()(builder.GetTx())
}

func newCodec(prefix string) (*codec.ProtoCodec, client.TxConfig, error) {
	registry, err := codectypes.NewInterfaceRegistryWithOptions(codectypes.InterfaceRegistryOptions{
		ProtoFiles: gogoproto.HybridResolver,
		SigningOptions: txsigning.Options{
			AddressCodec:          codecaddress.NewBech32Codec(prefix),
			ValidatorAddressCodec: codecaddress.NewBech32Codec(prefix + "valoper"),
		},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("build interface registry: %w", err)
	}

	std.RegisterInterfaces(registry)
	authtypes.RegisterInterfaces(registry)
	wasmtypes.RegisterInterfaces(registry)
	govv1.RegisterInterfaces(registry)

	cdc := codec.NewProtoCodec(registry)

	return cdc, authtx.NewTxConfig(cdc, authtx.DefaultSignModes), nil
}

func dialGRPC(cfg Config) (*grpc.ClientConn, error) {
	target := strings.TrimPrefix(strings.TrimPrefix(cfg.GRPCURL, "https://"), "http://")

	creds := credentials.NewClientTLSFromCert(nil, "")
	if cfg.Insecure {
		creds = insecure.NewCredentials()
	}

	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("dial grpc %s: %w", target, err)
	}

	return conn, nil
}

func parsePrivateKey(privateKey string) (*secp256k1.PrivKey, error) {
	keyBytes, err := hex.DecodeString(strings.TrimPrefix(privateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	if len(keyBytes) != privateKeyLen {
		return nil, fmt.Errorf("expected %d byte key, got %d bytes", privateKeyLen, len(keyBytes))
	}

	return &secp256k1.PrivKey{Key: keyBytes}, nil
}

// validateAddress checks bech32 encoding, the chain's account prefix, and
// the payload length. Externally owned accounts hash to 20 bytes, contracts
// to 32.
func validateAddress(prefix, address string) error {
	hrp, payload, err := bech32.DecodeAndConvert(address)
	if err != nil || hrp != prefix {
		return sdkerrors.NewInvalidAddressError(address)
	}
	if len(payload) != 20 && len(payload) != 32 {
		return sdkerrors.NewInvalidAddressError(address)
	}

	return nil
}

// contractMessage validates a JSON payload destined for a contract. Empty
// input turns into the empty object.
func contractMessage(msg []byte) (wasmtypes.RawContractMessage, error) {
	if len(msg) == 0 {
		msg = []byte("{}")
	}
	if !json.Valid(msg) {
		return nil, errors.New("contract message is not valid JSON")
	}

	return wasmtypes.RawContractMessage(msg), nil
}

// findEventAttribute scans transaction events for one attribute value.
func findEventAttribute(events []abci.Event, eventType, key string) (string, bool) {
	for _, event := range events {
		if event.Type != eventType {
			continue
		}
		for _, attr := range event.Attributes {
			if attr.Key == key {
				return attr.Value, true
			}
		}
	}

	return "", false
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}
