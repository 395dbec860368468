package stellar

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stellar/go/clients/horizonclient"
	"github.com/stellar/go/keypair"
	"github.com/stellar/go/txnbuild"
	"github.com/stellar/go/xdr"

	sdkerrors "github.com/axelarnetwork/axelar-deployments/sdk/errors"
)

const (
	defaultTimeout   = 30 * time.Second
	statusPollPeriod = time.Second

	sendStatusError = "ERROR"

	txStatusNotFound = "NOT_FOUND"
	txStatusSuccess  = "SUCCESS"
	txStatusFailed   = "FAILED"
)

// Client talks JSON-RPC to a Soroban RPC node and uses Horizon for account
// sequence numbers and balances. Every submission runs the soroban round
// trip: simulate, apply footprint and resource fee, sign, send, poll.
type Client struct {
	http       *resty.Client
	rpcURL     string
	horizon    horizonclient.ClientInterface
	passphrase string
	nextID     atomic.Int64
}

// NewClient creates a Client for the given Soroban RPC endpoint. passphrase
// is the network passphrase transactions are signed against.
func NewClient(rpcURL string, horizon horizonclient.ClientInterface, passphrase string) *Client {
	return &Client{
		http:       resty.New().SetTimeout(defaultTimeout),
		rpcURL:     rpcURL,
		horizon:    horizon,
		passphrase: passphrase,
	}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int64  `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

// call performs one JSON-RPC request with named params.
func (c *Client) call(ctx context.Context, method string, params, result any) error {
	req := rpcRequest{
		JSONRPC: "2.0",
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  params,
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(c.rpcURL)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%s: http status %s", method, resp.Status())
	}

	var envelope rpcResponse
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return fmt.Errorf("%s: decode response: %w", method, err)
	}
	if envelope.Error != nil {
		return fmt.Errorf("%s: rpc error %d: %s", method, envelope.Error.Code, envelope.Error.Message)
	}

	if result != nil {
		if err := json.Unmarshal(envelope.Result, result); err != nil {
			return fmt.Errorf("%s: decode result: %w", method, err)
		}
	}

	return nil
}

type simulateTransactionRequest struct {
	Transaction string `json:"transaction"`
}

type simulateResult struct {
	Auth []string `json:"auth"`
	XDR  string   `json:"xdr"`
}

type simulateTransactionResponse struct {
	TransactionData string           `json:"transactionData"`
	MinResourceFee  string           `json:"minResourceFee"`
	Results         []simulateResult `json:"results"`
	LatestLedger    uint32           `json:"latestLedger"`
	Error           string           `json:"error"`
}

func (c *Client) simulateTransaction(ctx context.Context, envelope string) (simulateTransactionResponse, error) {
	var resp simulateTransactionResponse
	if err := c.call(ctx, "simulateTransaction", simulateTransactionRequest{Transaction: envelope}, &resp); err != nil {
		return simulateTransactionResponse{}, err
	}
	if resp.Error != "" {
		return simulateTransactionResponse{}, fmt.Errorf("simulation failed: %s", resp.Error)
	}

	return resp, nil
}

type sendTransactionRequest struct {
	Transaction string `json:"transaction"`
}

type sendTransactionResponse struct {
	Status         string `json:"status"`
	Hash           string `json:"hash"`
	ErrorResultXDR string `json:"errorResultXdr"`
}

type getTransactionRequest struct {
	Hash string `json:"hash"`
}

type getTransactionResponse struct {
	Status        string `json:"status"`
	EnvelopeXDR   string `json:"envelopeXdr"`
	ResultXDR     string `json:"resultXdr"`
	ResultMetaXDR string `json:"resultMetaXdr"`
}

// TxResponse is the outcome of a submitted soroban transaction.
type TxResponse struct {
	Hash        string
	ReturnValue xdr.ScVal
}

// SubmitOperation runs the full soroban round trip for one host-function
// operation signed by kp.
func (c *Client) SubmitOperation(ctx context.Context, kp *keypair.Full, op *txnbuild.InvokeHostFunction) (TxResponse, error) {
	sequence, err := c.accountSequence(kp.Address())
	if err != nil {
		return TxResponse{}, err
	}

	prepared, err := c.prepareTransaction(ctx, kp.Address(), sequence, op)
	if err != nil {
		return TxResponse{}, err
	}

	signed, err := prepared.Sign(c.passphrase, kp)
	if err != nil {
		return TxResponse{}, fmt.Errorf("sign transaction: %w", err)
	}

	envelope, err := signed.Base64()
	if err != nil {
		return TxResponse{}, fmt.Errorf("encode envelope: %w", err)
	}

	var sendResp sendTransactionResponse
	if err := c.call(ctx, "sendTransaction", sendTransactionRequest{Transaction: envelope}, &sendResp); err != nil {
		return TxResponse{}, err
	}
	if sendResp.Status == sendStatusError {
		return TxResponse{}, fmt.Errorf("transaction rejected: %s", sendResp.ErrorResultXDR)
	}

	return c.awaitTransaction(ctx, sendResp.Hash)
}

// SimulateInvoke runs a read-only contract invocation and returns the
// simulated result without submitting anything.
func (c *Client) SimulateInvoke(ctx context.Context, source string, contractAddress, function string, args ...xdr.ScVal) (xdr.ScVal, error) {
	op, err := invokeContractOperation(source, contractAddress, function, args...)
	if err != nil {
		return xdr.ScVal{}, err
	}

	sequence, err := c.accountSequence(source)
	if err != nil {
		return xdr.ScVal{}, err
	}

	envelope, err := buildEnvelope(source, sequence, op, txnbuild.MinBaseFee)
	if err != nil {
		return xdr.ScVal{}, err
	}

	sim, err := c.simulateTransaction(ctx, envelope)
	if err != nil {
		return xdr.ScVal{}, err
	}
	if len(sim.Results) == 0 {
		return xdr.ScVal{}, fmt.Errorf("simulate %s: no result", function)
	}

	var result xdr.ScVal
	if err := xdr.SafeUnmarshalBase64(sim.Results[0].XDR, &result); err != nil {
		return xdr.ScVal{}, fmt.Errorf("simulate %s: decode result: %w", function, err)
	}

	return result, nil
}

// prepareTransaction simulates the operation and rebuilds it with the
// soroban footprint, auth entries and resource fee applied.
func (c *Client) prepareTransaction(ctx context.Context, source string, sequence int64, op *txnbuild.InvokeHostFunction) (*txnbuild.Transaction, error) {
	envelope, err := buildEnvelope(source, sequence, op, txnbuild.MinBaseFee)
	if err != nil {
		return nil, err
	}

	sim, err := c.simulateTransaction(ctx, envelope)
	if err != nil {
		return nil, err
	}

	var sorobanData xdr.SorobanTransactionData
	if err := xdr.SafeUnmarshalBase64(sim.TransactionData, &sorobanData); err != nil {
		return nil, fmt.Errorf("decode soroban transaction data: %w", err)
	}
	op.Ext = xdr.TransactionExt{V: 1, SorobanData: &sorobanData}

	if len(sim.Results) > 0 {
		auth := make([]xdr.SorobanAuthorizationEntry, 0, len(sim.Results[0].Auth))
		for _, raw := range sim.Results[0].Auth {
			var entry xdr.SorobanAuthorizationEntry
			if err := xdr.SafeUnmarshalBase64(raw, &entry); err != nil {
				return nil, fmt.Errorf("decode authorization entry: %w", err)
			}
			auth = append(auth, entry)
		}
		op.Auth = auth
	}

	resourceFee, err := strconv.ParseInt(sim.MinResourceFee, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse resource fee %q: %w", sim.MinResourceFee, err)
	}

	return buildTransaction(source, sequence, op, txnbuild.MinBaseFee+resourceFee)
}

// awaitTransaction polls until the transaction leaves PENDING and returns
// its soroban return value.
func (c *Client) awaitTransaction(ctx context.Context, hash string) (TxResponse, error) {
	ticker := time.NewTicker(statusPollPeriod)
	defer ticker.Stop()

	for {
		var resp getTransactionResponse
		if err := c.call(ctx, "getTransaction", getTransactionRequest{Hash: hash}, &resp); err != nil {
			return TxResponse{}, err
		}

		switch resp.Status {
		case txStatusSuccess:
			returnValue, err := transactionReturnValue(resp.ResultMetaXDR)
			if err != nil {
				return TxResponse{}, err
			}

			return TxResponse{Hash: hash, ReturnValue: returnValue}, nil
		case txStatusFailed:
			return TxResponse{}, sdkerrors.NewTransactionFailedError(hash, txStatusFailed)
		case txStatusNotFound:
		}

		select {
		case <-ctx.Done():
			return TxResponse{}, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (c *Client) accountSequence(address string) (int64, error) {
	account, err := c.horizon.AccountDetail(horizonclient.AccountRequest{AccountID: address})
	if err != nil {
		return 0, fmt.Errorf("load account %s: %w", address, err)
	}

	return account.Sequence, nil
}

func buildTransaction(source string, sequence int64, op *txnbuild.InvokeHostFunction, baseFee int64) (*txnbuild.Transaction, error) {
	account := txnbuild.NewSimpleAccount(source, sequence)

	tx, err := txnbuild.NewTransaction(txnbuild.TransactionParams{
		SourceAccount:        &account,
		IncrementSequenceNum: true,
		Operations:           []txnbuild.Operation{op},
		BaseFee:              baseFee,
		Preconditions:        txnbuild.Preconditions{TimeBounds: txnbuild.NewTimeout(300)},
	})
	if err != nil {
		return nil, fmt.Errorf("build transaction: %w", err)
	}

	return tx, nil
}

func buildEnvelope(source string, sequence int64, op *txnbuild.InvokeHostFunction, baseFee int64) (string, error) {
	tx, err := buildTransaction(source, sequence, op, baseFee)
	if err != nil {
		return "", err
	}

	envelope, err := tx.Base64()
	if err != nil {
		return "", fmt.Errorf("encode envelope: %w", err)
	}

	return envelope, nil
}

// transactionReturnValue extracts the host-function return value from a
// transaction meta blob. Protocol 23 moved soroban meta from V3 to V4.
func transactionReturnValue(metaXDR string) (xdr.ScVal, error) {
	if metaXDR == "" {
		return xdr.ScVal{}, nil
	}

	var meta xdr.TransactionMeta
	if err := xdr.SafeUnmarshalBase64(metaXDR, &meta); err != nil {
		return xdr.ScVal{}, fmt.Errorf("decode transaction meta: %w", err)
	}

	switch {
	case meta.V3 != nil && meta.V3.SorobanMeta != nil:
		return meta.V3.SorobanMeta.ReturnValue, nil
	case meta.V4 != nil && meta.V4.SorobanMeta != nil && meta.V4.SorobanMeta.ReturnValue != nil:
		return *meta.V4.SorobanMeta.ReturnValue, nil
	default:
		return xdr.ScVal{}, nil
	}
}

// invokeContractOperation builds the InvokeHostFunction op for one contract
// function call.
func invokeContractOperation(source, contractAddress, function string, args ...xdr.ScVal) (*txnbuild.InvokeHostFunction, error) {
	scAddress, err := ContractScAddress(contractAddress)
	if err != nil {
		return nil, err
	}

	return &txnbuild.InvokeHostFunction{
		HostFunction: xdr.HostFunction{
			Type: xdr.HostFunctionTypeHostFunctionTypeInvokeContract,
			InvokeContract: &xdr.InvokeContractArgs{
				ContractAddress: scAddress,
				FunctionName:    xdr.ScSymbol(function),
				Args:            args,
			},
		},
		SourceAccount: source,
	}, nil
}

// InvokeContract submits a state-changing contract invocation signed by kp.
func (c *Client) InvokeContract(ctx context.Context, kp *keypair.Full, contractAddress, function string, args ...xdr.ScVal) (TxResponse, error) {
	op, err := invokeContractOperation(kp.Address(), contractAddress, function, args...)
	if err != nil {
		return TxResponse{}, err
	}

	return c.SubmitOperation(ctx, kp, op)
}
