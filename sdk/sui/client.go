package sui

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/block-vision/sui-go-sdk/models"
	"github.com/block-vision/sui-go-sdk/signer"
	"github.com/block-vision/sui-go-sdk/sui"
	"github.com/block-vision/sui-go-sdk/transaction"

	sdkerrors "github.com/axelarnetwork/axelar-deployments/sdk/errors"
)

const (
	// Gas budget in MIST attached to every transaction block.
	defaultGasBudget = 500_000_000

	executionStatusSuccess = "success"
	requestTypeLocal       = "WaitForLocalExecution"

	addressLen = 32
)

// Client submits programmable transaction blocks to a Sui fullnode, signing
// everything with a single ed25519 key. Object arguments are resolved
// through the node at build time, so shared objects like the Clock need no
// version bookkeeping here.
type Client struct {
	rpc    *sui.Client
	signer *signer.Signer

	gasBudget uint64
}

// NewClient creates a Client for the given fullnode RPC endpoint. privateKey
// is the hex-encoded 32-byte ed25519 seed that signs and pays for every
// transaction.
func NewClient(rpcURL, privateKey string) (*Client, error) {
	seed, err := decodeSeed(privateKey)
	if err != nil {
		return nil, err
	}

	rpc, ok := sui.NewSuiClient(rpcURL).(*sui.Client)
	if !ok {
		return nil, errors.New("unexpected sui client implementation")
	}

	return &Client{
		rpc:       rpc,
		signer:    signer.NewSigner(seed),
		gasBudget: defaultGasBudget,
	}, nil
}

// Address returns the signer's account address.
func (c *Client) Address() string {
	return c.signer.Address
}

// SetGasBudget overrides the gas budget attached to every transaction.
func (c *Client) SetGasBudget(budget uint64) {
	c.gasBudget = budget
}

func (c *Client) gasBudgetString() string {
	return strconv.FormatUint(c.gasBudget, 10)
}

// RequestFaucet asks a faucet for test tokens for the signer's address.
func (c *Client) RequestFaucet(faucetURL string) error {
	if err := sui.RequestSuiFromFaucet(faucetURL, c.signer.Address, map[string]string{}); err != nil {
		return fmt.Errorf("request faucet: %w", err)
	}

	return nil
}

// ptb starts a transaction block bound to this client's node, signer and gas
// budget.
func (c *Client) ptb() *transaction.Transaction {
	return transaction.NewTransaction().
		SetSuiClient(c.rpc).
		SetSigner(c.signer).
		SetSender(models.SuiAddress(c.signer.Address)).
		SetGasBudget(c.gasBudget)
}

// executePTB submits a built transaction block and waits for local
// execution.
func (c *Client) executePTB(ctx context.Context, ptb *transaction.Transaction) (models.SuiTransactionBlockResponse, error) {
	resp, err := ptb.Execute(ctx, txBlockOptions(), requestTypeLocal)
	if err != nil {
		return models.SuiTransactionBlockResponse{}, fmt.Errorf("execute transaction block: %w", err)
	}
	if resp == nil {
		return models.SuiTransactionBlockResponse{}, errors.New("empty execution response")
	}
	if err := checkEffects(*resp); err != nil {
		return models.SuiTransactionBlockResponse{}, err
	}

	return *resp, nil
}

// signAndExecute signs prepared transaction bytes from the node's
// transaction builder API and submits them.
func (c *Client) signAndExecute(ctx context.Context, meta models.TxnMetaData) (models.SuiTransactionBlockResponse, error) {
	resp, err := c.rpc.SignAndExecuteTransactionBlock(ctx, models.SignAndExecuteTransactionBlockRequest{
		TxnMetaData: meta,
		PriKey:      c.signer.PriKey,
		Options:     txBlockOptions(),
		RequestType: requestTypeLocal,
	})
	if err != nil {
		return models.SuiTransactionBlockResponse{}, fmt.Errorf("execute transaction block: %w", err)
	}
	if err := checkEffects(resp); err != nil {
		return models.SuiTransactionBlockResponse{}, err
	}

	return resp, nil
}

func txBlockOptions() models.SuiTransactionBlockOptions {
	return models.SuiTransactionBlockOptions{
		ShowEffects:       true,
		ShowEvents:        true,
		ShowObjectChanges: true,
	}
}

// checkEffects rejects transactions the chain included but aborted.
func checkEffects(resp models.SuiTransactionBlockResponse) error {
	status := resp.Effects.Status.Status
	if status == "" || status == executionStatusSuccess {
		return nil
	}
	if detail := resp.Effects.Status.Error; detail != "" {
		status = status + ": " + detail
	}

	return sdkerrors.NewTransactionFailedError(resp.Digest, status)
}

func decodeSeed(privateKey string) ([]byte, error) {
	seed, err := hex.DecodeString(strings.TrimPrefix(privateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("parse private key: expected %d byte seed, got %d", ed25519.SeedSize, len(seed))
	}

	return seed, nil
}

// normalizeAddress canonicalizes an address or object id to its padded
// lowercase 0x form. Sui tooling routinely strips leading zeros, so short
// forms are accepted.
func normalizeAddress(address string) (string, error) {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(address, "0x"), "0X")
	if trimmed == "" {
		return "", sdkerrors.NewInvalidAddressError(address)
	}
	if len(trimmed)%2 != 0 {
		trimmed = "0" + trimmed
	}

	raw, err := hex.DecodeString(trimmed)
	if err != nil || len(raw) > addressLen {
		return "", sdkerrors.NewInvalidAddressError(address)
	}

	var padded [addressLen]byte
	copy(padded[addressLen-len(raw):], raw)

	return "0x" + hex.EncodeToString(padded[:]), nil
}
