package solana

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/computebudget"
	"github.com/gagliardetto/solana-go/rpc"

	sdkerrors "github.com/axelarnetwork/axelar-deployments/sdk/errors"
)

const (
	// Maximum allowed per-transaction compute budget.
	defaultComputeUnits = 1_400_000
	// Micro-lamports per compute unit.
	defaultPriorityFee = 10_000

	statusPollPeriod = time.Second
)

// Client submits transactions to a Solana RPC node, paying fees from a single
// keypair. Submissions are signed locally, sent with preflight at confirmed
// commitment, and polled until the cluster confirms them.
type Client struct {
	rpc   *rpc.Client
	payer solana.PrivateKey

	computeUnits uint32
	priorityFee  uint64
}

// NewClient creates a Client for the given RPC endpoint. payerKey is the
// base58-encoded private key that signs and pays for every transaction.
func NewClient(rpcURL, payerKey string) (*Client, error) {
	payer, err := solana.PrivateKeyFromBase58(payerKey)
	if err != nil {
		return nil, fmt.Errorf("parse payer key: %w", err)
	}

	return &Client{
		rpc:          rpc.New(rpcURL),
		payer:        payer,
		computeUnits: defaultComputeUnits,
		priorityFee:  defaultPriorityFee,
	}, nil
}

// Payer returns the fee payer public key.
func (c *Client) Payer() solana.PublicKey {
	return c.payer.PublicKey()
}

// SetComputeBudget overrides the compute budget attached to every
// transaction. units of zero drops the budget instructions entirely.
func (c *Client) SetComputeBudget(units uint32, microLamports uint64) {
	c.computeUnits = units
	c.priorityFee = microLamports
}

// send signs and submits a single transaction carrying the instructions,
// then blocks until the cluster confirms it.
func (c *Client) send(ctx context.Context, instructions ...solana.Instruction) (string, error) {
	if c.computeUnits > 0 {
		budget := []solana.Instruction{
			computebudget.NewSetComputeUnitLimitInstruction(c.computeUnits).Build(),
			computebudget.NewSetComputeUnitPriceInstruction(c.priorityFee).Build(),
		}
		instructions = append(budget, instructions...)
	}

	latest, err := c.rpc.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return "", fmt.Errorf("fetch latest blockhash: %w", err)
	}

	tx, err := solana.NewTransaction(instructions, latest.Value.Blockhash, solana.TransactionPayer(c.payer.PublicKey()))
	if err != nil {
		return "", fmt.Errorf("build transaction: %w", err)
	}

	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(c.payer.PublicKey()) {
			return &c.payer
		}

		return nil
	})
	if err != nil {
		return "", fmt.Errorf("sign transaction: %w", err)
	}

	sig, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		PreflightCommitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		return "", fmt.Errorf("send transaction: %w", err)
	}

	if err := c.waitConfirmed(ctx, sig); err != nil {
		return "", err
	}

	return sig.String(), nil
}

// sendEach submits every instruction as its own transaction, in order,
// returning the signature of the last one. The gateway verification flow
// requires this: each step must land before the next may execute.
func (c *Client) sendEach(ctx context.Context, instructions []solana.Instruction) (string, error) {
	var last string
	for _, instruction := range instructions {
		sig, err := c.send(ctx, instruction)
		if err != nil {
			return "", err
		}
		last = sig
	}

	return last, nil
}

func (c *Client) waitConfirmed(ctx context.Context, sig solana.Signature) error {
	ticker := time.NewTicker(statusPollPeriod)
	defer ticker.Stop()

	for {
		out, err := c.rpc.GetSignatureStatuses(ctx, true, sig)
		if err != nil {
			return fmt.Errorf("fetch signature status: %w", err)
		}

		if len(out.Value) > 0 && out.Value[0] != nil {
			status := out.Value[0]
			if status.Err != nil {
				return sdkerrors.NewTransactionFailedError(sig.String(), fmt.Sprintf("%v", status.Err))
			}
			switch status.ConfirmationStatus {
			case rpc.ConfirmationStatusConfirmed, rpc.ConfirmationStatusFinalized:
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// accountData fetches the raw contents of an account at confirmed
// commitment.
func (c *Client) accountData(ctx context.Context, address solana.PublicKey) ([]byte, error) {
	res, err := c.rpc.GetAccountInfoWithOpts(ctx, address, &rpc.GetAccountInfoOpts{
		Commitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch account %s: %w", address, err)
	}

	return res.Value.Data.GetBinary(), nil
}

// accountExists reports whether an account is present on chain.
func (c *Client) accountExists(ctx context.Context, address solana.PublicKey) (bool, error) {
	_, err := c.rpc.GetAccountInfoWithOpts(ctx, address, &rpc.GetAccountInfoOpts{
		Commitment: rpc.CommitmentConfirmed,
	})
	if errors.Is(err, rpc.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("fetch account %s: %w", address, err)
	}

	return true, nil
}

// parseAddress converts a base58 account address, rejecting malformed input.
func parseAddress(address string) (solana.PublicKey, error) {
	key, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return solana.PublicKey{}, sdkerrors.NewInvalidAddressError(address)
	}

	return key, nil
}
