package cosmwasm

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	sdktypes "github.com/cosmos/cosmos-sdk/types"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"
	govv1 "github.com/cosmos/cosmos-sdk/x/gov/types/v1"

	"github.com/axelarnetwork/axelar-deployments/sdk"
)

// GovProposal carries the metadata of a gov v1 proposal wrapping one or more
// wasm messages.
type GovProposal struct {
	Title    string
	Summary  string
	Metadata string
	Deposit  sdktypes.Coins

	// Expedited shortens the voting period where the chain allows it.
	Expedited bool
}

// ProposalResult records a submitted proposal. ProposalID is zero when the
// transaction emitted no proposal event.
type ProposalResult struct {
	TxHash     string
	ProposalID uint64
}

// GovAuthority returns the governance module account. On chains where the
// wasm module is governance-gated, messages executed through passed
// proposals must name it as their sender.
func (c *Client) GovAuthority() string {
	return c.govAuthority
}

// SubmitProposal wraps msgs into a gov v1 proposal and submits it with the
// given deposit.
func (c *Client) SubmitProposal(ctx context.Context, prop GovProposal, msgs ...sdktypes.Msg) (ProposalResult, error) {
	if prop.Title == "" {
		return ProposalResult{}, errors.New("proposal title cannot be empty")
	}
	if len(msgs) == 0 {
		return ProposalResult{}, errors.New("proposal carries no messages")
	}

	msg, err := govv1.NewMsgSubmitProposal(msgs, prop.Deposit, c.address, prop.Metadata, prop.Title, prop.Summary, prop.Expedited)
	if err != nil {
		return ProposalResult{}, fmt.Errorf("build proposal: %w", err)
	}

	res, err := c.signAndBroadcast(ctx, msg)
	if err != nil {
		return ProposalResult{}, err
	}

	result := ProposalResult{TxHash: res.Hash}
	if value, ok := findEventAttribute(res.Events, govtypes.EventTypeSubmitProposal, govtypes.AttributeKeyProposalID); ok {
		if id, err := strconv.ParseUint(value, 10, 64); err == nil {
			result.ProposalID = id
		}
	}

	return result, nil
}

// ExecuteProposal routes a contract execution through governance instead of
// signing it directly.
func (c *Client) ExecuteProposal(ctx context.Context, contract string, msg []byte, funds sdktypes.Coins, prop GovProposal) (ProposalResult, error) {
	if err := validateAddress(c.prefix, contract); err != nil {
		return ProposalResult{}, err
	}
	payload, err := contractMessage(msg)
	if err != nil {
		return ProposalResult{}, err
	}

	return c.SubmitProposal(ctx, prop, &wasmtypes.MsgExecuteContract{
		Sender:   c.govAuthority,
		Contract: contract,
		Msg:      payload,
		Funds:    funds,
	})
}

// UploadProposal routes a code store through governance.
func (d *Deployer) UploadProposal(ctx context.Context, code []byte, prop GovProposal) (ProposalResult, error) {
	msg, err := storeCodeMsg(d.client.govAuthority, code)
	if err != nil {
		return ProposalResult{}, err
	}

	return d.client.SubmitProposal(ctx, prop, msg)
}

// DeployProposal routes an instantiation through governance. The proposal
// references stored code, so params.CodeID is required; inline params.Code
// is not uploaded.
func (d *Deployer) DeployProposal(ctx context.Context, params sdk.DeployParams, prop GovProposal) (ProposalResult, error) {
	msg, err := instantiateMsg(d.client.prefix, d.client.govAuthority, params.CodeID, params)
	if err != nil {
		return ProposalResult{}, err
	}

	return d.client.SubmitProposal(ctx, prop, msg)
}

// UpgradeProposal routes a migration through governance. params.CodeID must
// reference stored code.
func (d *Deployer) UpgradeProposal(ctx context.Context, params sdk.UpgradeParams, prop GovProposal) (ProposalResult, error) {
	msg, err := migrateMsg(d.client.prefix, d.client.govAuthority, params.CodeID, params)
	if err != nil {
		return ProposalResult{}, err
	}

	return d.client.SubmitProposal(ctx, prop, msg)
}
