package cosmwasm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/axelarnetwork/axelar-deployments/sdk"
	sdkerrors "github.com/axelarnetwork/axelar-deployments/sdk/errors"
)

func Test_Client_GovAuthority(t *testing.T) {
	t.Parallel()

	require.Equal(t, testGovAuthority, testClient(t).GovAuthority())

	// The authority is the gov module account, so it moves with the prefix.
	cfg := testConfig()
	cfg.AccountPrefix = "cosmos"
	client, err := NewClient(cfg, testKeyHex)
	require.NoError(t, err)
	require.Equal(t, "cosmos10d07y265gmmuvt4z0w9aw880jnsr700j6zn9kn", client.GovAuthority())
}

func Test_Client_SubmitProposal_validation(t *testing.T) {
	t.Parallel()

	client := testClient(t)

	_, err := client.SubmitProposal(context.Background(), GovProposal{})
	require.ErrorContains(t, err, "proposal title cannot be empty")

	_, err = client.SubmitProposal(context.Background(), GovProposal{Title: "store gateway code"})
	require.ErrorContains(t, err, "proposal carries no messages")
}

func Test_Client_ExecuteProposal_validation(t *testing.T) {
	t.Parallel()

	client := testClient(t)
	prop := GovProposal{Title: "register chain", Summary: "register solana on the router"}

	var invalidErr *sdkerrors.InvalidAddressError
	_, err := client.ExecuteProposal(context.Background(), "bogus", []byte(`{}`), nil, prop)
	require.ErrorAs(t, err, &invalidErr)

	_, err = client.ExecuteProposal(context.Background(), testRouter, []byte(`{"x":`), nil, prop)
	require.ErrorContains(t, err, "contract message is not valid JSON")
}

func Test_Deployer_proposals_validation(t *testing.T) {
	t.Parallel()

	deployer := NewDeployer(testClient(t))
	prop := GovProposal{Title: "upgrade gateway"}

	_, err := deployer.UploadProposal(context.Background(), nil, prop)
	require.ErrorContains(t, err, "wasm code cannot be empty")

	_, err = deployer.DeployProposal(context.Background(), sdk.DeployParams{Label: "gateway"}, prop)
	require.ErrorContains(t, err, "code id is required")

	_, err = deployer.UpgradeProposal(context.Background(), sdk.UpgradeParams{CodeID: 4}, prop)
	require.ErrorContains(t, err, "invalid address")
}
