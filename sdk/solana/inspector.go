package solana

import (
	"context"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/axelarnetwork/axelar-deployments/sdk"
)

// Inspector reads deployed program state for post-step verification.
type Inspector struct {
	client  *Client
	gateway solana.PublicKey
}

var _ sdk.Inspector = (*Inspector)(nil)

// NewInspector creates an Inspector bound to a gateway program id.
func NewInspector(client *Client, gatewayProgramID string) (*Inspector, error) {
	gateway, err := parseAddress(gatewayProgramID)
	if err != nil {
		return nil, err
	}

	return &Inspector{client: client, gateway: gateway}, nil
}

// GatewayState reads the gateway's root config account. The config tracks
// the rotation epoch but not the installed set's hash; trackers are
// addressed by hash, so SignersHash is left zero here.
func (i *Inspector) GatewayState(ctx context.Context) (sdk.GatewayState, error) {
	config, err := i.gatewayConfig(ctx)
	if err != nil {
		return sdk.GatewayState{}, err
	}

	epoch, err := config.CurrentEpoch.Uint64()
	if err != nil {
		return sdk.GatewayState{}, fmt.Errorf("current epoch: %w", err)
	}

	return sdk.GatewayState{
		Operator:        config.Operator.String(),
		DomainSeparator: config.DomainSeparator,
		Epoch:           epoch,
	}, nil
}

// TrackerState describes one registered verifier set.
type TrackerState struct {
	Epoch           uint64
	VerifierSetHash [32]byte
}

// VerifierSet reads the tracker account for a verifier set merkle root. It
// errors when no set with that root was ever registered.
func (i *Inspector) VerifierSet(ctx context.Context, merkleRoot [32]byte) (TrackerState, error) {
	trackerPDA, err := VerifierSetTrackerPDA(i.gateway, merkleRoot)
	if err != nil {
		return TrackerState{}, err
	}

	data, err := i.client.accountData(ctx, trackerPDA)
	if err != nil {
		return TrackerState{}, err
	}

	tracker, err := decodeVerifierSetTracker(data)
	if err != nil {
		return TrackerState{}, err
	}

	epoch, err := tracker.Epoch.Uint64()
	if err != nil {
		return TrackerState{}, fmt.Errorf("tracker epoch: %w", err)
	}

	return TrackerState{Epoch: epoch, VerifierSetHash: tracker.VerifierSetHash}, nil
}

// Owner returns a program's upgrade authority, the closest thing Solana
// programs have to a contract owner.
func (i *Inspector) Owner(ctx context.Context, contract string) (string, error) {
	program, err := parseAddress(contract)
	if err != nil {
		return "", err
	}

	programData, err := ProgramDataAddress(program)
	if err != nil {
		return "", err
	}

	data, err := i.client.accountData(ctx, programData)
	if err != nil {
		return "", err
	}

	// Upgradeable loader ProgramData layout: state tag, deploy slot, then
	// an optional upgrade authority.
	var state struct {
		DataType         uint32
		Slot             uint64
		UpgradeAuthority *solana.PublicKey `bin:"optional"`
	}
	if err := bin.NewBorshDecoder(data).Decode(&state); err != nil {
		return "", fmt.Errorf("decode program data: %w", err)
	}
	if state.UpgradeAuthority == nil {
		return "", nil
	}

	return state.UpgradeAuthority.String(), nil
}

// Operator reads the operator from a gateway program's config account.
// Other programs keep no operator account of their own.
func (i *Inspector) Operator(ctx context.Context, contract string) (string, error) {
	program, err := parseAddress(contract)
	if err != nil {
		return "", err
	}

	config, err := i.programGatewayConfig(ctx, program)
	if err != nil {
		return "", err
	}

	return config.Operator.String(), nil
}

func (i *Inspector) gatewayConfig(ctx context.Context) (*gatewayConfig, error) {
	return i.programGatewayConfig(ctx, i.gateway)
}

func (i *Inspector) programGatewayConfig(ctx context.Context, program solana.PublicKey) (*gatewayConfig, error) {
	configPDA, err := GatewayConfigPDA(program)
	if err != nil {
		return nil, err
	}

	data, err := i.client.accountData(ctx, configPDA)
	if err != nil {
		return nil, err
	}

	return decodeGatewayConfig(data)
}
