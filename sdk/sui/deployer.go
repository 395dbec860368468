package sui

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/block-vision/sui-go-sdk/models"
	"github.com/block-vision/sui-go-sdk/transaction"

	"github.com/axelarnetwork/axelar-deployments/sdk"
	sdkerrors "github.com/axelarnetwork/axelar-deployments/sdk/errors"
)

// Sui framework package holding the upgrade entry functions.
const suiFramework = "0x2"

// Only compatible upgrades are authorized; breaking policies stay manual.
const compatibleUpgradePolicy uint8 = 0

// PackageArtifact is the output of `sui move build --dump-bytecode-as-base64`:
// the package's compiled modules, the package ids it links against, and the
// digest the upgrade authorization signs off on.
type PackageArtifact struct {
	Modules      []string    `json:"modules"`
	Dependencies []string    `json:"dependencies"`
	Digest       digestBytes `json:"digest"`
}

// digestBytes accepts both encodings the build tooling emits: a JSON byte
// array and a base64 string.
type digestBytes []byte

func (d *digestBytes) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var encoded string
		if err := json.Unmarshal(data, &encoded); err != nil {
			return err
		}
		raw, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return fmt.Errorf("decode digest: %w", err)
		}
		*d = raw

		return nil
	}

	var nums []int
	if err := json.Unmarshal(data, &nums); err != nil {
		return fmt.Errorf("decode digest: %w", err)
	}
	raw := make([]byte, len(nums))
	for i, n := range nums {
		if n < 0 || n > 0xFF {
			return fmt.Errorf("decode digest: byte %d out of range", n)
		}
		raw[i] = byte(n)
	}
	*d = raw

	return nil
}

// ParseArtifact decodes a move build artifact.
func ParseArtifact(data []byte) (PackageArtifact, error) {
	var artifact PackageArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return PackageArtifact{}, fmt.Errorf("parse package artifact: %w", err)
	}
	if len(artifact.Modules) == 0 {
		return PackageArtifact{}, errors.New("parse package artifact: no compiled modules")
	}

	return artifact, nil
}

// Deployer publishes and upgrades Move packages. Deploy parses the build
// artifact JSON from DeployParams.Code and records every object the publish
// created, keyed by type name, so callers can carry the gateway object and
// capability ids into the manifest.
type Deployer struct {
	client *Client
}

var _ sdk.Deployer = (*Deployer)(nil)

// NewDeployer creates a Deployer submitting through client.
func NewDeployer(client *Client) *Deployer {
	return &Deployer{client: client}
}

// Upload is not a separate step on Sui; publishing stores and instantiates
// the package in one transaction.
func (d *Deployer) Upload(ctx context.Context, code []byte) (sdk.UploadResult, error) {
	return sdk.UploadResult{}, sdkerrors.NewUnsupportedOperationError("sui", "upload")
}

// Deploy publishes the package and reports the new package id plus the
// created objects.
func (d *Deployer) Deploy(ctx context.Context, params sdk.DeployParams) (sdk.DeployResult, error) {
	artifact, err := ParseArtifact(params.Code)
	if err != nil {
		return sdk.DeployResult{}, err
	}

	meta, err := d.client.rpc.Publish(ctx, models.PublishRequest{
		Sender:          d.client.Address(),
		CompiledModules: artifact.Modules,
		Dependencies:    artifact.Dependencies,
		GasBudget:       d.client.gasBudgetString(),
	})
	if err != nil {
		return sdk.DeployResult{}, fmt.Errorf("build publish transaction: %w", err)
	}

	resp, err := d.client.signAndExecute(ctx, meta)
	if err != nil {
		return sdk.DeployResult{}, err
	}

	packageID, err := publishedPackage(resp)
	if err != nil {
		return sdk.DeployResult{}, err
	}

	return sdk.DeployResult{
		TxHash:  resp.Digest,
		Address: packageID,
		Objects: createdObjects(resp),
	}, nil
}

// Upgrade migrates a published package to the code in params.NewCode. The
// signer must own the package's UpgradeCap, named by params.Capability.
func (d *Deployer) Upgrade(ctx context.Context, params sdk.UpgradeParams) (sdk.TxResult, error) {
	result, err := d.UpgradePackage(ctx, params)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: result.TxHash}, nil
}

// UpgradePackage runs the full upgrade flow and additionally reports the new
// package id, which changes on every Sui upgrade.
func (d *Deployer) UpgradePackage(ctx context.Context, params sdk.UpgradeParams) (sdk.DeployResult, error) {
	artifact, err := ParseArtifact(params.NewCode)
	if err != nil {
		return sdk.DeployResult{}, err
	}
	if len(artifact.Digest) == 0 {
		return sdk.DeployResult{}, errors.New("parse package artifact: no digest")
	}

	packageID, err := normalizeAddress(params.Address)
	if err != nil {
		return sdk.DeployResult{}, err
	}
	upgradeCap, err := normalizeAddress(params.Capability)
	if err != nil {
		return sdk.DeployResult{}, err
	}

	modules := make([][]byte, len(artifact.Modules))
	for i, encoded := range artifact.Modules {
		raw, decodeErr := base64.StdEncoding.DecodeString(encoded)
		if decodeErr != nil {
			return sdk.DeployResult{}, fmt.Errorf("decode module %d: %w", i, decodeErr)
		}
		modules[i] = raw
	}

	dependencies := make([]models.SuiAddress, len(artifact.Dependencies))
	for i, dep := range artifact.Dependencies {
		normalized, depErr := normalizeAddress(dep)
		if depErr != nil {
			return sdk.DeployResult{}, depErr
		}
		dependencies[i] = models.SuiAddress(normalized)
	}

	// Authorization, the upgrade itself and the receipt commit must land in
	// one transaction block; the ticket and receipt are hot potatoes.
	ptb := d.client.ptb()
	capArg := ptb.Object(upgradeCap)
	ticket := ptb.MoveCall(
		suiFramework,
		"package",
		"authorize_upgrade",
		nil,
		[]transaction.Argument{capArg, ptb.Pure(compatibleUpgradePolicy), ptb.Pure([]byte(artifact.Digest))},
	)
	receipt := ptb.Upgrade(modules, dependencies, models.SuiAddress(packageID), ticket)
	ptb.MoveCall(
		suiFramework,
		"package",
		"commit_upgrade",
		nil,
		[]transaction.Argument{capArg, receipt},
	)

	resp, err := d.client.executePTB(ctx, ptb)
	if err != nil {
		return sdk.DeployResult{}, err
	}

	upgraded, err := publishedPackage(resp)
	if err != nil {
		return sdk.DeployResult{}, err
	}

	return sdk.DeployResult{TxHash: resp.Digest, Address: upgraded}, nil
}

// publishedPackage finds the new package id in a publish or upgrade
// response.
func publishedPackage(resp models.SuiTransactionBlockResponse) (string, error) {
	for _, change := range resp.ObjectChanges {
		if change.Type == "published" {
			return change.PackageId, nil
		}
	}

	return "", errors.New("no published package in transaction response")
}

// createdObjects indexes the objects a transaction created by their bare
// type name, falling back to module::Name when two modules create same-named
// types.
func createdObjects(resp models.SuiTransactionBlockResponse) map[string]string {
	objects := make(map[string]string)
	for _, change := range resp.ObjectChanges {
		if change.Type != "created" {
			continue
		}
		name, qualified := objectTypeName(change.ObjectType)
		if name == "" {
			continue
		}
		if _, taken := objects[name]; !taken {
			objects[name] = change.ObjectId
			continue
		}
		if _, taken := objects[qualified]; !taken {
			objects[qualified] = change.ObjectId
		}
	}

	return objects
}

// objectTypeName splits a type tag like 0xabc::gateway::Gateway<T> into its
// bare and module-qualified names.
func objectTypeName(objectType string) (name, qualified string) {
	if i := strings.IndexByte(objectType, '<'); i >= 0 {
		objectType = objectType[:i]
	}
	parts := strings.Split(objectType, "::")
	if len(parts) < 2 {
		return "", ""
	}
	name = parts[len(parts)-1]

	return name, parts[len(parts)-2] + "::" + name
}
