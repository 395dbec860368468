package stellar

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/stellar/go/keypair"
	"github.com/stellar/go/txnbuild"
	"github.com/stellar/go/xdr"

	"github.com/axelarnetwork/axelar-deployments/sdk"
)

var _ sdk.Deployer = (*Deployer)(nil)

// Deployer manages the soroban contract code lifecycle: upload wasm, create
// a contract instance with constructor args, upgrade in place.
type Deployer struct {
	client *Client
	kp     *keypair.Full
}

func NewDeployer(client *Client, kp *keypair.Full) *Deployer {
	return &Deployer{client: client, kp: kp}
}

// Upload stores wasm on chain and returns its hash. The hash is the sha256
// of the code, computed locally so it is available even before inclusion.
func (d *Deployer) Upload(ctx context.Context, code []byte) (sdk.UploadResult, error) {
	op := &txnbuild.InvokeHostFunction{
		HostFunction: xdr.HostFunction{
			Type: xdr.HostFunctionTypeHostFunctionTypeUploadContractWasm,
			Wasm: &code,
		},
		SourceAccount: d.kp.Address(),
	}

	resp, err := d.client.SubmitOperation(ctx, d.kp, op)
	if err != nil {
		return sdk.UploadResult{}, err
	}

	hash := sha256.Sum256(code)

	return sdk.UploadResult{TxHash: resp.Hash, ID: hex.EncodeToString(hash[:])}, nil
}

// Deploy uploads the wasm if given, then creates a contract instance with
// the constructor args. InitArgs is an XDR-encoded ScVec.
func (d *Deployer) Deploy(ctx context.Context, params sdk.DeployParams) (sdk.DeployResult, error) {
	var wasmHash xdr.Hash
	switch {
	case len(params.Code) > 0:
		if _, err := d.Upload(ctx, params.Code); err != nil {
			return sdk.DeployResult{}, fmt.Errorf("upload wasm: %w", err)
		}
		wasmHash = sha256.Sum256(params.Code)
	case params.CodeHash != "":
		decoded, err := hex.DecodeString(strings.TrimPrefix(params.CodeHash, "0x"))
		if err != nil || len(decoded) != 32 {
			return sdk.DeployResult{}, fmt.Errorf("invalid wasm hash %q", params.CodeHash)
		}
		copy(wasmHash[:], decoded)
	default:
		return sdk.DeployResult{}, fmt.Errorf("either wasm code or a wasm hash is required")
	}

	args, err := UnmarshalArgs(params.InitArgs)
	if err != nil {
		return sdk.DeployResult{}, fmt.Errorf("decode constructor args: %w", err)
	}

	salt, err := saltBytes(params.Salt)
	if err != nil {
		return sdk.DeployResult{}, err
	}

	deployerAddress, err := ScAddressFromString(d.kp.Address())
	if err != nil {
		return sdk.DeployResult{}, err
	}

	op := &txnbuild.InvokeHostFunction{
		HostFunction: xdr.HostFunction{
			Type: xdr.HostFunctionTypeHostFunctionTypeCreateContractV2,
			CreateContractV2: &xdr.CreateContractArgsV2{
				ContractIdPreimage: xdr.ContractIdPreimage{
					Type: xdr.ContractIdPreimageTypeContractIdPreimageFromAddress,
					FromAddress: &xdr.ContractIdPreimageFromAddress{
						Address: deployerAddress,
						Salt:    xdr.Uint256(salt),
					},
				},
				Executable: xdr.ContractExecutable{
					Type:     xdr.ContractExecutableTypeContractExecutableWasm,
					WasmHash: &wasmHash,
				},
				ConstructorArgs: args,
			},
		},
		SourceAccount: d.kp.Address(),
	}

	resp, err := d.client.SubmitOperation(ctx, d.kp, op)
	if err != nil {
		return sdk.DeployResult{}, err
	}

	address, err := contractAddressFromReturn(resp.ReturnValue)
	if err != nil {
		return sdk.DeployResult{}, err
	}

	return sdk.DeployResult{TxHash: resp.Hash, Address: address}, nil
}

// Upgrade points the contract at new wasm via its upgrade entry point, then
// runs migrate when migration data is supplied. NewCode is uploaded first
// when given; otherwise CodeHash must reference already-uploaded wasm.
func (d *Deployer) Upgrade(ctx context.Context, params sdk.UpgradeParams) (sdk.TxResult, error) {
	var wasmHash [32]byte
	switch {
	case len(params.NewCode) > 0:
		if _, err := d.Upload(ctx, params.NewCode); err != nil {
			return sdk.TxResult{}, fmt.Errorf("upload wasm: %w", err)
		}
		wasmHash = sha256.Sum256(params.NewCode)
	case params.CodeHash != "":
		decoded, err := hex.DecodeString(strings.TrimPrefix(params.CodeHash, "0x"))
		if err != nil || len(decoded) != 32 {
			return sdk.TxResult{}, fmt.Errorf("invalid wasm hash %q", params.CodeHash)
		}
		copy(wasmHash[:], decoded)
	default:
		return sdk.TxResult{}, fmt.Errorf("either new code or a wasm hash is required")
	}

	resp, err := d.client.InvokeContract(ctx, d.kp, params.Address, "upgrade", Bytes32(wasmHash))
	if err != nil {
		return sdk.TxResult{}, err
	}

	if len(params.MigrateArgs) > 0 {
		var migrationData xdr.ScVal
		if err := xdr.SafeUnmarshal(params.MigrateArgs, &migrationData); err != nil {
			return sdk.TxResult{}, fmt.Errorf("decode migration data: %w", err)
		}

		migrateResp, err := d.client.InvokeContract(ctx, d.kp, params.Address, "migrate", migrationData)
		if err != nil {
			return sdk.TxResult{}, fmt.Errorf("migrate after upgrade: %w", err)
		}

		return sdk.TxResult{Hash: migrateResp.Hash}, nil
	}

	return sdk.TxResult{Hash: resp.Hash}, nil
}

// MarshalArgs encodes invocation args as an XDR ScVec blob.
func MarshalArgs(args ...xdr.ScVal) ([]byte, error) {
	vec := xdr.ScVec(args)
	encoded, err := vec.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("encode args: %w", err)
	}

	return encoded, nil
}

// UnmarshalArgs decodes an XDR ScVec blob into invocation args. Empty input
// yields no args.
func UnmarshalArgs(raw []byte) ([]xdr.ScVal, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var vec xdr.ScVec
	if err := xdr.SafeUnmarshal(raw, &vec); err != nil {
		return nil, fmt.Errorf("decode args: %w", err)
	}

	return vec, nil
}

// saltBytes resolves the deploy salt: 32-byte hex is used verbatim, any
// other string is hashed, and an empty salt draws a random one.
func saltBytes(salt string) ([32]byte, error) {
	if salt == "" {
		var random [32]byte
		if _, err := rand.Read(random[:]); err != nil {
			return [32]byte{}, fmt.Errorf("generate salt: %w", err)
		}

		return random, nil
	}

	trimmed := strings.TrimPrefix(salt, "0x")
	if decoded, err := hex.DecodeString(trimmed); err == nil && len(decoded) == 32 {
		var fixed [32]byte
		copy(fixed[:], decoded)

		return fixed, nil
	}

	return sha256.Sum256([]byte(salt)), nil
}

func contractAddressFromReturn(value xdr.ScVal) (string, error) {
	if value.Type != xdr.ScValTypeScvAddress || value.Address == nil {
		return "", fmt.Errorf("deployment returned %s, expected an address", value.Type)
	}

	return ScAddressToString(*value.Address)
}
