package cosmwasm

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	sdktypes "github.com/cosmos/cosmos-sdk/types"
	sdkaddress "github.com/cosmos/cosmos-sdk/types/address"
	"github.com/cosmos/cosmos-sdk/types/bech32"

	"github.com/axelarnetwork/axelar-deployments/sdk"
	sdkerrors "github.com/axelarnetwork/axelar-deployments/sdk/errors"
)

// wasmd caps instantiate2 salts at 64 bytes.
const maxSaltLen = 64

var _ sdk.Deployer = (*Deployer)(nil)

// Deployer manages the CosmWasm code lifecycle: store, instantiate, migrate.
// Code is stored gzipped; the node unpacks it.
type Deployer struct {
	client *Client
}

// NewDeployer creates a Deployer submitting through client.
func NewDeployer(client *Client) *Deployer {
	return &Deployer{client: client}
}

// Upload stores wasm code on chain and returns the assigned code id.
func (d *Deployer) Upload(ctx context.Context, code []byte) (sdk.UploadResult, error) {
	msg, err := storeCodeMsg(d.client.address, code)
	if err != nil {
		return sdk.UploadResult{}, err
	}

	res, err := d.client.signAndBroadcast(ctx, msg)
	if err != nil {
		return sdk.UploadResult{}, err
	}

	codeID, ok := findEventAttribute(res.Events, wasmtypes.EventTypeStoreCode, wasmtypes.AttributeKeyCodeID)
	if !ok {
		return sdk.UploadResult{}, fmt.Errorf("no code id in transaction %s", res.Hash)
	}

	return sdk.UploadResult{TxHash: res.Hash, ID: codeID}, nil
}

// Deploy instantiates a contract from params.CodeID, storing params.Code
// first when it is set. A salt switches the deployment to instantiate2 with
// its predictable address.
func (d *Deployer) Deploy(ctx context.Context, params sdk.DeployParams) (sdk.DeployResult, error) {
	codeID := params.CodeID
	if len(params.Code) > 0 {
		uploaded, err := d.Upload(ctx, params.Code)
		if err != nil {
			return sdk.DeployResult{}, err
		}
		codeID, err = strconv.ParseUint(uploaded.ID, 10, 64)
		if err != nil {
			return sdk.DeployResult{}, fmt.Errorf("parse code id %q: %w", uploaded.ID, err)
		}
	}

	msg, err := instantiateMsg(d.client.prefix, d.client.address, codeID, params)
	if err != nil {
		return sdk.DeployResult{}, err
	}

	res, err := d.client.signAndBroadcast(ctx, msg)
	if err != nil {
		return sdk.DeployResult{}, err
	}

	address, ok := findEventAttribute(res.Events, wasmtypes.EventTypeInstantiate, wasmtypes.AttributeKeyContractAddr)
	if !ok {
		return sdk.DeployResult{}, fmt.Errorf("no contract address in transaction %s", res.Hash)
	}

	return sdk.DeployResult{
		TxHash:  res.Hash,
		Address: address,
		Objects: map[string]string{"code_id": strconv.FormatUint(codeID, 10)},
	}, nil
}

// Upgrade migrates a deployed contract to params.CodeID, storing
// params.NewCode first when it is set.
func (d *Deployer) Upgrade(ctx context.Context, params sdk.UpgradeParams) (sdk.TxResult, error) {
	codeID := params.CodeID
	if len(params.NewCode) > 0 {
		uploaded, err := d.Upload(ctx, params.NewCode)
		if err != nil {
			return sdk.TxResult{}, err
		}
		codeID, err = strconv.ParseUint(uploaded.ID, 10, 64)
		if err != nil {
			return sdk.TxResult{}, fmt.Errorf("parse code id %q: %w", uploaded.ID, err)
		}
	}

	msg, err := migrateMsg(d.client.prefix, d.client.address, codeID, params)
	if err != nil {
		return sdk.TxResult{}, err
	}

	res, err := d.client.signAndBroadcast(ctx, msg)
	if err != nil {
		return sdk.TxResult{}, err
	}

	return sdk.TxResult{Hash: res.Hash}, nil
}

func storeCodeMsg(sender string, code []byte) (*wasmtypes.MsgStoreCode, error) {
	if len(code) == 0 {
		return nil, errors.New("wasm code cannot be empty")
	}

	gz, err := gzipWasm(code)
	if err != nil {
		return nil, err
	}

	return &wasmtypes.MsgStoreCode{Sender: sender, WASMByteCode: gz}, nil
}

func instantiateMsg(prefix, sender string, codeID uint64, params sdk.DeployParams) (sdktypes.Msg, error) {
	if codeID == 0 {
		return nil, errors.New("code id is required")
	}
	if params.Label == "" {
		return nil, errors.New("label cannot be empty")
	}
	if params.Admin != "" {
		if err := validateAddress(prefix, params.Admin); err != nil {
			return nil, err
		}
	}
	initMsg, err := contractMessage(params.InitArgs)
	if err != nil {
		return nil, err
	}

	if params.Salt == "" {
		return &wasmtypes.MsgInstantiateContract{
			Sender: sender,
			Admin:  params.Admin,
			CodeID: codeID,
			Label:  params.Label,
			Msg:    initMsg,
		}, nil
	}

	salt, err := parseSalt(params.Salt)
	if err != nil {
		return nil, err
	}

	return &wasmtypes.MsgInstantiateContract2{
		Sender: sender,
		Admin:  params.Admin,
		CodeID: codeID,
		Label:  params.Label,
		Msg:    initMsg,
		Salt:   salt,
		FixMsg: false,
	}, nil
}

func migrateMsg(prefix, sender string, codeID uint64, params sdk.UpgradeParams) (*wasmtypes.MsgMigrateContract, error) {
	if err := validateAddress(prefix, params.Address); err != nil {
		return nil, err
	}
	if codeID == 0 {
		return nil, errors.New("code id is required")
	}
	migrateArgs, err := contractMessage(params.MigrateArgs)
	if err != nil {
		return nil, err
	}

	return &wasmtypes.MsgMigrateContract{
		Sender:   sender,
		Contract: params.Address,
		CodeID:   codeID,
		Msg:      migrateArgs,
	}, nil
}

// parseSalt reads the salt bytes: hex when 0x-prefixed, the raw string
// otherwise.
func parseSalt(salt string) ([]byte, error) {
	payload := []byte(salt)
	if strings.HasPrefix(salt, "0x") {
		decoded, err := hex.DecodeString(salt[2:])
		if err != nil {
			return nil, fmt.Errorf("parse salt: %w", err)
		}
		payload = decoded
	}
	if len(payload) == 0 || len(payload) > maxSaltLen {
		return nil, fmt.Errorf("salt must be 1 to %d bytes, got %d", maxSaltLen, len(payload))
	}

	return payload, nil
}

// gzipWasm compresses code for the store message, passing through input that
// already carries the gzip magic.
func gzipWasm(code []byte) ([]byte, error) {
	if len(code) >= 2 && code[0] == 0x1f && code[1] == 0x8b {
		return code, nil
	}

	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("compress wasm: %w", err)
	}
	if _, err := zw.Write(code); err != nil {
		return nil, fmt.Errorf("compress wasm: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compress wasm: %w", err)
	}

	return buf.Bytes(), nil
}

// PredictAddress computes the contract address MsgInstantiateContract2 will
// assign, before anything is submitted. checksum is the sha256 of the
// uncompressed wasm code. initMsg participates only when fixMsg is set,
// matching the FixMsg flag on the message.
func PredictAddress(prefix string, checksum []byte, creator string, salt, initMsg []byte, fixMsg bool) (string, error) {
	if len(checksum) != sha256.Size {
		return "", fmt.Errorf("checksum must be %d bytes, got %d", sha256.Size, len(checksum))
	}
	hrp, creatorBytes, err := bech32.DecodeAndConvert(creator)
	if err != nil || hrp != prefix {
		return "", sdkerrors.NewInvalidAddressError(creator)
	}
	if len(salt) == 0 || len(salt) > maxSaltLen {
		return "", fmt.Errorf("salt must be 1 to %d bytes, got %d", maxSaltLen, len(salt))
	}
	if !fixMsg {
		initMsg = nil
	}

	var key []byte
	for _, field := range [][]byte{checksum, creatorBytes, salt, initMsg} {
		key = binary.BigEndian.AppendUint64(key, uint64(len(field)))
		key = append(key, field...)
	}

	contract := sdkaddress.Module(wasmtypes.ModuleName, key)[:wasmtypes.ContractAddrLen]

	return bech32.ConvertAndEncode(prefix, contract)
}
