package sui

import (
	"fmt"

	"github.com/aptos-labs/aptos-go-sdk/bcs"

	sdkerrors "github.com/axelarnetwork/axelar-deployments/sdk/errors"
)

// executeData is the multisig prover's output for Sui: the BCS-encoded
// message batch or verifier set, and the BCS-encoded proof over it. The
// gateway entry functions take the two vectors as-is, so neither is decoded
// further here.
type executeData struct {
	Payload []byte
	Proof   []byte
}

func decodeExecuteData(data []byte) (executeData, error) {
	if len(data) == 0 {
		return executeData{}, sdkerrors.NewInvalidExecuteDataError("empty payload")
	}

	deserializer := bcs.NewDeserializer(data)
	payload := deserializer.ReadBytes()
	proof := deserializer.ReadBytes()
	if err := deserializer.Error(); err != nil {
		return executeData{}, sdkerrors.NewInvalidExecuteDataError(err.Error())
	}
	if remaining := deserializer.Remaining(); remaining > 0 {
		return executeData{}, sdkerrors.NewInvalidExecuteDataError(fmt.Sprintf("%d trailing bytes", remaining))
	}
	if len(payload) == 0 {
		return executeData{}, sdkerrors.NewInvalidExecuteDataError("empty payload")
	}

	return executeData{Payload: payload, Proof: proof}, nil
}
