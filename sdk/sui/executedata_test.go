package sui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	sdkerrors "github.com/axelarnetwork/axelar-deployments/sdk/errors"
)

func appendULEB(dst []byte, v uint32) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v&0x7f)|0x80)
		v >>= 7
	}

	return append(dst, byte(v))
}

// bcsByteVectors encodes each slice as a BCS vector<u8> and concatenates
// them, matching the prover's execute data layout.
func bcsByteVectors(vectors ...[]byte) []byte {
	var out []byte
	for _, v := range vectors {
		out = appendULEB(out, uint32(len(v)))
		out = append(out, v...)
	}

	return out
}

func Test_decodeExecuteData(t *testing.T) {
	t.Parallel()

	payload := bytes.Repeat([]byte{0x11}, 40)
	proof := bytes.Repeat([]byte{0x22}, 70)

	decoded, err := decodeExecuteData(bcsByteVectors(payload, proof))
	require.NoError(t, err)
	require.Equal(t, payload, decoded.Payload)
	require.Equal(t, proof, decoded.Proof)
}

func Test_decodeExecuteData_longVectors(t *testing.T) {
	t.Parallel()

	// 200 bytes forces a two-byte uleb128 length prefix.
	payload := bytes.Repeat([]byte{0x33}, 200)
	proof := bytes.Repeat([]byte{0x44}, 130)

	decoded, err := decodeExecuteData(bcsByteVectors(payload, proof))
	require.NoError(t, err)
	require.Equal(t, payload, decoded.Payload)
	require.Equal(t, proof, decoded.Proof)
}

func Test_decodeExecuteData_invalid(t *testing.T) {
	t.Parallel()

	valid := bcsByteVectors(bytes.Repeat([]byte{0x11}, 40), bytes.Repeat([]byte{0x22}, 70))

	t.Run("trailing bytes", func(t *testing.T) {
		t.Parallel()

		_, err := decodeExecuteData(append(append([]byte{}, valid...), 0x00))
		require.EqualError(t, err, "invalid execute data: 1 trailing bytes")
	})

	t.Run("truncated", func(t *testing.T) {
		t.Parallel()

		var decodeErr *sdkerrors.InvalidExecuteDataError
		_, err := decodeExecuteData(valid[:len(valid)-5])
		require.ErrorAs(t, err, &decodeErr)
	})

	t.Run("empty payload vector", func(t *testing.T) {
		t.Parallel()

		_, err := decodeExecuteData(bcsByteVectors(nil, bytes.Repeat([]byte{0x22}, 70)))
		require.EqualError(t, err, "invalid execute data: empty payload")
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		_, err := decodeExecuteData(nil)
		require.EqualError(t, err, "invalid execute data: empty payload")
	})
}
