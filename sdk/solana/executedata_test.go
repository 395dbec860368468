package solana

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

// Borsh-encoded ExecuteData payloads as produced by the multisig prover: a
// two-signer verifier set approving one message, and the same set signing a
// rotation to a new verifier set root.
const messagesExecuteDataHex = "" +
	"111111111111111111111111111111111111111111111111111111111111111102000000" +
	"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa" +
	"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa07000000000000" +
	"000a00000000000000000000000000000002bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb" +
	"bbbbbbbbbbbbbbbbbbbbbbbbbbbb05000000000000000000000000000000000002003333" +
	"33333333333333333333333333333333333333333333333333333333333320000000cccc" +
	"ccccccccccccccccccccccccccccccccccccccccccccccccccccccccccccabababababab" +
	"abababababababababababababababababababababababababababababababababababab" +
	"ababababababababababababababababababababababab07000000000000000a00000000" +
	"000000000000000000000003bdbdbdbdbdbdbdbdbdbdbdbdbdbdbdbdbdbdbdbdbdbdbdbd" +
	"bdbdbdbdbdbdbdbd05000000000000000000000000000000010002003333333333333333" +
	"333333333333333333333333333333333333333333333333000000002222222222222222" +
	"222222222222222222222222222222222222222222222222010100000008000000657468" +
	"657265756d0d000000307836636f6e7374616e742d332a00000030783931343963666136" +
	"663834616430646432623163613166326263363666383861396666316530663306000000" +
	"736f6c616e612c0000003454556e764a685a62684a616176626d5957746a597035586b55" +
	"616b37776e4b6f6d6f36794b695845734c35444444444444444444444444444444444444" +
	"444444444444444444444444444400000100333333333333333333333333333333333333" +
	"333333333333333333333333333300000000"

const rotationExecuteDataHex = "" +
	"111111111111111111111111111111111111111111111111111111111111111101000000" +
	"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa" +
	"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa07000000000000" +
	"000a00000000000000000000000000000002bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb" +
	"bbbbbbbbbbbbbbbbbbbbbbbbbbbb05000000000000000000000000000000000002003333" +
	"33333333333333333333333333333333333333333333333333333333333320000000cccc" +
	"cccccccccccccccccccccccccccccccccccccccccccccccccccccccccccc222222222222" +
	"222222222222222222222222222222222222222222222222222200555555555555555555" +
	"5555555555555555555555555555555555555555555555"

func executeDataFixture(t *testing.T, hexData string) []byte {
	t.Helper()

	data, err := hex.DecodeString(hexData)
	require.NoError(t, err)

	return data
}

func Test_decodeExecuteData_messages(t *testing.T) {
	t.Parallel()

	decoded, err := decodeExecuteData(executeDataFixture(t, messagesExecuteDataHex))
	require.NoError(t, err)

	require.Equal(t, filled32(0x11), decoded.SigningVerifierSetMerkleRoot)
	require.Equal(t, filled32(0x22), decoded.PayloadMerkleRoot)

	require.Len(t, decoded.SigningVerifierSetLeaves, 2)

	first := decoded.SigningVerifierSetLeaves[0]
	require.Equal(t, bytes.Repeat([]byte{0xAA}, 65), first.Signature[:])
	require.Equal(t, uint64(7), first.Leaf.Nonce)
	require.EqualValues(t, 10, first.Leaf.Quorum.Lo)
	require.Zero(t, first.Leaf.Quorum.Hi)
	require.Equal(t, byte(0x02), first.Leaf.SignerPubkey[0])
	require.Equal(t, filled32(0xBB), [32]byte(first.Leaf.SignerPubkey[1:]))
	require.EqualValues(t, 5, first.Leaf.SignerWeight.Lo)
	require.Equal(t, uint16(0), first.Leaf.Position)
	require.Equal(t, uint16(2), first.Leaf.SetSize)
	require.Equal(t, filled32(0x33), first.Leaf.DomainSeparator)
	require.Equal(t, bytes.Repeat([]byte{0xCC}, 32), first.MerkleProof)

	second := decoded.SigningVerifierSetLeaves[1]
	require.Equal(t, bytes.Repeat([]byte{0xAB}, 65), second.Signature[:])
	require.Equal(t, byte(0x03), second.Leaf.SignerPubkey[0])
	require.Equal(t, uint16(1), second.Leaf.Position)
	require.Empty(t, second.MerkleProof)

	require.Nil(t, decoded.PayloadItems.Rotation)
	require.Len(t, decoded.PayloadItems.Messages, 1)

	message := decoded.PayloadItems.Messages[0]
	require.Equal(t, "ethereum", message.Leaf.Message.CCID.Chain)
	require.Equal(t, "0x6constant-3", message.Leaf.Message.CCID.ID)
	require.Equal(t, "0x9149cfa6f84ad0dd2b1ca1f2bc66f88a9ff1e0f3", message.Leaf.Message.SourceAddress)
	require.Equal(t, "solana", message.Leaf.Message.DestinationChain)
	require.Equal(t, "4TUnvJhZbhJaavbmYWtjYp5XkUak7wnKomo6yKiXEsL5", message.Leaf.Message.DestinationAddress)
	require.Equal(t, filled32(0x44), message.Leaf.Message.PayloadHash)
	require.Equal(t, uint16(0), message.Leaf.Position)
	require.Equal(t, uint16(1), message.Leaf.SetSize)
	require.Equal(t, filled32(0x33), message.Leaf.DomainSeparator)
	require.Empty(t, message.Proof)
}

func Test_decodeExecuteData_rotation(t *testing.T) {
	t.Parallel()

	decoded, err := decodeExecuteData(executeDataFixture(t, rotationExecuteDataHex))
	require.NoError(t, err)

	require.Equal(t, filled32(0x11), decoded.SigningVerifierSetMerkleRoot)
	require.Equal(t, filled32(0x22), decoded.PayloadMerkleRoot)
	require.Len(t, decoded.SigningVerifierSetLeaves, 1)

	require.Nil(t, decoded.PayloadItems.Messages)
	require.NotNil(t, decoded.PayloadItems.Rotation)
	require.Equal(t, filled32(0x55), decoded.PayloadItems.Rotation.NewVerifierSetMerkleRoot)
}

func Test_decodeExecuteData_invalid(t *testing.T) {
	t.Parallel()

	valid := executeDataFixture(t, rotationExecuteDataHex)

	unknownVariant := append([]byte{}, valid...)
	unknownVariant[len(unknownVariant)-33] = 0x02

	tests := []struct {
		name    string
		give    []byte
		wantErr string
	}{
		{
			name:    "trailing bytes",
			give:    append(append([]byte{}, valid...), 0x00),
			wantErr: "invalid execute data: 1 trailing bytes",
		},
		{
			name:    "unknown payload variant",
			give:    unknownVariant,
			wantErr: "unknown payload variant 2",
		},
		{
			name:    "truncated",
			give:    valid[:40],
			wantErr: "invalid execute data",
		},
		{
			name:    "empty",
			give:    nil,
			wantErr: "invalid execute data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := decodeExecuteData(tt.give)

			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}
