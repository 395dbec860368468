package solana

import (
	"bytes"
	"crypto/ed25519"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func Test_NewClient(t *testing.T) {
	t.Parallel()

	key := solana.PrivateKey(ed25519.NewKeyFromSeed(bytes.Repeat([]byte{0x01}, 32)))

	client, err := NewClient("http://localhost:8899", key.String())
	require.NoError(t, err)

	require.Equal(t, key.PublicKey(), client.Payer())
	require.Equal(t, uint32(defaultComputeUnits), client.computeUnits)
	require.Equal(t, uint64(defaultPriorityFee), client.priorityFee)

	_, err = NewClient("http://localhost:8899", "not-a-key")
	require.ErrorContains(t, err, "parse payer key")
}

func Test_parseAddress(t *testing.T) {
	t.Parallel()

	got, err := parseAddress(testGateway.String())
	require.NoError(t, err)
	require.Equal(t, testGateway, got)

	_, err = parseAddress("0x9149cfa6f84ad0dd2b1ca1f2bc66f88a9ff1e0f3")
	require.EqualError(t, err, "invalid address: 0x9149cfa6f84ad0dd2b1ca1f2bc66f88a9ff1e0f3")
}
