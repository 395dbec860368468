package solana

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func appendU256(data []byte, v uint64) []byte {
	data = binary.LittleEndian.AppendUint64(data, v)

	return append(data, make([]byte, 24)...)
}

func Test_u256_Uint64(t *testing.T) {
	t.Parallel()

	got, err := u256FromUint64(5).Uint64()
	require.NoError(t, err)
	require.Equal(t, uint64(5), got)

	got, err = u256FromUint64(math.MaxUint64).Uint64()
	require.NoError(t, err)
	require.Equal(t, uint64(math.MaxUint64), got)

	var overflowing u256
	overflowing[8] = 1
	_, err = overflowing.Uint64()
	require.EqualError(t, err, "value does not fit in uint64")
}

func Test_decodeGatewayConfig(t *testing.T) {
	t.Parallel()

	domain := filled32(0x33)

	data := accountDiscriminator("GatewayConfig")
	data = appendU256(data, 3)
	data = appendU256(data, 16)
	data = binary.LittleEndian.AppendUint64(data, 3600)
	data = binary.LittleEndian.AppendUint64(data, 1_700_000_000)
	data = append(data, testOperator.Bytes()...)
	data = append(data, domain[:]...)
	data = append(data, 253)

	config, err := decodeGatewayConfig(data)
	require.NoError(t, err)

	epoch, err := config.CurrentEpoch.Uint64()
	require.NoError(t, err)
	require.Equal(t, uint64(3), epoch)

	retention, err := config.PreviousVerifierRetention.Uint64()
	require.NoError(t, err)
	require.Equal(t, uint64(16), retention)

	require.Equal(t, uint64(3600), config.MinimumRotationDelay)
	require.Equal(t, uint64(1_700_000_000), config.LastRotationTimestamp)
	require.Equal(t, testOperator, config.Operator)
	require.Equal(t, domain, [32]byte(config.DomainSeparator))
	require.Equal(t, uint8(253), config.Bump)
}

func Test_decodeGatewayConfig_invalid(t *testing.T) {
	t.Parallel()

	_, err := decodeGatewayConfig(accountDiscriminator("VerifierSetTracker"))
	require.EqualError(t, err, "account discriminator mismatch for GatewayConfig")

	_, err = decodeGatewayConfig(append(accountDiscriminator("GatewayConfig"), 0x01, 0x02))
	require.ErrorContains(t, err, "decode gateway config")
}

func Test_decodeVerifierSetTracker(t *testing.T) {
	t.Parallel()

	hash := filled32(0x11)

	data := accountDiscriminator("VerifierSetTracker")
	data = appendU256(data, 7)
	data = append(data, hash[:]...)
	data = append(data, 251)

	tracker, err := decodeVerifierSetTracker(data)
	require.NoError(t, err)

	epoch, err := tracker.Epoch.Uint64()
	require.NoError(t, err)
	require.Equal(t, uint64(7), epoch)

	require.Equal(t, hash, [32]byte(tracker.VerifierSetHash))
	require.Equal(t, uint8(251), tracker.Bump)
}

func Test_decodeTokenManager(t *testing.T) {
	t.Parallel()

	withLimit := append([]byte{}, testOperator.Bytes()...)
	withLimit = append(withLimit, 2, 0x01)
	withLimit = binary.LittleEndian.AppendUint64(withLimit, 1000)

	manager, err := decodeTokenManager(withLimit)
	require.NoError(t, err)
	require.Equal(t, testOperator, manager.TokenAddress)
	require.Equal(t, uint8(2), manager.Type)
	require.NotNil(t, manager.FlowSlot.FlowLimit)
	require.Equal(t, uint64(1000), *manager.FlowSlot.FlowLimit)

	noLimit := append([]byte{}, testOperator.Bytes()...)
	noLimit = append(noLimit, 4, 0x00)

	manager, err = decodeTokenManager(noLimit)
	require.NoError(t, err)
	require.Equal(t, uint8(4), manager.Type)
	require.Nil(t, manager.FlowSlot.FlowLimit)

	_, err = decodeTokenManager([]byte{0x01})
	require.ErrorContains(t, err, "decode token manager")
}
