package evm

import (
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Selectors pin the embedded ABI fragments to the deployed amplifier
// contracts; a drift in tuple layout changes the four bytes.
func Test_GatewayABI_Selectors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		method string
		want   string
	}{
		{method: "approveMessages", want: "0x64f1d85a"},
		{method: "rotateSigners", want: "0x1d92c0bf"},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			t.Parallel()

			method, ok := gatewayABI.Methods[tt.method]
			require.True(t, ok)
			assert.Equal(t, tt.want, hexutil.Encode(method.ID))
		})
	}
}

func Test_GasServiceABI_Selectors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		method string
		want   string
	}{
		{method: "payNativeGasForContractCall", want: "0x0c93e3bb"},
		{method: "addNativeGas", want: "0xcd433ada"},
		{method: "collectFees", want: "0x1055eaaf"},
		{method: "refund", want: "0x36504721"},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			t.Parallel()

			method, ok := gasServiceABI.Methods[tt.method]
			require.True(t, ok)
			assert.Equal(t, tt.want, hexutil.Encode(method.ID))
		})
	}
}

func Test_ContractABIs_Parse(t *testing.T) {
	t.Parallel()

	for name, parsed := range map[string]map[string]struct{}{
		"gateway": methodSet(t, gatewayABIJSON,
			"approveMessages", "rotateSigners", "callContract", "transferOperatorship",
			"operator", "epoch", "signerHashByEpoch", "domainSeparator",
			"isMessageApproved", "isMessageExecuted"),
		"its": methodSet(t, itsABIJSON,
			"setTrustedChain", "removeTrustedChain", "isTrustedChain", "interchainTransfer",
			"interchainTokenId", "registerTokenMetadata", "registerCustomToken", "linkToken",
			"setFlowLimits", "setPauseStatus"),
		"its factory": methodSet(t, itsFactoryABIJSON,
			"deployInterchainToken", "deployRemoteInterchainToken",
			"registerCanonicalInterchainToken", "deployRemoteCanonicalInterchainToken"),
		"gas service": methodSet(t, gasServiceABIJSON,
			"payNativeGasForContractCall", "addNativeGas", "collectFees", "refund"),
		"operators":   methodSet(t, operatorsABIJSON, "isOperator", "addOperator", "removeOperator"),
		"create2":     methodSet(t, create2DeployerABIJSON, "deploy", "deployAndInit", "deployedAddress"),
		"create3":     methodSet(t, create3DeployerABIJSON, "deploy", "deployedAddress"),
		"ownable": methodSet(t, ownableABIJSON,
			"owner", "operator", "transferOwnership", "proposeOwnership", "acceptOwnership",
			"upgrade", "implementation"),
	} {
		assert.NotEmpty(t, parsed, name)
	}
}

// methodSet parses raw ABI JSON and asserts each named method is present.
func methodSet(t *testing.T, raw string, methods ...string) map[string]struct{} {
	t.Helper()

	parsed := mustParseABI(raw)

	set := make(map[string]struct{}, len(methods))
	for _, m := range methods {
		_, ok := parsed.Methods[m]
		require.True(t, ok, "method %s missing", m)
		set[m] = struct{}{}
	}

	return set
}
