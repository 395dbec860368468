package stellar

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// tryDecodeHex decodes an optionally 0x-prefixed hex string, reporting
// whether the input was valid hex.
func tryDecodeHex(s string) ([]byte, bool) {
	trimmed := strings.TrimPrefix(s, "0x")
	if trimmed == "" || len(trimmed)%2 != 0 {
		return nil, false
	}

	decoded, err := hex.DecodeString(trimmed)
	if err != nil {
		return nil, false
	}

	return decoded, true
}

// messageID formats an axelar message id from a transaction hash and event
// index.
func messageID(txHash string, logIndex uint64) string {
	if !strings.HasPrefix(txHash, "0x") {
		txHash = "0x" + txHash
	}

	return fmt.Sprintf("%s-%d", txHash, logIndex)
}
