package solana

import (
	"crypto/sha256"
	"fmt"

	bin "github.com/gagliardetto/binary"
)

// The programs are anchor-based: instruction data starts with an 8-byte
// discriminator, sha256("global:<method>") truncated, followed by the
// borsh-encoded arguments. Accounts use sha256("account:<Name>").

func instructionDiscriminator(method string) []byte {
	sum := sha256.Sum256([]byte("global:" + method))

	return sum[:8]
}

func accountDiscriminator(name string) []byte {
	sum := sha256.Sum256([]byte("account:" + name))

	return sum[:8]
}

// instructionData encodes an anchor instruction: discriminator plus
// borsh-encoded args. A nil args encodes the discriminator alone.
func instructionData(method string, args any) ([]byte, error) {
	data := instructionDiscriminator(method)
	if args == nil {
		return data, nil
	}

	encoded, err := bin.MarshalBorsh(args)
	if err != nil {
		return nil, fmt.Errorf("encode %s args: %w", method, err)
	}

	return append(data, encoded...), nil
}
