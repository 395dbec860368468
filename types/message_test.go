package types

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_CommandID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		giveSourceChain string
		giveMessageID   string
		want            string
	}{
		{
			name:            "amplifier style message id",
			giveSourceChain: "avalanche",
			giveMessageID:   "0x7cedbb3799cd99636045c84c5c55aef8a138f107ac8ba53a08cad1070ba4385b-2",
			want:            "0x9ab5868253523be5ba6b90d603223788b94dea1b8d40456650c1c08a7f7fe40f",
		},
		{
			name:            "short message id",
			giveSourceChain: "ethereum",
			giveMessageID:   "tx1",
			want:            "0x1fd040fe8ad6a689ab8ba153c8f3e11781b9f33da19ce9b361d89df91fe83d99",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := CommandID(tt.giveSourceChain, tt.giveMessageID)

			assert.Equal(t, tt.want, common.Hash(got).Hex())
		})
	}
}

func Test_Message_CommandID(t *testing.T) {
	t.Parallel()

	msg := Message{
		SourceChain:        "ethereum",
		MessageID:          "tx1",
		SourceAddress:      "0x52444f1Dd86f6a4D8BcA1f9e2d1a9913f1Ff196D",
		DestinationAddress: "0x32c2a5E5057C86C74Ae3AF6A0d8A8d522ecb7B2e",
	}

	require.NoError(t, msg.Validate())
	assert.Equal(t, CommandID("ethereum", "tx1"), msg.CommandID())
}

func Test_Message_Validate(t *testing.T) {
	t.Parallel()

	err := Message{SourceChain: "ethereum"}.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "MessageID")
}
