package evm

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdkerrors "github.com/axelarnetwork/axelar-deployments/sdk/errors"
)

func Test_SaltHash(t *testing.T) {
	t.Parallel()

	got := SaltHash("AxelarGateway v6.2")
	assert.Equal(t,
		"0x31e4d1da6a931b555942db223bd1ce43cfa183c4ccf39f2001ee2366e84093f8",
		hexutil.Encode(got[:]))
}

func Test_PredictCreate2Address(t *testing.T) {
	t.Parallel()

	deployer := common.HexToAddress("0x98B2920D53612483F91F12Ed7754E51b4A77919e")
	sender := common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	bytecode := hexutil.MustDecode("0x608060405234801561001057600080fd5b50")

	got := PredictCreate2Address(deployer, sender, bytecode, SaltHash("test"))
	assert.Equal(t, common.HexToAddress("0xa3d64f1372c0f85dc917f8c2c2ebc91d738fae2c"), got)
}

func Test_ParseAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    string
		want    common.Address
		wantErr string
	}{
		{
			name: "success",
			give: "0x4F4495243837681061C4743b74B3eEdf548D56A5",
			want: common.HexToAddress("0x4F4495243837681061C4743b74B3eEdf548D56A5"),
		},
		{
			name: "success without prefix",
			give: "4F4495243837681061C4743b74B3eEdf548D56A5",
			want: common.HexToAddress("0x4F4495243837681061C4743b74B3eEdf548D56A5"),
		},
		{
			name:    "failure too short",
			give:    "0x4F44952438",
			wantErr: "invalid address: 0x4F44952438",
		},
		{
			name:    "failure not hex",
			give:    "GDWMKPNO2PCOYKJWJYPFRZEG2VZBNE2XGTL3SEGHYSGKTSZGUTIVKXGV",
			wantErr: "invalid address: GDWMKPNO2PCOYKJWJYPFRZEG2VZBNE2XGTL3SEGHYSGKTSZGUTIVKXGV",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseAddress(tt.give)

			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				var invalidErr *sdkerrors.InvalidAddressError
				require.ErrorAs(t, err, &invalidErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func Test_DecodeBytecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    string
		want    []byte
		wantErr bool
	}{
		{
			name: "success with prefix",
			give: "0x6080604052",
			want: []byte{0x60, 0x80, 0x60, 0x40, 0x52},
		},
		{
			name: "success without prefix",
			give: "6080604052",
			want: []byte{0x60, 0x80, 0x60, 0x40, 0x52},
		},
		{
			name: "success with surrounding whitespace",
			give: "  0x6080604052\n",
			want: []byte{0x60, 0x80, 0x60, 0x40, 0x52},
		},
		{
			name:    "failure not hex",
			give:    "0xnotbytecode",
			wantErr: true,
		},
		{
			name:    "failure odd length",
			give:    "0x608",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := DecodeBytecode(tt.give)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func Test_checkSelector(t *testing.T) {
	t.Parallel()

	approveID := gatewayABI.Methods["approveMessages"].ID

	tests := []struct {
		name    string
		give    []byte
		want    []byte
		wantErr string
	}{
		{
			name: "success",
			give: append(append([]byte{}, approveID...), 0xde, 0xad),
			want: approveID,
		},
		{
			name:    "failure too short",
			give:    []byte{0x64, 0xf1},
			want:    approveID,
			wantErr: "invalid execute data: calldata shorter than a function selector",
		},
		{
			name:    "failure wrong selector",
			give:    []byte{0xde, 0xad, 0xbe, 0xef},
			want:    approveID,
			wantErr: "invalid execute data: unexpected selector 0xdeadbeef",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := checkSelector(tt.give, tt.want)

			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
