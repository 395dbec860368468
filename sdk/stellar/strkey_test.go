package stellar

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_IsValidAccountAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		give string
		want bool
	}{
		{
			name: "account",
			give: testAccountAddress,
			want: true,
		},
		{
			name: "well known account",
			give: "GA7QYNF7SOWQ3GLR2BGMZEHXAVIRZA4KVWLTJJFC7MGXUA74P7UJVSGZ",
			want: true,
		},
		{
			name: "contract",
			give: testContractAddress,
			want: false,
		},
		{
			name: "corrupted checksum",
			give: "GAAACAQDAQCQMBYIBEFAWDANBYHRAEISCMKBKFQXDAMRUGY4DUPB7JZA",
			want: false,
		},
		{
			name: "empty",
			give: "",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tt.want, IsValidAccountAddress(tt.give))
		})
	}
}

func Test_IsValidContractAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		give string
		want bool
	}{
		{
			name: "contract",
			give: testContractAddress,
			want: true,
		},
		{
			name: "account",
			give: testAccountAddress,
			want: false,
		},
		{
			name: "truncated",
			give: testContractAddress[:55],
			want: false,
		},
		{
			name: "empty",
			give: "",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tt.want, IsValidContractAddress(tt.give))
		})
	}
}

func Test_ValidateAddress(t *testing.T) {
	t.Parallel()

	require.NoError(t, ValidateAddress(testAccountAddress))
	require.NoError(t, ValidateAddress(testContractAddress))

	err := ValidateAddress("not-a-strkey")
	require.EqualError(t, err, "invalid address: not-a-strkey")
}
