package idl

import (
	"crypto/ed25519"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountAddress_Ref(t *testing.T) {
	// Reference addresses computed with the Solana SDK's
	// find_program_address + create_with_seed("anchor:idl") pair.
	references := []struct {
		programID string
		expected  string
	}{
		{
			programID: "JUP6LkbZbjS1jKKwapdHNy74zcZ3tLUZoi5QNyVTaV4",
			expected:  "C88XWfp26heEmDkmfSzeXP7Fd7GQJ2j9dDTUsyiZbUTa",
		},
		{
			programID: "whirLbMiicVdio4qvUfM5KAg6Ct8VwpYzGff3uctyCc",
			expected:  "2KFqE4RWoPVbvodo8vbggCFeHPS8TDvgpwp79ALMrcyn",
		},
		{
			programID: "BPFLoader1111111111111111111111111111111111",
			expected:  "FmAiUJBen3h8Wt8RmQiHYAfAxPsgCcD7QKQywUH3ZK8J",
		},
	}

	for _, r := range references {
		program, err := base58.Decode(r.programID)
		require.NoError(t, err)

		actual, err := AccountAddress(program)
		require.NoError(t, err)
		assert.Equal(t, r.expected, base58.Encode(actual))
	}
}

func TestAccountAddress_Deterministic(t *testing.T) {
	program, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	first, err := AccountAddress(program)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := AccountAddress(program)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestAccountAddress_InvalidProgramID(t *testing.T) {
	for _, length := range []int{0, 16, 31, 33, 64} {
		_, err := AccountAddress(make([]byte, length))
		assert.ErrorIs(t, err, ErrInvalidProgramID, "length %d", length)
	}
}
