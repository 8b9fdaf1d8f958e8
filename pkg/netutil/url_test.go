package netutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateHttpUrl(t *testing.T) {
	for _, valid := range []string{
		"https://api.mainnet-beta.solana.com",
		"http://localhost:8899",
		"https://example.com/path?query=1",
	} {
		assert.NoError(t, ValidateHttpUrl(valid, false), valid)
	}

	for _, invalid := range []string{
		"",
		"api.mainnet-beta.solana.com",
		"ftp://example.com",
		"https://",
	} {
		assert.Error(t, ValidateHttpUrl(invalid, false), invalid)
	}

	assert.NoError(t, ValidateHttpUrl("https://example.com", true))
	assert.Error(t, ValidateHttpUrl("http://example.com", true))
}

func TestRewriteGitHubBlobUrl(t *testing.T) {
	assert.Equal(
		t,
		"https://raw.githubusercontent.com/coral-xyz/anchor/master/idl.json",
		RewriteGitHubBlobUrl("https://github.com/coral-xyz/anchor/blob/master/idl.json"),
	)

	for _, unchanged := range []string{
		"https://raw.githubusercontent.com/coral-xyz/anchor/master/idl.json",
		"https://example.com/idl.json",
		"https://github.com/coral-xyz/anchor/releases/idl.json",
	} {
		assert.Equal(t, unchanged, RewriteGitHubBlobUrl(unchanged))
	}
}
