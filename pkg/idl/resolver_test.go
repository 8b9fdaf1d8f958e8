package idl

import (
	"bytes"
	"compress/zlib"
	"context"
	"crypto/ed25519"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/periscope/pkg/solana"
)

type stubSolanaClient struct {
	accounts map[string]solana.AccountInfo
}

func (c *stubSolanaClient) GetAccountInfo(account ed25519.PublicKey, _ solana.Commitment) (solana.AccountInfo, error) {
	info, ok := c.accounts[string(account)]
	if !ok {
		return solana.AccountInfo{}, solana.ErrNoAccountInfo
	}
	return info, nil
}

func (c *stubSolanaClient) GetBalance(ed25519.PublicKey) (uint64, error) {
	return 0, nil
}

func (c *stubSolanaClient) GetMinimumBalanceForRentExemption(uint64) (uint64, error) {
	return 0, nil
}

func (c *stubSolanaClient) GetSlot(solana.Commitment) (uint64, error) {
	return 0, nil
}

func compressDoc(t *testing.T, doc string) []byte {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	_, err := w.Write([]byte(doc))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func idlAccountData(t *testing.T, doc string) []byte {
	authority, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	envelope := &Envelope{
		Discriminator: []byte{0x18, 0x46, 0x62, 0xbf, 0x3a, 0x90, 0x7b, 0x9e},
		Authority:     authority,
		Data:          compressDoc(t, doc),
	}
	return envelope.Marshal()
}

func TestResolver_OnChain(t *testing.T) {
	program, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	address, err := AccountAddress(program)
	require.NoError(t, err)

	client := &stubSolanaClient{
		accounts: map[string]solana.AccountInfo{
			string(address): {Data: idlAccountData(t, currentDoc)},
		},
	}

	doc, err := NewResolver(client).Resolve(context.Background(), OnChainSource{Program: program})
	require.NoError(t, err)
	assert.Equal(t, "jupiter", doc.Metadata.Name)
	assert.Len(t, doc.Instructions, 1)
}

func TestResolver_OnChain_NotFound(t *testing.T) {
	program, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	client := &stubSolanaClient{accounts: map[string]solana.AccountInfo{}}

	_, err = NewResolver(client).Resolve(context.Background(), OnChainSource{Program: program})
	assert.ErrorIs(t, err, ErrIdlNotFound)
}

func TestResolver_OnChain_NoPlainFallback(t *testing.T) {
	program, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	address, err := AccountAddress(program)
	require.NoError(t, err)

	// A well-formed envelope whose payload is plain (uncompressed) JSON. On
	// the chain path this is corruption, never a document.
	authority, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	envelope := &Envelope{
		Discriminator: make([]byte, DiscriminatorSize),
		Authority:     authority,
		Data:          []byte(currentDoc),
	}

	client := &stubSolanaClient{
		accounts: map[string]solana.AccountInfo{
			string(address): {Data: envelope.Marshal()},
		},
	}

	_, err = NewResolver(client).Resolve(context.Background(), OnChainSource{Program: program})
	assert.ErrorIs(t, err, ErrCorruptPayload)
}

func TestResolver_File(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "plain.json")
	require.NoError(t, os.WriteFile(plain, []byte(legacyDoc), 0o644))

	compressed := filepath.Join(dir, "compressed.bin")
	require.NoError(t, os.WriteFile(compressed, compressDoc(t, legacyDoc), 0o644))

	resolver := NewResolver(&stubSolanaClient{})

	for _, path := range []string{plain, compressed} {
		doc, err := resolver.Resolve(context.Background(), FileSource{Path: path})
		require.NoError(t, err, path)
		assert.Equal(t, "staking", doc.Metadata.Name)
		assert.Equal(t, SpecLegacy, doc.Metadata.Spec)
	}
}

func TestResolver_File_Missing(t *testing.T) {
	resolver := NewResolver(&stubSolanaClient{})

	_, err := resolver.Resolve(context.Background(), FileSource{Path: filepath.Join(t.TempDir(), "nope.json")})
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestResolver_Url(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/plain.json":
			_, _ = w.Write([]byte(currentDoc))
		case "/compressed.bin":
			_, _ = w.Write(compressDoc(t, currentDoc))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	resolver := NewResolverWithHTTPClient(&stubSolanaClient{}, server.Client())

	for _, path := range []string{"/plain.json", "/compressed.bin"} {
		doc, err := resolver.Resolve(context.Background(), UrlSource{Url: server.URL + path})
		require.NoError(t, err, path)
		assert.Equal(t, "jupiter", doc.Metadata.Name)
	}

	_, err := resolver.Resolve(context.Background(), UrlSource{Url: server.URL + "/missing.json"})
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestResolver_Url_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	resolver := NewResolver(&stubSolanaClient{})

	_, err := resolver.Resolve(context.Background(), UrlSource{Url: url})
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}
