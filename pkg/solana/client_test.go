package solana

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mr-tron/base58/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, results map[string]string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     int    `json:"id"`
			Method string `json:"method"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		result, ok := results[req.Method]
		require.True(t, ok, "unexpected rpc method: %s", req.Method)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%d,"result":%s}`, req.ID, result)
	}))
}

func TestClient_GetAccountInfo(t *testing.T) {
	account, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	owner, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	data := []byte("some account data")

	server := newTestServer(t, map[string]string{
		"getAccountInfo": fmt.Sprintf(
			`{"context":{"slot":1},"value":{"lamports":1447680,"owner":"%s","data":["%s","base64"],"executable":false}}`,
			base58.Encode(owner),
			base64.StdEncoding.EncodeToString(data),
		),
	})
	defer server.Close()

	info, err := New(server.URL).GetAccountInfo(account, CommitmentFinalized)
	require.NoError(t, err)
	assert.Equal(t, data, info.Data)
	assert.Equal(t, ed25519.PublicKey(owner), info.Owner)
	assert.EqualValues(t, 1447680, info.Lamports)
	assert.False(t, info.Executable)
}

func TestClient_GetAccountInfo_NoAccount(t *testing.T) {
	account, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	server := newTestServer(t, map[string]string{
		"getAccountInfo": `{"context":{"slot":1},"value":null}`,
	})
	defer server.Close()

	_, err = New(server.URL).GetAccountInfo(account, CommitmentFinalized)
	assert.Equal(t, ErrNoAccountInfo, err)
}

func TestClient_GetSlot(t *testing.T) {
	server := newTestServer(t, map[string]string{
		"getSlot": `1234567`,
	})
	defer server.Close()

	slot, err := New(server.URL).GetSlot(CommitmentFinalized)
	require.NoError(t, err)
	assert.EqualValues(t, 1234567, slot)
}

func TestClient_GetBalance(t *testing.T) {
	account, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	server := newTestServer(t, map[string]string{
		"getBalance": `{"context":{"slot":1},"value":5000}`,
	})
	defer server.Close()

	balance, err := New(server.URL).GetBalance(account)
	require.NoError(t, err)
	assert.EqualValues(t, 5000, balance)
}
