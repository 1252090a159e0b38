package rpc

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/0xPolygon/bridgeledger/account"
	"github.com/0xPolygon/bridgeledger/bridge"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

type rpcRequest struct {
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

// newServer answers every call with result, or with an error object when
// errMsg is set, and hands the received request to the test.
func newServer(t *testing.T, result string, errMsg string, received chan<- rpcRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		var req rpcRequest
		if err := json.Unmarshal(body, &req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		received <- req
		w.Header().Set("Content-Type", "application/json")
		if errMsg != "" {
			_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"error":{"code":-32000,"message":"` + errMsg + `"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":` + result + `}`))
	}))
}

func TestSubmitMessage(t *testing.T) {
	messageID := common.HexToHash("0xabcdef")
	received := make(chan rpcRequest, 1)
	srv := newServer(t, `"`+messageID.Hex()+`"`, "", received)
	defer srv.Close()

	appID := bridge.AppIDFromAddress(common.HexToAddress("0x1111111111111111111111111111111111111111"))
	id, err := NewClient(srv.URL).SubmitMessage(appID, []byte{0x01, 0x02})
	require.NoError(t, err)
	require.Equal(t, messageID, id)

	req := <-received
	require.Equal(t, "bridge_submitMessage", req.Method)
	require.Len(t, req.Params, 2)
	require.JSONEq(t, `"`+appID.Hex()+`"`, string(req.Params[0]))
	require.JSONEq(t, `"0x0102"`, string(req.Params[1]))
}

func TestSubmitMessageError(t *testing.T) {
	received := make(chan rpcRequest, 1)
	srv := newServer(t, "", "message already processed", received)
	defer srv.Close()

	_, err := NewClient(srv.URL).SubmitMessage(bridge.AppID{}, []byte{0x01})
	require.ErrorContains(t, err, "message already processed")
}

func TestIsProcessed(t *testing.T) {
	received := make(chan rpcRequest, 1)
	srv := newServer(t, "true", "", received)
	defer srv.Close()

	processed, err := NewClient(srv.URL).IsProcessed(common.HexToHash("0x01"))
	require.NoError(t, err)
	require.True(t, processed)
	require.Equal(t, "bridge_isProcessed", (<-received).Method)
}

func TestGetBalance(t *testing.T) {
	received := make(chan rpcRequest, 1)
	srv := newServer(t, `"0x64"`, "", received)
	defer srv.Close()

	var who account.ID
	who[31] = 0x07
	balance, err := NewClient(srv.URL).GetBalance(common.Address{}, who)
	require.NoError(t, err)
	require.Equal(t, uint256.NewInt(100), balance)

	req := <-received
	require.Equal(t, "bridge_getBalance", req.Method)
	require.JSONEq(t, `"`+who.Hex()+`"`, string(req.Params[1]))
}

func TestGetTotalIssuance(t *testing.T) {
	received := make(chan rpcRequest, 1)
	srv := newServer(t, `"0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"`, "", received)
	defer srv.Close()

	total, err := NewClient(srv.URL).GetTotalIssuance(common.HexToAddress("0x22"))
	require.NoError(t, err)
	require.Equal(t, new(uint256.Int).SetAllOne(), total)
	require.Equal(t, "bridge_getTotalIssuance", (<-received).Method)
}
