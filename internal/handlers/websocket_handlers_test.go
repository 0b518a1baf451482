package handlers

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/sand/crypto-exchanger-app/backend/internal/rates"
)

func dialQuoteStream(t *testing.T) *websocket.Conn {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewWebSocketHandler(logger, rates.NewCalculator(rates.NewTable()), NewWebSocketManager(logger))

	router := mux.NewRouter()
	handler.RegisterRoutes(router)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/quote"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

func TestQuoteStreamAnswersEveryRequestInOrder(t *testing.T) {
	conn := dialQuoteStream(t)

	requests := []map[string]any{
		{"send_amount": "1", "send_currency": "btc", "receive_currency": "eth"},
		{"send_amount": "2", "send_currency": "btc", "receive_currency": "usdt"},
		{"send_amount": "abc", "send_currency": "btc", "receive_currency": "eth"},
	}
	want := []string{"15.0000", "120000.0000", "0.00"}

	for i, req := range requests {
		require.NoError(t, conn.WriteJSON(req))

		var resp quoteStreamResponse
		require.NoError(t, conn.ReadJSON(&resp))
		require.Equal(t, want[i], resp.ReceiveAmount)
		require.Nil(t, resp.Error)
	}
}

func TestQuoteStreamReportsUnknownCurrency(t *testing.T) {
	conn := dialQuoteStream(t)

	require.NoError(t, conn.WriteJSON(map[string]any{
		"send_amount":      "1",
		"send_currency":    "doge",
		"receive_currency": "eth",
	}))

	var resp quoteStreamResponse
	require.NoError(t, conn.ReadJSON(&resp))
	require.NotNil(t, resp.Error)
	require.Equal(t, "unsupported currency code", *resp.Error)
	require.Equal(t, rates.ZeroQuote, resp.ReceiveAmount)
}
