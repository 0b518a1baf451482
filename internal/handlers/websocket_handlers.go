package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.openly.dev/pointy"

	"github.com/sand/crypto-exchanger-app/backend/internal/entities"
	"github.com/sand/crypto-exchanger-app/backend/internal/rates"
)

const websocketBufferSize = 1024

// Manager upgrades HTTP connections to websockets.
type Manager struct {
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

func NewWebSocketManager(logger *slog.Logger) *Manager {
	return &Manager{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  websocketBufferSize,
			WriteBufferSize: websocketBufferSize,
			// The forms are served from arbitrary origins in dev setups.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (m *Manager) Upgrade(w http.ResponseWriter, r *http.Request) (*websocket.Conn, error) {
	return m.upgrader.Upgrade(w, r, nil)
}

type WebSocketHandler struct {
	logger           *slog.Logger
	calculator       *rates.Calculator
	websocketManager *Manager
}

func NewWebSocketHandler(logger *slog.Logger, calculator *rates.Calculator, websocketManager *Manager) *WebSocketHandler {
	return &WebSocketHandler{
		logger:           logger,
		calculator:       calculator,
		websocketManager: websocketManager,
	}
}

func (h *WebSocketHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/ws/quote", h.HandleQuoteStream)
}

// quoteStreamRequest mirrors the form inputs, so send_amount is a string and
// may be arbitrary junk; junk quotes as "0.00" instead of failing the frame.
type quoteStreamRequest struct {
	SendAmount      string `json:"send_amount"`
	SendCurrency    string `json:"send_currency"`
	ReceiveCurrency string `json:"receive_currency"`
}

type quoteStreamResponse struct {
	SendAmount      string            `json:"send_amount"`
	SendCurrency    entities.Currency `json:"send_currency,omitempty"`
	ReceiveCurrency entities.Currency `json:"receive_currency,omitempty"`
	ReceiveAmount   string            `json:"receive_amount"`
	Error           *string           `json:"error,omitempty"`
}

// HandleQuoteStream serves the live preview channel for the exchange forms.
// Every request frame gets exactly one answer frame, in arrival order; the
// client keeps only the latest answer (last-write-wins).
func (h *WebSocketHandler) HandleQuoteStream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.websocketManager.Upgrade(w, r)
	if err != nil {
		h.logger.Error("Error upgrading connection", "error", err)
		return
	}
	defer conn.Close()

	h.logger.Info("New quote stream connection", "remote", conn.RemoteAddr().String())

	for {
		var req quoteStreamRequest
		if readErr := conn.ReadJSON(&req); readErr != nil {
			if websocket.IsUnexpectedCloseError(readErr, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Error("Quote stream closed unexpectedly", "error", readErr)
			}
			return
		}

		if writeErr := conn.WriteJSON(h.quote(req)); writeErr != nil {
			h.logger.Error("Error writing quote frame", "error", writeErr)
			return
		}
	}
}

func (h *WebSocketHandler) quote(req quoteStreamRequest) quoteStreamResponse {
	resp := quoteStreamResponse{SendAmount: req.SendAmount}

	from, okFrom := entities.ParseCurrency(req.SendCurrency)
	to, okTo := entities.ParseCurrency(req.ReceiveCurrency)
	if !okFrom || !okTo {
		resp.ReceiveAmount = rates.ZeroQuote
		resp.Error = pointy.String("unsupported currency code")
		return resp
	}

	resp.SendCurrency = from
	resp.ReceiveCurrency = to
	resp.ReceiveAmount = h.calculator.Quote(req.SendAmount, from, to)
	return resp
}
