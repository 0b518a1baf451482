package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/sand/crypto-exchanger-app/backend/internal/entities"
	"github.com/sand/crypto-exchanger-app/backend/internal/rates"
	"github.com/sand/crypto-exchanger-app/backend/internal/usecases"
)

var (
	_ WalletService = (*usecases.WalletService)(nil)
	_ OrderService  = (*usecases.OrderService)(nil)
)

type HTTPHandler struct {
	logger        *slog.Logger
	walletService WalletService
	orderService  OrderService
	calculator    *rates.Calculator
}

func NewHTTPHandler(logger *slog.Logger, walletService WalletService, orderService OrderService, calculator *rates.Calculator) *HTTPHandler {
	return &HTTPHandler{
		logger:        logger,
		walletService: walletService,
		orderService:  orderService,
		calculator:    calculator,
	}
}

func (h *HTTPHandler) RegisterRoutes(router *mux.Router) {
	// API endpoints.

	// Admin wallets
	router.HandleFunc("/admin/wallets", h.RegisterAdminWallet).Methods("POST")
	router.HandleFunc("/admin/wallets", h.GetAdminWallets).Methods("GET")

	// Orders
	router.HandleFunc("/orders", h.PlaceOrder).Methods("POST")
	router.HandleFunc("/orders", h.GetUserOrders).Methods("GET")

	// Quotes
	router.HandleFunc("/quote", h.GetQuote).Methods("GET")
	router.HandleFunc("/currencies", h.GetCurrencies).Methods("GET")

	// Static files - register last to avoid intercepting other routes.
	fs := http.FileServer(http.Dir("./static"))
	router.PathPrefix("/").Handler(http.StripPrefix("/", fs))
}

type registerWalletRequest struct {
	Address  string `json:"address"`
	Currency string `json:"currency"`
}

func (r registerWalletRequest) missingFields() []string {
	var missing []string
	if strings.TrimSpace(r.Address) == "" {
		missing = append(missing, "address")
	}
	if strings.TrimSpace(r.Currency) == "" {
		missing = append(missing, "currency")
	}
	return missing
}

type placeOrderRequest struct {
	UserID           string      `json:"userId"`
	SendAmount       json.Number `json:"sendAmount"`
	SendCurrency     string      `json:"sendCurrency"`
	ReceiveAmount    json.Number `json:"receiveAmount"`
	ReceiveCurrency  string      `json:"receiveCurrency"`
	RecipientAddress string      `json:"recipientAddress"`
}

// missingFields reports every absent required field at once. Amounts count as
// missing when empty or zero, mirroring the original client-side check.
func (r placeOrderRequest) missingFields() []string {
	var missing []string
	if strings.TrimSpace(r.UserID) == "" {
		missing = append(missing, "userId")
	}
	if amountMissing(r.SendAmount) {
		missing = append(missing, "sendAmount")
	}
	if strings.TrimSpace(r.SendCurrency) == "" {
		missing = append(missing, "sendCurrency")
	}
	if amountMissing(r.ReceiveAmount) {
		missing = append(missing, "receiveAmount")
	}
	if strings.TrimSpace(r.ReceiveCurrency) == "" {
		missing = append(missing, "receiveCurrency")
	}
	if strings.TrimSpace(r.RecipientAddress) == "" {
		missing = append(missing, "recipientAddress")
	}
	return missing
}

func amountMissing(n json.Number) bool {
	if n.String() == "" {
		return true
	}
	f, err := n.Float64()
	return err == nil && f == 0
}

// orderCreatedResponse is the slim shape returned on placement: the caller
// already knows everything it sent.
type orderCreatedResponse struct {
	ID        uuid.UUID            `json:"id"`
	CreatedAt time.Time            `json:"created_at"`
	Status    entities.OrderStatus `json:"status"`
}

// RegisterAdminWallet registers a receiving wallet for the exchange operator.
func (h *HTTPHandler) RegisterAdminWallet(w http.ResponseWriter, r *http.Request) {
	var req registerWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if missing := req.missingFields(); len(missing) > 0 {
		h.writeValidationError(w, "Address and currency are required", missing)
		return
	}

	wallet, err := h.walletService.RegisterAdminWallet(r.Context(), req.Address, entities.NormalizeCurrency(req.Currency))
	if err != nil {
		if errors.Is(err, entities.ErrWalletAddressExists) {
			h.writeError(w, http.StatusConflict, "Wallet address already registered", "")
			return
		}
		h.logger.Error("Failed to register admin wallet", "error", err, "address", req.Address)
		h.writeError(w, http.StatusInternalServerError, "Failed to register admin wallet", err.Error())
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Admin wallet registered successfully",
		"wallet":  wallet,
	})
}

// GetAdminWallets returns all registered admin receiving wallets.
func (h *HTTPHandler) GetAdminWallets(w http.ResponseWriter, r *http.Request) {
	wallets, err := h.walletService.AdminWallets(r.Context())
	if err != nil {
		h.logger.Error("Failed to fetch admin wallets", "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to fetch admin wallets", err.Error())
		return
	}

	if wallets == nil {
		wallets = []entities.Wallet{}
	}
	h.writeJSON(w, http.StatusOK, wallets)
}

// PlaceOrder persists a new exchange order with status pending.
func (h *HTTPHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if missing := req.missingFields(); len(missing) > 0 {
		h.writeValidationError(w, "All order details are required", missing)
		return
	}

	order, err := h.orderService.PlaceOrder(r.Context(), entities.NewOrderParams{
		UserID:           req.UserID,
		SendAmount:       req.SendAmount.String(),
		SendCurrency:     entities.NormalizeCurrency(req.SendCurrency),
		ReceiveAmount:    req.ReceiveAmount.String(),
		ReceiveCurrency:  entities.NormalizeCurrency(req.ReceiveCurrency),
		RecipientAddress: req.RecipientAddress,
	})
	if err != nil {
		h.logger.Error("Failed to place order", "error", err, "user_id", req.UserID)
		h.writeError(w, http.StatusInternalServerError, "Failed to place order", err.Error())
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Order placed successfully",
		"order": orderCreatedResponse{
			ID:        order.ID,
			CreatedAt: order.CreatedAt,
			Status:    order.Status,
		},
	})
}

// GetUserOrders returns the user's orders, newest first.
func (h *HTTPHandler) GetUserOrders(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		h.writeError(w, http.StatusBadRequest, "User ID is required", "")
		return
	}

	orders, err := h.orderService.UserOrders(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to fetch user orders", "error", err, "user_id", userID)
		h.writeError(w, http.StatusInternalServerError, "Failed to fetch user orders", err.Error())
		return
	}

	if orders == nil {
		orders = []entities.Order{}
	}
	h.writeJSON(w, http.StatusOK, orders)
}

type quoteResponse struct {
	SendAmount      string            `json:"send_amount"`
	SendCurrency    entities.Currency `json:"send_currency"`
	ReceiveCurrency entities.Currency `json:"receive_currency"`
	ReceiveAmount   string            `json:"receive_amount"`
}

// GetQuote computes a receive amount for the given send amount and pair. The
// server-side twin of the form's live preview.
func (h *HTTPHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sendAmount := q.Get("sendAmount")

	var invalid []string
	from, ok := entities.ParseCurrency(q.Get("sendCurrency"))
	if !ok {
		invalid = append(invalid, "sendCurrency")
	}
	to, ok := entities.ParseCurrency(q.Get("receiveCurrency"))
	if !ok {
		invalid = append(invalid, "receiveCurrency")
	}
	if len(invalid) > 0 {
		h.writeValidationError(w, "A supported currency code is required", invalid)
		return
	}

	h.writeJSON(w, http.StatusOK, quoteResponse{
		SendAmount:      sendAmount,
		SendCurrency:    from,
		ReceiveCurrency: to,
		ReceiveAmount:   h.calculator.Quote(sendAmount, from, to),
	})
}

// GetCurrencies returns the supported currency codes.
func (h *HTTPHandler) GetCurrencies(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, entities.Currencies())
}

func (h *HTTPHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
	// Details carries the underlying diagnostic. Internal error text is
	// intentionally not hidden from API responses.
	Details string   `json:"details,omitempty"`
	Fields  []string `json:"fields,omitempty"`
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, status int, message, details string) {
	h.writeJSON(w, status, errorResponse{Error: message, Details: details})
}

func (h *HTTPHandler) writeValidationError(w http.ResponseWriter, message string, fields []string) {
	h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: message, Fields: fields})
}
