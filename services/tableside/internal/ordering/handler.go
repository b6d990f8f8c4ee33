package ordering

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"

	"github.com/tablesideclub/tableside/services/tableside/internal/catalog"
)

const MaxBodyBytes = 1 << 20

// UnknownTable labels sessions opened without a table parameter, typically
// a hand-typed URL rather than a scanned code.
const UnknownTable = "Unknown"

// DefaultSessionTTL bounds how long an idle table session survives.
const DefaultSessionTTL = 4 * time.Hour

type Handler struct {
	logger        apt.Logger
	config        *apt.Config
	tlm           *telemetry.HTTP
	sessions      *SessionStore
	catalogClient catalog.Client
	submitter     OrderSubmitter
	payee         PayeeDetails
	settleDelay   time.Duration
}

type HandlerDeps struct {
	Sessions      *SessionStore
	CatalogClient catalog.Client
	Submitter     OrderSubmitter
	SettleDelay   time.Duration
}

func NewHandler(hd HandlerDeps, config *apt.Config, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}

	payee := PayeeDetails{
		VPA:      config.GetStringOrDef("payment.vpa", "backyards@upi"),
		Name:     config.GetStringOrDef("payment.payee", "Backyards"),
		Currency: config.GetStringOrDef("payment.currency", "INR"),
	}

	settleDelay := hd.SettleDelay
	if settleDelay == 0 {
		settleDelay = DefaultSettleDelay
	}

	return &Handler{
		config:        config,
		logger:        logger,
		tlm:           telemetry.NewHTTP(),
		sessions:      hd.Sessions,
		catalogClient: hd.CatalogClient,
		submitter:     hd.Submitter,
		payee:         payee,
		settleDelay:   settleDelay,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/order", func(r chi.Router) {
		r.Get("/", h.EnterTable)
		r.Get("/cart", h.ViewCart)
		r.Post("/cart/items", h.AddItem)
		r.Delete("/cart/items/{itemID}", h.RemoveItem)
		r.Post("/checkout", h.BeginCheckout)
		r.Post("/checkout/method", h.SelectMethod)
		r.Post("/checkout/confirm", h.ConfirmPayment)
		r.Post("/checkout/cancel", h.CancelCheckout)
	})
}

// EnterTable opens (or resumes) the session for a table and returns the
// menu alongside the current checkout snapshot. This is the landing
// endpoint behind the printed QR code.
func (h *Handler) EnterTable(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.EnterTable")
	defer finish()

	log := h.log(r)
	ctx := r.Context()
	table := tableParam(r)

	menu, err := h.catalogClient.Menu(ctx)
	if err != nil {
		log.Error("cannot fetch menu", "error", err, "table", table)
		apt.RespondError(w, http.StatusServiceUnavailable, "Menu is unavailable")
		return
	}

	prices := make(map[string]int64, len(menu))
	for _, item := range menu {
		prices[item.ID] = item.Price
	}

	session := h.sessions.Ensure(table, func() *Checkout {
		co := NewCheckout(table, prices, h.submitter, h.payee)
		co.SetSettleDelay(h.settleDelay)
		return co
	})

	log.Info("table session ready", "table", table, "menu_items", len(menu))
	apt.RespondSuccess(w, map[string]interface{}{
		"table":    table,
		"menu":     menu,
		"checkout": session.Checkout.Snapshot(),
	})
}

func (h *Handler) ViewCart(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ViewCart")
	defer finish()

	session, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	apt.RespondSuccess(w, session.Checkout.Snapshot())
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.AddItem")
	defer finish()

	log := h.log(r)

	session, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	req, ok := h.decodeCartItemPayload(w, r, log)
	if !ok {
		return
	}

	if err := session.Checkout.AddItem(req.ItemID); err != nil {
		h.respondCheckoutError(w, log, err)
		return
	}

	apt.RespondSuccess(w, session.Checkout.Snapshot())
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.RemoveItem")
	defer finish()

	log := h.log(r)

	session, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	itemID := chi.URLParam(r, "itemID")
	if err := session.Checkout.RemoveItem(itemID); err != nil {
		h.respondCheckoutError(w, log, err)
		return
	}

	apt.RespondSuccess(w, session.Checkout.Snapshot())
}

func (h *Handler) BeginCheckout(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.BeginCheckout")
	defer finish()

	log := h.log(r)

	session, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	if err := session.Checkout.Begin(); err != nil {
		h.respondCheckoutError(w, log, err)
		return
	}

	apt.RespondSuccess(w, session.Checkout.Snapshot())
}

func (h *Handler) SelectMethod(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.SelectMethod")
	defer finish()

	log := h.log(r)

	session, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	req, ok := h.decodeMethodPayload(w, r, log)
	if !ok {
		return
	}

	if err := session.Checkout.SelectMethod(req.Method); err != nil {
		h.respondCheckoutError(w, log, err)
		return
	}

	apt.RespondSuccess(w, session.Checkout.Snapshot())
}

func (h *Handler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ConfirmPayment")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	session, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	orderID, err := session.Checkout.Confirm(ctx)
	if err != nil {
		h.respondCheckoutError(w, log, err)
		return
	}

	log.Info("checkout settled", "table", session.Table, "order_id", orderID)
	apt.RespondSuccess(w, session.Checkout.Snapshot())
}

func (h *Handler) CancelCheckout(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CancelCheckout")
	defer finish()

	log := h.log(r)

	session, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	if err := session.Checkout.CancelCheckout(); err != nil {
		h.respondCheckoutError(w, log, err)
		return
	}

	apt.RespondSuccess(w, session.Checkout.Snapshot())
}

// Helper methods

func tableParam(r *http.Request) string {
	table := r.URL.Query().Get("table")
	if table == "" {
		return UnknownTable
	}
	return table
}

func (h *Handler) requireSession(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	table := tableParam(r)
	session := h.sessions.Get(table)
	if session == nil {
		apt.RespondError(w, http.StatusNotFound, "No active session for table")
		return nil, false
	}
	return session, true
}

func (h *Handler) respondCheckoutError(w http.ResponseWriter, log apt.Logger, err error) {
	switch {
	case errors.Is(err, ErrEmptyCart),
		errors.Is(err, ErrUnknownItem),
		errors.Is(err, ErrUnknownMethod),
		errors.Is(err, ErrNoMethodSelected):
		log.Debug("checkout request rejected", "error", err)
		apt.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrSettlementInProgress):
		log.Debug("checkout request conflicts with current state", "error", err)
		apt.RespondError(w, http.StatusConflict, err.Error())
	default:
		log.Error("order submission failed", "error", err)
		apt.RespondError(w, http.StatusBadGateway, "Could not submit order")
	}
}

// Payload decoders

type CartItemRequest struct {
	ItemID string `json:"item_id"`
}

type MethodRequest struct {
	Method string `json:"method"`
}

func (h *Handler) decodeCartItemPayload(w http.ResponseWriter, r *http.Request, log apt.Logger) (CartItemRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Debug("failed to read request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Failed to read request body")
		return CartItemRequest{}, false
	}

	var req CartItemRequest
	if err := json.Unmarshal(body, &req); err != nil {
		log.Debug("failed to decode request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return CartItemRequest{}, false
	}

	return req, true
}

func (h *Handler) decodeMethodPayload(w http.ResponseWriter, r *http.Request, log apt.Logger) (MethodRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Debug("failed to read request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Failed to read request body")
		return MethodRequest{}, false
	}

	var req MethodRequest
	if err := json.Unmarshal(body, &req); err != nil {
		log.Debug("failed to decode request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return MethodRequest{}, false
	}

	return req, true
}

func (h *Handler) log(r *http.Request) apt.Logger {
	return h.logger.With("request_id", r.Context().Value("request_id"))
}
