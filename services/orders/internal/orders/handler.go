package orders

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tablesideclub/tableside/pkg/enums/paymethod"
	"github.com/tablesideclub/tableside/pkg/event"
	"github.com/tablesideclub/tableside/services/orders/internal/catalog"
)

const MaxBodyBytes = 1 << 20

type Handler struct {
	logger        apt.Logger
	config        *apt.Config
	tlm           *telemetry.HTTP
	orderRepo     OrderRepo
	catalogClient catalog.Client
	publisher     events.Publisher
}

type HandlerDeps struct {
	OrderRepo     OrderRepo
	CatalogClient catalog.Client
	Publisher     events.Publisher
}

func NewHandler(hd HandlerDeps, config *apt.Config, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}

	return &Handler{
		config:        config,
		logger:        logger,
		tlm:           telemetry.NewHTTP(),
		orderRepo:     hd.OrderRepo,
		catalogClient: hd.CatalogClient,
		publisher:     hd.Publisher,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.CreateOrder)
		r.Get("/", h.ListOrders)
		r.Get("/{id}", h.GetOrder)
		r.Delete("/{id}", h.CompleteOrder)
	})
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateOrder")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	req, ok := h.decodeOrderCreatePayload(w, r, log)
	if !ok {
		return
	}

	if verrs := ValidateCreateOrder(req); len(verrs) > 0 {
		log.Debug("order validation failed", "errors", len(verrs))
		respondValidationErrors(w, verrs)
		return
	}

	order := NewOrder()
	order.TableNumber = req.TableNumber
	order.Items = req.Items
	order.TotalAmount = h.settleTotal(ctx, req, log)
	order.PaymentMethod = req.PaymentMethod
	order.BeforeCreate()

	if err := h.orderRepo.Create(ctx, order); err != nil {
		log.Error("cannot create order", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not create order")
		return
	}

	h.publishOrderCreated(ctx, order)

	log.Info("order created", "order_id", order.ID.String(), "table", order.TableNumber)
	w.WriteHeader(http.StatusCreated)
	apt.RespondSuccess(w, map[string]string{"order_id": order.ID.String()})
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetOrder")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	order, err := h.orderRepo.Get(ctx, id)
	if err != nil {
		log.Error("error loading order", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve order")
		return
	}

	if order == nil {
		apt.RespondError(w, http.StatusNotFound, "Order not found")
		return
	}

	links := apt.RESTfulLinksFor(order)
	apt.RespondSuccess(w, order, links...)
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListOrders")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	orders, err := h.orderRepo.ListActive(ctx)
	if err != nil {
		log.Error("error retrieving orders", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve orders")
		return
	}

	apt.RespondCollection(w, orders, "orders")
}

// CompleteOrder removes a settled order from the active set. The kitchen
// calls this when a ticket is marked ready; removal is the terminal state.
func (h *Handler) CompleteOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CompleteOrder")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	if err := h.orderRepo.Delete(ctx, id); err != nil {
		log.Error("cannot complete order", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusNotFound, "Order not found")
		return
	}

	h.publishOrderCompleted(ctx, id.String())

	log.Info("order completed", "order_id", id.String())
	w.WriteHeader(http.StatusNoContent)
}

// settleTotal recomputes the order total from current catalog prices. The
// submitted total is kept only when the catalog is unreachable or an item
// is unknown to it, since the client-side figure cannot be priced against
// anything authoritative in that case.
func (h *Handler) settleTotal(ctx context.Context, req OrderCreateRequest, log apt.Logger) int64 {
	if h.catalogClient == nil {
		return req.TotalAmount
	}

	prices, err := h.catalogClient.Prices(ctx)
	if err != nil {
		log.Info("catalog unavailable, keeping submitted total", "error", err)
		return req.TotalAmount
	}
	if prices == nil {
		return req.TotalAmount
	}

	var total int64
	for itemID, qty := range req.Items {
		price, found := prices[itemID]
		if !found {
			log.Info("item missing from catalog, keeping submitted total", "item_id", itemID)
			return req.TotalAmount
		}
		total += price * int64(qty)
	}

	if total != req.TotalAmount {
		log.Info("submitted total differs from catalog total",
			"submitted", req.TotalAmount, "recomputed", total)
	}
	return total
}

// Helper methods

func (h *Handler) parseIDParam(w http.ResponseWriter, r *http.Request, log apt.Logger) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "id")
	if idStr == "" {
		log.Debug("missing id parameter")
		apt.RespondError(w, http.StatusBadRequest, "Missing id parameter")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		log.Debug("invalid id parameter", "id", idStr)
		apt.RespondError(w, http.StatusBadRequest, "Invalid id parameter")
		return uuid.Nil, false
	}

	return id, true
}

// Payload decoders

type OrderCreateRequest struct {
	TableNumber   string         `json:"table_number"`
	Items         map[string]int `json:"items"`
	TotalAmount   int64          `json:"total_amount"`
	PaymentMethod string         `json:"payment_method"`
}

func (h *Handler) decodeOrderCreatePayload(w http.ResponseWriter, r *http.Request, log apt.Logger) (OrderCreateRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Debug("failed to read request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Failed to read request body")
		return OrderCreateRequest{}, false
	}

	var req OrderCreateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		log.Debug("failed to decode request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return OrderCreateRequest{}, false
	}

	return req, true
}

func (h *Handler) publishOrderCreated(ctx context.Context, order *Order) {
	if h.publisher == nil {
		return
	}

	evt := event.OrderCreatedEvent{
		EventType:     event.EventOrderCreated,
		OccurredAt:    time.Now().UTC(),
		OrderID:       order.ID.String(),
		TableNumber:   order.TableNumber,
		Items:         order.Items,
		TotalAmount:   order.TotalAmount,
		PaymentMethod: order.PaymentMethod,
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		h.logger.Error("cannot marshal order created event", "error", err)
		return
	}
	if err := h.publisher.Publish(ctx, event.OrdersTopic, payload); err != nil {
		h.logger.Error("cannot publish order created event", "error", err)
	} else {
		h.logger.Info("published order created event", "order_id", order.ID.String())
	}
}

func (h *Handler) publishOrderCompleted(ctx context.Context, orderID string) {
	if h.publisher == nil {
		return
	}

	evt := event.OrderCompletedEvent{
		EventType:  event.EventOrderCompleted,
		OccurredAt: time.Now().UTC(),
		OrderID:    orderID,
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		h.logger.Error("cannot marshal order completed event", "error", err)
		return
	}
	if err := h.publisher.Publish(ctx, event.OrdersTopic, payload); err != nil {
		h.logger.Error("cannot publish order completed event", "error", err)
	}
}

func respondValidationErrors(w http.ResponseWriter, verrs []ValidationError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error":  "Validation failed",
		"errors": verrs,
	})
}

func (h *Handler) log(r *http.Request) apt.Logger {
	return h.logger.With("request_id", r.Context().Value("request_id"))
}

// paymentMethodKnown reports whether name is one of the supported payment
// methods. An empty name is allowed and treated as cash on table.
func paymentMethodKnown(name string) bool {
	if name == "" {
		return true
	}
	return paymethod.ByName(name) != nil
}
