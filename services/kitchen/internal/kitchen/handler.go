package kitchen

import (
	"net/http"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	logger apt.Logger
	config *apt.Config
	tlm    *telemetry.HTTP
	board  *Board
	sse    *SSEHandler
}

func NewHandler(board *Board, config *apt.Config, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}

	return &Handler{
		config: config,
		logger: logger,
		tlm:    telemetry.NewHTTP(),
		board:  board,
		sse:    NewSSEHandler(board, logger),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/board", func(r chi.Router) {
		r.Get("/", h.GetBoard)
		r.Post("/refresh", h.RefreshBoard)
		r.Post("/orders/{id}/ready", h.MarkOrderReady)
		r.Get("/events", h.sse.ServeHTTP)
	})
}

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetBoard")
	defer finish()

	apt.RespondSuccess(w, h.board.Snapshot())
}

// RefreshBoard queues an off-schedule poll. The snapshot in the response
// may still predate it; displays follow up on the SSE stream.
func (h *Handler) RefreshBoard(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.RefreshBoard")
	defer finish()

	h.board.Refresh()
	apt.RespondSuccess(w, h.board.Snapshot())
}

func (h *Handler) MarkOrderReady(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.MarkOrderReady")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		apt.RespondError(w, http.StatusBadRequest, "Missing id parameter")
		return
	}

	if err := h.board.MarkReady(ctx, orderID); err != nil {
		log.Error("cannot mark order ready", "error", err, "order_id", orderID)
		apt.RespondError(w, http.StatusBadGateway, "Could not complete order")
		return
	}

	log.Info("order marked ready", "order_id", orderID)
	apt.RespondSuccess(w, h.board.Snapshot())
}

func (h *Handler) log(r *http.Request) apt.Logger {
	return h.logger.With("request_id", r.Context().Value("request_id"))
}
