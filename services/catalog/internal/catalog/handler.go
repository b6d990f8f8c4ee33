package catalog

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const MaxBodyBytes = 1 << 20

// Handler handles HTTP requests for the Menu Catalog service
type Handler struct {
	repo   MenuItemRepo
	logger apt.Logger
	config *apt.Config
	tlm    *telemetry.HTTP
}

// NewHandler creates a new Handler for catalog operations
func NewHandler(repo MenuItemRepo, config *apt.Config, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Handler{
		repo:   repo,
		logger: logger,
		config: config,
		tlm:    telemetry.NewHTTP(),
	}
}

// RegisterRoutes registers all routes for the catalog service
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/menu", func(r chi.Router) {
		r.Post("/", h.CreateMenuItem)
		r.Get("/", h.ListMenuItems)
		r.Get("/{id}", h.GetMenuItem)
		r.Delete("/{id}", h.DeleteMenuItem)
	})

	r.Route("/qr", func(r chi.Router) {
		r.Get("/table/{table}", h.TableEntryLink)
	})
}

// CreateMenuItem handles POST /menu
func (h *Handler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateMenuItem")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	item, ok := h.decodeMenuItemPayload(w, r, log)
	if !ok {
		return
	}

	item.EnsureID()
	item.BeforeCreate()

	if validationErrors := ValidateCreateMenuItem(item); len(validationErrors) > 0 {
		log.Debug("validation failed", "errors", validationErrors)
		h.respondValidationErrors(w, validationErrors)
		return
	}

	if err := h.repo.Create(ctx, item); err != nil {
		log.Error("cannot create menu item", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not create menu item")
		return
	}

	links := apt.RESTfulLinksFor(item)
	w.WriteHeader(http.StatusCreated)
	apt.RespondSuccess(w, item, links...)
}

// GetMenuItem handles GET /menu/{id}
func (h *Handler) GetMenuItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetMenuItem")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	item, err := h.repo.Get(ctx, id)
	if err != nil {
		log.Error("error loading menu item", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusNotFound, "Menu item not found")
		return
	}

	if item == nil {
		apt.RespondError(w, http.StatusNotFound, "Menu item not found")
		return
	}

	links := apt.RESTfulLinksFor(item)
	apt.RespondSuccess(w, item, links...)
}

// ListMenuItems handles GET /menu
func (h *Handler) ListMenuItems(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListMenuItems")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	items, err := h.repo.List(ctx)
	if err != nil {
		log.Error("cannot list menu items", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not list menu items")
		return
	}

	apt.RespondCollection(w, items, "menu")
}

// DeleteMenuItem handles DELETE /menu/{id}
func (h *Handler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeleteMenuItem")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	if err := h.repo.Delete(ctx, id); err != nil {
		log.Error("cannot delete menu item", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not delete menu item")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// TableEntryLink handles GET /qr/table/{table}. It returns the entry link a
// printed QR code should carry for the given table, plus the image URL of an
// external renderer. No image is produced in-process.
func (h *Handler) TableEntryLink(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.TableEntryLink")
	defer finish()
	log := h.log(r)

	table := chi.URLParam(r, "table")
	if table == "" {
		log.Debug("missing table parameter")
		apt.RespondError(w, http.StatusBadRequest, "Missing table parameter")
		return
	}

	base := h.config.GetStringOrDef("tableside.base.url", "http://localhost:8081")
	link := BuildEntryLink(base, table)

	apt.RespondSuccess(w, map[string]string{
		"table":     table,
		"link":      link,
		"image_url": RendererImageURL(link, DefaultQRSize),
	})
}

// Helper methods

func (h *Handler) log(r *http.Request) apt.Logger {
	return h.logger.With("request_id", r.Context().Value("request_id"))
}

func (h *Handler) parseIDParam(w http.ResponseWriter, r *http.Request, log apt.Logger) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "id")
	if idStr == "" {
		log.Debug("missing id parameter")
		apt.RespondError(w, http.StatusBadRequest, "Missing id parameter")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		log.Debug("invalid id parameter", "id", idStr, "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Invalid id parameter")
		return uuid.Nil, false
	}

	return id, true
}

func (h *Handler) decodeMenuItemPayload(w http.ResponseWriter, r *http.Request, log apt.Logger) (*MenuItem, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Debug("error reading request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Could not read request body")
		return nil, false
	}

	var item MenuItem
	if err := json.Unmarshal(body, &item); err != nil {
		log.Debug("error decoding JSON", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Invalid JSON payload")
		return nil, false
	}

	return &item, true
}

func (h *Handler) respondValidationErrors(w http.ResponseWriter, errors []ValidationError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":  "Validation failed",
		"errors": errors,
	})
}
