package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"cleanhome/internal/address/models"
	dErrors "cleanhome/pkg/domain-errors"
	"cleanhome/pkg/platform/httputil"
	"cleanhome/pkg/requestcontext"
)

// Catalog is the read-only area lookup served to dropdowns.
type Catalog interface {
	ListRegions() []models.Option
	ListSubRegions(regionID string) []models.Option
	ListSubSubRegions(regionID, subRegionID string) []models.Option
}

// Service defines the address session operations used by the handler.
type Service interface {
	Create(ctx context.Context, initial models.Selection) (*models.SessionView, error)
	Get(ctx context.Context, id uuid.UUID) (*models.SessionView, error)
	ApplyTransition(ctx context.Context, id uuid.UUID, t models.Transition) (*models.SessionView, error)
	Sync(ctx context.Context, id uuid.UUID, sel models.Selection) (*models.SessionView, error)
	Submit(ctx context.Context, id uuid.UUID) (*models.Submission, error)
	Discard(ctx context.Context, id uuid.UUID) error
	Format(sel models.Selection) string
}

// Handler wires area lookups and address form sessions to HTTP.
type Handler struct {
	service Service
	catalog Catalog
	logger  *slog.Logger
}

// New constructs an address handler.
func New(service Service, catalog Catalog, logger *slog.Logger) *Handler {
	return &Handler{service: service, catalog: catalog, logger: logger}
}

// Register mounts address endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/areas/cities", func(r chi.Router) {
		r.Get("/", h.HandleListCities)
		r.Get("/{cityID}/districts", h.HandleListDistricts)
		r.Get("/{cityID}/districts/{districtID}/wards", h.HandleListWards)
	})

	r.Post("/address/format", h.HandleFormat)

	r.Route("/address/sessions", func(r chi.Router) {
		r.Post("/", h.HandleCreateSession)
		r.Get("/{sessionID}", h.HandleGetSession)
		r.Put("/{sessionID}", h.HandleSyncSession)
		r.Delete("/{sessionID}", h.HandleDiscardSession)
		r.Post("/{sessionID}/transitions", h.HandleTransition)
		r.Post("/{sessionID}/submit", h.HandleSubmit)
	})
}

// HandleListCities handles GET /areas/cities.
func (h *Handler) HandleListCities(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, optionsResponse{Items: h.catalog.ListRegions()})
}

// HandleListDistricts handles GET /areas/cities/{cityID}/districts.
// Unknown cities yield an empty list rather than 404.
func (h *Handler) HandleListDistricts(w http.ResponseWriter, r *http.Request) {
	cityID := chi.URLParam(r, "cityID")
	httputil.WriteJSON(w, http.StatusOK, optionsResponse{Items: h.catalog.ListSubRegions(cityID)})
}

// HandleListWards handles GET /areas/cities/{cityID}/districts/{districtID}/wards.
func (h *Handler) HandleListWards(w http.ResponseWriter, r *http.Request) {
	cityID := chi.URLParam(r, "cityID")
	districtID := chi.URLParam(r, "districtID")
	httputil.WriteJSON(w, http.StatusOK, optionsResponse{Items: h.catalog.ListSubSubRegions(cityID, districtID)})
}

// HandleFormat handles POST /address/format: a stateless preview.
func (h *Handler) HandleFormat(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeJSON[models.Selection](w, r, h.logger)
	if !ok {
		return
	}
	address := h.service.Format(*req)
	httputil.WriteJSON(w, http.StatusOK, formatResponse{Address: address, Complete: address != ""})
}

// HandleCreateSession handles POST /address/sessions. An empty body starts
// from a blank selection.
func (h *Handler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var initial models.Selection
	if r.ContentLength != 0 {
		req, ok := httputil.DecodeJSON[models.Selection](w, r, h.logger)
		if !ok {
			return
		}
		initial = *req
	}

	view, err := h.service.Create(ctx, initial)
	if err != nil {
		h.logError(ctx, "create address session failed", uuid.Nil, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, view)
}

// HandleGetSession handles GET /address/sessions/{sessionID}.
func (h *Handler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	view, err := h.service.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, view)
}

// HandleSyncSession handles PUT /address/sessions/{sessionID}: the owning
// form replaces the selection verbatim.
func (h *Handler) HandleSyncSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeJSON[models.Selection](w, r, h.logger)
	if !ok {
		return
	}

	view, err := h.service.Sync(ctx, id, *req)
	if err != nil {
		h.logError(ctx, "sync address session failed", id, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, view)
}

// HandleTransition handles POST /address/sessions/{sessionID}/transitions.
func (h *Handler) HandleTransition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeJSON[models.Transition](w, r, h.logger)
	if !ok {
		return
	}

	view, err := h.service.ApplyTransition(ctx, id, *req)
	if err != nil {
		h.logError(ctx, "address transition failed", id, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, view)
}

// HandleSubmit handles POST /address/sessions/{sessionID}/submit.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	sub, err := h.service.Submit(ctx, id)
	if err != nil {
		h.logError(ctx, "address submit failed", id, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, sub)
}

// HandleDiscardSession handles DELETE /address/sessions/{sessionID}.
func (h *Handler) HandleDiscardSession(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	if err := h.service.Discard(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid session id"))
		return uuid.Nil, false
	}
	return id, true
}

// logError logs server-side failures; client errors are expected traffic.
func (h *Handler) logError(ctx context.Context, msg string, id uuid.UUID, err error) {
	if httputil.StatusFor(dErrors.CodeOf(err)) < http.StatusInternalServerError {
		return
	}
	h.logger.ErrorContext(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"session_id", id,
		"error", err,
	)
}
