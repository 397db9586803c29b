package handler

import (
	"encoding/json"
	"net/http"

	"theworks/internal/bookings/service"
	"theworks/pkg/auth"
	"theworks/pkg/config"
	apperrors "theworks/pkg/errors"
	httputil "theworks/pkg/http"
	"theworks/pkg/model"
	"theworks/pkg/view"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service service.BookingService
	cfg     *config.Config
}

func NewBookingHandler(service service.BookingService, cfg *config.Config) *BookingHandler {
	return &BookingHandler{service: service, cfg: cfg}
}

// RegisterRoutes declares the policy for every route next to the route
// itself. A route without a policy does not exist.
func (h *BookingHandler) RegisterRoutes(router *httprouter.Router, guard *auth.Guard) {
	router.POST("/api/v1/bookings", guard.Protect(auth.Authenticated(), h.Create))
	router.GET("/api/v1/bookings", guard.Protect(auth.Authenticated(), h.GetOwn))
	router.GET("/api/v1/bookings/all", guard.Protect(auth.RequireRole(model.RoleAdmin), h.GetAll))
	router.GET("/api/v1/bookings/id/:id", guard.Protect(auth.OwnerOrAdmin(), h.GetByID))
	router.PATCH("/api/v1/bookings/id/:id/status", guard.Protect(auth.OwnerOrAdmin(), h.UpdateStatus))
	router.POST("/api/v1/bookings/id/:id/addons", guard.Protect(auth.OwnerOrAdmin(), h.AttachAddons))
	router.DELETE("/api/v1/bookings/id/:id/addons", guard.Protect(auth.OwnerOrAdmin(), h.DetachAddons))
	router.DELETE("/api/v1/bookings/id/:id", guard.Protect(auth.RequireRole(model.RoleAdmin), h.Delete))
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params, identity model.Identity) {
	var input model.BookingCreate
	if err := decodeStrict(r, &input); err != nil {
		h.writeError(w, err)
		return
	}

	booking, err := h.service.Create(r.Context(), identity, &input)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteCreated(w, view.Booking(booking, nil)); err != nil {
		h.cfg.Log.Error("Failed to write response", "error", err)
	}
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params, identity model.Identity) {
	booking, addonIDs, err := h.service.GetByID(r.Context(), identity, ps.ByName("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, view.Booking(booking, addonIDs)); err != nil {
		h.cfg.Log.Error("Failed to write response", "error", err)
	}
}

func (h *BookingHandler) GetOwn(w http.ResponseWriter, r *http.Request, _ httprouter.Params, identity model.Identity) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	bookings, count, err := h.service.GetOwn(r.Context(), identity, limit, offset)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WritePaginated(w, bookingViews(bookings), count, limit, offset); err != nil {
		h.cfg.Log.Error("Failed to write response", "error", err)
	}
}

func (h *BookingHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params, _ model.Identity) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	bookings, count, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WritePaginated(w, bookingViews(bookings), count, limit, offset); err != nil {
		h.cfg.Log.Error("Failed to write response", "error", err)
	}
}

func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params, identity model.Identity) {
	var input model.BookingStatusUpdate
	if err := decodeStrict(r, &input); err != nil {
		h.writeError(w, err)
		return
	}

	booking, err := h.service.UpdateStatus(r.Context(), identity, ps.ByName("id"), &input)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, view.Booking(booking, nil)); err != nil {
		h.cfg.Log.Error("Failed to write response", "error", err)
	}
}

func (h *BookingHandler) AttachAddons(w http.ResponseWriter, r *http.Request, ps httprouter.Params, identity model.Identity) {
	var input model.AttachAddonsRequest
	if err := decodeStrict(r, &input); err != nil {
		h.writeError(w, err)
		return
	}

	addonIDs, err := h.service.AttachAddons(r.Context(), identity, ps.ByName("id"), &input)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, map[string]any{"addon_ids": addonIDs}); err != nil {
		h.cfg.Log.Error("Failed to write response", "error", err)
	}
}

func (h *BookingHandler) DetachAddons(w http.ResponseWriter, r *http.Request, ps httprouter.Params, identity model.Identity) {
	var input model.DetachAddonsRequest
	if err := decodeStrict(r, &input); err != nil {
		h.writeError(w, err)
		return
	}

	addonIDs, err := h.service.DetachAddons(r.Context(), identity, ps.ByName("id"), &input)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, map[string]any{"addon_ids": addonIDs}); err != nil {
		h.cfg.Log.Error("Failed to write response", "error", err)
	}
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params, identity model.Identity) {
	if err := h.service.Delete(r.Context(), identity, ps.ByName("id")); err != nil {
		h.writeError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *BookingHandler) writeError(w http.ResponseWriter, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.cfg.Log.Error("Failed to write error response", "error", writeErr)
	}
}

// decodeStrict rejects request bodies carrying fields the input struct does
// not declare.
func decodeStrict(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return apperrors.InvalidInput("Invalid request body: " + err.Error())
	}
	return nil
}

func bookingViews(bookings []*model.Booking) []view.BookingView {
	views := make([]view.BookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, view.Booking(b, nil))
	}
	return views
}
