package handler

import (
	"encoding/json"
	"net/http"

	"theworks/internal/addons/service"
	"theworks/pkg/auth"
	"theworks/pkg/config"
	apperrors "theworks/pkg/errors"
	httputil "theworks/pkg/http"
	"theworks/pkg/model"
	"theworks/pkg/view"

	"github.com/julienschmidt/httprouter"
)

type AddonHandler struct {
	service service.AddonService
	cfg     *config.Config
}

func NewAddonHandler(service service.AddonService, cfg *config.Config) *AddonHandler {
	return &AddonHandler{service: service, cfg: cfg}
}

func (h *AddonHandler) RegisterRoutes(router *httprouter.Router, guard *auth.Guard) {
	router.GET("/api/v1/addons", guard.Protect(auth.Public(), h.GetAll))
	router.GET("/api/v1/addons/id/:id", guard.Protect(auth.Public(), h.GetByID))
	router.POST("/api/v1/addons", guard.Protect(auth.RequireRole(model.RoleAdmin), h.Create))
	router.PATCH("/api/v1/addons/id/:id", guard.Protect(auth.RequireRole(model.RoleAdmin), h.Update))
	router.DELETE("/api/v1/addons/id/:id", guard.Protect(auth.RequireRole(model.RoleAdmin), h.Delete))
}

func (h *AddonHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params, _ model.Identity) {
	var input model.AddonCreate
	if err := decodeStrict(r, &input); err != nil {
		h.writeError(w, err)
		return
	}

	addon, err := h.service.Create(r.Context(), &input)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteCreated(w, view.Addon(addon)); err != nil {
		h.cfg.Log.Error("Failed to write response", "error", err)
	}
}

func (h *AddonHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params, identity model.Identity) {
	addon, err := h.service.GetByID(r.Context(), ps.ByName("id"), identity.IsAdmin())
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, view.Addon(addon)); err != nil {
		h.cfg.Log.Error("Failed to write response", "error", err)
	}
}

func (h *AddonHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params, identity model.Identity) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	addons, count, err := h.service.GetAll(r.Context(), identity.IsAdmin(), limit, offset)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WritePaginated(w, view.Addons(addons), count, limit, offset); err != nil {
		h.cfg.Log.Error("Failed to write response", "error", err)
	}
}

func (h *AddonHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params, _ model.Identity) {
	var input model.AddonUpdate
	if err := decodeStrict(r, &input); err != nil {
		h.writeError(w, err)
		return
	}

	addon, err := h.service.Update(r.Context(), ps.ByName("id"), &input)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, view.Addon(addon)); err != nil {
		h.cfg.Log.Error("Failed to write response", "error", err)
	}
}

func (h *AddonHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params, _ model.Identity) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *AddonHandler) writeError(w http.ResponseWriter, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.cfg.Log.Error("Failed to write error response", "error", writeErr)
	}
}

func decodeStrict(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return apperrors.InvalidInput("Invalid request body: " + err.Error())
	}
	return nil
}
