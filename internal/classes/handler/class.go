package handler

import (
	"encoding/json"
	"net/http"

	"theworks/internal/classes/service"
	"theworks/pkg/auth"
	"theworks/pkg/config"
	apperrors "theworks/pkg/errors"
	httputil "theworks/pkg/http"
	"theworks/pkg/model"
	"theworks/pkg/view"

	"github.com/julienschmidt/httprouter"
)

type ClassHandler struct {
	service service.ClassService
	cfg     *config.Config
}

func NewClassHandler(service service.ClassService, cfg *config.Config) *ClassHandler {
	return &ClassHandler{service: service, cfg: cfg}
}

func (h *ClassHandler) RegisterRoutes(router *httprouter.Router, guard *auth.Guard) {
	router.GET("/api/v1/classes", guard.Protect(auth.Public(), h.GetAll))
	router.GET("/api/v1/classes/id/:id", guard.Protect(auth.Public(), h.GetByID))
	router.POST("/api/v1/classes", guard.Protect(auth.RequireRole(model.RoleAdmin), h.Create))
	router.PATCH("/api/v1/classes/id/:id", guard.Protect(auth.RequireRole(model.RoleAdmin), h.Update))
	router.DELETE("/api/v1/classes/id/:id", guard.Protect(auth.RequireRole(model.RoleAdmin), h.Delete))
}

func (h *ClassHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params, _ model.Identity) {
	var input model.ClassCreate
	if err := decodeStrict(r, &input); err != nil {
		h.writeError(w, err)
		return
	}

	class, err := h.service.Create(r.Context(), &input)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteCreated(w, view.Class(class)); err != nil {
		h.cfg.Log.Error("Failed to write response", "error", err)
	}
}

// GetByID is public; only admins see inactive classes.
func (h *ClassHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params, identity model.Identity) {
	class, err := h.service.GetByID(r.Context(), ps.ByName("id"), identity.IsAdmin())
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, view.Class(class)); err != nil {
		h.cfg.Log.Error("Failed to write response", "error", err)
	}
}

func (h *ClassHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params, identity model.Identity) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	classes, count, err := h.service.GetAll(r.Context(), identity.IsAdmin(), limit, offset)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WritePaginated(w, view.Classes(classes), count, limit, offset); err != nil {
		h.cfg.Log.Error("Failed to write response", "error", err)
	}
}

func (h *ClassHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params, _ model.Identity) {
	var input model.ClassUpdate
	if err := decodeStrict(r, &input); err != nil {
		h.writeError(w, err)
		return
	}

	class, err := h.service.Update(r.Context(), ps.ByName("id"), &input)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, view.Class(class)); err != nil {
		h.cfg.Log.Error("Failed to write response", "error", err)
	}
}

func (h *ClassHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params, _ model.Identity) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *ClassHandler) writeError(w http.ResponseWriter, err error) {
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
