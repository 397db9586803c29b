package handler

import (
	"encoding/json"
	"net/http"

	"theworks/internal/trainers/service"
	"theworks/pkg/auth"
	"theworks/pkg/config"
	apperrors "theworks/pkg/errors"
	httputil "theworks/pkg/http"
	"theworks/pkg/model"
	"theworks/pkg/view"

	"github.com/julienschmidt/httprouter"
)

type TrainerHandler struct {
	service service.TrainerService
	cfg     *config.Config
}

func NewTrainerHandler(service service.TrainerService, cfg *config.Config) *TrainerHandler {
	return &TrainerHandler{service: service, cfg: cfg}
}

func (h *TrainerHandler) RegisterRoutes(router *httprouter.Router, guard *auth.Guard) {
	router.GET("/api/v1/trainers", guard.Protect(auth.Public(), h.GetAll))
	router.GET("/api/v1/trainers/id/:id", guard.Protect(auth.Public(), h.GetByID))
	router.POST("/api/v1/trainers", guard.Protect(auth.RequireRole(model.RoleAdmin), h.Create))
	router.PATCH("/api/v1/trainers/id/:id", guard.Protect(auth.RequireRole(model.RoleAdmin), h.Update))
	router.DELETE("/api/v1/trainers/id/:id", guard.Protect(auth.RequireRole(model.RoleAdmin), h.Delete))
}

func (h *TrainerHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params, identity model.Identity) {
	var input model.TrainerCreate
	if err := decodeStrict(r, &input); err != nil {
		h.writeError(w, err)
		return
	}

	trainer, err := h.service.Create(r.Context(), &input)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteCreated(w, view.Trainer(trainer, identity.Role)); err != nil {
		h.cfg.Log.Error("Failed to write response", "error", err)
	}
}

// GetByID projects the trainer for the caller's role: contact details are
// admin-only.
func (h *TrainerHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params, identity model.Identity) {
	trainer, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, view.Trainer(trainer, identity.Role)); err != nil {
		h.cfg.Log.Error("Failed to write response", "error", err)
	}
}

func (h *TrainerHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params, identity model.Identity) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	trainers, count, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WritePaginated(w, view.Trainers(trainers, identity.Role), count, limit, offset); err != nil {
		h.cfg.Log.Error("Failed to write response", "error", err)
	}
}

func (h *TrainerHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params, identity model.Identity) {
	var input model.TrainerUpdate
	if err := decodeStrict(r, &input); err != nil {
		h.writeError(w, err)
		return
	}

	trainer, err := h.service.Update(r.Context(), ps.ByName("id"), &input)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, view.Trainer(trainer, identity.Role)); err != nil {
		h.cfg.Log.Error("Failed to write response", "error", err)
	}
}

func (h *TrainerHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params, _ model.Identity) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *TrainerHandler) writeError(w http.ResponseWriter, err error) {
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
