package handler

import (
	"encoding/json"
	"net/http"

	"theworks/internal/enquiries/service"
	"theworks/pkg/auth"
	"theworks/pkg/config"
	apperrors "theworks/pkg/errors"
	httputil "theworks/pkg/http"
	"theworks/pkg/model"
	"theworks/pkg/view"

	"github.com/julienschmidt/httprouter"
)

type EnquiryHandler struct {
	service service.EnquiryService
	cfg     *config.Config
}

func NewEnquiryHandler(service service.EnquiryService, cfg *config.Config) *EnquiryHandler {
	return &EnquiryHandler{service: service, cfg: cfg}
}

// RegisterRoutes: submission is open to anonymous callers, everything else
// is admin-only.
func (h *EnquiryHandler) RegisterRoutes(router *httprouter.Router, guard *auth.Guard) {
	router.POST("/api/v1/enquiries", guard.Protect(auth.Public(), h.Create))
	router.GET("/api/v1/enquiries", guard.Protect(auth.RequireRole(model.RoleAdmin), h.GetAll))
	router.GET("/api/v1/enquiries/id/:id", guard.Protect(auth.RequireRole(model.RoleAdmin), h.GetByID))
	router.DELETE("/api/v1/enquiries/id/:id", guard.Protect(auth.RequireRole(model.RoleAdmin), h.Delete))
}

// Create responds with a projection matched to the caller: anonymous
// submitters get a bare receipt, admins get the stored enquiry back.
func (h *EnquiryHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params, identity model.Identity) {
	var input model.EnquiryCreate
	if err := decodeStrict(r, &input); err != nil {
		h.writeError(w, err)
		return
	}

	enquiry, err := h.service.Create(r.Context(), &input)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteCreated(w, view.Enquiry(enquiry, identity.Role)); err != nil {
		h.cfg.Log.Error("Failed to write response", "error", err)
	}
}

func (h *EnquiryHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params, identity model.Identity) {
	enquiry, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, view.Enquiry(enquiry, identity.Role)); err != nil {
		h.cfg.Log.Error("Failed to write response", "error", err)
	}
}

func (h *EnquiryHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params, identity model.Identity) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	enquiries, count, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WritePaginated(w, view.Enquiries(enquiries, identity.Role), count, limit, offset); err != nil {
		h.cfg.Log.Error("Failed to write response", "error", err)
	}
}

func (h *EnquiryHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params, _ model.Identity) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *EnquiryHandler) writeError(w http.ResponseWriter, err error) {
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
