package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"roamify/internal/users/service"
	"roamify/pkg/auth"
	"roamify/pkg/config"
	apperrors "roamify/pkg/errors"
	httputil "roamify/pkg/http"
	"roamify/pkg/middleware"
	"roamify/pkg/model"
)

type UserHandler struct {
	service service.UserService
	cfg     *config.Config
}

func NewUserHandler(service service.UserService, cfg *config.Config) *UserHandler {
	return &UserHandler{
		service: service,
		cfg:     cfg,
	}
}

func (h *UserHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/users/me", middleware.RequireAuth(h.GetMe))
	router.PUT("/api/v1/users/me", middleware.RequireAuth(h.UpdateMe))
	router.GET("/api/v1/users/saved-properties", middleware.RequireAuth(h.ListSaved))
	router.PATCH("/api/v1/users/saved-properties/:propertyId", middleware.RequireAuth(h.UpdateSaved))
}

func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, _ := auth.IdentityFromContext(r.Context())

	user, err := h.service.GetProfile(r.Context(), identity)
	if err != nil {
		_ = httputil.WriteError(w, err)
		return
	}
	_ = httputil.WriteSuccess(w, user)
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, _ := auth.IdentityFromContext(r.Context())

	var update model.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		_ = httputil.WriteError(w, apperrors.InvalidInput("Invalid request body"))
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), identity, update)
	if err != nil {
		_ = httputil.WriteError(w, err)
		return
	}
	_ = httputil.WriteSuccess(w, user)
}

type savedPropertiesResponse struct {
	SavedProperties []string `json:"savedProperties"`
}

func (h *UserHandler) UpdateSaved(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	identity, _ := auth.IdentityFromContext(r.Context())

	var update model.SavedPropertyUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		_ = httputil.WriteError(w, apperrors.InvalidInput("Invalid request body"))
		return
	}

	saved, err := h.service.UpdateSavedProperty(r.Context(), identity, ps.ByName("propertyId"), update.Action)
	if err != nil {
		_ = httputil.WriteError(w, err)
		return
	}
	_ = httputil.WriteSuccess(w, savedPropertiesResponse{SavedProperties: saved})
}

func (h *UserHandler) ListSaved(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, _ := auth.IdentityFromContext(r.Context())

	properties, err := h.service.ListSavedProperties(r.Context(), identity)
	if err != nil {
		_ = httputil.WriteError(w, err)
		return
	}
	if properties == nil {
		properties = []*model.Property{}
	}
	_ = httputil.WriteSuccess(w, properties)
}
