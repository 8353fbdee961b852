package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"roamify/internal/bookings/service"
	"roamify/pkg/auth"
	"roamify/pkg/config"
	apperrors "roamify/pkg/errors"
	httputil "roamify/pkg/http"
	"roamify/pkg/middleware"
	"roamify/pkg/model"
)

type BookingHandler struct {
	service service.BookingService
	cfg     *config.Config
}

func NewBookingHandler(service service.BookingService, cfg *config.Config) *BookingHandler {
	return &BookingHandler{
		service: service,
		cfg:     cfg,
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/bookings", middleware.RequireAuth(h.List))
	router.POST("/api/v1/bookings", middleware.RequireAuth(h.Create))
	router.GET("/api/v1/bookings/:id", middleware.RequireAuth(h.GetByID))
	router.PATCH("/api/v1/bookings/:id/status", middleware.RequireAuth(h.UpdateStatus))
}

// List serves both sides of a booking: ?filter=mine (default) returns the
// caller's stays, ?filter=host returns bookings across the caller's listings.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, _ := auth.IdentityFromContext(r.Context())

	var (
		bookings []*model.Booking
		err      error
	)
	switch filter := r.URL.Query().Get("filter"); filter {
	case "", "mine":
		bookings, err = h.service.ListMine(r.Context(), identity)
	case "host":
		if !identity.Role.CanManageListings() {
			_ = httputil.WriteError(w, apperrors.Forbidden("Host privileges required"))
			return
		}
		bookings, err = h.service.ListForHost(r.Context(), identity)
	default:
		_ = httputil.WriteError(w, apperrors.InvalidInput("filter must be 'mine' or 'host'"))
		return
	}
	if err != nil {
		_ = httputil.WriteError(w, err)
		return
	}

	if bookings == nil {
		bookings = []*model.Booking{}
	}
	_ = httputil.WriteSuccess(w, bookings)
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	identity, _ := auth.IdentityFromContext(r.Context())

	booking, err := h.service.GetByID(r.Context(), identity, ps.ByName("id"))
	if err != nil {
		_ = httputil.WriteError(w, err)
		return
	}
	_ = httputil.WriteSuccess(w, booking)
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, _ := auth.IdentityFromContext(r.Context())

	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = httputil.WriteError(w, apperrors.InvalidInput("Invalid request body"))
		return
	}

	booking, err := h.service.Create(r.Context(), identity, &req)
	if err != nil {
		_ = httputil.WriteError(w, err)
		return
	}
	_ = httputil.WriteCreated(w, booking)
}

func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	identity, _ := auth.IdentityFromContext(r.Context())

	var update model.BookingStatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		_ = httputil.WriteError(w, apperrors.InvalidInput("Invalid request body"))
		return
	}

	booking, err := h.service.UpdateStatus(r.Context(), identity, ps.ByName("id"), &update)
	if err != nil {
		_ = httputil.WriteError(w, err)
		return
	}
	_ = httputil.WriteSuccess(w, booking)
}
