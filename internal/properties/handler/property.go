package handler

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"roamify/internal/properties/service"
	"roamify/pkg/auth"
	"roamify/pkg/config"
	apperrors "roamify/pkg/errors"
	httputil "roamify/pkg/http"
	"roamify/pkg/middleware"
	"roamify/pkg/model"
)

type PropertyHandler struct {
	service service.PropertyService
	cfg     *config.Config
}

func NewPropertyHandler(service service.PropertyService, cfg *config.Config) *PropertyHandler {
	return &PropertyHandler{
		service: service,
		cfg:     cfg,
	}
}

func (h *PropertyHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/properties", h.List)
	router.GET("/api/v1/properties/:id", h.GetByID)
	router.POST("/api/v1/properties", middleware.RequireListingManager(h.Create))
	router.PUT("/api/v1/properties/:id", middleware.RequireListingManager(h.Update))
	router.DELETE("/api/v1/properties/:id", middleware.RequireListingManager(h.Delete))
	// /properties/host would collide with /properties/:id in the router.
	router.GET("/api/v1/host/properties", middleware.RequireListingManager(h.ListHost))
}

// listResponse mirrors the paginated listing payload.
type listResponse struct {
	Properties      []*model.Property `json:"properties"`
	CurrentPage     int               `json:"currentPage"`
	TotalPages      int               `json:"totalPages"`
	TotalProperties int64             `json:"totalProperties"`
}

func (h *PropertyHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	page, limit, err := httputil.ExtractPagination(r)
	if err != nil {
		_ = httputil.WriteError(w, err)
		return
	}

	filter, err := extractFilter(r)
	if err != nil {
		_ = httputil.WriteError(w, err)
		return
	}

	properties, total, err := h.service.List(r.Context(), filter, page, limit)
	if err != nil {
		_ = httputil.WriteError(w, err)
		return
	}
	if properties == nil {
		properties = []*model.Property{}
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	_ = httputil.WriteJSON(w, http.StatusOK, listResponse{
		Properties:      properties,
		CurrentPage:     page,
		TotalPages:      totalPages,
		TotalProperties: total,
	})
}

func (h *PropertyHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	property, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		_ = httputil.WriteError(w, err)
		return
	}
	_ = httputil.WriteSuccess(w, property)
}

func (h *PropertyHandler) ListHost(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, _ := auth.IdentityFromContext(r.Context())

	properties, err := h.service.ListByHost(r.Context(), identity)
	if err != nil {
		_ = httputil.WriteError(w, err)
		return
	}
	if properties == nil {
		properties = []*model.Property{}
	}
	_ = httputil.WriteSuccess(w, properties)
}

func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, _ := auth.IdentityFromContext(r.Context())

	var property model.Property
	if err := json.NewDecoder(r.Body).Decode(&property); err != nil {
		_ = httputil.WriteError(w, apperrors.InvalidInput("Invalid request body"))
		return
	}

	if err := h.service.Create(r.Context(), identity, &property); err != nil {
		_ = httputil.WriteError(w, err)
		return
	}
	_ = httputil.WriteCreated(w, property)
}

func (h *PropertyHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	identity, _ := auth.IdentityFromContext(r.Context())

	var property model.Property
	if err := json.NewDecoder(r.Body).Decode(&property); err != nil {
		_ = httputil.WriteError(w, apperrors.InvalidInput("Invalid request body"))
		return
	}

	updated, err := h.service.Update(r.Context(), identity, ps.ByName("id"), &property)
	if err != nil {
		_ = httputil.WriteError(w, err)
		return
	}
	_ = httputil.WriteSuccess(w, updated)
}

func (h *PropertyHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	identity, _ := auth.IdentityFromContext(r.Context())

	if err := h.service.Delete(r.Context(), identity, ps.ByName("id")); err != nil {
		_ = httputil.WriteError(w, err)
		return
	}
	httputil.WriteNoContent(w)
}

func extractFilter(r *http.Request) (model.PropertyFilter, error) {
	query := r.URL.Query()
	filter := model.PropertyFilter{
		City: query.Get("city"),
		Type: query.Get("type"),
		Term: query.Get("search"),
	}

	if s := query.Get("minPrice"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 {
			return filter, apperrors.InvalidInput("invalid minPrice parameter: " + s)
		}
		filter.MinPrice = &v
	}
	if s := query.Get("maxPrice"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 {
			return filter, apperrors.InvalidInput("invalid maxPrice parameter: " + s)
		}
		filter.MaxPrice = &v
	}
	if s := query.Get("guests"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return filter, apperrors.InvalidInput("invalid guests parameter: " + s)
		}
		filter.Guests = &v
	}

	return filter, nil
}
