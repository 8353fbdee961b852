package health

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"roamify/pkg/config"
	httputil "roamify/pkg/http"
)

type Handler struct {
	cfg *config.Config
}

func NewHandler(cfg *config.Config) *Handler {
	return &Handler{cfg: cfg}
}

func (h *Handler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Live)
	router.GET("/ready", h.Ready)
}

type status struct {
	Status string `json:"status"`
}

func (h *Handler) Live(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	_ = httputil.WriteJSON(w, http.StatusOK, status{Status: "ok"})
}

// Ready reports whether the database answers a ping; load balancers pull the
// instance out of rotation on a 503.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.cfg.Client.Mongo.Ping(ctx, readpref.Primary()); err != nil {
		h.cfg.Log.Error("Readiness ping failed", "error", err)
		_ = httputil.WriteJSON(w, http.StatusServiceUnavailable, status{Status: "unavailable"})
		return
	}
	_ = httputil.WriteJSON(w, http.StatusOK, status{Status: "ready"})
}
