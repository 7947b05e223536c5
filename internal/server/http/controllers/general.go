package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rzbill/flake/internal/runtime"
	idsvc "github.com/rzbill/flake/internal/services/ids"
)

// GeneralController handles health and node introspection.
type GeneralController struct {
	rt  *runtime.Runtime
	svc *idsvc.Service
}

// NewGeneralController creates a new general controller.
func NewGeneralController(rt *runtime.Runtime, svc *idsvc.Service) *GeneralController {
	return &GeneralController{rt: rt, svc: svc}
}

// RegisterRoutes registers general routes:
// - Health checks (/v1/healthz)
// - Node coordinates (/v1/node)
func (c *GeneralController) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/v1/healthz", c.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/v1/node", c.handleNode).Methods(http.MethodGet)
}

// handleHealth returns 200 OK with {"status": "ok"} if healthy, 503 otherwise.
func (c *GeneralController) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := c.rt.CheckHealth(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "not_serving")
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

func (c *GeneralController) handleNode(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, c.svc.Node())
}
