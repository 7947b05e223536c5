package controllers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	idsvc "github.com/rzbill/flake/internal/services/ids"
	"github.com/rzbill/flake/pkg/id"
)

// IDsController issues and decodes ids.
type IDsController struct {
	svc *idsvc.Service
}

// NewIDsController creates a new ids controller.
func NewIDsController(svc *idsvc.Service) *IDsController {
	return &IDsController{svc: svc}
}

// RegisterRoutes registers:
// - GET|POST /v1/ids?count=N
// - GET /v1/ids/{id}
func (c *IDsController) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/v1/ids", c.handleNext).Methods(http.MethodGet, http.MethodPost)
	router.HandleFunc("/v1/ids/{id}", c.handleDecode).Methods(http.MethodGet)
}

type nextResp struct {
	IDs []id.ID `json:"ids"`
}

// handleNext returns {"ids": ["..."]}; ids are decimal strings.
func (c *IDsController) handleNext(w http.ResponseWriter, r *http.Request) {
	count := 1
	if s := r.URL.Query().Get("count"); s != "" {
		count = parseCount(s)
	}
	ids, err := c.svc.NextBatch(r.Context(), count)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, nextResp{IDs: ids})
}

type decodeResp struct {
	ID id.ID `json:"id"`
	id.Parts
}

func (c *IDsController) handleDecode(w http.ResponseWriter, r *http.Request) {
	v, err := id.ParseID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	writeJSON(w, decodeResp{ID: v, Parts: c.svc.Decode(v)})
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, idsvc.ErrInvalidCount):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, id.ErrClockRegression), errors.Is(err, id.ErrTimestampOverflow):
		w.Header().Set("Retry-After", "1")
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "Failed to generate id")
	}
}
