package host

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/navstack-dev/navstack/pkg/nav"
	"github.com/navstack-dev/navstack/pkg/routeinfo"
)

// Handler returns the host's HTTP surface:
//
//	GET  /ws        WebSocket endpoint for route changes and stack updates
//	GET  /stack     current stack snapshot
//	GET  /location  current address-bar location
//	POST /navigate  imperative push  {"location": "...", "arguments": {...}}
//	POST /close     imperative pop   {"result": ...}
func (h *Host) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/ws", h.handleWS)
	r.Get("/stack", h.handleStack)
	r.Get("/location", h.handleLocation)
	r.Post("/navigate", h.handleNavigate)
	r.Post("/close", h.handleClose)
	return r
}

func (h *Host) handleStack(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	msg := h.stackMessage()
	h.mu.Unlock()
	writeJSON(w, http.StatusOK, msg)
}

func (h *Host) handleLocation(w http.ResponseWriter, r *http.Request) {
	dest, ok := h.CurrentLocation()
	if !ok {
		writeJSON(w, http.StatusNoContent, nil)
		return
	}
	writeJSON(w, http.StatusOK, routeinfo.FromDestination(dest))
}

type navigateRequest struct {
	Location  string         `json:"location"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

func (h *Host) handleNavigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var arguments any
	if req.Arguments != nil {
		arguments = req.Arguments
	}
	pending, err := h.NavigateTo(r.Context(), req.Location, arguments)
	if err != nil {
		var notFound *nav.PageNotFoundError
		var exists *nav.PageExistsError
		switch {
		case errors.As(err, &notFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.As(err, &exists):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"name": pending.Name()})
}

type closeRequest struct {
	Result any `json:"result,omitempty"`
}

func (h *Host) handleClose(w http.ResponseWriter, r *http.Request) {
	var req closeRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	if err := h.Close(r.Context(), req.Result); err != nil {
		if errors.Is(err, nav.ErrCannotCloseRoot) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"closed": true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
