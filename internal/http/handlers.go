package http

import (
	"context"
	"net/http"

	"ledgerd/internal/core"
)

// invoke adapts one tool method into a handler: decode the params,
// run the tool, encode the result. Every failure renders as the
// taxonomy error body.
func invoke[P, R any](s *Server, fn func(context.Context, P) (R, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var p P
		if err := decodeJSON(w, r, &p); err != nil {
			s.writeError(w, r, core.Errf(core.KindInvalidInput, "Invalid request body."))
			return
		}

		res, err := fn(r.Context(), p)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// handleCategoriesTool serves the taxonomy through the tool surface.
// The body, if any, is ignored; the tool takes no parameters.
func (s *Server) handleCategoriesTool(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, s.tools.Categories(r.Context()))
}

// handleCategoriesRead serves the same taxonomy as a readable resource.
func (s *Server) handleCategoriesRead(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, s.tools.Categories(r.Context()))
}

// handleUnknownTool catches /tools/ paths with no registered tool so
// the surface stays uniformly JSON.
func (s *Server) handleUnknownTool(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, r, core.Errf(core.KindNotFound, "Unknown tool."))
}
