package http

import (
	"encoding/json"
	"net/http"

	"ledgerd/internal/core"
	"ledgerd/internal/log"
)

// maxBodyBytes bounds tool request bodies. Payloads are a handful of
// short fields; anything near this limit is not a legitimate call.
const maxBodyBytes = 1 << 20

// errorBody is the uniform failure shape: the taxonomy kind plus its
// stable message.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError renders any failure as its taxonomy body. Storage causes
// go to the log, never to the caller.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	te := core.Classify(err)
	status := statusFor(te.Kind)
	if status >= 500 {
		s.logger.ErrorContext(r.Context(), "Tool call failed",
			log.FieldRequestID, requestIDFrom(r.Context()),
			log.FieldPath, r.URL.Path,
			log.FieldError, err)
	}
	writeJSON(w, status, errorBody{Error: string(te.Kind), Message: te.Message})
}

func statusFor(kind core.Kind) int {
	switch kind {
	case core.KindInvalidInput:
		return http.StatusBadRequest
	case core.KindDuplicateEmail:
		return http.StatusConflict
	case core.KindUnauthenticated, core.KindBadCredentials:
		return http.StatusUnauthorized
	case core.KindUnknownEmail, core.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
