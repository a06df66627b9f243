package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	mallerrors "github.com/jrsteele09/go-mall-client/internal/errors"
	"github.com/rs/zerolog/log"
)

const maxRequestBytes = 1 << 20

// envelope is the {success, message, ...} body every endpoint answers with
type envelope map[string]any

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Err(err).Msg("[Server writeJSON] failed to encode response")
	}
}

func writeSuccess(w http.ResponseWriter, status int, message string, fields envelope) {
	body := envelope{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range fields {
		body[k] = v
	}
	writeJSON(w, status, body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{"success": false, "message": message})
}

// writeDomainError maps repository errors onto HTTP statuses
func writeDomainError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case mallerrors.Is(err, mallerrors.ErrProductNotFound),
		mallerrors.Is(err, mallerrors.ErrCartItemNotFound),
		mallerrors.Is(err, mallerrors.ErrOrderNotFound),
		mallerrors.Is(err, mallerrors.ErrUserNotFound),
		mallerrors.Is(err, mallerrors.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case mallerrors.Is(err, mallerrors.ErrInvalidInput),
		mallerrors.Is(err, mallerrors.ErrInsufficientStock):
		writeError(w, http.StatusBadRequest, err.Error())
	case mallerrors.Is(err, mallerrors.ErrUserExists):
		writeError(w, http.StatusConflict, err.Error())
	case mallerrors.Is(err, mallerrors.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	default:
		log.Err(err).Msg(fallback)
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBytes)).Decode(v); err != nil {
		return mallerrors.Wrapf(mallerrors.ErrInvalidInput, "malformed request body: %v", err)
	}
	return nil
}

// pathID reads the numeric {id} route variable
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, mallerrors.Wrapf(mallerrors.ErrInvalidInput, "invalid id %q", mux.Vars(r)["id"])
	}
	return id, nil
}

func (s *Server) NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "no such endpoint: "+r.URL.Path)
	}
}

func (s *Server) MethodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, r.Method+" is not supported for "+r.URL.Path)
	}
}
