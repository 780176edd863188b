package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Siddarth2230/base62/internal/middleware"
	"github.com/Siddarth2230/base62/internal/models"
	"github.com/Siddarth2230/base62/internal/service"
	"github.com/Siddarth2230/base62/pkg/base62"
)

const maxBodyBytes = 1 << 20

type CodecHandler struct {
	service *service.CodecService
	logger  *log.Logger
}

func NewCodecHandler(svc *service.CodecService, logger *log.Logger) *CodecHandler {
	return &CodecHandler{service: svc, logger: logger}
}

// Router wires every endpoint plus the metrics and access-log middleware.
func (h *CodecHandler) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware, middleware.AccessLog(h.logger))

	r.HandleFunc("/healthz", h.Health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/encode/{value}", h.Encode).Methods("GET")
	r.HandleFunc("/decode/{code}", h.Decode).Methods("GET")
	r.HandleFunc("/clean", h.Clean).Methods("POST")
	r.HandleFunc("/digest", h.Digest).Methods("POST")
	r.HandleFunc("/ids", h.Issue).Methods("POST")
	r.HandleFunc("/ids/{code}", h.Lookup).Methods("GET")
	r.HandleFunc("/ids/{code}", h.Revoke).Methods("DELETE")
	return r
}

// GET /healthz
func (h *CodecHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GET /encode/{value}
func (h *CodecHandler) Encode(w http.ResponseWriter, r *http.Request) {
	value := mux.Vars(r)["value"]
	code, err := h.service.Encode(r.Context(), value)
	if err != nil {
		h.writeCodecError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.EncodeResponse{Value: base62.Clean(value), Code: code})
}

// GET /decode/{code}
func (h *CodecHandler) Decode(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	value, err := h.service.Decode(r.Context(), code)
	if err != nil {
		h.writeCodecError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.DecodeResponse{Code: base62.Clean(code), Value: value})
}

// POST /clean
func (h *CodecHandler) Clean(w http.ResponseWriter, r *http.Request) {
	var req models.CleanRequest
	if !h.readJSON(w, r, &req) {
		return
	}
	cleaned, err := h.service.Clean(req.Input)
	resp := models.CleanResponse{Input: req.Input, Cleaned: cleaned, Valid: err == nil}
	if err != nil {
		resp.Error = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

// POST /digest
func (h *CodecHandler) Digest(w http.ResponseWriter, r *http.Request) {
	var req models.DigestRequest
	if !h.readJSON(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, models.DigestResponse{Code: h.service.Digest(req.Input)})
}

// POST /ids
func (h *CodecHandler) Issue(w http.ResponseWriter, r *http.Request) {
	rec, err := h.service.Issue(r.Context())
	if err != nil {
		h.writeServiceError(w, "Issue", err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// GET /ids/{code}
func (h *CodecHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	rec, err := h.service.Lookup(r.Context(), mux.Vars(r)["code"])
	if err != nil {
		h.writeServiceError(w, "Lookup", err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// DELETE /ids/{code}
func (h *CodecHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Revoke(r.Context(), mux.Vars(r)["code"]); err != nil {
		h.writeServiceError(w, "Revoke", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CodecHandler) readJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return false
	}
	return true
}

// writeCodecError maps base62 errors to 4xx responses.
func (h *CodecHandler) writeCodecError(w http.ResponseWriter, err error) {
	var ice *base62.InvalidCharError
	switch {
	case errors.As(err, &ice):
		pos := ice.Pos
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{
			Error:     err.Error(),
			Char:      string(ice.Char),
			Position:  &pos,
			CodePoint: ice.CodePoint(),
		})
	case errors.Is(err, base62.ErrEmpty), errors.Is(err, base62.ErrType):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, base62.ErrNegative):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.logger.Error("codec error", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *CodecHandler) writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "code not found")
	case errors.Is(err, service.ErrLedgerDisabled):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, service.ErrGenExhausted):
		h.logger.Error(op+" error", "err", err)
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, base62.ErrInvalidChar), errors.Is(err, base62.ErrEmpty):
		h.writeCodecError(w, err)
	default:
		h.logger.Error(op+" error", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// helper: write JSON response
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("writeJSON encode error", "err", err)
	}
}

// helper: write an error message in JSON form { "error": "msg" }
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorResponse{Error: msg})
}
