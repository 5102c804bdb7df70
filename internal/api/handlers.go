// AVTV - Broadcast and VOD Catalog Query Service
// Copyright (C) 2007-2015, Intelibo Ltd
// https://github.com/alekmarinov/avtv

package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/alekmarinov/avtv/internal/catalog"
	"github.com/alekmarinov/avtv/internal/logging"
	"github.com/alekmarinov/avtv/internal/metrics"
	"github.com/alekmarinov/avtv/internal/models"
)

// Pinger reports backend connectivity for health checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves the catalog query API.
type Handler struct {
	engine *catalog.Engine
	pinger Pinger
}

// NewHandler creates an API handler over the given query engine.
func NewHandler(engine *catalog.Engine, pinger Pinger) *Handler {
	return &Handler{engine: engine, pinger: pinger}
}

// knownCommands keeps the metrics command label bounded; anything else is
// reported as "unknown".
var knownCommands = map[string]bool{
	"channels":  true,
	"programs":  true,
	"vod":       true,
	"search":    true,
	"recommend": true,
	"rate":      true,
}

func commandLabel(command string) string {
	if knownCommands[command] {
		return command
	}
	return "unknown"
}

// Dispatch handles GET and POST /v1/* catalog queries. The path after /v1 is
// the command followed by its positional parameters.
func (h *Handler) Dispatch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	path := strings.TrimPrefix(r.URL.Path, "/v1")
	query := catalog.ParseQuery(path, r.URL.Query())

	status := http.StatusOK
	defer func() {
		label := commandLabel(query.Command)
		metrics.RequestsTotal.WithLabelValues(label, strconv.Itoa(status)).Inc()
		metrics.RequestDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
	}()

	var (
		result any
		err    error
	)
	switch r.Method {
	case http.MethodGet:
		result, err = h.engine.Execute(r.Context(), query)
	case http.MethodPost:
		if query.Command != "rate" {
			status = http.StatusMethodNotAllowed
			respondError(w, r, status, "METHOD_NOT_ALLOWED", "Command does not accept POST", nil)
			return
		}
		if err = r.ParseForm(); err != nil {
			status = http.StatusBadRequest
			respondError(w, r, status, "INVALID_REQUEST", "Malformed form body", err)
			return
		}
		err = h.engine.SetRating(r.Context(), query.Params, r.PostFormValue("rating"))
		result = map[string]string{"status": "ok"}
	default:
		status = http.StatusMethodNotAllowed
		respondError(w, r, status, "METHOD_NOT_ALLOWED", "Unsupported method", nil)
		return
	}

	if err != nil {
		status = statusFor(err)
		respondError(w, r, status, codeFor(status), err.Error(), err)
		return
	}

	switch v := result.(type) {
	case *models.Table:
		respondJSON(w, r, http.StatusOK, v)
	case string:
		respondText(w, r, v)
	default:
		respondJSON(w, r, http.StatusOK, v)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, catalog.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func codeFor(status int) string {
	switch status {
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	default:
		return "INTERNAL_ERROR"
	}
}

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.pinger != nil {
		if err := h.pinger.Ping(r.Context()); err != nil {
			logging.Error().Err(err).Msg("Health check failed")
			respondError(w, r, http.StatusServiceUnavailable, "UNAVAILABLE", "Store unreachable", err)
			return
		}
	}
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
