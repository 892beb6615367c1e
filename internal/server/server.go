// Package server exposes the calculators as a JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/iwvelando/calcsuite/internal/calculator"
	"github.com/iwvelando/calcsuite/pkg/calcerr"
	"github.com/iwvelando/calcsuite/pkg/constants"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type handler struct {
	svc         *calculator.Service
	logger      *zap.Logger
	maxBodySize int64
	version     string
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// Error kinds that do not come from a calculator
const (
	kindMalformed = "malformed_request"
	kindTooLarge  = "request_too_large"
)

// NewHandler constructs the HTTP handler that serves the calculator API.
func NewHandler(svc *calculator.Service, logger *zap.Logger, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if svc == nil {
		svc = calculator.New(calculator.WithLogger(logger))
	}

	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{svc: svc, logger: logger, maxBodySize: maxBodySize, version: trimmedVersion}

	mux := http.NewServeMux()
	route := func(pattern string, next http.HandlerFunc) {
		mux.Handle(pattern, instrumentRoute(pattern, next))
	}

	route("/api/loan/emi", handle(h, "server.handleLoan", svc.Loan))
	route("/api/loan/schedule", handle(h, "server.handleSchedule", svc.Schedule))
	route("/api/date/elapsed", handle(h, "server.handleElapsed", svc.Elapsed))
	route("/api/date/offset", handle(h, "server.handleOffset", svc.Offset))
	route("/api/pregnancy", handle(h, "server.handlePregnancy", svc.Pregnancy))
	route("/api/health/bmi", handle(h, "server.handleBMI", svc.BMI))
	route("/api/health/bmr", handle(h, "server.handleBMR", svc.BMR))
	route("/api/percentage-change", handle(h, "server.handlePercentageChange", svc.PercentageChange))
	route("/api/compound", handle(h, "server.handleCompound", svc.Compound))
	route("/api/sip", handle(h, "server.handleSIP", svc.SIP))
	route("/api/gst", handle(h, "server.handleGST", svc.GST))

	// Version endpoint for client metadata
	route("/api/version", h.handleVersion)
	route("/api/limits", h.handleLimits)
	route("/healthz", h.handleHealth)

	mux.Handle("/metrics", promhttp.Handler())

	return requestID(mux)
}

// handle adapts a calculator operation to a JSON POST endpoint.
func handle[Req, Resp any](h *handler, op string, calc func(context.Context, Req) (Resp, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
		var req Req
		if err := decodeJSON(r.Body, &req); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				h.respondError(w, r, op, http.StatusRequestEntityTooLarge, kindTooLarge,
					fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize))
				return
			}
			h.respondError(w, r, op, http.StatusBadRequest, kindMalformed,
				fmt.Sprintf("failed to decode request: %v", err))
			return
		}

		resp, err := calc(r.Context(), req)
		if err != nil {
			status := http.StatusInternalServerError
			if calcerr.IsCalculation(err) {
				status = http.StatusUnprocessableEntity
			}
			h.respondError(w, r, op, status, calcerr.KindOf(err), err.Error())
			return
		}

		h.writeJSON(w, http.StatusOK, resp)
	}
}

// decodeJSON decodes exactly one JSON value and rejects unknown fields.
func decodeJSON(body io.Reader, dst interface{}) error {
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleLimits(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, h.svc.Limits())
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) respondError(w http.ResponseWriter, r *http.Request, op string, status int, kind, msg string) {
	log := h.logger.Info
	if status >= http.StatusInternalServerError {
		log = h.logger.Error
	}
	log("calculation request failed",
		zap.String("op", op),
		zap.String("request_id", RequestIDFromContext(r.Context())),
		zap.Int("status", status),
		zap.String("kind", kind),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, errorResponse{Error: msg, Kind: kind})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}
