// Package server exposes the analyzer over HTTP.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/warrenlab/warren/internal/logger"
	"github.com/warrenlab/warren/internal/types"
	"github.com/warrenlab/warren/pkg/errors"
	"github.com/warrenlab/warren/pkg/marketdata"
)

const defaultPeriod = marketdata.PeriodOneYear

// StockAnalyzer produces a report for a ticker over a trailing period.
type StockAnalyzer interface {
	AnalyzeStock(ctx context.Context, ticker string, period marketdata.Period) (types.Report, error)
}

// Server serves analysis reports over HTTP.
type Server struct {
	analyzer StockAnalyzer
	logger   *logger.Logger
	server   *http.Server
}

// NewServer creates a server listening on address.
func NewServer(address string, analyzer StockAnalyzer, log *logger.Logger) *Server {
	if log == nil {
		log = logger.NewNopLogger()
	}

	s := &Server{
		analyzer: analyzer,
		logger:   log,
	}

	s.server = &http.Server{
		Addr:              address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/analysis/{ticker}", s.handleAnalysis).Methods(http.MethodGet)

	return r
}

// Start blocks serving HTTP until Shutdown is called or the listener fails.
func (s *Server) Start() error {
	s.logger.Info("http server listening", zap.String("address", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(errors.ErrCodeServerStartFailed, "http server failed", err)
	}

	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	ticker := mux.Vars(r)["ticker"]

	period := defaultPeriod

	if raw := r.URL.Query().Get("period"); raw != "" {
		parsed, err := marketdata.ParsePeriod(raw)
		if err != nil {
			s.writeError(w, err)

			return
		}

		period = parsed
	}

	report, err := s.analyzer.AnalyzeStock(r.Context(), ticker, period)
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Warn("failed to encode response", zap.Error(err))
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)

	status := http.StatusInternalServerError

	if errors.IsInsufficientDataError(err) {
		code = errors.ErrCodeInsufficientData
		status = http.StatusUnprocessableEntity
	}

	switch code {
	case errors.ErrCodeInvalidTicker, errors.ErrCodeInvalidLookback, errors.ErrCodeInvalidParameter:
		status = http.StatusBadRequest
	case errors.ErrCodeNoDataFound:
		status = http.StatusNotFound
	case errors.ErrCodeProviderUnavailable, errors.ErrCodeFetchFailed:
		status = http.StatusBadGateway
	}

	s.logger.Warn("request failed", zap.Int("status", status), zap.Error(err))

	s.writeJSON(w, status, errorResponse{Error: err.Error(), Code: int(code)})
}
