// Package server exposes the estimator over HTTP.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/docuflow-roi/internal/config"
	"github.com/iwvelando/docuflow-roi/internal/estimator"
	"github.com/iwvelando/docuflow-roi/internal/report"
	"github.com/iwvelando/docuflow-roi/internal/scenario"
	"github.com/iwvelando/docuflow-roi/pkg/constants"
	"github.com/iwvelando/docuflow-roi/pkg/output"
	"github.com/iwvelando/docuflow-roi/pkg/validation"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the estimate API.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxUploadSize: maxUploadSize, version: trimmedVersion}

	mux := http.NewServeMux()

	// Single estimate from a JSON input body
	mux.HandleFunc("/api/estimate", h.handleEstimate)

	// Scenario estimates from an uploaded YAML configuration
	mux.HandleFunc("/api/scenarios", h.handleScenarios)

	// Input serialization endpoint for configuration downloads
	mux.HandleFunc("/api/export", h.handleExport)

	mux.HandleFunc("/api/assumptions", h.handleAssumptions)
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type estimateResponse struct {
	Input    estimator.Input  `json:"input"`
	Output   estimator.Output `json:"output"`
	Report   report.Report    `json:"report"`
	Duration string           `json:"duration"`
}

type scenariosResponse struct {
	Results  []scenario.Result `json:"results"`
	CSV      string            `json:"csv"`
	Warnings []string          `json:"warnings,omitempty"`
	Duration string            `json:"duration"`
}

func (h *handler) handleEstimate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleEstimate"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	in, status, err := h.decodeInput(w, r)
	if err != nil {
		h.respondError(w, status, err.Error(), op)
		return
	}

	if err := validation.ValidateInput(in); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	result := scenario.Estimate(config.DefaultScenarioName, in)
	if err := validation.ValidateOutput(result.Output); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	elapsed := time.Since(start)

	h.logger.Info("estimate computed",
		zap.String("op", op),
		zap.Float64("totalAnnualSavings", result.Output.TotalAnnualSavings),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, estimateResponse{
		Input:    result.Input,
		Output:   result.Output,
		Report:   result.Report,
		Duration: elapsed.String(),
	})
}

func (h *handler) handleScenarios(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleScenarios"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "missing configuration file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), op)
		return
	}

	cfg, err := config.LoadConfigurationFromReader(&buf)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	warnings := cfg.ValidateConfiguration()
	results, err := scenario.Evaluate(h.logger, *cfg)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	if results == nil {
		results = []scenario.Result{}
	}

	elapsed := time.Since(start)
	h.logger.Info("scenarios estimated",
		zap.String("op", op),
		zap.Int("scenarios", len(results)),
		zap.Int("warnings", len(warnings)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, scenariosResponse{
		Results:  results,
		CSV:      output.CsvString(results),
		Warnings: warnings,
		Duration: elapsed.String(),
	})
}

func (h *handler) handleExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExport"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	in, status, err := h.decodeInput(w, r)
	if err != nil {
		h.respondError(w, status, err.Error(), op)
		return
	}

	conf := config.Configuration{Common: config.Common{Inputs: in}}
	yamlBytes, err := yaml.Marshal(conf)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode configuration: %v", err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

func (h *handler) handleAssumptions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string][]estimator.Assumption{
		"assumptions": estimator.Assumptions(),
	})
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

// decodeInput reads a JSON estimator.Input from the request body. Unknown
// fields are rejected so misspelled inputs do not silently become zero.
func (h *handler) decodeInput(w http.ResponseWriter, r *http.Request) (estimator.Input, int, error) {
	var in estimator.Input

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxUploadSize))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&in); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return in, http.StatusRequestEntityTooLarge, fmt.Errorf("request exceeds limit of %d bytes", h.maxUploadSize)
		}
		return in, http.StatusBadRequest, fmt.Errorf("failed to decode input: %w", err)
	}
	return in, http.StatusOK, nil
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
