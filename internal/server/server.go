package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/iwvelando/advisor-forecast/internal/config"
	"github.com/iwvelando/advisor-forecast/internal/report"
	"github.com/iwvelando/advisor-forecast/internal/store"
	"github.com/iwvelando/advisor-forecast/pkg/constants"
	"github.com/iwvelando/advisor-forecast/pkg/datetime"
	"github.com/iwvelando/advisor-forecast/pkg/normalize"
	"github.com/iwvelando/advisor-forecast/pkg/output"
)

type handler struct {
	logger        *zap.Logger
	repo          store.Repository
	clock         datetime.YearProvider
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the report API. repo
// backs the stored-client routes and may be nil, in which case those routes
// answer 404.
func NewHandler(logger *zap.Logger, repo store.Repository, maxUploadSize int64, version string) http.Handler {
	return newHandler(logger, repo, maxUploadSize, version, datetime.SystemClock{})
}

// NewHandlerWithFixedYear is NewHandler with stored-client reports computed as
// of year instead of the current calendar year. A year of zero uses the clock.
func NewHandlerWithFixedYear(logger *zap.Logger, repo store.Repository, maxUploadSize int64, version string, year int) http.Handler {
	return newHandler(logger, repo, maxUploadSize, version, datetime.ProviderFor(year))
}

func newHandler(logger *zap.Logger, repo store.Repository, maxUploadSize int64, version string, clock datetime.YearProvider) http.Handler {
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

	h := &handler{logger: logger, repo: repo, clock: clock, maxUploadSize: maxUploadSize, version: trimmedVersion}

	mux := http.NewServeMux()

	// Report API endpoint (file upload)
	mux.HandleFunc("/api/report", h.handleReport)

	// Report API endpoint for editor-driven updates
	mux.HandleFunc("/api/editor/report", h.handleReportEditor)

	// Client file serialization endpoint for editor downloads
	mux.HandleFunc("/api/editor/export", h.handleConfigExport)

	// Stored clients
	mux.HandleFunc("GET /api/clients/{id}/report", h.handleClientReport)
	mux.HandleFunc("PUT /api/stakeholders/{id}/priority", h.handlePriority)
	mux.HandleFunc("PUT /api/assets/{id}/beneficiaries/{beneficiary}", h.handleAllocation)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type reportResponse struct {
	Report     *report.Report         `json:"report"`
	CSV        string                 `json:"csv"`
	Warnings   []string               `json:"warnings,omitempty"`
	Duration   string                 `json:"duration"`
	Config     map[string]interface{} `json:"config,omitempty"`
	ConfigYAML string                 `json:"configYaml,omitempty"`
}

type priorityRequest struct {
	Priority *float64 `json:"priority"`
}

type priorityResponse struct {
	ID       string  `json:"id"`
	ClientID string  `json:"clientId"`
	Name     string  `json:"name"`
	Priority float64 `json:"priority"`
	Need     float64 `json:"need"`
	Want     float64 `json:"want"`
}

type allocationRequest struct {
	Allocation *float64 `json:"allocation"`
}

type allocationResponse struct {
	AssetID       string  `json:"assetId"`
	BeneficiaryID string  `json:"beneficiaryId"`
	Allocation    float64 `json:"allocation"`
}

// priorityResult finds the stakeholder or purpose in a report built from
// the stored client.
func priorityResult(rep *report.Report, id uuid.UUID) (priorityResponse, bool) {
	for _, rec := range rep.Stakeholders {
		if rec.ID == id {
			return priorityResponse{ID: id.String(), ClientID: rep.ClientID, Name: rec.Name,
				Priority: rec.Priority, Need: rec.Need, Want: rec.Want}, true
		}
	}
	for _, rec := range rep.Purposes.Purposes {
		if rec.ID == id {
			return priorityResponse{ID: id.String(), ClientID: rep.ClientID, Name: rec.Name,
				Priority: rec.Priority, Need: rec.Need, Want: rec.Want}, true
		}
	}
	return priorityResponse{}, false
}

func (h *handler) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize))
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "missing client file")
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", "server.handleReport"),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to read client file: %v", err))
		return
	}

	configBytes := buf.Bytes()
	configMap, err := decodeYAMLToMap(configBytes)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("error reading client data, %v", err))
		return
	}

	h.runReport(w, configBytes, configMap, start, "server.handleReport")
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

func (h *handler) handleReportEditor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode client: %v", err), "server.handleReportEditor")
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	configPayload := payload
	if rawConfig, ok := payload["config"]; ok {
		cfgMap, ok := rawConfig.(map[string]interface{})
		if !ok {
			h.respondErrorWithOp(w, http.StatusBadRequest, "invalid config payload: expected object", "server.handleReportEditor")
			return
		}
		configPayload = cfgMap
	}

	configBytes, err := yaml.Marshal(configPayload)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to encode client: %v", err), "server.handleReportEditor")
		return
	}

	configMap, err := decodeYAMLToMap(configBytes)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to parse client: %v", err), "server.handleReportEditor")
		return
	}

	h.runReport(w, configBytes, configMap, start, "server.handleReportEditor")
}

func (h *handler) handleConfigExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode client: %v", err), "server.handleConfigExport")
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	yamlBytes, err := marshalOrderedConfigYAML(payload)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to encode client: %v", err), "server.handleConfigExport")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

func (h *handler) handleClientReport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleClientReport"
	start := time.Now()

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid client id %q", r.PathValue("id")), op)
		return
	}
	if h.repo == nil {
		h.respondErrorWithOp(w, http.StatusNotFound, "no client store configured", op)
		return
	}

	client, err := h.repo.Client(r.Context(), id)
	if err != nil {
		h.respondErrorWithOp(w, statusFor(err), err.Error(), op)
		return
	}

	rep, err := report.GenerateWithFixedYear(h.logger, client, h.clock.Year())
	if err != nil {
		h.respondErrorWithOp(w, statusFor(err), fmt.Sprintf("failed to compute report: %v", err), op)
		return
	}

	h.respondReport(w, rep, nil, nil, nil, start, op)
}

func (h *handler) handlePriority(w http.ResponseWriter, r *http.Request) {
	const op = "server.handlePriority"

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid stakeholder id %q", r.PathValue("id")), op)
		return
	}
	if h.repo == nil {
		h.respondErrorWithOp(w, http.StatusNotFound, "no client store configured", op)
		return
	}

	var req priorityRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxUploadSize)).Decode(&req); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode priority: %v", err), op)
		return
	}
	if req.Priority == nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing priority", op)
		return
	}

	clientID, err := h.repo.UpdatePriority(r.Context(), id, *req.Priority)
	if err != nil {
		h.respondErrorWithOp(w, statusFor(err), err.Error(), op)
		return
	}

	h.logger.Info("priority updated",
		zap.String("op", op),
		zap.String("stakeholder", id.String()),
		zap.Float64("priority", *req.Priority),
	)

	client, err := h.repo.Client(r.Context(), clientID)
	if err != nil {
		h.respondErrorWithOp(w, statusFor(err), err.Error(), op)
		return
	}
	rep, err := report.GenerateWithFixedYear(h.logger, client, h.clock.Year())
	if err != nil {
		h.respondErrorWithOp(w, statusFor(err), fmt.Sprintf("failed to compute report: %v", err), op)
		return
	}
	result, ok := priorityResult(rep, id)
	if !ok {
		h.respondErrorWithOp(w, http.StatusNotFound, fmt.Sprintf("stakeholder %s not in report", id), op)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

func (h *handler) handleAllocation(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleAllocation"

	assetID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid asset id %q", r.PathValue("id")), op)
		return
	}
	beneficiaryID, err := uuid.Parse(r.PathValue("beneficiary"))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid beneficiary id %q", r.PathValue("beneficiary")), op)
		return
	}
	if h.repo == nil {
		h.respondErrorWithOp(w, http.StatusNotFound, "no client store configured", op)
		return
	}

	var req allocationRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxUploadSize)).Decode(&req); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode allocation: %v", err), op)
		return
	}
	if req.Allocation == nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing allocation", op)
		return
	}

	if err := h.repo.UpdateAllocation(r.Context(), assetID, beneficiaryID, *req.Allocation); err != nil {
		h.respondErrorWithOp(w, statusFor(err), err.Error(), op)
		return
	}

	h.logger.Info("allocation updated",
		zap.String("op", op),
		zap.String("asset", assetID.String()),
		zap.String("beneficiary", beneficiaryID.String()),
		zap.Float64("allocation", *req.Allocation),
	)

	h.writeJSON(w, http.StatusOK, allocationResponse{
		AssetID:       assetID.String(),
		BeneficiaryID: beneficiaryID.String(),
		Allocation:    *req.Allocation,
	})
}

// statusFor maps store and normalization errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, normalize.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func marshalOrderedConfigYAML(payload map[string]interface{}) ([]byte, error) {
	items := make([]orderedItem, 0, len(payload))
	seen := make(map[string]struct{})

	for _, key := range []string{"currentYear", "logging", "output", "client"} {
		if value, ok := payload[key]; ok {
			items = append(items, orderedItem{key: key, value: value})
			seen[key] = struct{}{}
		}
	}

	remainingKeys := make([]string, 0, len(payload))
	for key := range payload {
		if _, already := seen[key]; already {
			continue
		}
		remainingKeys = append(remainingKeys, key)
	}
	sort.Strings(remainingKeys)
	for _, key := range remainingKeys {
		items = append(items, orderedItem{key: key, value: payload[key]})
	}

	ordered := orderedConfig{items: items}
	return yaml.Marshal(ordered)
}

type orderedConfig struct {
	items []orderedItem
}

type orderedItem struct {
	key   string
	value interface{}
}

func (o orderedConfig) MarshalYAML() (interface{}, error) {
	mapNode := &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
	}

	for _, item := range o.items {
		keyNode := &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Value: item.key,
		}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(item.value); err != nil {
			return nil, err
		}
		mapNode.Content = append(mapNode.Content, keyNode, valueNode)
	}

	return mapNode, nil
}

func (h *handler) runReport(w http.ResponseWriter, configBytes []byte, configMap map[string]interface{}, start time.Time, op string) {
	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(configBytes))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	client, err := cfg.ToClient()
	if err != nil {
		h.respondErrorWithOp(w, statusFor(err), err.Error(), op)
		return
	}
	warnings := cfg.ValidateConfiguration()

	year := cfg.CurrentYear
	if year <= 0 {
		year = h.clock.Year()
	}

	rep, err := report.GenerateWithFixedYear(h.logger, client, year)
	if err != nil {
		h.respondErrorWithOp(w, statusFor(err), fmt.Sprintf("failed to compute report: %v", err), op)
		return
	}

	if configMap == nil {
		configMap = make(map[string]interface{})
	}
	h.respondReport(w, rep, warnings, configMap, configBytes, start, op)
}

func (h *handler) respondReport(w http.ResponseWriter, rep *report.Report, warnings []string, configMap map[string]interface{}, configBytes []byte, start time.Time, op string) {
	csv, err := output.CsvString(rep)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to render CSV: %v", err), op)
		return
	}

	elapsed := time.Since(start)
	response := reportResponse{
		Report:     rep,
		CSV:        csv,
		Warnings:   mergeWarnings(warnings, rep.Warnings),
		Duration:   elapsed.String(),
		Config:     configMap,
		ConfigYAML: string(configBytes),
	}

	h.logger.Info("report computed",
		zap.String("op", op),
		zap.String("client", rep.ClientName),
		zap.Int("timelineYears", len(rep.Timeline)),
		zap.Int("warnings", len(response.Warnings)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

// mergeWarnings concatenates warning lists, dropping repeats.
func mergeWarnings(lists ...[]string) []string {
	var merged []string
	seen := make(map[string]struct{})
	for _, list := range lists {
		for _, warning := range list {
			trimmed := strings.TrimSpace(warning)
			if trimmed == "" {
				continue
			}
			if _, ok := seen[trimmed]; ok {
				continue
			}
			seen[trimmed] = struct{}{}
			merged = append(merged, trimmed)
		}
	}
	return merged
}

func decodeYAMLToMap(data []byte) (map[string]interface{}, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return make(map[string]interface{}), nil
	}

	var result map[string]interface{}
	if err := yaml.Unmarshal(trimmed, &result); err != nil {
		return nil, err
	}
	if result == nil {
		result = make(map[string]interface{})
	}
	return result, nil
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string) {
	h.respondErrorWithOp(w, status, msg, "server.handleReport")
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("report request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

// writeJSON encodes payload before committing the status so that an
// unencodable payload becomes a 500 rather than a truncated 200.
func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		h.logger.Error("failed to encode JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Int("status", status),
			zap.Error(err),
		)
		status = http.StatusInternalServerError
		buf.Reset()
		buf.WriteString(`{"error":"failed to encode response"}` + "\n")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("failed to write JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}
