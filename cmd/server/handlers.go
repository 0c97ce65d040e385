package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/himanishpuri/ClipLink/pkg/cliplink"
	"github.com/himanishpuri/ClipLink/pkg/logger"
	"github.com/himanishpuri/ClipLink/pkg/models"
)

// Server encapsulates the HTTP server and its dependencies
type Server struct {
	service cliplink.Service
	config  *ServerConfig
	log     cliplink.Logger
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	DBPath         string
	TempDir        string
	NumFrames      int
	AllowedOrigins []string
}

// NewServer creates a new server instance
func NewServer(service cliplink.Service, config *ServerConfig) *Server {
	return &Server{
		service: service,
		config:  config,
		log:     logger.GetLogger(),
	}
}

// respondJSON writes a JSON response
func (s *Server) respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Errorf("Failed to encode JSON response: %v", err)
	}
}

// respondError writes an error response
func (s *Server) respondError(w http.ResponseWriter, statusCode int, message string) {
	s.respondJSON(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	})
}

// handleRoot handles GET /
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"service": "ClipLink API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"health":  "GET /health",
			"analyze": "POST /api/analyze",
			"search":  "POST /api/search",
		},
	})
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, HealthResponse{
		Status:       "healthy",
		Time:         time.Now().Format(time.RFC3339),
		Capabilities: s.service.Capabilities(),
	})
}

// handleAnalyze handles POST /api/analyze
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.log.Errorf("Failed to decode request: %v", err)
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.log.Infof("Analyzing clip: %s", req.URL)
	result, err := s.service.AnalyzeClip(ctx, cliplink.AnalyzeRequest{
		URL:       req.URL,
		Note:      req.Note,
		NumFrames: req.NumFrames,
	})
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	// An empty product list is a valid outcome, not an error.
	s.log.Infof("Analysis complete: %d products for %q", len(result.Products), result.Query)
	s.respondJSON(w, http.StatusOK, AnalyzeResponse{
		Products:        toProductDTOs(result.Products),
		Count:           len(result.Products),
		DetectedLabels:  result.Labels,
		DetectedBrand:   result.Brand,
		Query:           result.Query,
		FramesExtracted: result.FramesExtracted,
		FramesLabeled:   result.FramesLabeled,
	})
}

// handleSearch handles POST /api/search
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.log.Errorf("Failed to decode request: %v", err)
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.log.Infof("Searching products: %q", req.Query)
	results, err := s.service.SearchProducts(ctx, req.Query, req.TopK)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, SearchResponse{
		Products: toProductDTOs(results),
		Count:    len(results),
		Query:    req.Query,
	})
}

// respondServiceError maps pipeline errors onto HTTP status codes:
// caller mistakes are 400, upstream failures are 502, timeouts are 504.
func (s *Server) respondServiceError(w http.ResponseWriter, err error) {
	var inputErr *models.InputError
	if errors.As(err, &inputErr) {
		s.respondError(w, http.StatusBadRequest, inputErr.Error())
		return
	}

	if errors.Is(err, context.DeadlineExceeded) {
		s.log.Errorf("Request timed out: %v", err)
		s.respondError(w, http.StatusGatewayTimeout, "Processing took too long")
		return
	}

	var (
		downloadErr   *models.DownloadError
		extractionErr *models.ExtractionError
		visionErr     *models.VisionError
		upstreamErr   *models.UpstreamError
	)
	switch {
	case errors.As(err, &downloadErr),
		errors.As(err, &extractionErr),
		errors.As(err, &visionErr),
		errors.As(err, &upstreamErr):
		s.log.Errorf("Upstream failure: %v", err)
		s.respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	s.log.Errorf("Unexpected error: %v", err)
	s.respondError(w, http.StatusInternalServerError, "Internal server error")
}
