package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/JonMunkholm/packlist/internal/core"
	"github.com/JonMunkholm/packlist/internal/intake"
	"github.com/JonMunkholm/packlist/internal/logging"
)

// HealthResponse reports liveness and processing capacity.
type HealthResponse struct {
	Status string                `json:"status"`
	Runs   core.RunLimiterStatus `json:"runs"`
}

// CountryResponse is the result of a country lookup.
type CountryResponse struct {
	Name  string `json:"name"`
	Code  string `json:"code"`
	Found bool   `json:"found"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Runs: s.runs.Status()})
}

// handleProcess normalizes a JSON array of packing-list rows.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize)

	var input any
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, r, errRequestTooLarge, http.StatusRequestEntityTooLarge)
			return
		}
		respondError(w, r, fmt.Errorf("invalid json: %w", err), http.StatusBadRequest)
		return
	}

	s.process(w, r, input, "json")
}

// handleUpload normalizes an uploaded CSV or XLSX packing list.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		respondError(w, r, errRequestTooLarge, http.StatusRequestEntityTooLarge)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, r, errNoFile, http.StatusBadRequest)
		return
	}
	defer file.Close()

	logger := logging.WithFields(r.Context(), "file", header.Filename, "size", header.Size)

	rows, err := intake.Read(file, header.Filename, r.FormValue("sheet"))
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}
	logger.Info("file parsed", "rows", len(rows))

	s.process(w, r, intake.Rows(rows), "upload")
}

// process validates input, waits for a processing slot and runs the
// pipeline.
func (s *Server) process(w http.ResponseWriter, r *http.Request, input any, source string) {
	ctx := r.Context()

	rows, issues := core.ValidateRows(input)
	if len(issues) > 0 {
		respondIssues(w, r, issues)
		return
	}

	if err := s.runs.Acquire(ctx); err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	defer s.runs.Release()

	out, err := s.processor.ProcessData(ctx, rows)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	logging.FromContext(ctx).Info("packing list returned",
		"source", source,
		"items", out.Summary.ProcessedRows,
		"total_pcs", out.Summary.TotalPcs,
	)
	writeJSON(w, http.StatusOK, out)
}

// handleResolveCountry resolves ?name= to a country code. Unknown names
// report "N/A" with found=false.
func (s *Server) handleResolveCountry(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		respondError(w, r, errMissingCountry, http.StatusBadRequest)
		return
	}

	resp := CountryResponse{Name: name, Code: core.NotApplicableCode}
	if code, ok := s.countries.Resolve(name); ok {
		resp.Code = code
		resp.Found = true
	}
	writeJSON(w, http.StatusOK, resp)
}
