package server

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"foodcpi/internal/charts"
	"foodcpi/internal/config"
	"foodcpi/internal/reports"
	"foodcpi/internal/storage"
)

// HandleRoot redirects to the default view
func (s *Server) HandleRoot(w http.ResponseWriter, r *http.Request) {
	target := reports.ViewHref(s.Service.Catalog().DefaultView, false)
	http.Redirect(w, r, target, http.StatusFound)
}

// HandleView serves a dashboard page
func (s *Server) HandleView(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	page, err := s.Service.RenderPage(r.Context(), id, selection(r), false)
	if err != nil {
		s.renderError(w, "view "+id, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(page))
}

// HandleSeries returns the computed series of a view as JSON
func (s *Server) HandleSeries(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	resp, err := s.Service.SeriesData(r.Context(), id, selection(r))
	if err != nil {
		s.renderError(w, "series "+id, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleExportTable returns the dataset as an Excel workbook
func (s *Server) HandleExportTable(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.Service.WriteWorkbook(r.Context(), &buf); err != nil {
		s.renderError(w, "table export", err)
		return
	}

	w.Header().Set("Content-Type", storage.GetContentType("table.xlsx"))
	w.Header().Set("Content-Disposition", `attachment; filename="food_cpi.xlsx"`)
	w.Write(buf.Bytes())
}

// HandleExportChart returns the chart of a view as a PNG image
func (s *Server) HandleExportChart(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("file")
	id, ok := strings.CutSuffix(file, ".png")
	if !ok || id == "" {
		http.Error(w, "Chart export must end in .png", http.StatusNotFound)
		return
	}

	var buf bytes.Buffer
	if err := s.Service.RenderChartPNG(r.Context(), &buf, id, selection(r)); err != nil {
		s.renderError(w, "chart export "+id, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}

// HandleReload drops the cached dataset and reads it again
func (s *Server) HandleReload(w http.ResponseWriter, r *http.Request) {
	table, err := s.Loader.Reload(r.Context())
	if err != nil {
		log.Printf("Reload failed: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("Dataset reloaded: %d rows", table.Len())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "reloaded",
		"rows":    table.Len(),
		"columns": table.Columns,
	})
}

// HandleRefresh downloads the dataset from the configured source, stores it
// and reloads
func (s *Server) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	url := s.Config.DataSourceURL
	if url == "" {
		writeError(w, http.StatusBadRequest, "DATA_SOURCE_URL is not configured")
		return
	}

	ctx := r.Context()
	result, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		log.Printf("Dataset refresh failed: %v", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	table, err := s.Loader.Replace(ctx, result.Data)
	if err != nil {
		log.Printf("Failed to store refreshed dataset: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("Dataset refreshed from %s: %d rows", url, table.Len())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "refreshed",
		"source":     url,
		"rows":       table.Len(),
		"fetched_at": result.FetchedAt.Format(time.RFC3339),
	})
}

// HandleCreateSnapshot renders every view and stores the result
func (s *Server) HandleCreateSnapshot(w http.ResponseWriter, r *http.Request) {
	// Try to acquire the mutex - if already locked, return error immediately
	if !s.snapshotMutex.TryLock() {
		log.Printf("Snapshot generation already in progress, rejecting new request")
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"error":   "Snapshot generation already in progress",
			"message": "Another snapshot is currently being generated. Please wait for it to complete before starting a new one.",
			"status":  "conflict",
		})
		return
	}
	defer s.snapshotMutex.Unlock()

	ctx := r.Context()
	log.Printf("Starting snapshot generation...")

	snap, err := s.Service.GenerateSnapshot(ctx, time.Now())
	if err != nil {
		log.Printf("Snapshot generation failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Snapshot generation failed: "+err.Error())
		return
	}

	stored, err := s.Snapshots.StoreAll(ctx, snap)
	if err != nil {
		log.Printf("Snapshot storage failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Snapshot storage failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":         snap.ID,
		"folder":     snap.FolderPath,
		"created_at": snap.CreatedAt.Format(time.RFC3339),
		"files":      stored,
		"url":        "/files/" + snap.FolderPath + "/index.html",
	})
}

// HandleListSnapshots lists recent snapshots
func (s *Server) HandleListSnapshots(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r)

	snapshots, err := s.Snapshots.List(r.Context(), limit)
	if err != nil {
		log.Printf("Failed to list snapshots: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to list snapshots: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"snapshots": snapshots,
		"count":     len(snapshots),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleFileProxy serves files from the configured storage
func (s *Server) HandleFileProxy(w http.ResponseWriter, r *http.Request) {
	filePath := r.PathValue("path")
	if filePath == "" {
		http.Error(w, "File path required", http.StatusBadRequest)
		return
	}

	// Security check: prevent directory traversal
	if strings.Contains(filePath, "..") {
		http.Error(w, "Invalid file path", http.StatusBadRequest)
		return
	}

	fileData, err := s.Storage.GetFile(r.Context(), filePath)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "File not found", http.StatusNotFound)
			return
		}
		log.Printf("Failed to get file from storage: %v", err)
		http.Error(w, "Failed to read file", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", storage.GetContentType(filePath))
	w.Write(fileData)
}

// HandleHealth provides health check endpoint
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	loaded, rows, loadErr := s.Loader.Status()

	data := map[string]interface{}{
		"loaded": loaded,
		"rows":   rows,
		"path":   s.Loader.Path(),
	}
	if loadErr != nil {
		data["error"] = loadErr.Error()
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   config.GetVersion(),
		"mode":      s.Config.DeploymentMode,
		"mockup":    s.Config.MockupMode,
		"data":      data,
	})
}

// renderError maps service errors to HTTP status codes
func (s *Server) renderError(w http.ResponseWriter, what string, err error) {
	switch {
	case errors.Is(err, reports.ErrUnknownView), errors.Is(err, reports.ErrNoChart):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, charts.ErrNoData):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		log.Printf("Failed to render %s: %v", what, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
