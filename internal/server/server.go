package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"

	"foodcpi/internal/config"
	"foodcpi/internal/fetchers"
	"foodcpi/internal/loader"
	"foodcpi/internal/mocks"
	"foodcpi/internal/reports"
	"foodcpi/internal/selector"
	"foodcpi/internal/storage"
)

// Server represents the main application server
type Server struct {
	Config    *config.Config
	Storage   storage.StorageClient
	Loader    *loader.Loader
	Service   *reports.Service
	Fetcher   *fetchers.DataFetcher
	Snapshots *reports.StorageOrchestrator

	snapshotMutex sync.Mutex
}

// NewServer creates a new server instance from configuration. Mockup mode
// serves a synthetic dataset from in-memory storage.
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	var client storage.StorageClient
	if cfg.MockupMode {
		mock, err := mocks.NewMockService(ctx, cfg.DataPath)
		if err != nil {
			return nil, err
		}
		client = mock.Storage()
		log.Printf("Mockup mode enabled - serving synthetic dataset")
	} else {
		c, err := storage.NewStorageClient(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		client = c
	}

	catalog, err := selector.LoadCatalog(cfg.ViewsFile)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to load view catalog: %w", err)
	}

	return New(cfg, client, catalog, fetchers.NewDataFetcher())
}

// New wires a server around an existing storage client and catalog
func New(cfg *config.Config, client storage.StorageClient, catalog *selector.Catalog, fetcher *fetchers.DataFetcher) (*Server, error) {
	l := loader.New(client, cfg.DataPath)
	svc, err := reports.NewService(l, catalog)
	if err != nil {
		return nil, err
	}

	return &Server{
		Config:    cfg,
		Storage:   client,
		Loader:    l,
		Service:   svc,
		Fetcher:   fetcher,
		Snapshots: reports.NewStorageOrchestrator(client),
	}, nil
}

// SetupRoutes configures HTTP routes for the server
func (s *Server) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.HandleRoot)
	mux.HandleFunc("GET /view/{id}", s.HandleView)
	mux.HandleFunc("GET /api/series/{id}", s.HandleSeries)
	mux.HandleFunc("GET /export/table.xlsx", s.HandleExportTable)
	mux.HandleFunc("GET /export/chart/{file}", s.HandleExportChart)
	mux.HandleFunc("POST /reload", s.HandleReload)
	mux.HandleFunc("POST /refresh", s.HandleRefresh)
	mux.HandleFunc("POST /snapshots", s.HandleCreateSnapshot)
	mux.HandleFunc("GET /snapshots", s.HandleListSnapshots)
	mux.HandleFunc("GET /files/{path...}", s.HandleFileProxy)
	mux.HandleFunc("GET /health", s.HandleHealth)

	return mux
}

// Close cleans up server resources
func (s *Server) Close() error {
	if s.Storage != nil {
		return s.Storage.Close()
	}
	return nil
}
