package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"foodcpi/internal/config"
	"foodcpi/internal/server"
)

func TestHealthEndpoint(t *testing.T) {
	cfg := &config.Config{
		Port:           "8080",
		DataPath:       "USDA_75_23_CPI.csv",
		DataDir:        t.TempDir(),
		DeploymentMode: config.DeploymentLocal,
		Environment:    "test",
	}

	srv, err := server.NewServer(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}
	defer srv.Close()

	req, err := http.NewRequest("GET", "/health", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	srv.HandleHealth(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v",
			status, http.StatusOK)
	}

	if !strings.Contains(rr.Body.String(), "healthy") {
		t.Errorf("handler returned unexpected body: got %v", rr.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	cfg := &config.Config{
		Port:           "8080",
		DataPath:       "USDA_75_23_CPI.csv",
		DeploymentMode: config.DeploymentLocal,
		MockupMode:     true,
		Environment:    "test",
	}

	srv, err := server.NewServer(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}
	defer srv.Close()

	ts := httptest.NewServer(srv.SetupRoutes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200 after redirect, got %d", resp.StatusCode)
	}
	if resp.Request.URL.Path != "/view/overview" {
		t.Errorf("Expected redirect to /view/overview, got %s", resp.Request.URL.Path)
	}
}

func TestConfigLoad(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	t.Setenv("DEPLOYMENT_MODE", "local")
	t.Setenv("DATA_PATH", "cpi.csv")

	cfg, err := config.Load(ctx)
	if err != nil {
		t.Fatalf("Config load failed: %v", err)
	}
	if cfg.DataPath != "cpi.csv" || cfg.Port == "" {
		t.Errorf("Unexpected config: %+v", cfg)
	}
}
