package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRenderView(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "cpi.csv")
	csv := "Year,All food,Food at home,Food away from home\n2021,3.9,3.5,4.5\n2022,9.9,11.4,7.7\n2023,5.8,5.0,7.1\n"
	if err := os.WriteFile(data, []byte(csv), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out")

	if _, err := execute(t, "render", "--view", "trend", "--data", data, "--out", out, "--year", "2030"); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	page, err := os.ReadFile(filepath.Join(out, "trend.html"))
	if err != nil {
		t.Fatalf("Expected trend.html: %v", err)
	}
	if !strings.Contains(string(page), "<strong>2030</strong>") {
		t.Error("Expected projection year in page")
	}
	for _, name := range []string{"index.html", "trend.png"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("Expected %s: %v", name, err)
		}
	}
}

func TestRenderTableView(t *testing.T) {
	out := t.TempDir()

	output, err := execute(t, "render", "--view", "data", "--mock", "--out", out)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(output, "No chart image") {
		t.Errorf("Expected a note about the missing chart, got %q", output)
	}
	if _, err := os.Stat(filepath.Join(out, "data.png")); !os.IsNotExist(err) {
		t.Error("Expected no chart image for the table view")
	}
}

func TestRenderAll(t *testing.T) {
	out := t.TempDir()

	if _, err := execute(t, "render", "--all", "--mock", "--out", out); err != nil {
		t.Fatalf("render --all failed: %v", err)
	}
	for _, name := range []string{"index.html", "meta.json", "overview.html", "meats.png", "data.html"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("Expected %s: %v", name, err)
		}
	}
}

func TestRenderUnknownView(t *testing.T) {
	if _, err := execute(t, "render", "--view", "nope", "--mock", "--out", t.TempDir()); err == nil {
		t.Error("Expected error for unknown view")
	}
}

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Year,All food\n2022,9.9\n2023,5.8\n"))
	}))
	defer server.Close()

	out := filepath.Join(t.TempDir(), "data", "cpi.csv")
	output, err := execute(t, "fetch", "--url", server.URL, "--out", out)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if !strings.Contains(output, "Fetched 2 rows") {
		t.Errorf("Unexpected output %q", output)
	}
	if data, err := os.ReadFile(out); err != nil || !strings.HasPrefix(string(data), "Year,All food") {
		t.Errorf("Expected dataset file, got %q (%v)", data, err)
	}
}

func TestFetchURLFromEnvironment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Year,All food\n2023,5.8\n"))
	}))
	defer server.Close()
	t.Setenv("DATA_SOURCE_URL", server.URL)

	out := filepath.Join(t.TempDir(), "cpi.csv")
	output, err := execute(t, "fetch", "--out", out)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if !strings.Contains(output, "Fetched 1 rows") {
		t.Errorf("Unexpected output %q", output)
	}
}
