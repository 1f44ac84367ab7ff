package reports

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestGenerateSnapshot(t *testing.T) {
	svc := newTestService(t, stubSource{table: sampleTable(t)})
	now := time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)

	snap, err := svc.GenerateSnapshot(context.Background(), now)
	if err != nil {
		t.Fatalf("GenerateSnapshot failed: %v", err)
	}

	if _, err := uuid.Parse(snap.ID); err != nil {
		t.Errorf("Expected UUID snapshot id, got %q", snap.ID)
	}
	if snap.FolderPath != "snapshots/2024/03/05/FoodCPI-2024-03-05-14-30-00" {
		t.Errorf("Unexpected folder path %s", snap.FolderPath)
	}

	for _, name := range []string{
		"index.html", "meta.json",
		"data.html", "overview.html", "categories.html", "meats.html", "trend.html",
		"overview.png", "categories.png", "meats.png", "trend.png",
	} {
		if len(snap.Files[name]) == 0 {
			t.Errorf("Expected snapshot file %s", name)
		}
	}
	if _, ok := snap.Files["data.png"]; ok {
		t.Error("Expected no chart image for the table view")
	}
	if string(snap.Files["index.html"]) != string(snap.Files["overview.html"]) {
		t.Error("Expected index.html to be the default view")
	}
	if strings.Contains(string(snap.Files["trend.html"]), "/view/") {
		t.Error("Expected static links in snapshot pages")
	}

	var meta SnapshotMeta
	if err := json.Unmarshal(snap.Files["meta.json"], &meta); err != nil {
		t.Fatalf("Failed to parse meta.json: %v", err)
	}
	if meta.ID != snap.ID || meta.Rows != 5 || meta.DefaultView != "overview" || len(meta.Views) != 5 {
		t.Errorf("Unexpected metadata: %+v", meta)
	}
}

func TestGenerateSnapshotWithoutData(t *testing.T) {
	svc := newTestService(t, stubSource{err: errors.New("missing")})

	snap, err := svc.GenerateSnapshot(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("GenerateSnapshot failed: %v", err)
	}
	for name := range snap.Files {
		if strings.HasSuffix(name, ".png") {
			t.Errorf("Expected no chart images without data, got %s", name)
		}
	}
	if !strings.Contains(string(snap.Files["index.html"]), "No data available") {
		t.Error("Expected no-data message in index.html")
	}
}
