package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"foodcpi/internal/charts"
	"foodcpi/internal/logger"
	"foodcpi/internal/models"
	"foodcpi/internal/storage"
)

// SnapshotMeta is written as meta.json next to every snapshot
type SnapshotMeta struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Version     string    `json:"version"`
	DefaultView string    `json:"default_view"`
	Views       []string  `json:"views"`
	Rows        int       `json:"rows"`
	Columns     []string  `json:"columns"`
}

// SnapshotFiles contains every file rendered for one snapshot
type SnapshotFiles struct {
	ID         string
	FolderPath string
	CreatedAt  time.Time
	Files      map[string][]byte // Relative name to content
}

// GenerateSnapshot renders every view as static HTML with a PNG chart,
// plus index.html for the default view and meta.json
func (s *Service) GenerateSnapshot(ctx context.Context, now time.Time) (*SnapshotFiles, error) {
	now = now.UTC()
	snap := &SnapshotFiles{
		ID:         uuid.NewString(),
		FolderPath: storage.GenerateSnapshotFolderPath(now),
		CreatedAt:  now,
		Files:      make(map[string][]byte),
	}

	none := models.SelectionState{}
	meta := SnapshotMeta{
		ID:          snap.ID,
		CreatedAt:   now,
		Version:     s.version,
		DefaultView: s.catalog.DefaultView,
	}

	for _, view := range s.catalog.Views {
		page, err := s.RenderPage(ctx, view.ID, none, true)
		if err != nil {
			return nil, fmt.Errorf("failed to render view %s: %w", view.ID, err)
		}
		snap.Files[view.ID+".html"] = []byte(page)
		meta.Views = append(meta.Views, view.ID)

		if view.ID == s.catalog.DefaultView {
			snap.Files["index.html"] = []byte(page)
		}

		if !view.HasChart() {
			continue
		}
		var png bytes.Buffer
		if err := s.RenderChartPNG(ctx, &png, view.ID, none); err != nil {
			if errors.Is(err, charts.ErrNoData) {
				logger.Warn("Skipping chart image", map[string]interface{}{"view": view.ID, "reason": err.Error()})
				continue
			}
			return nil, fmt.Errorf("failed to render chart %s: %w", view.ID, err)
		}
		snap.Files[view.ID+".png"] = png.Bytes()
	}

	if table, err := s.source.Load(ctx); err == nil {
		meta.Rows = table.Len()
		meta.Columns = table.Columns
	}

	metaJSON, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot metadata: %w", err)
	}
	snap.Files["meta.json"] = metaJSON

	logger.Info("Snapshot generated", map[string]interface{}{
		"id":     snap.ID,
		"folder": snap.FolderPath,
		"files":  len(snap.Files),
	})
	return snap, nil
}
