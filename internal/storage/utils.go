package storage

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"
)

// SnapshotsRoot is the storage prefix for rendered dashboard snapshots
const SnapshotsRoot = "snapshots"

// GenerateSnapshotFolderPath generates a consistent folder path for snapshots
// Format: snapshots/YYYY/MM/DD/FoodCPI-YYYY-MM-DD-HH-MM-SS
func GenerateSnapshotFolderPath(timestamp time.Time) string {
	return fmt.Sprintf("%s/%04d/%02d/%02d/FoodCPI-%04d-%02d-%02d-%02d-%02d-%02d",
		SnapshotsRoot,
		timestamp.Year(), timestamp.Month(), timestamp.Day(),
		timestamp.Year(), timestamp.Month(), timestamp.Day(),
		timestamp.Hour(), timestamp.Minute(), timestamp.Second())
}

// ListSnapshots returns snapshot index files, newest first.
// A limit of zero or less returns every snapshot.
func ListSnapshots(ctx context.Context, client StorageClient, limit int) ([]string, error) {
	files, err := client.ListDir(ctx, SnapshotsRoot, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}

	var index []string
	for _, f := range files {
		if path.Base(f) == "index.html" {
			index = append(index, f)
		}
	}

	// Folder names embed the timestamp, so reverse lexical order is newest first
	sort.Sort(sort.Reverse(sort.StringSlice(index)))

	if limit > 0 && limit < len(index) {
		index = index[:limit]
	}
	return index, nil
}

// GetContentType determines the MIME content type based on file extension
func GetContentType(filename string) string {
	switch strings.ToLower(path.Ext(filename)) {
	case ".json":
		return "application/json"
	case ".txt":
		return "text/plain"
	case ".csv":
		return "text/csv"
	case ".html":
		return "text/html"
	case ".css":
		return "text/css"
	case ".md":
		return "text/markdown"
	case ".toml":
		return "application/toml"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}
