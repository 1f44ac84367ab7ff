package reports

import (
	"context"
	"fmt"
	"log"
	"path"
	"sort"

	"foodcpi/internal/storage"
)

// StorageOrchestrator writes snapshots to the configured storage backend
type StorageOrchestrator struct {
	storage storage.StorageClient
}

// NewStorageOrchestrator creates a new storage orchestrator
func NewStorageOrchestrator(client storage.StorageClient) *StorageOrchestrator {
	return &StorageOrchestrator{storage: client}
}

// StoreAll stores every snapshot file under its folder and returns the
// stored paths in name order
func (so *StorageOrchestrator) StoreAll(ctx context.Context, snap *SnapshotFiles) ([]string, error) {
	names := make([]string, 0, len(snap.Files))
	for name := range snap.Files {
		names = append(names, name)
	}
	sort.Strings(names)

	stored := make([]string, 0, len(names))
	for _, name := range names {
		p := path.Join(snap.FolderPath, name)
		if err := so.storage.StoreFile(ctx, p, snap.Files[name]); err != nil {
			return stored, fmt.Errorf("failed to store %s: %w", p, err)
		}
		stored = append(stored, p)
	}

	log.Printf("Snapshot %s stored in %s (%d files)", snap.ID, snap.FolderPath, len(stored))
	return stored, nil
}

// List returns stored snapshot index pages, newest first
func (so *StorageOrchestrator) List(ctx context.Context, limit int) ([]string, error) {
	return storage.ListSnapshots(ctx, so.storage, limit)
}
