package loader

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"foodcpi/internal/logger"
	"foodcpi/internal/models"
	"foodcpi/internal/storage"
)

// LoadError reports that the dataset is missing, unreadable or unparsable.
// Callers treat it as "no data".
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Loader reads the CPI dataset from storage and memoizes the result
type Loader struct {
	client storage.StorageClient
	path   string
	log    *logger.Logger

	mu     sync.Mutex
	loaded bool
	table  *models.PriceTable
	err    error
}

// New creates a loader reading path from client
func New(client storage.StorageClient, path string) *Loader {
	return &Loader{
		client: client,
		path:   path,
		log:    logger.Component("loader"),
	}
}

// Path returns the storage path of the dataset
func (l *Loader) Path() string {
	return l.path
}

// Load returns the dataset, reading it on first use. A failed load returns
// an empty table and a *LoadError, and stays cached until Reload.
func (l *Loader) Load(ctx context.Context) (*models.PriceTable, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.loaded {
		l.table, l.err = l.read(ctx)
		l.loaded = true
	}
	return l.table, l.err
}

// Reload drops the cached dataset and reads it again
func (l *Loader) Reload(ctx context.Context) (*models.PriceTable, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.table, l.err = l.read(ctx)
	l.loaded = true
	return l.table, l.err
}

// Replace validates data as a CPI table, stores it at the dataset path and
// reloads. Invalid data leaves the stored dataset untouched.
func (l *Loader) Replace(ctx context.Context, data []byte) (*models.PriceTable, error) {
	if _, err := ParseCSV(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to validate dataset: %w", err)
	}
	if err := l.client.StoreFile(ctx, l.path, data); err != nil {
		return nil, fmt.Errorf("failed to store dataset: %w", err)
	}
	return l.Reload(ctx)
}

// Status reports whether a load was attempted and how many rows it produced
func (l *Loader) Status() (loaded bool, rows int, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loaded, l.table.Len(), l.err
}

func (l *Loader) read(ctx context.Context) (*models.PriceTable, error) {
	data, err := l.client.GetFile(ctx, l.path)
	if err != nil {
		return l.fail(err)
	}

	table, err := ParseCSV(bytes.NewReader(data))
	if err != nil {
		return l.fail(err)
	}

	l.log.Info("Dataset loaded", map[string]interface{}{
		"path":    l.path,
		"rows":    table.Len(),
		"columns": len(table.Columns),
	})
	return table, nil
}

func (l *Loader) fail(cause error) (*models.PriceTable, error) {
	loadErr := &LoadError{Path: l.path, Err: cause}
	l.log.Error("Dataset unavailable, serving empty table", loadErr, map[string]interface{}{
		"path": l.path,
	})
	return models.NewEmptyTable(), loadErr
}
