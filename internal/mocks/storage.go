package mocks

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"foodcpi/internal/storage"
)

// MockStorage is an in-memory storage.StorageClient
type MockStorage struct {
	mu    sync.RWMutex
	files map[string][]byte
}

var _ storage.StorageClient = (*MockStorage)(nil)

// NewMockStorage creates an empty in-memory store
func NewMockStorage() *MockStorage {
	return &MockStorage{files: make(map[string][]byte)}
}

func clean(p string) string {
	return strings.TrimPrefix(p, "/")
}

// Close is a no-op
func (m *MockStorage) Close() error {
	return nil
}

// StoreFile stores a copy of fileData
func (m *MockStorage) StoreFile(ctx context.Context, filePath string, fileData []byte) error {
	if strings.Contains(filePath, "..") {
		return fmt.Errorf("invalid path %q", filePath)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[clean(filePath)] = append([]byte(nil), fileData...)
	return nil
}

// GetFile returns a copy of the stored file
func (m *MockStorage) GetFile(ctx context.Context, filePath string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[clean(filePath)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, filePath)
	}
	return append([]byte(nil), data...), nil
}

// ListDir lists stored paths below dirPath in sorted order
func (m *MockStorage) ListDir(ctx context.Context, dirPath string, recursive bool) ([]string, error) {
	prefix := strings.TrimSuffix(clean(dirPath), "/")
	if prefix != "" {
		prefix += "/"
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	files := []string{}
	for p := range m.files {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		if !recursive && strings.Contains(strings.TrimPrefix(p, prefix), "/") {
			continue
		}
		files = append(files, p)
	}
	sort.Strings(files)
	return files, nil
}

// FileExists reports whether filePath is stored
func (m *MockStorage) FileExists(ctx context.Context, filePath string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[clean(filePath)]
	return ok, nil
}

// Len returns the number of stored files
func (m *MockStorage) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.files)
}
