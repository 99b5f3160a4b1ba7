// mock_storage.go - Mock storage implementation for testing
package testutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/tmlemon/opi2edl/internal/models"
	"github.com/tmlemon/opi2edl/internal/storage"
)

// MockStorage implements storage.Store for testing. File contents are
// written to a temp directory so readers that need a path can use them.
type MockStorage struct {
	mu      sync.RWMutex
	tempDir string
	files   map[string]*models.FileInfo
	nextID  int

	// SaveErr, when set, is returned by Save once SaveErrAfter files have
	// been saved.
	SaveErr      error
	SaveErrAfter int
}

// NewMockStorage creates a new mock storage writing to tempDir
func NewMockStorage(tempDir string) *MockStorage {
	return &MockStorage{
		tempDir: tempDir,
		files:   make(map[string]*models.FileInfo),
	}
}

func (m *MockStorage) Save(name string, r io.Reader) (*models.FileInfo, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	if m.SaveErr != nil && m.nextID >= m.SaveErrAfter {
		m.mu.Unlock()
		return nil, m.SaveErr
	}
	m.nextID++
	id := fmt.Sprintf("test-id-%d", m.nextID)
	m.mu.Unlock()

	return m.AddFile(id, name, data), nil
}

func (m *MockStorage) Get(id string) (*models.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	file, ok := m.files[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return file, nil
}

func (m *MockStorage) List(limit int) ([]*models.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var files []*models.FileInfo
	for _, file := range m.files {
		files = append(files, file)
		if limit > 0 && len(files) >= limit {
			break
		}
	}
	return files, nil
}

func (m *MockStorage) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.files[id]; !exists {
		return storage.ErrNotFound
	}
	delete(m.files, id)
	return os.Remove(m.path(id))
}

func (m *MockStorage) SetStatus(id, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	file, ok := m.files[id]
	if !ok {
		return storage.ErrNotFound
	}
	file.Status = status
	return nil
}

func (m *MockStorage) GetFilePath(id string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.files[id]; !ok {
		return "", storage.ErrNotFound
	}
	return m.path(id), nil
}

func (m *MockStorage) Open(id string) (io.ReadCloser, error) {
	path, err := m.GetFilePath(id)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

func (m *MockStorage) path(id string) string {
	return filepath.Join(m.tempDir, id)
}

// Ensure MockStorage implements storage.Store
var _ storage.Store = (*MockStorage)(nil)

// Test Helper Methods

// AddFile writes the file to disk and adds it to the mock
func (m *MockStorage) AddFile(id string, name string, data []byte) *models.FileInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.WriteFile(m.path(id), data, 0644); err != nil {
		panic(fmt.Sprintf("failed to write test file: %v", err))
	}

	file := &models.FileInfo{
		ID:         id,
		Name:       name,
		Kind:       strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), "."),
		Size:       int64(len(data)),
		UploadedAt: time.Now(),
		Status:     "uploaded",
	}
	m.files[id] = file
	return file
}

// GetFileData returns the file content
func (m *MockStorage) GetFileData(id string) ([]byte, error) {
	path, err := m.GetFilePath(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, storage.ErrNotFound
	}
	return data, err
}

// GetFileCount returns the number of stored files
func (m *MockStorage) GetFileCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.files)
}
