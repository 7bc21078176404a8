package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"path"
	"sync"
)

// ErrBlobNotFound возвращается, если объект с таким ключом отсутствует.
var ErrBlobNotFound = errors.New("blob not found")

// BlobStore хранит содержимое версий документов.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
}

// DocumentVersionKey строит ключ объекта для версии документа.
func DocumentVersionKey(proposalId, documentId string, version int, fileName string) string {
	return fmt.Sprintf("proposals/%s/documents/%s/v%d/%s", proposalId, documentId, version, path.Base(fileName))
}

// Hash возвращает sha256 содержимого в hex.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// MemoryBlobStore - реализация BlobStore в памяти процесса.
type MemoryBlobStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryBlobStore создаёт пустое хранилище объектов.
func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{objects: make(map[string][]byte)}
}

func (s *MemoryBlobStore) Put(_ context.Context, key string, data []byte, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = append([]byte(nil), data...)
	return nil
}

func (s *MemoryBlobStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBlobNotFound, key)
	}
	return append([]byte(nil), data...), nil
}
