package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
)

// MemoryStore is an in-process ObjectStorage, used for dry runs and tests.
type MemoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

func memoryKey(bucket, key string) string {
	return bucket + "/" + key
}

func (m *MemoryStore) Get(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, newError("get", bucket, key, err)
	}

	m.mu.Lock()
	data, ok := m.objects[memoryKey(bucket, key)]
	m.mu.Unlock()
	if !ok {
		return nil, notFound("get", bucket, key, errors.New("no such key"))
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *MemoryStore) Put(ctx context.Context, bucket, key string, body io.Reader, size int64) error {
	if err := ctx.Err(); err != nil {
		return newError("put", bucket, key, err)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return newError("put", bucket, key, err)
	}

	m.mu.Lock()
	m.objects[memoryKey(bucket, key)] = data
	m.mu.Unlock()
	return nil
}
