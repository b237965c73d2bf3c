package storage

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/loftfs/loftfs/pkg/types"
)

type memoryStorage struct {
	storageID string
	blobs     map[string][]byte
	mux       sync.Mutex
}

var _ Storage = &memoryStorage{}

func (m *memoryStorage) ID() string {
	return m.storageID
}

func (m *memoryStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	m.mux.Lock()
	data, ok := m.blobs[key]
	m.mux.Unlock()
	if !ok {
		return nil, types.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memoryStorage) Put(ctx context.Context, key string, dataReader io.Reader) (int64, error) {
	data, err := io.ReadAll(dataReader)
	if err != nil {
		return 0, err
	}
	m.mux.Lock()
	m.blobs[key] = data
	m.mux.Unlock()
	return int64(len(data)), nil
}

func (m *memoryStorage) Delete(ctx context.Context, key string) error {
	m.mux.Lock()
	defer m.mux.Unlock()
	if _, ok := m.blobs[key]; !ok {
		return types.ErrNotFound
	}
	delete(m.blobs, key)
	return nil
}

func (m *memoryStorage) Head(ctx context.Context, key string) (Info, error) {
	m.mux.Lock()
	defer m.mux.Unlock()
	data, ok := m.blobs[key]
	if !ok {
		return Info{}, types.ErrNotFound
	}
	return Info{Key: key, Size: int64(len(data))}, nil
}

func newMemoryStorage(storageID string) Storage {
	return &memoryStorage{
		storageID: storageID,
		blobs:     map[string][]byte{},
	}
}
