/*
 Copyright 2026 LoftFS Authors.

 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/loftfs/loftfs/config"
)

const (
	LocalStorage  = config.LocalStorage
	MemoryStorage = config.MemoryStorage
	MinioStorage  = config.MinioStorage
	S3Storage     = config.S3Storage
	OSSStorage    = config.OSSStorage
)

type Info struct {
	Key  string
	Size int64
}

// Storage holds raw blobs under opaque keys. It knows nothing about
// owners or hierarchy; all of that lives in the meta store.
type Storage interface {
	ID() string
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Put(ctx context.Context, key string, dataReader io.Reader) (int64, error)
	Delete(ctx context.Context, key string) error
	Head(ctx context.Context, key string) (Info, error)
}

func NewStorage(storageID, storageType string, cfg config.Storage) (Storage, error) {
	switch storageType {
	case LocalStorage:
		return newLocalStorage(storageID, cfg.LocalDir)
	case MemoryStorage:
		return newMemoryStorage(storageID), nil
	case MinioStorage:
		return newMinioStorage(storageID, cfg.MinIO)
	case S3Storage:
		return newS3Storage(storageID, cfg.S3)
	case OSSStorage:
		return newOSSStorage(storageID, cfg.OSS)
	default:
		return nil, fmt.Errorf("unknow storage type: %s", storageType)
	}
}
