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
	"io"
	"os"
	"path"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/loftfs/loftfs/pkg/types"
	"github.com/loftfs/loftfs/utils/logger"
)

const (
	defaultLocalDirMode  = 0755
	defaultLocalFileMode = 0644
)

type local struct {
	sid    string
	dir    string
	logger *zap.SugaredLogger
}

var _ Storage = &local{}

func (l *local) ID() string {
	return l.sid
}

func (l *local) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	defer logStorageOperationLatency(l.sid, "get", time.Now())
	f, err := os.Open(l.key2LocalPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, types.ErrNotFound
		}
		logStorageOperationError(l.sid, "get", err)
		l.logger.Errorw("open blob failed", "key", key, "err", err.Error())
		return nil, err
	}
	return f, nil
}

func (l *local) Put(ctx context.Context, key string, dataReader io.Reader) (int64, error) {
	defer logStorageOperationLatency(l.sid, "put", time.Now())
	f, err := os.OpenFile(l.key2LocalPath(key), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, defaultLocalFileMode)
	if err != nil {
		logStorageOperationError(l.sid, "put", err)
		l.logger.Errorw("create blob failed", "key", key, "err", err.Error())
		return 0, err
	}
	defer f.Close()

	n, err := io.Copy(f, dataReader)
	if err != nil {
		logStorageOperationError(l.sid, "put", err)
		l.logger.Errorw("write blob failed", "key", key, "err", err.Error())
		// a broken upload leaves a partial file behind, drop it
		_ = os.Remove(l.key2LocalPath(key))
		return 0, err
	}
	return n, nil
}

func (l *local) Delete(ctx context.Context, key string) error {
	defer logStorageOperationLatency(l.sid, "delete", time.Now())
	err := os.Remove(l.key2LocalPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return types.ErrNotFound
		}
		logStorageOperationError(l.sid, "delete", err)
		l.logger.Errorw("delete blob failed", "key", key, "err", err.Error())
		return err
	}
	return nil
}

func (l *local) Head(ctx context.Context, key string) (Info, error) {
	defer logStorageOperationLatency(l.sid, "head", time.Now())
	info, err := os.Stat(l.key2LocalPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return Info{}, types.ErrNotFound
		}
		return Info{}, err
	}
	return Info{Key: key, Size: info.Size()}, nil
}

func (l *local) key2LocalPath(key string) string {
	return path.Join(l.dir, key)
}

func newLocalStorage(sid, dir string) (Storage, error) {
	if err := os.MkdirAll(dir, defaultLocalDirMode); err != nil {
		return nil, errors.Wrap(err, "init local data dir failed")
	}
	return &local{
		sid:    sid,
		dir:    dir,
		logger: logger.NewLogger("localStorage"),
	}, nil
}
