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
	"runtime/trace"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/loftfs/loftfs/config"
	"github.com/loftfs/loftfs/pkg/types"
	"github.com/loftfs/loftfs/utils/logger"
)

type minioStorage struct {
	sid    string
	bucket string
	cli    *minio.Client
	cfg    *config.MinIOConfig
	logger *zap.SugaredLogger
}

var _ Storage = &minioStorage{}

func (m *minioStorage) ID() string {
	return m.sid
}

func (m *minioStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	defer trace.StartRegion(ctx, "storage.minio.Get").End()
	defer logStorageOperationLatency(m.sid, "get", time.Now())
	obj, err := m.cli.GetObject(ctx, m.bucket, minioObjectName(key), minio.GetObjectOptions{})
	if err != nil {
		logStorageOperationError(m.sid, "get", err)
		m.logger.Errorw("get object failed", "object", minioObjectName(key), "err", err)
		return nil, minioError2Error(err)
	}
	return obj, nil
}

func (m *minioStorage) Put(ctx context.Context, key string, dataReader io.Reader) (int64, error) {
	defer trace.StartRegion(ctx, "storage.minio.Put").End()
	defer logStorageOperationLatency(m.sid, "put", time.Now())
	info, err := m.cli.PutObject(ctx, m.bucket, minioObjectName(key), dataReader, -1, minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		logStorageOperationError(m.sid, "put", err)
		m.logger.Errorw("put object failed", "object", minioObjectName(key), "err", err)
		return 0, err
	}
	return info.Size, nil
}

func (m *minioStorage) Delete(ctx context.Context, key string) error {
	defer trace.StartRegion(ctx, "storage.minio.Delete").End()
	defer logStorageOperationLatency(m.sid, "delete", time.Now())
	if _, err := m.cli.StatObject(ctx, m.bucket, minioObjectName(key), minio.StatObjectOptions{}); err != nil {
		return minioError2Error(err)
	}
	err := m.cli.RemoveObject(ctx, m.bucket, minioObjectName(key), minio.RemoveObjectOptions{})
	if err != nil {
		logStorageOperationError(m.sid, "delete", err)
		m.logger.Errorw("delete object failed", "object", minioObjectName(key), "err", err)
		return minioError2Error(err)
	}
	return nil
}

func (m *minioStorage) Head(ctx context.Context, key string) (Info, error) {
	defer trace.StartRegion(ctx, "storage.minio.Head").End()
	defer logStorageOperationLatency(m.sid, "head", time.Now())
	info, err := m.cli.StatObject(ctx, m.bucket, minioObjectName(key), minio.StatObjectOptions{})
	if err != nil {
		m.logger.Errorw("head object failed", "object", minioObjectName(key), "err", err)
		return Info{}, minioError2Error(err)
	}
	return Info{Key: key, Size: info.Size}, nil
}

func (m *minioStorage) initBucket(ctx context.Context) error {
	defer trace.StartRegion(ctx, "storage.minio.initBucket").End()
	ctx, canF := context.WithTimeout(ctx, time.Minute)
	defer canF()

	exists, errBucketExists := m.cli.BucketExists(ctx, m.bucket)
	if errBucketExists == nil && exists {
		return nil
	}

	m.logger.Infof("init bucket: %s", m.bucket)
	return m.cli.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{Region: m.cfg.Location})
}

func minioObjectName(key string) string {
	return fmt.Sprintf("blobs/%s/%s", key[:2], key)
}

func minioError2Error(err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return types.ErrNotFound
	}
	return err
}

func newMinioStorage(storageID string, cfg *config.MinIOConfig) (Storage, error) {
	if cfg == nil {
		return nil, fmt.Errorf("minio is nil")
	}

	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio config endpoint is empty")
	}
	if cfg.AccessKeyID == "" {
		return nil, fmt.Errorf("minio config access_key_id is empty")
	}
	if cfg.SecretAccessKey == "" {
		return nil, fmt.Errorf("minio config secret_access_key is empty")
	}

	if cfg.BucketName == "" {
		cfg.BucketName = fmt.Sprintf("loftfs-%s", storageID)
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.Token),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	s := &minioStorage{
		sid:    storageID,
		bucket: cfg.BucketName,
		cli:    cli,
		cfg:    cfg,
		logger: logger.NewLogger("minioStorage"),
	}
	return s, s.initBucket(context.TODO())
}
