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
	"errors"
	"fmt"
	"io"
	"runtime/trace"
	"strconv"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"go.uber.org/zap"

	"github.com/loftfs/loftfs/config"
	"github.com/loftfs/loftfs/pkg/types"
	"github.com/loftfs/loftfs/utils/logger"
)

type aliyunOSSStorage struct {
	sid    string
	cli    *oss.Client
	bucket *oss.Bucket
	cfg    *config.OSSConfig
	logger *zap.SugaredLogger
}

var _ Storage = &aliyunOSSStorage{}

func (a *aliyunOSSStorage) ID() string {
	return a.sid
}

func (a *aliyunOSSStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	defer trace.StartRegion(ctx, "storage.oss.Get").End()
	defer logStorageOperationLatency(a.sid, "get", time.Now())
	r, err := a.bucket.GetObject(ossObjectName(key))
	if err != nil {
		logStorageOperationError(a.sid, "get", err)
		a.logger.Errorw("get oss object error", "object", ossObjectName(key), "err", err)
		return nil, ossError2Error(err)
	}
	return r, nil
}

func (a *aliyunOSSStorage) Put(ctx context.Context, key string, dataReader io.Reader) (int64, error) {
	defer trace.StartRegion(ctx, "storage.oss.Put").End()
	defer logStorageOperationLatency(a.sid, "put", time.Now())
	err := a.bucket.PutObject(ossObjectName(key), dataReader)
	if err != nil {
		logStorageOperationError(a.sid, "put", err)
		a.logger.Errorw("put object to oss error", "object", ossObjectName(key), "err", err)
		return 0, err
	}
	info, err := a.Head(ctx, key)
	if err != nil {
		return 0, err
	}
	return info.Size, nil
}

func (a *aliyunOSSStorage) Delete(ctx context.Context, key string) error {
	defer trace.StartRegion(ctx, "storage.oss.Delete").End()
	defer logStorageOperationLatency(a.sid, "delete", time.Now())
	isExist, err := a.bucket.IsObjectExist(ossObjectName(key))
	if err != nil {
		logStorageOperationError(a.sid, "delete", err)
		return err
	}
	if !isExist {
		return types.ErrNotFound
	}
	if err = a.bucket.DeleteObject(ossObjectName(key)); err != nil {
		logStorageOperationError(a.sid, "delete", err)
		a.logger.Errorw("delete oss object error", "object", ossObjectName(key), "err", err)
		return err
	}
	return nil
}

func (a *aliyunOSSStorage) Head(ctx context.Context, key string) (Info, error) {
	defer trace.StartRegion(ctx, "storage.oss.Head").End()
	header, err := a.bucket.GetObjectMeta(ossObjectName(key))
	if err != nil {
		a.logger.Errorw("head oss object error", "object", ossObjectName(key), "err", err)
		return Info{}, ossError2Error(err)
	}
	info := Info{Key: key}
	info.Size, _ = strconv.ParseInt(header.Get("Content-Length"), 10, 64)
	return info, nil
}

func (a *aliyunOSSStorage) initOSSBucket(ctx context.Context) error {
	defer trace.StartRegion(ctx, "storage.oss.initOSSBucket").End()

	isExist, err := a.cli.IsBucketExist(a.cfg.BucketName)
	if err != nil {
		a.logger.Errorw("check bucket error", "bucket", a.cfg.BucketName, "err", err)
		return err
	}
	if !isExist {
		a.logger.Infof("init bucket: %s", a.cfg.BucketName)
		if err = a.cli.CreateBucket(a.cfg.BucketName); err != nil {
			return err
		}
	}

	a.bucket, err = a.cli.Bucket(a.cfg.BucketName)
	return err
}

func ossObjectName(key string) string {
	return fmt.Sprintf("blobs/%s/%s", key[:2], key)
}

func ossError2Error(err error) error {
	var srvErr oss.ServiceError
	if errors.As(err, &srvErr) && srvErr.StatusCode == 404 {
		return types.ErrNotFound
	}
	return err
}

func newOSSStorage(storageID string, cfg *config.OSSConfig) (Storage, error) {
	if cfg == nil {
		return nil, fmt.Errorf("oss is nil")
	}
	if cfg.Endpoint == "" || cfg.AccessKeyID == "" || cfg.AccessKeySecret == "" {
		return nil, fmt.Errorf("oss endpoint or access key not config")
	}
	if cfg.BucketName == "" {
		return nil, fmt.Errorf("oss bucket_name is empty")
	}

	cli, err := oss.New(cfg.Endpoint, cfg.AccessKeyID, cfg.AccessKeySecret)
	if err != nil {
		return nil, err
	}

	s := &aliyunOSSStorage{
		sid:    storageID,
		cli:    cli,
		cfg:    cfg,
		logger: logger.NewLogger("ossStorage"),
	}
	return s, s.initOSSBucket(context.TODO())
}
