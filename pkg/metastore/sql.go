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

package metastore

import (
	"context"
	"runtime/trace"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/loftfs/loftfs/config"
	"github.com/loftfs/loftfs/pkg/metastore/db"
	"github.com/loftfs/loftfs/pkg/types"
	"github.com/loftfs/loftfs/utils/logger"
)

// sqliteMetaStore serializes writes behind a RWMutex: sqlite tolerates a
// single writer only.
type sqliteMetaStore struct {
	dbStore *sqlMetaStore
	mux     sync.RWMutex
}

var _ Meta = &sqliteMetaStore{}

func (s *sqliteMetaStore) SystemInfo(ctx context.Context) (*types.SystemInfo, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.dbStore.SystemInfo(ctx)
}

func (s *sqliteMetaStore) GetEntry(ctx context.Context, id int64) (*types.Entry, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.dbStore.GetEntry(ctx, id)
}

func (s *sqliteMetaStore) CreateEntry(ctx context.Context, entry *types.Entry) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.dbStore.CreateEntry(ctx, entry)
}

func (s *sqliteMetaStore) DeleteEntry(ctx context.Context, id int64) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.dbStore.DeleteEntry(ctx, id)
}

func (s *sqliteMetaStore) ListChildren(ctx context.Context, ownerID int64, parentID *int64) (EntryIterator, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.dbStore.ListChildren(ctx, ownerID, parentID)
}

func (s *sqliteMetaStore) GetUser(ctx context.Context, username string) (*types.User, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.dbStore.GetUser(ctx, username)
}

func (s *sqliteMetaStore) CreateUser(ctx context.Context, user *types.User) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.dbStore.CreateUser(ctx, user)
}

func newSqliteMetaStore(meta config.Meta) (*sqliteMetaStore, error) {
	dbEntity, err := gorm.Open(sqlite.Open(meta.Path), &gorm.Config{Logger: db.NewDbLogger(), TranslateError: true})
	if err != nil {
		return nil, err
	}

	dbConn, err := dbEntity.DB()
	if err != nil {
		return nil, err
	}

	// one connection keeps an in-memory db from splitting across the pool
	dbConn.SetMaxIdleConns(1)
	dbConn.SetMaxOpenConns(1)

	if err = dbConn.Ping(); err != nil {
		return nil, err
	}

	dbStore, err := buildSqlMetaStore(dbEntity)
	if err != nil {
		return nil, err
	}

	return &sqliteMetaStore{dbStore: dbStore}, nil
}

func newPostgresMetaStore(meta config.Meta) (*sqlMetaStore, error) {
	dbEntity, err := gorm.Open(postgres.Open(meta.DSN), &gorm.Config{Logger: db.NewDbLogger(), TranslateError: true})
	if err != nil {
		return nil, err
	}

	dbConn, err := dbEntity.DB()
	if err != nil {
		return nil, err
	}

	dbConn.SetMaxIdleConns(5)
	dbConn.SetMaxOpenConns(50)
	dbConn.SetConnMaxLifetime(time.Hour)

	if err = dbConn.Ping(); err != nil {
		return nil, err
	}

	return buildSqlMetaStore(dbEntity)
}

type sqlMetaStore struct {
	*gorm.DB

	logger *zap.SugaredLogger
}

var _ Meta = &sqlMetaStore{}

func buildSqlMetaStore(dbEntity *gorm.DB) (*sqlMetaStore, error) {
	s := &sqlMetaStore{DB: dbEntity, logger: logger.NewLogger("dbStore")}

	if err := db.Migrate(s.DB); err != nil {
		return nil, db.SqlError2Error(err)
	}

	_, err := s.SystemInfo(context.TODO())
	if err != nil {
		if err != types.ErrNotFound {
			return nil, err
		}
		sysInfo := &db.SystemInfo{ServiceID: uuid.New().String()}
		if res := s.WithContext(context.Background()).Create(sysInfo); res.Error != nil {
			return nil, db.SqlError2Error(res.Error)
		}
	}
	return s, nil
}

func (s *sqlMetaStore) SystemInfo(ctx context.Context) (*types.SystemInfo, error) {
	defer trace.StartRegion(ctx, "metastore.sql.SystemInfo").End()
	info := &db.SystemInfo{}
	res := s.WithContext(ctx).First(info)
	if res.Error != nil {
		return nil, db.SqlError2Error(res.Error)
	}
	result := &types.SystemInfo{ServiceID: info.ServiceID}

	res = s.WithContext(ctx).Model(&db.Entry{}).Count(&result.EntryCount)
	if res.Error != nil {
		return nil, db.SqlError2Error(res.Error)
	}

	if result.EntryCount == 0 {
		return result, nil
	}

	res = s.WithContext(ctx).Model(&db.Entry{}).Select("SUM(size) as file_size_total").Scan(&result.FileSizeTotal)
	if res.Error != nil {
		return nil, db.SqlError2Error(res.Error)
	}
	return result, nil
}

func (s *sqlMetaStore) GetEntry(ctx context.Context, id int64) (*types.Entry, error) {
	defer trace.StartRegion(ctx, "metastore.sql.GetEntry").End()
	defer logOperationLatency("get_entry", time.Now())
	var entryMod = &db.Entry{}
	res := s.WithContext(ctx).Where("id = ?", id).First(entryMod)
	if err := res.Error; err != nil {
		logOperationError("get_entry", err)
		return nil, db.SqlError2Error(err)
	}
	return entryMod.ToEntry(), nil
}

func (s *sqlMetaStore) CreateEntry(ctx context.Context, entry *types.Entry) error {
	defer trace.StartRegion(ctx, "metastore.sql.CreateEntry").End()
	defer logOperationLatency("create_entry", time.Now())
	entryMod := (&db.Entry{}).FromEntry(entry)
	res := s.WithContext(ctx).Create(entryMod)
	if err := res.Error; err != nil {
		logOperationError("create_entry", err)
		s.logger.Errorw("create entry failed", "entry", entry.ID, "err", err)
		return db.SqlError2Error(err)
	}
	return nil
}

func (s *sqlMetaStore) DeleteEntry(ctx context.Context, id int64) error {
	defer trace.StartRegion(ctx, "metastore.sql.DeleteEntry").End()
	defer logOperationLatency("delete_entry", time.Now())
	res := s.WithContext(ctx).Where("id = ?", id).Delete(&db.Entry{})
	if err := res.Error; err != nil {
		logOperationError("delete_entry", err)
		s.logger.Errorw("delete entry failed", "entry", id, "err", err)
		return db.SqlError2Error(err)
	}
	if res.RowsAffected == 0 {
		return types.ErrNotFound
	}
	return nil
}

func (s *sqlMetaStore) ListChildren(ctx context.Context, ownerID int64, parentID *int64) (EntryIterator, error) {
	defer trace.StartRegion(ctx, "metastore.sql.ListChildren").End()
	defer logOperationLatency("list_children", time.Now())
	tx := s.WithContext(ctx).Model(&db.Entry{}).Where("owner_id = ?", ownerID)
	// the tenant root must be an IS NULL filter: an equality filter on a
	// nil parent would match nothing, a missing filter would match all.
	if parentID == nil {
		tx = tx.Where("parent_id IS NULL")
	} else {
		tx = tx.Where("parent_id = ?", *parentID)
	}

	var total int64
	if res := tx.Count(&total); res.Error != nil {
		logOperationError("list_children", res.Error)
		return nil, db.SqlError2Error(res.Error)
	}
	return newTransactionEntryIterator(tx, total), nil
}

func (s *sqlMetaStore) GetUser(ctx context.Context, username string) (*types.User, error) {
	defer trace.StartRegion(ctx, "metastore.sql.GetUser").End()
	defer logOperationLatency("get_user", time.Now())
	var userMod = &db.User{}
	res := s.WithContext(ctx).Where("username = ?", username).First(userMod)
	if err := res.Error; err != nil {
		logOperationError("get_user", err)
		return nil, db.SqlError2Error(err)
	}
	return userMod.ToUser(), nil
}

func (s *sqlMetaStore) CreateUser(ctx context.Context, user *types.User) error {
	defer trace.StartRegion(ctx, "metastore.sql.CreateUser").End()
	defer logOperationLatency("create_user", time.Now())
	userMod := (&db.User{}).FromUser(user)
	res := s.WithContext(ctx).Create(userMod)
	if err := res.Error; err != nil {
		logOperationError("create_user", err)
		return db.SqlError2Error(err)
	}
	return nil
}
