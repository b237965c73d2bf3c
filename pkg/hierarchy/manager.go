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

package hierarchy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime/trace"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/loftfs/loftfs/config"
	"github.com/loftfs/loftfs/pkg/events"
	"github.com/loftfs/loftfs/pkg/metastore"
	"github.com/loftfs/loftfs/pkg/storage"
	"github.com/loftfs/loftfs/pkg/types"
	"github.com/loftfs/loftfs/utils/logger"
)

// Manager owns one tenant tree per caller. Every operation takes the
// caller's owner id and treats entries of other owners as absent.
type Manager interface {
	CreateFolder(ctx context.Context, ownerID int64, attr types.EntryAttr) (*types.Entry, error)
	RegisterUpload(ctx context.Context, ownerID int64, attr types.EntryAttr, dataReader io.Reader) (*types.Entry, error)
	ListChildren(ctx context.Context, ownerID int64, parentID *int64) ([]*types.Entry, error)
	GetEntry(ctx context.Context, ownerID, entryID int64) (*types.Entry, error)
	ResolveForRead(ctx context.Context, ownerID, entryID int64) (*types.Entry, io.ReadCloser, error)
	Delete(ctx context.Context, ownerID, entryID int64) error
}

func NewManager(store metastore.Meta, cfg config.Config) (Manager, error) {
	var (
		storages = make(map[string]storage.Storage)
		err      error
	)
	for i := range cfg.Storages {
		storages[cfg.Storages[i].ID], err = storage.NewStorage(cfg.Storages[i].ID, cfg.Storages[i].Type, cfg.Storages[i])
		if err != nil {
			return nil, err
		}
	}

	mgr := &manager{
		store:          store,
		cache:          newEntryCache(),
		defaultStorage: storages[cfg.Storages[0].ID],
		storages:       storages,
		eventQ:         make(chan *entryEvent, 8),
		logger:         logger.NewLogger("hierarchyManager"),
	}

	go mgr.entryActionEventHandler()
	return mgr, nil
}

type manager struct {
	store          metastore.Meta
	cache          *entryCache
	defaultStorage storage.Storage
	storages       map[string]storage.Storage
	eventQ         chan *entryEvent
	logger         *zap.SugaredLogger
}

var _ Manager = &manager{}

func (m *manager) CreateFolder(ctx context.Context, ownerID int64, attr types.EntryAttr) (*types.Entry, error) {
	defer trace.StartRegion(ctx, "hierarchy.manager.CreateFolder").End()
	if err := attr.Validate(); err != nil {
		return nil, err
	}
	if err := m.checkParentFolder(ctx, ownerID, attr.ParentID); err != nil {
		return nil, err
	}

	en := types.NewEntry(ownerID, attr.Name, true)
	en.ParentID = attr.ParentID
	if err := m.store.CreateEntry(ctx, en); err != nil {
		m.logger.Errorw("create folder entry failed", "owner", ownerID, "name", attr.Name, "err", err)
		return nil, err
	}
	m.cache.setEntry(en)
	m.publicEntryActionEvent(events.ActionTypeCreate, en)
	return en, nil
}

func (m *manager) RegisterUpload(ctx context.Context, ownerID int64, attr types.EntryAttr, dataReader io.Reader) (*types.Entry, error) {
	defer trace.StartRegion(ctx, "hierarchy.manager.RegisterUpload").End()
	if err := attr.Validate(); err != nil {
		return nil, err
	}
	if err := m.checkParentFolder(ctx, ownerID, attr.ParentID); err != nil {
		return nil, err
	}

	blobRef := uuid.New().String()
	size, err := m.defaultStorage.Put(ctx, blobRef, dataReader)
	if err != nil {
		m.logger.Errorw("write blob failed", "owner", ownerID, "name", attr.Name, "err", err)
		return nil, err
	}

	en := types.NewEntry(ownerID, attr.Name, false)
	en.ParentID = attr.ParentID
	en.BlobRef = blobRef
	en.Size = size
	en.Storage = m.defaultStorage.ID()
	if err = m.store.CreateEntry(ctx, en); err != nil {
		// the blob is now an orphan, it wastes space but references nothing
		m.logger.Errorw("register uploaded blob failed", "owner", ownerID, "blob", blobRef, "err", err)
		return nil, err
	}
	m.cache.setEntry(en)
	m.publicEntryActionEvent(events.ActionTypeUpload, en)
	return en, nil
}

func (m *manager) ListChildren(ctx context.Context, ownerID int64, parentID *int64) ([]*types.Entry, error) {
	defer trace.StartRegion(ctx, "hierarchy.manager.ListChildren").End()
	if parentID != nil {
		parent, err := m.GetEntry(ctx, ownerID, *parentID)
		if err != nil {
			return nil, err
		}
		if !parent.IsFolder {
			return nil, types.ErrNoFolder
		}
	}

	it, err := m.store.ListChildren(ctx, ownerID, parentID)
	if err != nil {
		m.logger.Errorw("list children failed", "owner", ownerID, "err", err)
		return nil, err
	}

	children := make([]*types.Entry, 0)
	for it.HasNext() {
		en, err := it.Next()
		if err != nil {
			return nil, err
		}
		children = append(children, en)
	}
	return children, nil
}

func (m *manager) GetEntry(ctx context.Context, ownerID, entryID int64) (*types.Entry, error) {
	defer trace.StartRegion(ctx, "hierarchy.manager.GetEntry").End()
	en, err := m.cache.getEntry(entryID)
	if err != nil {
		en, err = m.store.GetEntry(ctx, entryID)
		if err != nil {
			return nil, err
		}
		m.cache.setEntry(en)
	}
	// entries of other owners read as absent
	if en.OwnerID != ownerID {
		return nil, types.ErrNotFound
	}
	return en, nil
}

func (m *manager) ResolveForRead(ctx context.Context, ownerID, entryID int64) (*types.Entry, io.ReadCloser, error) {
	defer trace.StartRegion(ctx, "hierarchy.manager.ResolveForRead").End()
	en, err := m.GetEntry(ctx, ownerID, entryID)
	if err != nil {
		return nil, nil, err
	}
	if en.IsFolder {
		return nil, nil, types.ErrNotFound
	}

	s, ok := m.storages[en.Storage]
	if !ok {
		return nil, nil, fmt.Errorf("storage %s not register", en.Storage)
	}
	r, err := s.Get(ctx, en.BlobRef)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			// the index says the blob exists, treat the gap as a store fault
			m.logger.Errorw("blob missing for active entry", "entry", en.ID, "blob", en.BlobRef)
			return nil, nil, types.ErrUnavailable
		}
		m.logger.Errorw("open blob failed", "entry", en.ID, "blob", en.BlobRef, "err", err)
		return nil, nil, err
	}
	return en, r, nil
}

func (m *manager) Delete(ctx context.Context, ownerID, entryID int64) error {
	defer trace.StartRegion(ctx, "hierarchy.manager.Delete").End()
	en, err := m.GetEntry(ctx, ownerID, entryID)
	if err != nil {
		return err
	}

	if !en.IsFolder {
		s, ok := m.storages[en.Storage]
		if !ok {
			return fmt.Errorf("storage %s not register", en.Storage)
		}
		// blob first, the row goes last so a crash can not leave the row
		// pointing at deleted content
		if err = s.Delete(ctx, en.BlobRef); err != nil {
			if !errors.Is(err, types.ErrNotFound) {
				m.logger.Errorw("delete blob failed", "entry", en.ID, "blob", en.BlobRef, "err", err)
				return err
			}
			m.logger.Warnw("blob already absent, delete entry anyway", "entry", en.ID, "blob", en.BlobRef)
		}
	}

	// folders are removed without recursion, children keep their rows
	if err = m.store.DeleteEntry(ctx, en.ID); err != nil {
		m.logger.Errorw("delete entry failed", "entry", en.ID, "err", err)
		return err
	}
	m.cache.invalidEntry(en.ID)
	m.publicEntryActionEvent(events.ActionTypeDestroy, en)
	return nil
}

func (m *manager) checkParentFolder(ctx context.Context, ownerID int64, parentID *int64) error {
	if parentID == nil {
		return nil
	}
	parent, err := m.GetEntry(ctx, ownerID, *parentID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return types.ErrInvalidRequest
		}
		return err
	}
	if !parent.IsFolder {
		return types.ErrNoFolder
	}
	return nil
}
