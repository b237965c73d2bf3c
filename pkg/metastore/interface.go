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

	"github.com/loftfs/loftfs/pkg/types"
)

// Meta is the persisted index of entries and users. It is the single
// source of truth for ownership and hierarchy; raw file bytes live in the
// object store only.
type Meta interface {
	SystemInfo(ctx context.Context) (*types.SystemInfo, error)

	GetEntry(ctx context.Context, id int64) (*types.Entry, error)
	CreateEntry(ctx context.Context, entry *types.Entry) error
	DeleteEntry(ctx context.Context, id int64) error
	// ListChildren returns the direct children of one folder of one owner,
	// folders first, newest first. A nil parentID selects the tenant root
	// with an explicit IS NULL filter.
	ListChildren(ctx context.Context, ownerID int64, parentID *int64) (EntryIterator, error)

	GetUser(ctx context.Context, username string) (*types.User, error)
	CreateUser(ctx context.Context, user *types.User) error
}
