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

package db

import (
	"time"

	"github.com/loftfs/loftfs/pkg/types"
)

type SystemInfo struct {
	ServiceID string `gorm:"column:service_id;primaryKey"`
}

func (i SystemInfo) TableName() string {
	return "system_info"
}

// Entry is the persisted row of a file or folder. ParentID is a pointer
// so a tenant-root entry stores NULL, never zero: root listing must be
// an explicit IS NULL query.
type Entry struct {
	ID        int64  `gorm:"column:id;primaryKey"`
	OwnerID   int64  `gorm:"column:owner_id;index:entry_owner"`
	Name      string `gorm:"column:name;index:entry_name"`
	IsFolder  bool   `gorm:"column:is_folder"`
	ParentID  *int64 `gorm:"column:parent_id;index:entry_parent"`
	BlobRef   string `gorm:"column:blob_ref"`
	Size      int64  `gorm:"column:size"`
	Storage   string `gorm:"column:storage"`
	CreatedAt int64  `gorm:"column:created_at"`
}

func (e *Entry) TableName() string {
	return "entry"
}

func (e *Entry) FromEntry(entry *types.Entry) *Entry {
	e.ID = entry.ID
	e.OwnerID = entry.OwnerID
	e.Name = entry.Name
	e.IsFolder = entry.IsFolder
	e.ParentID = entry.ParentID
	e.BlobRef = entry.BlobRef
	e.Size = entry.Size
	e.Storage = entry.Storage
	e.CreatedAt = entry.CreatedAt.UnixNano()
	return e
}

func (e *Entry) ToEntry() *types.Entry {
	return &types.Entry{
		ID:        e.ID,
		OwnerID:   e.OwnerID,
		Name:      e.Name,
		IsFolder:  e.IsFolder,
		ParentID:  e.ParentID,
		BlobRef:   e.BlobRef,
		Size:      e.Size,
		Storage:   e.Storage,
		CreatedAt: time.Unix(0, e.CreatedAt),
	}
}

type User struct {
	ID        int64  `gorm:"column:id;primaryKey"`
	Username  string `gorm:"column:username;uniqueIndex:user_name"`
	Password  string `gorm:"column:password"`
	CreatedAt int64  `gorm:"column:created_at"`
}

func (u *User) TableName() string {
	return "user"
}

func (u *User) FromUser(user *types.User) *User {
	u.ID = user.ID
	u.Username = user.Username
	u.Password = user.Password
	u.CreatedAt = user.CreatedAt.UnixNano()
	return u
}

func (u *User) ToUser() *types.User {
	return &types.User{
		ID:        u.ID,
		Username:  u.Username,
		Password:  u.Password,
		CreatedAt: time.Unix(0, u.CreatedAt),
	}
}
