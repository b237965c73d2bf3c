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

package types

import (
	"time"

	"github.com/loftfs/loftfs/utils"
)

const entryNameMaxLength = 255

// Entry is one node of a tenant's tree: a folder or a file. Files point
// at a blob in the object store via BlobRef; folders never do.
type Entry struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Name      string    `json:"name"`
	IsFolder  bool      `json:"is_folder"`
	ParentID  *int64    `json:"parent_id,omitempty"`
	BlobRef   string    `json:"blob_ref,omitempty"`
	Size      int64     `json:"size"`
	Storage   string    `json:"storage,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type EntryAttr struct {
	Name     string
	ParentID *int64
}

func (a EntryAttr) Validate() error {
	if a.Name == "" {
		return ErrInvalidRequest
	}
	if len(a.Name) > entryNameMaxLength {
		return ErrNameTooLong
	}
	return nil
}

func NewEntry(owner int64, name string, isFolder bool) *Entry {
	return &Entry{
		ID:        utils.GenerateNewID(),
		OwnerID:   owner,
		Name:      name,
		IsFolder:  isFolder,
		CreatedAt: time.Now(),
	}
}
