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

package v1

import (
	"time"

	"github.com/loftfs/loftfs/pkg/types"
)

type UserInfo struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

type UserResponse struct {
	User *UserInfo `json:"user"`
}

type LoginResponse struct {
	Token string    `json:"token"`
	User  *UserInfo `json:"user"`
}

type EntryInfo struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	IsFolder  bool      `json:"is_folder"`
	ParentID  *int64    `json:"parent_id,omitempty"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

type EntryResponse struct {
	Entry *EntryInfo `json:"entry"`
}

type ListEntriesResponse struct {
	Entries []*EntryInfo `json:"entries"`
}

type UploadResult struct {
	Name  string     `json:"name"`
	Entry *EntryInfo `json:"entry,omitempty"`
	Error string     `json:"error,omitempty"`
}

type UploadResponse struct {
	Results []*UploadResult `json:"results"`
}

type DeleteEntryResponse struct {
	Entry *EntryInfo `json:"entry"`
}

func toUserInfo(user *types.User) *UserInfo {
	return &UserInfo{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}
}

func toEntryInfo(en *types.Entry) *EntryInfo {
	return &EntryInfo{
		ID:        en.ID,
		Name:      en.Name,
		IsFolder:  en.IsFolder,
		ParentID:  en.ParentID,
		Size:      en.Size,
		CreatedAt: en.CreatedAt,
	}
}
