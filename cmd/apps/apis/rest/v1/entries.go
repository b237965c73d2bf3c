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
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/loftfs/loftfs/cmd/apps/apis/apitool"
	"github.com/loftfs/loftfs/pkg/types"
)

func (s *ServicesV1) CreateFolder(ctx *gin.Context) {
	caller := s.requireCaller(ctx)
	if caller == nil {
		return
	}

	var req CreateFolderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		apitool.ApiErrorResponse(ctx, http.StatusBadRequest, apitool.ApiArgsError, err)
		return
	}

	en, err := s.hierarchy.CreateFolder(ctx.Request.Context(), caller.UID, types.EntryAttr{
		Name:     req.Name,
		ParentID: req.ParentID,
	})
	if err != nil {
		apitool.ErrorResponse(ctx, err)
		return
	}

	apitool.JsonResponse(ctx, http.StatusCreated, &EntryResponse{Entry: toEntryInfo(en)})
}

func (s *ServicesV1) UploadFiles(ctx *gin.Context) {
	caller := s.requireCaller(ctx)
	if caller == nil {
		return
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		apitool.ApiErrorResponse(ctx, http.StatusBadRequest, apitool.ApiArgsError, err)
		return
	}

	var parentID *int64
	if raw := form.Value["parent_id"]; len(raw) > 0 && raw[0] != "" {
		pid, err := strconv.ParseInt(raw[0], 10, 64)
		if err != nil {
			apitool.ApiErrorResponse(ctx, http.StatusBadRequest, apitool.ApiArgsError, fmt.Errorf("invalid parent_id %s", raw[0]))
			return
		}
		parentID = &pid
	}

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		apitool.ApiErrorResponse(ctx, http.StatusBadRequest, apitool.ApiArgsError, errors.New("missing files"))
		return
	}

	// items are registered independently, one failed item never rolls
	// back an earlier one
	results := make([]*UploadResult, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		result := &UploadResult{Name: fh.Filename}
		results = append(results, result)

		src, err := fh.Open()
		if err != nil {
			result.Error = err.Error()
			continue
		}

		en, err := s.hierarchy.RegisterUpload(ctx.Request.Context(), caller.UID,
			types.EntryAttr{Name: fh.Filename, ParentID: parentID}, src)
		_ = src.Close()
		if err != nil {
			s.logger.Errorw("register upload failed", "file", fh.Filename, "err", err)
			result.Error = err.Error()
			continue
		}
		result.Entry = toEntryInfo(en)
	}

	apitool.JsonResponse(ctx, http.StatusCreated, &UploadResponse{Results: results})
}

func (s *ServicesV1) ListEntries(ctx *gin.Context) {
	caller := s.requireCaller(ctx)
	if caller == nil {
		return
	}

	var parentID *int64
	if raw := ctx.Query("parent_id"); raw != "" {
		pid, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			apitool.ApiErrorResponse(ctx, http.StatusBadRequest, apitool.ApiArgsError, fmt.Errorf("invalid parent_id %s", raw))
			return
		}
		parentID = &pid
	}

	children, err := s.hierarchy.ListChildren(ctx.Request.Context(), caller.UID, parentID)
	if err != nil {
		apitool.ErrorResponse(ctx, err)
		return
	}

	entries := make([]*EntryInfo, 0, len(children))
	for _, en := range children {
		entries = append(entries, toEntryInfo(en))
	}
	apitool.JsonResponse(ctx, http.StatusOK, &ListEntriesResponse{Entries: entries})
}

func (s *ServicesV1) GetEntryDetail(ctx *gin.Context) {
	caller := s.requireCaller(ctx)
	if caller == nil {
		return
	}

	entryID, ok := s.entryIDParam(ctx)
	if !ok {
		return
	}

	en, err := s.hierarchy.GetEntry(ctx.Request.Context(), caller.UID, entryID)
	if err != nil {
		apitool.ErrorResponse(ctx, err)
		return
	}

	apitool.JsonResponse(ctx, http.StatusOK, &EntryResponse{Entry: toEntryInfo(en)})
}

func (s *ServicesV1) DeleteEntry(ctx *gin.Context) {
	caller := s.requireCaller(ctx)
	if caller == nil {
		return
	}

	entryID, ok := s.entryIDParam(ctx)
	if !ok {
		return
	}

	en, err := s.hierarchy.GetEntry(ctx.Request.Context(), caller.UID, entryID)
	if err != nil {
		apitool.ErrorResponse(ctx, err)
		return
	}

	if err = s.hierarchy.Delete(ctx.Request.Context(), caller.UID, entryID); err != nil {
		apitool.ErrorResponse(ctx, err)
		return
	}

	apitool.JsonResponse(ctx, http.StatusOK, &DeleteEntryResponse{Entry: toEntryInfo(en)})
}

func (s *ServicesV1) entryIDParam(ctx *gin.Context) (int64, bool) {
	raw := ctx.Param("id")
	entryID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		apitool.ApiErrorResponse(ctx, http.StatusBadRequest, apitool.ApiArgsError, fmt.Errorf("invalid entry id %s", raw))
		return 0, false
	}
	return entryID, true
}
