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
	"fmt"
	"mime"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"

	"github.com/loftfs/loftfs/cmd/apps/apis/apitool"
)

func (s *ServicesV1) ReadContent(ctx *gin.Context) {
	caller := s.requireCaller(ctx)
	if caller == nil {
		return
	}

	entryID, ok := s.entryIDParam(ctx)
	if !ok {
		return
	}

	en, r, err := s.hierarchy.ResolveForRead(ctx.Request.Context(), caller.UID, entryID)
	if err != nil {
		apitool.ErrorResponse(ctx, err)
		return
	}
	defer r.Close()

	ctx.DataFromReader(http.StatusOK, en.Size, contentType(en.Name), r, nil)
}

func (s *ServicesV1) DownloadFile(ctx *gin.Context) {
	caller := s.requireCaller(ctx)
	if caller == nil {
		return
	}

	entryID, ok := s.entryIDParam(ctx)
	if !ok {
		return
	}

	en, r, err := s.hierarchy.ResolveForRead(ctx.Request.Context(), caller.UID, entryID)
	if err != nil {
		apitool.ErrorResponse(ctx, err)
		return
	}
	defer r.Close()

	ctx.DataFromReader(http.StatusOK, en.Size, "application/octet-stream", r, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", en.Name),
	})
}

func contentType(name string) string {
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
