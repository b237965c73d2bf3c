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
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/loftfs/loftfs/cmd/apps/apis/apitool"
	"github.com/loftfs/loftfs/pkg/types"
)

func (s *ServicesV1) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		apitool.ApiErrorResponse(ctx, http.StatusBadRequest, apitool.ApiArgsError, err)
		return
	}

	user, err := s.tokenMgr.Register(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		apitool.ErrorResponse(ctx, err)
		return
	}

	apitool.JsonResponse(ctx, http.StatusCreated, &UserResponse{User: toUserInfo(user)})
}

func (s *ServicesV1) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		apitool.ApiErrorResponse(ctx, http.StatusBadRequest, apitool.ApiArgsError, err)
		return
	}

	tokenStr, user, err := s.tokenMgr.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		// an unknown user and a wrong password read the same to the caller
		if errors.Is(err, types.ErrNotFound) {
			err = types.ErrNoAccess
		}
		apitool.ErrorResponse(ctx, err)
		return
	}

	apitool.JsonResponse(ctx, http.StatusOK, &LoginResponse{Token: tokenStr, User: toUserInfo(user)})
}
