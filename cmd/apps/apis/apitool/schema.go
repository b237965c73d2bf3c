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

package apitool

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/loftfs/loftfs/pkg/types"
)

type ApiErrorCode string

const (
	ApiArgsError        ApiErrorCode = "ArgsError"
	ApiNoAccess         ApiErrorCode = "NoAccess"
	ApiNotFoundError    ApiErrorCode = "NotFound"
	ApiNotFolderError   ApiErrorCode = "NotFolder"
	ApiIsFolderError    ApiErrorCode = "IsFolder"
	ApiEntryExisted     ApiErrorCode = "EntryExisted"
	ApiStoreUnavailable ApiErrorCode = "StoreUnavailable"
)

type Error struct {
	Code    ApiErrorCode `json:"code"`
	Message string       `json:"message"`
}

type Response struct {
	Status int         `json:"status"`
	Error  *Error      `json:"error,omitempty"`
	Data   interface{} `json:"data,omitempty"`
}

// Error2ApiErrorCode maps internal errors onto the wire taxonomy. Anything
// not named here reads as a store fault, the caller may retry.
func Error2ApiErrorCode(err error) (int, ApiErrorCode) {
	if err == nil {
		return http.StatusOK, "NoError"
	}
	switch err {
	case types.ErrNotFound:
		return http.StatusNotFound, ApiNotFoundError
	case types.ErrInvalidRequest:
		return http.StatusBadRequest, ApiArgsError
	case types.ErrNameTooLong:
		return http.StatusBadRequest, ApiArgsError
	case types.ErrNoFolder:
		return http.StatusBadRequest, ApiNotFolderError
	case types.ErrIsFolder:
		return http.StatusBadRequest, ApiIsFolderError
	case types.ErrIsExist:
		return http.StatusConflict, ApiEntryExisted
	case types.ErrNoAccess:
		return http.StatusUnauthorized, ApiNoAccess
	}
	return http.StatusServiceUnavailable, ApiStoreUnavailable
}

func ErrorResponse(gCtx *gin.Context, err error) {
	status, code := Error2ApiErrorCode(err)
	ApiErrorResponse(gCtx, status, code, err)
}

func ApiErrorResponse(gCtx *gin.Context, status int, code ApiErrorCode, err error) {
	gCtx.JSON(status, Response{
		Status: status,
		Error: &Error{
			Code:    code,
			Message: err.Error(),
		},
	})
}

func JsonResponse(gCtx *gin.Context, status int, data interface{}) {
	gCtx.JSON(status, Response{
		Status: status,
		Data:   data,
	})
}
