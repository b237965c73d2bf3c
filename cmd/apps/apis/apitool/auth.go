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
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/loftfs/loftfs/pkg/token"
)

type CallerInfo struct {
	UID      int64
	Username string
}

const callerInfoContextKey = "caller.info"

func WithCallerInfo(ctx context.Context, info *CallerInfo) context.Context {
	return context.WithValue(ctx, callerInfoContextKey, info)
}

func Caller(ctx context.Context) *CallerInfo {
	raw := ctx.Value(callerInfoContextKey)
	if raw == nil {
		return nil
	}
	return raw.(*CallerInfo)
}

// AuthMiddleware resolves the caller from a bearer access token. Routes
// behind it always see a non-nil caller.
func AuthMiddleware(tokenMgr *token.Manager) gin.HandlerFunc {
	return func(gCtx *gin.Context) {
		authHeader := gCtx.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			gCtx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing token"})
			return
		}

		ai, err := tokenMgr.Verify(gCtx.Request.Context(), strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			gCtx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		ctx := WithCallerInfo(gCtx.Request.Context(), &CallerInfo{UID: ai.UID, Username: ai.Username})
		gCtx.Request = gCtx.Request.WithContext(ctx)

		gCtx.Next()
	}
}
