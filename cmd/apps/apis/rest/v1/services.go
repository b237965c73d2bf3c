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
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/loftfs/loftfs/cmd/apps/apis/apitool"
	"github.com/loftfs/loftfs/pkg/hierarchy"
	"github.com/loftfs/loftfs/pkg/token"
	"github.com/loftfs/loftfs/utils/logger"
)

type ServicesV1 struct {
	hierarchy hierarchy.Manager
	tokenMgr  *token.Manager
	logger    *zap.SugaredLogger
}

func NewServicesV1(hierarchyMgr hierarchy.Manager, tokenMgr *token.Manager) *ServicesV1 {
	return &ServicesV1{
		hierarchy: hierarchyMgr,
		tokenMgr:  tokenMgr,
		logger:    logger.NewLogger("restapi"),
	}
}

func (s *ServicesV1) requireCaller(ctx *gin.Context) *apitool.CallerInfo {
	caller := apitool.Caller(ctx.Request.Context())
	if caller == nil {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return nil
	}
	return caller
}
