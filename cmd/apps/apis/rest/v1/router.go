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
	"github.com/gin-gonic/gin"

	"github.com/loftfs/loftfs/cmd/apps/apis/apitool"
)

func RegisterRoutes(engine *gin.Engine, s *ServicesV1) {
	v1 := engine.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", s.Register)
			auth.POST("/login", s.Login)
		}

		entries := v1.Group("/entries")
		entries.Use(apitool.AuthMiddleware(s.tokenMgr))
		{
			entries.GET("", s.ListEntries)
			entries.POST("/folder", s.CreateFolder)
			entries.POST("/upload", s.UploadFiles)
			entries.GET("/:id", s.GetEntryDetail)
			entries.GET("/:id/content", s.ReadContent)
			entries.GET("/:id/download", s.DownloadFile)
			entries.DELETE("/:id", s.DeleteEntry)
		}
	}
}
