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

package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/loftfs/loftfs/cmd/apps/apis/apitool"
	v1 "github.com/loftfs/loftfs/cmd/apps/apis/rest/v1"
	"github.com/loftfs/loftfs/config"
	"github.com/loftfs/loftfs/pkg/hierarchy"
	"github.com/loftfs/loftfs/pkg/token"
	"github.com/loftfs/loftfs/utils/logger"
)

const (
	defaultHttpTimeout = time.Minute * 30
)

type Server struct {
	engine    *gin.Engine
	apiConfig config.Api
	logger    *zap.SugaredLogger
	services  *v1.ServicesV1
}

func New(hierarchyMgr hierarchy.Manager, tokenMgr *token.Manager, cfg config.Config) (*Server, error) {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		engine:    gin.New(),
		apiConfig: cfg.Api,
		logger:    logger.NewLogger("restapi"),
		services:  v1.NewServicesV1(hierarchyMgr, tokenMgr),
	}

	s.engine.Use(gin.Recovery())
	s.engine.Use(s.logMiddleware())

	v1.RegisterRoutes(s.engine, s.services)

	s.engine.GET("/_ping", s.Ping)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if cfg.Api.Pprof {
		pprof.Register(s.engine)
	}

	return s, nil
}

func (s *Server) Run(stopCh chan struct{}) {
	addr := fmt.Sprintf("%s:%d", s.apiConfig.Host, s.apiConfig.Port)
	s.logger.Infof("rest server on %s", addr)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      apitool.MetricMiddleware("restapi", s.engine),
		ReadTimeout:  defaultHttpTimeout,
		WriteTimeout: defaultHttpTimeout,
	}

	go func() {
		if err := httpServer.ListenAndServe(); err != nil {
			if err != http.ErrServerClosed {
				s.logger.Panicw("rest server down", "err", err)
			}
			s.logger.Infof("rest server stopped")
		}
	}()

	<-stopCh
	shutdownCtx, canF := context.WithTimeout(context.TODO(), time.Second)
	defer canF()
	_ = httpServer.Shutdown(shutdownCtx)
}

func (s *Server) Ping(gCtx *gin.Context) {
	gCtx.JSON(200, map[string]string{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) logMiddleware() gin.HandlerFunc {
	return func(gCtx *gin.Context) {
		start := time.Now()
		path := gCtx.Request.URL.Path
		method := gCtx.Request.Method

		gCtx.Next()

		s.logger.Infow("rest request",
			"method", method,
			"path", path,
			"query", gCtx.Request.URL.Query().Encode(),
			"status", gCtx.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
