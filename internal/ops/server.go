// Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
//
// WSO2 LLC. licenses this file to you under the Apache License,
// Version 2.0 (the "License"); you may not use this file except
// in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied. See the License for the
// specific language governing permissions and limitations
// under the License.

// Package ops serves the liveness endpoint used by external health checks,
// plus a small status view over the in-memory state. It sits outside the
// relay core and holds no state of its own.
package ops

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/auroratech/numberbot/internal/dedup"
	"github.com/auroratech/numberbot/internal/store"
)

type Server struct {
	server *http.Server
	logger *slog.Logger
}

func New(port int, st *store.Store, ledger *dedup.Ledger, startedAt time.Time, logger *slog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	router.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"uptime":         time.Since(startedAt).Round(time.Second).String(),
			"sessions":       st.SessionCount(),
			"active_users":   st.ActiveUsers(),
			"relayed_events": ledger.Len(),
		})
	})

	return &Server{
		server: &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: router},
		logger: logger,
	}
}

func (s *Server) Start(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("ops server starting", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}
