package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"opsdash/internal/api"
	"opsdash/internal/config"
	"opsdash/internal/middleware"
	"opsdash/internal/reportschema"
	"opsdash/internal/session"
	"opsdash/internal/store"
)

const shutdownTimeout = 10 * time.Second

// Server HTTP服务器
type Server struct {
	router   *gin.Engine
	store    *store.Store
	sessions *session.Store
	api      *api.Handler
	logger   *zap.Logger
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig, log *zap.Logger) (*Server, error) {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	registry, err := reportschema.Load()
	if err != nil {
		return nil, err
	}

	// 上传审计库
	uploads, err := store.New(cfg.Data.UploadLogDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize upload log: %w", err)
	}

	sessions := session.NewStore(cfg.Session.TTL.Duration, log)
	if err := sessions.StartPurge(cfg.Session.PurgeSchedule); err != nil {
		_ = uploads.Close()
		return nil, err
	}

	s := &Server{
		router:   gin.New(),
		store:    uploads,
		sessions: sessions,
		logger:   log,
		api: api.NewHandler(api.Options{
			Registry:    registry,
			Sessions:    sessions,
			Uploads:     uploads,
			Logger:      log,
			MaxUploadMB: cfg.Server.MaxUploadMB,
		}),
	}
	s.setupRoutes()
	return s, nil
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	s.router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(s.logger),
		middleware.Recovery(s.logger),
	)

	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	s.router.SetHTMLTemplate(api.LoadTemplates())

	apiGroup := s.router.Group("/api")
	{
		s.api.RegisterRoutes(apiGroup)
	}
	s.api.RegisterViews(s.router)

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":      "route not found",
			"request_id": middleware.GetRequestID(c),
		})
	})
}

// Handler 返回 HTTP 处理器（用于测试）
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run 启动服务器，ctx 取消后优雅退出
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	<-errCh
	return nil
}

// Close 停止清理任务并关闭审计库
func (s *Server) Close() error {
	s.sessions.Stop()
	return s.store.Close()
}
