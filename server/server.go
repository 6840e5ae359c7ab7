package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gsarmaonline/modelloader/core"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

type (
	Server struct {
		ctx    context.Context
		cfg    *ServerConfig
		models core.Registry
		log    *zap.Logger

		apiEngine *gin.Engine
	}

	ServerConfig struct {
		Host string `json:"host"`
		Port string `json:"port"`

		// JWTSecret enables bearer authentication on every route when set.
		JWTSecret string `json:"-"`
	}
)

func NewServer(ctx context.Context, cfg *ServerConfig, models core.Registry, log *zap.Logger) (srv *Server, err error) {
	if cfg == nil {
		return nil, errors.New("server config is required")
	}
	if log == nil {
		log = zap.NewNop()
	}

	srv = &Server{
		ctx:    ctx,
		cfg:    cfg,
		models: models,
		log:    log,
	}
	srv.apiEngine = gin.New()
	srv.apiEngine.Use(gin.Recovery(), srv.requestLogger)
	srv.setupRoutes()
	return
}

func (srv *Server) setupRoutes() {
	api := srv.apiEngine.Group("/models")
	if srv.cfg.JWTSecret != "" {
		api.Use(srv.authMiddleware)
	}

	api.GET("", srv.ListModelsHandler)
	api.GET("/:name", srv.GetModelHandler)
	api.GET("/:name/records", srv.ListRecordsHandler)
}

// Handler exposes the router, mostly for tests.
func (srv *Server) Handler() http.Handler {
	return srv.apiEngine
}

func (srv *Server) Addr() string {
	return net.JoinHostPort(srv.cfg.Host, srv.cfg.Port)
}

// Run serves until the server's context is cancelled.
func (srv *Server) Run() (err error) {
	httpSrv := &http.Server{
		Addr:    srv.Addr(),
		Handler: srv.apiEngine,
	}

	errCh := make(chan error, 1)
	go func() {
		srv.log.Info("server listening", zap.String("addr", httpSrv.Addr), zap.Int("models", len(srv.models)))
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		return
	case <-srv.ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = httpSrv.Shutdown(shutdownCtx); err != nil {
		return
	}
	srv.log.Info("server stopped")
	return
}

func (srv *Server) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()

	srv.log.Info("request",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", c.Writer.Status()),
		zap.Duration("latency", time.Since(start)),
	)
}
