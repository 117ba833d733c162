package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gin-gonic/gin"
	"github.com/kube-rca/taskboard/internal/config"
	"github.com/kube-rca/taskboard/internal/db"
	"github.com/kube-rca/taskboard/internal/handler"
	"github.com/kube-rca/taskboard/internal/logging"
	"github.com/kube-rca/taskboard/internal/service"
	"github.com/kube-rca/taskboard/internal/token"
)

// @title Taskboard API
// @version 0.1.0
// @description Multi-tenant task service with bearer token authentication.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 설정 로드. 시크릿이 없으면 여기서 종료
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}

	os.Exit(run(context.Background(), cfg, log))
}

// run wires the server and blocks until shutdown. The return value is the
// process exit code.
func run(ctx context.Context, cfg config.Config, log logging.Logger) int {
	tokens, err := token.NewService(cfg.Auth.AccessTokenSecret, cfg.Auth.RefreshTokenSecret)
	if err != nil {
		log.Error(ctx, "token service init failed", "error", err)
		return 1
	}

	pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		log.Error(ctx, "postgres connect failed", "error", err)
		return 1
	}
	pg := db.NewPostgres(pool)
	defer pg.Close()

	if err := pg.Migrate(ctx); err != nil {
		log.Error(ctx, "migration failed", "error", err)
		return 1
	}

	// 서비스 및 핸들러 조립
	authSvc := service.NewAuthService(pg, tokens, service.NewBcryptHasher(cfg.Auth.BcryptCost))
	taskSvc := service.NewTaskService(pg)

	gin.SetMode(gin.ReleaseMode)
	router := handler.NewRouter(handler.RouterDeps{
		Log:            log,
		Tokens:         tokens,
		Auth:           authSvc,
		Tasks:          taskSvc,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: router,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info(ctx, "http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	wait := gfshutdown.GracefulShutdown(ctx, cfg.Server.ShutdownTimeout, map[string]gfshutdown.Operation{
		"http-server": func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})

	// 풀은 defer로 서버가 멈춘 뒤에 닫힌다
	select {
	case err := <-serveErr:
		log.Error(ctx, "http server stopped", "error", err)
		return 1
	case code := <-wait:
		log.Info(ctx, "shutdown complete", "code", code)
		return code
	}
}
