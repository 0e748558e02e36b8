package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"github.com/ogf-media/portal-core/internal/article"
	articlerepo "github.com/ogf-media/portal-core/internal/article/repo"
	"github.com/ogf-media/portal-core/internal/auth"
	authrepo "github.com/ogf-media/portal-core/internal/auth/repo"
	"github.com/ogf-media/portal-core/internal/channel"
	channelrepo "github.com/ogf-media/portal-core/internal/channel/repo"
	"github.com/ogf-media/portal-core/internal/comment"
	commentrepo "github.com/ogf-media/portal-core/internal/comment/repo"
	"github.com/ogf-media/portal-core/internal/router"
	"github.com/ogf-media/portal-core/internal/telegram"
	"github.com/ogf-media/portal-core/pkg/database"
	"github.com/ogf-media/portal-core/pkg/utilities"
)

func main() {
	// load .env file if present so os.Getenv picks values from it
	// this is best-effort: if no .env exists, continue (use defaults or real env)
	_ = godotenv.Load()

	// init logger
	lg, err := utilities.InitLogger(utilities.LogConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()

	sugar := lg.Sugar()
	sugar.Info("starting portal-core")

	// init db
	cfg := database.ConfigFromEnv()
	sqlDB, err := database.Connect(cfg)
	if err != nil {
		sugar.Fatalf("db connect: %v", err)
	}
	defer sqlDB.Close()

	// wrap with sqlx for convenience in repos/services
	sqlxDB := sqlx.NewDb(sqlDB, "postgres")
	defer sqlxDB.Close()

	// repositories
	userRepo := authrepo.NewUserRepo(sqlxDB)
	codeRepo := authrepo.NewCodeRepo(sqlxDB)
	articleRepo := articlerepo.NewArticleRepo(sqlxDB)
	channelRepo := channelrepo.NewChannelRepo(sqlxDB)
	commentRepo := commentrepo.NewCommentRepo(sqlxDB)

	ensureCtx, cancelEnsure := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelEnsure()
	for name, ensure := range map[string]func(context.Context) error{
		"users":       userRepo.EnsureTable,
		"admin_codes": codeRepo.EnsureTable,
		"articles":    articleRepo.EnsureTable,
		"channels":    channelRepo.EnsureTable,
		"comments":    commentRepo.EnsureTable,
	} {
		if err := ensure(ensureCtx); err != nil {
			sugar.Fatalf("ensure table %s: %v", name, err)
		}
	}

	// telegram client for code delivery
	tgCfg, err := telegram.ConfigFromEnv()
	if err != nil {
		sugar.Fatalf("telegram config: %v", err)
	}
	tgClient := telegram.NewClient(tgCfg)
	if !tgClient.Enabled() {
		sugar.Warn("telegram bot token not configured: running in development mode")
	}

	// services and handlers
	authCfg := auth.ConfigFromEnv()
	authSvc := auth.NewService(userRepo, codeRepo, tgClient, sugar, authCfg)
	ident := auth.NewIdentifier(userRepo, authSvc.Sessions())

	handlers := router.Handlers{
		Auth:    auth.NewHandler(authSvc, sugar),
		Article: article.NewHandler(article.NewService(articleRepo), ident, sugar),
		Channel: channel.NewHandler(channel.NewService(channelRepo), ident, sugar),
		Comment: comment.NewHandler(comment.NewService(commentRepo), ident, sugar),
	}

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = "0.0.0.0:8080"
	}

	// mount http server
	srv := &http.Server{
		Addr:    addr,
		Handler: router.RegisterRoutes(sugar, handlers),
	}

	// run server in background
	go func() {
		sugar.Infow("http server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("http server failed: %v", err)
		}
	}()

	<-ctx.Done()

	sugar.Info("shutting down")

	// give a short grace period for cleanup
	doneCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// shutdown http server
	if err := srv.Shutdown(doneCtx); err != nil {
		sugar.Warnf("http server shutdown failed: %v", err)
	}

	// ping db once more
	if err := sqlDB.PingContext(doneCtx); err != nil {
		sugar.Warnf("db ping on shutdown failed: %v", err)
	}

	sugar.Info("goodbye")
}
