package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/brightpost/auth-service/internal/auth/dto"
	"github.com/brightpost/auth-service/internal/auth/hash"
	"github.com/brightpost/auth-service/internal/auth/service"
	"github.com/brightpost/auth-service/internal/auth/token"
	"github.com/brightpost/auth-service/internal/config"
	lg "github.com/brightpost/auth-service/internal/infra/log"
	"github.com/brightpost/auth-service/internal/migrate"
	pgrepo "github.com/brightpost/auth-service/internal/repo/postgres"
	httpapi "github.com/brightpost/auth-service/internal/transport/http"
	httpmw "github.com/brightpost/auth-service/internal/transport/http/middleware"
)

func main() {
	zapLog := lg.Must(os.Getenv("LOG_LEVEL"))
	defer zapLog.Sync()

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("failed to load config", zap.Error(err))
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		zapLog.Fatal("failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		zapLog.Fatal("db handle", zap.Error(err))
	}
	defer sqlDB.Close()
	if err := migrate.Up(sqlDB); err != nil {
		zapLog.Fatal("run migrations", zap.Error(err))
	}

	issuer, err := token.NewJWTIssuer(cfg)
	if err != nil {
		zapLog.Fatal("failed to init token issuer", zap.Error(err))
	}

	userRepo := pgrepo.NewPostgresUserRepo(db)
	hasher := hash.NewArgon2()
	validate := dto.NewValidator()
	svc := service.NewAuthService(userRepo, hasher, issuer, cfg, validate)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(httpmw.RequestLogger(zapLog))

	if len(cfg.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			AllowCredentials: cfg.AllowCredentials,
			MaxAge:           12 * time.Hour,
		}))
	}

	handler := httpapi.NewHandler(svc, issuer, zapLog)
	handler.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddress, Handler: router}

	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, _ := errgroup.WithContext(rootCtx)

	g.Go(func() error {
		zapLog.Info("http server listening", zap.String("address", cfg.HTTPAddress))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLog.Info("shutdown signal received")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLog.Error("shutdown error", zap.Error(err))
	}
	if err := g.Wait(); err != nil {
		zapLog.Error("server terminated", zap.Error(err))
	}
}
