package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/construsys/gestor/internal/audit"
	"github.com/construsys/gestor/internal/auth"
	"github.com/construsys/gestor/internal/handler"
	"github.com/construsys/gestor/internal/infra"
	"github.com/construsys/gestor/internal/repository/postgres"
	"github.com/construsys/gestor/internal/server"
	"github.com/construsys/gestor/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// 1. Configuração e logger
	cfg, err := infra.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := infra.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	// 2. Recursos: Postgres e Redis
	if cfg.Database.URL == "" {
		logger.Fatal("database.url (ou DATABASE_URL) e obrigatorio")
	}
	repo := postgres.NewRepo(cfg.Database.URL, cfg.Database.MaxConns, cfg.Database.MinConns)
	defer repo.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := repo.Ping(pingCtx); err != nil {
		logger.Fatal("banco inacessivel", zap.Error(err))
	}
	cancel()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// 3. Métricas
	reg := prometheus.NewRegistry()
	metrics := infra.NewMetrics(reg)

	// 4. Auditoria assíncrona (drena no shutdown)
	trail := audit.NewTrail(repo, logger,
		cfg.Audit.BufferSize, cfg.Audit.BatchSize, cfg.Audit.FlushInterval,
		metrics.AuditBufferFill)
	trail.Start()
	defer trail.Stop()

	// 5. Camadas (Dependency Injection)
	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	acl := auth.NewAllowListCache(repo, rdb, cfg.Redis.ACLTTL, logger)
	gate := auth.NewGate(acl)

	authService := service.NewAuthService(repo, tokens, trail, logger)
	dashService := service.NewDashboardService(repo)
	cadService := service.NewCadastroService(repo, gate)
	acessoService := service.NewAcessoService(repo, acl, gate)

	authHandler := handler.NewAuthHandler(authService, cfg.Auth.TokenTTL, cfg.Auth.CookieSecure, metrics, logger)
	dashHandler := handler.NewDashboardHandler(dashService, gate, logger)
	cadHandler := handler.NewCadastroHandler(cadService, dashService, gate, metrics, logger)
	acessoHandler := handler.NewAcessoHandler(acessoService, metrics, logger)

	srv := server.NewServer(logger, metrics, reg, tokens, authHandler, dashHandler, cadHandler, acessoHandler)

	// 6. Servidor HTTP com shutdown gracioso
	httpSrv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      srv,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("API iniciada", zap.String("addr", httpSrv.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("servidor encerrou com erro", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("encerrando...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown incompleto", zap.Error(err))
	}
}
