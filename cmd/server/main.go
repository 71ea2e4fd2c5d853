package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/St1cky1/item-service/internal/api"
	grpcapi "github.com/St1cky1/item-service/internal/api/grpc"
	"github.com/St1cky1/item-service/internal/config"
	"github.com/St1cky1/item-service/internal/infrastructure/client"
	"github.com/St1cky1/item-service/internal/repository"
	"github.com/St1cky1/item-service/internal/usecase"
	"github.com/St1cky1/item-service/internal/worker"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatal("❌ Ошибка загрузки конфигурации:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup

	// Аудит необязателен: без БД и RabbitMQ сервис работает только в памяти
	var auditPublisher usecase.AuditPublisher
	if cfg.AuditEnabled() {
		publisher, closeAudit, err := startAudit(ctx, cfg, &wg)
		if err != nil {
			log.Fatal("❌ Ошибка запуска аудита:", err)
		}
		defer closeAudit()
		auditPublisher = publisher
	} else {
		log.Println("Аудит отключен: DB_HOST или RABBITMQ_HOST не заданы")
	}

	itemRepo := repository.NewItemRepository()
	itemService := usecase.NewItemService(itemRepo, auditPublisher)

	// HTTP сервер
	httpServer := &http.Server{
		Addr:    ":" + cfg.HTTP.Port,
		Handler: api.NewRouter(itemService, cfg),
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Printf("🚀 HTTP сервер запущен на порту %s", cfg.HTTP.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("❌ HTTP server error: %v", err)
			stop()
		}
	}()

	// gRPC сервер
	var grpcServer *grpcapi.GRPCServer
	if cfg.GRPC.Port != "" {
		grpcServer = grpcapi.NewGRPCServer(itemService)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := grpcServer.Start(cfg.GRPC.Port); err != nil {
				log.Printf("❌ gRPC server error: %v", err)
				stop()
			}
		}()
	}

	fmt.Println("Для остановки нажмите Ctrl+C")
	<-ctx.Done()

	log.Println("Завершение работы...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ HTTP shutdown error: %v", err)
	}
	if grpcServer != nil {
		grpcServer.Stop()
	}

	wg.Wait()
	log.Println("✅ Приложение завершено корректно")
}

// startAudit: миграции, пул БД, издатель RabbitMQ и воркер аудита
func startAudit(ctx context.Context, cfg *config.Config, wg *sync.WaitGroup) (usecase.AuditPublisher, func(), error) {
	dbURL := cfg.DB.URL()

	if err := runMigrations(cfg.DB.MigrationsDir, dbURL); err != nil {
		return nil, nil, err
	}

	db, err := client.NewPostgresClient(ctx, dbURL)
	if err != nil {
		return nil, nil, err
	}
	log.Println("✅ Подключение к БД установлено")

	rabbitMQ, err := client.NewRabbitMQClient(cfg.RabbitMQ.URL(), cfg.RabbitMQ.Queue)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	log.Println("✅ Подключение к RabbitMQ установлено")

	auditRepo := repository.NewItemAuditRepository(db.Pool)
	auditWorker := worker.NewAuditWorker(cfg.RabbitMQ.URL(), rabbitMQ.QueueName(), auditRepo)

	wg.Add(1)
	go func() {
		defer wg.Done()
		auditWorker.Start(ctx)
	}()

	closeFn := func() {
		rabbitMQ.Close()
		db.Close()
	}
	return rabbitMQ, closeFn, nil
}

func runMigrations(dir, dbURL string) error {
	m, err := migrate.New("file://"+dir, dbURL)
	if err != nil {
		return fmt.Errorf("ошибка создания мигратора: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("ошибка выполнения миграций: %w", err)
	}

	log.Println("✅ Миграции выполнены успешно")
	return nil
}
