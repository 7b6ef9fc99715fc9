package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookly/config"
	_ "bookly/docs"
	"bookly/internal/repository"
	"bookly/internal/service"
	"bookly/internal/storage"
	"bookly/internal/transport/rest"
	"bookly/internal/transport/websocket"
	"bookly/pkg/database"
	"bookly/pkg/logger"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Bookly API
// @version 1.0
// @description API для онлайн-записи к специалистам: расписания, свободные слоты, бронирования

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.NewLogger(cfg.Environment)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx := context.Background()

	db, err := database.NewPostgresDB(ctx, cfg.Postgres)
	if err != nil {
		log.Fatal("Не удалось подключиться к БД", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db, "./migrations", log); err != nil {
		log.Fatal("Ошибка при выполнении миграций", zap.Error(err))
	}
	log.Info("Миграции успешно выполнены")

	var fileStorage storage.FileStorage
	if cfg.S3.Endpoint != "" {
		s3Storage, err := storage.NewS3Storage(cfg.S3, log)
		if err != nil {
			log.Fatal("Не удалось инициализировать S3 хранилище", zap.Error(err))
		}
		fileStorage = s3Storage
		log.Info("S3 хранилище успешно инициализировано", zap.String("endpoint", cfg.S3.Endpoint))
	} else {
		log.Warn("S3 хранилище не настроено, загрузка фото будет недоступна")
	}

	repos := repository.NewRepositories(db)

	hub := websocket.NewHub(log)
	go hub.Run()

	services := service.NewServices(service.Deps{
		Repos:       repos,
		Logger:      log,
		Config:      cfg,
		FileStorage: fileStorage,
		Notifier:    hub,
	})

	handler := rest.NewHandler(services, log, cfg, hub)

	router := gin.Default()

	handler.InitRoutes(router)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	srv := &http.Server{
		Addr:    ":" + cfg.HTTP.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Ошибка запуска сервера", zap.Error(err))
		}
	}()

	log.Info("Сервер запущен", zap.String("addr", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Выключение сервера...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Ошибка при остановке сервера", zap.Error(err))
	}

	log.Info("Сервер успешно остановлен")
}
