package pkg

import (
	"context"
	"fmt"

	"mycloud/internal/app/billing"
	"mycloud/internal/app/checkout"
	"mycloud/internal/app/config"
	"mycloud/internal/app/handler"
	"mycloud/internal/app/middleware"
	"mycloud/internal/app/redis"
	"mycloud/internal/app/repository"
	"mycloud/internal/app/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "mycloud/docs"
)

type Application struct {
	Config         *config.Config
	Router         *gin.Engine
	Handler        *handler.Handler
	AuthMiddleware *middleware.AuthMiddleware
}

// NewApp собирает все зависимости кабинета: Redis-хранилище сессий,
// клиент биллинга, базу сохраненных выборов и тикетов, MinIO для
// вложений
func NewApp(ctx context.Context) (*Application, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}

	repo, err := repository.New(cfg.Postgres.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}

	minioClient, err := storage.NewMinIOClient(
		cfg.Minio.Endpoint,
		cfg.Minio.AccessKey,
		cfg.Minio.SecretKey,
		cfg.Minio.Bucket,
		cfg.Minio.UseSSL,
	)
	if err != nil {
		return nil, fmt.Errorf("minio: %w", err)
	}

	billingClient := billing.NewClient(cfg.Billing, redisClient)
	checkoutService := checkout.New(billingClient)

	h := handler.NewHandler(billingClient, checkoutService, repo, redisClient, minioClient, cfg)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://mycloud.uz"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return &Application{
		Config:         cfg,
		Router:         router,
		Handler:        h,
		AuthMiddleware: middleware.NewAuthMiddleware(redisClient, cfg),
	}, nil
}

func (a *Application) RunApp() {
	logrus.Info("Server start up")

	a.Handler.RegisterAPIRoutes(a.Router, a.AuthMiddleware)

	serverAddress := fmt.Sprintf("%s:%d", a.Config.ServiceHost, a.Config.ServicePort)
	logrus.Infof("Starting server on %s", serverAddress)

	if err := a.Router.Run(serverAddress); err != nil {
		logrus.Fatal(err)
	}

	logrus.Info("Server down")
}
