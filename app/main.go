package main

import (
	"context"
	"net/http"
	"time"

	"academy-manager/internal/repositories"
	"academy-manager/internal/routes"
	"academy-manager/internal/schema"
	"academy-manager/pkg/config"
	"academy-manager/pkg/customvalidator"
	"academy-manager/pkg/database"
	apperrors "academy-manager/pkg/errors"
	applogger "academy-manager/pkg/logger"
	"academy-manager/pkg/mailer"
	appmw "academy-manager/pkg/middleware"
	"academy-manager/pkg/service"
	"academy-manager/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// 1. echo e logger primeiro
	e := echo.New()
	e.HideBanner = true
	logger := applogger.NewLogger()
	defer func() { _ = logger.Sync() }()

	cfg := config.New()

	// 2. middlewares
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("PANIC capturado",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Erro interno do servidor", err, nil)
				_ = utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, appmw.CSRFHeaderName},
		AllowCredentials: true,
		ExposeHeaders:    []string{echo.HeaderContentDisposition},
	}))
	e.Use(appmw.SecurityHeaders())
	e.Use(appmw.CSRF(cfg.Session.CookieSecure))
	e.Use(appmw.InjectLogger(logger))
	e.Use(appmw.RequestLogger(logger))

	// 3. validador
	v := validator.New()
	if err := customvalidator.RegisterCustomValidations(v); err != nil {
		logger.Fatal("Erro ao registrar as regras de validação", zap.Error(err))
	}
	e.Validator = utils.NewValidator(v)

	// 4. banco e schema
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := database.Open(ctx, cfg.Database.Connection())
	if err != nil {
		cancel()
		logger.Fatal("Não foi possível conectar ao banco", zap.Error(err), zap.String("type", cfg.Database.Type))
	}
	defer db.Close()

	if err := schema.Initialize(ctx, db, cfg.Auth.AdminPassword, logger); err != nil {
		cancel()
		logger.Fatal("Falha ao inicializar o schema", zap.Error(err))
	}
	cancel()

	// 5. contador de tentativas de login: Redis quando configurado, senão em memória
	var cacheRepo repositories.CacheRepositoryInterface
	if cfg.Redis.Address != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       0,
		})
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logger.Fatal("Não foi possível conectar ao Redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
		}
		defer redisClient.Close()
		cacheRepo = repositories.NewRedisCacheRepository(redisClient)
	} else {
		logger.Info("REDIS_ADDRESS vazio, usando cache em memória")
		cacheRepo = repositories.NewMemoryCacheRepository(cfg.Auth.LockoutDuration)
	}

	sessionSvc := service.NewSessionService(cfg.Session.SecretKey, cfg.Session.TTL, logger)
	mail := mailer.NewSMTPMailer(mailer.Config{
		Server:        cfg.Mail.Server,
		Port:          cfg.Mail.Port,
		Username:      cfg.Mail.Username,
		Password:      cfg.Mail.Password,
		DefaultSender: cfg.Mail.DefaultSender,
	}, logger)

	// 6. rotas
	err = routes.InitRouter(e, routes.Deps{
		DB:         db,
		Cache:      cacheRepo,
		SessionSvc: sessionSvc,
		Mailer:     mail,
		Logger:     logger,
		Config:     cfg,
	})
	if err != nil {
		logger.Fatal("Falha ao registrar as rotas", zap.Error(err))
	}

	// 7. servidor
	logger.Info("🚀 Servidor iniciado", zap.String("port", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil && err != http.ErrServerClosed {
		logger.Fatal("Erro ao iniciar o servidor", zap.Error(err))
	}
}
