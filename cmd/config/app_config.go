package config

import (
	"Recipe-API/domain"
	"Recipe-API/internal/api/handlers"
	"Recipe-API/internal/api/presenters"
	"Recipe-API/internal/api/routes"
	"Recipe-API/internal/middleware"
	"Recipe-API/internal/utils"
	"Recipe-API/internal/utils/mailing"
	"Recipe-API/internal/utils/storage"
	"Recipe-API/pkg/jwt"
	"Recipe-API/pkg/recipe"
	"Recipe-API/pkg/user"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB, cfg *utils.Config, log *zap.Logger) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler(log),
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.NewValidator()

	accessLog, err := accessLogOutput(cfg.AccessLogFile)
	if err != nil {
		return nil, err
	}
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     accessLog,
	}))

	// utils
	accessTTL, refreshTTL, err := cfg.TokenTTLs()
	if err != nil {
		return nil, err
	}
	mailer, err := mailing.NewMailer(mailing.MailConfig{
		AppURL:       cfg.AppURL,
		SMTPHost:     cfg.SMTPHost,
		SMTPPort:     cfg.SMTPPort,
		SMTPSender:   cfg.SMTPSenderName,
		SMTPEmail:    cfg.SMTPAuthEmail,
		SMTPPassword: cfg.SMTPAuthPassword,
	})
	if err != nil {
		return nil, err
	}
	s3, err := storage.NewAwsS3(context.Background(), storage.S3Config{
		Bucket:    cfg.AWSS3Bucket,
		Region:    cfg.AWSS3Region,
		AccessKey: cfg.AWSAccessKey,
		SecretKey: cfg.AWSSecretKey,
	})
	if err != nil {
		return nil, err
	}
	if s3 == nil {
		log.Info("AWS_S3_BUCKET not set, recipe image upload disabled")
	}

	// Repository
	userRepository := user.NewUserRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)

	// Service
	jwtService := jwt.NewJWTService(jwt.Config{
		SecretKey:  cfg.JWTSecret,
		Issuer:     cfg.JWTIssuer,
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
	})
	userService := user.NewUserService(userRepository, jwtService, mailer, cfg.AppURL, log)
	recipeService := recipe.NewRecipeService(recipeRepository, userRepository, s3, log)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator, log)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator, log)

	// routes
	routesConfig := routes.Config{
		App:           app,
		UserHandler:   userHandler,
		RecipeHandler: recipeHandler,
		Middleware:    middlewares,
		JWTService:    jwtService,
	}
	routesConfig.Setup()
	return app, nil
}

func accessLogOutput(path string) (io.Writer, error) {
	if path == "" {
		return os.Stdout, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, fmt.Errorf("error creating logs directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	return file, nil
}

func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := domain.MessageFailedProcessRequest

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		}
		if code >= fiber.StatusInternalServerError {
			log.Error("unhandled error", zap.Error(err), zap.String("path", c.Path()))
		}
		return presenters.ErrorResponse(c, code, message, nil)
	}
}
