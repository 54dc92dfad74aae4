package config

import (
	"Food-Surplus-Backend/internal/api/handlers"
	"Food-Surplus-Backend/internal/api/routes"
	"Food-Surplus-Backend/internal/middleware"
	"Food-Surplus-Backend/internal/utils"
	"Food-Surplus-Backend/internal/utils/mailing"
	"Food-Surplus-Backend/internal/utils/storage"
	"Food-Surplus-Backend/pkg/food"
	"Food-Surplus-Backend/pkg/jwt"
	"Food-Surplus-Backend/pkg/lifecycle"
	"Food-Surplus-Backend/pkg/request"
	"Food-Surplus-Backend/pkg/review"
	"Food-Surplus-Backend/pkg/user"
	"io"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// Dependencies are the collaborators NewApp wires into the services.
type Dependencies struct {
	DB         *gorm.DB
	Storage    storage.AwsS3
	Mailer     mailing.Mailer
	JWTService jwt.JWTService
	AppURL     string
	LogOutput  io.Writer
	// RateLimit is the number of requests allowed per client each second, 0 disables it.
	RateLimit  int
}

// App is the HTTP server plus the background food lifecycle job.
type App struct {
	*fiber.App
	Lifecycle lifecycle.LifecycleService
}

// NewApp builds the application from config.yaml and the environment.
func NewApp(db *gorm.DB) (*App, error) {
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}

	mailConfig := mailing.LoadMailConfig()
	return Build(Dependencies{
		DB:         db,
		Storage:    storage.NewAwsS3(),
		Mailer:     mailing.NewMailer(mailConfig),
		JWTService: jwt.NewJWTService(),
		AppURL:     mailConfig.AppURL,
		LogOutput:  file,
		RateLimit:  20,
	}), nil
}

func Build(deps Dependencies) *App {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	app.Use(recover.New())
	if deps.LogOutput != nil {
		app.Use(logger.New(logger.Config{
			TimeFormat: "2006-01-02 15:04:05",
			TimeZone:   "UTC",
			Output:     deps.LogOutput,
		}))
	}

	if deps.RateLimit > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        deps.RateLimit,
			Expiration: 1 * time.Second,
		}))
	}

	// Repository
	userRepository := user.NewUserRepository(deps.DB)
	foodRepository := food.NewFoodRepository(deps.DB)
	requestRepository := request.NewRequestRepository(deps.DB)
	reviewRepository := review.NewReviewRepository(deps.DB)
	lifecycleRepository := lifecycle.NewLifecycleRepository(deps.DB)

	// Service
	userService := user.NewUserService(userRepository, deps.JWTService)
	foodService := food.NewFoodService(foodRepository, userRepository, deps.Storage)
	requestService := request.NewRequestService(
		requestRepository,
		foodRepository,
		userRepository,
		deps.Mailer,
		deps.AppURL,
	)
	reviewService := review.NewReviewService(reviewRepository, requestRepository)
	lifecycleService := lifecycle.NewLifecycleService(
		lifecycleRepository,
		utils.GetConfig("LIFECYCLE_CRON"),
		utils.GetConfigInt("LIFECYCLE_RETENTION_DAYS", lifecycle.DefaultRetentionDays),
	)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	foodHandler := handlers.NewFoodHandler(foodService, validator)
	requestHandler := handlers.NewRequestHandler(requestService, validator)
	reviewHandler := handlers.NewReviewHandler(reviewService, validator)

	// routes
	routesConfig := routes.Config{
		App:            app,
		UserHandler:    userHandler,
		FoodHandler:    foodHandler,
		RequestHandler: requestHandler,
		ReviewHandler:  reviewHandler,
		Middleware:     middlewares,
		JWTService:     deps.JWTService,
	}
	routesConfig.Setup()

	return &App{App: app, Lifecycle: lifecycleService}
}
