package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"interview-navigator/internal/config"
	"interview-navigator/internal/domain/fiber/handler"
	"interview-navigator/internal/middleware"
	"interview-navigator/internal/model"
	"interview-navigator/internal/repository"
	"interview-navigator/internal/service"
	"interview-navigator/internal/storage"
	"interview-navigator/internal/usecase"
)

func main() {
	ctx := context.Background()
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()

	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: appConfig.Env != "production",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.Env == "production"
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	db := ConnectDB()

	store, err := storage.NewMinIOClient(ctx)
	if err != nil {
		log.Fatalf("Could not connect to object storage: %v", err)
	}

	generator, err := newTextGenerator(ctx)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	cvRepo := repository.NewCVRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	reportRepo := repository.NewReportRepository(db)

	questionService := service.NewQuestionService(generator)
	feedbackService := service.NewFeedbackService(generator)

	authUC := usecase.NewAuthUsecase(userRepo)
	interviewUC := usecase.NewInterviewUsecase(cvRepo, sessionRepo, questionService, store)
	reportUC := usecase.NewReportUsecase(cvRepo, sessionRepo, reportRepo, feedbackService)

	handler.NewAuthHandler(authUC).RegisterRoutes(app)
	handler.NewInterviewHandler(interviewUC).RegisterRoutes(app)
	handler.NewReportHandler(reportUC).RegisterRoutes(app)

	log.Println("Server running on ", appConfig.Port)
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal(err)
	}
}

// newTextGenerator picks the generation backend from AI_PROVIDER. Both
// backends satisfy the same interface, so the rest of the wiring does not
// care which one is active.
func newTextGenerator(ctx context.Context) (service.TextGenerator, error) {
	aiConfig := config.LoadAIConfig()
	switch aiConfig.Provider {
	case config.ProviderOpenRouter:
		return service.NewOpenRouterService(), nil
	case config.ProviderGemini:
		return service.NewGeminiService(ctx)
	default:
		return nil, fmt.Errorf("unknown AI provider %q", aiConfig.Provider)
	}
}

func ConnectDB() *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		dbConfig.Host,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Name,
		dbConfig.Port,
		dbConfig.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	pgDB, err := db.DB()
	if err != nil {
		log.Fatalf("Could not get database instance: %v", err)
	}
	if appConfig.Env != "production" {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	err = db.AutoMigrate(&model.User{}, &model.CV{}, &model.InterviewSession{}, &model.PerformanceReport{})
	if err != nil {
		log.Fatal("migration failed: ", err)
	}
	return db
}
