package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"quizmaster/config"
	"quizmaster/database"
	_ "quizmaster/docs" // Swagger docs - auto-generated
	"quizmaster/internal/controller"
	adminctrl "quizmaster/internal/controller/admin"
	authctrl "quizmaster/internal/controller/auth"
	userctrl "quizmaster/internal/controller/user"
	"quizmaster/internal/logger"
	"quizmaster/internal/model"
	"quizmaster/internal/repository"
	"quizmaster/internal/service"
	"quizmaster/pkg/cache"
)

// @title QuizMaster API
// @version 1.0
// @description Online quiz platform: users take shuffled multiple-choice quizzes, admins manage quizzes, questions, users and results.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
			func(cfg *config.Config) service.QuestionCache {
				return cache.NewRedisCache(cfg.Redis.Addr)
			},
		),

		// Repositories layer
		fx.Provide(
			repository.NewQuizRepository,
			repository.NewQuestionRepository,
			repository.NewAttemptRepository,
			repository.NewResultRepository,
			repository.NewUserRepository,
			repository.NewPasswordResetRepository,
		),

		// Services layer
		fx.Provide(
			service.NewAttemptService,
			service.NewSubmissionService,
			service.NewQuizService,
			service.NewAdminService,
			func(userRepo repository.UserRepository, resetRepo repository.PasswordResetRepository, cfg *config.Config) service.AuthService {
				return service.NewAuthService(userRepo, resetRepo, cfg.JWT.Secret, cfg.JWT.TokenTTL)
			},
		),

		// API controllers layer
		fx.Provide(
			authctrl.NewAuthController,
			userctrl.NewQuizController,
			adminctrl.NewAdminController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authSvc service.AuthService,
	authController *authctrl.AuthController,
	quizController *userctrl.QuizController,
	adminController *adminctrl.AdminController,
) {
	api := router.Group("/api/v1")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authController.Register)
		authGroup.POST("/login", authController.Login)
		authGroup.POST("/forgot-password", authController.ForgotPassword)
		authGroup.POST("/reset-password", authController.ResetPassword)
	}

	userGroup := api.Group("")
	userGroup.Use(controller.JWTAuth(authSvc))
	{
		userGroup.GET("/quizzes", quizController.GetQuizzes)
		userGroup.POST("/quizzes/:quiz_id/start", quizController.StartQuiz)
		userGroup.POST("/attempts/:attempt_id/submit", quizController.SubmitQuiz)
		userGroup.GET("/my-results", quizController.GetMyResults)
	}

	adminGroup := api.Group("/admin")
	adminGroup.Use(controller.JWTAuth(authSvc), controller.AdminOnly())
	{
		adminGroup.GET("/quizzes", adminController.GetQuizzes)
		adminGroup.POST("/quizzes", adminController.CreateQuiz)
		adminGroup.PUT("/quizzes/:quiz_id", adminController.UpdateQuiz)
		adminGroup.DELETE("/quizzes/:quiz_id", adminController.DeleteQuiz)
		adminGroup.GET("/quizzes/:quiz_id/questions", adminController.GetQuizQuestions)
		adminGroup.POST("/quizzes/:quiz_id/questions", adminController.AddQuestion)
		adminGroup.PUT("/questions/:question_id", adminController.UpdateQuestion)
		adminGroup.DELETE("/questions/:question_id", adminController.DeleteQuestion)
		adminGroup.GET("/users", adminController.GetUsers)
		adminGroup.GET("/results", adminController.GetResults)
		adminGroup.GET("/stats", adminController.GetStats)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("QuizMaster server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

// AutoMigrateDB runs schema migration at startup, including the partial
// unique index guarding the one-in-progress-attempt invariant. The
// attempts table is never created lazily by business logic.
func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Quiz{},
		&model.Question{},
		&model.QuizAttempt{},
		&model.Result{},
		&model.PasswordReset{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
