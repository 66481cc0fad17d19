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

	"interviewiq-server/config"
	"interviewiq-server/database"
	_ "interviewiq-server/docs" // Swagger docs
	adminctrl "interviewiq-server/internal/controller/admin"
	userctrl "interviewiq-server/internal/controller/user"
	"interviewiq-server/internal/logger"
	"interviewiq-server/internal/middleware"
	"interviewiq-server/internal/model"
	"interviewiq-server/internal/repository"
	"interviewiq-server/internal/service"
)

// @title InterviewIQ API
// @version 1.0
// @description Adaptive mock interview practice with AI scoring and readiness analytics.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewUserRepository,
			repository.NewQuestionRepository,
			repository.NewInterviewRepository,
			repository.NewEvaluationRepository,
		),

		fx.Provide(
			service.NewAuthService,
			service.NewQuestionBankService,
			service.NewGeminiEvaluatorService,
			service.NewScoringService,
			service.NewSessionService,
			service.NewAnalyticsService,
			service.NewSeederService,
		),

		fx.Provide(
			userctrl.NewAuthController,
			userctrl.NewInterviewController,
			userctrl.NewAnalyticsController,
			adminctrl.NewAdminController,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(SeedDatabase),
		fx.Invoke(RegisterRoutesAndStartServer),
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

// RegisterRoutesAndStartServer configures API routes and manages the server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authSvc service.AuthService,
	authCtrl *userctrl.AuthController,
	interviewCtrl *userctrl.InterviewController,
	analyticsCtrl *userctrl.AnalyticsController,
	adminCtrl *adminctrl.AdminController,
) {
	public := router.Group("/api/v1")
	private := router.Group("/api/v1")
	private.Use(middleware.Auth(authSvc))

	authCtrl.RegisterRoutes(public, private)
	interviewCtrl.RegisterRoutes(private)
	analyticsCtrl.RegisterRoutes(private)

	adminGroup := router.Group("/api/v1/admin")
	adminGroup.Use(middleware.Auth(authSvc), middleware.RequireAdmin())
	adminCtrl.RegisterRoutes(adminGroup)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("InterviewIQ server starting on port %s", cfg.Server.Port)
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

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Question{},
		&model.Interview{},
		&model.InterviewQuestion{},
		&model.Answer{},
		&model.AnswerEvaluation{},
		&model.Evaluation{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}

func SeedDatabase(seeder service.SeederService) error {
	return seeder.Seed()
}
