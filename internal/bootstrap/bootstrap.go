package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/berkeley-decal/decal-portal/internal/app/controllers"
	appMigrations "github.com/berkeley-decal/decal-portal/internal/app/migrations"
	appRepos "github.com/berkeley-decal/decal-portal/internal/app/repositories"
	appRoutes "github.com/berkeley-decal/decal-portal/internal/app/routes"
	appServices "github.com/berkeley-decal/decal-portal/internal/app/services"
	"github.com/berkeley-decal/decal-portal/internal/config"
	"github.com/berkeley-decal/decal-portal/internal/db"
	appMiddleware "github.com/berkeley-decal/decal-portal/internal/middleware"
	"github.com/berkeley-decal/decal-portal/internal/pkg/cache"
	"github.com/berkeley-decal/decal-portal/internal/pkg/email"
	"github.com/berkeley-decal/decal-portal/internal/pkg/identity"
	"github.com/berkeley-decal/decal-portal/internal/pkg/logger"
	"github.com/berkeley-decal/decal-portal/internal/pkg/objectstorage"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	CatalogService       *appServices.CatalogService
	SubmissionService    *appServices.SubmissionService
	ModerationService    *appServices.ModerationService
	CourseController     *appControllers.CourseController
	SubmissionController *appControllers.SubmissionController
	AdminController      *appControllers.AdminController
	ProfileController    *appControllers.ProfileController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	RateLimiter          *appMiddleware.RateLimiter
	Repos                *appRepos.Repositories
	Storage              objectstorage.Store
	RedisClient          *redis.Client
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")
	return dbPool, nil
}

// SetupRedis connects to Redis for rate limiting. Redis is optional; when it
// is not configured or unreachable the limiter runs disabled.
func SetupRedis(cfg *config.Config, lgr zerolog.Logger) *redis.Client {
	if cfg.Redis.Addr == "" {
		lgr.Warn().Msg("Redis not configured, rate limiting disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		lgr.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unreachable, rate limiting will fail open")
	}

	return client
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	storage, err := objectstorage.NewLocalStore(cfg.Storage.BasePath, cfg.Storage.Bucket, cfg.Storage.BaseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize object storage")
		return nil, fmt.Errorf("failed to initialize object storage: %w", err)
	}
	deps.Storage = storage

	verifier := identity.NewJWTVerifier(identity.JWTConfig{
		SecretKey:   cfg.Auth.JWTSecret,
		TokenIssuer: cfg.Auth.JWTIssuer,
	})

	notifier := email.NewSMTPNotifier(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
	}, lgr)

	listCache := cache.New()
	validator := appServices.NewCrossValidator(deps.Repos.ApprovedCourseRepository, lgr)

	deps.CatalogService = appServices.NewCatalogService(
		deps.Repos.CourseRepository,
		deps.Repos.SectionRepository,
		deps.Repos.FacilitatorRepository,
		deps.Repos.SemesterRepository,
		listCache,
		config.MustDuration(cfg.Cache.PublicTTL),
		lgr,
	)

	deps.SubmissionService = appServices.NewSubmissionService(
		deps.Repos.CourseRepository,
		deps.Repos.SectionRepository,
		deps.Repos.FacilitatorRepository,
		deps.Repos.SemesterRepository,
		storage,
		validator,
		lgr,
	)

	deps.ModerationService = appServices.NewModerationService(
		deps.Repos.CourseRepository,
		deps.Repos.SectionRepository,
		deps.Repos.FacilitatorRepository,
		validator,
		storage,
		notifier,
		listCache,
		config.MustDuration(cfg.Cache.ModeratorTTL),
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(verifier, deps.Repos.ProfileRepository)
	deps.RedisClient = SetupRedis(cfg, lgr)
	deps.RateLimiter = appMiddleware.NewRateLimiter(deps.RedisClient)

	deps.CourseController = appControllers.NewCourseController(deps.CatalogService)
	deps.SubmissionController = appControllers.NewSubmissionController(deps.SubmissionService)
	deps.AdminController = appControllers.NewAdminController(deps.ModerationService)
	deps.ProfileController = appControllers.NewProfileController(deps.Repos.ProfileRepository)

	return deps, nil
}

// limitRequestBody caps request bodies before any handler reads them.
// Multipart submissions may carry PDFs up to the multipart cap; every
// other body is small JSON.
func limitRequestBody(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			limit := cfg.Server.MaxJSONBody
			if strings.HasPrefix(c.ContentType(), "multipart/") {
				limit = cfg.Server.MaxMultipartBody
			}
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()
	router.MaxMultipartMemory = cfg.Server.MaxMultipartBody

	router.Use(limitRequestBody(cfg))

	// Browser clients send credentials; the origin list is an allow list,
	// never a wildcard.
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Stored documents are served straight off the local store; the URL
	// layout matches objectstorage.LocalStore.PublicURL.
	router.Static("/storage", cfg.Storage.BasePath)

	appRoutes.SetupRouter(router,
		deps.CourseController,
		deps.SubmissionController,
		deps.AdminController,
		deps.ProfileController,
		deps.AuthMiddleware,
		deps.RateLimiter,
		appRoutes.RateLimits{
			PublicLimit:  cfg.RateLimit.PublicLimit,
			PrivateLimit: cfg.RateLimit.PrivateLimit,
			Window:       config.MustDuration(cfg.RateLimit.Window),
		},
	)

	return router
}
