package bootstrap

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/studentreg/internal/app/controllers"
	appMigrations "github.com/yigit/studentreg/internal/app/migrations"
	appRepos "github.com/yigit/studentreg/internal/app/repositories"
	appRoutes "github.com/yigit/studentreg/internal/app/routes"
	appServices "github.com/yigit/studentreg/internal/app/services"
	"github.com/yigit/studentreg/internal/config"
	"github.com/yigit/studentreg/internal/db"
	appMiddleware "github.com/yigit/studentreg/internal/middleware"
	"github.com/yigit/studentreg/internal/pkg/logger"
	"github.com/yigit/studentreg/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Store             *db.Store
	Repos             *appRepos.Repositories
	StudentService    appServices.StudentService // Interface type
	SystemService     appServices.SystemService  // Interface type
	StudentController *appControllers.StudentController
	SystemController  *appControllers.SystemController
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads .env, the YAML config and the environment,
// then configures the global logger from the result.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	if err := config.LoadDotEnv(); err != nil {
		logger.Error().Err(err).Msg("Failed to load .env file")
		return nil, zerolog.Logger{}, err
	}

	configPath := config.GetEnv("CONFIG_PATH", filepath.Join("configs", "config.yaml"))
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})
	lgr.Info().
		Str("env", cfg.Server.Env).
		Str("logLevel", string(logLevel)).
		Str("logFormat", cfg.Logging.Format).
		Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase connects to MongoDB, applies migrations and seeds sample data
// when asked to. A failed connection is logged and the disconnected store is
// still returned: the server keeps serving and data endpoints answer 500
// until the database is reachable at the next start.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) *db.Store {
	store := db.NewStore(cfg.Database, lgr)

	lgr.Info().Msg("Establishing database connection...")
	if _, err := store.Connect(ctx); err != nil {
		lgr.Warn().Err(err).Msg("MongoDB unavailable, continuing without a database")
		return store
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(store, lgr, appMigrations.Default()...)
	if err := migrator.Migrate(ctx); err != nil {
		lgr.Error().Err(err).Msg("Database migration error, proceeding anyway...")
	} else {
		lgr.Info().Strs("versions", migrator.Versions()).Msg("Database migrations applied.")
	}

	if cfg.Database.Seed {
		repo := appRepos.NewStudentRepository(store)
		if err := seed.CreateDefaultData(ctx, repo, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return store
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(store *db.Store, startedAt time.Time, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Store: store, Logger: lgr}

	deps.Repos = appRepos.NewRepositories(store)

	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository, lgr)
	deps.SystemService = appServices.NewSystemService(store, startedAt, lgr)

	deps.StudentController = appControllers.NewStudentController(deps.StudentService)
	deps.SystemController = appControllers.NewSystemController(deps.SystemService)

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	switch cfg.Server.Env {
	case config.EnvProduction:
		gin.SetMode(gin.ReleaseMode)
	case config.EnvTest:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	lgr.Info().Str("ginMode", gin.Mode()).Msg("Gin mode set")

	router := gin.New()
	// nil trusts no proxy, so ClientIP falls back to the socket peer
	var proxies []string
	if len(cfg.Server.TrustedProxies) > 0 {
		proxies = cfg.Server.TrustedProxies
	}
	if err := router.SetTrustedProxies(proxies); err != nil {
		lgr.Error().Err(err).Strs("trustedProxies", proxies).Msg("Invalid trusted proxies, trusting none")
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(
		appMiddleware.Settings(cfg.IsProduction()),
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(lgr),
		appMiddleware.Recovery(),
		appMiddleware.SecurityHeaders(),
		appMiddleware.CORS(cfg.Server.CORSOrigins),
	)
	if rl := cfg.Server.RateLimit; rl.Enabled {
		router.Use(appMiddleware.RateLimit(rl.RPS, rl.Burst))
		lgr.Info().Float64("rps", rl.RPS).Int("burst", rl.Burst).Msg("Rate limiting enabled")
	}

	appRoutes.SetupRouter(router, deps.StudentController, deps.SystemController)

	return router
}
