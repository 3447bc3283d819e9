package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/diasporahub/internal/app/controllers"
	appMigrations "github.com/yigit/diasporahub/internal/app/migrations"
	"github.com/yigit/diasporahub/internal/app/models/dto"
	"github.com/yigit/diasporahub/internal/app/registry"
	appRepos "github.com/yigit/diasporahub/internal/app/repositories"
	appRoutes "github.com/yigit/diasporahub/internal/app/routes"
	appServices "github.com/yigit/diasporahub/internal/app/services"
	"github.com/yigit/diasporahub/internal/app/settings"
	"github.com/yigit/diasporahub/internal/config"
	"github.com/yigit/diasporahub/internal/db"
	appMiddleware "github.com/yigit/diasporahub/internal/middleware"
	pkgAuth "github.com/yigit/diasporahub/internal/pkg/auth"
	"github.com/yigit/diasporahub/internal/pkg/filestorage"
	"github.com/yigit/diasporahub/internal/pkg/helpers"
	"github.com/yigit/diasporahub/internal/pkg/kvstore"
	"github.com/yigit/diasporahub/internal/pkg/logger"
	"github.com/yigit/diasporahub/internal/pkg/websocket"
	"github.com/yigit/diasporahub/internal/seed"
)

// DefaultConfigPath is read when no path is given on the command line
const DefaultConfigPath = "configs/config.yaml"

// Dependencies holds all the application dependencies
type Dependencies struct {
	Registry       *registry.Registry
	Settings       *settings.Store
	LocalRepos     *appRepos.LocalRepositories
	BackendRepos   *appRepos.BackendRepositories // nil when the backend is disabled
	FileStorage    *filestorage.LocalStorage
	Hub            *websocket.Hub
	JWTService     *pkgAuth.JWTService
	AuthService    *appServices.AuthService
	Controllers    appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	WSHandler      *websocket.Handler
	Logger         zerolog.Logger

	unsubscribeSettings func()
}

// Close detaches the settings listener from the hub
func (d *Dependencies) Close() {
	if d.unsubscribeSettings != nil {
		d.unsubscribeSettings()
	}
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupLocalStore opens the on-device key-value store
func SetupLocalStore(cfg *config.Config, lgr zerolog.Logger) (*sql.DB, *kvstore.Store, error) {
	lgr.Info().Str("path", cfg.Storage.LocalDBPath).Msg("Opening local store...")
	sqlDB, err := db.OpenSQLite(cfg.Storage.LocalDBPath)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to open local store")
		return nil, nil, err
	}
	return sqlDB, kvstore.New(sqlDB), nil
}

// SetupDatabase connects to the hosted backend and runs its migrations.
// It returns a nil pool when the backend is disabled.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	if !cfg.Database.Enabled {
		lgr.Info().Msg("Hosted backend disabled, running local-only")
		return nil, nil
	}

	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(dbPool).MigrateFromDirectory(ctx, migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return dbPool, nil
}

// BuildDependencies initializes repositories, services and controllers.
// dbPool may be nil.
func BuildDependencies(ctx context.Context, cfg *config.Config, kv *kvstore.Store, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Registry = registry.Default()
	deps.LocalRepos = appRepos.NewLocalRepositories(kv)

	// Mock datasets only fill empty collections
	if err := seed.CreateDefaultData(ctx, deps.LocalRepos, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	deps.Settings = settings.New(kv, deps.Registry)
	loaded := deps.Settings.Load(ctx)
	lgr.Info().
		Str("status", string(loaded.Status)).
		Str("communityId", loaded.Settings.CommunityID).
		Str("areaId", loaded.Settings.AreaID()).
		Msg("Location state loaded")

	deps.Hub = websocket.NewHub(lgr)
	deps.unsubscribeSettings = deps.Settings.Subscribe(func(change settings.Change) {
		deps.Hub.Publish(websocket.SettingsChannel, "settings."+string(change.Reason), change)
	})

	var err error
	publicURL := strings.TrimRight(cfg.Server.PublicURL, "/")
	if publicURL == "" {
		publicURL = "http://localhost:" + cfg.Server.Port
	}
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, publicURL+"/uploads")
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	calendarDuration := helpers.ParseDuration(cfg.Calendar.DefaultDuration, 2*time.Hour)

	locationService := appServices.NewLocationService(deps.Settings, deps.Registry, lgr)
	threadService := appServices.NewThreadService(deps.LocalRepos.ThreadRepository, deps.Registry, deps.Settings, deps.Hub, lgr)
	groupService := appServices.NewGroupService(seed.Groups(), deps.Registry, deps.Settings)
	studentHubService := appServices.NewStudentHubService(seed.HelpRequests(time.Now()), deps.Registry, deps.Settings)
	marketplaceService := appServices.NewMarketplaceService(seed.Listings(), deps.Registry, deps.Settings)
	eventService := appServices.NewEventService(deps.LocalRepos.EventRepository, deps.Registry, deps.Settings, cfg.CalendarLocation(), calendarDuration, lgr)
	feedService := appServices.NewFeedService(deps.LocalRepos.PostRepository, deps.Registry, deps.Settings, deps.Hub, lgr)

	var profileService appServices.ProfileService
	if dbPool != nil {
		deps.BackendRepos = appRepos.NewBackendRepositories(dbPool)
		deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
			SecretKey:       cfg.JWT.Secret,
			AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, time.Hour),
			RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
			ExchangeCodeExp: helpers.ParseDuration(cfg.JWT.ExchangeCodeExpiration, 5*time.Minute),
			TokenIssuer:     cfg.JWT.Issuer,
		})
		deps.AuthService = appServices.NewAuthService(
			deps.BackendRepos.UserRepository,
			deps.BackendRepos.TokenRepository,
			deps.JWTService,
			lgr,
		)
		deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)
		profileService = appServices.NewProfileService(deps.LocalRepos.ProfileRepository, deps.BackendRepos.RemoteProfileRepository, deps.FileStorage, lgr)
		deps.Controllers.Auth = appControllers.NewAuthController(deps.AuthService, lgr)
	} else {
		profileService = appServices.NewProfileService(deps.LocalRepos.ProfileRepository, nil, deps.FileStorage, lgr)
	}

	deps.Controllers.System = appControllers.NewSystemController(dto.AppManifestResponse{
		AppID:   cfg.App.ID,
		AppName: cfg.App.Name,
		WebDir:  cfg.App.WebDir,
	}, dbPool != nil)
	deps.Controllers.Location = appControllers.NewLocationController(locationService, lgr)
	deps.Controllers.Thread = appControllers.NewThreadController(threadService, lgr)
	deps.Controllers.Directory = appControllers.NewDirectoryController(groupService, studentHubService, marketplaceService, lgr)
	deps.Controllers.Event = appControllers.NewEventController(eventService, lgr)
	deps.Controllers.Feed = appControllers.NewFeedController(feedService, lgr)
	deps.Controllers.Profile = appControllers.NewProfileController(profileService, lgr)

	deps.WSHandler = websocket.NewHandler(deps.Hub, channelAuthorizer(deps.Registry, deps.LocalRepos.ThreadRepository), lgr)

	return deps, nil
}

// channelAuthorizer admits subscriptions to existing threads and communities
func channelAuthorizer(reg *registry.Registry, threads *appRepos.ThreadRepository) websocket.ChannelAuthorizer {
	return func(kind, id string) bool {
		switch kind {
		case websocket.SettingsChannel:
			return true
		case "community":
			_, ok := reg.Get(id)
			return ok
		case "thread":
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_, err := threads.Get(ctx, id)
			return err == nil
		default:
			return false
		}
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

	if err := appMiddleware.RegisterValidators(); err != nil {
		lgr.Error().Err(err).Msg("Failed to register custom validators")
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(lgr))

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, deps.WSHandler)
	appRoutes.SetupSwagger(router)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
