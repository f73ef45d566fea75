package di

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"nestfinder/analyzers"
	"nestfinder/api"
	"nestfinder/api/traveltime"
	"nestfinder/config"
	"nestfinder/dao/redis"
	"nestfinder/dao/sqlite"
	"nestfinder/db"
	"nestfinder/models"
	"nestfinder/server"
	"nestfinder/server/handlers"
	services "nestfinder/service"
)

// Container holds all application dependencies.
type Container struct {
	Config               *config.Config
	Logger               *zap.Logger
	RedisClient          db.RedisClient
	RedisPOIDao          *redis.RedisPOIDao
	ListingStore         *sqlite.ListingStore
	ListingSource        services.ListingSource
	TravelTimeAPI        traveltime.TravelTimeAPI
	DatasetLoader        *services.DatasetLoaderService
	Datasets             *services.Datasets
	CoordinatorService   *services.CoordinatorService
	SearchHandler        *handlers.SearchHandler
	ReferenceHandler     *handlers.ReferenceHandler
	MuxRouter            *mux.Router
	Router               *server.Router
	NestfinderHttpServer *server.NestfinderHttpServer

	closers []func() error
}

// NewContainer initializes and wires up all dependencies. Datasets are
// loaded before the coordinator is built so every lookup table is complete
// when the first search arrives.
func NewContainer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	logger.Info("initializing container", zap.String("env", cfg.Env))
	c := &Container{Config: cfg, Logger: logger}

	if err := c.initRedis(ctx); err != nil {
		c.Close()
		return nil, err
	}
	c.RedisPOIDao = redis.NewRedisPOIDao(c.RedisClient, logger)

	var writer services.ListingWriter
	if cfg.Env == config.EnvProd {
		store, err := sqlite.OpenListingStore(config.ResolvePath(cfg.SQLite.Path))
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to open listing store: %w", err)
		}
		c.closers = append(c.closers, store.Close)
		if err := store.EnsureSchema(ctx); err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to prepare listing store: %w", err)
		}
		c.ListingStore = store
		c.ListingSource = store
		writer = store
		logger.Info("using sqlite listing store", zap.String("path", cfg.SQLite.Path))
	}

	c.DatasetLoader = services.NewDatasetLoaderService(cfg.Data, writer, c.RedisPOIDao, logger)
	ds, err := c.DatasetLoader.Load(ctx)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Datasets = ds

	if c.ListingSource == nil {
		c.ListingSource = services.NewStaticListingSource(ds.Listings)
		logger.Info("using static listing source", zap.Int("listings", len(ds.Listings)))
	}

	c.TravelTimeAPI = newTravelTimeAPI(cfg, logger)

	var finder analyzers.POIFinder
	if ds.HasPOIs() {
		finder = c.RedisPOIDao
	} else {
		logger.Warn("point-of-interest data incomplete, walkability will be degraded",
			zap.Any("missing", ds.MissingPOICategories()),
		)
	}

	c.CoordinatorService = services.NewCoordinatorService(
		c.ListingSource,
		services.Analyzers{
			Commute: analyzers.NewCommuteAnalyzer(
				c.TravelTimeAPI,
				models.Coordinates{Lat: cfg.Commute.DefaultDestinationLat, Lng: cfg.Commute.DefaultDestinationLng},
				cfg.TravelTime.Timeout,
				logger,
			),
			Neighborhood: analyzers.NewNeighborhoodAnalyzer(ds.Neighborhoods, ds.Safety, logger),
			Budget:       analyzers.NewBudgetAnalyzer(ds.Market, logger),
			Walkability:  analyzers.NewWalkabilityAnalyzer(finder, cfg.Walkability.RadiusMeters, logger),
			Amenity:      analyzers.NewAmenityAnalyzer(),
		},
		services.CoordinatorConfig{
			CandidateLimit: cfg.Search.CandidateLimit,
			TopK:           cfg.Search.TopK,
			MaxConcurrency: cfg.Search.MaxConcurrency,
		},
		logger,
	)

	c.SearchHandler = handlers.NewSearchHandler(c.CoordinatorService, logger)
	c.ReferenceHandler = handlers.NewReferenceHandler(ds.Neighborhoods, logger)
	c.MuxRouter = mux.NewRouter()
	c.Router = server.NewRouter(c.SearchHandler, c.ReferenceHandler, c.MuxRouter, logger)
	c.NestfinderHttpServer = server.NewNestfinderHttpServer(c.Router, c.MuxRouter, cfg.Server.Addr, cfg.Server.ShutdownTimeout, logger)

	return c, nil
}

func (c *Container) initRedis(ctx context.Context) error {
	if !c.Config.Redis.Enabled {
		c.Logger.Info("using in-memory geo index")
		c.RedisClient = db.NewMockRedisClient()
		return nil
	}

	redisInternalClient := goredis.NewClient(&goredis.Options{
		Addr:     c.Config.Redis.Addr,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	})
	c.closers = append(c.closers, redisInternalClient.Close)

	redisClient := db.NewGeoRedisClient(redisInternalClient, c.Logger)
	if err := redisClient.Ping(ctx); err != nil {
		return fmt.Errorf("failed to connect to redis at %s: %w", c.Config.Redis.Addr, err)
	}
	c.Logger.Info("using redis geo index", zap.String("addr", c.Config.Redis.Addr))
	c.RedisClient = redisClient
	return nil
}

// newTravelTimeAPI returns the real client when credentials are set, the
// fixture-backed mock in dev, and nil otherwise. A nil API means every
// commute is estimated.
func newTravelTimeAPI(cfg *config.Config, logger *zap.Logger) traveltime.TravelTimeAPI {
	if cfg.TravelTime.HasCredentials() {
		logger.Info("using traveltime api", zap.String("base_url", cfg.TravelTime.BaseURL))
		httpClient := api.NewHTTPClientWithTimeout(cfg.TravelTime.BaseURL, cfg.TravelTime.Timeout)
		client := traveltime.NewTravelTimeApiClient(httpClient, cfg.TravelTime.RequestsPerSecond, cfg.TravelTime.Burst, logger)
		client.SetCredentials(cfg.TravelTime.AppID, cfg.TravelTime.APIKey)
		client.SetCountry(cfg.TravelTime.Country)
		return client
	}

	if cfg.Env != config.EnvProd && cfg.Data.TravelTimeFixture != "" {
		mock, err := traveltime.NewTravelTimeApiClientMockFromJSON(config.ResolvePath(cfg.Data.TravelTimeFixture))
		if err == nil {
			logger.Info("using mock traveltime api")
			return mock
		}
		logger.Warn("could not load traveltime fixture", zap.Error(err))
	}

	logger.Warn("no traveltime credentials, commutes will be estimated")
	return nil
}

// Close releases the listing store and redis connection.
func (c *Container) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i]())
	}
	c.closers = nil
	return errors.Join(errs...)
}
