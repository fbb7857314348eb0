package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"storefront/internal/catalog"
	"storefront/internal/content"
	"storefront/internal/kv"
	"storefront/internal/ratelimiter"
	"storefront/internal/search"
	"storefront/internal/session"
)

var version = "1.0.0"

//	@title			Storefront API
//	@description	Backend-for-frontend of the storefront: catalog search, CMS content and session carts.

//	@BasePath	/v1

// NewLogger creates a new zap logger with color.
func NewLogger() (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)
	level := zapcore.InfoLevel
	core := zapcore.NewCore(consoleEncoder, zapcore.NewMultiWriteSyncer(zapcore.AddSync(os.Stdout)), level)

	return zap.New(core).Sugar(), nil
}

func loadRateLimiterConfig() ratelimiter.Config {
	requests := 200
	if val, exists := os.LookupEnv("RATELIMITER_REQUESTS_COUNT"); exists {
		if parsed, err := strconv.Atoi(val); err == nil {
			requests = parsed
		} else {
			log.Println("Invalid RATELIMITER_REQUESTS_COUNT, defaulting to", requests)
		}
	}

	enabled := false
	if val, exists := os.LookupEnv("RATE_LIMITER_ENABLED"); exists {
		if parsed, err := strconv.ParseBool(val); err == nil {
			enabled = parsed
		} else {
			log.Println("Invalid RATE_LIMITER_ENABLED, defaulting to", enabled)
		}
	}

	return ratelimiter.Config{
		RequestsPerTimeFrame: requests,
		TimeFrame:            5 * time.Second,
		Enabled:              enabled,
	}
}

func envDuration(key string, fallback time.Duration) time.Duration {
	val, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		log.Printf("Invalid %s, defaulting to %s", key, fallback)
		return fallback
	}
	return d
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from the environment")
	}

	cfg := config{
		addr:        os.Getenv("ADDR"),
		env:         os.Getenv("ENV"),
		apiURL:      os.Getenv("EXTERNAL_URL"),
		frontendURL: os.Getenv("FRONTEND_URL"),
		session: sessionConfig{
			secret: os.Getenv("SESSION_SECRET"),
			iss:    "storefront",
			exp:    envDuration("SESSION_EXP", 7*24*time.Hour),
		},
		algolia: algoliaConfig{
			appID:  os.Getenv("ALGOLIA_APP_ID"),
			apiKey: os.Getenv("ALGOLIA_SEARCH_API_KEY"),
			index:  os.Getenv("ALGOLIA_INDEX_NAME"),
		},
		contentful: contentfulConfig{
			spaceID:     os.Getenv("CONTENTFUL_SPACE_ID"),
			accessToken: os.Getenv("CONTENTFUL_ACCESS_TOKEN"),
			environment: os.Getenv("CONTENTFUL_ENVIRONMENT"),
		},
		redis: redisConfig{
			addr: os.Getenv("REDIS_ADDR"),
			ttl:  envDuration("CART_TTL", 7*24*time.Hour),
		},
		rateLimiter: loadRateLimiterConfig(),
	}
	if cfg.addr == "" {
		cfg.addr = ":8080"
	}
	if cfg.algolia.index == "" {
		cfg.algolia.index = "algolia_apparel_sample_dataset"
	}

	logger, err := NewLogger()
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer logger.Sync()

	// Cart persistence: Redis when configured, otherwise process-local.
	var carts kv.Store
	if cfg.redis.addr != "" {
		redisStore, err := kv.NewRedisStoreWithTTL(cfg.redis.addr, cfg.redis.ttl)
		if err != nil {
			logger.Fatalw("connect redis", "addr", cfg.redis.addr, "error", err)
		}
		defer redisStore.Close()
		carts = redisStore
		logger.Infow("cart persistence enabled", "backend", "redis", "addr", cfg.redis.addr)
	} else {
		carts = kv.NewMemoryStore()
		logger.Warnw("REDIS_ADDR not set, carts will not survive restarts")
	}

	searchClient, err := search.New(search.Config{
		AppID:  cfg.algolia.appID,
		APIKey: cfg.algolia.apiKey,
	})
	if err != nil {
		logger.Fatalw("create search client", "error", err)
	}

	contentClient, err := content.New(content.Config{
		SpaceID:     cfg.contentful.spaceID,
		AccessToken: cfg.contentful.accessToken,
		Environment: cfg.contentful.environment,
	})
	if err != nil {
		logger.Fatalw("create content client", "error", err)
	}

	if cfg.session.secret == "" {
		logger.Fatalw("SESSION_SECRET is required")
	}

	app := &application{
		config:      cfg,
		logger:      logger,
		carts:       carts,
		catalog:     catalog.New(logger, searchClient, cfg.algolia.index, contentClient),
		sessions:    session.NewJWTAuthenticator(cfg.session.secret, cfg.session.iss, cfg.session.exp),
		rateLimiter: ratelimiter.NewFixedWindowLimiter(cfg.rateLimiter.RequestsPerTimeFrame, cfg.rateLimiter.TimeFrame),
	}

	mux := app.mount()
	logger.Fatal(app.run(mux))
}
