package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"storefront/docs" //this is required to generate swagger docs
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/kv"
	"storefront/internal/ratelimiter"
	"storefront/internal/search"
	"storefront/internal/session"
)

// catalogService is what the handlers need from the catalog facade.
type catalogService interface {
	Apply(ctx context.Context, st catalog.SearchState) []search.Hit
	State() catalog.SearchState
	TotalHits() int
	TotalPages() int
	LastError() error
	FacetValues(ctx context.Context, attribute string) []catalog.FacetValue
	Suggestions(ctx context.Context, query string, limit int) []search.Hit
	Products(ctx context.Context, limit, skip int) ([]cart.Product, int)
	ProductBySlug(ctx context.Context, slug string) *cart.Product
	Categories(ctx context.Context) []catalog.Category
	HomePage(ctx context.Context) *catalog.HomePage
	FeaturedProducts(ctx context.Context, limit int) []cart.Product
}

type application struct {
	config      config
	logger      *zap.SugaredLogger
	carts       kv.Store
	catalog     catalogService
	sessions    session.Authenticator
	rateLimiter ratelimiter.Limiter
}

type config struct {
	addr        string
	env         string
	apiURL      string
	frontendURL string
	session     sessionConfig
	algolia     algoliaConfig
	contentful  contentfulConfig
	redis       redisConfig
	rateLimiter ratelimiter.Config
}

type sessionConfig struct {
	secret string
	iss    string
	exp    time.Duration
}

type algoliaConfig struct {
	appID  string
	apiKey string
	index  string
}

type contentfulConfig struct {
	spaceID     string
	accessToken string
	environment string
}

type redisConfig struct {
	addr string
	ttl  time.Duration
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{app.config.frontendURL},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(app.RateLimiterMiddleware)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)

		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))

		r.Route("/cart", func(r chi.Router) {
			r.Use(app.SessionMiddleware)
			r.Get("/", app.getCartHandler)
			r.Delete("/", app.clearCartHandler)
			r.Post("/items", app.addCartItemHandler)
			r.Route("/items/{itemID}", func(r chi.Router) {
				r.Patch("/", app.updateCartItemHandler)
				r.Delete("/", app.removeCartItemHandler)
				r.Post("/increment", app.incrementCartItemHandler)
				r.Post("/decrement", app.decrementCartItemHandler)
			})
		})

		r.Route("/search", func(r chi.Router) {
			r.Get("/", app.searchHandler)
			r.Get("/facets/{attribute}", app.facetValuesHandler)
			r.Get("/suggestions", app.suggestionsHandler)
		})

		r.Get("/products", app.listProductsHandler)
		r.Get("/products/featured", app.featuredProductsHandler)
		r.Get("/products/{slug}", app.getProductBySlugHandler)
		r.Get("/categories", app.listCategoriesHandler)
		r.Get("/home", app.homePageHandler)
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	// Docs
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/v1"

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
