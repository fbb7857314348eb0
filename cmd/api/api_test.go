package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/kv"
	"storefront/internal/ratelimiter"
	"storefront/internal/search"
	"storefront/internal/session"
)

// MockCatalog is a mock implementation of catalogService.
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) Apply(ctx context.Context, st catalog.SearchState) []search.Hit {
	args := m.Called(ctx, st)
	var hits []search.Hit
	if arg0 := args.Get(0); arg0 != nil {
		hits = arg0.([]search.Hit)
	}
	return hits
}

func (m *MockCatalog) State() catalog.SearchState {
	args := m.Called()
	return args.Get(0).(catalog.SearchState)
}

func (m *MockCatalog) TotalHits() int {
	args := m.Called()
	return args.Int(0)
}

func (m *MockCatalog) TotalPages() int {
	args := m.Called()
	return args.Int(0)
}

func (m *MockCatalog) LastError() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockCatalog) FacetValues(ctx context.Context, attribute string) []catalog.FacetValue {
	args := m.Called(ctx, attribute)
	var values []catalog.FacetValue
	if arg0 := args.Get(0); arg0 != nil {
		values = arg0.([]catalog.FacetValue)
	}
	return values
}

func (m *MockCatalog) Suggestions(ctx context.Context, query string, limit int) []search.Hit {
	args := m.Called(ctx, query, limit)
	var hits []search.Hit
	if arg0 := args.Get(0); arg0 != nil {
		hits = arg0.([]search.Hit)
	}
	return hits
}

func (m *MockCatalog) Products(ctx context.Context, limit, skip int) ([]cart.Product, int) {
	args := m.Called(ctx, limit, skip)
	var products []cart.Product
	if arg0 := args.Get(0); arg0 != nil {
		products = arg0.([]cart.Product)
	}
	return products, args.Int(1)
}

func (m *MockCatalog) ProductBySlug(ctx context.Context, slug string) *cart.Product {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*cart.Product)
}

func (m *MockCatalog) Categories(ctx context.Context) []catalog.Category {
	args := m.Called(ctx)
	var categories []catalog.Category
	if arg0 := args.Get(0); arg0 != nil {
		categories = arg0.([]catalog.Category)
	}
	return categories
}

func (m *MockCatalog) HomePage(ctx context.Context) *catalog.HomePage {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*catalog.HomePage)
}

func (m *MockCatalog) FeaturedProducts(ctx context.Context, limit int) []cart.Product {
	args := m.Called(ctx, limit)
	var products []cart.Product
	if arg0 := args.Get(0); arg0 != nil {
		products = arg0.([]cart.Product)
	}
	return products
}

func newTestApp(t *testing.T, mockCat *MockCatalog, cfgRL ratelimiter.Config) *application {
	t.Helper()

	cfg := config{
		addr: ":0",
		env:  "test",
		session: sessionConfig{
			secret: "test-secret",
			iss:    "storefront",
			exp:    time.Hour,
		},
		rateLimiter: cfgRL,
	}

	return &application{
		config:      cfg,
		logger:      zap.NewNop().Sugar(),
		carts:       kv.NewMemoryStore(),
		catalog:     mockCat,
		sessions:    session.NewJWTAuthenticator(cfg.session.secret, cfg.session.iss, cfg.session.exp),
		rateLimiter: ratelimiter.NewFixedWindowLimiter(cfgRL.RequestsPerTimeFrame, cfgRL.TimeFrame),
	}
}

// newTestClient returns a client with a cookie jar so the session survives
// across requests the way a browser's would.
func newTestClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

type cartEnvelope struct {
	Data cart.View `json:"data"`
}

func getCart(t *testing.T, client *http.Client, baseURL string) cart.View {
	t.Helper()
	res, err := client.Get(baseURL + "/v1/cart")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var env cartEnvelope
	require.NoError(t, json.NewDecoder(res.Body).Decode(&env))
	return env.Data
}

func TestHealthCheck(t *testing.T) {
	app := newTestApp(t, new(MockCatalog), ratelimiter.Config{RequestsPerTimeFrame: 100, TimeFrame: time.Second})
	server := httptest.NewServer(app.mount())
	defer server.Close()

	res, err := http.Get(server.URL + "/v1/health")
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test", body["env"])
}

func TestGetCart_NewSession(t *testing.T) {
	app := newTestApp(t, new(MockCatalog), ratelimiter.Config{RequestsPerTimeFrame: 100, TimeFrame: time.Second})
	server := httptest.NewServer(app.mount())
	defer server.Close()

	res, err := http.Get(server.URL + "/v1/cart")
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)

	var sessionCookie *http.Cookie
	for _, c := range res.Cookies() {
		if c.Name == sessionCookieName {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie, "first cart request should set a session cookie")
	assert.True(t, sessionCookie.HttpOnly)

	var env cartEnvelope
	require.NoError(t, json.NewDecoder(res.Body).Decode(&env))
	assert.Empty(t, env.Data.Items)
	assert.Zero(t, env.Data.Total)
	assert.Zero(t, env.Data.ItemCount)
}

func TestAddCartItem_Success(t *testing.T) {
	mockCat := new(MockCatalog)
	app := newTestApp(t, mockCat, ratelimiter.Config{RequestsPerTimeFrame: 100, TimeFrame: time.Second})
	server := httptest.NewServer(app.mount())
	defer server.Close()

	product := &cart.Product{ID: "prod-1", Name: "Wool Beanie", Slug: "wool-beanie", Price: 20}
	mockCat.On("ProductBySlug", mock.Anything, "wool-beanie").Return(product, nil).Once()

	client := newTestClient(t)

	reqBody, _ := json.Marshal(AddCartItemPayload{ProductSlug: "wool-beanie", Quantity: 2})
	res, err := client.Post(server.URL+"/v1/cart/items", "application/json", bytes.NewBuffer(reqBody))
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)

	var env cartEnvelope
	require.NoError(t, json.NewDecoder(res.Body).Decode(&env))
	require.Len(t, env.Data.Items, 1)
	assert.Equal(t, "prod-1-default", env.Data.Items[0].ID)
	assert.Equal(t, 2, env.Data.Items[0].Quantity)
	assert.Equal(t, 40.0, env.Data.Subtotal)
	assert.Equal(t, 3.2, env.Data.Tax)
	assert.Equal(t, 5.99, env.Data.Shipping)
	assert.Equal(t, 49.19, env.Data.Total)

	// Same session sees the same cart on the next request.
	view := getCart(t, client, server.URL)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Quantity)

	mockCat.AssertExpectations(t)
}

func TestAddCartItem_DefaultQuantity(t *testing.T) {
	mockCat := new(MockCatalog)
	app := newTestApp(t, mockCat, ratelimiter.Config{RequestsPerTimeFrame: 100, TimeFrame: time.Second})
	server := httptest.NewServer(app.mount())
	defer server.Close()

	product := &cart.Product{ID: "prod-1", Name: "Wool Beanie", Slug: "wool-beanie", Price: 20}
	mockCat.On("ProductBySlug", mock.Anything, "wool-beanie").Return(product, nil).Once()

	client := newTestClient(t)
	reqBody, _ := json.Marshal(AddCartItemPayload{ProductSlug: "wool-beanie"})
	res, err := client.Post(server.URL+"/v1/cart/items", "application/json", bytes.NewBuffer(reqBody))
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)

	var env cartEnvelope
	require.NoError(t, json.NewDecoder(res.Body).Decode(&env))
	require.Len(t, env.Data.Items, 1)
	assert.Equal(t, 1, env.Data.Items[0].Quantity)
}

func TestAddCartItem_UnknownProduct(t *testing.T) {
	mockCat := new(MockCatalog)
	app := newTestApp(t, mockCat, ratelimiter.Config{RequestsPerTimeFrame: 100, TimeFrame: time.Second})
	server := httptest.NewServer(app.mount())
	defer server.Close()

	mockCat.On("ProductBySlug", mock.Anything, "no-such-product").Return(nil, nil).Once()

	client := newTestClient(t)
	reqBody, _ := json.Marshal(AddCartItemPayload{ProductSlug: "no-such-product"})
	res, err := client.Post(server.URL+"/v1/cart/items", "application/json", bytes.NewBuffer(reqBody))
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	mockCat.AssertExpectations(t)
}

func TestAddCartItem_MissingSlug(t *testing.T) {
	app := newTestApp(t, new(MockCatalog), ratelimiter.Config{RequestsPerTimeFrame: 100, TimeFrame: time.Second})
	server := httptest.NewServer(app.mount())
	defer server.Close()

	client := newTestClient(t)
	res, err := client.Post(server.URL+"/v1/cart/items", "application/json", bytes.NewBufferString(`{"quantity":1}`))
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestUpdateAndClearCart(t *testing.T) {
	mockCat := new(MockCatalog)
	app := newTestApp(t, mockCat, ratelimiter.Config{RequestsPerTimeFrame: 100, TimeFrame: time.Second})
	server := httptest.NewServer(app.mount())
	defer server.Close()

	product := &cart.Product{ID: "prod-1", Name: "Wool Beanie", Slug: "wool-beanie", Price: 20}
	mockCat.On("ProductBySlug", mock.Anything, "wool-beanie").Return(product, nil).Once()

	client := newTestClient(t)
	reqBody, _ := json.Marshal(AddCartItemPayload{ProductSlug: "wool-beanie", Quantity: 1})
	res, err := client.Post(server.URL+"/v1/cart/items", "application/json", bytes.NewBuffer(reqBody))
	require.NoError(t, err)
	res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	// Bump the quantity to 3.
	patchBody := bytes.NewBufferString(`{"quantity":3}`)
	req, err := http.NewRequest(http.MethodPatch, server.URL+"/v1/cart/items/prod-1-default", patchBody)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	res, err = client.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var env cartEnvelope
	require.NoError(t, json.NewDecoder(res.Body).Decode(&env))
	require.Len(t, env.Data.Items, 1)
	assert.Equal(t, 3, env.Data.Items[0].Quantity)
	assert.Equal(t, 60.0, env.Data.Subtotal)
	assert.Equal(t, 0.0, env.Data.Shipping)

	// Clearing empties the cart and zeroes every total.
	reqDel, err := http.NewRequest(http.MethodDelete, server.URL+"/v1/cart", nil)
	require.NoError(t, err)
	resDel, err := client.Do(reqDel)
	require.NoError(t, err)
	defer resDel.Body.Close()
	require.Equal(t, http.StatusOK, resDel.StatusCode)

	view := getCart(t, client, server.URL)
	assert.Empty(t, view.Items)
	assert.Zero(t, view.Total)
}

func TestIncrementDecrementCartItem(t *testing.T) {
	mockCat := new(MockCatalog)
	app := newTestApp(t, mockCat, ratelimiter.Config{RequestsPerTimeFrame: 100, TimeFrame: time.Second})
	server := httptest.NewServer(app.mount())
	defer server.Close()

	product := &cart.Product{ID: "prod-1", Name: "Wool Beanie", Slug: "wool-beanie", Price: 20}
	mockCat.On("ProductBySlug", mock.Anything, "wool-beanie").Return(product, nil).Once()

	client := newTestClient(t)
	reqBody, _ := json.Marshal(AddCartItemPayload{ProductSlug: "wool-beanie", Quantity: 1})
	res, err := client.Post(server.URL+"/v1/cart/items", "application/json", bytes.NewBuffer(reqBody))
	require.NoError(t, err)
	res.Body.Close()

	res, err = client.Post(server.URL+"/v1/cart/items/prod-1-default/increment", "application/json", nil)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var env cartEnvelope
	require.NoError(t, json.NewDecoder(res.Body).Decode(&env))
	require.Len(t, env.Data.Items, 1)
	assert.Equal(t, 2, env.Data.Items[0].Quantity)

	// Two decrements: back to one, then the line disappears.
	res, err = client.Post(server.URL+"/v1/cart/items/prod-1-default/decrement", "application/json", nil)
	require.NoError(t, err)
	res.Body.Close()

	res, err = client.Post(server.URL+"/v1/cart/items/prod-1-default/decrement", "application/json", nil)
	require.NoError(t, err)
	defer res.Body.Close()

	var after cartEnvelope
	require.NoError(t, json.NewDecoder(res.Body).Decode(&after))
	assert.Empty(t, after.Data.Items)
}

func TestSearchHandler(t *testing.T) {
	mockCat := new(MockCatalog)
	app := newTestApp(t, mockCat, ratelimiter.Config{RequestsPerTimeFrame: 100, TimeFrame: time.Second})
	server := httptest.NewServer(app.mount())
	defer server.Close()

	min := 10.0
	wantState := catalog.SearchState{
		Query:  "beanie",
		Page:   1,
		SortBy: "price_asc",
	}
	wantState.Filters.Categories = []string{"Hats", "Accessories"}
	wantState.Filters.PriceRange = &catalog.PriceRange{Min: &min}

	hits := []search.Hit{{ObjectID: "1", Title: "Wool Beanie"}}

	mockCat.On("Apply", mock.Anything, wantState).Return(hits, nil).Once()
	mockCat.On("LastError").Return(nil).Once()
	mockCat.On("TotalHits").Return(37).Once()
	mockCat.On("TotalPages").Return(2).Once()
	mockCat.On("State").Return(wantState).Once()

	res, err := http.Get(server.URL + "/v1/search?q=beanie&categories=Hats,Accessories&price_min=10&page=1&sort=price_asc")
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)

	var payload struct {
		Data struct {
			Hits       []search.Hit `json:"hits"`
			TotalHits  int          `json:"total_hits"`
			TotalPages int          `json:"total_pages"`
			Page       int          `json:"page"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&payload))
	require.Len(t, payload.Data.Hits, 1)
	assert.Equal(t, "Wool Beanie", payload.Data.Hits[0].Title)
	assert.Equal(t, 37, payload.Data.TotalHits)
	assert.Equal(t, 2, payload.Data.TotalPages)
	assert.Equal(t, 1, payload.Data.Page)

	mockCat.AssertExpectations(t)
}

func TestSearchHandler_BadPage(t *testing.T) {
	app := newTestApp(t, new(MockCatalog), ratelimiter.Config{RequestsPerTimeFrame: 100, TimeFrame: time.Second})
	server := httptest.NewServer(app.mount())
	defer server.Close()

	res, err := http.Get(server.URL + "/v1/search?page=abc")
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestGetProductBySlug_NotFound(t *testing.T) {
	mockCat := new(MockCatalog)
	app := newTestApp(t, mockCat, ratelimiter.Config{RequestsPerTimeFrame: 100, TimeFrame: time.Second})
	server := httptest.NewServer(app.mount())
	defer server.Close()

	mockCat.On("ProductBySlug", mock.Anything, "ghost").Return(nil, nil).Once()

	res, err := http.Get(server.URL + "/v1/products/ghost")
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	mockCat.AssertExpectations(t)
}

func TestRateLimiterMiddleware(t *testing.T) {
	app := newTestApp(t, new(MockCatalog), ratelimiter.Config{
		RequestsPerTimeFrame: 2,
		TimeFrame:            time.Minute,
		Enabled:              true,
	})
	server := httptest.NewServer(app.mount())
	defer server.Close()

	for i := 0; i < 2; i++ {
		res, err := http.Get(server.URL + "/v1/health")
		require.NoError(t, err)
		res.Body.Close()
		require.Equal(t, http.StatusOK, res.StatusCode)
	}

	res, err := http.Get(server.URL + "/v1/health")
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusTooManyRequests, res.StatusCode)
	assert.NotEmpty(t, res.Header.Get("Retry-After"))
}
