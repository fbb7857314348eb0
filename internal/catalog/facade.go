package catalog

import (
	"context"
	"reflect"
	"sort"
	"sync"

	"go.uber.org/zap"

	"storefront/internal/cart"
	"storefront/internal/content"
	"storefront/internal/search"
)

const (
	defaultHitsPerPage   = 24
	defaultSuggestLimit  = 5
	defaultProductLimit  = 100
	defaultFeaturedLimit = 8
	contentTypeProduct   = "pageProduct"
	contentTypeCategory  = "category"
	contentTypeHomePage  = "homePage"
	productIncludeDepth  = 2
	homePageIncludeDepth = 3
	categoryIncludeDepth = 1
	categoryParentDepth  = 1
)

// Facade translates caller intent into search-index and content-repository
// requests and maps the responses to view models. It owns one shared result
// slot: overlapping queries are fenced by a sequence number so only the most
// recent one may update visible state. Failures from either backend are
// logged and degraded to empty results; no error ever escapes to callers.
type Facade struct {
	log     *zap.SugaredLogger
	search  search.Client
	index   string
	content content.Client

	mu        sync.Mutex
	seq       uint64
	state     SearchState
	results   []search.Hit
	totalHits int
	searching bool
	lastErr   error
}

func New(log *zap.SugaredLogger, searchClient search.Client, index string, contentClient content.Client) *Facade {
	return &Facade{
		log:     log,
		search:  searchClient,
		index:   index,
		content: contentClient,
		state:   SearchState{HitsPerPage: defaultHitsPerPage},
		results: []search.Hit{},
	}
}

// Search runs the current state against the index and returns the visible
// results. If a newer query was issued while this one was in flight, the
// stale response is discarded and the winner's results are returned.
func (f *Facade) Search(ctx context.Context) []search.Hit {
	f.mu.Lock()
	f.seq++
	seq := f.seq
	st := f.state
	f.searching = true
	f.lastErr = nil
	f.mu.Unlock()

	req := search.QueryRequest{
		Query:          st.Query,
		Filters:        BuildFilterString(st.Filters),
		NumericFilters: BuildNumericFilters(st.Filters),
		Page:           st.Page,
		HitsPerPage:    st.HitsPerPage,
	}

	// Sort keys are replica index names; the base index is the unsorted view.
	index := f.index
	if st.SortBy != "" {
		index = st.SortBy
	}

	resp, err := f.search.Query(ctx, index, req)

	f.mu.Lock()
	defer f.mu.Unlock()

	if seq != f.seq {
		// A newer query owns the slot now.
		return f.results
	}
	f.searching = false

	if err != nil {
		f.log.Errorw("search query", "query", st.Query, "page", st.Page, "error", err)
		f.lastErr = err
		f.results = []search.Hit{}
		f.totalHits = 0
		return f.results
	}

	f.results = resp.Hits
	f.totalHits = resp.NbHits
	return f.results
}

// SetQuery replaces the query text, resets to the first page and re-runs
// the search.
func (f *Facade) SetQuery(ctx context.Context, query string) []search.Hit {
	f.mu.Lock()
	f.state.Query = query
	f.state.Page = 0
	f.mu.Unlock()
	return f.Search(ctx)
}

// SetFilters replaces the filter set, resets to the first page and re-runs
// the search.
func (f *Facade) SetFilters(ctx context.Context, filters SearchFilters) []search.Hit {
	f.mu.Lock()
	f.state.Filters = filters
	f.state.Page = 0
	f.mu.Unlock()
	return f.Search(ctx)
}

func (f *Facade) ClearFilters(ctx context.Context) []search.Hit {
	return f.SetFilters(ctx, SearchFilters{})
}

func (f *Facade) GoToPage(ctx context.Context, page int) []search.Hit {
	if page < 0 {
		page = 0
	}
	f.mu.Lock()
	f.state.Page = page
	f.mu.Unlock()
	return f.Search(ctx)
}

// SetSortBy switches the sort replica, resets to the first page and re-runs
// the search.
func (f *Facade) SetSortBy(ctx context.Context, sortBy string) []search.Hit {
	f.mu.Lock()
	f.state.SortBy = sortBy
	f.state.Page = 0
	f.mu.Unlock()
	return f.Search(ctx)
}

// Apply installs a full search state, as parsed from a request. The page
// resets to zero whenever the query text, filters or sort key changed from
// the current state; an explicit page is honored only when they did not.
func (f *Facade) Apply(ctx context.Context, st SearchState) []search.Hit {
	if st.HitsPerPage <= 0 {
		st.HitsPerPage = defaultHitsPerPage
	}

	f.mu.Lock()
	if st.Query != f.state.Query ||
		st.SortBy != f.state.SortBy ||
		!reflect.DeepEqual(st.Filters, f.state.Filters) {
		st.Page = 0
	}
	f.state = st
	f.mu.Unlock()
	return f.Search(ctx)
}

func (f *Facade) Results() []search.Hit {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.results
}

func (f *Facade) TotalHits() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.totalHits
}

// TotalPages is ceil(totalHits / hitsPerPage).
func (f *Facade) TotalPages() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state.HitsPerPage <= 0 {
		return 0
	}
	return (f.totalHits + f.state.HitsPerPage - 1) / f.state.HitsPerPage
}

// Searching reports whether a query is currently in flight.
func (f *Facade) Searching() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.searching
}

// LastError is the failure of the most recent completed query, nil on
// success.
func (f *Facade) LastError() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

func (f *Facade) State() SearchState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// FacetValues lists the distinct values of a categorical attribute with
// their matching-item counts, ordered by count descending. Failures degrade
// to an empty list.
func (f *Facade) FacetValues(ctx context.Context, attribute string) []FacetValue {
	resp, err := f.search.Query(ctx, f.index, search.QueryRequest{
		Facets:      []string{attribute},
		HitsPerPage: 0,
	})
	if err != nil {
		f.log.Errorw("fetch facet values", "attribute", attribute, "error", err)
		return []FacetValue{}
	}

	values := make([]FacetValue, 0, len(resp.Facets[attribute]))
	for value, count := range resp.Facets[attribute] {
		values = append(values, FacetValue{Value: value, Count: count})
	}
	sort.Slice(values, func(i, j int) bool {
		if values[i].Count != values[j].Count {
			return values[i].Count > values[j].Count
		}
		return values[i].Value < values[j].Value
	})
	return values
}

// Suggestions returns a small autocomplete projection for the given query
// text. An empty query or a backend failure yields an empty list.
func (f *Facade) Suggestions(ctx context.Context, query string, limit int) []search.Hit {
	if query == "" {
		return []search.Hit{}
	}
	if limit <= 0 {
		limit = defaultSuggestLimit
	}

	resp, err := f.search.Query(ctx, f.index, search.QueryRequest{
		Query:                query,
		HitsPerPage:          limit,
		AttributesToRetrieve: []string{"title", "images", "price", "objectID"},
	})
	if err != nil {
		f.log.Errorw("fetch suggestions", "query", query, "error", err)
		return []search.Hit{}
	}
	return resp.Hits
}

// Products lists catalog products from the content repository. Failures
// degrade to an empty list with a zero total.
func (f *Facade) Products(ctx context.Context, limit, skip int) ([]cart.Product, int) {
	if limit <= 0 {
		limit = defaultProductLimit
	}

	resp, err := f.content.GetEntries(ctx, content.EntriesQuery{
		ContentType: contentTypeProduct,
		Limit:       limit,
		Skip:        skip,
		Include:     productIncludeDepth,
	})
	if err != nil {
		f.log.Errorw("fetch products", "error", err)
		return []cart.Product{}, 0
	}

	r := content.NewResolver(resp)
	products := make([]cart.Product, 0, len(resp.Items))
	for _, e := range resp.Items {
		products = append(products, transformProduct(e, r, relatedDepth))
	}
	return products, resp.Total
}

// ProductBySlug fetches one product, nil when absent or on failure.
func (f *Facade) ProductBySlug(ctx context.Context, slug string) *cart.Product {
	resp, err := f.content.GetEntries(ctx, content.EntriesQuery{
		ContentType: contentTypeProduct,
		FieldEquals: map[string]string{"slug": slug},
		Limit:       1,
		Include:     productIncludeDepth,
	})
	if err != nil {
		f.log.Errorw("fetch product by slug", "slug", slug, "error", err)
		return nil
	}
	if len(resp.Items) == 0 {
		return nil
	}

	p := transformProduct(resp.Items[0], content.NewResolver(resp), relatedDepth)
	return &p
}

// Categories lists all categories. Failures degrade to an empty list.
func (f *Facade) Categories(ctx context.Context) []Category {
	resp, err := f.content.GetEntries(ctx, content.EntriesQuery{
		ContentType: contentTypeCategory,
		Include:     categoryIncludeDepth,
	})
	if err != nil {
		f.log.Errorw("fetch categories", "error", err)
		return []Category{}
	}

	r := content.NewResolver(resp)
	categories := make([]Category, 0, len(resp.Items))
	for _, e := range resp.Items {
		categories = append(categories, transformCategory(e, r, categoryParentDepth))
	}
	return categories
}

// HomePage fetches the homepage content, nil when absent or on failure.
func (f *Facade) HomePage(ctx context.Context) *HomePage {
	resp, err := f.content.GetEntries(ctx, content.EntriesQuery{
		ContentType: contentTypeHomePage,
		Limit:       1,
		Include:     homePageIncludeDepth,
	})
	if err != nil {
		f.log.Errorw("fetch homepage", "error", err)
		return nil
	}
	if len(resp.Items) == 0 {
		return nil
	}

	r := content.NewResolver(resp)
	page := resp.Items[0]

	hp := HomePage{FeaturedCollections: []FeaturedCollection{}}
	if banner, ok := r.Entry(page.Fields["heroBanner"]); ok {
		hp.HeroBanner = transformHeroBanner(banner, r)
	}
	for _, e := range r.EntryList(page.Fields["featuredCollections"]) {
		hp.FeaturedCollections = append(hp.FeaturedCollections, transformFeaturedCollection(e, r))
	}
	return &hp
}

// FeaturedProducts returns the first products of the catalog for merchandising
// slots. Failures degrade to an empty list.
func (f *Facade) FeaturedProducts(ctx context.Context, limit int) []cart.Product {
	if limit <= 0 {
		limit = defaultFeaturedLimit
	}
	products, _ := f.Products(ctx, limit, 0)
	return products
}
