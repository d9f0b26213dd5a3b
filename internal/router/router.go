package router

import (
	"net/http"
	"sync/atomic"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	handlers "portfolioCMS/internal/handler"
	"portfolioCMS/internal/metrics"
	"portfolioCMS/internal/middleware"
	"portfolioCMS/internal/schema"
)

// RouteTable serves the routes derived from the schema registry. Flush rebuilds
// them; requests already in flight finish on the router they started with.
type RouteTable struct {
	registry *schema.Registry
	handlers *handlers.Handlers
	metrics  *metrics.HTTPMetrics
	secret   string
	log      *logrus.Logger
	current  atomic.Pointer[mux.Router]
}

func NewRouteTable(registry *schema.Registry, h *handlers.Handlers, m *metrics.HTTPMetrics, jwtSecret string, log *logrus.Logger) *RouteTable {
	rt := &RouteTable{
		registry: registry,
		handlers: h,
		metrics:  m,
		secret:   jwtSecret,
		log:      log,
	}
	rt.Flush()
	return rt
}

func (rt *RouteTable) Flush() {
	r := rt.build()
	rt.current.Store(r)
	rt.log.WithField("content_types", len(rt.registry.ContentTypes())).Info("routes flushed")
}

func (rt *RouteTable) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rt.current.Load().ServeHTTP(w, r)
}

func (rt *RouteTable) build() *mux.Router {
	h := rt.handlers
	write := middleware.Auth(rt.secret)
	read := middleware.OptionalAuth(rt.secret)

	r := mux.NewRouter()
	if rt.metrics != nil {
		r.Use(rt.metrics.Middleware)
		r.Handle("/metrics", rt.metrics.Handler()).Methods(http.MethodGet)
	}

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/api/schema", h.GetSchema).Methods(http.MethodGet)

	r.HandleFunc("/api/users/{id}", h.GetUser).Methods(http.MethodGet)
	r.Handle("/api/users/{id}", write(http.HandlerFunc(h.UpdateUser))).Methods(http.MethodPost, http.MethodPut)

	for _, ct := range rt.registry.ContentTypes() {
		if ct.ShowInREST {
			base := "/api/" + ct.RESTBase
			r.Handle(base, read(h.ListContent(ct.Name))).Methods(http.MethodGet)
			r.Handle(base, write(h.CreateContent(ct.Name))).Methods(http.MethodPost)
			r.Handle(base+"/{id}", read(h.GetContent(ct.Name))).Methods(http.MethodGet)
			r.Handle(base+"/{id}", write(h.UpdateContent(ct.Name))).Methods(http.MethodPut)
			r.Handle(base+"/{id}", write(h.DeleteContent(ct.Name))).Methods(http.MethodDelete)
			r.Handle(base+"/{id}/status", write(h.PublishContent(ct.Name))).Methods(http.MethodPatch)
			if ct.HasFeature(schema.FeatureThumbnail) {
				r.Handle(base+"/{id}/featured-image", write(h.UploadFeaturedImage(ct.Name))).Methods(http.MethodPost)
			}
		}
		if ct.PubliclyQueryable && ct.RewriteSlug != "" {
			r.HandleFunc("/"+ct.RewriteSlug+"/{slug}", h.GetPermalink(ct.Name)).Methods(http.MethodGet)
		}
	}

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, "not found", http.StatusNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
	})
	return r
}

// Handler wraps the route table with the request-scoped middleware.
func (rt *RouteTable) Handler() http.Handler {
	return middleware.Chain(rt,
		middleware.Recover(rt.log),
		middleware.RequestID,
		middleware.LoggingMiddleware(rt.log),
		middleware.CORSMiddleware,
	)
}
