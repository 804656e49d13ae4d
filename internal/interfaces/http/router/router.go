// Package router assembles the gin engine and mounts the API routes.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/stockpile/backend/internal/interfaces/http/handler"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	apiVersion string
	auth       []gin.HandlerFunc
	public     []RouteRegistrar
	protected  []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// WithAuth sets the middleware chain in front of protected routes.
func WithAuth(middleware ...gin.HandlerFunc) RouterOption {
	return func(r *Router) {
		r.auth = append(r.auth, middleware...)
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Public adds registrars reachable without a token
func (r *Router) Public(registrars ...RouteRegistrar) *Router {
	r.public = append(r.public, registrars...)
	return r
}

// Protected adds registrars behind the auth chain
func (r *Router) Protected(registrars ...RouteRegistrar) *Router {
	r.protected = append(r.protected, registrars...)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)
	for _, registrar := range r.public {
		registrar.RegisterRoutes(api)
	}

	protected := api.Group("")
	protected.Use(r.auth...)
	for _, registrar := range r.protected {
		registrar.RegisterRoutes(protected)
	}
}

// DomainGroup is a prefix with its own middleware and hand-written routes.
type DomainGroup struct {
	prefix     string
	middleware []gin.HandlerFunc
	routes     []routeDefinition
}

type routeDefinition struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// NewDomainGroup creates a route group under prefix
func NewDomainGroup(prefix string) *DomainGroup {
	return &DomainGroup{prefix: prefix}
}

// Use adds middleware to this group
func (dg *DomainGroup) Use(middleware ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, middleware...)
	return dg
}

// Handle registers a route
func (dg *DomainGroup) Handle(method, path string, handlers ...gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, routeDefinition{method: method, path: path, handlers: handlers})
	return dg
}

// GET registers a GET route
func (dg *DomainGroup) GET(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle("GET", path, handlers...)
}

// POST registers a POST route
func (dg *DomainGroup) POST(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle("POST", path, handlers...)
}

// PUT registers a PUT route
func (dg *DomainGroup) PUT(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle("PUT", path, handlers...)
}

// DELETE registers a DELETE route
func (dg *DomainGroup) DELETE(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle("DELETE", path, handlers...)
}

// RegisterRoutes implements RouteRegistrar interface
func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(dg.prefix)
	if len(dg.middleware) > 0 {
		group.Use(dg.middleware...)
	}
	for _, route := range dg.routes {
		group.Handle(route.method, route.path, route.handlers...)
	}
}

// Prefix returns the group prefix
func (dg *DomainGroup) Prefix() string {
	return dg.prefix
}

// ResourceGroup mounts the full REST lifecycle of one resource.
type ResourceGroup struct {
	prefix    string
	handler   *handler.ResourceHandler
	authorize handler.Authorize
}

// NewResourceGroup serves service under prefix, guarding each route with
// authorize. A nil authorize leaves the routes unguarded.
func NewResourceGroup(prefix string, service handler.ResourceService, authorize handler.Authorize) *ResourceGroup {
	return &ResourceGroup{prefix: prefix, handler: handler.NewResourceHandler(service), authorize: authorize}
}

// RegisterRoutes implements RouteRegistrar interface
func (g *ResourceGroup) RegisterRoutes(rg *gin.RouterGroup) {
	g.handler.Register(rg.Group(g.prefix), g.authorize)
}

// Prefix returns the group prefix
func (g *ResourceGroup) Prefix() string {
	return g.prefix
}
