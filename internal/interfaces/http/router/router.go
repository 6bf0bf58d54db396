package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RouteRegistrar mounts its routes on a parent group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router collects registrars and mounts them under one path prefix
type Router struct {
	engine     *gin.Engine
	prefix     string
	registrars []RouteRegistrar
}

type RouterOption func(*Router)

// WithPrefix overrides the default "/api" mount point
func WithPrefix(prefix string) RouterOption {
	return func(r *Router) { r.prefix = prefix }
}

func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{engine: engine, prefix: "/api"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup mounts every registered group in registration order
func (r *Router) Setup() {
	base := r.engine.Group(r.prefix)
	for _, reg := range r.registrars {
		reg.RegisterRoutes(base)
	}
}

type route struct {
	method   string
	path     string
	handlers gin.HandlersChain
}

// DomainGroup is a declarative route group: routes, guards and nested
// groups are recorded first and mounted together by RegisterRoutes.
type DomainGroup struct {
	name      string
	prefix    string
	guards    gin.HandlersChain
	routes    []route
	subgroups []*DomainGroup
}

func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

func (dg *DomainGroup) Name() string   { return dg.name }
func (dg *DomainGroup) Prefix() string { return dg.prefix }

// Use appends group middleware. Nil entries are dropped so unset guards can
// be passed as is.
func (dg *DomainGroup) Use(middleware ...gin.HandlerFunc) *DomainGroup {
	dg.guards = append(dg.guards, withoutNil(middleware)...)
	return dg
}

func (dg *DomainGroup) GET(path string, h ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodGet, path, h)
}

func (dg *DomainGroup) POST(path string, h ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPost, path, h)
}

func (dg *DomainGroup) PUT(path string, h ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPut, path, h)
}

func (dg *DomainGroup) PATCH(path string, h ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPatch, path, h)
}

func (dg *DomainGroup) DELETE(path string, h ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodDelete, path, h)
}

func (dg *DomainGroup) handle(method, path string, h []gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, route{method: method, path: path, handlers: withoutNil(h)})
	return dg
}

// Group nests a group under dg; its middleware stays inside the subgroup
func (dg *DomainGroup) Group(name, prefix string, middleware ...gin.HandlerFunc) *DomainGroup {
	sub := NewDomainGroup(name, prefix).Use(middleware...)
	dg.subgroups = append(dg.subgroups, sub)
	return sub
}

func (dg *DomainGroup) RegisterRoutes(parent *gin.RouterGroup) {
	g := parent.Group(dg.prefix, dg.guards...)
	for _, rt := range dg.routes {
		g.Handle(rt.method, rt.path, rt.handlers...)
	}
	for _, sub := range dg.subgroups {
		sub.RegisterRoutes(g)
	}
}

func withoutNil(in []gin.HandlerFunc) gin.HandlersChain {
	out := make(gin.HandlersChain, 0, len(in))
	for _, h := range in {
		if h != nil {
			out = append(out, h)
		}
	}
	return out
}
