package api

import (
	"sync"

	"github.com/labstack/echo/v4"

	mediaService "productmedia.GO/service/media"
)

var (
	mu            sync.Mutex
	modules       []ModuleFunc
	routes        []RouteFunc
	modulesLocked bool
	routesLocked  bool
)

// --- /api group modules (authenticated, run the media import) ---

// ModuleFunc registers routes on the /api group.
type ModuleFunc func(g *echo.Group, runner *mediaService.Runner)

// RegisterModule registers an API module. Call from init() in API packages.
func RegisterModule(fn ModuleFunc) {
	mu.Lock()
	defer mu.Unlock()
	if modulesLocked {
		panic("api/registry: API modules locked (register only during init)")
	}
	modules = append(modules, fn)
}

// ApplyModules calls all registered /api modules. Locks the registry.
func ApplyModules(g *echo.Group, runner *mediaService.Runner) {
	mu.Lock()
	list := append([]ModuleFunc(nil), modules...)
	modulesLocked = true
	mu.Unlock()
	for _, fn := range list {
		fn(g, runner)
	}
}

// --- Root-level routes (public: health etc.) ---

// RouteFunc registers routes on the root Echo instance.
type RouteFunc func(e *echo.Echo)

// RegisterRoute registers a root-level route module. Call from init().
func RegisterRoute(fn RouteFunc) {
	mu.Lock()
	defer mu.Unlock()
	if routesLocked {
		panic("api/registry: routes locked (register only during init)")
	}
	routes = append(routes, fn)
}

// RegisterGET is shorthand for registering a simple GET route on root.
func RegisterGET(path string, handler echo.HandlerFunc) {
	RegisterRoute(func(e *echo.Echo) {
		e.GET(path, handler)
	})
}

// ApplyRoutes calls all registered root-level routes. Locks the registry.
func ApplyRoutes(e *echo.Echo) {
	mu.Lock()
	list := append([]RouteFunc(nil), routes...)
	routesLocked = true
	mu.Unlock()
	for _, fn := range list {
		fn(e)
	}
}
