package handlers

import "github.com/labstack/echo/v4"

// ServerInterface lists one method per route of api/instance-responder.openapi.yaml.
type ServerInterface interface {
	// (GET /)
	GetRoot(ctx echo.Context) error
	// (GET /health)
	GetHealth(ctx echo.Context) error
	// (GET /info)
	GetInfo(ctx echo.Context) error
	// (GET /api/data)
	GetData(ctx echo.Context) error
	// (POST /api/data)
	PostData(ctx echo.Context) error
	// (GET /api/users)
	GetUsers(ctx echo.Context) error
	// (GET /api/orders)
	GetOrders(ctx echo.Context) error
	// (GET /slow)
	GetSlow(ctx echo.Context, params GetSlowParams) error
	// (GET /cached)
	GetCached(ctx echo.Context) error
	// (GET /error)
	GetError(ctx echo.Context) error
	// (GET /lb-test)
	GetLBTest(ctx echo.Context) error
	// (GET /instances)
	GetInstances(ctx echo.Context) error
	// (GET /static/example.txt)
	GetStaticExample(ctx echo.Context) error
	// (GET /openapi.yaml)
	GetOpenAPI(ctx echo.Context) error
}

// GetSlowParams are the query parameters of GET /slow. Delay is kept raw
// because unparsable values select the default instead of failing the request.
type GetSlowParams struct {
	Delay *string `query:"delay"`
}

// EchoRouter is the subset of *echo.Echo and *echo.Group used for registration.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds every route of si to router. Each GET route also answers HEAD.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	get := func(path string, h echo.HandlerFunc) {
		router.GET(path, h)
		router.HEAD(path, h)
	}

	get("/", si.GetRoot)
	get("/health", si.GetHealth)
	get("/info", si.GetInfo)
	get("/api/data", si.GetData)
	router.POST("/api/data", si.PostData)
	get("/api/users", si.GetUsers)
	get("/api/orders", si.GetOrders)
	get("/slow", func(ctx echo.Context) error {
		var params GetSlowParams
		if v, ok := ctx.QueryParams()["delay"]; ok && len(v) > 0 {
			params.Delay = &v[0]
		}
		return si.GetSlow(ctx, params)
	})
	get("/cached", si.GetCached)
	get("/error", si.GetError)
	get("/lb-test", si.GetLBTest)
	get("/instances", si.GetInstances)
	get("/static/example.txt", si.GetStaticExample)
	get("/openapi.yaml", si.GetOpenAPI)
}
