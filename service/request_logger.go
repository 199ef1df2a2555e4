package service

import (
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RegisterMiddleware installs request logging and panic recovery on e.
// The logger sits outside Recover so that recovered panics are logged with their final 500 status.
func RegisterMiddleware(e *echo.Echo, logger log.Logger) {
	e.Use(NewRequestLogger(logger), NewRecover(logger))
}

// NewRequestLogger logs one line per request, including unmatched routes.
func NewRequestLogger(logger log.Logger) echo.MiddlewareFunc {
	logger = log.WithPrefix(logger, "component", "RequestLogger")
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		HandleError: true,
		LogMethod:   true,
		LogURIPath:  true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level.Info(logger).Log(
				"method", v.Method,
				"path", v.URIPath,
				"status", v.Status,
				"latency", v.Latency,
				"remote_ip", v.RemoteIP,
			)
			return nil
		},
	})
}

// NewRecover converts handler panics into errors for the error handler so the process keeps serving.
func NewRecover(logger log.Logger) echo.MiddlewareFunc {
	logger = log.WithPrefix(logger, "component", "Recover")
	return middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize:       4 << 10,
		DisableStackAll: true,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			level.Error(logger).Log(
				"msg", "Recovered from handler panic",
				"path", c.Request().URL.Path,
				"err", err,
				"stack", string(stack),
			)
			return err
		},
	})
}
