package main

import (
	"context"
	"fmt"
	"net"

	"instanceresponder/api"
	"instanceresponder/domain"
	"instanceresponder/handlers"
	"instanceresponder/interfaces"
	"instanceresponder/service"

	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"
	"golang.org/x/net/netutil"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// newEcho assembles the HTTP stack: error boundary, request logging, panic recovery,
// OpenAPI request validation and the route table.
func newEcho(
	ctx context.Context,
	instance domain.InstanceContext,
	counter interfaces.RequestCounter,
	tp interfaces.TimeProvider,
	registry interfaces.Cache[domain.InstanceRecord],
	logger log.Logger,
) (*echo.Echo, error) {
	doc, err := api.LoadSpec(ctx)
	if err != nil {
		return nil, err
	}
	validator, err := api.NewRequestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	service.RegisterErrorHandler(e, instance.InstanceID, logger)
	service.RegisterMiddleware(e, logger)
	e.Use(validator)
	handlers.RegisterHandlers(e, handlers.NewHTTPServer(instance, counter, tp, registry, logger))
	return e, nil
}

// newListener binds all interfaces on port, optionally capping concurrent connections.
func newListener(port, maxConnections int) (net.Listener, error) {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("failed to listen on port %d: %w", port, err)
	}
	if maxConnections > 0 {
		lis = netutil.LimitListener(lis, maxConnections)
	}
	return lis, nil
}

// newHealthServer builds a gRPC server exposing only grpc.health.v1, reporting SERVING
// for the whole server until health.Server.Shutdown is called.
func newHealthServer() (*grpc.Server, *health.Server) {
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	return grpcServer, healthServer
}
