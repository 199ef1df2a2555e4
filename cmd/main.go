package main

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"instanceresponder/adapters/myredis"
	"instanceresponder/domain"
	"instanceresponder/interfaces"
	"instanceresponder/service"

	"github.com/go-kit/log/level"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
)

const (
	registryPrefix = "instance_responder"
	redisTimeout   = 3 * time.Second
)

func main() {
	logger := newLogger(os.Stderr, defaultLogFormat, defaultLogLevel, "")

	config, err := LoadConfig()
	if err != nil {
		level.Error(logger).Log("msg", "Failed to load configuration", "err", err)
		os.Exit(1)
	}
	logger = newLogger(os.Stderr, config.LogFormat, config.LogLevel, config.InstanceID)

	level.Info(logger).Log("msg", "Starting instance responder")
	level.Info(logger).Log(
		"msg", "Configuration loaded",
		"app_port", config.HTTPPort,
		"max_connections", config.MaxConnections,
		"shutdown_timeout", config.ShutdownTimeout,
		"registry_enabled", config.RegistryEnabled(),
		"grpc_health_port", config.GRPCHealthPort,
	)

	now := func() time.Time {
		return time.Now().UTC()
	}
	tp := service.NewTimeProvider(now, time.After)
	counter := service.NewRequestCounter()

	var instance domain.InstanceContext
	{
		hostname, err := os.Hostname()
		if err != nil || hostname == "" {
			level.Warn(logger).Log("msg", "Failed to resolve hostname", "err", err)
			hostname = "unknown"
		}
		instance = domain.InstanceContext{
			InstanceID: config.InstanceID,
			Hostname:   hostname,
			StartTime:  tp.Now(),
		}
	}

	var (
		registry  interfaces.Cache[domain.InstanceRecord]
		registrar *service.Registrar
	)
	if config.RegistryEnabled() {
		redisClient, err := myredis.NewRedisUniversalClient(config.Redis.Addr, myredis.WithTimeouts(redisTimeout), myredis.WithPoolSize(config.MaxConnections))
		if err != nil {
			level.Error(logger).Log("msg", "Failed to create Redis client", "err", err)
			os.Exit(1)
		}
		defer redisClient.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = redisClient.Ping(ctx).Err()
		cancel()
		if err != nil {
			level.Error(logger).Log("msg", "Failed to connect to Redis", "err", err)
			os.Exit(1)
		}
		level.Info(logger).Log("msg", "Connected to Redis")

		marshal := func(r domain.InstanceRecord) ([]byte, error) { return json.Marshal(r) }
		unmarshal := func(b []byte) (domain.InstanceRecord, error) {
			var r domain.InstanceRecord
			err := json.Unmarshal(b, &r)
			return r, err
		}
		registry = myredis.NewCache[domain.InstanceRecord](redisClient, registryPrefix, marshal, unmarshal)
	}

	e, err := newEcho(context.Background(), instance, counter, tp, registry, logger)
	if err != nil {
		level.Error(logger).Log("msg", "Failed to build HTTP server", "err", err)
		os.Exit(1)
	}

	lis, err := newListener(config.HTTPPort, config.MaxConnections)
	if err != nil {
		level.Error(logger).Log("msg", "Failed to listen", "err", err)
		os.Exit(1)
	}
	e.Listener = lis

	var (
		grpcServer   *grpc.Server
		healthServer *health.Server
		grpcLis      net.Listener
	)
	if config.GRPCHealthPort > 0 {
		grpcLis, err = newListener(config.GRPCHealthPort, 0)
		if err != nil {
			level.Error(logger).Log("msg", "Failed to listen for gRPC health", "err", err)
			os.Exit(1)
		}
		grpcServer, healthServer = newHealthServer()
	}

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	serveErr := make(chan error, 2)

	go func() {
		level.Info(logger).Log("msg", "Starting HTTP server", "addr", lis.Addr())
		if err := e.Start(lis.Addr().String()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	if grpcServer != nil {
		go func() {
			level.Info(logger).Log("msg", "Starting gRPC health server", "addr", grpcLis.Addr())
			if err := grpcServer.Serve(grpcLis); err != nil {
				serveErr <- err
			}
		}()
	}

	registrarCtx, stopRegistrar := context.WithCancel(context.Background())
	registrarDone := make(chan struct{})
	if registry != nil {
		registrar = service.NewRegistrar(registry, instance, advertisedAddress(instance.Hostname, lis), counter, tp, config.RegistryTTL, logger)
		go func() {
			defer close(registrarDone)
			registrar.Run(registrarCtx)
		}()
	} else {
		close(registrarDone)
	}

	exitCode := 0
	select {
	case sig := <-quit:
		level.Info(logger).Log("msg", "Shutting down server...", "signal", sig)
	case err := <-serveErr:
		level.Error(logger).Log("msg", "Server error", "err", err)
		exitCode = 1
	}

	if healthServer != nil {
		healthServer.Shutdown()
	}

	stopRegistrar()
	<-registrarDone
	if registrar != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := registrar.Unregister(ctx); err != nil {
			level.Warn(logger).Log("msg", "Failed to unregister instance", "err", err)
		}
		cancel()
	}

	shutdownCtx, shutdownCancel := context.Background(), context.CancelFunc(func() {})
	if config.ShutdownTimeout > 0 {
		shutdownCtx, shutdownCancel = context.WithTimeout(context.Background(), config.ShutdownTimeout)
	}
	if err := e.Shutdown(shutdownCtx); err != nil {
		level.Error(logger).Log("msg", "Error during server shutdown", "err", err)
		exitCode = 1
	}
	shutdownCancel()

	if grpcServer != nil {
		grpcServer.GracefulStop()
	}

	level.Info(logger).Log("msg", "Server stopped", "requests_handled", counter.Load())
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

// advertisedAddress is the host:port other instances and operators can reach this one on.
func advertisedAddress(hostname string, lis net.Listener) string {
	if addr, ok := lis.Addr().(*net.TCPAddr); ok {
		return net.JoinHostPort(hostname, strconv.Itoa(addr.Port))
	}
	return lis.Addr().String()
}
