package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"instanceresponder/domain"
	"instanceresponder/service"

	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
)

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	instance := domain.InstanceContext{
		InstanceID: "app-9",
		Hostname:   "test-host",
		StartTime:  time.Now().UTC(),
	}
	tp := service.NewTimeProvider(time.Now, time.After)
	e, err := newEcho(context.Background(), instance, service.NewRequestCounter(), tp, nil, log.NewNopLogger())
	require.NoError(t, err)
	return e
}

func getJSON(t *testing.T, url string) (int, map[string]any) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return resp.StatusCode, out
}

func TestNewEcho_Routes(t *testing.T) {
	srv := httptest.NewServer(newTestEcho(t))
	defer srv.Close()

	status, body := getJSON(t, srv.URL+"/")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Hello from instance app-9!", body["message"])
	assert.Equal(t, "test-host", body["hostname"])

	status, body = getJSON(t, srv.URL+"/nope")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "app-9", body["instanceId"])
	assert.Equal(t, "/nope", body["path"])

	status, body = getJSON(t, srv.URL+"/instances")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "app-9", body["instanceId"])
}

func TestNewEcho_SlowDoesNotBlockOthers(t *testing.T) {
	srv := httptest.NewServer(newTestEcho(t))
	defer srv.Close()

	var (
		wg          sync.WaitGroup
		slowStatus  int
		slowElapsed time.Duration
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		start := time.Now()
		resp, err := http.Get(srv.URL + "/slow?delay=1")
		if err != nil {
			return
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		slowStatus = resp.StatusCode
		slowElapsed = time.Since(start)
	}()

	time.Sleep(100 * time.Millisecond)
	start := time.Now()
	status, body := getJSON(t, srv.URL+"/health")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", body["status"])
	assert.Less(t, time.Since(start), 500*time.Millisecond)

	wg.Wait()
	assert.Equal(t, http.StatusOK, slowStatus)
	assert.GreaterOrEqual(t, slowElapsed, time.Second)
	assert.Less(t, slowElapsed, 1500*time.Millisecond)
}

func TestNewEcho_SlowTiming(t *testing.T) {
	tests := []struct {
		target string
		min    time.Duration
	}{
		{target: "/slow?delay=1", min: time.Second},
		{target: "/slow?delay=abc", min: 2 * time.Second},
		{target: "/slow", min: 2 * time.Second},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.target, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(newTestEcho(t))
			defer srv.Close()

			start := time.Now()
			status, body := getJSON(t, srv.URL+tt.target)
			elapsed := time.Since(start)

			assert.Equal(t, http.StatusOK, status)
			assert.Equal(t, tt.min.Seconds(), body["delaySeconds"])
			assert.GreaterOrEqual(t, elapsed, tt.min)
			assert.Less(t, elapsed, tt.min+500*time.Millisecond)
		})
	}
}

func TestNewEcho_ShutdownDrainsInFlight(t *testing.T) {
	e := newTestEcho(t)
	lis, err := newListener(0, 0)
	require.NoError(t, err)
	e.Listener = lis

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- e.Start("")
	}()

	url := fmt.Sprintf("http://%s/slow?delay=1", lis.Addr().String())
	slowDone := make(chan int, 1)
	go func() {
		resp, err := http.Get(url)
		if err != nil {
			slowDone <- 0
			return
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		slowDone <- resp.StatusCode
	}()

	time.Sleep(200 * time.Millisecond)
	require.NoError(t, e.Shutdown(context.Background()))

	select {
	case status := <-slowDone:
		assert.Equal(t, http.StatusOK, status)
	case <-time.After(5 * time.Second):
		t.Fatal("in-flight request did not complete")
	}

	err = <-serveErr
	assert.True(t, errors.Is(err, http.ErrServerClosed), "got %v", err)
}

func TestNewListener_Limit(t *testing.T) {
	lis, err := newListener(0, 1)
	require.NoError(t, err)
	defer lis.Close()

	accepted := make(chan net.Conn, 2)
	go func() {
		for {
			c, err := lis.Accept()
			if err != nil {
				return
			}
			accepted <- c
		}
	}()

	first, err := net.Dial("tcp", lis.Addr().String())
	require.NoError(t, err)
	defer first.Close()
	second, err := net.Dial("tcp", lis.Addr().String())
	require.NoError(t, err)
	defer second.Close()

	var c1 net.Conn
	select {
	case c1 = <-accepted:
	case <-time.After(2 * time.Second):
		t.Fatal("first connection not accepted")
	}

	select {
	case <-accepted:
		t.Fatal("second connection accepted while the cap was reached")
	case <-time.After(200 * time.Millisecond):
	}

	require.NoError(t, c1.Close())
	select {
	case c2 := <-accepted:
		_ = c2.Close()
	case <-time.After(2 * time.Second):
		t.Fatal("second connection not accepted after a slot freed")
	}
}

func TestNewListener_PortInUse(t *testing.T) {
	lis, err := newListener(0, 0)
	require.NoError(t, err)
	defer lis.Close()

	port := lis.Addr().(*net.TCPAddr).Port
	_, err = newListener(port, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), fmt.Sprintf("failed to listen on port %d", port))
}

func TestHealthServer(t *testing.T) {
	lis, err := newListener(0, 0)
	require.NoError(t, err)

	grpcServer, healthServer := newHealthServer()
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			t.Logf("Server error: %v", err)
		}
	}()
	defer grpcServer.Stop()

	conn, err := grpc.NewClient(
		lis.Addr().String(),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	defer conn.Close()

	healthClient := grpc_health_v1.NewHealthClient(conn)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := healthClient.Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: ""})
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, resp.Status)

	healthServer.Shutdown()

	resp, err = healthClient.Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: ""})
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, resp.Status)
}

func TestAdvertisedAddress(t *testing.T) {
	lis, err := newListener(0, 0)
	require.NoError(t, err)
	defer lis.Close()

	port := lis.Addr().(*net.TCPAddr).Port
	assert.Equal(t, fmt.Sprintf("web-1:%d", port), advertisedAddress("web-1", lis))
}
