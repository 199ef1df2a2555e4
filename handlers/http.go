// Package handlers contains the http handlers of the instance responder.
package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"instanceresponder/api"
	"instanceresponder/domain"
	"instanceresponder/interfaces"
	"instanceresponder/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// DefaultSlowDelay is used by GET /slow when delay is missing or not a number.
const DefaultSlowDelay = 2 * time.Second

// usersDelay imitates a lookup before GET /api/users answers.
const usersDelay = 50 * time.Millisecond

const simulatedErrorMessage = "Simulated error"

// HTTPServer implements ServerInterface.
type HTTPServer struct {
	instance domain.InstanceContext
	counter  interfaces.RequestCounter
	tp       interfaces.TimeProvider
	registry interfaces.Cache[domain.InstanceRecord]
	logger   log.Logger
}

// NewHTTPServer creates a new HTTPServer. registry may be nil, in which case
// GET /instances answers entity_not_found.
func NewHTTPServer(
	instance domain.InstanceContext,
	counter interfaces.RequestCounter,
	tp interfaces.TimeProvider,
	registry interfaces.Cache[domain.InstanceRecord],
	logger log.Logger,
) *HTTPServer {
	logger = log.WithPrefix(logger, "component", "HTTPServer")
	return &HTTPServer{
		instance: instance,
		counter:  service.NilPanic(counter, "handlers.http.go: counter is required"),
		tp:       service.NilPanic(tp, "handlers.http.go: time provider is required"),
		registry: registry,
		logger:   logger,
	}
}

func (h *HTTPServer) timestamp() string {
	return h.tp.Now().UTC().Format(time.RFC3339Nano)
}

// identity counts the request and builds the identity payload.
func (h *HTTPServer) identity(message string) IdentityResponse {
	return IdentityResponse{
		Message:         message,
		InstanceId:      h.instance.InstanceID,
		Hostname:        h.instance.Hostname,
		RequestsHandled: h.counter.Increment(),
		Timestamp:       h.timestamp(),
	}
}

// GetRoot (GET /) greets the caller and counts the request.
func (h *HTTPServer) GetRoot(ectx echo.Context) error {
	return ectx.JSON(http.StatusOK, h.identity(fmt.Sprintf("Hello from instance %s!", h.instance.InstanceID)))
}

// GetHealth (GET /health) always reports healthy while the process runs.
func (h *HTTPServer) GetHealth(ectx echo.Context) error {
	return ectx.JSON(http.StatusOK, HealthResponse{
		Status:        "healthy",
		InstanceId:    h.instance.InstanceID,
		Hostname:      h.instance.Hostname,
		UptimeSeconds: h.instance.Uptime(h.tp.Now()).Seconds(),
	})
}

// GetInfo (GET /info) reflects the request as this instance saw it, after any proxy hops.
func (h *HTTPServer) GetInfo(ectx echo.Context) error {
	req := ectx.Request()
	headers := make(map[string]string, len(req.Header)+1)
	for k, v := range req.Header {
		headers[k] = strings.Join(v, ", ")
	}
	if req.Host != "" {
		headers["Host"] = req.Host
	}

	return ectx.JSON(http.StatusOK, InfoResponse{
		InstanceId: h.instance.InstanceID,
		Hostname:   h.instance.Hostname,
		Timestamp:  h.timestamp(),
		Request: RequestInfo{
			ClientIp: ectx.RealIP(),
			Method:   req.Method,
			Path:     req.URL.EscapedPath(),
			Query:    req.URL.RawQuery,
			Headers:  headers,
		},
	})
}

// GetData (GET /api/data) returns ten fixed items.
func (h *HTTPServer) GetData(ectx echo.Context) error {
	items := make([]DataItem, 0, 10)
	for i := 0; i < 10; i++ {
		items = append(items, DataItem{Id: i, Value: "item_" + strconv.Itoa(i)})
	}

	id := h.identity("")
	return ectx.JSON(http.StatusOK, DataResponse{
		Data:            items,
		InstanceId:      id.InstanceId,
		Hostname:        id.Hostname,
		RequestsHandled: id.RequestsHandled,
		Timestamp:       id.Timestamp,
	})
}

// PostData (POST /api/data) echoes any JSON body with 201. An empty body echoes {}.
func (h *HTTPServer) PostData(ectx echo.Context) error {
	body, err := io.ReadAll(ectx.Request().Body)
	if err != nil {
		return service.NewBadParameterError("can't read request body", err)
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		body = []byte("{}")
	}
	var received bytes.Buffer
	if err := json.Compact(&received, body); err != nil {
		return service.NewBadParameterError("request body is not valid JSON", err)
	}

	id := h.identity("Data received")
	return ectx.JSON(http.StatusCreated, ReceivedResponse{
		Message:         id.Message,
		Received:        json.RawMessage(received.Bytes()),
		InstanceId:      id.InstanceId,
		Hostname:        id.Hostname,
		RequestsHandled: id.RequestsHandled,
		Timestamp:       id.Timestamp,
	})
}

// GetUsers (GET /api/users) returns three fixed users tagged with the instance after usersDelay.
func (h *HTTPServer) GetUsers(ectx echo.Context) error {
	<-h.tp.After(usersDelay)

	id := h.instance.InstanceID
	users := []User{
		{Id: 1, Name: "John Doe", Instance: id},
		{Id: 2, Name: "Jane Smith", Instance: id},
		{Id: 3, Name: "Bob Johnson", Instance: id},
	}
	return ectx.JSON(http.StatusOK, UsersResponse{Users: users, Total: len(users), InstanceId: id})
}

// GetOrders (GET /api/orders) returns two fixed orders tagged with the instance.
func (h *HTTPServer) GetOrders(ectx echo.Context) error {
	id := h.instance.InstanceID
	return ectx.JSON(http.StatusOK, OrdersResponse{
		Orders: []Order{
			{Id: 1, Product: "Laptop", Status: "shipped", Instance: id},
			{Id: 2, Product: "Phone", Status: "processing", Instance: id},
		},
		InstanceId: id,
	})
}

// ParseDelay converts the raw delay query value (seconds) to a duration.
// Missing, non-numeric, NaN and infinite values yield DefaultSlowDelay;
// negative values yield zero. There is no upper bound.
func ParseDelay(raw *string) time.Duration {
	if raw == nil {
		return DefaultSlowDelay
	}
	secs, err := strconv.ParseFloat(strings.TrimSpace(*raw), 64)
	if err != nil || math.IsNaN(secs) || math.IsInf(secs, 0) {
		return DefaultSlowDelay
	}
	if secs <= 0 {
		return 0
	}
	d := secs * float64(time.Second)
	if d >= math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(d)
}

// GetSlow (GET /slow?delay=N) answers after N seconds. The wait parks only this
// request's goroutine and is not cut short by client disconnect or shutdown.
func (h *HTTPServer) GetSlow(ectx echo.Context, params GetSlowParams) error {
	delay := ParseDelay(params.Delay)
	<-h.tp.After(delay)

	return ectx.JSON(http.StatusOK, SlowResponse{
		IdentityResponse: h.identity(fmt.Sprintf("Delayed response after %s", delay)),
		DelaySeconds:     delay.Seconds(),
	})
}

// GetCached (GET /cached) returns the identity payload. Caching headers are left to the proxy.
func (h *HTTPServer) GetCached(ectx echo.Context) error {
	return ectx.JSON(http.StatusOK, h.identity("This response may be cached by a proxy"))
}

// GetError (GET /error) always fails with a fixed body. It is a test fixture,
// so it does not go through the error handler and is not logged as an error.
func (h *HTTPServer) GetError(ectx echo.Context) error {
	level.Info(h.logger).Log("msg", "Serving simulated error")
	return ectx.JSON(http.StatusInternalServerError, SimulatedErrorResponse{
		Error:    simulatedErrorMessage,
		Instance: h.instance.InstanceID,
	})
}

// GetLBTest (GET /lb-test) returns identity with the incremented counter.
func (h *HTTPServer) GetLBTest(ectx echo.Context) error {
	return ectx.JSON(http.StatusOK, h.identity("Load balancer test"))
}

// GetInstances (GET /instances) lists the instances found in the registry.
func (h *HTTPServer) GetInstances(ectx echo.Context) error {
	if h.registry == nil {
		return service.NewEntityNotFoundError("instance registry is disabled", nil)
	}

	records, err := h.registry.ListAllValues(ectx.Request().Context())
	if err != nil && !service.IsEntityNotFoundError(err) {
		return fmt.Errorf("getInstances failed to list instances from registry, err: %w", err)
	}

	return ectx.JSON(http.StatusOK, toInstancesResponse(h.instance.InstanceID, records))
}

// GetStaticExample (GET /static/example.txt) is the one plain-text route.
func (h *HTTPServer) GetStaticExample(ectx echo.Context) error {
	return ectx.String(http.StatusOK, "Static file from instance "+h.instance.InstanceID)
}

// GetOpenAPI (GET /openapi.yaml) serves the API description.
func (h *HTTPServer) GetOpenAPI(ectx echo.Context) error {
	return ectx.Blob(http.StatusOK, "application/yaml", api.Spec())
}
