package service

import (
	"errors"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

const (
	msgNotFound            = "Not found"
	msgInternalServerError = "Internal server error"
)

// RegisterErrorHandler installs the error boundary on e. Every error returned by a
// handler or middleware, including recovered panics, ends up here.
func RegisterErrorHandler(e *echo.Echo, instanceID string, logger log.Logger) {
	e.HTTPErrorHandler = NewHTTPErrorHandler(NewErrorCodeToStatusCodeMaps(), instanceID, logger).Handler
}

// NewErrorCodeToStatusCodeMaps creates an error code to http status mapping.
func NewErrorCodeToStatusCodeMaps() map[string]int {
	return map[string]int{
		ErrBadParameter:        http.StatusBadRequest,
		ErrEntityNotFound:      http.StatusNotFound,
		ErrInternalServerError: http.StatusInternalServerError,
	}
}

// HTTPErrorHandler turns errors into JSON bodies tagged with the instance id.
type HTTPErrorHandler struct {
	errorCodeToHTTPStatusCodeMap map[string]int
	instanceID                   string
	logger                       log.Logger
}

// NewHTTPErrorHandler creates a new instance of the HTTPErrorHandler.
func NewHTTPErrorHandler(errorCodeToStatusCodeMaps map[string]int, instanceID string, logger log.Logger) *HTTPErrorHandler {
	return &HTTPErrorHandler{
		errorCodeToHTTPStatusCodeMap: errorCodeToStatusCodeMaps,
		instanceID:                   instanceID,
		logger:                       log.WithPrefix(logger, "component", "HTTPErrorHandler"),
	}
}

// ErrResponse is the body of every non-2xx response produced by the error handler.
type ErrResponse struct {
	Error      string `json:"error"`
	Code       string `json:"code,omitempty"`
	InstanceID string `json:"instanceId"`
	Path       string `json:"path,omitempty"`
	Message    string `json:"message,omitempty"`
}

func (h *HTTPErrorHandler) getStatusCode(errorCode string) int {
	status, ok := h.errorCodeToHTTPStatusCodeMap[errorCode]
	if ok {
		return status
	}
	return http.StatusInternalServerError
}

// Handler handles error returned by echo Handlers.
func (h *HTTPErrorHandler) Handler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	req := c.Request()
	path := req.URL.EscapedPath()
	statusCode, body := h.classify(err, path)
	if statusCode == http.StatusNotFound {
		c.Response().Header().Del(echo.HeaderAllow)
	}

	switch {
	case statusCode >= http.StatusInternalServerError:
		level.Error(h.logger).Log("msg", "HTTP request error", "method", req.Method, "path", path, "err", err)
	case statusCode == http.StatusNotFound:
		level.Debug(h.logger).Log("msg", "Route not matched", "method", req.Method, "path", path, "err", err)
	default:
		level.Warn(h.logger).Log("msg", "Rejected request", "method", req.Method, "path", path, "err", err)
	}

	if req.Method == http.MethodHead {
		_ = c.NoContent(statusCode)
		return
	}
	_ = c.JSON(statusCode, body)
}

func (h *HTTPErrorHandler) classify(err error, path string) (int, ErrResponse) {
	body := ErrResponse{InstanceID: h.instanceID}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		if herr, ok := he.Internal.(*echo.HTTPError); ok {
			he = herr
		}
		var requestError *openapi3filter.RequestError
		switch {
		case errors.As(he.Internal, &requestError):
			body.Error = requestError.Error()
			body.Code = ErrBadParameter
			return http.StatusBadRequest, body
		case he.Code == http.StatusNotFound || he.Code == http.StatusMethodNotAllowed:
			// A known path with another method is just an unmatched route.
			body.Error = msgNotFound
			body.Path = path
			return http.StatusNotFound, body
		case he.Code < http.StatusInternalServerError:
			m, _ := he.Message.(string)
			body.Error = m
			return he.Code, body
		}
		m, _ := he.Message.(string)
		body.Error = msgInternalServerError
		body.Code = ErrInternalServerError
		body.Message = m
		return he.Code, body
	}

	re := ToResponderError(err)
	if re == nil {
		body.Error = msgInternalServerError
		body.Code = ErrInternalServerError
		body.Message = err.Error()
		return http.StatusInternalServerError, body
	}

	statusCode := h.getStatusCode(re.Code)
	body.Code = re.Code
	if statusCode >= http.StatusInternalServerError {
		body.Error = msgInternalServerError
		body.Message = re.Message
	} else {
		body.Error = re.Message
	}
	if statusCode == http.StatusNotFound {
		body.Path = path
	}
	return statusCode, body
}
