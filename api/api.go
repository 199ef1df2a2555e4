// Package api holds the OpenAPI document of the instance responder and the
// request validator built from it.
package api

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
)

//go:embed instance-responder.openapi.yaml
var specYAML []byte

// Spec returns the raw OpenAPI document.
func Spec() []byte {
	return specYAML
}

// LoadSpec parses and validates the embedded document.
func LoadSpec(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(specYAML)
	if err != nil {
		return nil, fmt.Errorf("can't parse openapi document, err: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid openapi document, err: %w", err)
	}
	return doc, nil
}

// NewRequestValidator returns middleware that checks requests against doc.
// Requests to paths the document does not describe pass through untouched so
// that echo answers them with 404. Bodies are not validated: POST /api/data
// accepts any payload and decides on its own what is JSON. Violations are
// returned as a 400 echo.HTTPError whose Internal is the *openapi3filter.RequestError.
func NewRequestValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("can't build openapi router, err: %w", err)
	}
	return newRequestValidator(router), nil
}

func newRequestValidator(router routers.Router) echo.MiddlewareFunc {
	options := &openapi3filter.Options{ExcludeRequestBody: true}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				return next(c)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
			}
			return next(c)
		}
	}
}
