package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/deppfellow/showtracker/internal/server"
)

// TracingMiddleware owns the New Relic echo middleware.
//
// It has two layers:
//  1. NewRelicMiddleware() starts a transaction per request.
//  2. EnhanceTracing() labels the transaction with the route and the show
//     and user ids it touched, then records the outcome.
//
// Both are no-ops when nrApp is nil (no license key configured).
type TracingMiddleware struct {
	server *server.Server
	nrApp  *newrelic.Application
}

func NewTracingMiddleware(s *server.Server, nrApp *newrelic.Application) *TracingMiddleware {
	return &TracingMiddleware{
		server: s,
		nrApp:  nrApp,
	}
}

// NewRelicMiddleware returns nrecho's middleware, or a pass-through when
// New Relic is disabled. It is what makes newrelic.FromContext work later.
func (tm *TracingMiddleware) NewRelicMiddleware() echo.MiddlewareFunc {
	if tm.nrApp == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}
	return nrecho.Middleware(tm.nrApp)
}

// pathAttributes maps route params to transaction attribute names.
var pathAttributes = map[string]string{
	"show":  "show.id",
	"user":  "user.id",
	"genre": "show.genre",
}

// traceAttributes collects the custom attributes for one request.
//
// Path params are recorded raw, before validation, so a rejected id is
// still visible on the trace of the 400 it caused.
func traceAttributes(c echo.Context) map[string]any {
	attrs := map[string]any{
		"http.real_ip":    c.RealIP(),
		"http.user_agent": c.Request().UserAgent(),
		"http.route":      c.Path(),
	}

	if requestID := GetRequestID(c); requestID != "" {
		attrs["request.id"] = requestID
	}

	for _, name := range c.ParamNames() {
		if key, ok := pathAttributes[name]; ok {
			attrs[key] = c.Param(name)
		}
	}

	return attrs
}

// noticeable reports whether an outcome should be recorded as a New Relic
// error. Validation failures, misses and rate limits are normal API
// traffic; only server faults count.
func noticeable(status int) bool {
	return status >= http.StatusInternalServerError
}

// EnhanceTracing must run after NewRelicMiddleware and RequestID.
func (tm *TracingMiddleware) EnhanceTracing() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			txn := newrelic.FromContext(c.Request().Context())
			if txn == nil {
				return next(c)
			}

			for key, value := range traceAttributes(c) {
				txn.AddAttribute(key, value)
			}

			err := next(c)

			status := responseStatus(c, err)
			if err != nil && noticeable(status) {
				// nrpkgerrors keeps the stack trace pkg/errors attached.
				txn.NoticeError(nrpkgerrors.Wrap(err))
			}

			txn.AddAttribute("http.status_code", status)

			return err
		}
	}
}
