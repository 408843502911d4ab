package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// RequestIDHeader is the HTTP header used to carry the request correlation id.
	RequestIDHeader = "X-Request-ID"

	// RequestIDKey is the key the id is stored under in the echo context.
	RequestIDKey = "request_id"

	// maxRequestIDLength caps an upstream id before it is trusted.
	maxRequestIDLength = 128
)

// RequestID returns an Echo middleware that gives every request an id.
//
// Behavior:
//   - An incoming X-Request-ID is reused when it is a plausible token
//     (non-empty, at most 128 bytes, printable ASCII without spaces).
//   - Anything else is replaced with a fresh UUID, so a client cannot
//     smuggle newlines or huge values into every log line of the request.
//   - The id is stored in the echo context and echoed on the response, so
//     clients can quote it when they report a failed show or user call.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(RequestIDHeader)
			if !validRequestID(requestID) {
				requestID = uuid.New().String()
			}

			c.Set(RequestIDKey, requestID)
			c.Response().Header().Set(RequestIDHeader, requestID)

			return next(c)
		}
	}
}

// validRequestID accepts ids made of visible ASCII characters only.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] <= ' ' || id[i] > '~' {
			return false
		}
	}
	return true
}

// GetRequestID returns the request id.
//
// Returns "" when RequestID did not run for this request.
func GetRequestID(c echo.Context) string {
	if requestID, ok := c.Get(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}
