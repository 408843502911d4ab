package handler

import (
	"fmt"
	"io/fs"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
)

// DefaultAssets is the static directory served at /static, relative to the
// working directory of the binary.
func DefaultAssets() fs.FS {
	return os.DirFS("static")
}

// OpenAPIHandler serves the API documentation UI and its assets.
type OpenAPIHandler struct {
	Handler
	assets fs.FS
}

func NewOpenAPIHandler(h Handler, assets fs.FS) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: h,
		assets:  assets,
	}
}

// Assets returns the filesystem the docs page loads openapi.json from.
func (h *OpenAPIHandler) Assets() fs.FS {
	return h.assets
}

// ServeOpenAPIUI serves openapi.html uncached so doc edits show up at once.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-cache")

	page, err := fs.ReadFile(h.assets, "openapi.html")
	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	if err := c.HTML(http.StatusOK, string(page)); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}

	return nil
}
