package router

import (
	"net/http"

	"github.com/deppfellow/showtracker/internal/handler"
	"github.com/labstack/echo/v4"
)

func registerShowRoutes(r *echo.Echo, h *handler.Handlers) {
	show := h.Show

	shows := r.Group("/shows")

	shows.GET("", handler.Handle(show.Handler, show.ListShows, http.StatusOK))
	shows.POST("", handler.Handle(show.Handler, show.CreateShow, http.StatusOK))

	// echo matches the static "genre" segment before the :show param.
	shows.GET("/genre/:genre", handler.Handle(show.Handler, show.ListShowsByGenre, http.StatusOK))

	shows.GET("/:show", handler.Handle(show.Handler, show.GetShow, http.StatusOK))
	shows.DELETE("/:show", handler.HandleCount(show.Handler, show.DeleteShow))
	shows.PUT("/:show/rating", handler.Handle(show.Handler, show.UpdateRating, http.StatusOK))
	shows.PUT("/:show/update", handler.Handle(show.Handler, show.UpdateStatus, http.StatusOK))
}
