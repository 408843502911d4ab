package router

import (
	"net/http"

	"github.com/deppfellow/showtracker/internal/handler"
	"github.com/labstack/echo/v4"
)

func registerUserRoutes(r *echo.Echo, h *handler.Handlers) {
	user := h.User

	users := r.Group("/users")

	users.GET("", handler.Handle(user.Handler, user.ListUsers, http.StatusOK))
	users.POST("", handler.Handle(user.Handler, user.CreateUser, http.StatusOK))
	users.GET("/:user", handler.Handle(user.Handler, user.GetUser, http.StatusOK))

	users.GET("/:user/shows", handler.Handle(user.Handler, user.ListUserShows, http.StatusOK))
	users.PUT("/:user/shows/:show", handler.HandleNoContent(user.Handler, user.AddUserShow, http.StatusOK))
	users.PATCH("/:user/shows/:show", handler.HandleNoContent(user.Handler, user.RemoveUserShow, http.StatusOK))
}
