package handler

import (
	"github.com/deppfellow/showtracker/internal/model"
	"github.com/deppfellow/showtracker/internal/service"
	"github.com/deppfellow/showtracker/internal/validation"
	"github.com/labstack/echo/v4"
)

// ListUsersRequest is the (empty) input of GET /users.
type ListUsersRequest struct{}

func (r *ListUsersRequest) Validate() error {
	return validation.Struct(r)
}

// UserRequest addresses one user by the :user path param.
type UserRequest struct {
	UserID string `param:"user" json:"-" validate:"required,numeric"`
}

func (r *UserRequest) Validate() error {
	return validation.Struct(r)
}

// UserShowRequest addresses one membership edge.
type UserShowRequest struct {
	UserID string `param:"user" json:"-" validate:"required,numeric"`
	ShowID string `param:"show" json:"-" validate:"required,numeric"`
}

func (r *UserShowRequest) Validate() error {
	return validation.Struct(r)
}

// CreateUserRequest is the JSON body of POST /users.
//
// The username must look like an email address; the password needs at
// least 6 characters and is hashed before it is stored.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (r *CreateUserRequest) Validate() error {
	return validation.Struct(r)
}

// UserHandler serves the /users routes, including the membership
// endpoints that link users to the shows they watch.
type UserHandler struct {
	Handler
	users *service.UserService
}

func NewUserHandler(h Handler, users *service.UserService) *UserHandler {
	return &UserHandler{Handler: h, users: users}
}

func (h *UserHandler) ListUsers(c echo.Context, _ *ListUsersRequest) ([]model.User, error) {
	return h.users.List(c.Request().Context())
}

func (h *UserHandler) GetUser(c echo.Context, req *UserRequest) (*model.User, error) {
	return h.users.GetByID(c.Request().Context(), validation.ParseID(req.UserID))
}

func (h *UserHandler) CreateUser(c echo.Context, req *CreateUserRequest) (*model.User, error) {
	return h.users.Create(c.Request().Context(), req.Username, req.Password)
}

func (h *UserHandler) ListUserShows(c echo.Context, req *UserRequest) ([]model.Show, error) {
	return h.users.ListShows(c.Request().Context(), validation.ParseID(req.UserID))
}

// AddUserShow links the show to the user. Adding an existing link is a
// no-op that still answers 200.
func (h *UserHandler) AddUserShow(c echo.Context, req *UserShowRequest) error {
	return h.users.AddShow(c.Request().Context(), validation.ParseID(req.UserID), validation.ParseID(req.ShowID))
}

// RemoveUserShow unlinks the show; 404 when the link does not exist.
func (h *UserHandler) RemoveUserShow(c echo.Context, req *UserShowRequest) error {
	return h.users.RemoveShow(c.Request().Context(), validation.ParseID(req.UserID), validation.ParseID(req.ShowID))
}
