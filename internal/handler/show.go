package handler

import (
	"github.com/deppfellow/showtracker/internal/errs"
	"github.com/deppfellow/showtracker/internal/model"
	"github.com/deppfellow/showtracker/internal/repository"
	"github.com/deppfellow/showtracker/internal/service"
	"github.com/deppfellow/showtracker/internal/validation"
	"github.com/labstack/echo/v4"
)

// ListShowsRequest is the (empty) input of GET /shows.
//
// It still goes through the pipeline so every endpoint is bound, validated
// and logged the same way.
type ListShowsRequest struct{}

func (r *ListShowsRequest) Validate() error {
	return validation.Struct(r)
}

// ShowRequest addresses one show by the :show path param.
//
// The id is validated as numeric text and converted later with
// validation.ParseID, so "abc" is a 400 while "1.5" is a normal miss.
type ShowRequest struct {
	ShowID string `param:"show" json:"-" validate:"required,numeric"`
}

func (r *ShowRequest) Validate() error {
	return validation.Struct(r)
}

// ShowsByGenreRequest is the input of GET /shows/genre/:genre.
// The genre is matched exactly and case-sensitively.
type ShowsByGenreRequest struct {
	Genre string `param:"genre" json:"-" validate:"required,alpha,min=3,max=25"`
}

func (r *ShowsByGenreRequest) Validate() error {
	return validation.Struct(r)
}

// CreateShowRequest is the JSON body of POST /shows.
//
// Rules:
//   - title: present, at most 25 characters
//   - status: present, 5 to 25 characters
//   - genre: present, letters only, 3 to 25 characters
//   - rating: present and numeric (JSON number or numeric string)
type CreateShowRequest struct {
	Title  string             `json:"title" validate:"required,max=25"`
	Status string             `json:"status" validate:"required,min=5,max=25"`
	Genre  string             `json:"genre" validate:"required,alpha,min=3,max=25"`
	Rating validation.Numeric `json:"rating" validate:"required,numeric"`
}

func (r *CreateShowRequest) Validate() error {
	return validation.Struct(r)
}

// UpdateRatingRequest is the input of PUT /shows/:show/rating.
type UpdateRatingRequest struct {
	ShowID string             `param:"show" json:"-" validate:"required,numeric"`
	Rating validation.Numeric `json:"rating" validate:"required,numeric"`
}

func (r *UpdateRatingRequest) Validate() error {
	return validation.Struct(r)
}

// UpdateStatusRequest is the input of PUT /shows/:show/update.
type UpdateStatusRequest struct {
	ShowID string `param:"show" json:"-" validate:"required,numeric"`
	Status string `json:"status" validate:"required,min=5,max=25"`
}

func (r *UpdateStatusRequest) Validate() error {
	return validation.Struct(r)
}

// ShowHandler serves the /shows routes.
//
// Each method is phase 2 of the pipeline: the request has already been
// bound and validated, so it only converts ids and calls ShowService.
type ShowHandler struct {
	Handler
	shows *service.ShowService
}

func NewShowHandler(h Handler, shows *service.ShowService) *ShowHandler {
	return &ShowHandler{Handler: h, shows: shows}
}

func (h *ShowHandler) ListShows(c echo.Context, _ *ListShowsRequest) ([]model.Show, error) {
	return h.shows.List(c.Request().Context())
}

func (h *ShowHandler) GetShow(c echo.Context, req *ShowRequest) (*model.Show, error) {
	return h.shows.GetByID(c.Request().Context(), validation.ParseID(req.ShowID))
}

func (h *ShowHandler) ListShowsByGenre(c echo.Context, req *ShowsByGenreRequest) ([]model.Show, error) {
	return h.shows.ListByGenre(c.Request().Context(), req.Genre)
}

func (h *ShowHandler) CreateShow(c echo.Context, req *CreateShowRequest) (*model.Show, error) {
	rating, err := parseRating(req.Rating)
	if err != nil {
		return nil, err
	}

	return h.shows.Create(c.Request().Context(), repository.CreateShowParams{
		Title:  req.Title,
		Genre:  req.Genre,
		Rating: rating,
		Status: req.Status,
	})
}

// UpdateRating overwrites the rating only. The presence check mirrors the
// service contract; validation already guarantees the field is set.
func (h *ShowHandler) UpdateRating(c echo.Context, req *UpdateRatingRequest) (*model.Show, error) {
	id := validation.ParseID(req.ShowID)

	var rating *float64
	if req.Rating != "" {
		value, err := parseRating(req.Rating)
		if err != nil {
			return nil, err
		}
		rating = &value
	}

	return h.shows.UpdateRating(c.Request().Context(), id, rating)
}

func (h *ShowHandler) UpdateStatus(c echo.Context, req *UpdateStatusRequest) (*model.Show, error) {
	id := validation.ParseID(req.ShowID)

	var status *string
	if req.Status != "" {
		status = &req.Status
	}

	return h.shows.UpdateStatus(c.Request().Context(), id, status)
}

// DeleteShow returns the number of removed rows.
func (h *ShowHandler) DeleteShow(c echo.Context, req *ShowRequest) (int64, error) {
	return h.shows.Delete(c.Request().Context(), validation.ParseID(req.ShowID))
}

// parseRating converts an already validated rating. Only a value outside
// float64 range fails here.
func parseRating(raw validation.Numeric) (float64, error) {
	rating, err := raw.Float64()
	if err != nil {
		return 0, errs.NewBadRequestError("Validation failed", true, nil, []errs.FieldError{{
			Field:    "rating",
			Location: errs.LocationBody,
			Rule:     "numeric",
			Error:    "is out of range",
		}})
	}
	return rating, nil
}
