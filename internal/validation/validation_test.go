package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/showtracker/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rateRequest struct {
	ShowID string  `param:"show" json:"-" validate:"required,numeric"`
	Rating Numeric `json:"rating" validate:"required,numeric"`
	Genre  string  `json:"genre" validate:"omitempty,alpha,min=3,max=25"`
	Owner  string  `json:"owner" validate:"omitempty,email"`
}

func (r *rateRequest) Validate() error {
	return Struct(r)
}

func newContext(t *testing.T, body string, params map[string]string) echo.Context {
	t.Helper()

	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	c := echo.New().NewContext(req, httptest.NewRecorder())
	names := make([]string, 0, len(params))
	values := make([]string, 0, len(params))
	for name, value := range params {
		names = append(names, name)
		values = append(values, value)
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return c
}

func bindErr(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	return httpErr
}

func TestBindAndValidate_Valid(t *testing.T) {
	for _, body := range []string{`{"rating": 10}`, `{"rating": "10"}`, `{"rating": "8.5"}`} {
		req := &rateRequest{}
		require.NoError(t, BindAndValidate(newContext(t, body, map[string]string{"show": "7"}), req), body)
		assert.Equal(t, "7", req.ShowID)

		value, err := req.Rating.Float64()
		require.NoError(t, err)
		assert.Positive(t, value)
	}
}

func TestBindAndValidate_CollectsEveryViolation(t *testing.T) {
	req := &rateRequest{}
	c := newContext(t, `{"rating": "It was very good", "genre": "Sci-Fi", "owner": "nobody"}`, map[string]string{"show": "abc"})

	httpErr := bindErr(t, BindAndValidate(c, req))
	assert.Equal(t, "BAD_REQUEST", httpErr.Code)
	assert.Equal(t, "Validation failed", httpErr.Message)
	require.Len(t, httpErr.Errors, 4)

	byField := map[string]errs.FieldError{}
	for _, fe := range httpErr.Errors {
		byField[fe.Field] = fe
	}

	assert.Equal(t, errs.LocationPath, byField["show"].Location)
	assert.Equal(t, "numeric", byField["show"].Rule)

	assert.Equal(t, errs.LocationBody, byField["rating"].Location)
	assert.Equal(t, "numeric", byField["rating"].Rule)

	assert.Equal(t, "alpha", byField["genre"].Rule)
	assert.Equal(t, "must contain only letters", byField["genre"].Error)

	assert.Equal(t, "email", byField["owner"].Rule)
}

func TestBindAndValidate_Required(t *testing.T) {
	req := &rateRequest{}
	httpErr := bindErr(t, BindAndValidate(newContext(t, `{}`, map[string]string{"show": "1"}), req))

	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "rating", httpErr.Errors[0].Field)
	assert.Equal(t, "required", httpErr.Errors[0].Rule)
	assert.Equal(t, "is required", httpErr.Errors[0].Error)
}

func TestBindAndValidate_LengthMessages(t *testing.T) {
	req := &rateRequest{}
	httpErr := bindErr(t, BindAndValidate(newContext(t, `{"rating": 1, "genre": "Ab"}`, map[string]string{"show": "1"}), req))

	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "min", httpErr.Errors[0].Rule)
	assert.Equal(t, "must be at least 3 characters", httpErr.Errors[0].Error)
}

func TestBindAndValidate_MalformedBody(t *testing.T) {
	tests := []string{
		`{"rating": `,
		`{"rating": true}`,
		`{"genre": 12, "rating": 1}`,
	}

	for _, body := range tests {
		req := &rateRequest{}
		httpErr := bindErr(t, BindAndValidate(newContext(t, body, map[string]string{"show": "1"}), req))
		assert.Empty(t, httpErr.Errors, body)
		assert.NotEmpty(t, httpErr.Message, body)
	}
}

func TestNumeric_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		json string
		want Numeric
	}{
		{json: `10`, want: "10"},
		{json: `8.5`, want: "8.5"},
		{json: `1e1`, want: "10"},
		{json: `2.5E-1`, want: "0.25"},
		{json: `-1e2`, want: "-100"},
		{json: `"1e1"`, want: "1e1"},
		{json: `"8.5"`, want: "8.5"},
		{json: `1e400`, want: "1e400"},
	}

	for _, tt := range tests {
		var n Numeric
		require.NoError(t, n.UnmarshalJSON([]byte(tt.json)), tt.json)
		assert.Equal(t, tt.want, n, tt.json)
	}
}

func TestBindAndValidate_ExponentRating(t *testing.T) {
	req := &rateRequest{}
	require.NoError(t, BindAndValidate(newContext(t, `{"rating": 1e1}`, map[string]string{"show": "7"}), req))

	value, err := req.Rating.Float64()
	require.NoError(t, err)
	assert.Equal(t, 10.0, value)
}

func TestNumeric_NullIsEmpty(t *testing.T) {
	var n Numeric
	require.NoError(t, n.UnmarshalJSON([]byte("null")))
	assert.Equal(t, Numeric(""), n)
}

func TestParseID(t *testing.T) {
	tests := []struct {
		raw  string
		want int64
	}{
		{raw: "1", want: 1},
		{raw: "9223372036854775807", want: 9223372036854775807},
		{raw: "0"},
		{raw: "-3"},
		{raw: "1.5"},
		{raw: "123456789012345678901234567890"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseID(tt.raw), tt.raw)
	}
}
