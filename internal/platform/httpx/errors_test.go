package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niyo-hr/niyo-web/internal/apiclient"
	"github.com/niyo-hr/niyo-web/internal/shared"
)

func TestWriteActionSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteAction(rec, httptest.NewRequest(http.MethodPost, "/actions/x", nil), nil, map[string]string{"message": "Logout successful"}, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true,"data":{"message":"Logout successful"}}`, rec.Body.String())
}

func TestWriteActionErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{
			name:   "validation",
			err:    shared.Invalid("email", shared.MsgInvalidEmail),
			status: http.StatusBadRequest,
			body:   `{"ok":false,"error":"Invalid request data","details":[{"field":"email","message":"Enter a valid email address"}]}`,
		},
		{
			name:   "business failure on 200",
			err:    &apiclient.Failure{Message: "Email already exists", Status: http.StatusOK},
			status: http.StatusUnprocessableEntity,
			body:   `{"ok":false,"error":"Email already exists"}`,
		},
		{
			name:   "backend status kept",
			err:    &apiclient.Failure{Message: "Not found", Status: http.StatusNotFound, Details: []byte(`{"message":"Not found"}`)},
			status: http.StatusNotFound,
			body:   `{"ok":false,"error":"Not found","details":{"message":"Not found"}}`,
		},
		{
			name:   "network failure",
			err:    &apiclient.Failure{Message: "Network error: refused"},
			status: http.StatusBadGateway,
			body:   `{"ok":false,"error":"Network error: refused"}`,
		},
		{
			name:   "unauthorized",
			err:    fmt.Errorf("reset password: %w", shared.ErrUnauthorized),
			status: http.StatusUnauthorized,
			body:   `{"ok":false,"error":"Unauthorized"}`,
		},
		{
			name:   "unexpected",
			err:    errors.New("boom"),
			status: http.StatusInternalServerError,
			body:   `{"ok":false,"error":"Internal server error"}`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteAction(rec, httptest.NewRequest(http.MethodPost, "/actions/x", nil), nil, nil, tc.err)
			assert.Equal(t, tc.status, rec.Code)
			assert.JSONEq(t, tc.body, rec.Body.String())
			assert.NotContains(t, rec.Body.String(), "boom")
		})
	}
}

func TestRedirectEscape(t *testing.T) {
	err := fmt.Errorf("list employees: %w", &apiclient.RedirectError{Location: "/login", Status: http.StatusUnauthorized})

	rec := httptest.NewRecorder()
	WriteAction(rec, httptest.NewRequest(http.MethodGet, "/employee", nil), nil, nil, err)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodPost, "/actions/employees/list", nil)
	req.Header.Set("Accept", "application/json")
	rec = httptest.NewRecorder()
	WriteAction(rec, req, nil, nil, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"ok":false,"error":"Unauthorized","redirect":"/login"}`, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	var out struct {
		Name string `json:"name"`
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
	require.NoError(t, DecodeJSON(httptest.NewRecorder(), req, &out))
	assert.Equal(t, "x", out.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(``))
	assert.NoError(t, DecodeJSON(httptest.NewRecorder(), req, &out))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	assert.Error(t, DecodeJSON(httptest.NewRecorder(), req, &out))
}
