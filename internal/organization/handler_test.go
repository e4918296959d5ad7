package organization_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/niyo-hr/niyo-web/internal/organization"
	"github.com/niyo-hr/niyo-web/internal/session"
	"github.com/niyo-hr/niyo-web/internal/shared"
	"github.com/niyo-hr/niyo-web/internal/testing/fakebackend"
)

func newRouter(t *testing.T, fb *fakebackend.Backend, store session.Store) http.Handler {
	t.Helper()
	handler := organization.NewHandler(nil, organization.NewService(fb.Client(t), nil))
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(shared.ContextWithStore(req.Context(), store)))
		})
	})
	r.Route("/actions/organization", handler.MountRoutes)
	return r
}

func TestCheckoutAction(t *testing.T) {
	fb := fakebackend.New(t, http.StatusOK, `{"success":true,"data":{"stripeCheckoutURL":"https://checkout.example/s/1"}}`)

	res := httptest.NewRecorder()
	newRouter(t, fb, fakebackend.AdminStore(t)).ServeHTTP(res, httptest.NewRequest(http.MethodPost, "/actions/organization/plans/price_1/checkout", nil))
	assert.Equal(t, http.StatusOK, res.Code)
	assert.JSONEq(t, `{"ok":true,"data":{"stripeCheckoutURL":"https://checkout.example/s/1"}}`, res.Body.String())
}

func TestEmptyPackagesAction(t *testing.T) {
	fb := fakebackend.New(t, http.StatusOK, `{"success":true,"data":{"holidayList":[]}}`)

	res := httptest.NewRecorder()
	newRouter(t, fb, fakebackend.AdminStore(t)).ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/actions/organization/holidays", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, res.Code)
	assert.JSONEq(t, `{"ok":false,"error":"No holiday packages available right now."}`, res.Body.String())
}

func TestInsertAction(t *testing.T) {
	fb := fakebackend.New(t, http.StatusOK, `{"success":true}`)

	res := httptest.NewRecorder()
	body := `[{"_id":"h1","holiday_name":"Nyepi","date":"2024-03-11"}]`
	newRouter(t, fb, fakebackend.AdminStore(t)).ServeHTTP(res, httptest.NewRequest(http.MethodPost, "/actions/organization/holidays", strings.NewReader(body)))
	assert.Equal(t, http.StatusOK, res.Code)
	assert.JSONEq(t, `[{"holidayName":"Nyepi","date":"2024-03-11"}]`, string(fb.Last(t).Raw))
}

func TestOrganizationActionsAdminOnly(t *testing.T) {
	fb := fakebackend.New(t, http.StatusOK, `{}`)

	res := httptest.NewRecorder()
	newRouter(t, fb, fakebackend.EmployeeStore(t)).ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/actions/organization/plans", nil))
	assert.Equal(t, http.StatusForbidden, res.Code)
	assert.Empty(t, fb.Calls())
}
