package tour

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourofheroes/heroes/internal/domain"
	"github.com/tourofheroes/heroes/internal/messages"
	"github.com/tourofheroes/heroes/internal/middleware"
	"github.com/tourofheroes/heroes/internal/rendering"
)

const testSessionSecret = "a-very-secret-key-for-testing-!"

type handlerFixture struct {
	e   *echo.Echo
	h   *Handler
	svc *fakeHeroes
	log *messages.Log
}

func setupHandler(t *testing.T) *handlerFixture {
	t.Helper()
	svc := newFakeHeroes(sampleHeroes...)
	log := messages.New(nil)
	h := NewHandler(svc, log, rendering.NewUniversalRenderer())

	e := echo.New()
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(testSessionSecret))))
	e.GET("/", h.Root)
	e.GET("/dashboard", h.Dashboard, middleware.TrackHistory)
	e.GET("/heroes", h.Heroes, middleware.TrackHistory)
	e.GET("/detail/:id", h.Detail, middleware.TrackHistory)
	e.POST("/heroes", h.AddHero)
	e.DELETE("/heroes/:id", h.DeleteHero)
	e.POST("/detail/:id", h.SaveDetail)
	e.GET("/back", h.Back)
	e.GET("/messages", h.Messages)

	return &handlerFixture{e: e, h: h, svc: svc, log: log}
}

// do serves one request, carrying the cookies from the previous response.
func (f *handlerFixture) do(req *http.Request, cookies []*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func formRequest(method, target string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func TestHandler_RootRedirectsToDashboard(t *testing.T) {
	f := setupHandler(t)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/", nil), nil)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get(echo.HeaderLocation))
}

func TestHandler_Dashboard(t *testing.T) {
	f := setupHandler(t)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/dashboard", nil), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Dashboard - Tour of Heroes")
	for _, name := range []string{"Narco", "Bombasto", "Celeritas", "Magneta"} {
		assert.Contains(t, body, name)
	}
	assert.NotContains(t, body, "Dr Nice")
	assert.NotContains(t, body, "RubberMan")
	assert.Contains(t, body, `href="/detail/12"`)
}

func TestHandler_Heroes(t *testing.T) {
	f := setupHandler(t)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/heroes", nil), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	for _, h := range sampleHeroes {
		assert.Contains(t, rec.Body.String(), h.Name)
	}
}

func TestHandler_AddHero(t *testing.T) {
	t.Run("htmx gets the new row", func(t *testing.T) {
		f := setupHandler(t)
		req := formRequest(http.MethodPost, "/heroes", url.Values{"name": {"  Bolt  "}})
		req.Header.Set("HX-Request", "true")

		rec := f.do(req, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `id="hero-100"`)
		assert.Contains(t, rec.Body.String(), "Bolt")
		assert.NotContains(t, rec.Body.String(), "<html", "only the fragment is rendered")
		assert.Equal(t, []string{"Bolt"}, f.svc.adds)
	})

	t.Run("blank name swaps nothing", func(t *testing.T) {
		f := setupHandler(t)
		req := formRequest(http.MethodPost, "/heroes", url.Values{"name": {"   "}})
		req.Header.Set("HX-Request", "true")

		rec := f.do(req, nil)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, f.svc.adds)
	})

	t.Run("plain form post redirects to the list", func(t *testing.T) {
		f := setupHandler(t)

		rec := f.do(formRequest(http.MethodPost, "/heroes", url.Values{"name": {"Bolt"}}), nil)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/heroes", rec.Header().Get(echo.HeaderLocation))
		assert.Equal(t, []string{"Bolt"}, f.svc.adds)
	})
}

func TestHandler_DeleteHero(t *testing.T) {
	f := setupHandler(t)
	req := httptest.NewRequest(http.MethodDelete, "/heroes/13", nil)
	req.Header.Set("HX-Request", "true")

	rec := f.do(req, nil)
	f.h.Wait()

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, []int{13}, f.svc.deletes)
}

func TestHandler_DeleteHeroBadID(t *testing.T) {
	f := setupHandler(t)

	rec := f.do(httptest.NewRequest(http.MethodDelete, "/heroes/abc", nil), nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, f.svc.deletes)
}

func TestHandler_Detail(t *testing.T) {
	f := setupHandler(t)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/detail/13", nil), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "BOMBASTO Details")
	assert.Contains(t, rec.Body.String(), "Bombasto - Tour of Heroes")

	rec = f.do(httptest.NewRequest(http.MethodGet, "/detail/99", nil), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No hero to show.")
}

func TestHandler_SaveDetailGoesBack(t *testing.T) {
	f := setupHandler(t)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/heroes", nil), nil)
	rec = f.do(httptest.NewRequest(http.MethodGet, "/detail/13", nil), rec.Result().Cookies())
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(formRequest(http.MethodPost, "/detail/13", url.Values{"name": {" Bombasto II "}}), rec.Result().Cookies())

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/heroes", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, []domain.Hero{{ID: 13, Name: "Bombasto II"}}, f.svc.updates)
}

func TestHandler_BackWithoutHistory(t *testing.T) {
	f := setupHandler(t)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/back", nil), nil)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get(echo.HeaderLocation))
}

func TestHandler_Messages(t *testing.T) {
	f := setupHandler(t)
	f.log.Add("HeroService: fetched heroes")

	rec := f.do(httptest.NewRequest(http.MethodGet, "/messages", nil), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "HeroService: fetched heroes")
	assert.NotContains(t, rec.Body.String(), "<html")
}
