package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "lab-inventory/pkg/errors"
)

func sessionEcho() *echo.Echo {
	e := echo.New()
	e.Use(Session("lab_session", time.Hour))
	e.GET("/", func(c echo.Context) error {
		id, err := SessionID(c)
		if err != nil {
			return err
		}
		return c.String(http.StatusOK, id)
	})
	return e
}

func TestSessionIssuesCookie(t *testing.T) {
	e := sessionEcho()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "lab_session", cookies[0].Name)
	assert.Equal(t, cookies[0].Value, rec.Body.String())
	_, err := uuid.Parse(cookies[0].Value)
	assert.NoError(t, err)
}

func TestSessionReusesValidCookie(t *testing.T) {
	e := sessionEcho()
	id := uuid.New().String()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "lab_session", Value: id})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, id, rec.Body.String())
	assert.Empty(t, rec.Result().Cookies())
}

func TestSessionReplacesForgedCookie(t *testing.T) {
	e := sessionEcho()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "lab_session", Value: "../../etc"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.NotEqual(t, "../../etc", rec.Body.String())
	assert.Len(t, rec.Result().Cookies(), 1)
}

func TestSessionIDWithoutMiddleware(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	_, err := SessionID(c)
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}
