package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/mardelta/portfolio-api/internal/model"
	"github.com/mardelta/portfolio-api/internal/session"
)

func visitorProfile() model.UserProfile {
	return model.UserProfile{
		ID:       "u1",
		Email:    "visitor@example.com",
		Name:     "Visitor",
		Provider: "github",
	}
}

// ssoCookies establishes a visitor SSO session and returns its cookies.
func ssoCookies(t *testing.T, e *echo.Echo, sessions *session.Manager) []*http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, sessions.SetUser(c, visitorProfile()))
	return rec.Result().Cookies()
}

// blogRowFixture is a single well-formed blog_posts row for sqlmock queries.
func blogRowFixture() *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id", "title", "excerpt", "content", "category", "tags",
		"published_at", "read_time", "image", "created_at", "updated_at",
	}).AddRow(
		"post-1", "A post", "short", "<p>body</p>", "go", []byte(`[]`),
		"2025-05-01", "5 min", nil, now, now,
	)
}

type testRequest struct {
	ctx echo.Context
	rec *httptest.ResponseRecorder
}

func newDeleteRequest(e *echo.Echo, path string, cookies []*http.Cookie) testRequest {
	req := httptest.NewRequest(http.MethodDelete, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	return testRequest{ctx: e.NewContext(req, rec), rec: rec}
}
