package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"wtfBlog/cache"
	"wtfBlog/crud"
	"wtfBlog/domain"
	"wtfBlog/storage"
)

// testServer wires a full Server over an in-memory database and an in-process
// redis, so handler tests cover the real middleware chain and services.
type testServer struct {
	*Server
	services *crud.Services
	redis    *miniredis.Miniredis
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	err = db.AutoMigrate(
		domain.User{},
		domain.OAuth{},
		domain.Group{},
		domain.Post{},
		domain.Comment{},
		domain.Follow{},
	)
	require.NoError(t, err)

	services, err := crud.NewServices(
		db,
		crud.WithUser("test-hmac-key", "test-pepper"),
		crud.WithOAuth(),
		crud.WithGroup(),
		crud.WithPost(),
		crud.WithComment(),
		crud.WithFollow(),
		crud.WithFeed(),
	)
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	c := cache.NewRedis(mr.Addr())
	t.Cleanup(func() { c.Close() })

	s := NewServer(false, "", oauth2.Config{}, services, storage.NewImageService(), c)
	return &testServer{
		Server:   s,
		services: services,
		redis:    mr,
	}
}

// do runs one request through the full middleware chain.
func (ts *testServer) do(method, path string, body io.Reader, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	ts.Router().ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) doJSON(method, path string, payload interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	body, err := json.Marshal(payload)
	if err != nil {
		panic(err)
	}
	return ts.do(method, path, bytes.NewReader(body), cookie)
}

// registerUser signs up a user through the api and returns the account along
// with its session cookie.
func (ts *testServer) registerUser(t *testing.T, username string) (*domain.User, *http.Cookie) {
	t.Helper()

	rec := ts.doJSON("POST", "/register", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "password1234",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "remember_token" {
			cookie = c
		}
	}
	require.NotNil(t, cookie, "registration must set a session cookie")

	user, err := ts.services.User.ByUsername(username)
	require.NoError(t, err)
	return user, cookie
}

// createPost writes a post straight through the service layer, bypassing the
// handlers, for tests that only need content to exist.
func (ts *testServer) createPost(t *testing.T, authorID int, text string) *domain.Post {
	t.Helper()
	post := &domain.Post{
		AuthorID: authorID,
		Text:     text,
	}
	require.NoError(t, ts.services.Post.Create(post))
	return post
}

func (ts *testServer) postCount(t *testing.T) int64 {
	t.Helper()
	feed, err := ts.services.Feed.Global(1)
	require.NoError(t, err)
	return feed.Total
}
