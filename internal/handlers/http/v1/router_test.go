package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gfdmit/web-forum/post-api/config"
	"github.com/gfdmit/web-forum/post-api/internal/model"
	"github.com/gfdmit/web-forum/post-api/internal/repository"
	"github.com/gfdmit/web-forum/post-api/internal/repository/orm"
	"github.com/gfdmit/web-forum/post-api/internal/repository/orm/ormtest"
	"github.com/gfdmit/web-forum/post-api/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testConf = config.HTTPServer{
	RequestTimeout:   time.Second,
	CORSAllowOrigins: []string{"*"},
}

func newRouter(t *testing.T, repo repository.Repository, conf config.HTTPServer) *gin.Engine {
	t.Helper()
	router, err := New(service.New(repo), conf, log.New(io.Discard))
	require.NoError(t, err)
	return router
}

func newSeededRouter(t *testing.T, seed int) *gin.Engine {
	t.Helper()
	db := ormtest.NewDB(t)
	ormtest.Seed(t, db, seed)
	return newRouter(t, orm.New(db), testConf)
}

func serve(router *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader = http.NoBody
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// stubRepository fails or misbehaves on demand.
type stubRepository struct {
	err   error
	panic bool
	block bool
	// returned instead of the context error once a blocked call is released
	cancelErr error
}

func (s stubRepository) act(ctx context.Context) error {
	if s.panic {
		panic("storage exploded")
	}
	if s.block {
		<-ctx.Done()
		if s.cancelErr != nil {
			return s.cancelErr
		}
		return fmt.Errorf("find post: %w", ctx.Err())
	}
	return s.err
}

func (s stubRepository) FindPostByID(ctx context.Context, _ int) (model.Post, error) {
	return model.Post{}, s.act(ctx)
}

func (s stubRepository) FindPostsInPage(ctx context.Context, _ int, _ int) (model.PostPage, error) {
	return model.PostPage{}, s.act(ctx)
}

func (s stubRepository) CreatePost(ctx context.Context, _ model.Post) (model.Post, error) {
	return model.Post{}, s.act(ctx)
}

func (s stubRepository) UpdatePostByID(ctx context.Context, _ int, _ model.Post) (model.Post, error) {
	return model.Post{}, s.act(ctx)
}

func (s stubRepository) DeletePost(ctx context.Context, _ int) (int64, error) {
	return 0, s.act(ctx)
}

func TestHello(t *testing.T) {
	t.Run("Should greet without touching storage", func(t *testing.T) {
		router := newRouter(t, stubRepository{panic: true}, testConf)

		rec := serve(router, http.MethodGet, "/hello", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Hello, World!", rec.Body.String())
	})
}

func TestListPosts(t *testing.T) {
	t.Run("Should default to page 1 of size 5 and expose totals", func(t *testing.T) {
		router := newSeededRouter(t, 7)

		rec := serve(router, http.MethodGet, "/api/posts", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var posts []model.Post
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &posts))
		require.Len(t, posts, 5)
		for i, post := range posts {
			assert.Equal(t, i+1, post.ID)
		}
		assert.Equal(t, "2", rec.Header().Get(totalPagesHeader))
		assert.Equal(t, "7", rec.Header().Get(totalCountHeader))
		link := rec.Header().Get("Link")
		assert.Contains(t, link, `</api/posts?page=2&page_size=5>; rel="next"`)
		assert.Contains(t, link, `</api/posts?page=2&page_size=5>; rel="last"`)
		assert.NotContains(t, link, `rel="prev"`)
	})

	t.Run("Should honour page and page_size", func(t *testing.T) {
		router := newSeededRouter(t, 7)

		rec := serve(router, http.MethodGet, "/api/posts?page=3&page_size=3", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[{"id":7,"title":"post 7","text":null}]`, rec.Body.String())
		assert.Equal(t, "3", rec.Header().Get(totalPagesHeader))
		assert.Contains(t, rec.Header().Get("Link"), `rel="prev"`)
	})

	t.Run("Should return an empty array past the last page", func(t *testing.T) {
		router := newSeededRouter(t, 2)

		rec := serve(router, http.MethodGet, "/api/posts?page=9", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("Should reject bad paging parameters", func(t *testing.T) {
		router := newSeededRouter(t, 2)

		for _, target := range []string{
			"/api/posts?page=abc",
			"/api/posts?page_size=1.5",
			"/api/posts?page=0",
			"/api/posts?page_size=-1",
			"/api/posts?page_size=101",
		} {
			rec := serve(router, http.MethodGet, target, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code, target)
			assert.Contains(t, rec.Body.String(), `"error"`, target)
		}
	})
}

func TestPostCRUD(t *testing.T) {
	t.Run("Should create a post with null text and fetch it back", func(t *testing.T) {
		router := newSeededRouter(t, 0)

		rec := serve(router, http.MethodPost, "/api/posts", `{"title":"hi","text":null}`)
		require.Equal(t, http.StatusCreated, rec.Code)
		var created model.Post
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		require.NotZero(t, created.ID)

		rec = serve(router, http.MethodGet, fmt.Sprintf("/api/posts/%d", created.ID), "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, fmt.Sprintf(`{"id":%d,"title":"hi","text":null}`, created.ID), rec.Body.String())
	})

	t.Run("Should ignore a client supplied id on create", func(t *testing.T) {
		router := newSeededRouter(t, 1)

		rec := serve(router, http.MethodPost, "/api/posts", `{"id":1,"title":"second","text":"body"}`)
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"id":2,"title":"second","text":"body"}`, rec.Body.String())
	})

	t.Run("Should update title and text and keep the id", func(t *testing.T) {
		router := newSeededRouter(t, 3)

		rec := serve(router, http.MethodPut, "/api/posts/2", `{"id":50,"title":"edited","text":"now with text"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"id":2,"title":"edited","text":"now with text"}`, rec.Body.String())

		rec = serve(router, http.MethodGet, "/api/posts/2", "")
		assert.JSONEq(t, `{"id":2,"title":"edited","text":"now with text"}`, rec.Body.String())
	})

	t.Run("Should delete a post and answer 404 afterwards", func(t *testing.T) {
		router := newSeededRouter(t, 1)

		rec := serve(router, http.MethodDelete, "/api/posts/1", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Body.String())
		assert.Equal(t, "1", rec.Header().Get(rowsAffectedHeader))

		rec = serve(router, http.MethodGet, "/api/posts/1", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Should report zero rows when deleting a missing post", func(t *testing.T) {
		rec := serve(newSeededRouter(t, 0), http.MethodDelete, "/api/posts/999", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "0", rec.Header().Get(rowsAffectedHeader))
	})

	t.Run("Should answer 404 for a missing post", func(t *testing.T) {
		router := newSeededRouter(t, 0)

		rec := serve(router, http.MethodGet, "/api/posts/999", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"post not found"}`, rec.Body.String())

		rec = serve(router, http.MethodPut, "/api/posts/999", `{"title":"x"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Should reject invalid input with 400", func(t *testing.T) {
		router := newSeededRouter(t, 1)

		cases := []struct{ method, target, body string }{
			{http.MethodGet, "/api/posts/abc", ""},
			{http.MethodDelete, "/api/posts/abc", ""},
			{http.MethodGet, "/api/posts/3000000000", ""},
			{http.MethodPut, "/api/posts/-3000000000", `{"title":"x"}`},
			{http.MethodPost, "/api/posts", `{"text":"no title"}`},
			{http.MethodPost, "/api/posts", `{"title":"  "}`},
			{http.MethodPost, "/api/posts", `{"title":`},
			{http.MethodPut, "/api/posts/1", `{"title":""}`},
		}
		for _, tc := range cases {
			rec := serve(router, tc.method, tc.target, tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, "%s %s %s", tc.method, tc.target, tc.body)
		}
	})
}

func TestFailures(t *testing.T) {
	t.Run("Should map storage failures to 500 without leaking details", func(t *testing.T) {
		router := newRouter(t, stubRepository{err: errors.New("connection reset by peer")}, testConf)

		for _, tc := range []struct{ method, target, body string }{
			{http.MethodGet, "/api/posts", ""},
			{http.MethodGet, "/api/posts/1", ""},
			{http.MethodPost, "/api/posts", `{"title":"x"}`},
			{http.MethodPut, "/api/posts/1", `{"title":"x"}`},
			{http.MethodDelete, "/api/posts/1", ""},
		} {
			rec := serve(router, tc.method, tc.target, tc.body)
			assert.Equal(t, http.StatusInternalServerError, rec.Code, tc.target)
			assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
		}
	})

	t.Run("Should recover from a panic and keep serving", func(t *testing.T) {
		router := newRouter(t, stubRepository{panic: true}, testConf)

		rec := serve(router, http.MethodGet, "/api/posts/1", "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"unhandled internal error"}`, rec.Body.String())

		rec = serve(router, http.MethodGet, "/hello", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Should answer 408 when the request deadline passes", func(t *testing.T) {
		conf := testConf
		conf.RequestTimeout = 20 * time.Millisecond
		router := newRouter(t, stubRepository{block: true}, conf)

		rec := serve(router, http.MethodGet, "/api/posts/1", "")
		assert.Equal(t, http.StatusRequestTimeout, rec.Code)
		assert.JSONEq(t, `{"error":"request timed out"}`, rec.Body.String())
	})
}

func TestDriverCancellation(t *testing.T) {
	t.Run("Should answer 408 when the driver reports its own cancel error", func(t *testing.T) {
		conf := testConf
		conf.RequestTimeout = 20 * time.Millisecond
		router := newRouter(t, stubRepository{
			block:     true,
			cancelErr: errors.New("find post: pq: canceling statement due to user request"),
		}, conf)

		rec := serve(router, http.MethodGet, "/api/posts/1", "")
		assert.Equal(t, http.StatusRequestTimeout, rec.Code)
		assert.JSONEq(t, `{"error":"request timed out"}`, rec.Body.String())
	})
}

func TestRequestTimeoutMiddleware(t *testing.T) {
	t.Run("Should write 408 when a handler gives up silently", func(t *testing.T) {
		router := gin.New()
		router.Use(requestTimeout(10 * time.Millisecond))
		router.GET("/slow", func(c *gin.Context) {
			<-c.Request.Context().Done()
		})

		rec := serve(router, http.MethodGet, "/slow", "")
		assert.Equal(t, http.StatusRequestTimeout, rec.Code)
	})

	t.Run("Should leave fast responses alone", func(t *testing.T) {
		router := gin.New()
		router.Use(requestTimeout(time.Second))
		router.GET("/fast", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})

		rec := serve(router, http.MethodGet, "/fast", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequestID(t *testing.T) {
	t.Run("Should echo a supplied request id and mint one otherwise", func(t *testing.T) {
		router := newSeededRouter(t, 0)

		req := httptest.NewRequest(http.MethodGet, "/api/ping", http.NoBody)
		req.Header.Set(requestIDHeader, "abc-123")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))

		rec = serve(router, http.MethodGet, "/api/ping", "")
		assert.Len(t, rec.Header().Get(requestIDHeader), 36)
	})
}

func TestGraphQLRoute(t *testing.T) {
	t.Run("Should serve GraphQL under /api/graphql", func(t *testing.T) {
		router := newSeededRouter(t, 2)

		body, err := json.Marshal(map[string]any{"query": `{ posts { totalCount } }`})
		require.NoError(t, err)
		rec := serve(router, http.MethodPost, "/api/graphql", string(bytes.TrimSpace(body)))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"data":{"posts":{"totalCount":2}}}`, rec.Body.String())
	})
}
