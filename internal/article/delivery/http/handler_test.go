package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tair/spaceflight-news/internal/article/classifier"
	"github.com/tair/spaceflight-news/internal/article/domain"
	"github.com/tair/spaceflight-news/internal/article/feed"
	"github.com/tair/spaceflight-news/internal/article/repository"
	"github.com/tair/spaceflight-news/internal/article/usecase/command"
	"github.com/tair/spaceflight-news/internal/article/usecase/query"
	"github.com/tair/spaceflight-news/internal/testutil"
	"github.com/tair/spaceflight-news/pkg/auth"
)

type testServer struct {
	db     *gorm.DB
	router *mux.Router
	feed   *httptest.Server

	mu sync.Mutex
	// feedBody is served by the fake feed; empty means the feed answers 503
	feedBody string
}

func (ts *testServer) setFeedBody(body string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.feedBody = body
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	auth.Configure("handler-test-secret", time.Hour)

	ts := &testServer{db: testutil.NewTestDB(t)}
	ts.feed = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.mu.Lock()
		body := ts.feedBody
		ts.mu.Unlock()

		if body == "" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(ts.feed.Close)

	articles := repository.NewGormArticleRepository(ts.db)
	favorites := repository.NewGormFavoriteRepository(ts.db)
	reg := prometheus.NewRegistry()

	handler := NewArticleHandlerWithDI(
		command.NewSyncArticlesHandler(
			feed.NewClient(feed.Config{BaseURL: ts.feed.URL, Timeout: time.Second}),
			articles,
			classifier.New(nil, nil),
			nil,
			nil,
			command.NewSyncMetrics(reg),
		),
		command.NewFavoriteArticleHandler(favorites),
		query.NewMonthlyReportHandler(articles, nil),
		query.NewListFavoritesHandler(favorites),
		query.NewSearchArticlesHandler(articles),
		reg,
	)

	ts.router = mux.NewRouter()
	handler.RegisterRoutes(ts.router)
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func tokenFor(t *testing.T, userID uint, role string) string {
	t.Helper()

	token, err := auth.GenerateToken(userID, fmt.Sprintf("user-%d", userID), role)
	require.NoError(t, err)
	return token
}

func TestMonthlyReportEndpoint(t *testing.T) {
	ts := newTestServer(t)
	testutil.CreateArticle(t, ts.db, 1, "a", "SpaceNews", time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))
	testutil.CreateArticle(t, ts.db, 2, "b", "SpaceNews", time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC))
	testutil.CreateArticle(t, ts.db, 3, "c", "NASA", time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC))

	rec := ts.do(t, http.MethodGet, "/reports/monthly/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[
		{"month":"2024-03","total":2,"top_site":"SpaceNews"},
		{"month":"2024-02","total":1,"top_site":"NASA"}
	]`, rec.Body.String())
}

func TestMonthlyReportEndpoint_Empty(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/reports/monthly/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestFavoriteEndpoint(t *testing.T) {
	ts := newTestServer(t)
	alice := testutil.CreateUser(t, ts.db, "alice", "user")
	article := testutil.CreateArticle(t, ts.db, 77, "NASA mission", "NASA", time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))
	token := tokenFor(t, alice.ID, "user")
	path := fmt.Sprintf("/articles/%d/favorite/", article.ID)

	t.Run("requires authentication", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, path, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("deleted user", func(t *testing.T) {
		ghost := testutil.CreateUser(t, ts.db, "ghost", "user")
		ghostToken := tokenFor(t, ghost.ID, "user")
		require.NoError(t, ts.db.Delete(ghost).Error)

		rec := ts.do(t, http.MethodPost, path, ghostToken)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown article", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/articles/9999/favorite/", token)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("created then existing", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, path, token)
		require.Equal(t, http.StatusCreated, rec.Code)

		var fav struct {
			ID      uint `json:"id"`
			Article struct {
				ID         uint   `json:"id"`
				ExternalID int64  `json:"external_id"`
				Title      string `json:"title"`
			} `json:"article"`
			CreatedAt time.Time `json:"created_at"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fav))
		assert.Equal(t, int64(77), fav.Article.ExternalID)
		assert.False(t, fav.CreatedAt.IsZero())

		rec = ts.do(t, http.MethodPost, path, token)
		assert.Equal(t, http.StatusOK, rec.Code)

		var count int64
		require.NoError(t, ts.db.Model(&domain.Favorite{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})
}

func TestListFavoritesEndpoint_PerUserIsolation(t *testing.T) {
	ts := newTestServer(t)
	alice := testutil.CreateUser(t, ts.db, "alice", "user")
	bob := testutil.CreateUser(t, ts.db, "bob", "user")
	article := testutil.CreateArticle(t, ts.db, 1, "NASA mission", "NASA", time.Now())
	aliceToken := tokenFor(t, alice.ID, "user")
	bobToken := tokenFor(t, bob.ID, "user")

	rec := ts.do(t, http.MethodPost, fmt.Sprintf("/articles/%d/favorite/", article.ID), aliceToken)
	require.Equal(t, http.StatusCreated, rec.Code)

	var page struct {
		Count   int64             `json:"count"`
		Results []json.RawMessage `json:"results"`
	}

	rec = ts.do(t, http.MethodGet, "/favorites/", aliceToken)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, int64(1), page.Count)
	assert.Len(t, page.Results, 1)

	rec = ts.do(t, http.MethodGet, "/favorites/", bobToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":0,"results":[]}`, rec.Body.String())

	rec = ts.do(t, http.MethodGet, "/favorites/", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSyncEndpoint(t *testing.T) {
	ts := newTestServer(t)
	adminToken := tokenFor(t, 1, auth.RoleAdmin)

	rec := ts.do(t, http.MethodPost, "/admin/sync?limit=3", tokenFor(t, 2, "user"))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(t, http.MethodPost, "/admin/sync?limit=zero", adminToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	ts.setFeedBody(`{"results":[
		{"id":1,"title":"NASA mission","url":"https://example.com/1","news_site":"NASA","published_at":"2024-03-10T12:00:00Z"},
		{"id":2,"title":"SpaceX launches","url":"https://example.com/2","news_site":"SpaceNews","published_at":"2024-03-10T12:00:00Z"},
		{"id":3,"title":"Musk says","url":"https://example.com/3","news_site":"SpaceNews","published_at":"2024-03-10T12:00:00Z"}
	]}`)
	rec = ts.do(t, http.MethodPost, "/admin/sync?limit=3", adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"Sync completed","data":{"processed":3,"saved":1,"filtered":2,"errors":0}}`, rec.Body.String())

	ts.setFeedBody("")
	rec = ts.do(t, http.MethodPost, "/admin/sync", adminToken)
	require.Equal(t, http.StatusBadGateway, rec.Code)
	var resp struct {
		Success bool             `json:"success"`
		Data    domain.SyncStats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, domain.SyncStats{Errors: 1}, resp.Data)
}

func TestSyncEndpoint_DetachedFromRequest(t *testing.T) {
	ts := newTestServer(t)
	ts.setFeedBody(`{"results":[
		{"id":1,"title":"NASA mission","url":"https://example.com/1","news_site":"NASA","published_at":"2024-03-10T12:00:00Z"},
		{"id":"oops","title":42,"url":"https://example.com/2","news_site":"NASA","published_at":"2024-03-10T12:00:00Z"}
	]}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/admin/sync?limit=2", nil).WithContext(ctx)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, 1, auth.RoleAdmin))
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"Sync completed","data":{"processed":2,"saved":1,"filtered":0,"errors":1}}`, rec.Body.String())

	var count int64
	require.NoError(t, ts.db.Model(&domain.Article{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSearchArticlesEndpoint(t *testing.T) {
	ts := newTestServer(t)
	adminToken := tokenFor(t, 1, auth.RoleAdmin)
	testutil.CreateArticle(t, ts.db, 1, "Trip to Mars", "NASA", time.Now())
	testutil.CreateArticle(t, ts.db, 2, "ISS update", "NASA", time.Now())

	rec := ts.do(t, http.MethodGet, "/admin/articles?search=mars", adminToken)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data query.ArticleList `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Data.Total)
	require.Len(t, resp.Data.Articles, 1)
	assert.Equal(t, "Trip to Mars", resp.Data.Articles[0].Title)

	rec = ts.do(t, http.MethodGet, "/admin/articles?sentiment=x", adminToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
