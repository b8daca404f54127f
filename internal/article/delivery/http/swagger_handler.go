package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// MonthlyReport godoc
// @Summary Monthly article report
// @Description Articles per UTC calendar month with the most frequent news site, newest month first
// @Tags Reports
// @Produce json
// @Success 200 {array} domain.MonthlyReport
// @Failure 500 {object} Response
// @Router /reports/monthly/ [get]
func (h *ArticleHandler) MonthlyReportDoc() {}

// FavoriteArticle godoc
// @Summary Favorite an article
// @Description Mark an article as a favorite of the authenticated user; repeating the call is harmless
// @Tags Favorites
// @Security BearerAuth
// @Produce json
// @Param id path int true "Article ID"
// @Success 201 {object} domain.Favorite "Favorite created"
// @Success 200 {object} domain.Favorite "Already a favorite"
// @Failure 401 {object} Response
// @Failure 404 {object} Response
// @Router /articles/{id}/favorite/ [post]
func (h *ArticleHandler) FavoriteArticleDoc() {}

// ListFavorites godoc
// @Summary List favorites
// @Description The authenticated user's favorites, newest first
// @Tags Favorites
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} domain.FavoritePage
// @Failure 401 {object} Response
// @Router /favorites/ [get]
func (h *ArticleHandler) ListFavoritesDoc() {}

// SearchArticles godoc
// @Summary Search stored articles (admin)
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param search query string false "Case-insensitive title substring"
// @Param news_site query string false "Exact news site"
// @Param sentiment query int false "0 or 1"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} Response{data=query.ArticleList}
// @Failure 400 {object} Response
// @Failure 403 {object} Response
// @Router /admin/articles [get]
func (h *ArticleHandler) SearchArticlesDoc() {}

// SyncArticles godoc
// @Summary Run one synchronization pass (admin)
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Number of feed articles to fetch (default 100)"
// @Success 200 {object} Response{data=domain.SyncStats}
// @Failure 502 {object} Response{data=domain.SyncStats}
// @Failure 403 {object} Response
// @Router /admin/sync [post]
func (h *ArticleHandler) SyncArticlesDoc() {}
