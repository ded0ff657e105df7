package router

import (
	"net/http"
	"strings"

	"github.com/DjordjeVuckovic/echo-paginate/internal/apperr"
	"github.com/DjordjeVuckovic/echo-paginate/internal/catalog"
	"github.com/DjordjeVuckovic/echo-paginate/internal/domain"
	"github.com/DjordjeVuckovic/echo-paginate/pkg/pagination"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type ArticleRouter struct {
	e      *echo.Echo
	source catalog.Source
}

func NewArticleRouter(e *echo.Echo, source catalog.Source) *ArticleRouter {
	return &ArticleRouter{
		e:      e,
		source: source,
	}
}

func (r *ArticleRouter) Bind() {
	r.e.GET("/articles", r.listHandler)
	r.e.GET("/articles/feed", r.feedHandler)
	r.e.GET("/articles/search", r.searchHandler)
	r.e.GET("/articles/:id", r.getHandler)
}

// Feed is the envelope returned by /articles/feed before pagination.
type Feed struct {
	Articles []domain.Article `json:"articles"`
	Category string           `json:"category,omitempty"`
}

// SearchResult is the keyed result of /articles/search.
type SearchResult struct {
	Results    []domain.Article `json:"results"`
	TotalCount int64            `json:"totalCount"`
	Query      string           `json:"query"`
}

// listHandler godoc
// @Summary      List articles
// @Description  Newest articles first. The page window comes from the pagination middleware.
// @Tags         articles
// @Param        page        query  int     false  "Page number (1-based)"
// @Param        limit       query  int     false  "Page size"
// @Param        pagination  query  bool    false  "Set to false to get every article"
// @Param        category    query  string  false  "Category filter"
// @Produce      json
// @Success      200  {array}   domain.Article
// @Failure      400  {object}  object{error=string}
// @Router       /articles [get]
func (r *ArticleRouter) listHandler(c echo.Context) error {
	q := window(c)
	q.Category = c.QueryParam("category")

	page, err := r.source.List(c.Request().Context(), q)
	if err != nil {
		return err
	}

	pagination.SetTotalCount(c, page.Total)
	return c.JSON(http.StatusOK, page.Items)
}

// feedHandler godoc
// @Summary      Article feed
// @Description  Articles of one category, replied through the pagination helper.
// @Tags         articles
// @Param        page      query  int     false  "Page number (1-based)"
// @Param        limit     query  int     false  "Page size"
// @Param        category  query  string  false  "Category filter"
// @Produce      json
// @Success      200  {object}  Feed
// @Router       /articles/feed [get]
func (r *ArticleRouter) feedHandler(c echo.Context) error {
	q := window(c)
	q.Category = c.QueryParam("category")

	page, err := r.source.List(c.Request().Context(), q)
	if err != nil {
		return err
	}

	return pagination.Reply(c, Feed{
		Articles: page.Items,
		Category: q.Category,
	}, page.Total, pagination.WithKey("articles"))
}

// searchHandler godoc
// @Summary      Search articles
// @Description  Matches the query against title and description
// @Tags         articles
// @Param        query  query  string  true   "Search text"
// @Param        page   query  int     false  "Page number (1-based)"
// @Param        limit  query  int     false  "Page size"
// @Produce      json
// @Success      200  {object}  SearchResult
// @Failure      400  {object}  object{error=string}
// @Router       /articles/search [get]
func (r *ArticleRouter) searchHandler(c echo.Context) error {
	text := strings.TrimSpace(c.QueryParam("query"))
	if text == "" {
		return apperr.NewInvalidParam("query", "query parameter is required", nil)
	}

	q := window(c)
	q.Text = text

	page, err := r.source.List(c.Request().Context(), q)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, SearchResult{
		Results:    page.Items,
		TotalCount: page.Total,
		Query:      text,
	})
}

// getHandler godoc
// @Summary      Get article by id
// @Tags         articles
// @Param        id  path  string  true  "Article UUID"
// @Produce      json
// @Success      200  {object}  domain.Article
// @Failure      400  {object}  object{error=string}
// @Failure      404  {object}  object{error=string}
// @Router       /articles/{id} [get]
func (r *ArticleRouter) getHandler(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.NewInvalidParam("id", "invalid article id", err)
	}

	article, err := r.source.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, article)
}

// window turns the resolved pagination parameters into a catalog window.
// Without pagination the whole selection is returned.
func window(c echo.Context) catalog.Query {
	params, ok := pagination.ParamsFrom(c)
	if !ok || !params.Enabled {
		return catalog.Query{Limit: catalog.Unlimited}
	}
	return catalog.Query{Offset: params.Offset(), Limit: params.Limit}
}
