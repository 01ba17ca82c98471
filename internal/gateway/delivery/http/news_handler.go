package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"golang-trading-assistant/internal/gateway/dto"
	"golang-trading-assistant/internal/gateway/service"
	"golang-trading-assistant/pkg/logger"
)

// NewsHandler handles HTTP requests for news and article text.
type NewsHandler struct {
	newsService service.NewsService
	logger      *logger.Logger
}

// NewNewsHandler creates a new NewsHandler.
func NewNewsHandler(newsService service.NewsService, logger *logger.Logger) *NewsHandler {
	return &NewsHandler{newsService: newsService, logger: logger}
}

// RegisterRoutes registers the news routes to the Echo group.
func (h *NewsHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/news", h.GetNews)
	g.GET("/news/article", h.GetArticle)
}

// GetNews godoc
// @Summary Get news with sentiment
// @Description Get scored news articles, the aggregate sentiment and RSS headlines
// @Tags news
// @Produce  json
// @Param   symbol  query string false "Ticker symbol"
// @Param   tickers query string false "Comma separated ticker symbols"
// @Param   limit   query int    false "Maximum number of articles" default(50)
// @Success 200 {object} dto.NewsResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /news [get]
func (h *NewsHandler) GetNews(c echo.Context) error {
	var req dto.NewsRequest
	if errs := ReadAndValidateRequest(c, &req); len(errs) > 0 {
		return badRequest(c, errs)
	}

	resp, err := h.newsService.News(c.Request().Context(), service.NewsQuery{
		Symbol:  req.Symbol,
		Tickers: SplitSymbols(req.Tickers),
		Limit:   req.Limit,
	})
	if err != nil {
		return errorResponse(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetArticle godoc
// @Summary Get article text
// @Description Extract the readable text of a news article
// @Tags news
// @Produce  json
// @Param   url query string true "Article URL (http or https)"
// @Success 200 {object} entity.Article
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /news/article [get]
func (h *NewsHandler) GetArticle(c echo.Context) error {
	var req dto.ArticleRequest
	if errs := ReadAndValidateRequest(c, &req); len(errs) > 0 {
		return badRequest(c, errs)
	}

	article, err := h.newsService.Article(c.Request().Context(), req.URL)
	if err != nil {
		return errorResponse(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, article)
}
