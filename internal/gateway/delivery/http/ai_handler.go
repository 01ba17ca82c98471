package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"golang-trading-assistant/internal/gateway/dto"
	"golang-trading-assistant/internal/gateway/service"
	"golang-trading-assistant/pkg/logger"
)

// AIHandler proxies chat and structured analysis to the LLM providers.
type AIHandler struct {
	chatService service.ChatService
	logger      *logger.Logger
}

// NewAIHandler creates a new AIHandler.
func NewAIHandler(chatService service.ChatService, logger *logger.Logger) *AIHandler {
	return &AIHandler{chatService: chatService, logger: logger}
}

// RegisterRoutes registers the AI routes to the Echo group.
func (h *AIHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/ai/chat", h.Chat)
	g.POST("/ai/analysis", h.Analysis)
}

// Chat godoc
// @Summary Chat with an LLM
// @Description Send a message to one of the configured chat providers
// @Tags ai
// @Accept  json
// @Produce  json
// @Param   body body dto.ChatBody true "Chat request"
// @Success 200 {object} dto.ChatReply
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /ai/chat [post]
func (h *AIHandler) Chat(c echo.Context) error {
	var req dto.ChatBody
	if errs := ReadAndValidateRequest(c, &req); len(errs) > 0 {
		return badRequest(c, errs)
	}

	reply, err := h.chatService.Chat(c.Request().Context(), req)
	if err != nil {
		return errorResponse(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, reply)
}

// Analysis godoc
// @Summary Structured AI analysis
// @Description Ask an LLM for a structured analysis, smart plays or alerts. result is null when the answer cannot be parsed.
// @Tags ai
// @Accept  json
// @Produce  json
// @Param   body body dto.AnalysisBody true "Analysis request"
// @Success 200 {object} dto.AnalysisResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /ai/analysis [post]
func (h *AIHandler) Analysis(c echo.Context) error {
	var req dto.AnalysisBody
	if errs := ReadAndValidateRequest(c, &req); len(errs) > 0 {
		return badRequest(c, errs)
	}

	resp, err := h.chatService.Analyze(c.Request().Context(), req)
	if err != nil {
		return errorResponse(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, resp)
}
