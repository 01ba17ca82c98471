package dto

// SymbolRequest is the query for single-symbol endpoints.
type SymbolRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required,max=12"`
}

// QuotesRequest is the query for /api/quotes.
type QuotesRequest struct {
	Symbols string `query:"symbols" json:"symbols" validate:"required"`
}

// NewsRequest is the query for /api/news.
type NewsRequest struct {
	Symbol  string `query:"symbol" json:"symbol" validate:"omitempty,max=12"`
	Tickers string `query:"tickers" json:"tickers"`
	Limit   int    `query:"limit" json:"limit" default:"50" validate:"gte=1,lte=1000"`
}

// ArticleRequest is the query for /api/news/article.
type ArticleRequest struct {
	URL string `query:"url" json:"url" validate:"required,url"`
}

// ChatBody is the body of /api/ai/chat.
type ChatBody struct {
	Message  string        `query:"message" json:"message" validate:"required"`
	Provider string        `query:"provider" json:"provider" validate:"omitempty,oneof=openai groq claude gemini"`
	System   string        `json:"system"`
	History  []ChatMessage `json:"history" validate:"omitempty,max=50,dive"`
}

// AnalysisBody is the body of /api/ai/analysis.
type AnalysisBody struct {
	Symbol   string `query:"symbol" json:"symbol" validate:"omitempty,max=12"`
	Type     string `query:"type" json:"type" default:"analysis" validate:"oneof=analysis smartplays alerts"`
	Provider string `query:"provider" json:"provider" validate:"omitempty,oneof=openai groq claude gemini"`
}
