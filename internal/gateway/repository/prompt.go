package repository

import (
	"fmt"
	"strings"
)

// ChatSystemPrompt is used when a chat request brings no system prompt of its own.
const ChatSystemPrompt = `You are a concise trading assistant for US equities and options.
Answer in plain language, quote numbers only when they are given to you, and never promise returns.
Strikes and strategies you mention are educational ideas, not orders.`

// AnalysisSystemPrompt frames every structured analysis request.
const AnalysisSystemPrompt = `You are a professional market analyst. You receive market data as plain text and
answer ONLY with a single valid JSON object. Do not add markdown, comments or text outside the JSON.
Values that are "N/A" in the data are unknown; do not invent them.`

// AnalysisPrompt asks for a single-symbol analysis.
func AnalysisPrompt(symbol, report string) string {
	return fmt.Sprintf(`Analyze %s using the market report below.

%s

Respond with this JSON shape:
{
  "summary": "<2-3 sentence overview>",
  "outlook": "<Bullish|Bearish|Neutral>",
  "keyLevels": {"support": [<price>, ...], "resistance": [<price>, ...]},
  "risks": ["<risk>", ...],
  "confidence": <integer 0-100>
}`, strings.ToUpper(symbol), report)
}

// SmartPlaysPrompt asks the model to rank and explain rule-based plays.
func SmartPlaysPrompt(session, context string) string {
	return fmt.Sprintf(`Current market session: %s.
Below are rule-based option plays computed from live technicals, as JSON:

%s

Review them, keep the ones you agree with, adjust confidence and reasoning, and respond with:
{
  "plays": [
    {
      "title": "<short title>",
      "ticker": "<symbol>",
      "strategy": "<Bull Call Spread|Bear Put Spread|Iron Condor>",
      "confidence": <integer 0-100>,
      "reasoning": "<one or two sentences>",
      "riskLevel": "<low|medium|high>",
      "timeframe": "<1-2 weeks|2-4 weeks>"
    }
  ]
}`, session, context)
}

// AlertsPrompt asks the model to prioritise rule-based alerts.
func AlertsPrompt(context string) string {
	return fmt.Sprintf(`Below are technical alerts triggered by rules on a watchlist, as JSON:

%s

Prioritise them for a trader, drop the noise, and respond with:
{
  "alerts": [
    {
      "type": "<rsi_extreme|rsi|macd_crossover|large_move|sma_cross>",
      "title": "<short title>",
      "ticker": "<symbol>",
      "strategy": "<suggested options strategy>",
      "confidence": <integer 0-100>,
      "reasoning": "<one sentence>",
      "riskLevel": "<low|medium|high>",
      "timeframe": "<1-2 weeks|2-4 weeks>"
    }
  ]
}`, context)
}
