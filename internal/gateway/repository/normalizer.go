package repository

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang-trading-assistant/internal/entity"
	"golang-trading-assistant/internal/gateway/dto"
	"golang-trading-assistant/pkg/common"
	"golang-trading-assistant/pkg/utils"
)

var symbolPattern = regexp.MustCompile(`^[A-Z0-9.\-^=]{1,12}$`)

// NormalizeSymbol upper-cases and validates a ticker symbol.
func NormalizeSymbol(symbol string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if !symbolPattern.MatchString(s) {
		return "", fmt.Errorf("%w: invalid symbol %q", ErrInvalidInput, symbol)
	}
	return s, nil
}

// NormalizeFinnhubQuote maps a Finnhub /quote payload to the canonical quote.
func NormalizeFinnhubQuote(symbol string, q dto.FinnhubQuote) (entity.Quote, error) {
	if q.IsEmpty() {
		return entity.Quote{}, fmt.Errorf("%w: %s", ErrSymbolNotFound, symbol)
	}

	change, pct := deriveChange(q.Current, q.PreviousClose, q.Change, q.PercentChange)
	ts := time.Now().UTC()
	if q.Timestamp > 0 {
		ts = time.Unix(q.Timestamp, 0).UTC()
	}

	return entity.Quote{
		Symbol:        symbol,
		Price:         q.Current,
		Change:        change,
		ChangePercent: pct,
		High:          q.High,
		Low:           q.Low,
		Open:          q.Open,
		PreviousClose: q.PreviousClose,
		Timestamp:     ts,
		Source:        common.ProviderFinnhub,
	}, nil
}

// NormalizeAlphaVantageQuote maps a GLOBAL_QUOTE payload to the canonical quote.
func NormalizeAlphaVantageQuote(resp dto.AlphaVantageGlobalQuoteResponse) (entity.Quote, error) {
	if err := alphaVantageStatusError(resp.AlphaVantageStatus, true); err != nil {
		return entity.Quote{}, err
	}
	g := resp.GlobalQuote
	if g.Symbol == "" || !g.Price.Valid {
		return entity.Quote{}, ErrSymbolNotFound
	}

	change, pct := deriveChange(g.Price.Value, g.PreviousClose.Value, g.Change, g.ChangePercent)
	ts := time.Now().UTC()
	if d, err := time.ParseInLocation("2006-01-02", g.LatestTradingDay, utils.EasternLocation()); err == nil {
		ts = d.Add(16 * time.Hour).UTC()
	}

	return entity.Quote{
		Symbol:        strings.ToUpper(g.Symbol),
		Price:         g.Price.Value,
		Change:        change,
		ChangePercent: pct,
		Volume:        int64(g.Volume.Value),
		High:          g.High.Value,
		Low:           g.Low.Value,
		Open:          g.Open.Value,
		PreviousClose: g.PreviousClose.Value,
		Timestamp:     ts,
		Source:        common.ProviderAlphaVantage,
	}, nil
}

// deriveChange prefers provider values and falls back to price - previousClose.
func deriveChange(price, prevClose float64, change, pct dto.FlexFloat) (float64, float64) {
	c := price - prevClose
	if change.Valid {
		c = change.Value
	}
	p := 0.0
	if prevClose != 0 {
		p = c / prevClose * 100
	}
	if pct.Valid {
		p = pct.Value
	}
	return utils.Round(c, 4), utils.Round(p, 4)
}

// alphaVantageStatusError turns the in-body status fields into errors.
func alphaVantageStatusError(st dto.AlphaVantageStatus, symbolCall bool) error {
	switch {
	case st.Note != "":
		return fmt.Errorf("%w: %s", ErrRateLimited, st.Note)
	case st.Information != "":
		return fmt.Errorf("%w: %s", ErrRateLimited, st.Information)
	case st.ErrorMessage != "" && symbolCall:
		return fmt.Errorf("%w: %s", ErrSymbolNotFound, st.ErrorMessage)
	case st.ErrorMessage != "":
		return fmt.Errorf("%w: %s", ErrInvalidResponse, st.ErrorMessage)
	}
	return nil
}
