package signal

import (
	"sort"

	"golang-trading-assistant/internal/entity"
	"golang-trading-assistant/pkg/utils"
)

// AggregateSentiment averages per-article scores into one labelled snapshot.
// Non-finite scores are skipped. An empty input yields label Unknown with zero confidence.
func AggregateSentiment(scores []float64, t Thresholds) entity.SentimentSnapshot {
	vals := make([]float64, 0, len(scores))
	for _, s := range scores {
		if utils.IsFinite(s) {
			vals = append(vals, s)
		}
	}
	if len(vals) == 0 {
		return entity.SentimentSnapshot{Label: entity.SentimentUnknown}
	}

	// summing in sorted order keeps the mean identical under any permutation
	sort.Float64s(vals)
	var sum float64
	for _, v := range vals {
		sum += v
	}
	mean := sum / float64(len(vals))

	return entity.SentimentSnapshot{
		Score:        utils.Round(mean, 4),
		Label:        SentimentLabel(mean, t),
		ArticleCount: len(vals),
		Confidence:   len(vals),
	}
}

// SentimentLabel maps a score to Bullish, Bearish or Neutral.
func SentimentLabel(score float64, t Thresholds) entity.SentimentLabel {
	switch {
	case score > t.SentimentBullish:
		return entity.SentimentBullish
	case score < t.SentimentBearish:
		return entity.SentimentBearish
	default:
		return entity.SentimentNeutral
	}
}
