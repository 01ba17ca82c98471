package signal

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"golang-trading-assistant/internal/entity"
)

func TestAggregateSentimentScenario(t *testing.T) {
	got := AggregateSentiment([]float64{0.3, 0.25, 0.1}, DefaultThresholds())
	assert.Equal(t, 0.2167, got.Score)
	assert.Equal(t, entity.SentimentBullish, got.Label)
	assert.Equal(t, 3, got.ArticleCount)
	assert.Equal(t, 3, got.Confidence)
}

func TestAggregateSentimentLabelsUnroundedMean(t *testing.T) {
	got := AggregateSentiment([]float64{0.15004}, DefaultThresholds())
	assert.Equal(t, 0.15, got.Score)
	assert.Equal(t, entity.SentimentBullish, got.Label)

	got = AggregateSentiment([]float64{-0.15004}, DefaultThresholds())
	assert.Equal(t, -0.15, got.Score)
	assert.Equal(t, entity.SentimentBearish, got.Label)
}

func TestAggregateSentimentEmpty(t *testing.T) {
	for _, in := range [][]float64{nil, {}, {math.NaN()}} {
		got := AggregateSentiment(in, DefaultThresholds())
		assert.Equal(t, entity.SentimentUnknown, got.Label)
		assert.Equal(t, 0, got.Confidence)
		assert.Equal(t, 0, got.ArticleCount)
		assert.Equal(t, 0.0, got.Score)
	}
}

func TestAggregateSentimentOrderIndependent(t *testing.T) {
	scores := []float64{0.91, -0.33, 0.12, 0.0007, -0.5, 0.25, 0.1, 0.3333}
	want := AggregateSentiment(scores, DefaultThresholds())

	r := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		shuffled := append([]float64(nil), scores...)
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, AggregateSentiment(shuffled, DefaultThresholds()))
	}
}

func TestSentimentLabel(t *testing.T) {
	th := DefaultThresholds()
	assert.Equal(t, entity.SentimentNeutral, SentimentLabel(0.15, th))
	assert.Equal(t, entity.SentimentBullish, SentimentLabel(0.1501, th))
	assert.Equal(t, entity.SentimentNeutral, SentimentLabel(-0.15, th))
	assert.Equal(t, entity.SentimentBearish, SentimentLabel(-0.2, th))
}
