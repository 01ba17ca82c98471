package signal

import (
	"fmt"
	"math"

	"golang-trading-assistant/internal/entity"
	"golang-trading-assistant/pkg/utils"
)

const (
	indicatorRSI      = "RSI"
	indicatorMACD     = "MACD"
	indicatorSMA20    = "SMA20"
	indicatorSMA50    = "SMA50"
	indicatorMomentum = "Momentum"

	typeTechnical = "technical"
	typeMomentum  = "momentum"
)

// Input is what the classifier reads. Any nil or non-finite field is treated as absent.
type Input struct {
	Price         *float64
	ChangePercent *float64
	Snapshot      entity.TechnicalSnapshot
}

// Classifier turns a technical snapshot into per-indicator signals and a majority vote.
type Classifier struct {
	thresholds Thresholds
}

func NewClassifier(t Thresholds) *Classifier {
	return &Classifier{thresholds: t}
}

// RSILabel returns Overbought, Oversold or Neutral.
func (c *Classifier) RSILabel(rsi float64) string {
	switch {
	case rsi > c.thresholds.RSIOverbought:
		return entity.LabelOverbought
	case rsi < c.thresholds.RSIOversold:
		return entity.LabelOversold
	default:
		return entity.LabelNeutral
	}
}

// RSIExtreme returns the extreme-tier label or "" when RSI is within the extreme bounds.
func (c *Classifier) RSIExtreme(rsi float64) string {
	switch {
	case rsi > c.thresholds.RSIExtremeOverbought:
		return entity.LabelExtremelyOverbought
	case rsi < c.thresholds.RSIExtremeOversold:
		return entity.LabelExtremelyOversold
	default:
		return ""
	}
}

// Classify evaluates every present indicator and votes. It never fails.
func (c *Classifier) Classify(in Input) entity.ClassifierResult {
	result := entity.ClassifierResult{
		Overall: entity.OverallNeutral,
		Signals: []entity.Signal{},
	}

	vote := func(s entity.Signal, bullish, bearish bool) {
		result.Signals = append(result.Signals, s)
		result.TotalSignals++
		if bullish {
			result.BullishCount++
		}
		if bearish {
			result.BearishCount++
		}
	}

	if rsi, ok := utils.FinitePtr(in.Snapshot.RSI); ok {
		label := c.RSILabel(rsi)
		extreme := c.RSIExtreme(rsi)
		result.Extreme = extreme

		strength := entity.StrengthLow
		if extreme != "" {
			strength = entity.StrengthHigh
		} else if label != entity.LabelNeutral {
			strength = entity.StrengthMedium
		}
		display := label
		if extreme != "" {
			display = extreme
		}
		vote(entity.Signal{
			Type:      typeTechnical,
			Indicator: indicatorRSI,
			Signal:    label,
			Strength:  strength,
			Message:   fmt.Sprintf("RSI at %.2f is %s", rsi, lowerFirst(display)),
		}, label == entity.LabelOversold, label == entity.LabelOverbought)
	}

	if m := in.Snapshot.MACD; m != nil && utils.IsFinite(m.MACD) && utils.IsFinite(m.Signal) {
		bullish := m.MACD > m.Signal
		label := entity.LabelBearish
		if bullish {
			label = entity.LabelBullishCrossover
		}
		// A crossover on the same side of zero as its direction is the stronger reading.
		strength := entity.StrengthMedium
		if (bullish && m.MACD > 0) || (!bullish && m.MACD < 0) {
			strength = entity.StrengthHigh
		}
		vote(entity.Signal{
			Type:      typeTechnical,
			Indicator: indicatorMACD,
			Signal:    label,
			Strength:  strength,
			Message:   fmt.Sprintf("MACD %.4f vs signal %.4f", m.MACD, m.Signal),
		}, bullish, !bullish)
	}

	if price, ok := utils.FinitePtr(in.Price); ok {
		indicator := indicatorSMA20
		sma, ok := utils.FinitePtr(in.Snapshot.SMA20)
		if !ok {
			indicator = indicatorSMA50
			sma, ok = utils.FinitePtr(in.Snapshot.SMA50)
		}
		if ok {
			above := price > sma
			label := entity.LabelBelowTrend
			if above {
				label = entity.LabelAboveTrend
			}
			vote(entity.Signal{
				Type:      typeTechnical,
				Indicator: indicator,
				Signal:    label,
				Strength:  distanceStrength(price, sma),
				Message:   fmt.Sprintf("Price %.2f is %s %s %.2f", price, aboveBelow(above), indicator, sma),
			}, above, !above)
		}
	}

	if chg, ok := utils.FinitePtr(in.ChangePercent); ok {
		result.Momentum = c.momentum(chg)
	}

	result.Overall, result.Strength = tally(result.BullishCount, result.BearishCount, result.TotalSignals)
	return result
}

func (c *Classifier) momentum(chg float64) *entity.Signal {
	label := entity.LabelFlat
	strength := entity.StrengthLow
	if math.Abs(chg) >= c.thresholds.MomentumPercent {
		strength = entity.StrengthMedium
		if chg > 0 {
			label = entity.LabelPositiveMomentum
		} else {
			label = entity.LabelNegativeMomentum
		}
		if math.Abs(chg) >= 2*c.thresholds.MomentumPercent {
			strength = entity.StrengthHigh
		}
	}
	return &entity.Signal{
		Type:      typeMomentum,
		Indicator: indicatorMomentum,
		Signal:    label,
		Strength:  strength,
		Message:   fmt.Sprintf("Price change %+.2f%%", chg),
	}
}

// tally applies the strict-majority rule. Ties and empty votes are Neutral.
func tally(bullish, bearish, total int) (entity.Overall, float64) {
	if total == 0 {
		return entity.OverallNeutral, 0
	}
	pct := func(n int) float64 {
		return utils.Round(float64(n)/float64(total)*100, 2)
	}
	switch {
	case bullish > bearish:
		return entity.OverallBullish, pct(bullish)
	case bearish > bullish:
		return entity.OverallBearish, pct(bearish)
	default:
		return entity.OverallNeutral, pct(bullish)
	}
}

func distanceStrength(price, sma float64) entity.SignalStrength {
	if sma == 0 {
		return entity.StrengthLow
	}
	dist := math.Abs(price-sma) / math.Abs(sma) * 100
	switch {
	case dist >= 5:
		return entity.StrengthHigh
	case dist >= 2:
		return entity.StrengthMedium
	default:
		return entity.StrengthLow
	}
}

func aboveBelow(above bool) string {
	if above {
		return "above"
	}
	return "below"
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}
