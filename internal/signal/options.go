package signal

import (
	"fmt"
	"math"

	"golang-trading-assistant/internal/entity"
	"golang-trading-assistant/pkg/utils"
)

// SelectStrategy picks an options template for the overall signal and computes its strikes.
// extreme is the classifier's RSI extreme label, or "".
func SelectStrategy(overall entity.Overall, price float64, extreme string, t Thresholds) entity.Strategy {
	if !utils.IsFinite(price) || price < 0 {
		price = 0
	}
	inc := t.increment()

	switch overall {
	case entity.OverallBullish:
		width := t.width(t.SpreadWidth)
		buy := math.Max(roundToIncrement(price, inc), inc)
		sell := buy + width
		s := entity.Strategy{
			Name: entity.StrategyBullCallSpread,
			Legs: []entity.OptionLeg{
				{Action: "buy", Type: "call", Strike: buy},
				{Action: "sell", Type: "call", Strike: sell},
			},
			BuyStrike:  buy,
			SellStrike: sell,
			Description: fmt.Sprintf("%s: buy the $%s call, sell the $%s call",
				entity.StrategyBullCallSpread, strike(buy), strike(sell)),
		}
		if extreme == entity.LabelExtremelyOverbought {
			hedgeBuy := math.Max(floorToIncrement(price, inc), inc+width)
			s.Caution = fmt.Sprintf("RSI is extremely overbought; consider a protective %s (buy the $%s put, sell the $%s put)",
				entity.StrategyBearPutSpread, strike(hedgeBuy), strike(hedgeBuy-width))
		}
		return s

	case entity.OverallBearish:
		width := t.width(t.SpreadWidth)
		buy := math.Max(floorToIncrement(price, inc), inc+width)
		sell := buy - width
		s := entity.Strategy{
			Name: entity.StrategyBearPutSpread,
			Legs: []entity.OptionLeg{
				{Action: "buy", Type: "put", Strike: buy},
				{Action: "sell", Type: "put", Strike: sell},
			},
			BuyStrike:  buy,
			SellStrike: sell,
			Description: fmt.Sprintf("%s: buy the $%s put, sell the $%s put",
				entity.StrategyBearPutSpread, strike(buy), strike(sell)),
		}
		if extreme == entity.LabelExtremelyOversold {
			hedgeBuy := math.Max(roundToIncrement(price, inc), inc)
			s.Caution = fmt.Sprintf("RSI is extremely oversold; consider a %s for a rebound (buy the $%s call, sell the $%s call)",
				entity.StrategyBullCallSpread, strike(hedgeBuy), strike(hedgeBuy+width))
		}
		return s

	default:
		wing := t.width(t.CondorWing)
		center := math.Max(roundToIncrement(price, inc), inc+wing)
		return entity.Strategy{
			Name: entity.StrategyIronCondor,
			Legs: []entity.OptionLeg{
				{Action: "buy", Type: "put", Strike: center - wing},
				{Action: "sell", Type: "put", Strike: center},
				{Action: "sell", Type: "call", Strike: center},
				{Action: "buy", Type: "call", Strike: center + wing},
			},
			BuyStrike:  center + wing,
			SellStrike: center,
			Description: fmt.Sprintf("%s: sell the $%s straddle, buy the $%s put and $%s call wings",
				entity.StrategyIronCondor, strike(center), strike(center-wing), strike(center+wing)),
		}
	}
}

// Timeframe is the suggested holding period for a strategy template.
func Timeframe(name string) string {
	if name == entity.StrategyIronCondor {
		return "2-4 weeks"
	}
	return "1-2 weeks"
}

func roundToIncrement(v, inc float64) float64 {
	return math.Round(v/inc) * inc
}

func floorToIncrement(v, inc float64) float64 {
	return math.Floor(v/inc) * inc
}

func strike(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}
