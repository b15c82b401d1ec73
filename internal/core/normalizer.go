package core

import (
	"fmt"

	"github.com/shopspring/decimal"

	apperr "futures-order-binance/internal/errors"
	"futures-order-binance/internal/logger"
	"futures-order-binance/internal/model"
)

// Normalizer derives an exchange-valid order quantity from a target notional
// amount and the current mark price, honoring the symbol's step grid, the
// [minQty, maxQty] bounds and the minimum notional. All arithmetic is exact
// decimal; every rounding truncates except the single minNotional recovery
// step, which must round up or it would re-violate the floor it fixes.
type Normalizer struct {
	rules *model.SymbolRules
	log   *logger.Logger
}

func NewNormalizer(rules *model.SymbolRules, log *logger.Logger) *Normalizer {
	return &Normalizer{rules: rules, log: log}
}

// Quantity computes the final order quantity for the given notional amount.
// Adjustments toward exchange minimums are logged, not fatal; the run only
// fails when even maxQty cannot reach the minimum notional.
func (n *Normalizer) Quantity(notional, markPrice decimal.Decimal) (decimal.Decimal, error) {
	if !markPrice.IsPositive() {
		return decimal.Zero, fmt.Errorf("mark price must be positive, got %s", markPrice)
	}
	r := n.rules

	if notional.LessThan(r.MinNotional) {
		n.log.Warn("notional amount below exchange minimum, raising",
			"symbol", r.Symbol, "requested", notional, "min_notional", r.MinNotional)
		notional = r.MinNotional
	}

	raw := notional.Div(markPrice)

	if raw.LessThan(r.MinQty) {
		raw = r.MinQty
		// minNotional takes priority over minQty when they conflict.
		if r.MinQty.Mul(markPrice).LessThan(r.MinNotional) {
			raw = r.MinNotional.Div(markPrice)
			n.log.Warn("quantity raised to meet minimum notional",
				"symbol", r.Symbol, "quantity", raw)
		}
	}

	if raw.GreaterThan(r.MaxQty) {
		n.log.Warn("quantity above exchange maximum, clamping",
			"symbol", r.Symbol, "quantity", raw, "max_qty", r.MaxQty)
		raw = r.MaxQty
	}

	final := r.RoundToStep(raw)

	if final.LessThan(r.MinQty) {
		final = r.CeilToStep(r.MinQty)
	}

	// Step truncation can push the notional back under the floor; recover by
	// rounding the minimal compliant quantity up to the step grid.
	if final.Mul(markPrice).LessThan(r.MinNotional) {
		final = r.CeilToStep(r.MinNotional.Div(markPrice))
		n.log.Warn("quantity raised after step rounding to meet minimum notional",
			"symbol", r.Symbol, "quantity", final)
	}

	if final.GreaterThan(r.MaxQty) {
		return decimal.Zero, &apperr.FeasibilityError{
			Symbol: r.Symbol,
			Reason: fmt.Sprintf("minimum notional %s requires quantity %s, above maxQty %s at price %s",
				r.MinNotional, final, r.MaxQty, markPrice),
		}
	}

	n.log.Info("quantity calculated",
		"symbol", r.Symbol,
		"notional", notional,
		"mark_price", markPrice,
		"final_quantity", final,
		"notional_value", final.Mul(markPrice),
	)
	return final, nil
}
