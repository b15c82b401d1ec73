package core

import (
	"github.com/shopspring/decimal"

	"futures-order-binance/internal/logger"
	"futures-order-binance/internal/model"
)

// Protective limit offsets: a 1% cushion toward the touch raises fill
// probability while bounding slippage.
var (
	limitBuyOffset  = decimal.RequireFromString("0.99")
	limitSellOffset = decimal.RequireFromString("1.01")
)

// OrderBuilder assembles a complete, exchange-valid order request from the
// trading intent, the current mark price and the symbol rules.
type OrderBuilder struct {
	rules *model.SymbolRules
	norm  *Normalizer
	log   *logger.Logger
}

func NewOrderBuilder(rules *model.SymbolRules, log *logger.Logger) *OrderBuilder {
	return &OrderBuilder{
		rules: rules,
		norm:  NewNormalizer(rules, log),
		log:   log,
	}
}

func (b *OrderBuilder) Build(intent *model.TradingIntent, markPrice decimal.Decimal) (*model.OrderRequest, error) {
	quantity, err := b.norm.Quantity(intent.NotionalAmount, markPrice)
	if err != nil {
		return nil, err
	}

	req := &model.OrderRequest{
		Symbol:     intent.Symbol,
		Side:       intent.Side,
		OrderType:  intent.OrderType,
		Quantity:   quantity,
		ReduceOnly: intent.ReduceOnly,
	}

	if intent.OrderType == model.OrderTypeLimit {
		offset := limitBuyOffset
		if intent.Side == model.SideSell {
			offset = limitSellOffset
		}
		req.Price = b.rules.RoundToTick(markPrice.Mul(offset))
		req.TimeInForce = model.TimeInForceGTC
	}

	b.log.Info("order request built",
		"symbol", req.Symbol,
		"side", req.Side,
		"type", req.OrderType,
		"quantity", req.Quantity,
		"price", req.Price,
		"reduce_only", req.ReduceOnly,
	)
	return req, nil
}
