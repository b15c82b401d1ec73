package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"futures-order-binance/internal/model"
)

func testIntent(side model.Side, orderType model.OrderType) *model.TradingIntent {
	return &model.TradingIntent{
		Symbol:         "BTCUSDT",
		Leverage:       5,
		Side:           side,
		OrderType:      orderType,
		NotionalAmount: d("10"),
	}
}

func TestBuild_LimitBuyPriceCushion(t *testing.T) {
	rules := newTestRules("0.1", "0.001", "0.001", "1000", "5")
	b := NewOrderBuilder(rules, newTestLogger(t))

	req, err := b.Build(testIntent(model.SideBuy, model.OrderTypeLimit), d("100"))
	require.NoError(t, err)

	assert.True(t, req.Price.Equal(d("99.0")), "got price %s", req.Price)
	assert.Equal(t, model.TimeInForceGTC, req.TimeInForce)
	assert.Equal(t, model.SideBuy, req.Side)
}

func TestBuild_LimitSellPriceCushion(t *testing.T) {
	rules := newTestRules("0.1", "0.001", "0.001", "1000", "5")
	b := NewOrderBuilder(rules, newTestLogger(t))

	req, err := b.Build(testIntent(model.SideSell, model.OrderTypeLimit), d("100"))
	require.NoError(t, err)

	assert.True(t, req.Price.Equal(d("101.0")), "got price %s", req.Price)
}

func TestBuild_LimitPriceOnTickGrid(t *testing.T) {
	rules := newTestRules("0.1", "0.001", "0.001", "1000", "5")
	b := NewOrderBuilder(rules, newTestLogger(t))

	// 123.45 * 0.99 = 122.2155, off the 0.1 grid; must truncate to 122.2.
	req, err := b.Build(testIntent(model.SideBuy, model.OrderTypeLimit), d("123.45"))
	require.NoError(t, err)

	assert.True(t, req.Price.Equal(d("122.2")), "got price %s", req.Price)
	assert.True(t, req.Price.Mod(rules.TickSize).IsZero())
}

func TestBuild_MarketCarriesNoPrice(t *testing.T) {
	rules := newTestRules("0.1", "0.001", "0.001", "1000", "5")
	b := NewOrderBuilder(rules, newTestLogger(t))

	req, err := b.Build(testIntent(model.SideBuy, model.OrderTypeMarket), d("100"))
	require.NoError(t, err)

	assert.True(t, req.Price.IsZero())
	assert.Empty(t, req.TimeInForce)
	assert.True(t, req.Quantity.Equal(d("0.1")), "got quantity %s", req.Quantity)
}

func TestBuild_ReduceOnlyPassthrough(t *testing.T) {
	rules := newTestRules("0.1", "0.001", "0.001", "1000", "5")
	b := NewOrderBuilder(rules, newTestLogger(t))

	intent := testIntent(model.SideSell, model.OrderTypeMarket)
	intent.ReduceOnly = true

	req, err := b.Build(intent, d("100"))
	require.NoError(t, err)
	assert.True(t, req.ReduceOnly)
}

func TestBuild_PropagatesNormalizationError(t *testing.T) {
	rules := newTestRules("0.1", "0.001", "0.001", "50", "100")
	b := NewOrderBuilder(rules, newTestLogger(t))

	_, err := b.Build(testIntent(model.SideBuy, model.OrderTypeLimit), d("1"))
	assert.Error(t, err)
}
