package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "futures-order-binance/internal/errors"
	"futures-order-binance/internal/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadCredentials(t *testing.T) {
	path := writeFile(t, ".env", "BINANCE_API_KEY=key123\nBINANCE_SECRET_KEY=secret456\n")

	creds, err := LoadCredentials(path)
	require.NoError(t, err)
	assert.Equal(t, "key123", creds.APIKey)
	assert.Equal(t, "secret456", creds.SecretKey)
}

func TestLoadCredentials_MissingSecret(t *testing.T) {
	path := writeFile(t, ".env", "BINANCE_API_KEY=key123\n")

	_, err := LoadCredentials(path)
	require.Error(t, err)

	var cfgErr *apperr.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "BINANCE_SECRET_KEY", cfgErr.Field)
}

func TestLoadCredentials_FileNotFound(t *testing.T) {
	_, err := LoadCredentials(filepath.Join(t.TempDir(), "nope.env"))
	require.Error(t, err)

	var cfgErr *apperr.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

const validParams = `symbol: BTCUSDT
leverage: 10
side: LONG
order_type: LIMIT
usdt_amount: 50.5
`

func TestLoadTradingIntent(t *testing.T) {
	path := writeFile(t, "trading.yaml", validParams)

	intent, err := LoadTradingIntent(path)
	require.NoError(t, err)

	assert.Equal(t, "BTCUSDT", intent.Symbol)
	assert.Equal(t, 10, intent.Leverage)
	assert.Equal(t, model.SideBuy, intent.Side)
	assert.Equal(t, model.OrderTypeLimit, intent.OrderType)
	assert.Equal(t, "50.5", intent.NotionalAmount.String())
	assert.False(t, intent.ReduceOnly)
}

func TestLoadTradingIntent_ShortMapsToSell(t *testing.T) {
	path := writeFile(t, "trading.yaml", `symbol: ETHUSDT
leverage: 3
side: SHORT
order_type: MARKET
usdt_amount: 25
reduce_only: true
`)

	intent, err := LoadTradingIntent(path)
	require.NoError(t, err)

	assert.Equal(t, model.SideSell, intent.Side)
	assert.Equal(t, model.OrderTypeMarket, intent.OrderType)
	assert.True(t, intent.ReduceOnly)
}

func TestLoadTradingIntent_ExactDecimalAmount(t *testing.T) {
	// 0.1 must survive as the exact decimal 0.1, not a float artifact.
	path := writeFile(t, "trading.yaml", `symbol: BTCUSDT
leverage: 1
side: LONG
order_type: MARKET
usdt_amount: 0.1
`)

	intent, err := LoadTradingIntent(path)
	require.NoError(t, err)
	assert.Equal(t, "0.1", intent.NotionalAmount.String())
}

func TestLoadTradingIntent_Invalid(t *testing.T) {
	cases := map[string]string{
		"missing symbol":    "leverage: 10\nside: LONG\norder_type: MARKET\nusdt_amount: 50\n",
		"zero leverage":     "symbol: BTCUSDT\nleverage: 0\nside: LONG\norder_type: MARKET\nusdt_amount: 50\n",
		"negative leverage": "symbol: BTCUSDT\nleverage: -2\nside: LONG\norder_type: MARKET\nusdt_amount: 50\n",
		"bad side":          "symbol: BTCUSDT\nleverage: 10\nside: SIDEWAYS\norder_type: MARKET\nusdt_amount: 50\n",
		"bad order type":    "symbol: BTCUSDT\nleverage: 10\nside: LONG\norder_type: STOP\nusdt_amount: 50\n",
		"missing amount":    "symbol: BTCUSDT\nleverage: 10\nside: LONG\norder_type: MARKET\n",
		"zero amount":       "symbol: BTCUSDT\nleverage: 10\nside: LONG\norder_type: MARKET\nusdt_amount: 0\n",
		"bad amount":        "symbol: BTCUSDT\nleverage: 10\nside: LONG\norder_type: MARKET\nusdt_amount: lots\n",
		"not yaml":          "{{{",
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, "trading.yaml", content)
			_, err := LoadTradingIntent(path)
			require.Error(t, err)

			var cfgErr *apperr.ConfigError
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestLoadTradingIntent_FileNotFound(t *testing.T) {
	_, err := LoadTradingIntent(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
