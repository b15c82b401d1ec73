package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	apperr "futures-order-binance/internal/errors"
	"futures-order-binance/internal/model"
)

// Credentials holds the API key pair, loaded from a .env file. Presence is
// validated here, before any client is built.
type Credentials struct {
	APIKey    string
	SecretKey string
}

func LoadCredentials(path string) (*Credentials, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		return nil, &apperr.ConfigError{Field: path, Err: err}
	}

	cfg := &Credentials{
		APIKey:    env["BINANCE_API_KEY"],
		SecretKey: env["BINANCE_SECRET_KEY"],
	}
	if cfg.APIKey == "" {
		return nil, &apperr.ConfigError{Field: "BINANCE_API_KEY"}
	}
	if cfg.SecretKey == "" {
		return nil, &apperr.ConfigError{Field: "BINANCE_SECRET_KEY"}
	}
	return cfg, nil
}

// amount is a yaml scalar parsed as an exact decimal, so a value like 0.1
// never goes through binary floating point.
type amount struct {
	decimal.Decimal
}

func (a *amount) UnmarshalYAML(node *yaml.Node) error {
	d, err := decimal.NewFromString(node.Value)
	if err != nil {
		return fmt.Errorf("invalid decimal %q: %w", node.Value, err)
	}
	a.Decimal = d
	return nil
}

// tradingParams is the raw shape of the parameter file. All fields are
// required except reduce_only, which defaults to false.
type tradingParams struct {
	Symbol     string `yaml:"symbol"`
	Leverage   int    `yaml:"leverage"`
	Side       string `yaml:"side"`
	OrderType  string `yaml:"order_type"`
	USDTAmount amount `yaml:"usdt_amount"`
	ReduceOnly bool   `yaml:"reduce_only"`
}

// LoadTradingIntent reads and validates the trading parameter file, mapping
// it into an immutable TradingIntent. Validation is eager: any missing or
// malformed field rejects the run before an exchange call is made.
func LoadTradingIntent(path string) (*model.TradingIntent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &apperr.ConfigError{Field: path, Err: err}
	}

	var raw tradingParams
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &apperr.ConfigError{Field: path, Err: err}
	}

	if raw.Symbol == "" {
		return nil, &apperr.ConfigError{Field: "symbol"}
	}
	if raw.Leverage <= 0 {
		return nil, &apperr.ConfigError{Field: "leverage", Err: fmt.Errorf("must be a positive integer, got %d", raw.Leverage)}
	}
	side, err := model.ParseSide(raw.Side)
	if err != nil {
		return nil, &apperr.ConfigError{Field: "side", Err: err}
	}
	orderType, err := model.ParseOrderType(raw.OrderType)
	if err != nil {
		return nil, &apperr.ConfigError{Field: "order_type", Err: err}
	}
	if !raw.USDTAmount.IsPositive() {
		return nil, &apperr.ConfigError{Field: "usdt_amount", Err: fmt.Errorf("must be a positive amount, got %s", raw.USDTAmount)}
	}

	return &model.TradingIntent{
		Symbol:         raw.Symbol,
		Leverage:       raw.Leverage,
		Side:           side,
		OrderType:      orderType,
		NotionalAmount: raw.USDTAmount.Decimal,
		ReduceOnly:     raw.ReduceOnly,
	}, nil
}
