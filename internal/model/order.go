package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// ParseSide maps the position label from the parameter file (LONG/SHORT)
// to the order side the exchange expects. The mapping happens exactly once,
// at intent construction.
func ParseSide(label string) (Side, error) {
	switch strings.ToUpper(label) {
	case "LONG":
		return SideBuy, nil
	case "SHORT":
		return SideSell, nil
	default:
		return "", fmt.Errorf("invalid side %q: must be LONG or SHORT", label)
	}
}

type OrderType string

const (
	OrderTypeMarket OrderType = "MARKET"
	OrderTypeLimit  OrderType = "LIMIT"
)

func ParseOrderType(value string) (OrderType, error) {
	switch strings.ToUpper(value) {
	case "MARKET":
		return OrderTypeMarket, nil
	case "LIMIT":
		return OrderTypeLimit, nil
	default:
		return "", fmt.Errorf("invalid order type %q: must be MARKET or LIMIT", value)
	}
}

const TimeInForceGTC = "GTC"

// TradingIntent is the trade the user asked for, loaded once from the
// parameter file and consumed exactly once.
type TradingIntent struct {
	Symbol         string
	Leverage       int
	Side           Side
	OrderType      OrderType
	NotionalAmount decimal.Decimal
	ReduceOnly     bool
}

// OrderRequest is the normalized, exchange-valid order. Quantity is a
// multiple of the step size within [minQty, maxQty]; for LIMIT orders Price
// is a multiple of the tick size and TimeInForce is set.
type OrderRequest struct {
	Symbol      string
	Side        Side
	OrderType   OrderType
	Quantity    decimal.Decimal
	ReduceOnly  bool
	Price       decimal.Decimal
	TimeInForce string
}

// OrderAck is the exchange's view of an order, as returned by the order
// endpoints. Numeric fields stay strings, as the exchange sends them.
type OrderAck struct {
	Symbol        string
	OrderID       int64
	ClientOrderID string
	Status        string
	Side          string
	Type          string
	Price         string
	OrigQty       string
	ExecutedQty   string
	TimeInForce   string
	ReduceOnly    bool
	UpdateTime    int64
}

// PositionInfo is one entry of the position-risk endpoint.
type PositionInfo struct {
	Symbol           string
	PositionAmt      string
	EntryPrice       string
	MarkPrice        string
	UnrealizedProfit string
	LiquidationPrice string
	Leverage         string
}

// Balance is one asset of the futures account.
type Balance struct {
	Asset            string
	Balance          string
	AvailableBalance string
}
