package api

import (
	"context"

	"github.com/shopspring/decimal"

	"futures-order-binance/internal/model"
)

// Gateway is the capability set the order tool needs from the exchange.
// Every call blocks until the exchange responds or fails; failures carry the
// exchange's error code and message where one was returned.
type Gateway interface {
	ValidateCredentials(ctx context.Context) error
	GetSymbolRules(ctx context.Context, symbol string) (*model.SymbolRules, error)
	GetMarkPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
	SetLeverage(ctx context.Context, symbol string, leverage int) error
	SubmitOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderAck, error)
	GetOpenOrders(ctx context.Context, symbol string) ([]model.OrderAck, error)
	CancelOrder(ctx context.Context, symbol string, orderID int64) (*model.OrderAck, error)
	CancelAllOrders(ctx context.Context, symbol string) error
	GetOrderStatus(ctx context.Context, symbol string, orderID int64) (*model.OrderAck, error)
	GetPositionRisk(ctx context.Context, symbol string) ([]model.PositionInfo, error)
	GetBalances(ctx context.Context) ([]model.Balance, error)
}
