package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/adshao/go-binance/v2/common"
	"github.com/adshao/go-binance/v2/futures"
	"github.com/shopspring/decimal"

	apperr "futures-order-binance/internal/errors"
	"futures-order-binance/internal/logger"
	"futures-order-binance/internal/model"
)

// BinanceFutures implements Gateway over the USDⓈ-M futures REST API.
type BinanceFutures struct {
	client *futures.Client
	log    *logger.Logger
}

// NewBinanceFutures builds a futures client for the live or the test
// endpoint. The testnet switch is the SDK's package-level flag, so it must
// be set before the client is created.
func NewBinanceFutures(apiKey, secretKey string, testnet bool, log *logger.Logger) *BinanceFutures {
	futures.UseTestnet = testnet
	return &BinanceFutures{
		client: futures.NewClient(apiKey, secretKey),
		log:    log,
	}
}

// wrapErr preserves the exchange error code and message when the SDK
// surfaced a Binance API error, and logs every failure with its operation.
func (b *BinanceFutures) wrapErr(op string, err error) error {
	var apiErr *common.APIError
	if errors.As(err, &apiErr) {
		b.log.Error("exchange request failed", "op", op, "code", apiErr.Code, "message", apiErr.Message)
		return &apperr.RequestError{Op: op, Code: apiErr.Code, Message: apiErr.Message, Err: err}
	}
	b.log.Error("exchange request failed", "op", op, "error", err)
	return &apperr.RequestError{Op: op, Err: err}
}

// ValidateCredentials issues an account call so an invalid key pair fails
// the run before anything else happens.
func (b *BinanceFutures) ValidateCredentials(ctx context.Context) error {
	if _, err := b.client.NewGetAccountService().Do(ctx); err != nil {
		return fmt.Errorf("invalid API credentials: %w", b.wrapErr("validate credentials", err))
	}
	return nil
}

func (b *BinanceFutures) GetSymbolRules(ctx context.Context, symbol string) (*model.SymbolRules, error) {
	info, err := b.client.NewExchangeInfoService().Do(ctx)
	if err != nil {
		return nil, b.wrapErr("get exchange info", err)
	}

	for i := range info.Symbols {
		if info.Symbols[i].Symbol == symbol {
			rules, err := model.NewSymbolRules(&info.Symbols[i])
			if err != nil {
				return nil, err
			}
			b.log.Info("symbol rules loaded",
				"symbol", rules.Symbol,
				"tick_size", rules.TickSize,
				"step_size", rules.StepSize,
				"min_qty", rules.MinQty,
				"max_qty", rules.MaxQty,
				"min_notional", rules.MinNotional,
			)
			return rules, nil
		}
	}
	return nil, fmt.Errorf("symbol %s not found in exchange info", symbol)
}

func (b *BinanceFutures) GetMarkPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	premium, err := b.client.NewPremiumIndexService().Symbol(symbol).Do(ctx)
	if err != nil {
		return decimal.Zero, b.wrapErr("get mark price", err)
	}
	if len(premium) == 0 {
		return decimal.Zero, fmt.Errorf("no mark price returned for %s", symbol)
	}
	price, err := decimal.NewFromString(premium[0].MarkPrice)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid mark price %q for %s: %w", premium[0].MarkPrice, symbol, err)
	}
	return price, nil
}

func (b *BinanceFutures) SetLeverage(ctx context.Context, symbol string, leverage int) error {
	if _, err := b.client.NewChangeLeverageService().Symbol(symbol).Leverage(leverage).Do(ctx); err != nil {
		return b.wrapErr("set leverage", err)
	}
	b.log.Info("leverage set", "symbol", symbol, "leverage", leverage)
	return nil
}

func (b *BinanceFutures) SubmitOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderAck, error) {
	svc := b.client.NewCreateOrderService().
		Symbol(req.Symbol).
		Side(futures.SideType(req.Side)).
		Type(futures.OrderType(req.OrderType)).
		Quantity(req.Quantity.String()).
		ReduceOnly(req.ReduceOnly)

	if req.OrderType == model.OrderTypeLimit {
		if req.Price.IsZero() {
			return nil, &apperr.ConfigError{Field: "price", Err: fmt.Errorf("price is required for LIMIT orders")}
		}
		svc = svc.Price(req.Price.String()).TimeInForce(futures.TimeInForceType(req.TimeInForce))
	}

	resp, err := svc.Do(ctx)
	if err != nil {
		return nil, b.wrapErr("submit order", err)
	}

	ack := &model.OrderAck{
		Symbol:        resp.Symbol,
		OrderID:       resp.OrderID,
		ClientOrderID: resp.ClientOrderID,
		Status:        string(resp.Status),
		Side:          string(resp.Side),
		Type:          string(resp.Type),
		Price:         resp.Price,
		OrigQty:       resp.OrigQuantity,
		ExecutedQty:   resp.ExecutedQuantity,
		TimeInForce:   string(resp.TimeInForce),
		ReduceOnly:    resp.ReduceOnly,
		UpdateTime:    resp.UpdateTime,
	}
	b.log.Info("order placed",
		"symbol", ack.Symbol,
		"order_id", ack.OrderID,
		"status", ack.Status,
		"side", ack.Side,
		"type", ack.Type,
		"price", ack.Price,
		"orig_qty", ack.OrigQty,
	)
	return ack, nil
}

func orderToAck(o *futures.Order) model.OrderAck {
	return model.OrderAck{
		Symbol:        o.Symbol,
		OrderID:       o.OrderID,
		ClientOrderID: o.ClientOrderID,
		Status:        string(o.Status),
		Side:          string(o.Side),
		Type:          string(o.Type),
		Price:         o.Price,
		OrigQty:       o.OrigQuantity,
		ExecutedQty:   o.ExecutedQuantity,
		TimeInForce:   string(o.TimeInForce),
		ReduceOnly:    o.ReduceOnly,
		UpdateTime:    o.UpdateTime,
	}
}

func (b *BinanceFutures) GetOpenOrders(ctx context.Context, symbol string) ([]model.OrderAck, error) {
	svc := b.client.NewListOpenOrdersService()
	if symbol != "" {
		svc = svc.Symbol(symbol)
	}
	orders, err := svc.Do(ctx)
	if err != nil {
		return nil, b.wrapErr("get open orders", err)
	}

	acks := make([]model.OrderAck, 0, len(orders))
	for _, o := range orders {
		acks = append(acks, orderToAck(o))
	}
	b.log.Info("open orders retrieved", "symbol", symbol, "count", len(acks))
	return acks, nil
}

func (b *BinanceFutures) CancelOrder(ctx context.Context, symbol string, orderID int64) (*model.OrderAck, error) {
	resp, err := b.client.NewCancelOrderService().Symbol(symbol).OrderID(orderID).Do(ctx)
	if err != nil {
		return nil, b.wrapErr("cancel order", err)
	}

	ack := &model.OrderAck{
		Symbol:        resp.Symbol,
		OrderID:       resp.OrderID,
		ClientOrderID: resp.ClientOrderID,
		Status:        string(resp.Status),
		Side:          string(resp.Side),
		Type:          string(resp.Type),
		Price:         resp.Price,
		OrigQty:       resp.OrigQuantity,
		ExecutedQty:   resp.ExecutedQuantity,
		TimeInForce:   string(resp.TimeInForce),
		ReduceOnly:    resp.ReduceOnly,
		UpdateTime:    resp.UpdateTime,
	}
	b.log.Info("order cancelled", "symbol", symbol, "order_id", orderID, "status", ack.Status)
	return ack, nil
}

// CancelAllOrders cancels every open order. The endpoint acknowledges with a
// bare code/message pair, not the cancelled orders themselves.
func (b *BinanceFutures) CancelAllOrders(ctx context.Context, symbol string) error {
	if err := b.client.NewCancelAllOpenOrdersService().Symbol(symbol).Do(ctx); err != nil {
		return b.wrapErr("cancel all orders", err)
	}
	b.log.Info("all open orders cancelled", "symbol", symbol)
	return nil
}

func (b *BinanceFutures) GetOrderStatus(ctx context.Context, symbol string, orderID int64) (*model.OrderAck, error) {
	order, err := b.client.NewGetOrderService().Symbol(symbol).OrderID(orderID).Do(ctx)
	if err != nil {
		return nil, b.wrapErr("get order status", err)
	}
	ack := orderToAck(order)
	b.log.Info("order status retrieved", "symbol", symbol, "order_id", orderID, "status", ack.Status)
	return &ack, nil
}

func (b *BinanceFutures) GetPositionRisk(ctx context.Context, symbol string) ([]model.PositionInfo, error) {
	risks, err := b.client.NewGetPositionRiskService().Symbol(symbol).Do(ctx)
	if err != nil {
		return nil, b.wrapErr("get position risk", err)
	}

	positions := make([]model.PositionInfo, 0, len(risks))
	for _, r := range risks {
		positions = append(positions, model.PositionInfo{
			Symbol:           r.Symbol,
			PositionAmt:      r.PositionAmt,
			EntryPrice:       r.EntryPrice,
			MarkPrice:        r.MarkPrice,
			UnrealizedProfit: r.UnRealizedProfit,
			LiquidationPrice: r.LiquidationPrice,
			Leverage:         r.Leverage,
		})
	}
	b.log.Info("position risk retrieved", "symbol", symbol, "count", len(positions))
	return positions, nil
}

func (b *BinanceFutures) GetBalances(ctx context.Context) ([]model.Balance, error) {
	raw, err := b.client.NewGetBalanceService().Do(ctx)
	if err != nil {
		return nil, b.wrapErr("get balances", err)
	}

	balances := make([]model.Balance, 0, len(raw))
	for _, bal := range raw {
		balances = append(balances, model.Balance{
			Asset:            bal.Asset,
			Balance:          bal.Balance,
			AvailableBalance: bal.AvailableBalance,
		})
	}
	return balances, nil
}
