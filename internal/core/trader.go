package core

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"futures-order-binance/internal/api"
	apperr "futures-order-binance/internal/errors"
	"futures-order-binance/internal/logger"
	"futures-order-binance/internal/model"
)

const quoteAsset = "USDT"

// Trader runs exactly one trading intent against the exchange. Everything is
// synchronous and single-shot: a failed call aborts the run, nothing is
// retried or rolled back.
type Trader struct {
	intent  *model.TradingIntent
	gateway api.Gateway
	log     *logger.Logger
	testnet bool
	in      *bufio.Scanner
	out     io.Writer
}

func NewTrader(intent *model.TradingIntent, gateway api.Gateway, log *logger.Logger, testnet bool, in io.Reader, out io.Writer) *Trader {
	return &Trader{
		intent:  intent,
		gateway: gateway,
		log:     log,
		testnet: testnet,
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

// confirm prints a prompt and requires the exact expected word. Any other
// input declines.
func (t *Trader) confirm(prompt, expected string) bool {
	fmt.Fprint(t.out, prompt)
	if !t.in.Scan() {
		return false
	}
	return t.in.Text() == expected
}

// PlaceOrder executes the full one-shot flow: balance precheck, live-endpoint
// confirmation, leverage, rules and mark price fetch, quantity/price
// normalization, final confirmation, submission.
func (t *Trader) PlaceOrder(ctx context.Context) (*model.OrderAck, error) {
	available, err := t.availableBalance(ctx)
	if err != nil {
		return nil, err
	}
	if available.LessThan(t.intent.NotionalAmount) {
		err := &apperr.BalanceError{Asset: quoteAsset, Required: t.intent.NotionalAmount, Available: available}
		t.log.Error("balance check failed", "error", err)
		return nil, err
	}

	if !t.testnet && !t.confirmExecution() {
		t.log.Info("live execution cancelled by user")
		return nil, apperr.ErrUserCancelled
	}

	if err := t.gateway.SetLeverage(ctx, t.intent.Symbol, t.intent.Leverage); err != nil {
		return nil, err
	}

	rules, err := t.gateway.GetSymbolRules(ctx, t.intent.Symbol)
	if err != nil {
		return nil, err
	}

	markPrice, err := t.gateway.GetMarkPrice(ctx, t.intent.Symbol)
	if err != nil {
		return nil, err
	}

	req, err := NewOrderBuilder(rules, t.log).Build(t.intent, markPrice)
	if err != nil {
		return nil, err
	}

	if !t.testnet && !t.confirmOrder(req) {
		t.log.Info("order submission cancelled by user")
		return nil, apperr.ErrUserCancelled
	}

	return t.gateway.SubmitOrder(ctx, req)
}

func (t *Trader) availableBalance(ctx context.Context) (decimal.Decimal, error) {
	balances, err := t.gateway.GetBalances(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	for _, b := range balances {
		if b.Asset == quoteAsset {
			available, err := decimal.NewFromString(b.AvailableBalance)
			if err != nil {
				return decimal.Zero, fmt.Errorf("invalid available balance %q: %w", b.AvailableBalance, err)
			}
			return available, nil
		}
	}
	return decimal.Zero, fmt.Errorf("no %s balance in account", quoteAsset)
}

func (t *Trader) confirmExecution() bool {
	fmt.Fprintln(t.out)
	fmt.Fprintln(t.out, "!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!")
	fmt.Fprintln(t.out, "WARNING: You are about to execute trades on the LIVE endpoint")
	fmt.Fprintln(t.out, "Symbol:     ", t.intent.Symbol)
	fmt.Fprintln(t.out, "Side:       ", t.intent.Side)
	fmt.Fprintln(t.out, "Order Type: ", t.intent.OrderType)
	fmt.Fprintln(t.out, "USDT Amount:", t.intent.NotionalAmount)
	fmt.Fprintln(t.out, "Leverage:   ", t.intent.Leverage)
	fmt.Fprintln(t.out, "Reduce Only:", t.intent.ReduceOnly)
	fmt.Fprintln(t.out, "!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!!")
	fmt.Fprintln(t.out)
	return t.confirm("Type 'YES' to confirm the execution on the LIVE endpoint: ", "YES")
}

func (t *Trader) confirmOrder(req *model.OrderRequest) bool {
	fmt.Fprintln(t.out)
	fmt.Fprintln(t.out, "Order Details:")
	fmt.Fprintln(t.out, "  Symbol:     ", req.Symbol)
	fmt.Fprintln(t.out, "  Side:       ", req.Side)
	fmt.Fprintln(t.out, "  Type:       ", req.OrderType)
	fmt.Fprintln(t.out, "  Quantity:   ", req.Quantity)
	if req.OrderType == model.OrderTypeLimit {
		fmt.Fprintln(t.out, "  Price:      ", req.Price)
		fmt.Fprintln(t.out, "  TIF:        ", req.TimeInForce)
	}
	fmt.Fprintln(t.out, "  Reduce Only:", req.ReduceOnly)
	fmt.Fprintln(t.out)
	return t.confirm("Type 'CONFIRM' to place the order: ", "CONFIRM")
}
