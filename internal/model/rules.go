package model

import (
	"fmt"

	"github.com/adshao/go-binance/v2/futures"
	"github.com/shopspring/decimal"
)

// Binance filter type names as published in exchangeInfo.
const (
	FilterTypePrice       = "PRICE_FILTER"
	FilterTypeLotSize     = "LOT_SIZE"
	FilterTypeMinNotional = "MIN_NOTIONAL"
)

// SymbolRules is an immutable snapshot of one symbol's trading constraints.
// Fetched once per run from exchangeInfo and never persisted.
type SymbolRules struct {
	Symbol            string
	PricePrecision    int
	QuantityPrecision int
	MinPrice          decimal.Decimal
	MaxPrice          decimal.Decimal
	TickSize          decimal.Decimal
	MinQty            decimal.Decimal
	MaxQty            decimal.Decimal
	StepSize          decimal.Decimal
	MinNotional       decimal.Decimal
}

// NewSymbolRules extracts the trading constraints from a raw exchangeInfo
// symbol record. Filters are looked up by filterType name, so a reordered or
// extended filter list does not break parsing; a missing required filter is
// an error.
func NewSymbolRules(sym *futures.Symbol) (*SymbolRules, error) {
	filters := make(map[string]map[string]interface{}, len(sym.Filters))
	for _, f := range sym.Filters {
		if name, ok := f["filterType"].(string); ok {
			filters[name] = f
		}
	}

	price, ok := filters[FilterTypePrice]
	if !ok {
		return nil, fmt.Errorf("symbol %s: missing %s filter", sym.Symbol, FilterTypePrice)
	}
	lot, ok := filters[FilterTypeLotSize]
	if !ok {
		return nil, fmt.Errorf("symbol %s: missing %s filter", sym.Symbol, FilterTypeLotSize)
	}
	notional, ok := filters[FilterTypeMinNotional]
	if !ok {
		return nil, fmt.Errorf("symbol %s: missing %s filter", sym.Symbol, FilterTypeMinNotional)
	}

	r := &SymbolRules{
		Symbol:            sym.Symbol,
		PricePrecision:    sym.PricePrecision,
		QuantityPrecision: sym.QuantityPrecision,
	}

	var err error
	if r.MinPrice, err = filterDecimal(price, "minPrice"); err != nil {
		return nil, fmt.Errorf("symbol %s: %w", sym.Symbol, err)
	}
	if r.MaxPrice, err = filterDecimal(price, "maxPrice"); err != nil {
		return nil, fmt.Errorf("symbol %s: %w", sym.Symbol, err)
	}
	if r.TickSize, err = filterDecimal(price, "tickSize"); err != nil {
		return nil, fmt.Errorf("symbol %s: %w", sym.Symbol, err)
	}
	if r.MinQty, err = filterDecimal(lot, "minQty"); err != nil {
		return nil, fmt.Errorf("symbol %s: %w", sym.Symbol, err)
	}
	if r.MaxQty, err = filterDecimal(lot, "maxQty"); err != nil {
		return nil, fmt.Errorf("symbol %s: %w", sym.Symbol, err)
	}
	if r.StepSize, err = filterDecimal(lot, "stepSize"); err != nil {
		return nil, fmt.Errorf("symbol %s: %w", sym.Symbol, err)
	}
	if r.MinNotional, err = filterDecimal(notional, "notional"); err != nil {
		return nil, fmt.Errorf("symbol %s: %w", sym.Symbol, err)
	}

	if !r.TickSize.IsPositive() {
		return nil, fmt.Errorf("symbol %s: tickSize must be positive, got %s", sym.Symbol, r.TickSize)
	}
	if !r.StepSize.IsPositive() {
		return nil, fmt.Errorf("symbol %s: stepSize must be positive, got %s", sym.Symbol, r.StepSize)
	}
	if r.MinQty.GreaterThan(r.MaxQty) {
		return nil, fmt.Errorf("symbol %s: minQty %s exceeds maxQty %s", sym.Symbol, r.MinQty, r.MaxQty)
	}
	if r.MinPrice.GreaterThan(r.MaxPrice) {
		return nil, fmt.Errorf("symbol %s: minPrice %s exceeds maxPrice %s", sym.Symbol, r.MinPrice, r.MaxPrice)
	}

	return r, nil
}

func filterDecimal(filter map[string]interface{}, key string) (decimal.Decimal, error) {
	raw, ok := filter[key].(string)
	if !ok {
		return decimal.Zero, fmt.Errorf("filter field %s missing or not a string", key)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("filter field %s: %w", key, err)
	}
	return d, nil
}

// RoundToTick truncates price down to the nearest multiple of the tick size.
// Truncation, never rounding up: a submitted price must not exceed what the
// caller asked for.
func (r *SymbolRules) RoundToTick(price decimal.Decimal) decimal.Decimal {
	return price.Div(r.TickSize).Floor().Mul(r.TickSize)
}

// RoundToStep truncates quantity down to the nearest multiple of the step size.
func (r *SymbolRules) RoundToStep(quantity decimal.Decimal) decimal.Decimal {
	return quantity.Div(r.StepSize).Floor().Mul(r.StepSize)
}

// CeilToStep rounds quantity up to the nearest multiple of the step size.
// Used only when truncation would drop an order below the minimum notional.
func (r *SymbolRules) CeilToStep(quantity decimal.Decimal) decimal.Decimal {
	return quantity.Div(r.StepSize).Ceil().Mul(r.StepSize)
}
