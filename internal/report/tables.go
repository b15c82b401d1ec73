// Package report renders exchange responses as console tables.
package report

import (
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"futures-order-binance/internal/model"
)

func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(title)
	t.SetStyle(table.StyleRounded)
	return t
}

func WriteOrders(w io.Writer, orders []model.OrderAck) {
	t := newTable(w, "OPEN ORDERS")
	t.AppendHeader(table.Row{"Order ID", "Symbol", "Side", "Type", "Price", "Orig Qty", "Executed", "Status", "TIF", "Updated"})
	for _, o := range orders {
		t.AppendRow(table.Row{
			o.OrderID, o.Symbol, o.Side, o.Type, o.Price, o.OrigQty, o.ExecutedQty, o.Status, o.TimeInForce,
			time.UnixMilli(o.UpdateTime).Format("2006-01-02 15:04:05"),
		})
	}
	t.Render()
}

func WriteOrder(w io.Writer, o *model.OrderAck) {
	t := newTable(w, "ORDER")
	t.AppendRows([]table.Row{
		{"Order ID", o.OrderID},
		{"Client Order ID", o.ClientOrderID},
		{"Symbol", o.Symbol},
		{"Side", o.Side},
		{"Type", o.Type},
		{"Price", o.Price},
		{"Orig Qty", o.OrigQty},
		{"Executed Qty", o.ExecutedQty},
		{"Status", o.Status},
		{"Reduce Only", o.ReduceOnly},
	})
	t.Render()
}

func WritePositions(w io.Writer, positions []model.PositionInfo) {
	t := newTable(w, "POSITIONS")
	t.AppendHeader(table.Row{"Symbol", "Position Amt", "Entry Price", "Mark Price", "Unrealized PnL", "Liq. Price", "Leverage"})
	for _, p := range positions {
		t.AppendRow(table.Row{
			p.Symbol, p.PositionAmt, p.EntryPrice, p.MarkPrice, p.UnrealizedProfit, p.LiquidationPrice, p.Leverage,
		})
	}
	t.Render()
}

func WriteBalances(w io.Writer, balances []model.Balance) {
	t := newTable(w, "BALANCES")
	t.AppendHeader(table.Row{"Asset", "Balance", "Available"})
	for _, b := range balances {
		t.AppendRow(table.Row{b.Asset, b.Balance, b.AvailableBalance})
	}
	t.Render()
}
