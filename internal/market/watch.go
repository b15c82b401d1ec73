// Package market streams live mark prices over the exchange websocket.
package market

import (
	"fmt"
	"io"

	"github.com/adshao/go-binance/v2/futures"

	"futures-order-binance/internal/logger"
)

// Watcher prints mark price updates for one symbol until stopped.
type Watcher struct {
	log *logger.Logger
	out io.Writer
}

func NewWatcher(log *logger.Logger, out io.Writer) *Watcher {
	return &Watcher{log: log, out: out}
}

// Stream blocks until the stop channel fires or the connection closes.
// No reconnect loop: the tool is one-shot, a dropped stream ends the run.
func (w *Watcher) Stream(symbol string, stop <-chan struct{}) error {
	handler := func(event *futures.WsMarkPriceEvent) {
		fmt.Fprintf(w.out, "%s  mark=%s  index=%s  funding=%s\n",
			event.Symbol, event.MarkPrice, event.IndexPrice, event.FundingRate)
		w.log.Debug("mark price update",
			"symbol", event.Symbol, "mark_price", event.MarkPrice, "funding_rate", event.FundingRate)
	}
	errHandler := func(err error) {
		w.log.Error("websocket error", "symbol", symbol, "error", err)
	}

	w.log.Info("connecting to mark price stream", "symbol", symbol)
	doneC, stopC, err := futures.WsMarkPriceServe(symbol, handler, errHandler)
	if err != nil {
		return fmt.Errorf("failed to start mark price stream: %w", err)
	}

	select {
	case <-stop:
		stopC <- struct{}{}
		w.log.Info("mark price stream stopped", "symbol", symbol)
		return nil
	case <-doneC:
		w.log.Warn("mark price stream disconnected", "symbol", symbol)
		return nil
	}
}
