package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"futures-order-binance/internal/api"
	"futures-order-binance/internal/config"
	"futures-order-binance/internal/core"
	apperr "futures-order-binance/internal/errors"
	"futures-order-binance/internal/logger"
	"futures-order-binance/internal/market"
	"futures-order-binance/internal/report"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: trader [flags] <command> [command flags]

Commands:
  place        place the configured order (the one trading intent per run)
  orders       list open orders
  cancel       cancel one order (-symbol, -order-id)
  cancel-all   cancel all open orders (-symbol, defaults to the configured one)
  status       query one order (-symbol, -order-id)
  position     show position risk for the configured symbol
  balance      show account balances
  watch        stream live mark prices for the configured symbol

Flags:
`)
	flag.PrintDefaults()
}

func main() {
	testnet := flag.Bool("testnet", false, "use the futures test endpoint (skips confirmations)")
	envPath := flag.String("env", ".env", "path to the credentials .env file")
	paramsPath := flag.String("params", "settings/trading.yaml", "path to the trading parameter file")
	logPath := flag.String("log", "logs/trading.log", "path to the log file")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(1)
	}

	err := run(flag.Arg(0), flag.Args()[1:], *testnet, *envPath, *paramsPath, *logPath)
	if err != nil {
		if errors.Is(err, apperr.ErrUserCancelled) {
			fmt.Println("Execution cancelled")
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(command string, args []string, testnet bool, envPath, paramsPath, logPath string) error {
	log, err := logger.New(logPath)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer log.Close()

	creds, err := config.LoadCredentials(envPath)
	if err != nil {
		log.Error("startup failed", "error", err)
		return err
	}

	gateway := api.NewBinanceFutures(creds.APIKey, creds.SecretKey, testnet, log)
	ctx := context.Background()

	switch command {
	case "place":
		return placeOrder(ctx, gateway, log, testnet, paramsPath)

	case "orders":
		fs := flag.NewFlagSet("orders", flag.ExitOnError)
		symbol := fs.String("symbol", "", "restrict to one symbol")
		fs.Parse(args)
		orders, err := gateway.GetOpenOrders(ctx, *symbol)
		if err != nil {
			return err
		}
		report.WriteOrders(os.Stdout, orders)
		return nil

	case "cancel":
		fs := flag.NewFlagSet("cancel", flag.ExitOnError)
		symbol := fs.String("symbol", "", "symbol of the order (required)")
		orderID := fs.Int64("order-id", 0, "order id to cancel (required)")
		fs.Parse(args)
		if *symbol == "" || *orderID == 0 {
			return fmt.Errorf("cancel requires -symbol and -order-id")
		}
		ack, err := gateway.CancelOrder(ctx, *symbol, *orderID)
		if err != nil {
			return err
		}
		report.WriteOrder(os.Stdout, ack)
		return nil

	case "cancel-all":
		symbol, err := resolveSymbol(args, paramsPath)
		if err != nil {
			return err
		}
		if err := gateway.CancelAllOrders(ctx, symbol); err != nil {
			return err
		}
		fmt.Printf("All open orders cancelled for %s\n", symbol)
		return nil

	case "status":
		fs := flag.NewFlagSet("status", flag.ExitOnError)
		symbol := fs.String("symbol", "", "symbol of the order (required)")
		orderID := fs.Int64("order-id", 0, "order id to query (required)")
		fs.Parse(args)
		if *symbol == "" || *orderID == 0 {
			return fmt.Errorf("status requires -symbol and -order-id")
		}
		ack, err := gateway.GetOrderStatus(ctx, *symbol, *orderID)
		if err != nil {
			return err
		}
		report.WriteOrder(os.Stdout, ack)
		return nil

	case "position":
		symbol, err := resolveSymbol(args, paramsPath)
		if err != nil {
			return err
		}
		positions, err := gateway.GetPositionRisk(ctx, symbol)
		if err != nil {
			return err
		}
		report.WritePositions(os.Stdout, positions)
		return nil

	case "balance":
		balances, err := gateway.GetBalances(ctx)
		if err != nil {
			return err
		}
		report.WriteBalances(os.Stdout, balances)
		return nil

	case "watch":
		symbol, err := resolveSymbol(args, paramsPath)
		if err != nil {
			return err
		}
		stop := make(chan struct{})
		sigC := make(chan os.Signal, 1)
		signal.Notify(sigC, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigC
			close(stop)
		}()
		return market.NewWatcher(log, os.Stdout).Stream(symbol, stop)

	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func placeOrder(ctx context.Context, gateway api.Gateway, log *logger.Logger, testnet bool, paramsPath string) error {
	intent, err := config.LoadTradingIntent(paramsPath)
	if err != nil {
		log.Error("startup failed", "error", err)
		return err
	}
	log.Info("trading intent loaded",
		"symbol", intent.Symbol,
		"leverage", intent.Leverage,
		"side", intent.Side,
		"order_type", intent.OrderType,
		"usdt_amount", intent.NotionalAmount,
		"reduce_only", intent.ReduceOnly,
	)

	if err := gateway.ValidateCredentials(ctx); err != nil {
		return err
	}

	trader := core.NewTrader(intent, gateway, log, testnet, os.Stdin, os.Stdout)
	ack, err := trader.PlaceOrder(ctx)
	if err != nil {
		return err
	}
	report.WriteOrder(os.Stdout, ack)

	// Give the exchange a moment before reading the position back.
	time.Sleep(2 * time.Second)
	positions, err := gateway.GetPositionRisk(ctx, intent.Symbol)
	if err != nil {
		return err
	}
	report.WritePositions(os.Stdout, positions)
	return nil
}

func resolveSymbol(args []string, paramsPath string) (string, error) {
	fs := flag.NewFlagSet("symbol", flag.ExitOnError)
	symbol := fs.String("symbol", "", "symbol (defaults to the configured one)")
	fs.Parse(args)
	if *symbol != "" {
		return *symbol, nil
	}
	intent, err := config.LoadTradingIntent(paramsPath)
	if err != nil {
		return "", err
	}
	return intent.Symbol, nil
}
