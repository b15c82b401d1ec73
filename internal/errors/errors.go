// Package errors defines the error taxonomy of the order tool. Every error
// is fatal for the run: there is no retry or local recovery anywhere, each
// failure is logged with context and propagated until the process exits.
package errors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrUserCancelled is returned when a confirmation prompt is declined.
// It ends the run without an order, but it is a cancellation, not a crash.
var ErrUserCancelled = errors.New("execution cancelled by user")

// ConfigError is a missing or invalid credential/parameter at startup.
// No order is attempted.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config: invalid %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("config: %s is required", e.Field)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// BalanceError means the available balance cannot cover the requested
// notional. Checked before any mutating exchange call.
type BalanceError struct {
	Asset     string
	Required  decimal.Decimal
	Available decimal.Decimal
}

func (e *BalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: required %s %s, available %s %s",
		e.Required, e.Asset, e.Available, e.Asset)
}

// FeasibilityError means no quantity satisfies the step/bound constraints
// and the minimum notional at the same time.
type FeasibilityError struct {
	Symbol string
	Reason string
}

func (e *FeasibilityError) Error() string {
	return fmt.Sprintf("no feasible quantity for %s: %s", e.Symbol, e.Reason)
}

// RequestError wraps an exchange API failure, preserving the machine-readable
// code and message Binance returned.
type RequestError struct {
	Op      string
	Code    int64
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	if e.Code != 0 || e.Message != "" {
		return fmt.Sprintf("%s: exchange error %d: %s", e.Op, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }
