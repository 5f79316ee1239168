// Package payments charges tickets and keeps metro card balances.
package payments

import (
	"context"
	"errors"
	"time"

	"github.com/travigo/patnametro/pkg/ctdf"
)

var (
	ErrInsufficientBalance = errors.New("insufficient balance in your metro card, please recharge or use a different payment method")
	ErrRechargeTooSmall    = errors.New("recharge amount must be at least 100")
	ErrBalanceLimit        = errors.New("metro card balance cannot exceed 2000")
	ErrUnknownMethod       = errors.New("unknown payment method")
	ErrInvalidAmount       = errors.New("payment amount must be positive")
)

const (
	MinimumRecharge       = 100
	MaximumBalance        = 2000
	DefaultOpeningBalance = 150

	DefaultLatency = 1500 * time.Millisecond
)

type PaymentRequest struct {
	UserRef string
	Method  ctdf.PaymentMethod
	Amount  int
}

type Receipt struct {
	Reference string
	Method    ctdf.PaymentMethod
	Amount    int

	// Remaining metro card balance, only set for metro card payments
	CardBalance *int

	PaidAt time.Time
}

type PaymentService interface {
	Pay(ctx context.Context, request PaymentRequest) (*Receipt, error)
	Recharge(ctx context.Context, userRef string, amount int) (int, error)
	Refund(ctx context.Context, receipt *Receipt, userRef string) error
	Balance(ctx context.Context, userRef string) (int, error)
}

func IsValidMethod(method ctdf.PaymentMethod) bool {
	switch method {
	case ctdf.PaymentMethodCard, ctdf.PaymentMethodUPI, ctdf.PaymentMethodMetroCard:
		return true
	}

	return false
}
