package payments

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/travigo/patnametro/pkg/accounts"
	"github.com/travigo/patnametro/pkg/ctdf"
	"github.com/travigo/patnametro/pkg/util"
)

// MockGateway accepts every card and UPI payment after Latency. Metro card
// payments are settled against the Ledger.
type MockGateway struct {
	Ledger   *Ledger
	Accounts accounts.AccountService
	Latency  time.Duration
}

// openingBalance is what a card holds the first time it is used: the owner's
// points, or DefaultOpeningBalance when the owner is not a known account
func (g *MockGateway) openingBalance(ctx context.Context, userRef string) (int, error) {
	if g.Accounts == nil {
		return DefaultOpeningBalance, nil
	}

	user, err := g.Accounts.Get(ctx, userRef)
	if errors.Is(err, accounts.ErrUnknownAccount) {
		return DefaultOpeningBalance, nil
	} else if err != nil {
		return 0, err
	}

	return user.Points, nil
}

func (g *MockGateway) Pay(ctx context.Context, request PaymentRequest) (*Receipt, error) {
	if !IsValidMethod(request.Method) {
		return nil, ErrUnknownMethod
	}
	if request.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	if err := util.Wait(ctx, g.Latency); err != nil {
		return nil, err
	}

	receipt := &Receipt{
		Reference: "PAY" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12]),
		Method:    request.Method,
		Amount:    request.Amount,
		PaidAt:    time.Now(),
	}

	if request.Method == ctdf.PaymentMethodMetroCard {
		openingBalance, err := g.openingBalance(ctx, request.UserRef)
		if err != nil {
			return nil, err
		}

		balance, err := g.Ledger.Debit(ctx, request.UserRef, openingBalance, request.Amount)
		if err != nil {
			return nil, err
		}

		receipt.CardBalance = &balance
	}

	log.Info().
		Str("reference", receipt.Reference).
		Str("method", string(receipt.Method)).
		Int("amount", receipt.Amount).
		Msg("Payment accepted")

	return receipt, nil
}

func (g *MockGateway) Recharge(ctx context.Context, userRef string, amount int) (int, error) {
	if amount < MinimumRecharge {
		return 0, ErrRechargeTooSmall
	}

	if err := util.Wait(ctx, g.Latency); err != nil {
		return 0, err
	}

	openingBalance, err := g.openingBalance(ctx, userRef)
	if err != nil {
		return 0, err
	}

	return g.Ledger.Credit(ctx, userRef, openingBalance, amount)
}

// Refund reverses an accepted payment. Card and UPI refunds are only logged,
// metro card payments are credited back to the ledger.
func (g *MockGateway) Refund(ctx context.Context, receipt *Receipt, userRef string) error {
	if receipt.Method == ctdf.PaymentMethodMetroCard {
		balance, err := g.Ledger.Refund(ctx, userRef, receipt.Amount)
		if err != nil {
			return err
		}

		receipt.CardBalance = &balance
	}

	log.Info().
		Str("reference", receipt.Reference).
		Str("method", string(receipt.Method)).
		Int("amount", receipt.Amount).
		Msg("Payment refunded")

	return nil
}

func (g *MockGateway) Balance(ctx context.Context, userRef string) (int, error) {
	openingBalance, err := g.openingBalance(ctx, userRef)
	if err != nil {
		return 0, err
	}

	return g.Ledger.Balance(ctx, userRef, openingBalance)
}
