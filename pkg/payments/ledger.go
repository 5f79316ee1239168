package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const BalancesKey = "metro_card_balances"

const ledgerRejected = -1

// Both scripts open the card with the given balance if it has never been seen,
// then apply the change only when it keeps the balance within limits.
var debitScript = redis.NewScript(`
redis.call('HSETNX', KEYS[1], ARGV[1], ARGV[2])
local balance = tonumber(redis.call('HGET', KEYS[1], ARGV[1]))
local amount = tonumber(ARGV[3])
if balance < amount then
	return -1
end
return redis.call('HINCRBY', KEYS[1], ARGV[1], -amount)
`)

var creditScript = redis.NewScript(`
redis.call('HSETNX', KEYS[1], ARGV[1], ARGV[2])
local balance = tonumber(redis.call('HGET', KEYS[1], ARGV[1]))
local amount = tonumber(ARGV[3])
if balance + amount > tonumber(ARGV[4]) then
	return -1
end
return redis.call('HINCRBY', KEYS[1], ARGV[1], amount)
`)

// Ledger stores metro card balances in a Redis hash keyed by user
type Ledger struct {
	Client *redis.Client
}

func (l *Ledger) Balance(ctx context.Context, userRef string, openingBalance int) (int, error) {
	balance, err := l.Client.HGet(ctx, BalancesKey, userRef).Int()
	if errors.Is(err, redis.Nil) {
		return openingBalance, nil
	} else if err != nil {
		return 0, fmt.Errorf("reading card balance: %w", err)
	}

	return balance, nil
}

func (l *Ledger) Debit(ctx context.Context, userRef string, openingBalance int, amount int) (int, error) {
	balance, err := debitScript.Run(ctx, l.Client, []string{BalancesKey}, userRef, openingBalance, amount).Int()
	if err != nil {
		return 0, fmt.Errorf("debiting card: %w", err)
	}

	if balance == ledgerRejected {
		return 0, ErrInsufficientBalance
	}

	return balance, nil
}

func (l *Ledger) Credit(ctx context.Context, userRef string, openingBalance int, amount int) (int, error) {
	balance, err := creditScript.Run(ctx, l.Client, []string{BalancesKey}, userRef, openingBalance, amount, MaximumBalance).Int()
	if err != nil {
		return 0, fmt.Errorf("crediting card: %w", err)
	}

	if balance == ledgerRejected {
		return 0, ErrBalanceLimit
	}

	return balance, nil
}

// Refund returns a debited amount to the card. It is not subject to the
// recharge minimum or the balance limit.
func (l *Ledger) Refund(ctx context.Context, userRef string, amount int) (int, error) {
	balance, err := l.Client.HIncrBy(ctx, BalancesKey, userRef, int64(amount)).Result()
	if err != nil {
		return 0, fmt.Errorf("refunding card: %w", err)
	}

	return int(balance), nil
}
