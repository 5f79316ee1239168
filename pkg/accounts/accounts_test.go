package accounts

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestStore(t *testing.T) *MockStore {
	store, err := newMockStore(0, bcrypt.MinCost)
	require.NoError(t, err)

	return store
}

func TestAuthenticateSeedAccounts(t *testing.T) {
	store := newTestStore(t)

	user, err := store.Authenticate(context.Background(), "user@example.com", "password")
	require.NoError(t, err)
	assert.Equal(t, "1", user.Identifier)
	assert.Equal(t, 150, user.Points)
	assert.False(t, user.IsAdmin)

	admin, err := store.Authenticate(context.Background(), "admin@example.com", "password")
	require.NoError(t, err)
	assert.Equal(t, "2", admin.Identifier)
	assert.Equal(t, 350, admin.Points)
	assert.True(t, admin.IsAdmin)
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Authenticate(context.Background(), "user@example.com", "Password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = store.Authenticate(context.Background(), "USER@example.com", "password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = store.Authenticate(context.Background(), "nobody@example.com", "password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegister(t *testing.T) {
	store := newTestStore(t)
	store.now = func() time.Time { return time.UnixMilli(1747300000000) }

	user, err := store.Register(context.Background(), "Ravi Kumar", "ravi@example.com", "metro-rider")
	require.NoError(t, err)
	assert.Equal(t, "1747300000000", user.Identifier)
	assert.Equal(t, 0, user.Points)
	assert.False(t, user.IsAdmin)

	// registered accounts can log in
	loggedIn, err := store.Authenticate(context.Background(), "ravi@example.com", "metro-rider")
	require.NoError(t, err)
	assert.Equal(t, user, loggedIn)

	// a second account in the same millisecond still gets its own identifier
	other, err := store.Register(context.Background(), "Priya", "priya@example.com", "metro-rider")
	require.NoError(t, err)
	assert.Equal(t, "1747300000001", other.Identifier)

	users, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 4)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Register(context.Background(), "Someone", "user@example.com", "different-password")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestRegisterConcurrent(t *testing.T) {
	store := newTestStore(t)

	var wg sync.WaitGroup
	errs := make([]error, 10)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = store.Register(context.Background(), "Same", "same@example.com", "password1")
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrDuplicateEmail)
		}
	}
	assert.Equal(t, 1, succeeded)
}

func TestLatencyHonoursCancellation(t *testing.T) {
	store := newTestStore(t)
	store.Latency = time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := store.Authenticate(ctx, "user@example.com", "password")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGet(t *testing.T) {
	store := newTestStore(t)

	user, err := store.Get(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", user.Email)

	_, err = store.Get(context.Background(), "99")
	assert.ErrorIs(t, err, ErrUnknownAccount)
}

func TestListDoesNotExposeHashes(t *testing.T) {
	store := newTestStore(t)

	users, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Demo User", users[0].Name)
	assert.Equal(t, "Admin User", users[1].Name)
}

func TestSignupFormValidate(t *testing.T) {
	tests := []struct {
		name     string
		form     SignupForm
		expected error
	}{
		{"valid", SignupForm{Password: "password1", ConfirmPassword: "password1", AcceptTerms: true}, nil},
		{"mismatch wins over length", SignupForm{Password: "short", ConfirmPassword: "shorter", AcceptTerms: false}, ErrPasswordMismatch},
		{"too short", SignupForm{Password: "short", ConfirmPassword: "short", AcceptTerms: true}, ErrWeakPassword},
		{"exactly eight", SignupForm{Password: "12345678", ConfirmPassword: "12345678", AcceptTerms: true}, nil},
		{"terms", SignupForm{Password: "password1", ConfirmPassword: "password1"}, ErrTermsNotAccepted},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.form.Validate()
			if test.expected == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, test.expected)
			}
		})
	}
}
