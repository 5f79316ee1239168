package accounts

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/travigo/patnametro/pkg/ctdf"
	"github.com/travigo/patnametro/pkg/util"
	"golang.org/x/crypto/bcrypt"
)

const DefaultLatency = time.Second

type account struct {
	Identifier   string
	Name         string
	Email        string
	PasswordHash []byte
	Points       int
	IsAdmin      bool
}

type seedAccount struct {
	identifier string
	name       string
	email      string
	password   string
	points     int
	isAdmin    bool
}

var seedAccounts = []seedAccount{
	{identifier: "1", name: "Demo User", email: "user@example.com", password: "password", points: 150},
	{identifier: "2", name: "Admin User", email: "admin@example.com", password: "password", points: 350, isAdmin: true},
}

// MockStore is an in-memory AccountService seeded with a demo rider and an
// admin. Every call waits for Latency first.
type MockStore struct {
	Latency time.Duration

	mutex    sync.RWMutex
	accounts []*account
	hashCost int
	now      func() time.Time
}

func NewMockStore(latency time.Duration) (*MockStore, error) {
	return newMockStore(latency, bcrypt.DefaultCost)
}

func newMockStore(latency time.Duration, hashCost int) (*MockStore, error) {
	store := &MockStore{
		Latency:  latency,
		hashCost: hashCost,
		now:      time.Now,
	}

	for _, seed := range seedAccounts {
		passwordHash, err := bcrypt.GenerateFromPassword([]byte(seed.password), hashCost)
		if err != nil {
			return nil, err
		}

		store.accounts = append(store.accounts, &account{
			Identifier:   seed.identifier,
			Name:         seed.name,
			Email:        seed.email,
			PasswordHash: passwordHash,
			Points:       seed.points,
			IsAdmin:      seed.isAdmin,
		})
	}

	return store, nil
}

func (m *MockStore) Authenticate(ctx context.Context, email string, password string) (*ctdf.User, error) {
	if err := util.Wait(ctx, m.Latency); err != nil {
		return nil, err
	}

	m.mutex.RLock()
	defer m.mutex.RUnlock()

	account := m.findByEmail(email)
	if account == nil {
		return nil, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return toUser(account)
}

func (m *MockStore) Register(ctx context.Context, name string, email string, password string) (*ctdf.User, error) {
	if err := util.Wait(ctx, m.Latency); err != nil {
		return nil, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), m.hashCost)
	if err != nil {
		return nil, err
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.findByEmail(email) != nil {
		return nil, ErrDuplicateEmail
	}

	// Identifiers are the creation time in unix milliseconds, nudged forward
	// if two accounts are created in the same millisecond
	identifier := m.now().UnixMilli()
	for m.findByIdentifier(strconv.FormatInt(identifier, 10)) != nil {
		identifier++
	}

	newAccount := &account{
		Identifier:   strconv.FormatInt(identifier, 10),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	}
	m.accounts = append(m.accounts, newAccount)

	log.Info().Str("id", newAccount.Identifier).Msg("Registered new account")

	return toUser(newAccount)
}

func (m *MockStore) Get(ctx context.Context, identifier string) (*ctdf.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	account := m.findByIdentifier(identifier)
	if account == nil {
		return nil, ErrUnknownAccount
	}

	return toUser(account)
}

func (m *MockStore) List(ctx context.Context) ([]ctdf.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	users := []ctdf.User{}
	if err := copier.Copy(&users, m.accounts); err != nil {
		return nil, err
	}

	return users, nil
}

func (m *MockStore) findByEmail(email string) *account {
	for _, account := range m.accounts {
		if account.Email == email {
			return account
		}
	}

	return nil
}

func (m *MockStore) findByIdentifier(identifier string) *account {
	for _, account := range m.accounts {
		if account.Identifier == identifier {
			return account
		}
	}

	return nil
}

func toUser(account *account) (*ctdf.User, error) {
	var user ctdf.User
	if err := copier.Copy(&user, account); err != nil {
		return nil, err
	}

	return &user, nil
}
