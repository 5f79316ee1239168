// Package session keeps the per-client language preference and signed in user.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/travigo/patnametro/pkg/ctdf"
	"golang.org/x/exp/slices"
)

const (
	CookieName      = "patnametro_session"
	DefaultLanguage = "en"
)

var SupportedLanguages = []string{"en", "hi"}

var ErrUnsupportedLanguage = errors.New("unsupported language")

// Store persists sessions in Redis. Keys never expire.
type Store struct {
	cache *cache.Cache[string]
}

func NewStore(client *redis.Client) *Store {
	return &Store{
		cache: cache.New[string](redisstore.NewRedis(client)),
	}
}

func NewID() string {
	return uuid.NewString()
}

func languageKey(id string) string {
	return fmt.Sprintf("session:%s:language", id)
}

func userKey(id string) string {
	return fmt.Sprintf("session:%s:user", id)
}

func isNotFound(err error) bool {
	return errors.Is(err, store.NotFound{}) || errors.Is(err, redis.Nil)
}

// Load reads a session's state, falling back to the defaults for anything not stored yet
func (s *Store) Load(ctx context.Context, id string) (*Context, error) {
	sessionContext := &Context{
		ID:       id,
		Language: DefaultLanguage,
		store:    s,
	}

	language, err := s.cache.Get(ctx, languageKey(id))
	if err == nil && slices.Contains(SupportedLanguages, language) {
		sessionContext.Language = language
	} else if err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("loading session language: %w", err)
	}

	userJSON, err := s.cache.Get(ctx, userKey(id))
	if err == nil {
		var user ctdf.User
		if json.Unmarshal([]byte(userJSON), &user) == nil {
			sessionContext.User = &user
		}
	} else if !isNotFound(err) {
		return nil, fmt.Errorf("loading session user: %w", err)
	}

	return sessionContext, nil
}

// Context is the state of one client session. Setters write through to the store.
type Context struct {
	ID       string
	Language string
	User     *ctdf.User

	store *Store
}

func (c *Context) SetLanguage(ctx context.Context, language string) error {
	if !slices.Contains(SupportedLanguages, language) {
		return ErrUnsupportedLanguage
	}

	if err := c.store.cache.Set(ctx, languageKey(c.ID), language); err != nil {
		return fmt.Errorf("saving session language: %w", err)
	}

	c.Language = language

	return nil
}

func (c *Context) SetUser(ctx context.Context, user *ctdf.User) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return err
	}

	if err := c.store.cache.Set(ctx, userKey(c.ID), string(userJSON)); err != nil {
		return fmt.Errorf("saving session user: %w", err)
	}

	c.User = user

	return nil
}

func (c *Context) ClearUser(ctx context.Context) error {
	if err := c.store.cache.Delete(ctx, userKey(c.ID)); err != nil && !isNotFound(err) {
		return fmt.Errorf("clearing session user: %w", err)
	}

	c.User = nil

	return nil
}
