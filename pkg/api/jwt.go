package api

import (
	"context"
	"crypto/rand"
	"errors"
	"strings"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/travigo/patnametro/pkg/api/routes"
	"github.com/travigo/patnametro/pkg/ctdf"
	"github.com/travigo/patnametro/pkg/util"
)

const (
	defaultTokenIssuer   = "patnametro"
	defaultTokenAudience = "patnametro-portal"
	defaultTokenTTL      = 24 * time.Hour

	revokedTokenPrefix = "revoked_token:"
)

// CustomClaims contains the account details carried in the token
type CustomClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Admin bool   `json:"admin"`
}

func (c CustomClaims) Validate(ctx context.Context) error {
	return nil
}

type issuedClaims struct {
	CustomClaims
	jwt.RegisteredClaims
}

// TokenAuthority issues HS256 tokens at login and validates them on protected routes
type TokenAuthority struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration

	validator *validator.Validator

	// Revoked token ids are kept here until the token would have expired
	revocations *redis.Client
}

func NewTokenAuthority(secret []byte, issuer string, ttl time.Duration) (*TokenAuthority, error) {
	if len(secret) == 0 {
		return nil, errors.New("token secret must not be empty")
	}

	jwtValidator, err := validator.New(
		func(ctx context.Context) (interface{}, error) {
			return secret, nil
		},
		validator.HS256,
		issuer,
		[]string{defaultTokenAudience},
		validator.WithCustomClaims(
			func() validator.CustomClaims {
				return &CustomClaims{}
			},
		),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, err
	}

	return &TokenAuthority{
		secret:    secret,
		issuer:    issuer,
		audience:  defaultTokenAudience,
		ttl:       ttl,
		validator: jwtValidator,
	}, nil
}

// NewTokenAuthorityFromEnvironment reads PATNAMETRO_JWT_SECRET, PATNAMETRO_JWT_ISSUER and PATNAMETRO_JWT_TTL.
// Without a secret a random one is generated, so tokens do not survive a restart.
func NewTokenAuthorityFromEnvironment() (*TokenAuthority, error) {
	env := util.GetEnvironmentVariables()

	secret := []byte(env["PATNAMETRO_JWT_SECRET"])
	if len(secret) == 0 {
		log.Warn().Msg("PATNAMETRO_JWT_SECRET not set, generating a temporary token secret")

		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, err
		}
	}

	issuer := defaultTokenIssuer
	if env["PATNAMETRO_JWT_ISSUER"] != "" {
		issuer = env["PATNAMETRO_JWT_ISSUER"]
	}

	return NewTokenAuthority(secret, issuer, util.GetDurationVariable(env, "PATNAMETRO_JWT_TTL", defaultTokenTTL))
}

// WithRevocations enables logout revocation backed by Redis
func (a *TokenAuthority) WithRevocations(client *redis.Client) *TokenAuthority {
	a.revocations = client

	return a
}

func (a *TokenAuthority) Issue(user *ctdf.User) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, issuedClaims{
		CustomClaims: CustomClaims{
			Name:  user.Name,
			Email: user.Email,
			Admin: user.IsAdmin,
		},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    a.issuer,
			Subject:   user.Identifier,
			Audience:  jwt.ClaimStrings{a.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
			ID:        uuid.NewString(),
		},
	})

	return token.SignedString(a.secret)
}

// Revoke stops a token being accepted for the rest of its lifetime. Tokens that
// do not validate are already unusable and are ignored.
func (a *TokenAuthority) Revoke(ctx context.Context, token string) error {
	if a.revocations == nil {
		return nil
	}

	claimsI, err := a.validator.ValidateToken(ctx, token)
	if err != nil {
		return nil
	}

	claims := claimsI.(*validator.ValidatedClaims)
	if claims.RegisteredClaims.ID == "" {
		return nil
	}

	remaining := time.Until(time.Unix(claims.RegisteredClaims.Expiry, 0)) + time.Minute
	if remaining <= 0 {
		return nil
	}

	return a.revocations.Set(ctx, revokedTokenPrefix+claims.RegisteredClaims.ID, claims.RegisteredClaims.Subject, remaining).Err()
}

func (a *TokenAuthority) isRevoked(ctx context.Context, tokenID string) (bool, error) {
	if a.revocations == nil || tokenID == "" {
		return false, nil
	}

	count, err := a.revocations.Exists(ctx, revokedTokenPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// EnsureValidToken is a middleware that will check the validity of our JWT.
func (a *TokenAuthority) EnsureValidToken() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		authHeader := c.Get("Authorization")

		if authHeader == "" {
			c.SendStatus(fiber.StatusUnauthorized)
			return c.JSON(fiber.Map{
				"error": "Authorization header is required",
			})
		}

		jwtToken, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			c.SendStatus(fiber.StatusUnauthorized)
			return c.JSON(fiber.Map{
				"error": "Authorization header must be a bearer token",
			})
		}

		claimsI, jwtErr := a.validator.ValidateToken(c.UserContext(), jwtToken)
		if jwtErr != nil {
			c.SendStatus(fiber.StatusUnauthorized)
			return c.JSON(fiber.Map{
				"error": "Invalid auth token",
			})
		}

		claims := claimsI.(*validator.ValidatedClaims)
		customClaims, _ := claims.CustomClaims.(*CustomClaims)

		revoked, err := a.isRevoked(c.UserContext(), claims.RegisteredClaims.ID)
		if err != nil {
			log.Error().Err(err).Msg("Failed to check token revocation")
			c.SendStatus(fiber.StatusServiceUnavailable)
			return c.JSON(fiber.Map{
				"error": "Unable to check auth token",
			})
		}
		if revoked {
			c.SendStatus(fiber.StatusUnauthorized)
			return c.JSON(fiber.Map{
				"error": "Auth token has been revoked",
			})
		}

		c.Locals(routes.UserIDLocal, claims.RegisteredClaims.Subject)
		c.Locals(routes.AdminLocal, customClaims != nil && customClaims.Admin)

		return c.Next()
	}
}

// RequireAdmin must run after EnsureValidToken
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if isAdmin, _ := c.Locals(routes.AdminLocal).(bool); !isAdmin {
			c.SendStatus(fiber.StatusForbidden)
			return c.JSON(fiber.Map{
				"error": "Admin access required",
			})
		}

		return c.Next()
	}
}
