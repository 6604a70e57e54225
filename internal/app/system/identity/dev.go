// internal/app/system/identity/dev.go
package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// devIssuer is the issuer claim stamped on dev-provider tokens.
const devIssuer = "devcircle-dev"

// minPasswordLen matches the weakest policy a real provider enforces.
const minPasswordLen = 6

// DevProvider is a self-contained identity provider for development and
// tests. Accounts live in the app database; tokens are HS256-signed
// with a shared secret. It is never used when an external provider is
// configured.
type DevProvider struct {
	accounts *mongo.Collection
	secret   []byte
}

type devAccount struct {
	UID          string    `bson:"uid"`
	Email        string    `bson:"email"`
	DisplayName  string    `bson:"display_name"`
	PasswordHash []byte    `bson:"password_hash"`
	CreatedAt    time.Time `bson:"created_at"`
}

// NewDevProvider backs the provider with the "identity_accounts"
// collection of db.
func NewDevProvider(db *mongo.Database, secret []byte) *DevProvider {
	return &DevProvider{
		accounts: db.Collection("identity_accounts"),
		secret:   secret,
	}
}

// EnsureIndexes creates the uniqueness constraints the provider relies
// on. Called from schema setup when the dev provider is active.
func (p *DevProvider) EnsureIndexes(ctx context.Context) error {
	_, err := p.accounts.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "uid", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_identity_uid"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_identity_email"),
		},
	})
	return err
}

// CreateAccount mirrors a real provider's admin API: it rejects weak
// passwords and duplicate emails with ErrRejected.
func (p *DevProvider) CreateAccount(ctx context.Context, email, password, displayName string) (string, error) {
	if len(password) < minPasswordLen {
		return "", fmt.Errorf("%w: password too short", ErrRejected)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	acct := devAccount{
		UID:          uuid.NewString(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if _, err := p.accounts.InsertOne(ctx, acct); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", fmt.Errorf("%w: email already registered", ErrRejected)
		}
		return "", err
	}
	return acct.UID, nil
}

// MintToken authenticates an account by email and password and issues a
// short-lived token for it. Used by tests and dev tooling; the HTTP API
// never mints tokens itself.
func (p *DevProvider) MintToken(ctx context.Context, email, password string) (string, error) {
	var acct devAccount
	if err := p.accounts.FindOne(ctx, bson.M{"email": email}).Decode(&acct); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ErrUnauthenticated
		}
		return "", err
	}
	if bcrypt.CompareHashAndPassword(acct.PasswordHash, []byte(password)) != nil {
		return "", ErrUnauthenticated
	}

	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    devIssuer,
		Subject:   acct.UID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	})
	return tok.SignedString(p.secret)
}

// VerifyCredential validates a dev token and returns its subject.
func (p *DevProvider) VerifyCredential(ctx context.Context, token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return p.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(devIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return "", ErrUnauthenticated
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrUnauthenticated
	}
	return sub, nil
}
