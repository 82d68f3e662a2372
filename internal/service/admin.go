package service

import (
	"context"
	"fmt"
	"time"

	"github.com/retailtrove/storefront/internal/hash"
	"github.com/retailtrove/storefront/pkg/tokens"
)

const adminSubject = "admin"

type AdminService struct {
	PasswordHash string
	JWTSecret    []byte
	TokenTTL     time.Duration
}

// Login exchanges the admin password for a signed token.
func (s *AdminService) Login(ctx context.Context, password string) (string, time.Time, error) {
	if s.PasswordHash == "" || len(s.JWTSecret) == 0 {
		return "", time.Time{}, fmt.Errorf("%w: admin login disabled", ErrUnauthorized)
	}
	if !hash.CheckPassword(s.PasswordHash, password) {
		return "", time.Time{}, fmt.Errorf("%w: wrong password", ErrUnauthorized)
	}

	exp := time.Now().Add(s.TokenTTL).UTC()
	token, err := tokens.NewAdminToken(s.JWTSecret, adminSubject, exp)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign admin token: %w", err)
	}
	return token, exp, nil
}
