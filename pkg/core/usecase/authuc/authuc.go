// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package authuc provides the operators authentication use cases.
// Operators are configured statically, each one with a password hash,
// and after a successful login they receive a signed token which must
// accompany the subsequent requests.
package authuc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/momeni/bookings/pkg/core/cerr"
	"github.com/momeni/bookings/pkg/core/log"
)

// These errors are wrapped by a cerr.Authentication error.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// PasswordChecker verifies a plaintext password against its hash.
type PasswordChecker interface {
	Check(hash, password string) error
}

// TokenIssuer creates and verifies signed tokens.
type TokenIssuer interface {
	// Issue signs a token for subject which expires after ttl.
	Issue(subject string, ttl time.Duration) (
		token string, expiresAt time.Time, err error,
	)

	// Parse verifies the token signature and expiration time and
	// returns its subject.
	Parse(token string) (subject string, err error)
}

// Token is the result of a successful login.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// UseCase represents the authentication use cases.
type UseCase struct {
	checker PasswordChecker
	tokens  TokenIssuer

	users map[string]string // username to password hash
	ttl   time.Duration
}

// New instantiates the authentication use case.
// At least one user must be registered using the WithUser option.
func New(
	checker PasswordChecker, tokens TokenIssuer, opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{
		checker: checker,
		tokens:  tokens,
		users:   make(map[string]string),
	}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	if len(uc.users) == 0 {
		return nil, errors.New("no user is configured")
	}
	if uc.ttl == 0 {
		uc.ttl = time.Hour
	}
	return uc, nil
}

// Login checks the username and password pair and issues a token.
func (uc *UseCase) Login(
	ctx context.Context, username, password string,
) (*Token, error) {
	hash, ok := uc.users[username]
	if !ok {
		log.Debug(
			ctx, "login rejected", slog.String("username", username),
		)
		return nil, cerr.Authentication(ErrInvalidCredentials)
	}
	if err := uc.checker.Check(hash, password); err != nil {
		log.Debug(
			ctx, "login rejected",
			slog.String("username", username),
			log.Err("err", err),
		)
		return nil, cerr.Authentication(ErrInvalidCredentials)
	}
	v, exp, err := uc.tokens.Issue(username, uc.ttl)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}
	log.Info(ctx, "logged in", slog.String("username", username))
	return &Token{Value: v, ExpiresAt: exp}, nil
}

// Authenticate verifies a token which was issued by Login and returns
// the username which it was issued for. Tokens of users which are not
// configured anymore are rejected.
func (uc *UseCase) Authenticate(
	ctx context.Context, token string,
) (string, error) {
	sub, err := uc.tokens.Parse(token)
	if err != nil {
		log.Debug(ctx, "token rejected", log.Err("err", err))
		return "", cerr.Authentication(ErrInvalidToken)
	}
	if _, ok := uc.users[sub]; !ok {
		return "", cerr.Authentication(ErrInvalidToken)
	}
	return sub, nil
}
