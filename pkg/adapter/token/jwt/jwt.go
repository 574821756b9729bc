// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package jwt issues and verifies the HS256 signed JSON web tokens
// which authenticate the operators. It implements the
// authuc.TokenIssuer interface using the github.com/golang-jwt/jwt/v4
// module.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Issuer signs and parses tokens with a shared secret.
type Issuer struct {
	secret []byte
	name   string // iss claim
}

// New creates an Issuer. The secret must have at least 32 bytes.
func New(secret, name string) (*Issuer, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf(
			"secret has %d bytes, at least 32 are required", len(secret),
		)
	}
	return &Issuer{secret: []byte(secret), name: name}, nil
}

// Issue signs a token for subject which expires after ttl.
func (i *Issuer) Issue(subject string, ttl time.Duration) (
	string, time.Time, error,
) {
	now := time.Now().UTC().Truncate(time.Second)
	exp := now.Add(ttl)
	claims := jwt.RegisteredClaims{
		Issuer:    i.name,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}
	return s, exp, nil
}

// Parse verifies the signature, expiration, and issuer of token and
// returns its subject.
func (i *Issuer) Parse(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(
		token, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf(
					"unexpected signing method: %v", t.Header["alg"],
				)
			}
			return i.secret, nil
		},
	)
	if err != nil {
		return "", fmt.Errorf("parsing token: %w", err)
	}
	if !claims.VerifyIssuer(i.name, true) {
		return "", fmt.Errorf("unexpected issuer: %q", claims.Issuer)
	}
	if claims.Subject == "" {
		return "", errors.New("missing subject")
	}
	return claims.Subject, nil
}
