// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/momeni/bookings/pkg/adapter/config/settings"
	"github.com/momeni/bookings/pkg/adapter/hash/bcrypt"
	"github.com/momeni/bookings/pkg/adapter/token/jwt"
	"github.com/momeni/bookings/pkg/core/usecase/authuc"
)

var (
	defaultTokenTTL = settings.Duration(time.Hour)
	minTokenTTL     = settings.Duration(time.Minute)
	maxTokenTTL     = settings.Duration(24 * time.Hour)
)

// Auth contains the operators authentication settings.
// When Enabled is false, the RESTful API is served without any
// authentication and other fields are ignored.
type Auth struct {
	Enabled *bool
	Secret  string // HS256 signing key, at least 32 bytes
	Issuer  string // iss claim of the tokens, defaults to bkweb

	// TokenTTL is the lifetime of the issued tokens. It must be in
	// the [1m, 24h] range and defaults to 1h.
	TokenTTL *settings.Duration `yaml:"token-ttl"`

	Users []User
}

// User is an operator which may login using its username and password.
// The password is not stored; PasswordHash keeps its bcrypt hash which
// can be computed by the `bkweb hash-password` command.
type User struct {
	Username     string
	PasswordHash string `yaml:"password-hash"`
}

// ValidateAndNormalize validates the authentication settings and fills
// their default values.
func (a *Auth) ValidateAndNormalize() error {
	settings.Default(&a.Enabled, false)
	settings.Default(&a.TokenTTL, defaultTokenTTL)
	err := settings.Clamp("token-ttl", &a.TokenTTL, &minTokenTTL, &maxTokenTTL)
	if err != nil {
		return err
	}
	if a.Issuer == "" {
		a.Issuer = "bkweb"
	}
	if !*a.Enabled {
		return nil
	}
	if l := len(a.Secret); l < 32 {
		return fmt.Errorf("secret has %d bytes, at least 32 are required", l)
	}
	if len(a.Users) == 0 {
		return errors.New("no user is configured")
	}
	seen := make(map[string]bool, len(a.Users))
	for i, u := range a.Users {
		switch {
		case u.Username == "":
			return fmt.Errorf("users[%d]: empty username", i)
		case seen[u.Username]:
			return fmt.Errorf("users[%d]: duplicate %q", i, u.Username)
		}
		seen[u.Username] = true
		if err := bcrypt.Validate(u.PasswordHash); err != nil {
			return fmt.Errorf("users[%d]: %w", i, err)
		}
	}
	return nil
}

// NewAuthUseCase instantiates the authentication use case based on
// the settings in the c struct. If the authentication is disabled,
// a nil use case and a nil error are returned.
func (c *Config) NewAuthUseCase() (*authuc.UseCase, error) {
	a := c.Auth
	if !*a.Enabled {
		return nil, nil
	}
	issuer, err := jwt.New(a.Secret, a.Issuer)
	if err != nil {
		return nil, fmt.Errorf("jwt.New: %w", err)
	}
	opts := make([]authuc.Option, 0, len(a.Users)+1)
	for _, u := range a.Users {
		opts = append(opts, authuc.WithUser(u.Username, u.PasswordHash))
	}
	opts = append(opts, authuc.WithTokenTTL(time.Duration(*a.TokenTTL)))
	return authuc.New(bcrypt.Checker{}, issuer, opts...)
}
