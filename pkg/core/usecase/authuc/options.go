// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package authuc

import (
	"errors"
	"fmt"
	"time"
)

// Option represents an optional setting of the authentication use case.
type Option func(uc *UseCase) error

// WithUser registers an operator with its password hash.
func WithUser(username, passwordHash string) Option {
	return func(uc *UseCase) error {
		switch {
		case username == "":
			return errors.New("username is empty")
		case passwordHash == "":
			return fmt.Errorf("password hash of %q is empty", username)
		}
		if _, dup := uc.users[username]; dup {
			return fmt.Errorf("user %q is already configured", username)
		}
		uc.users[username] = passwordHash
		return nil
	}
}

// WithTokenTTL sets the lifetime of the issued tokens.
func WithTokenTTL(ttl time.Duration) Option {
	return func(uc *UseCase) error {
		if ttl <= 0 {
			return fmt.Errorf("token ttl (%v) is not positive", ttl)
		}
		if uc.ttl != 0 {
			return errors.New("token ttl is already configured")
		}
		uc.ttl = ttl
		return nil
	}
}
