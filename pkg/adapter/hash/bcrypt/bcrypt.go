// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package bcrypt hashes and verifies the operators passwords.
// It implements the authuc.PasswordChecker interface using the
// golang.org/x/crypto/bcrypt module.
package bcrypt

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Checker verifies passwords against their bcrypt hashes.
type Checker struct{}

// Check returns nil if password matches the hash.
func (Checker) Check(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// Hash computes a bcrypt hash of password with the default cost,
// suitable for the password-hash setting of an operator.
func Hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword(
		[]byte(password), bcrypt.DefaultCost,
	)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(h), nil
}

// Validate ensures that hash is a well-formed bcrypt hash.
func Validate(hash string) error {
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return fmt.Errorf("malformed bcrypt hash: %w", err)
	}
	return nil
}
