// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package scram declares the password hashing expectations of the
// schemarp repository. Database role passwords are sent to PostgreSQL
// in their SCRAM hashed form, so an ALTER ROLE statement never carries
// a plaintext password which could end up in the server logs.
package scram

// Hasher computes PostgreSQL compatible SCRAM verifiers.
type Hasher interface {
	// Hash returns a verifier with this format:
	//
	//	SCRAM-{SHA-X}${iters}:{b64-salt}${b64-storedKey}:{b64-serverKey}
	//
	// An empty salt asks for a random salt. The pass must be non-empty
	// and iters must be at least 4096.
	Hash(pass, salt string, iters int) (string, error)
}
