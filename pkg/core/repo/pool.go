// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// ConnHandler uses the given Conn until it returns.
type ConnHandler func(context.Context, Conn) error

// Pool manages a set of database connections. Use cases keep a Pool
// and acquire one Conn per operation, so concurrent requests will not
// share a connection.
type Pool interface {
	Conn(ctx context.Context, handler ConnHandler) error

	// Close releases all connections. The Pool may not be used
	// after being closed.
	Close() error
}
