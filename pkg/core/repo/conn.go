// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// TxHandler runs statements in the given Tx. Returning a nil error
// commits the transaction and a non-nil error rolls it back.
type TxHandler func(context.Context, Tx) error

// Conn is one database connection which is taken from a Pool.
// Statements which are executed directly on a Conn are committed
// one by one, while the Tx method groups them in one transaction.
type Conn interface {
	Queryer

	// Tx begins a transaction, passes it to handler, and commits or
	// rolls it back based on the handler result. A panicking handler
	// rolls the transaction back too.
	Tx(ctx context.Context, handler TxHandler) error

	// IsConn keeps a Tx from being used as a Conn by mistake.
	IsConn()
}
