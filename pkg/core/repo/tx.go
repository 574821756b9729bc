// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

// Tx is an ongoing database transaction. It may not be used
// concurrently. PostgreSQL runs it in the READ COMMITTED isolation
// level by default, so the reservation use cases lock the listing
// rows explicitly before checking for conflicts.
type Tx interface {
	Queryer

	// IsTx keeps a Conn from being used as a Tx by mistake.
	IsTx()
}
