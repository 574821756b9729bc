// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"

	"gorm.io/gorm"
)

// Tx represents a database transaction.
// It is unsafe to be used concurrently. All statements of one Tx
// observe the ACID properties with the READ-COMMITTED isolation level
// which is the PostgreSQL default. Therefore, the repositories lock
// the rows which must not change until the end of a transaction
// explicitly, see the listingsrp FetchForUpdate method.
type Tx struct {
	*gorm.DB
}

// Exec runs sql with args and returns the number of affected rows.
// In absence of args, sql may contain multiple semi-colon separated
// statements. Placeholders may be written as $1 or ? because GORM
// rewrites them for the PostgreSQL wire protocol.
func (tx *Tx) Exec(
	ctx context.Context, sql string, args ...any,
) (int64, error) {
	tt := tx.DB.WithContext(ctx).Exec(sql, args...)
	if err := tt.Error; err != nil {
		return 0, err
	}
	return tt.RowsAffected, nil
}

// IsTx prevents a Conn from implementing the repo.Tx interface.
func (tx *Tx) IsTx() {
}

// GORM returns the embedded *gorm.DB in a session which uses ctx.
func (tx *Tx) GORM(ctx context.Context) *gorm.DB {
	return tx.DB.WithContext(ctx)
}
