// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package postgres implements the repo.Pool, repo.Conn, and repo.Tx
// interfaces using the GORM framework and its PostgreSQL driver.
// The entity repositories in the sub-packages assert their repo.Conn
// and repo.Tx arguments to be *Conn and *Tx instances and use their
// embedded *gorm.DB for running queries.
package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/momeni/bookings/pkg/core/cerr"
	"gorm.io/gorm"
)

// SchemaName is the name of the schema which keeps the bookings
// tables. It is created by the admin role and set as the search_path
// of the normal role.
const SchemaName = "bkweb1"

// These are the PostgreSQL error codes which are translated to the
// cerr kinds by TranslateErr.
const (
	UniqueViolation     = "23505"
	ForeignKeyViolation = "23503"
	CheckViolation      = "23514"
)

// TranslateErr classifies err by the cerr kinds if it is caused by a
// violated constraint or a missing row. Other errors are returned as
// they are.
func TranslateErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return cerr.NotFound(err)
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case UniqueViolation:
		return cerr.Conflict(fmt.Errorf(
			"%s is taken: %w", pgErr.ConstraintName, err,
		))
	case ForeignKeyViolation:
		return cerr.Referenced(fmt.Errorf(
			"%s: %w", pgErr.ConstraintName, err,
		))
	case CheckViolation:
		return cerr.BadRequest(fmt.Errorf(
			"%s: %w", pgErr.ConstraintName, err,
		))
	}
	return err
}
