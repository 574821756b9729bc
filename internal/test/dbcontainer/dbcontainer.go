// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package dbcontainer is an internal helper for the integration tests.
// It starts a temporary postgres:16 container and connects to it using
// a *postgres.Pool connection pool. The tests which use it are skipped
// in the -short mode.
package dbcontainer

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/bitcomplete/sqltestutil"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/momeni/bookings/pkg/adapter/db/postgres"
	"github.com/momeni/bookings/pkg/adapter/db/postgres/initializer"
	"github.com/momeni/bookings/pkg/core/repo"
	"github.com/stretchr/testify/assert"
)

// New creates and starts up a postgres container.
// The docker (or podman) service must be reachable, e.g., by setting
// DOCKER_HOST=unix://$XDG_RUNTIME_DIR/podman/podman.sock for podman.
// The ctx will be used during the container start up and shutdown,
// while the timeout will be considered only during the start up phase.
// Deferred functions are returned in dfrs and must be called even if
// ok is false.
func New(ctx context.Context, timeout time.Duration, t *testing.T) (
	pg *sqltestutil.PostgresContainer,
	pool *postgres.Pool,
	dfrs []func(),
	ok bool,
) {
	if testing.Short() {
		t.Skip("skipping the PostgreSQL container in short mode")
	}
	ctx2, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	dbmsVer := "16"
	pg, err := sqltestutil.StartPostgresContainer(ctx2, dbmsVer)
	ok = assert.NoError(t, err, "failed to set up a test database")
	if !ok {
		return
	}
	dfrs = append(dfrs, func() {
		err := pg.Shutdown(ctx)
		assert.NoError(t, err, "failed to shutdown test database")
	})
	u := pg.ConnectionString()
	for pool == nil {
		pool, err = postgres.NewPool(ctx2, u)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.SQLState() == "57P03" {
			continue // the database system is starting up
		}
		var netErr net.Error
		if ctx2.Err() == nil && errors.As(err, &netErr) {
			continue // tolerate network errors until a timeout
		}
		ok = assert.NoError(t, err, "cannot connect to test database")
		if !ok {
			return
		}
	}
	dfrs = append(dfrs, func() {
		err := pool.Close()
		assert.NoError(t, err, "failed to close the connections pool")
	})
	return
}

// CreateTables creates the empty bookings tables in the default
// schema of the pool connections.
func CreateTables(ctx context.Context, pool repo.Pool) error {
	return pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			return initializer.New(tx).InitProdSchema(ctx)
		})
	})
}

// TruncateTables removes all rows of the bookings tables.
func TruncateTables(ctx context.Context, pool repo.Pool) error {
	return pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		_, err := c.Exec(
			ctx, "TRUNCATE reservations, listings, customers",
		)
		return err
	})
}
